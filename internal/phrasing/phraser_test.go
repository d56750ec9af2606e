package phrasing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// fakeModel captures the prompt and returns a canned completion.
type fakeModel struct {
	prompt string
	reply  string
	err    error
}

func (m *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	if len(messages) > 0 && len(messages[0].Parts) > 0 {
		if text, ok := messages[0].Parts[0].(llms.TextContent); ok {
			m.prompt = text.Text
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.reply}},
	}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	resp, err := m.GenerateContent(ctx, []llms.MessageContent{llms.TextParts(schema.ChatMessageTypeHuman, prompt)}, options...)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Content, nil
}

func TestRephrasePromptCarriesOrderState(t *testing.T) {
	model := &fakeModel{reply: "  You got it! One sweet tea coming up.  "}
	p := New(model, 100, 0.3)

	out, err := p.Rephrase(context.Background(), "Added:\n- 1 Sweet Tea (Small) ($1.99)", "- 1 Sweet Tea (Small) ($1.99)", 1.99)
	require.NoError(t, err)

	assert.Equal(t, "You got it! One sweet tea coming up.", out)
	assert.Contains(t, model.prompt, "Added:\n- 1 Sweet Tea (Small) ($1.99)")
	assert.Contains(t, model.prompt, "Total so far: $1.99")
}

func TestRephraseWrapsModelError(t *testing.T) {
	model := &fakeModel{err: errors.New("rate limited")}
	p := New(model, 100, 0.3)

	_, err := p.Rephrase(context.Background(), "summary", "(none)", 0)
	assert.ErrorContains(t, err, "language model call failed")
}

func TestNewDefaultsMaxTokens(t *testing.T) {
	p := New(&fakeModel{reply: "ok"}, 0, 0)
	assert.Equal(t, 100, p.maxTokens)
}
