package phrasing

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

const promptTemplate = `You are a helpful and polite restaurant employee. You just updated the customer's order.

Update summary:
%s

Current full order:
%s

Total so far: $%.2f

Rephrase the update summary as a friendly and natural message to the customer:`

// Phraser turns a terse change summary into customer-facing prose via
// the hosted language model. It is the only network egress in a turn.
type Phraser struct {
	model       llms.Model
	maxTokens   int
	temperature float64
}

// New builds a phraser around an initialized model.
func New(model llms.Model, maxTokens int, temperature float64) *Phraser {
	if maxTokens <= 0 {
		maxTokens = 100
	}
	return &Phraser{model: model, maxTokens: maxTokens, temperature: temperature}
}

// Rephrase sends the change summary, the formatted current order and the
// running total to the model and returns its reply verbatim.
func (p *Phraser) Rephrase(ctx context.Context, summary, currentOrder string, total float64) (string, error) {
	prompt := fmt.Sprintf(promptTemplate, summary, currentOrder, total)
	out, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt,
		llms.WithMaxTokens(p.maxTokens),
		llms.WithTemperature(p.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("language model call failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}
