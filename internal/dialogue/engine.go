package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"maitred/internal/menu"
	"maitred/internal/models"
	"maitred/internal/monitoring"
	"maitred/internal/parser"
	"maitred/internal/session"
	"maitred/internal/storage"
)

// ArrivalSentinel is the literal utterance the front end sends when a
// session opens, triggering the greeting / repeat-order offer.
const ArrivalSentinel = "__arrival__"

// defaultRemoveQuantity is the policy for "remove the tea" with no
// stated quantity: one unit comes off the line, not the whole line.
const defaultRemoveQuantity = 1

// Rephraser turns a terse change summary into the customer-facing
// reply. The engine depends on this narrow interface so tests can stub
// the hosted generator.
type Rephraser interface {
	Rephrase(ctx context.Context, summary, currentOrder string, total float64) (string, error)
}

// Turn is one inbound request against a session's order.
type Turn struct {
	SessionID  string
	CustomerID string
	Utterance  string
}

// Engine routes utterances to informational handlers or the clause
// pipeline and owns all order-state mutation for a turn.
type Engine struct {
	catalog  *menu.Catalog
	sessions *session.Store
	orders   storage.OrderRepository
	phraser  Rephraser
	metrics  *monitoring.Metrics
	log      zerolog.Logger
}

// NewEngine wires the engine's collaborators together.
func NewEngine(catalog *menu.Catalog, sessions *session.Store, orders storage.OrderRepository, phraser Rephraser, metrics *monitoring.Metrics, logger zerolog.Logger) *Engine {
	return &Engine{
		catalog:  catalog,
		sessions: sessions,
		orders:   orders,
		phraser:  phraser,
		metrics:  metrics,
		log:      logger,
	}
}

// HandleTurn processes one utterance and returns the reply text. The
// whole turn runs under the session's lock, so two turns for the same
// session never race on the order. Mutations already applied stay
// applied when a downstream call fails.
func (e *Engine) HandleTurn(ctx context.Context, turn Turn) (string, error) {
	if turn.SessionID == "" {
		return "", errors.New("session id is required")
	}

	sess := e.sessions.Get(turn.SessionID)
	sess.Lock()
	defer sess.Unlock()

	reply, err := e.dispatch(ctx, sess, turn)
	if err != nil {
		e.metrics.TurnsTotal.WithLabelValues(monitoring.OutcomeError).Inc()
		e.log.Error().Err(err).Str("session", turn.SessionID).Msg("turn failed")
		return "", err
	}
	e.metrics.TurnsTotal.WithLabelValues(monitoring.OutcomeOK).Inc()
	return reply, nil
}

// dispatch applies the informational short-circuits in priority order
// and falls through to clause processing.
func (e *Engine) dispatch(ctx context.Context, sess *session.Session, turn Turn) (string, error) {
	utterance := turn.Utterance
	norm := menu.Normalize(utterance)

	switch {
	case utterance == ArrivalSentinel:
		return e.handleArrival(sess, turn.CustomerID)
	case sess.State() == session.StateAwaitingRepeatReply:
		return e.handleRepeatReply(ctx, sess, norm)
	case containsAny(norm, resetPhrases):
		sess.Clear()
		return "All cleared! What would you like to order?", nil
	case strings.Contains(norm, "calorie"):
		return e.handleCalories(utterance), nil
	case containsAny(norm, pricePhrases):
		return e.handlePrice(utterance), nil
	}
	if reply, ok := e.handleCategoryListing(norm); ok {
		return reply, nil
	}
	switch {
	case containsAny(norm, menuPhrases):
		return "Here's our menu:\n\n" + e.catalog.RenderMenu(), nil
	case containsAny(norm, finalizePhrases):
		return e.handleFinalize(sess, turn)
	case containsAny(norm, inquiryPhrases):
		return e.handleInquiry(sess), nil
	}

	return e.processClauses(ctx, sess, utterance)
}

// processClauses segments the utterance, classifies each clause and
// applies the requested mutations, then hands the accumulated change
// summary to the external phraser. A clause that fails to resolve adds
// a note to the summary instead of aborting the turn.
func (e *Engine) processClauses(ctx context.Context, sess *session.Session, utterance string) (string, error) {
	var summary strings.Builder
	op := parser.OpNone

	for _, clause := range parser.Segment(utterance) {
		op = parser.Classify(clause, op)
		switch op {
		case parser.OpRemove:
			e.applyRemove(sess, clause, &summary)
		case parser.OpReplace:
			e.applyReplace(sess, clause, &summary)
		default:
			e.applyAdd(sess, clause, &summary)
		}
	}

	return e.rephrase(ctx, sess, strings.TrimSpace(summary.String()))
}

func (e *Engine) rephrase(ctx context.Context, sess *session.Session, summary string) (string, error) {
	start := time.Now()
	reply, err := e.phraser.Rephrase(ctx, summary, models.FormatLines(sess.Lines()), sess.Total())
	e.metrics.LLMDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("rephrase reply: %w", err)
	}
	return reply, nil
}

// applyAdd resolves the clause into order lines and merges them in,
// honoring explicit "2 sweet teas" style quantities.
func (e *Engine) applyAdd(sess *session.Session, clause string, summary *strings.Builder) {
	lines := e.resolveClause(clause)
	if len(lines) == 0 {
		fmt.Fprintf(summary, "Didn't recognize any items in: %q\n\n", clause)
		return
	}
	for _, line := range lines {
		sess.Merge(line)
	}
	fmt.Fprintf(summary, "Added:\n%s\n\n", models.FormatLines(lines))
}

// applyRemove takes the referenced quantity off matching lines. An
// unmatched target is reported per-clause, never fatal.
func (e *Engine) applyRemove(sess *session.Session, clause string, summary *strings.Builder) {
	lines := e.resolveClause(clause)
	if len(lines) == 0 {
		fmt.Fprintf(summary, "Could not find any items to remove in: %q\n\n", clause)
		return
	}
	for _, line := range lines {
		qty := line.Quantity
		if qty <= 0 {
			qty = defaultRemoveQuantity
		}
		removed, ok := sess.Remove(line, qty)
		if !ok {
			fmt.Fprintf(summary, "Couldn't find %s in your order.\n\n", line.DisplayName)
			continue
		}
		fmt.Fprintf(summary, "Removed:\n- %d %s\n\n", removed, line.DisplayName)
	}
}

// applyReplace splits the clause on "to"/"with"/"instead", resolves the
// halves and swaps the best-scoring existing line for the new item. If
// nothing in the order scores, the new item is added instead.
func (e *Engine) applyReplace(sess *session.Session, clause string, summary *strings.Builder) {
	oldRef, newRef, ok := parser.SplitReplace(clause)
	if !ok {
		fmt.Fprintf(summary, "Could not determine what to replace in: %q\n\n", clause)
		return
	}

	oldLines := e.resolveClause(oldRef)
	newLines := e.resolveClause(newRef)
	if len(oldLines) == 0 || len(newLines) == 0 {
		fmt.Fprintf(summary, "Could not determine what to replace in: %q\n\n", clause)
		return
	}
	oldLine, newLine := oldLines[0], newLines[0]

	replaced, found := sess.Replace(oldLine, oldLine.Quantity, newLine)
	if !found {
		sess.Merge(newLine)
		fmt.Fprintf(summary, "Added:\n%s\n\n", models.FormatLines([]models.OrderLine{newLine}))
		return
	}
	fmt.Fprintf(summary, "Replaced %s with %d %s.\n\n", replaced, newLine.Quantity, newLine.DisplayName)
}

// resolveClause turns a clause into order lines, honoring explicit
// quantity-item phrases.
func (e *Engine) resolveClause(clause string) []models.OrderLine {
	return parser.ClauseLines(clause, e.catalog)
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
