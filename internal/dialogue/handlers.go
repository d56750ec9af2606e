package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"maitred/internal/menu"
	"maitred/internal/models"
	"maitred/internal/parser"
	"maitred/internal/session"
)

// Phrase tables, matched against normalized utterances (lowercased,
// punctuation stripped), so "that's all" arrives as "thats all".
var (
	resetPhrases = []string{"clear my order", "start over", "reset my order", "scratch that"}

	pricePhrases = []string{"how much", "price of", "cost of"}

	menuPhrases = []string{"menu", "what do you have", "show me", "options"}

	finalizePhrases = []string{"finished", "that is all", "thats all", "done", "im done", "that finishes my order"}

	inquiryPhrases = []string{
		"whats my order", "what is my order", "what have i ordered",
		"show me my order", "what do i have", "what have i got",
		"current order", "so far in my order",
	}

	affirmativeWords = []string{"yes", "yeah", "yep", "sure", "okay", "ok", "please"}
	negativeWords    = []string{"no", "nah", "nope", "not"}

	categoryPhrases = []struct {
		category string
		phrases  []string
	}{
		{models.CategoryDrinks, []string{"what drinks", "what beverages"}},
		{models.CategoryCombos, []string{"what combos", "what meals"}},
		{models.CategoryTailgates, []string{"what tailgates"}},
		{models.CategoryExtras, []string{"what extras", "what sides"}},
	}
)

// handleArrival greets a new session. When the caller has a stable
// customer identity with a previous finalized order, the engine offers
// to repeat it and parks the session awaiting a yes/no.
func (e *Engine) handleArrival(sess *session.Session, customerID string) (string, error) {
	if customerID == "" {
		return "Welcome! What can I get started for you today?", nil
	}

	doc, found, err := e.orders.LatestForCustomer(customerID)
	if err != nil {
		return "", fmt.Errorf("look up previous order: %w", err)
	}
	if !found || len(doc.Items) == 0 {
		return "Welcome! What can I get started for you today?", nil
	}

	sess.SetPendingRepeat(doc.Items)
	return fmt.Sprintf(
		"Welcome back! Last time you ordered:\n%s\nWould you like the same order again?",
		models.FormatLines(doc.Items),
	), nil
}

// handleRepeatReply consumes the caller's answer to a pending repeat
// offer. Affirmative reapplies the stored lines as fresh additions,
// negative clears the offer, anything else re-prompts.
func (e *Engine) handleRepeatReply(ctx context.Context, sess *session.Session, norm string) (string, error) {
	words := strings.Fields(norm)
	switch {
	case hasAnyWord(words, negativeWords):
		sess.ClearPendingRepeat()
		return "No problem! What would you like to order instead?", nil
	case hasAnyWord(words, affirmativeWords):
		pending := sess.PendingRepeat()
		for _, line := range pending {
			sess.Merge(line)
		}
		sess.ClearPendingRepeat()
		summary := "Added:\n" + models.FormatLines(pending)
		return e.rephrase(ctx, sess, summary)
	default:
		return "Just to confirm - would you like your previous order again? Yes or no?", nil
	}
}

// handleCalories answers calorie lookups from catalog fields, using the
// size resolved onto the line to pick per-size calories when present.
func (e *Engine) handleCalories(utterance string) string {
	lines := parser.ExtractLines(utterance, e.catalog)
	if len(lines) == 0 {
		return "Could you clarify which item you'd like to know the calories for?"
	}

	var b strings.Builder
	for _, line := range lines {
		item, ok := e.catalog.ByName(line.Identity.Base)
		if !ok {
			continue
		}
		calories := item.Calories
		if line.Identity.Size != "" {
			if size, found := findSize(item, line.Identity.Size); found {
				calories = size.Calories
			}
		}
		if calories != nil {
			fmt.Fprintf(&b, "%s has approximately %d calories.\n", line.DisplayName, *calories)
		} else {
			fmt.Fprintf(&b, "Sorry, I couldn't find calorie info for %s.\n", line.DisplayName)
		}
	}
	return strings.TrimSpace(b.String())
}

// handlePrice answers price lookups, size-aware the same way as
// handleCalories.
func (e *Engine) handlePrice(utterance string) string {
	lines := parser.ExtractLines(utterance, e.catalog)
	if len(lines) == 0 {
		return "Could you clarify which item you'd like the price for?"
	}

	var b strings.Builder
	for _, line := range lines {
		item, ok := e.catalog.ByName(line.Identity.Base)
		if !ok {
			continue
		}
		price := item.Price
		if line.Identity.Size != "" {
			if size, found := findSize(item, line.Identity.Size); found {
				price = &size.Price
			}
		}
		if price != nil {
			fmt.Fprintf(&b, "%s costs $%.2f.\n", line.DisplayName, *price)
		} else {
			fmt.Fprintf(&b, "Sorry, I couldn't find pricing info for %s.\n", line.DisplayName)
		}
	}
	return strings.TrimSpace(b.String())
}

// handleCategoryListing lists one category when the utterance asks for
// it ("what drinks do you have").
func (e *Engine) handleCategoryListing(norm string) (string, bool) {
	for _, entry := range categoryPhrases {
		if !containsAny(norm, entry.phrases) {
			continue
		}
		listing := e.catalog.RenderCategory(entry.category)
		if listing == "" {
			return fmt.Sprintf("Sorry, I couldn't find anything in the %s category.", strings.ToLower(entry.category)), true
		}
		return fmt.Sprintf("Here are our %s:\n\n%s", strings.ToLower(entry.category), listing), true
	}
	return "", false
}

// handleFinalize persists the order exactly as it stands and returns
// the closing summary. The session's live order is left in place; the
// persisted record is a snapshot and later mutations never touch it.
func (e *Engine) handleFinalize(sess *session.Session, turn Turn) (string, error) {
	lines := sess.Lines()
	if len(lines) == 0 {
		return "Your order looks empty at the moment. Let me know if you'd like to get started with something tasty!", nil
	}

	doc := models.OrderDocument{
		SessionID:  turn.SessionID,
		CustomerID: turn.CustomerID,
		Items:      lines,
		Total:      sess.Total(),
		Timestamp:  time.Now().UTC(),
	}
	if err := e.orders.Save(doc); err != nil {
		return "", fmt.Errorf("persist finalized order: %w", err)
	}
	e.metrics.OrdersSaved.Inc()
	e.log.Info().Str("session", turn.SessionID).Float64("total", doc.Total).Msg("order finalized")

	return fmt.Sprintf(
		"Thanks for your order! Here's what I have:\n%s\nYour total is $%.2f. Would you like anything else?",
		models.FormatLines(lines), doc.Total,
	), nil
}

// handleInquiry echoes the live order without mutating it.
func (e *Engine) handleInquiry(sess *session.Session) string {
	if sess.Empty() {
		return "You haven't added anything to your order just yet. Let me know when you're ready to begin!"
	}
	return fmt.Sprintf(
		"Your current order:\n%s\nTotal: $%.2f\nLet me know if you'd like to add, change, or remove anything!",
		models.FormatLines(sess.Lines()), sess.Total(),
	)
}

func findSize(item *models.MenuItem, label string) (models.SizeOption, bool) {
	for _, size := range item.Sizes {
		if menu.Normalize(size.Label) == menu.Normalize(label) {
			return size, true
		}
	}
	return models.SizeOption{}, false
}

func hasAnyWord(words, wanted []string) bool {
	for _, w := range words {
		for _, candidate := range wanted {
			if w == candidate {
				return true
			}
		}
	}
	return false
}
