package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	commaSplit      = regexp.MustCompile(`[,.?!/]+`)
	terminatorSplit = regexp.MustCompile(`[.?!/]+`)
	standaloneAnd   = regexp.MustCompile(`\band\b`)
	quantityPattern = regexp.MustCompile(`\b(\d+)\s+([a-zA-Z][a-zA-Z\s/'-]*?)(?:\s+and\s+|[,.?!]|$)`)
)

// Segment splits one utterance into independently-processable clauses.
//
// Commas win: an utterance containing a comma splits on commas and
// sentence terminators. Otherwise a standalone "and" splits the
// utterance, unless a modifier keyword is present - "no lettuce and
// tomato" names two exclusions, not two actions. Failing both, only
// sentence terminators split.
func Segment(utterance string) []string {
	var parts []string
	lowered := strings.ToLower(utterance)
	switch {
	case strings.Contains(utterance, ","):
		parts = commaSplit.Split(utterance, -1)
	case standaloneAnd.MatchString(lowered) && !hasModifierWord(lowered):
		parts = standaloneAnd.Split(lowered, -1)
	default:
		parts = terminatorSplit.Split(utterance, -1)
	}

	clauses := make([]string, 0, len(parts))
	for _, part := range parts {
		clause := strings.TrimSpace(part)
		clause = strings.TrimSpace(strings.TrimPrefix(clause, "and "))
		if clause == "" || strings.EqualFold(clause, "and") {
			continue
		}
		// A clause that opens with a modifier keyword continues the
		// previous clause: "a combo, no fries" names an exclusion on
		// the combo, not a fries order.
		if len(clauses) > 0 && startsWithModifier(clause) {
			clauses[len(clauses)-1] += " " + clause
			continue
		}
		clauses = append(clauses, clause)
	}
	return clauses
}

func startsWithModifier(clause string) bool {
	lowered := strings.ToLower(clause)
	return strings.HasPrefix(lowered, "no ") || strings.HasPrefix(lowered, "without ")
}

// hasModifierWord reports whether the text contains a standalone
// modifier keyword that binds an "and" into a single clause.
func hasModifierWord(lowered string) bool {
	for _, word := range strings.Fields(lowered) {
		switch strings.Trim(word, ",.?!") {
		case "no", "without", "with":
			return true
		}
	}
	return false
}

// QuantityRef is a "2 sweet teas" style phrase found inside a clause.
type QuantityRef struct {
	Quantity int
	Phrase   string
}

// FindQuantities extracts every leading-integer item phrase from a
// clause. The captured quantity overrides the default of 1 when the
// phrase resolves to a catalog item.
func FindQuantities(clause string) []QuantityRef {
	var refs []QuantityRef
	for _, m := range quantityPattern.FindAllStringSubmatch(clause, -1) {
		qty, err := strconv.Atoi(m[1])
		if err != nil || qty <= 0 {
			continue
		}
		refs = append(refs, QuantityRef{Quantity: qty, Phrase: strings.TrimSpace(m[2])})
	}
	return refs
}
