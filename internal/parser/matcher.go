package parser

import (
	"strings"

	"maitred/internal/menu"
	"maitred/internal/models"
)

// Match is the best catalog hit for a span of user text.
type Match struct {
	Item   *models.MenuItem
	Phrase string
	Score  float64
}

const (
	// matchThreshold is the minimum (exclusive) similarity a span must
	// reach to count as a hit.
	matchThreshold = 0.5
	// maxSpanWords bounds the length of candidate word spans.
	maxSpanWords = 4
)

// BestMatch scans every contiguous 1-4 word span of the normalized text
// and scores it against each catalog item name. The highest-scoring
// candidate above the threshold wins; on equal scores the item with the
// longer name wins, so a branded sub-item beats a generic one.
func BestMatch(text string, cat *menu.Catalog) (Match, bool) {
	words := strings.Fields(menu.Normalize(text))
	items := cat.Items()

	var best Match
	found := false
	for span := 1; span <= maxSpanWords; span++ {
		for i := 0; i+span <= len(words); i++ {
			phrase := strings.Join(words[i:i+span], " ")
			for idx := range items {
				item := &items[idx]
				score := diceSimilarity(phrase, menu.Normalize(item.Name))
				if score <= matchThreshold {
					continue
				}
				if !found || score > best.Score ||
					(score == best.Score && len(item.Name) > len(best.Item.Name)) {
					best = Match{Item: item, Phrase: phrase, Score: score}
					found = true
				}
			}
		}
	}
	return best, found
}

// diceSimilarity computes the Sorensen-Dice coefficient over character
// bigrams, ignoring spaces. Identical strings score 1.0; strings shorter
// than one bigram score 0 unless identical.
func diceSimilarity(a, b string) float64 {
	a = strings.ReplaceAll(a, " ", "")
	b = strings.ReplaceAll(b, " ", "")
	if a == b {
		return 1
	}
	if len(a) < 2 || len(b) < 2 {
		return 0
	}

	grams := make(map[string]int, len(a)-1)
	for i := 0; i+2 <= len(a); i++ {
		grams[a[i:i+2]]++
	}
	matches := 0
	for i := 0; i+2 <= len(b); i++ {
		g := b[i : i+2]
		if grams[g] > 0 {
			grams[g]--
			matches++
		}
	}
	return 2 * float64(matches) / float64(len(a)+len(b)-2)
}
