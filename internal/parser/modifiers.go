package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"maitred/internal/menu"
	"maitred/internal/models"
)

// Resolve derives size, ice, combo exclusions and addons for a matched
// item from the full clause text and returns the resulting order line
// with quantity 1.
//
// Pricing policy: when an item is both sized and a combo with
// exclusions, the size price is applied first and exclusion deductions
// are subtracted from the sized price.
func Resolve(item *models.MenuItem, clause string, cat *menu.Catalog) models.OrderLine {
	norm := menu.Normalize(clause)
	id := models.LineIdentity{Base: item.Name}
	price := item.BasePrice()

	// Combo exclusions. A component's deduction is its standalone
	// catalog price; components not separately priced deduct nothing.
	var deduction float64
	if item.IsCombo() {
		for _, comp := range item.ComboComponents {
			cn := menu.Normalize(comp)
			if strings.Contains(norm, "no "+cn) || strings.Contains(norm, "without "+cn) {
				id.Exclusions = append(id.Exclusions, comp)
				if standalone, ok := cat.ByName(comp); ok && standalone.Price != nil {
					deduction += *standalone.Price
				}
			}
		}
	}

	if item.HasSizes() {
		chosen := pickSize(item, norm)
		id.Size = chosen.Label
		price = chosen.Price
	}
	price = models.Round2(price - deduction)

	if len(item.IceOptions) > 0 {
		id.Ice = item.DefaultIce()
		for _, opt := range item.IceOptions {
			if strings.Contains(norm, menu.Normalize(opt)) {
				id.Ice = opt
				break
			}
		}
	}

	// Addons match as whole words against the raw lowercased clause so
	// "lemonade" never selects a "Lemon" addon.
	if len(item.AddonChoices) > 0 {
		lowered := strings.ToLower(clause)
		for _, choice := range item.AddonChoices {
			if len(id.Addons) >= models.MaxAddons {
				break
			}
			pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(choice)) + `\b`)
			if pattern.MatchString(lowered) {
				id.Addons = append(id.Addons, choice)
			}
		}
	}

	return models.OrderLine{
		Identity:    id,
		DisplayName: renderDisplayName(item, id),
		UnitPrice:   price,
		Quantity:    1,
	}
}

// pickSize returns the size named in the clause, else the default:
// "small" if defined, then "regular", then the first listed size.
func pickSize(item *models.MenuItem, norm string) models.SizeOption {
	for _, size := range item.Sizes {
		if strings.Contains(norm, menu.Normalize(size.Label)) {
			return size
		}
	}
	for _, label := range []string{"small", "regular"} {
		for _, size := range item.Sizes {
			if strings.Contains(menu.Normalize(size.Label), label) {
				return size
			}
		}
	}
	return item.Sizes[0]
}

// renderDisplayName builds the customer-facing label: base name,
// exclusions, size, non-default ice, addons. The identity stays the
// source of truth; this string is presentation only.
func renderDisplayName(item *models.MenuItem, id models.LineIdentity) string {
	name := id.Base
	if len(id.Exclusions) > 0 {
		name += fmt.Sprintf(" (No %s)", strings.Join(id.Exclusions, ", "))
	}
	if id.Size != "" {
		name += fmt.Sprintf(" (%s)", id.Size)
	}
	if id.Ice != "" && id.Ice != item.DefaultIce() {
		name += ", " + id.Ice
	}
	if len(id.Addons) > 0 {
		name += fmt.Sprintf(" [%s]", strings.Join(id.Addons, ", "))
	}
	return name
}

// ExtractLines matches the clause against the catalog and, on a hit,
// resolves modifiers into a single order line. An unrecognized clause
// yields no lines.
func ExtractLines(clause string, cat *menu.Catalog) []models.OrderLine {
	match, ok := BestMatch(clause, cat)
	if !ok {
		return nil
	}
	return []models.OrderLine{Resolve(match.Item, clause, cat)}
}

// ClauseLines turns one clause into order lines. Explicit quantity-item
// phrases ("2 sweet teas") each resolve independently with the captured
// quantity; a leading integer that is actually part of an item name
// ("3 Finger Combo") stays part of the name with quantity 1. Without
// quantity phrases the whole clause resolves to a single line.
func ClauseLines(clause string, cat *menu.Catalog) []models.OrderLine {
	var lines []models.OrderLine
	for _, ref := range FindQuantities(clause) {
		digits := strconv.Itoa(ref.Quantity)
		namePhrase := digits + " " + ref.Phrase
		if match, ok := BestMatch(namePhrase, cat); ok &&
			strings.HasPrefix(menu.Normalize(match.Item.Name), digits+" ") {
			lines = append(lines, Resolve(match.Item, clause, cat))
			continue
		}

		match, ok := BestMatch(ref.Phrase, cat)
		if !ok {
			continue
		}
		line := Resolve(match.Item, clause, cat)
		line.Quantity = ref.Quantity
		lines = append(lines, line)
	}
	if len(lines) > 0 {
		return lines
	}
	return ExtractLines(clause, cat)
}
