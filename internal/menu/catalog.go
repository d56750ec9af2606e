package menu

import (
	"fmt"
	"regexp"
	"strings"

	"maitred/internal/models"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]+`)

// Normalize lowercases s and strips every character outside letters,
// digits and whitespace. All name matching in the parser runs on
// normalized text.
func Normalize(s string) string {
	return strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(s), ""))
}

// Catalog is an immutable per-process snapshot of the menu with a
// normalized-name index.
type Catalog struct {
	items      []models.MenuItem
	byNorm     map[string]*models.MenuItem
	categories []string
}

// New builds a catalog from the loaded menu items. Category order
// follows first appearance in the source.
func New(items []models.MenuItem) *Catalog {
	c := &Catalog{
		items:  items,
		byNorm: make(map[string]*models.MenuItem, len(items)),
	}
	seen := make(map[string]bool)
	for i := range c.items {
		item := &c.items[i]
		c.byNorm[Normalize(item.Name)] = item
		if item.Category != "" && !seen[item.Category] {
			seen[item.Category] = true
			c.categories = append(c.categories, item.Category)
		}
	}
	return c
}

// Items returns every catalog item.
func (c *Catalog) Items() []models.MenuItem {
	return c.items
}

// Len returns the number of catalog items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// ByName looks an item up by its name under normalization.
func (c *Catalog) ByName(name string) (*models.MenuItem, bool) {
	item, ok := c.byNorm[Normalize(name)]
	return item, ok
}

// InCategory returns the items belonging to a category, compared
// case-insensitively.
func (c *Catalog) InCategory(category string) []models.MenuItem {
	var out []models.MenuItem
	for _, item := range c.items {
		if strings.EqualFold(item.Category, category) {
			out = append(out, item)
		}
	}
	return out
}

// Categories returns the category names in catalog order.
func (c *Catalog) Categories() []string {
	return c.categories
}

// RenderCategory renders one category as a text listing.
func (c *Catalog) RenderCategory(category string) string {
	items := c.InCategory(category)
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", category)
	for _, item := range items {
		renderItem(&b, item)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderMenu renders the full catalog grouped by category.
func (c *Catalog) RenderMenu() string {
	var b strings.Builder
	for _, category := range c.categories {
		fmt.Fprintf(&b, "== %s ==\n", category)
		for _, item := range c.InCategory(category) {
			renderItem(&b, item)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderItem(b *strings.Builder, item models.MenuItem) {
	b.WriteString(item.Name)
	if item.Price != nil {
		fmt.Fprintf(b, " - $%.2f", *item.Price)
	}
	b.WriteString("\n")
	for _, size := range item.Sizes {
		fmt.Fprintf(b, "  %s: $%.2f\n", size.Label, size.Price)
	}
}
