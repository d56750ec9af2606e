package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"maitred/internal/models"
)

func price(v float64) *float64 { return &v }

func testItems() []models.MenuItem {
	return []models.MenuItem{
		{Name: "3 Finger Combo", Category: models.CategoryCombos, Price: price(8.99)},
		{
			Name:     "Sweet Tea",
			Category: models.CategoryDrinks,
			Sizes: []models.SizeOption{
				{Label: "Small", Price: 1.99},
				{Label: "Large", Price: 2.99},
			},
		},
		{Name: "Fries", Category: models.CategoryExtras, Price: price(1.00)},
		{Name: "Texas Toast", Category: models.CategoryExtras, Price: price(1.00)},
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Cane's Sauce", "canes sauce"},
		{"  What's my ORDER?!  ", "whats my order"},
		{"3 Finger Combo", "3 finger combo"},
		{"no-ice, please", "noice please"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "Normalize(%q)", tc.in)
	}
}

func TestByNameIsNormalized(t *testing.T) {
	c := New(testItems())

	item, ok := c.ByName("sweet tea")
	assert.True(t, ok)
	assert.Equal(t, "Sweet Tea", item.Name)

	_, ok = c.ByName("iced coffee")
	assert.False(t, ok)
}

func TestCategoriesKeepSourceOrder(t *testing.T) {
	c := New(testItems())
	assert.Equal(t, []string{models.CategoryCombos, models.CategoryDrinks, models.CategoryExtras}, c.Categories())
}

func TestInCategory(t *testing.T) {
	c := New(testItems())

	extras := c.InCategory("extras")
	assert.Len(t, extras, 2)
	assert.Empty(t, c.InCategory("Desserts"))
}

func TestRenderCategory(t *testing.T) {
	c := New(testItems())

	out := c.RenderCategory(models.CategoryDrinks)
	assert.Contains(t, out, "== Drinks ==")
	assert.Contains(t, out, "Sweet Tea")
	assert.Contains(t, out, "Small: $1.99")
	assert.NotContains(t, out, "Fries")

	assert.Empty(t, c.RenderCategory("Desserts"))
}

func TestRenderMenu(t *testing.T) {
	c := New(testItems())

	out := c.RenderMenu()
	assert.Contains(t, out, "== Combos ==")
	assert.Contains(t, out, "3 Finger Combo - $8.99")
	assert.Contains(t, out, "== Extras ==")
	assert.Contains(t, out, "Texas Toast - $1.00")
}
