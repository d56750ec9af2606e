package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIdentityEqual(t *testing.T) {
	base := LineIdentity{Base: "Sweet Tea", Size: "Small", Ice: "Cane's Ice"}

	same := base
	assert.True(t, base.Equal(same))

	sized := base
	sized.Size = "Large"
	assert.False(t, base.Equal(sized))

	excluded := LineIdentity{Base: "3 Finger Combo", Exclusions: []string{"Fries"}}
	assert.False(t, excluded.Equal(LineIdentity{Base: "3 Finger Combo"}))
	assert.True(t, excluded.Equal(LineIdentity{Base: "3 Finger Combo", Exclusions: []string{"Fries"}}))

	withAddon := base
	withAddon.Addons = []string{"Lemon"}
	assert.False(t, base.Equal(withAddon))
}

func TestOrderTotalRoundsToCents(t *testing.T) {
	lines := []OrderLine{
		{UnitPrice: 1.99, Quantity: 3},
		{UnitPrice: 7.99, Quantity: 1},
	}
	assert.InDelta(t, 13.96, OrderTotal(lines), 0.001)
	assert.InDelta(t, 0, OrderTotal(nil), 0.001)
}

func TestFormatLines(t *testing.T) {
	assert.Equal(t, "(none)", FormatLines(nil))

	out := FormatLines([]OrderLine{
		{DisplayName: "Sweet Tea (Small)", UnitPrice: 1.99, Quantity: 2},
		{DisplayName: "3 Finger Combo (No Fries)", UnitPrice: 7.99, Quantity: 1},
	})
	assert.Equal(t, "- 2 Sweet Tea (Small) ($3.98)\n- 1 3 Finger Combo (No Fries) ($7.99)", out)
}
