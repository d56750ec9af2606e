package models

// Menu categories as stored in the catalog source.
const (
	CategoryCombos    = "Combos"
	CategoryDrinks    = "Drinks"
	CategoryTailgates = "Tailgates"
	CategoryExtras    = "Extras"
)

// MaxAddons caps how many addon choices a single order line may carry.
const MaxAddons = 2

// SizeOption is one purchasable size of a menu item.
type SizeOption struct {
	Label    string  `yaml:"label" json:"label"`
	Price    float64 `yaml:"price" json:"price"`
	Calories *int    `yaml:"calories,omitempty" json:"calories,omitempty"`
}

// MenuItem represents a single item on the menu. Items are read-only
// reference data: the ordering engine copies prices onto order lines at
// resolution time and never writes back.
type MenuItem struct {
	Name            string       `yaml:"name" json:"name"`
	Category        string       `yaml:"category" json:"category"`
	Price           *float64     `yaml:"price,omitempty" json:"price,omitempty"`
	Calories        *int         `yaml:"calories,omitempty" json:"calories,omitempty"`
	Sizes           []SizeOption `yaml:"sizes,omitempty" json:"sizes,omitempty"`
	ComboComponents []string     `yaml:"comboComponents,omitempty" json:"comboComponents,omitempty"`
	IceOptions      []string     `yaml:"iceOptions,omitempty" json:"iceOptions,omitempty"`
	AddonChoices    []string     `yaml:"addonChoices,omitempty" json:"addonChoices,omitempty"`
}

// IsCombo reports whether the item is a combo with removable components.
func (mi *MenuItem) IsCombo() bool {
	return mi.Category == CategoryCombos && len(mi.ComboComponents) > 0
}

// HasSizes reports whether the item is ordered by size.
func (mi *MenuItem) HasSizes() bool {
	return len(mi.Sizes) > 0
}

// DefaultIce returns the item's standard ice option. The first listed
// option is the house default; an empty string means ice does not apply.
func (mi *MenuItem) DefaultIce() string {
	if len(mi.IceOptions) == 0 {
		return ""
	}
	return mi.IceOptions[0]
}

// BasePrice returns the item-level price, or 0 when the item prices only
// through its sizes or components.
func (mi *MenuItem) BasePrice() float64 {
	if mi.Price == nil {
		return 0
	}
	return *mi.Price
}
