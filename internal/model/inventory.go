package model

import "time"

// PantryItem is a tracked pantry record. Quantity and Unit absent together
// denote a staple: always assumed available until manually deactivated.
// Items are never hard-deleted by the UI flows; they are toggled inactive
// when unusable.
type PantryItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  *float64  `json:"quantity,omitempty"`
	Unit      Unit      `json:"unit,omitempty"`
	Category  string    `json:"category,omitempty"`
	Active    bool      `json:"active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsStaple reports whether the item is tracked without a quantity.
func (p PantryItem) IsStaple() bool {
	return p.Quantity == nil && p.Unit == ""
}

// BarCategory classifies a bar item.
type BarCategory string

const (
	BarSpirit  BarCategory = "spirit"
	BarMixer   BarCategory = "mixer"
	BarProduce BarCategory = "produce"
	BarHerb    BarCategory = "herb"
	BarOther   BarCategory = "other"
)

// BarItem is a home-bar record. Perishability is derived from the category,
// not stored; perishable items are deactivated by the decay pass once their
// age exceeds the shelf-life threshold.
type BarItem struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Quantity  float64     `json:"quantity"`
	Unit      Unit        `json:"unit"`
	Category  BarCategory `json:"category"`
	Active    bool        `json:"active"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Perishable reports whether the item's category implies spoilage.
func (b BarItem) Perishable() bool {
	return b.Category == BarProduce || b.Category == BarHerb
}
