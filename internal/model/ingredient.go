package model

// Unit is the unit of measure for an ingredient or inventory quantity.
type Unit string

const (
	UnitOunce      Unit = "oz"
	UnitPound      Unit = "lb"
	UnitMilliliter Unit = "ml"
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitCount      Unit = "count"
)

// Ingredient is a recipe ingredient. Quantities are per portion; scaling to
// the menu's portion count happens when lines are projected into the cart.
// An ingredient has no identity of its own and is always owned by the menu
// or cart line that contains it.
type Ingredient struct {
	Name     string   `json:"name"`
	Quantity float64  `json:"quantity"`
	Unit     Unit     `json:"unit"`
	EstPrice *float64 `json:"est_price,omitempty"`
}
