package model

// Section tags a cart line by origin: derived from an approved menu, or
// manually added.
type Section string

const (
	SectionMeal  Section = "meal"
	SectionExtra Section = "extra"
)

// CartLine is one priced line in the shopping cart. EstPrice is always
// non-negative; lines are owned exclusively by the cart aggregate and removed
// only by an explicit clear.
type CartLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     Unit    `json:"unit"`
	EstPrice float64 `json:"est_price"`
	Section  Section `json:"section"`
}
