// Package cart aggregates approved-menu ingredient lines and manually added
// extras into priced sections.
package cart

import (
	"math"

	"github.com/mealweek/backend/internal/derive"
	"github.com/mealweek/backend/internal/model"
	"github.com/mealweek/backend/internal/planner"
)

// Totals is the display view of the cart. Values are rounded to two decimals
// for presentation; budget checks use the unrounded sums from the planner.
type Totals struct {
	MealSubtotal  float64 `json:"meal_subtotal"`
	ExtraSubtotal float64 `json:"extra_subtotal"`
	GrandTotal    float64 `json:"grand_total"`
}

// Cart owns the two line collections for one session.
type Cart struct {
	mealLines  []model.CartLine
	extraLines []model.CartLine
}

func New() *Cart {
	return &Cart{}
}

// ApproveMenu scales the menu's ingredients by its current portion count,
// projects each into a meal-section line, appends the lines and flips the
// approved flag. Each call is an explicit user-initiated append: re-approving
// after a portion change adds a second set of lines rather than replacing the
// first.
func (c *Cart) ApproveMenu(menu *model.MenuItem) []model.CartLine {
	scaled := derive.ScaleIngredients(menu.Ingredients, float64(menu.Portions))
	lines := make([]model.CartLine, 0, len(scaled))
	for _, ing := range scaled {
		lines = append(lines, model.CartLine{
			ID:       derive.NewID(),
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			EstPrice: derive.LinePrice(ing),
			Section:  model.SectionMeal,
		})
	}
	c.mealLines = append(c.mealLines, lines...)
	menu.Approved = true
	return lines
}

// AddExtra appends one manually entered extra-section line. Negative
// quantities are clamped to zero; no other validation happens here.
func (c *Cart) AddExtra(name string, qty float64, unit model.Unit, price float64) model.CartLine {
	if qty < 0 {
		qty = 0
	}
	if price < 0 {
		price = 0
	}
	line := model.CartLine{
		ID:       derive.NewID(),
		Name:     name,
		Quantity: qty,
		Unit:     unit,
		EstPrice: price,
		Section:  model.SectionExtra,
	}
	c.extraLines = append(c.extraLines, line)
	return line
}

// AddExtraLine appends an already-built extra line, e.g. a staple reorder.
func (c *Cart) AddExtraLine(line model.CartLine) {
	line.Section = model.SectionExtra
	if line.EstPrice < 0 {
		line.EstPrice = 0
	}
	c.extraLines = append(c.extraLines, line)
}

// ComputeTotals returns the rounded section subtotals and grand total.
func (c *Cart) ComputeTotals() Totals {
	meal := planner.SumLines(c.mealLines)
	extra := planner.SumLines(c.extraLines)
	return Totals{
		MealSubtotal:  round2(meal),
		ExtraSubtotal: round2(extra),
		GrandTotal:    round2(meal + extra),
	}
}

// ClearSection empties one line collection. There is no undo.
func (c *Cart) ClearSection(section model.Section) {
	switch section {
	case model.SectionMeal:
		c.mealLines = nil
	case model.SectionExtra:
		c.extraLines = nil
	}
}

// MealLines returns a copy of the meal-section lines.
func (c *Cart) MealLines() []model.CartLine {
	out := make([]model.CartLine, len(c.mealLines))
	copy(out, c.mealLines)
	return out
}

// ExtraLines returns a copy of the extra-section lines.
func (c *Cart) ExtraLines() []model.CartLine {
	out := make([]model.CartLine, len(c.extraLines))
	copy(out, c.extraLines)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
