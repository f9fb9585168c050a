// Package derive holds the pure derivation functions shared by the planner,
// inventory and cart layers: id generation, timestamping, numeric coercion,
// line pricing, ingredient scaling and perishable decay. Nothing in this
// package performs I/O or suspends.
package derive

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mealweek/backend/internal/model"
)

// PerishableShelfLife is how long a perishable bar item stays active after
// its last update. Hard-coded policy constant carried over from the product.
const PerishableShelfLife = 5 * 24 * time.Hour

// NewID returns a collision-resistant opaque identifier combining a random
// component with a monotonically increasing time component. Not
// cryptographically secure.
func NewID() string {
	return fmt.Sprintf("%s-%d", uuid.NewString()[:8], time.Now().UnixNano())
}

// TimestampNow returns the current instant as an ISO-8601 string. It is the
// single source of "now" for payload assembly.
func TimestampNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// CoerceNumber parses a free-form numeric string, returning fallback when the
// text does not parse. It never fails.
func CoerceNumber(text string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return fallback
	}
	return v
}

// LinePrice prices one ingredient: quantity times its estimated unit price,
// defaulting the unit price to 1 when unknown. The default is a placeholder
// policy, not a price lookup.
func LinePrice(ing model.Ingredient) float64 {
	unit := 1.0
	if ing.EstPrice != nil {
		unit = *ing.EstPrice
	}
	return ing.Quantity * unit
}

// ScaleIngredients returns a fresh list with every quantity multiplied by
// multiplier. The input list is never mutated; downstream state updates
// depend on getting a new slice every call.
func ScaleIngredients(ingredients []model.Ingredient, multiplier float64) []model.Ingredient {
	scaled := make([]model.Ingredient, len(ingredients))
	for i, ing := range ingredients {
		ing.Quantity *= multiplier
		scaled[i] = ing
	}
	return scaled
}

// FadePerishables returns a copy of items with every perishable item older
// than the shelf-life threshold marked inactive. Non-perishable items and
// items within the window pass through unchanged. Pure and idempotent.
func FadePerishables(items []model.BarItem, now time.Time) []model.BarItem {
	faded := make([]model.BarItem, len(items))
	for i, item := range items {
		if item.Perishable() && now.Sub(item.UpdatedAt) > PerishableShelfLife {
			item.Active = false
		}
		faded[i] = item
	}
	return faded
}
