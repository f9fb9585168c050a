package inventory

import (
	"time"

	"github.com/mealweek/backend/internal/derive"
	"github.com/mealweek/backend/internal/model"
)

// BarPatch is a partial update for a bar item. Nil fields are left unchanged.
type BarPatch struct {
	Name     *string
	Quantity *float64
	Unit     *model.Unit
	Category *model.BarCategory
}

// Bar is the ordered home-bar collection for one session. Lifecycle mirrors
// the pantry, with a decay pass for perishable categories.
type Bar struct {
	items []model.BarItem
}

func NewBar() *Bar {
	return &Bar{}
}

// AddManual prepends a new active item, timestamped now.
func (b *Bar) AddManual(name string, qty float64, unit model.Unit, category model.BarCategory) model.BarItem {
	item := model.BarItem{
		ID:        derive.NewID(),
		Name:      name,
		Quantity:  qty,
		Unit:      unit,
		Category:  category,
		Active:    true,
		UpdatedAt: time.Now().UTC(),
	}
	b.items = append([]model.BarItem{item}, b.items...)
	return item
}

// EditItem applies a partial patch and refreshes the updated timestamp.
// Silent no-op on a missing id.
func (b *Bar) EditItem(id string, patch BarPatch) {
	for i := range b.items {
		if b.items[i].ID != id {
			continue
		}
		if patch.Name != nil {
			b.items[i].Name = *patch.Name
		}
		if patch.Quantity != nil {
			b.items[i].Quantity = *patch.Quantity
		}
		if patch.Unit != nil {
			b.items[i].Unit = *patch.Unit
		}
		if patch.Category != nil {
			b.items[i].Category = *patch.Category
		}
		b.items[i].UpdatedAt = time.Now().UTC()
		return
	}
}

// RemoveItem removes by id; idempotent.
func (b *Bar) RemoveItem(id string) {
	for i := range b.items {
		if b.items[i].ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return
		}
	}
}

// Deactivate soft-disables an item. Silent no-op on a missing id.
func (b *Bar) Deactivate(id string) {
	for i := range b.items {
		if b.items[i].ID == id {
			b.items[i].Active = false
			b.items[i].UpdatedAt = time.Now().UTC()
			return
		}
	}
}

// FadePass deactivates perishables whose age exceeds the shelf-life
// threshold, recomputed from stored timestamps each time it runs. There is no
// background timer.
func (b *Bar) FadePass(now time.Time) {
	b.items = derive.FadePerishables(b.items, now)
}

// Items returns a copy of the collection in order.
func (b *Bar) Items() []model.BarItem {
	out := make([]model.BarItem, len(b.items))
	copy(out, b.items)
	return out
}

// ActiveItems returns the active subset, used for generation snapshots.
func (b *Bar) ActiveItems() []model.BarItem {
	var out []model.BarItem
	for _, item := range b.items {
		if item.Active {
			out = append(out, item)
		}
	}
	return out
}
