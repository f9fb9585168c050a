// Package inventory holds the per-session pantry and bar collections. The
// managers are plain ordered slices mutated only through the operations
// below; callers hold whatever locking the session store provides.
package inventory

import (
	"time"

	"github.com/mealweek/backend/internal/derive"
	"github.com/mealweek/backend/internal/model"
)

// stapleReorderPrice is the placeholder price attached to a staple reorder
// line. Stands in for a real reorder/checkout integration.
const stapleReorderPrice = 5.0

// PantryPatch is a partial update for a pantry item. Nil fields are left
// unchanged.
type PantryPatch struct {
	Name     *string
	Quantity *float64
	Unit     *model.Unit
	Category *string
}

// Pantry is the ordered pantry collection for one session.
type Pantry struct {
	items       []model.PantryItem
	intakePhoto string
}

func NewPantry() *Pantry {
	return &Pantry{}
}

// AddManual prepends a new active item. Quantity and unit both absent means
// the item is a staple with no tracked quantity; a quantity without a unit is
// invalid input and is the caller's responsibility to reject. Duplicate names
// are permitted.
func (p *Pantry) AddManual(name string, qty *float64, unit model.Unit, category string) model.PantryItem {
	item := model.PantryItem{
		ID:        derive.NewID(),
		Name:      name,
		Quantity:  qty,
		Unit:      unit,
		Category:  category,
		Active:    true,
		UpdatedAt: time.Now().UTC(),
	}
	p.items = append([]model.PantryItem{item}, p.items...)
	return item
}

// EditItem applies a partial patch and refreshes the updated timestamp. A
// missing id is a silent no-op; UI callers may race with a removal.
func (p *Pantry) EditItem(id string, patch PantryPatch) {
	for i := range p.items {
		if p.items[i].ID != id {
			continue
		}
		if patch.Name != nil {
			p.items[i].Name = *patch.Name
		}
		if patch.Quantity != nil {
			p.items[i].Quantity = patch.Quantity
		}
		if patch.Unit != nil {
			p.items[i].Unit = *patch.Unit
		}
		if patch.Category != nil {
			p.items[i].Category = *patch.Category
		}
		p.items[i].UpdatedAt = time.Now().UTC()
		return
	}
}

// RemoveItem removes by id. Removing a nonexistent id is a no-op.
func (p *Pantry) RemoveItem(id string) {
	for i := range p.items {
		if p.items[i].ID == id {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return
		}
	}
}

// Deactivate soft-disables an item. It remains visible in listings but is
// excluded from generation snapshots. Silent no-op on a missing id.
func (p *Pantry) Deactivate(id string) {
	for i := range p.items {
		if p.items[i].ID == id {
			p.items[i].Active = false
			p.items[i].UpdatedAt = time.Now().UTC()
			return
		}
	}
}

// ReorderStaple emits an extra-section cart line for the named staple with a
// fixed placeholder price. The staple record itself is untouched.
func (p *Pantry) ReorderStaple(name string) model.CartLine {
	return model.CartLine{
		ID:       derive.NewID(),
		Name:     name,
		Quantity: 1,
		Unit:     model.UnitCount,
		EstPrice: stapleReorderPrice,
		Section:  model.SectionExtra,
	}
}

// IntakeFromPhoto records the uploaded photo reference and creates a staple
// per recognized name. Recognition happens outside this layer; with no names
// this only stores the reference.
func (p *Pantry) IntakeFromPhoto(photoURL string, names []string) []model.PantryItem {
	p.intakePhoto = photoURL
	added := make([]model.PantryItem, 0, len(names))
	for _, name := range names {
		added = append(added, p.AddManual(name, nil, "", ""))
	}
	return added
}

// IntakePhotoURL returns the most recent photo-intake reference, if any.
func (p *Pantry) IntakePhotoURL() string {
	return p.intakePhoto
}

// Items returns a copy of the collection in order.
func (p *Pantry) Items() []model.PantryItem {
	out := make([]model.PantryItem, len(p.items))
	copy(out, p.items)
	return out
}

// ActiveItems returns the active subset, used for generation snapshots.
func (p *Pantry) ActiveItems() []model.PantryItem {
	var out []model.PantryItem
	for _, item := range p.items {
		if item.Active {
			out = append(out, item)
		}
	}
	return out
}

// Staples returns the active items tracked without quantity.
func (p *Pantry) Staples() []model.PantryItem {
	var out []model.PantryItem
	for _, item := range p.items {
		if item.Active && item.IsStaple() {
			out = append(out, item)
		}
	}
	return out
}
