package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mealweek/backend/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func TestPantryAddManualPrepends(t *testing.T) {
	p := NewPantry()
	p.AddManual("Flour", floatPtr(2), model.UnitPound, "baking")
	second := p.AddManual("Olive Oil", floatPtr(500), model.UnitMilliliter, "")

	items := p.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID, "newest item comes first")
	assert.True(t, items[0].Active)
	assert.False(t, items[0].UpdatedAt.IsZero())
}

func TestPantryStapleDetection(t *testing.T) {
	p := NewPantry()
	staple := p.AddManual("Salt", nil, "", "")
	tracked := p.AddManual("Rice", floatPtr(1), model.UnitKilogram, "")

	assert.True(t, staple.IsStaple())
	assert.False(t, tracked.IsStaple())

	staples := p.Staples()
	assert.Len(t, staples, 1)
	assert.Equal(t, "Salt", staples[0].Name)
}

func TestPantryEditMissingIDIsNoOp(t *testing.T) {
	p := NewPantry()
	p.AddManual("Sugar", nil, "", "")

	name := "Brown Sugar"
	p.EditItem("no-such-id", PantryPatch{Name: &name})

	assert.Equal(t, "Sugar", p.Items()[0].Name)
}

func TestPantryEditRefreshesTimestamp(t *testing.T) {
	p := NewPantry()
	item := p.AddManual("Sugar", nil, "", "")
	before := p.Items()[0].UpdatedAt

	time.Sleep(5 * time.Millisecond)
	name := "Brown Sugar"
	p.EditItem(item.ID, PantryPatch{Name: &name})

	got := p.Items()[0]
	assert.Equal(t, "Brown Sugar", got.Name)
	assert.True(t, got.UpdatedAt.After(before))
}

func TestPantryRemoveIdempotent(t *testing.T) {
	p := NewPantry()
	item := p.AddManual("Beans", floatPtr(3), model.UnitCount, "")

	p.RemoveItem(item.ID)
	p.RemoveItem(item.ID)

	assert.Empty(t, p.Items())
}

func TestPantryDeactivateKeepsItemVisible(t *testing.T) {
	p := NewPantry()
	item := p.AddManual("Old Spice Mix", nil, "", "")

	p.Deactivate(item.ID)

	assert.Len(t, p.Items(), 1)
	assert.False(t, p.Items()[0].Active)
	assert.Empty(t, p.ActiveItems())
}

func TestReorderStapleLeavesPantryUntouched(t *testing.T) {
	p := NewPantry()
	p.AddManual("Salt", nil, "", "")

	line := p.ReorderStaple("Salt")

	assert.Equal(t, model.SectionExtra, line.Section)
	assert.Equal(t, "Salt", line.Name)
	assert.Greater(t, line.EstPrice, 0.0)
	assert.Len(t, p.Items(), 1)
	assert.True(t, p.Items()[0].Active)
}

func TestPantryPhotoIntake(t *testing.T) {
	p := NewPantry()

	added := p.IntakeFromPhoto("https://bucket/pantry/abc.jpg", []string{"Pasta", "Canned Tomatoes"})

	assert.Len(t, added, 2)
	assert.Equal(t, "https://bucket/pantry/abc.jpg", p.IntakePhotoURL())
	for _, item := range added {
		assert.True(t, item.IsStaple())
	}
	assert.Len(t, p.Items(), 2)
}

func TestBarFadePass(t *testing.T) {
	b := NewBar()
	lime := b.AddManual("Lime", 4, model.UnitCount, model.BarProduce)
	b.AddManual("Vodka", 750, model.UnitMilliliter, model.BarSpirit)

	// age the lime past the threshold
	b.EditItem(lime.ID, BarPatch{})
	for i := range b.items {
		if b.items[i].ID == lime.ID {
			b.items[i].UpdatedAt = time.Now().Add(-6 * 24 * time.Hour)
		}
	}

	b.FadePass(time.Now())

	var limeActive, vodkaActive bool
	for _, item := range b.Items() {
		switch item.Name {
		case "Lime":
			limeActive = item.Active
		case "Vodka":
			vodkaActive = item.Active
		}
	}
	assert.False(t, limeActive)
	assert.True(t, vodkaActive)
	assert.Len(t, b.ActiveItems(), 1)
}

func TestBarEditAndRemove(t *testing.T) {
	b := NewBar()
	item := b.AddManual("Tonic", 1, model.UnitCount, model.BarMixer)

	qty := 6.0
	b.EditItem(item.ID, BarPatch{Quantity: &qty})
	assert.Equal(t, 6.0, b.Items()[0].Quantity)

	b.EditItem("missing", BarPatch{Quantity: floatPtr(99)})
	assert.Equal(t, 6.0, b.Items()[0].Quantity)

	b.RemoveItem(item.ID)
	b.RemoveItem(item.ID)
	assert.Empty(t, b.Items())
}
