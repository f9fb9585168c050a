package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mealweek/backend/internal/model"
)

func TestStoreCreatesStateOnFirstUse(t *testing.T) {
	store := NewStore()
	userID := uuid.New()

	state := store.Get(userID)
	assert.NotNil(t, state.Pantry)
	assert.NotNil(t, state.Bar)
	assert.NotNil(t, state.Cart)
	assert.Equal(t, model.BudgetNone, state.Weekly.BudgetType)

	assert.Same(t, state, store.Get(userID), "same user gets the same state")
	assert.NotSame(t, state, store.Get(uuid.New()))
}

func TestReplaceMenusMarksOldOnesStale(t *testing.T) {
	state := newState()
	state.ReplaceMenus([]model.MenuItem{{ID: "m1", Title: "Tacos", Portions: 2}})
	state.ReplaceMenus([]model.MenuItem{{ID: "m2", Title: "Curry", Portions: 2}})

	assert.Len(t, state.Menus, 2)
	assert.True(t, state.Menus[0].Stale)
	assert.False(t, state.Menus[1].Stale)
}

func TestAdjustPortions(t *testing.T) {
	state := newState()
	state.ReplaceMenus([]model.MenuItem{{ID: "m1", Portions: 2}})

	state.AdjustPortions("m1", 4)
	assert.Equal(t, 4, state.MenuByID("m1").Portions)

	state.AdjustPortions("m1", 0)
	assert.Equal(t, 4, state.MenuByID("m1").Portions, "non-positive counts are ignored")

	state.AdjustPortions("missing", 6) // no-op
}

func TestApprovedMenuCountExcludesStale(t *testing.T) {
	state := newState()
	state.ReplaceMenus([]model.MenuItem{{ID: "m1", Approved: true}})
	state.ReplaceMenus([]model.MenuItem{{ID: "m2", Approved: true}, {ID: "m3"}})

	assert.Equal(t, 1, state.ApprovedMenuCount())
}

func TestRecordFeedbackMarksPendingRevision(t *testing.T) {
	state := newState()
	state.ReplaceMenus([]model.MenuItem{{ID: "m1", Title: "Tacos", Description: "Crispy shells."}})

	state.RecordFeedback("m1", "less spicy please")

	menu := state.MenuByID("m1")
	assert.Equal(t, "less spicy please", menu.Feedback)
	assert.Equal(t, "Tacos (revision requested)", menu.Title)
	assert.Contains(t, menu.Description, "less spicy please")

	// a second round of feedback does not stack title markers
	state.RecordFeedback("m1", "and vegetarian")
	assert.Equal(t, "Tacos (revision requested)", state.MenuByID("m1").Title)

	state.RecordFeedback("missing", "x") // no-op
}
