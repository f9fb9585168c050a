// Package session owns the in-memory application state for one signed-in
// user: weekly plan, pantry, bar, cart and the current menu set. All writes
// go through the operations on State or the collections it holds; handlers
// lock the state for the duration of one action, giving last-write-wins
// semantics across UI surfaces.
package session

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mealweek/backend/internal/cart"
	"github.com/mealweek/backend/internal/inventory"
	"github.com/mealweek/backend/internal/model"
)

// State is the application-state tree for one session.
type State struct {
	sync.Mutex

	Weekly model.WeeklyPlan
	Pantry *inventory.Pantry
	Bar    *inventory.Bar
	Cart   *cart.Cart
	Menus  []model.MenuItem

	// LastGenerationID is the correlation id of the most recent submission.
	// InstalledGeneration records which result has already been folded into
	// Menus, so repeated polls install at most once.
	LastGenerationID    string
	InstalledGeneration string
}

func newState() *State {
	return &State{
		Weekly: model.WeeklyPlan{BudgetType: model.BudgetNone},
		Pantry: inventory.NewPantry(),
		Bar:    inventory.NewBar(),
		Cart:   cart.New(),
	}
}

// ReplaceMenus installs a freshly generated menu set. Existing menus are
// marked stale rather than deleted.
func (s *State) ReplaceMenus(menus []model.MenuItem) {
	for i := range s.Menus {
		s.Menus[i].Stale = true
	}
	s.Menus = append(s.Menus, menus...)
}

// MenuByID returns a pointer into the menu set, or nil when absent.
func (s *State) MenuByID(id string) *model.MenuItem {
	for i := range s.Menus {
		if s.Menus[i].ID == id {
			return &s.Menus[i]
		}
	}
	return nil
}

// AdjustPortions changes a menu's portion count. Silent no-op on a missing
// id; the scaling itself happens at approval time.
func (s *State) AdjustPortions(id string, portions int) {
	if portions < 1 {
		return
	}
	if menu := s.MenuByID(id); menu != nil {
		menu.Portions = portions
	}
}

// revisionSuffix flags a menu whose revision was requested but has not yet
// been delivered by a new generation.
const revisionSuffix = " (revision requested)"

// RecordFeedback attaches revision feedback to a menu and rewrites its title
// and description so the pending revision is visible right away; the fully
// revised menu arrives with the next generation result. Silent no-op on a
// missing id.
func (s *State) RecordFeedback(id, feedback string) {
	menu := s.MenuByID(id)
	if menu == nil {
		return
	}
	menu.Feedback = feedback
	if feedback == "" {
		return
	}
	if !strings.HasSuffix(menu.Title, revisionSuffix) {
		menu.Title += revisionSuffix
	}
	menu.Description = strings.TrimSpace(menu.Description + " Requested change: " + feedback + ".")
}

// ApprovedMenuCount counts approved, non-stale menus for the per-meal budget.
func (s *State) ApprovedMenuCount() int {
	count := 0
	for _, menu := range s.Menus {
		if menu.Approved && !menu.Stale {
			count++
		}
	}
	return count
}

// Store hands out per-user session state, creating it on first use.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*State
}

func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*State)}
}

// Get returns the state for a user, creating an empty one if needed.
func (st *Store) Get(userID uuid.UUID) *State {
	st.mu.RLock()
	state, ok := st.sessions[userID]
	st.mu.RUnlock()
	if ok {
		return state
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if state, ok = st.sessions[userID]; ok {
		return state
	}
	state = newState()
	st.sessions[userID] = state
	return state
}
