package model

// BudgetType selects how the weekly budget is evaluated.
type BudgetType string

const (
	BudgetNone    BudgetType = "none"
	BudgetPerWeek BudgetType = "perWeek"
	BudgetPerMeal BudgetType = "perMeal"
)

// WeeklyPlan holds the constraints for one week of planning. It is a flat
// mutable record with no state transitions of its own; only the generation
// trigger has lifecycle semantics. Snapshot counters record what was captured
// at generation time.
type WeeklyPlan struct {
	DinnersNeeded  int        `json:"dinners_needed"`
	BudgetType     BudgetType `json:"budget_type"`
	BudgetValue    float64    `json:"budget_value"`
	OnHand         string     `json:"on_hand,omitempty"`
	OnHandPhotoURL string     `json:"on_hand_photo_url,omitempty"`
	Mood           string     `json:"mood,omitempty"`
	Extras         string     `json:"extras,omitempty"`

	PantrySnapshotCount int `json:"pantry_snapshot_count"`
	BarSnapshotCount    int `json:"bar_snapshot_count"`
	MenuSnapshotCount   int `json:"menu_snapshot_count"`
}
