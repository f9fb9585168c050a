package api

import (
	"github.com/mealweek/backend/internal/model"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Username string `json:"username" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

// WeeklyPlanRequest is a partial update of the weekly constraints. Nil fields
// are left unchanged.
type WeeklyPlanRequest struct {
	DinnersNeeded *int              `json:"dinners_needed,omitempty"`
	BudgetType    *model.BudgetType `json:"budget_type,omitempty"`
	BudgetValue   *float64          `json:"budget_value,omitempty"`
	OnHand        *string           `json:"on_hand,omitempty"`
	Mood          *string           `json:"mood,omitempty"`
	Extras        *string           `json:"extras,omitempty"`
}

// PantryItemRequest carries a manual pantry add. Quantity is accepted as a
// string so free-typed values degrade instead of failing.
type PantryItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Category string `json:"category,omitempty"`
}

type PantryPatchRequest struct {
	Name     *string  `json:"name,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
	Category *string  `json:"category,omitempty"`
}

type BarItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	Category string  `json:"category,omitempty"`
}

type BarPatchRequest struct {
	Name     *string  `json:"name,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
	Category *string  `json:"category,omitempty"`
}

type ReorderRequest struct {
	Name string `json:"name" binding:"required"`
}

type ExtraLineRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	EstPrice float64 `json:"est_price"`
}

type PortionsRequest struct {
	Portions int `json:"portions" binding:"required"`
}

type FeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

type GenerateRequest struct {
	Menus      int  `json:"menus"`
	HeroImages bool `json:"hero_images"`
	MenuCards  bool `json:"menu_cards"`
	Receipt    bool `json:"receipt"`
}

// CallbackRequest is the payload the workflow engine posts back when a
// generation completes.
type CallbackRequest struct {
	CorrelationID string           `json:"correlationId" binding:"required"`
	Status        string           `json:"status"`
	Menus         []model.MenuItem `json:"menus"`
}
