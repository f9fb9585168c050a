package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealweek/backend/internal/middleware"
	"github.com/mealweek/backend/internal/model"
	"github.com/mealweek/backend/internal/service"
	"github.com/mealweek/backend/internal/session"
)

// PlannerHandler exposes the weekly plan and the menu set.
type PlannerHandler struct {
	sessions    *session.Store
	authService service.IAuthService
}

func NewPlannerHandler(sessions *session.Store, authService service.IAuthService) *PlannerHandler {
	return &PlannerHandler{sessions: sessions, authService: authService}
}

func (h *PlannerHandler) RegisterRoutes(router *gin.RouterGroup) {
	planner := router.Group("/planner")
	planner.Use(middleware.AuthMiddleware(h.authService))
	{
		planner.GET("/weekly", h.GetWeekly)
		planner.PUT("/weekly", h.UpdateWeekly)
	}

	menus := router.Group("/menus")
	menus.Use(middleware.AuthMiddleware(h.authService))
	{
		menus.GET("", h.ListMenus)
		menus.POST("/:id/portions", h.AdjustPortions)
		menus.POST("/:id/feedback", h.RecordFeedback)
	}
}

func (h *PlannerHandler) state(c *gin.Context) (*session.State, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return h.sessions.Get(userID.(uuid.UUID)), true
}

func (h *PlannerHandler) GetWeekly(c *gin.Context) {
	state, ok := h.state(c)
	if !ok {
		return
	}
	state.Lock()
	defer state.Unlock()
	c.JSON(http.StatusOK, state.Weekly)
}

func (h *PlannerHandler) UpdateWeekly(c *gin.Context) {
	state, ok := h.state(c)
	if !ok {
		return
	}

	var req WeeklyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	state.Lock()
	defer state.Unlock()

	if req.DinnersNeeded != nil {
		state.Weekly.DinnersNeeded = *req.DinnersNeeded
	}
	if req.BudgetType != nil {
		state.Weekly.BudgetType = *req.BudgetType
	}
	if req.BudgetValue != nil {
		state.Weekly.BudgetValue = *req.BudgetValue
	}
	if req.OnHand != nil {
		state.Weekly.OnHand = *req.OnHand
	}
	if req.Mood != nil {
		state.Weekly.Mood = *req.Mood
	}
	if req.Extras != nil {
		state.Weekly.Extras = *req.Extras
	}

	c.JSON(http.StatusOK, state.Weekly)
}

func (h *PlannerHandler) ListMenus(c *gin.Context) {
	state, ok := h.state(c)
	if !ok {
		return
	}
	state.Lock()
	defer state.Unlock()
	menus := make([]model.MenuItem, len(state.Menus))
	copy(menus, state.Menus)
	c.JSON(http.StatusOK, gin.H{"menus": menus})
}

// AdjustPortions changes a menu's portion count ahead of approval. A missing
// menu id leaves the set unchanged.
func (h *PlannerHandler) AdjustPortions(c *gin.Context) {
	state, ok := h.state(c)
	if !ok {
		return
	}

	var req PortionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	state.Lock()
	defer state.Unlock()
	state.AdjustPortions(c.Param("id"), req.Portions)
	c.JSON(http.StatusOK, gin.H{"message": "portions updated"})
}

// RecordFeedback attaches revision feedback to a menu, flagging its title and
// description with the pending change. The fully revised menu arrives with
// the next generation result.
func (h *PlannerHandler) RecordFeedback(c *gin.Context) {
	state, ok := h.state(c)
	if !ok {
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	state.Lock()
	defer state.Unlock()
	state.RecordFeedback(c.Param("id"), req.Feedback)
	c.JSON(http.StatusOK, gin.H{"message": "feedback recorded"})
}
