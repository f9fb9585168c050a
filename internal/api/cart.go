package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealweek/backend/internal/middleware"
	"github.com/mealweek/backend/internal/model"
	"github.com/mealweek/backend/internal/planner"
	"github.com/mealweek/backend/internal/service"
	"github.com/mealweek/backend/internal/session"
)

// CartHandler exposes the shopping cart and the budget check.
type CartHandler struct {
	sessions    *session.Store
	authService service.IAuthService
}

func NewCartHandler(sessions *session.Store, authService service.IAuthService) *CartHandler {
	return &CartHandler{sessions: sessions, authService: authService}
}

func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	cart := router.Group("/cart")
	cart.Use(middleware.AuthMiddleware(h.authService))
	{
		cart.GET("", h.GetCart)
		cart.POST("/approve/:menuID", h.ApproveMenu)
		cart.POST("/extras", h.AddExtra)
		cart.DELETE("/:section", h.ClearSection)
		cart.GET("/budget", h.BudgetStatus)
	}
}

func (h *CartHandler) state(c *gin.Context) (*session.State, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return h.sessions.Get(userID.(uuid.UUID)), true
}

func (h *CartHandler) GetCart(c *gin.Context) {
	state, ok := h.state(c)
	if !ok {
		return
	}
	state.Lock()
	defer state.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"meal_lines":  state.Cart.MealLines(),
		"extra_lines": state.Cart.ExtraLines(),
		"totals":      state.Cart.ComputeTotals(),
	})
}

// ApproveMenu scales the menu by its current portions and appends the lines.
// Approving an unknown menu id leaves the cart unchanged.
func (h *CartHandler) ApproveMenu(c *gin.Context) {
	state, ok := h.state(c)
	if !ok {
		return
	}

	state.Lock()
	defer state.Unlock()

	menu := state.MenuByID(c.Param("menuID"))
	if menu == nil {
		c.JSON(http.StatusOK, gin.H{"added": []model.CartLine{}, "totals": state.Cart.ComputeTotals()})
		return
	}

	added := state.Cart.ApproveMenu(menu)
	c.JSON(http.StatusOK, gin.H{"added": added, "totals": state.Cart.ComputeTotals()})
}

func (h *CartHandler) AddExtra(c *gin.Context) {
	state, ok := h.state(c)
	if !ok {
		return
	}

	var req ExtraLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	state.Lock()
	defer state.Unlock()
	line := state.Cart.AddExtra(req.Name, req.Quantity, model.Unit(req.Unit), req.EstPrice)
	c.JSON(http.StatusCreated, line)
}

func (h *CartHandler) ClearSection(c *gin.Context) {
	section := model.Section(c.Param("section"))
	if section != model.SectionMeal && section != model.SectionExtra {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown section"})
		return
	}

	state, ok := h.state(c)
	if !ok {
		return
	}
	state.Lock()
	defer state.Unlock()
	state.Cart.ClearSection(section)
	c.JSON(http.StatusOK, gin.H{"message": "section cleared"})
}

// BudgetStatus evaluates the cart against the weekly budget using unrounded
// sums.
func (h *CartHandler) BudgetStatus(c *gin.Context) {
	state, ok := h.state(c)
	if !ok {
		return
	}

	state.Lock()
	defer state.Unlock()

	within := planner.IsWithinBudget(state.Cart.MealLines(), state.Cart.ExtraLines(), state.Weekly, state.ApprovedMenuCount())
	c.JSON(http.StatusOK, gin.H{
		"within_budget":  within,
		"budget_type":    state.Weekly.BudgetType,
		"budget_value":   state.Weekly.BudgetValue,
		"approved_menus": state.ApprovedMenuCount(),
		"totals":         state.Cart.ComputeTotals(),
	})
}
