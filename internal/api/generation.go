package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealweek/backend/internal/middleware"
	"github.com/mealweek/backend/internal/service"
	"github.com/mealweek/backend/internal/session"
)

// GenerationHandler drives the menu generation round trip: snapshot submit,
// workflow callback, result poll.
type GenerationHandler struct {
	sessions       *session.Store
	authService    service.IAuthService
	profileService service.IProfileService
	generation     service.IGenerationService
}

func NewGenerationHandler(sessions *session.Store, authService service.IAuthService, profileService service.IProfileService, generation service.IGenerationService) *GenerationHandler {
	return &GenerationHandler{
		sessions:       sessions,
		authService:    authService,
		profileService: profileService,
		generation:     generation,
	}
}

func (h *GenerationHandler) RegisterRoutes(router *gin.RouterGroup) {
	gen := router.Group("/generation")
	{
		// the workflow engine authenticates by correlation id, not by token
		gen.POST("/callback", h.Callback)

		authed := gen.Group("")
		authed.Use(middleware.AuthMiddleware(h.authService))
		{
			authed.POST("/submit", h.Submit)
			authed.GET("/poll/:id", h.Poll)
		}
	}
}

// Submit snapshots the weekly plan plus active inventory and hands the bundle
// to the workflow engine. Snapshot counters on the plan record what was sent.
func (h *GenerationHandler) Submit(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	uid := userID.(uuid.UUID)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Menus < 1 {
		req.Menus = 3
	}

	client := service.ClientInfo{UserID: uid.String()}
	if profile, err := h.profileService.GetProfile(c.Request.Context(), uid); err == nil {
		client = service.ClientInfoFromProfile(uid, profile)
	}

	state := h.sessions.Get(uid)
	state.Lock()

	pantrySnapshot := state.Pantry.ActiveItems()
	barSnapshot := state.Bar.ActiveItems()
	state.Weekly.PantrySnapshotCount = len(pantrySnapshot)
	state.Weekly.BarSnapshotCount = len(barSnapshot)
	state.Weekly.MenuSnapshotCount = req.Menus

	payload := service.GenerationPayload{
		Client:         client,
		Weekly:         state.Weekly,
		PantrySnapshot: pantrySnapshot,
		BarSnapshot:    barSnapshot,
		Generate: service.GenerateOptions{
			Menus:      req.Menus,
			HeroImages: req.HeroImages,
			MenuCards:  req.MenuCards,
			Receipt:    req.Receipt,
		},
	}
	state.Unlock()

	receipt, err := h.generation.Submit(c.Request.Context(), payload)
	if err != nil {
		if errors.Is(err, service.ErrWebhookNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "menu generation is not configured"})
			return
		}
		var upstream *service.UpstreamError
		if errors.As(err, &upstream) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "generation workflow rejected the request", "status": upstream.Status})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to reach generation workflow"})
		return
	}

	state.Lock()
	state.LastGenerationID = receipt.CorrelationID
	state.Unlock()

	c.JSON(http.StatusAccepted, receipt)
}

// Callback receives completed results from the workflow engine. Unknown
// correlation ids are acknowledged and discarded.
func (h *GenerationHandler) Callback(c *gin.Context) {
	var req CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	status := req.Status
	if status == "" {
		status = service.StatusReady
	}

	if err := h.generation.HandleCallback(c.Request.Context(), req.CorrelationID, status, req.Menus); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record result"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "acknowledged"})
}

// Poll reports generation progress. When the user's own submission completes,
// the first poll that sees the result installs the menus into the session;
// previous menus go stale rather than away.
func (h *GenerationHandler) Poll(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	correlationID := c.Param("id")
	result, err := h.generation.Poll(c.Request.Context(), correlationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to poll generation"})
		return
	}

	if result.Status != service.StatusPending {
		state := h.sessions.Get(userID.(uuid.UUID))
		state.Lock()
		if state.LastGenerationID == correlationID && state.InstalledGeneration != correlationID {
			state.ReplaceMenus(result.Menus)
			state.InstalledGeneration = correlationID
		}
		state.Unlock()
	}

	c.JSON(http.StatusOK, result)
}
