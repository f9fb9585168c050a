package api

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealweek/backend/internal/derive"
	"github.com/mealweek/backend/internal/inventory"
	"github.com/mealweek/backend/internal/middleware"
	"github.com/mealweek/backend/internal/model"
	"github.com/mealweek/backend/internal/service"
	"github.com/mealweek/backend/internal/session"
)

// maxPhotoBytes caps pantry snapshot uploads.
const maxPhotoBytes = 10 << 20

// InventoryHandler exposes the pantry and bar collections.
type InventoryHandler struct {
	sessions     *session.Store
	authService  service.IAuthService
	imageService *service.ImageService
}

func NewInventoryHandler(sessions *session.Store, authService service.IAuthService, imageService *service.ImageService) *InventoryHandler {
	return &InventoryHandler{
		sessions:     sessions,
		authService:  authService,
		imageService: imageService,
	}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	pantry := router.Group("/pantry")
	pantry.Use(middleware.AuthMiddleware(h.authService))
	{
		pantry.GET("", h.ListPantry)
		pantry.POST("", h.AddPantryItem)
		pantry.PATCH("/:id", h.EditPantryItem)
		pantry.DELETE("/:id", h.RemovePantryItem)
		pantry.POST("/:id/deactivate", h.DeactivatePantryItem)
		pantry.POST("/reorder", h.ReorderStaple)
		pantry.POST("/photo", h.UploadPantryPhoto)
	}

	bar := router.Group("/bar")
	bar.Use(middleware.AuthMiddleware(h.authService))
	{
		bar.GET("", h.ListBar)
		bar.POST("", h.AddBarItem)
		bar.PATCH("/:id", h.EditBarItem)
		bar.DELETE("/:id", h.RemoveBarItem)
		bar.POST("/:id/deactivate", h.DeactivateBarItem)
		bar.POST("/fade", h.FadeBar)
	}
}

func (h *InventoryHandler) state(c *gin.Context) (*session.State, uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, uuid.Nil, false
	}
	id := userID.(uuid.UUID)
	return h.sessions.Get(id), id, true
}

func (h *InventoryHandler) ListPantry(c *gin.Context) {
	state, _, ok := h.state(c)
	if !ok {
		return
	}
	state.Lock()
	defer state.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"items":   state.Pantry.Items(),
		"staples": state.Pantry.Staples(),
	})
}

// AddPantryItem accepts a free-typed quantity. Empty quantity and unit means
// a staple; a non-numeric quantity degrades to zero rather than failing.
func (h *InventoryHandler) AddPantryItem(c *gin.Context) {
	state, _, ok := h.state(c)
	if !ok {
		return
	}

	var req PantryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var qty *float64
	if req.Quantity != "" {
		v := derive.CoerceNumber(req.Quantity, 0)
		qty = &v
	}
	if qty != nil && req.Unit == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity requires a unit"})
		return
	}

	state.Lock()
	defer state.Unlock()
	item := state.Pantry.AddManual(req.Name, qty, model.Unit(req.Unit), req.Category)
	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) EditPantryItem(c *gin.Context) {
	state, _, ok := h.state(c)
	if !ok {
		return
	}

	var req PantryPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	patch := inventory.PantryPatch{
		Name:     req.Name,
		Quantity: req.Quantity,
		Category: req.Category,
	}
	if req.Unit != nil {
		unit := model.Unit(*req.Unit)
		patch.Unit = &unit
	}

	state.Lock()
	defer state.Unlock()
	state.Pantry.EditItem(c.Param("id"), patch)
	c.JSON(http.StatusOK, gin.H{"message": "item updated"})
}

func (h *InventoryHandler) RemovePantryItem(c *gin.Context) {
	state, _, ok := h.state(c)
	if !ok {
		return
	}
	state.Lock()
	defer state.Unlock()
	state.Pantry.RemoveItem(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}

func (h *InventoryHandler) DeactivatePantryItem(c *gin.Context) {
	state, _, ok := h.state(c)
	if !ok {
		return
	}
	state.Lock()
	defer state.Unlock()
	state.Pantry.Deactivate(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "item deactivated"})
}

// ReorderStaple drops an extra-section line into the cart for the named
// staple. The pantry record itself is untouched.
func (h *InventoryHandler) ReorderStaple(c *gin.Context) {
	state, _, ok := h.state(c)
	if !ok {
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	state.Lock()
	defer state.Unlock()
	line := state.Pantry.ReorderStaple(req.Name)
	state.Cart.AddExtraLine(line)
	c.JSON(http.StatusCreated, line)
}

// UploadPantryPhoto stores a snapshot photo and records it as the pantry's
// intake reference. Item extraction from the photo happens downstream.
func (h *InventoryHandler) UploadPantryPhoto(c *gin.Context) {
	state, userID, ok := h.state(c)
	if !ok {
		return
	}

	// object storage is optional; without it the route answers instead of
	// panicking on a nil service
	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo intake unavailable"})
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	defer file.Close()

	if header.Size > maxPhotoBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "photo too large"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read photo"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	url, err := h.imageService.UploadPantryPhoto(c.Request.Context(), userID, data, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store photo"})
		return
	}

	state.Lock()
	defer state.Unlock()
	added := state.Pantry.IntakeFromPhoto(url, nil)
	state.Weekly.OnHandPhotoURL = url
	c.JSON(http.StatusCreated, gin.H{"photo_url": url, "added": added})
}

func (h *InventoryHandler) ListBar(c *gin.Context) {
	state, _, ok := h.state(c)
	if !ok {
		return
	}
	state.Lock()
	defer state.Unlock()
	c.JSON(http.StatusOK, gin.H{"items": state.Bar.Items()})
}

func (h *InventoryHandler) AddBarItem(c *gin.Context) {
	state, _, ok := h.state(c)
	if !ok {
		return
	}

	var req BarItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	category := model.BarCategory(req.Category)
	if req.Category == "" {
		category = model.BarOther
	}

	state.Lock()
	defer state.Unlock()
	item := state.Bar.AddManual(req.Name, req.Quantity, model.Unit(req.Unit), category)
	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) EditBarItem(c *gin.Context) {
	state, _, ok := h.state(c)
	if !ok {
		return
	}

	var req BarPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	patch := inventory.BarPatch{
		Name:     req.Name,
		Quantity: req.Quantity,
	}
	if req.Unit != nil {
		unit := model.Unit(*req.Unit)
		patch.Unit = &unit
	}
	if req.Category != nil {
		category := model.BarCategory(*req.Category)
		patch.Category = &category
	}

	state.Lock()
	defer state.Unlock()
	state.Bar.EditItem(c.Param("id"), patch)
	c.JSON(http.StatusOK, gin.H{"message": "item updated"})
}

func (h *InventoryHandler) RemoveBarItem(c *gin.Context) {
	state, _, ok := h.state(c)
	if !ok {
		return
	}
	state.Lock()
	defer state.Unlock()
	state.Bar.RemoveItem(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}

func (h *InventoryHandler) DeactivateBarItem(c *gin.Context) {
	state, _, ok := h.state(c)
	if !ok {
		return
	}
	state.Lock()
	defer state.Unlock()
	state.Bar.Deactivate(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "item deactivated"})
}

// FadeBar runs the perishable decay pass and returns the refreshed
// collection.
func (h *InventoryHandler) FadeBar(c *gin.Context) {
	state, _, ok := h.state(c)
	if !ok {
		return
	}
	state.Lock()
	defer state.Unlock()
	state.Bar.FadePass(time.Now().UTC())
	c.JSON(http.StatusOK, gin.H{"items": state.Bar.Items()})
}
