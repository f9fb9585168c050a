package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealweek/backend/internal/api"
	"github.com/mealweek/backend/internal/model"
	"github.com/mealweek/backend/internal/service"
	"github.com/mealweek/backend/internal/session"
	"github.com/mealweek/backend/internal/testhelpers"
)

// TestWeeklyPlanningFlow walks the whole loop against a real postgres:
// register, set the plan, stock the pantry, generate menus through a fake
// workflow engine, approve one and check the budget.
func TestWeeklyPlanningFlow(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	gin.SetMode(gin.TestMode)

	workflow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer workflow.Close()

	authService := service.NewAuthService(db, "integration-secret")
	profileService := service.NewProfileService(db)
	results := service.NewMemoryResultStore()
	generationService := service.NewGenerationService(workflow.URL, "http://api.test", results, zerolog.Nop())
	sessions := session.NewStore()

	router := gin.New()
	v1 := router.Group("/api/v1")
	api.NewAuthHandler(authService).RegisterRoutes(v1)
	api.NewProfileHandler(profileService, authService).RegisterRoutes(v1)
	api.NewPlannerHandler(sessions, authService).RegisterRoutes(v1)
	api.NewInventoryHandler(sessions, authService, nil).RegisterRoutes(v1)
	api.NewCartHandler(sessions, authService).RegisterRoutes(v1)
	api.NewGenerationHandler(sessions, authService, profileService, generationService).RegisterRoutes(v1)

	do := func(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != nil {
			data, err := json.Marshal(body)
			require.NoError(t, err)
			req = httptest.NewRequest(method, path, bytes.NewReader(data))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// register and log in
	w := do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Casey", "email": "casey@example.com", "password": "password123", "username": "casey",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))
	token := auth.Token

	// configure the week
	w = do(http.MethodPut, "/api/v1/planner/weekly", map[string]interface{}{
		"dinners_needed": 3,
		"budget_type":    "perWeek",
		"budget_value":   90.0,
		"mood":           "comfort food",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	// stock the pantry
	w = do(http.MethodPost, "/api/v1/pantry", map[string]string{"name": "olive oil"}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(http.MethodPost, "/api/v1/pantry", map[string]string{
		"name": "chicken thighs", "quantity": "2", "unit": "lb",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	// kick off generation
	w = do(http.MethodPost, "/api/v1/generation/submit", map[string]interface{}{"menus": 2}, token)
	require.Equal(t, http.StatusAccepted, w.Code)
	var receipt service.SubmitReceipt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))

	// workflow delivers the result
	price := 8.0
	w = do(http.MethodPost, "/api/v1/generation/callback", map[string]interface{}{
		"correlationId": receipt.CorrelationID,
		"status":        "ready",
		"menus": []model.MenuItem{
			{
				ID:       "menu-braise",
				Title:    "Braised Chicken",
				Portions: 2,
				Ingredients: []model.Ingredient{
					{Name: "chicken thighs", Quantity: 1, Unit: model.UnitPound, EstPrice: &price},
				},
			},
			{ID: "menu-soup", Title: "Tomato Soup", Portions: 2},
		},
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	// poll until ready installs the menus
	w = do(http.MethodGet, "/api/v1/generation/poll/"+receipt.CorrelationID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var poll service.GenerationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &poll))
	require.Equal(t, "ready", poll.Status)

	// approve one menu into the cart
	w = do(http.MethodPost, "/api/v1/cart/approve/menu-braise", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(http.MethodGet, "/api/v1/cart", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var cartResp struct {
		MealLines []model.CartLine `json:"meal_lines"`
		Totals    struct {
			GrandTotal float64 `json:"grand_total"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartResp))
	require.Len(t, cartResp.MealLines, 1)
	assert.Equal(t, 16.0, cartResp.Totals.GrandTotal)

	// the cart fits the weekly budget
	w = do(http.MethodGet, "/api/v1/cart/budget", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var budget struct {
		WithinBudget bool `json:"within_budget"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &budget))
	assert.True(t, budget.WithinBudget)
}
