package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mealweek/backend/internal/models"
	"github.com/mealweek/backend/internal/service"
	"github.com/mealweek/backend/internal/session"
)

// testEnv bundles the handler stack used by the handler tests. Handler tests
// run against sqlite; the postgres path is covered by the integration tests.
type testEnv struct {
	DB          *gorm.DB
	Router      *gin.Engine
	AuthService *service.AuthService
	Sessions    *session.Store
	Results     *service.MemoryResultStore
	Generation  *service.GenerationService
}

// setupTestEnv wires the full route surface against in-memory stores.
// webhookURL may be an httptest server URL or empty to exercise the
// unconfigured path.
func setupTestEnv(t *testing.T, webhookURL string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserProfile{}))

	authService := service.NewAuthService(db, "test-secret")
	profileService := service.NewProfileService(db)
	sessions := session.NewStore()
	results := service.NewMemoryResultStore()

	callbackBase := ""
	if webhookURL != "" {
		callbackBase = "http://api.test"
	}
	generation := service.NewGenerationService(webhookURL, callbackBase, results, zerolog.Nop())

	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewProfileHandler(profileService, authService).RegisterRoutes(v1)
	NewPlannerHandler(sessions, authService).RegisterRoutes(v1)
	NewInventoryHandler(sessions, authService, nil).RegisterRoutes(v1)
	NewCartHandler(sessions, authService).RegisterRoutes(v1)
	NewGenerationHandler(sessions, authService, profileService, generation).RegisterRoutes(v1)

	return &testEnv{
		DB:          db,
		Router:      router,
		AuthService: authService,
		Sessions:    sessions,
		Results:     results,
		Generation:  generation,
	}
}

// registerTestUser registers a user through the API and returns their id and
// bearer token.
func registerTestUser(t *testing.T, env *testEnv) (uuid.UUID, string) {
	t.Helper()

	suffix := uuid.NewString()[:8]
	w := performRequest(env.Router, http.MethodPost, "/api/v1/auth/register", RegisterRequest{
		Name:     "Test User",
		Email:    "tester-" + suffix + "@example.com",
		Password: "testpassword123",
		Username: "tester-" + suffix,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	claims, err := env.AuthService.ValidateToken(resp.Token)
	require.NoError(t, err)
	return claims.UserID, resp.Token
}

// performRequest issues one request against the router, JSON-encoding the
// body when present.
func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	router.ServeHTTP(w, req)
	return w
}
