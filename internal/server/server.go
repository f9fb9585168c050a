package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mealweek/backend/config"
	"github.com/mealweek/backend/internal/api"
	"github.com/mealweek/backend/internal/middleware"
	"github.com/mealweek/backend/internal/service"
	"github.com/mealweek/backend/internal/session"
)

// Server wires the handler stack and owns the HTTP listener.
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger zerolog.Logger
}

// New assembles the full route surface. redisClient may be nil, in which case
// generation results are tracked in process memory only.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config, logger zerolog.Logger) *Server {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)

	var results service.ResultStore
	if redisClient != nil {
		results = service.NewRedisResultStore(redisClient)
	} else {
		logger.Warn().Msg("redis unavailable, generation results held in memory")
		results = service.NewMemoryResultStore()
	}
	generationService := service.NewGenerationService(cfg.GenerationWebhookURL, cfg.CallbackBaseURL, results, logger)

	var imageService *service.ImageService
	if s3Config != nil {
		imageService = service.NewImageService(s3Config, logger)
	}

	sessions := session.NewStore()

	v1 := router.Group("/api/v1")
	api.NewAuthHandler(authService).RegisterRoutes(v1)
	api.NewProfileHandler(profileService, authService).RegisterRoutes(v1)
	api.NewPlannerHandler(sessions, authService).RegisterRoutes(v1)
	api.NewInventoryHandler(sessions, authService, imageService).RegisterRoutes(v1)
	api.NewCartHandler(sessions, authService).RegisterRoutes(v1)
	api.NewGenerationHandler(sessions, authService, profileService, generationService).RegisterRoutes(v1)

	return &Server{
		router: router,
		logger: logger,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
	}
}

// Start blocks serving HTTP until the listener fails or is shut down.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.http.Addr).Msg("starting server")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
