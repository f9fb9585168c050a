package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealweek/backend/internal/model"
	"github.com/mealweek/backend/internal/models"
	"github.com/mealweek/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password, username string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
	ValidateToken(tokenString string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

// IGenerationService defines the interface for menu generation operations
type IGenerationService interface {
	Submit(ctx context.Context, payload GenerationPayload) (*SubmitReceipt, error)
	HandleCallback(ctx context.Context, correlationID, status string, menus []model.MenuItem) error
	Poll(ctx context.Context, correlationID string) (*GenerationResult, error)
}

var (
	_ IAuthService       = (*AuthService)(nil)
	_ IGenerationService = (*GenerationService)(nil)
)
