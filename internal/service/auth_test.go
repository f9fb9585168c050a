package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mealweek/backend/internal/models"
	"github.com/mealweek/backend/internal/types"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserProfile{}))
	return db
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	token, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	// profile is seeded with household defaults
	var profile models.UserProfile
	require.NoError(t, db.Where("user_id = ?", claims.UserID).First(&profile).Error)
	assert.Equal(t, 2, profile.DefaultPortions)
	assert.Equal(t, 1, profile.HouseholdAdults)

	loginToken, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", "alice")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "alice@example.com", "different", "other")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", "alice")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.GenerateToken(&types.TokenClaims{Username: "alice"})
	require.NoError(t, err)

	other := NewAuthService(db, "different-secret")
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestUpdateProfilePartial(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "test-secret")
	profiles := NewProfileService(db)
	ctx := context.Background()

	token, err := auth.Register(ctx, "Alice", "alice@example.com", "password123", "alice")
	require.NoError(t, err)
	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)

	portions := 4
	store := "Green Grocer"
	updated, err := profiles.UpdateProfile(ctx, claims.UserID, &types.UpdateProfileRequest{
		DefaultPortions: &portions,
		PreferredStore:  &store,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, updated.DefaultPortions)
	assert.Equal(t, "Green Grocer", updated.PreferredStore)
	// untouched fields keep their values
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, 1, updated.HouseholdAdults)
}
