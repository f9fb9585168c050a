package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealweek/backend/internal/models"
	"github.com/mealweek/backend/internal/types"
)

// ProfileService reads and writes the hosted household profile. The store is
// treated as a flat field set keyed by user id.
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies a partial update and returns the stored profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}

	if req.Username != nil {
		profile.Username = *req.Username
	}
	if req.DefaultPortions != nil {
		profile.DefaultPortions = *req.DefaultPortions
	}
	if req.PreferredStore != nil {
		profile.PreferredStore = *req.PreferredStore
	}
	if req.StoreAddress != nil {
		profile.StoreAddress = *req.StoreAddress
	}
	if req.HouseholdAdults != nil {
		profile.HouseholdAdults = *req.HouseholdAdults
	}
	if req.HouseholdKids != nil {
		profile.HouseholdKids = *req.HouseholdKids
	}
	if req.Equipment != nil {
		profile.Equipment = models.JSONBStringArray(*req.Equipment)
	}
	if req.DietaryPrefs != nil {
		profile.DietaryPrefs = models.JSONBStringArray(*req.DietaryPrefs)
	}
	if req.Allergens != nil {
		profile.Allergens = models.JSONBStringArray(*req.Allergens)
	}
	if req.ShoppingPrefs != nil {
		profile.ShoppingPrefs = models.JSONBStringArray(*req.ShoppingPrefs)
	}
	if req.CookingNotes != nil {
		profile.CookingNotes = *req.CookingNotes
	}

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}

	return &profile, nil
}

// Logout handles user logout. Token invalidation is the client's concern;
// nothing is stored server side per session.
func (s *ProfileService) Logout(ctx context.Context, userID uuid.UUID) error {
	return nil
}
