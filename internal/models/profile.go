package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray stores a string list as JSONB.
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// UserProfile is the hosted household profile: portion defaults, grocery
// store, household composition, equipment and the dietary/shopping preference
// fields the generation payload carries as opaque values.
type UserProfile struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Username  string         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	DefaultPortions int    `gorm:"default:2" json:"default_portions"`
	PreferredStore  string `gorm:"size:255" json:"preferred_store"`
	StoreAddress    string `gorm:"size:255" json:"store_address"`
	HouseholdAdults int    `gorm:"default:1" json:"household_adults"`
	HouseholdKids   int    `gorm:"default:0" json:"household_kids"`

	Equipment     JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"equipment"`
	DietaryPrefs  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_prefs"`
	Allergens     JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergens"`
	ShoppingPrefs JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"shopping_prefs"`
	CookingNotes  string           `gorm:"type:text" json:"cooking_notes"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
