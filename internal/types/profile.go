package types

// UpdateProfileRequest is a partial profile update. Nil fields are left
// unchanged; list fields replace the stored list wholesale.
type UpdateProfileRequest struct {
	Username        *string   `json:"username,omitempty"`
	DefaultPortions *int      `json:"default_portions,omitempty"`
	PreferredStore  *string   `json:"preferred_store,omitempty"`
	StoreAddress    *string   `json:"store_address,omitempty"`
	HouseholdAdults *int      `json:"household_adults,omitempty"`
	HouseholdKids   *int      `json:"household_kids,omitempty"`
	Equipment       *[]string `json:"equipment,omitempty"`
	DietaryPrefs    *[]string `json:"dietary_prefs,omitempty"`
	Allergens       *[]string `json:"allergens,omitempty"`
	ShoppingPrefs   *[]string `json:"shopping_prefs,omitempty"`
	CookingNotes    *string   `json:"cooking_notes,omitempty"`
}
