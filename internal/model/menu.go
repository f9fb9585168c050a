package model

// SideDish is an optional accompaniment delivered with a generated menu.
type SideDish struct {
	Title       string       `json:"title"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps,omitempty"`
}

// MenuItem is a generated dinner suggestion. It is created unapproved by the
// generation client (or stubbed locally), mutated when portions change or
// feedback is submitted, and approved when the user accepts it. Approval
// snapshots its scaled ingredients into cart lines; approving again after a
// portion change appends a second snapshot. Menus are never deleted, only
// marked stale by a newer generation.
type MenuItem struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	HeroImageURL string       `json:"hero_image_url,omitempty"`
	Portions     int          `json:"portions"`
	Approved     bool         `json:"approved"`
	Feedback     string       `json:"feedback,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
	Steps        []string     `json:"steps,omitempty"`
	Sides        []SideDish   `json:"sides,omitempty"`
	Stale        bool         `json:"stale"`
}
