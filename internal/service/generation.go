package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mealweek/backend/internal/derive"
	"github.com/mealweek/backend/internal/model"
	"github.com/mealweek/backend/internal/models"
)

// diagnosticBodyLimit bounds the upstream response excerpt carried in an
// upstream-rejection error.
const diagnosticBodyLimit = 512

// resultTTL is how long pending markers and delivered results are retained.
const resultTTL = 24 * time.Hour

const (
	StatusAccepted = "accepted"
	StatusPending  = "pending"
	StatusReady    = "ready"
)

// ErrWebhookNotConfigured is a local configuration error: the outbound
// request is never attempted.
var ErrWebhookNotConfigured = errors.New("generation webhook or callback address not configured")

// UpstreamError reports a reachable external system that rejected the
// submission. Body is truncated to a bounded diagnostic excerpt.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation workflow rejected submission with status %d: %s", e.Status, e.Body)
}

// ClientInfo identifies the requesting household to the workflow engine.
// Profile fields are passed through as opaque values.
type ClientInfo struct {
	UserID          string   `json:"userId"`
	Email           string   `json:"email,omitempty"`
	DefaultPortions int      `json:"defaultPortions"`
	PreferredStore  string   `json:"preferredStore,omitempty"`
	StoreAddress    string   `json:"storeAddress,omitempty"`
	HouseholdAdults int      `json:"householdAdults"`
	HouseholdKids   int      `json:"householdKids"`
	Equipment       []string `json:"equipment,omitempty"`
	DietaryPrefs    []string `json:"dietaryPrefs,omitempty"`
	Allergens       []string `json:"allergens,omitempty"`
	ShoppingPrefs   []string `json:"shoppingPrefs,omitempty"`
	CookingNotes    string   `json:"cookingNotes,omitempty"`
}

// ClientInfoFromProfile flattens the stored profile into the wire shape.
func ClientInfoFromProfile(userID uuid.UUID, profile *models.UserProfile) ClientInfo {
	return ClientInfo{
		UserID:          userID.String(),
		DefaultPortions: profile.DefaultPortions,
		PreferredStore:  profile.PreferredStore,
		StoreAddress:    profile.StoreAddress,
		HouseholdAdults: profile.HouseholdAdults,
		HouseholdKids:   profile.HouseholdKids,
		Equipment:       profile.Equipment,
		DietaryPrefs:    profile.DietaryPrefs,
		Allergens:       profile.Allergens,
		ShoppingPrefs:   profile.ShoppingPrefs,
		CookingNotes:    profile.CookingNotes,
	}
}

// GenerateOptions selects which artifacts the workflow should produce.
type GenerateOptions struct {
	Menus      int  `json:"menus"`
	HeroImages bool `json:"heroImages"`
	MenuCards  bool `json:"menuCards"`
	Receipt    bool `json:"receipt"`
}

// GenerationPayload is the full snapshot submitted to the workflow webhook.
type GenerationPayload struct {
	Client         ClientInfo         `json:"client"`
	Weekly         model.WeeklyPlan   `json:"weekly"`
	PantrySnapshot []model.PantryItem `json:"pantrySnapshot"`
	BarSnapshot    []model.BarItem    `json:"barSnapshot"`
	Generate       GenerateOptions    `json:"generate"`
	CorrelationID  string             `json:"correlationId"`
	CallbackURL    string             `json:"callbackUrl"`
	SubmittedAt    string             `json:"submittedAt"`
}

// SubmitReceipt acknowledges HTTP-level acceptance, not completion.
type SubmitReceipt struct {
	CorrelationID string `json:"correlation_id"`
	Status        string `json:"status"`
}

// GenerationResult is the completed artifact delivered by the workflow.
// At most one result is ever associated with a correlation id, and once
// present it is immutable.
type GenerationResult struct {
	CorrelationID string           `json:"correlation_id"`
	Status        string           `json:"status"`
	Menus         []model.MenuItem `json:"menus"`
	ReceivedAt    time.Time        `json:"received_at"`
}

// ResultStore tracks pending generation requests and their immutable
// results by correlation id.
type ResultStore interface {
	MarkPending(ctx context.Context, correlationID string) error
	IsPending(ctx context.Context, correlationID string) (bool, error)
	// SaveResult stores a result exactly once; later writes for the same
	// correlation id are discarded.
	SaveResult(ctx context.Context, result *GenerationResult) error
	GetResult(ctx context.Context, correlationID string) (*GenerationResult, bool, error)
}

// GenerationService packages planning snapshots into a workflow submission
// and tracks results by correlation id. It never retries; retry policy, if
// any, belongs to the caller.
type GenerationService struct {
	webhookURL   string
	callbackBase string
	client       *http.Client
	results      ResultStore
	logger       zerolog.Logger
}

func NewGenerationService(webhookURL, callbackBase string, results ResultStore, logger zerolog.Logger) *GenerationService {
	return &GenerationService{
		webhookURL:   webhookURL,
		callbackBase: callbackBase,
		client:       &http.Client{Timeout: 30 * time.Second},
		results:      results,
		logger:       logger,
	}
}

// Submit issues one outbound request carrying the payload, a fresh
// correlation id and the callback address. It returns on HTTP-level
// acceptance; results arrive asynchronously.
func (s *GenerationService) Submit(ctx context.Context, payload GenerationPayload) (*SubmitReceipt, error) {
	if s.webhookURL == "" || s.callbackBase == "" {
		return nil, ErrWebhookNotConfigured
	}

	payload.CorrelationID = uuid.NewString()
	payload.CallbackURL = s.callbackBase + "/api/v1/generation/callback"
	payload.SubmittedAt = derive.TimestampNow()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generation payload: %w", err)
	}

	if err := s.results.MarkPending(ctx, payload.CorrelationID); err != nil {
		return nil, fmt.Errorf("failed to record pending generation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation submission failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, diagnosticBodyLimit))
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(excerpt)}
	}

	s.logger.Info().
		Str("correlation_id", payload.CorrelationID).
		Int("pantry_items", len(payload.PantrySnapshot)).
		Int("bar_items", len(payload.BarSnapshot)).
		Msg("generation request accepted")

	return &SubmitReceipt{CorrelationID: payload.CorrelationID, Status: StatusAccepted}, nil
}

// HandleCallback associates a delivered result with its pending request.
// Unknown correlation ids are ignored, not errored. First write wins.
func (s *GenerationService) HandleCallback(ctx context.Context, correlationID, status string, menus []model.MenuItem) error {
	pending, err := s.results.IsPending(ctx, correlationID)
	if err != nil {
		return err
	}
	if !pending {
		s.logger.Warn().Str("correlation_id", correlationID).Msg("ignoring callback for unknown correlation id")
		return nil
	}

	for i := range menus {
		if menus[i].ID == "" {
			menus[i].ID = derive.NewID()
		}
		if menus[i].Portions < 1 {
			menus[i].Portions = 1
		}
	}

	return s.results.SaveResult(ctx, &GenerationResult{
		CorrelationID: correlationID,
		Status:        status,
		Menus:         menus,
		ReceivedAt:    time.Now().UTC(),
	})
}

// Poll returns the result for a correlation id, or a pending status when no
// result has arrived yet. Polling cadence is the caller's concern.
func (s *GenerationService) Poll(ctx context.Context, correlationID string) (*GenerationResult, error) {
	result, ok, err := s.results.GetResult(ctx, correlationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &GenerationResult{CorrelationID: correlationID, Status: StatusPending}, nil
	}
	return result, nil
}
