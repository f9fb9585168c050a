package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealweek/backend/internal/model"
)

func TestAddPantryItemCoercesQuantity(t *testing.T) {
	env := setupTestEnv(t, "")
	_, token := registerTestUser(t, env)

	w := performRequest(env.Router, http.MethodPost, "/api/v1/pantry", PantryItemRequest{
		Name:     "flour",
		Quantity: "2.5",
		Unit:     "lb",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var item model.PantryItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	require.NotNil(t, item.Quantity)
	assert.Equal(t, 2.5, *item.Quantity)
	assert.Equal(t, model.Unit("lb"), item.Unit)
	assert.True(t, item.Active)
	assert.False(t, item.IsStaple())
}

func TestAddPantryStapleWithoutQuantity(t *testing.T) {
	env := setupTestEnv(t, "")
	_, token := registerTestUser(t, env)

	w := performRequest(env.Router, http.MethodPost, "/api/v1/pantry", PantryItemRequest{Name: "salt"}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var item model.PantryItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.True(t, item.IsStaple())

	w = performRequest(env.Router, http.MethodGet, "/api/v1/pantry", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items   []model.PantryItem `json:"items"`
		Staples []model.PantryItem `json:"staples"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Staples, 1)
	assert.Equal(t, "salt", resp.Staples[0].Name)
}

func TestAddPantryQuantityWithoutUnitRejected(t *testing.T) {
	env := setupTestEnv(t, "")
	_, token := registerTestUser(t, env)

	w := performRequest(env.Router, http.MethodPost, "/api/v1/pantry", PantryItemRequest{
		Name:     "flour",
		Quantity: "2",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditAndRemovePantryItem(t *testing.T) {
	env := setupTestEnv(t, "")
	_, token := registerTestUser(t, env)

	w := performRequest(env.Router, http.MethodPost, "/api/v1/pantry", PantryItemRequest{
		Name: "rice", Quantity: "1", Unit: "kg",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	var item model.PantryItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	name := "brown rice"
	w = performRequest(env.Router, http.MethodPatch, "/api/v1/pantry/"+item.ID, PantryPatchRequest{Name: &name}, token)
	require.Equal(t, http.StatusOK, w.Code)

	// editing a missing id is accepted and changes nothing
	w = performRequest(env.Router, http.MethodPatch, "/api/v1/pantry/no-such-id", PantryPatchRequest{Name: &name}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(env.Router, http.MethodDelete, "/api/v1/pantry/"+item.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(env.Router, http.MethodGet, "/api/v1/pantry", nil, token)
	var resp struct {
		Items []model.PantryItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestDeactivatePantryItemStaysListed(t *testing.T) {
	env := setupTestEnv(t, "")
	userID, token := registerTestUser(t, env)

	w := performRequest(env.Router, http.MethodPost, "/api/v1/pantry", PantryItemRequest{Name: "salt"}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	var item model.PantryItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	w = performRequest(env.Router, http.MethodPost, "/api/v1/pantry/"+item.ID+"/deactivate", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(env.Router, http.MethodGet, "/api/v1/pantry", nil, token)
	var resp struct {
		Items []model.PantryItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.False(t, resp.Items[0].Active)

	// deactivated items are excluded from generation snapshots
	state := env.Sessions.Get(userID)
	assert.Empty(t, state.Pantry.ActiveItems())
}

func TestReorderStapleAddsExtraLine(t *testing.T) {
	env := setupTestEnv(t, "")
	userID, token := registerTestUser(t, env)

	w := performRequest(env.Router, http.MethodPost, "/api/v1/pantry/reorder", ReorderRequest{Name: "olive oil"}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var line model.CartLine
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &line))
	assert.Equal(t, model.SectionExtra, line.Section)
	assert.Equal(t, "olive oil", line.Name)

	state := env.Sessions.Get(userID)
	require.Len(t, state.Cart.ExtraLines(), 1)
	assert.Empty(t, state.Pantry.Items())
}

func TestUploadPantryPhotoUnavailableWithoutStorage(t *testing.T) {
	env := setupTestEnv(t, "")
	_, token := registerTestUser(t, env)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", "shelf.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pantry/photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "photo intake unavailable")
}

func TestBarLifecycleAndFade(t *testing.T) {
	env := setupTestEnv(t, "")
	_, token := registerTestUser(t, env)

	w := performRequest(env.Router, http.MethodPost, "/api/v1/bar", BarItemRequest{
		Name: "gin", Quantity: 750, Unit: "ml", Category: "spirit",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(env.Router, http.MethodPost, "/api/v1/bar", BarItemRequest{
		Name: "mint", Quantity: 1, Unit: "count", Category: "herb",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	// a fresh fade pass deactivates nothing
	w = performRequest(env.Router, http.MethodPost, "/api/v1/bar/fade", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []model.BarItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	for _, item := range resp.Items {
		assert.True(t, item.Active, item.Name)
	}
}

func TestBarDefaultsToOtherCategory(t *testing.T) {
	env := setupTestEnv(t, "")
	_, token := registerTestUser(t, env)

	w := performRequest(env.Router, http.MethodPost, "/api/v1/bar", BarItemRequest{
		Name: "bitters", Quantity: 1, Unit: "count",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var item model.BarItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, model.BarOther, item.Category)
	assert.False(t, item.Perishable())
}
