package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryops/restockd/internal/domain"
	"github.com/pantryops/restockd/internal/repository"
	"github.com/pantryops/restockd/internal/service"
)

func newTestRouter(t *testing.T, items ...domain.InventoryItem) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryInventoryRepository()
	require.NoError(t, repo.ReplaceAll(context.Background(), items))
	svc := service.NewRestockService(repo, nil, 2)

	router := gin.New()
	restockHandler := NewRestockHandler(svc)
	inventoryHandler := NewInventoryHandler(svc)

	router.GET("/restock/suggestions", restockHandler.GetSuggestions)
	router.GET("/restock/plan", restockHandler.GetShoppingPlan)
	router.GET("/restock/predict", restockHandler.PredictItem)
	router.GET("/items", inventoryHandler.ListItems)
	router.PUT("/items/:id", inventoryHandler.UpsertItem)

	return router
}

func lowMilk() domain.InventoryItem {
	return domain.InventoryItem{
		ID:                "m1",
		Name:              "Milk",
		Quantity:          0,
		MinThreshold:      2,
		Category:          domain.CategoryGrocery,
		PurchaseFrequency: domain.FrequencyWeekly,
		Price:             3.5,
	}
}

func TestGetSuggestionsEndpoint(t *testing.T) {
	router := newTestRouter(t, lowMilk())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/restock/suggestions", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var set domain.SuggestionSet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &set))
	require.Len(t, set.Items, 1)
	assert.Equal(t, domain.UrgencyCritical, set.Items[0].Urgency)
}

func TestGetSuggestionsEmptyInventoryIs422(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/restock/suggestions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetSuggestionsExcludeOutOfStock(t *testing.T) {
	router := newTestRouter(t, lowMilk())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/restock/suggestions?include_out_of_stock=false", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var set domain.SuggestionSet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &set))
	assert.Empty(t, set.Items)
}

func TestGetShoppingPlanEndpoint(t *testing.T) {
	router := newTestRouter(t, lowMilk())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/restock/plan?preference=urgent", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		List    domain.OptimizedList `json:"list"`
		Batches []domain.Batch       `json:"batches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, domain.PreferenceUrgent, payload.List.Metadata.Preference)
	require.Len(t, payload.Batches, 1)
	assert.Equal(t, 1, payload.Batches[0].ItemCount)
}

func TestPredictEndpointRequiresName(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/restock/predict", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpsertItemEndpointValidates(t *testing.T) {
	router := newTestRouter(t)

	body := `{"name":"Milk","quantity":-2,"category":"grocery"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/items/m1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpsertThenList(t *testing.T) {
	router := newTestRouter(t)

	body := `{"name":"Milk","quantity":2,"min_threshold":1,"category":"grocery","purchase_frequency":"weekly"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/items/m1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/items", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Items []domain.InventoryItem `json:"items"`
		Total int                    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, 1, payload.Total)
	assert.Equal(t, "m1", payload.Items[0].ID)
}
