package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryops/restockd/internal/domain"
	"github.com/pantryops/restockd/internal/engine"
	"github.com/pantryops/restockd/internal/repository"
)

func newTestService(t *testing.T, items ...domain.InventoryItem) *RestockService {
	t.Helper()
	repo := repository.NewMemoryInventoryRepository()
	require.NoError(t, repo.ReplaceAll(context.Background(), items))
	return NewRestockService(repo, nil, 2)
}

func TestGetSuggestionsEnrichesMissingRates(t *testing.T) {
	svc := newTestService(t, domain.InventoryItem{
		ID:                "m1",
		Name:              "Milk",
		Quantity:          1,
		MinThreshold:      2,
		Category:          domain.CategoryGrocery,
		PurchaseFrequency: domain.FrequencyWeekly,
	})

	set, err := svc.GetSuggestions(context.Background(), engine.SuggestOptions{})
	require.NoError(t, err)
	require.Len(t, set.Items, 1)

	// the predictor supplies a rate, so depletion is not the blind
	// two-week fallback
	assert.Greater(t, set.Items[0].Item.DailyConsumptionRate, 0.0)
	assert.Equal(t, domain.UrgencyHigh, set.Items[0].Urgency)
}

func TestGetSuggestionsEmptyInventory(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetSuggestions(context.Background(), engine.SuggestOptions{})
	var emptyErr *engine.EmptyInputError
	assert.ErrorAs(t, err, &emptyErr)
}

func TestUpsertItemRejectsInvalid(t *testing.T) {
	svc := newTestService(t)

	err := svc.UpsertItem(context.Background(), &domain.InventoryItem{
		ID: "bad", Name: "", Category: domain.CategoryGrocery,
	})
	var validationErr *engine.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestGetShoppingPlanPartitionsList(t *testing.T) {
	items := make([]domain.InventoryItem, 0, 12)
	for i := 0; i < 12; i++ {
		items = append(items, domain.InventoryItem{
			ID:                string(rune('a' + i)),
			Name:              "Pantry Staple",
			Quantity:          0,
			MinThreshold:      1,
			Category:          domain.CategoryGrocery,
			PurchaseFrequency: domain.FrequencyWeekly,
			Price:             2,
		})
	}
	svc := newTestService(t, items...)

	list, batches, err := svc.GetShoppingPlan(context.Background(),
		engine.SuggestOptions{}, engine.OptimizeOptions{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 12)

	require.Len(t, batches, 2)
	assert.Equal(t, 10, batches[0].ItemCount)
	assert.Equal(t, 2, batches[1].ItemCount)
}

func TestImportInventoryReplacesSnapshot(t *testing.T) {
	svc := newTestService(t, domain.InventoryItem{
		ID: "old", Name: "Old Item", Quantity: 1,
		Category: domain.CategoryGeneral, PurchaseFrequency: domain.FrequencyAsNeeded,
	})

	err := svc.ImportInventory(context.Background(), []domain.InventoryItem{{
		ID: "new", Name: "New Item", Quantity: 3,
		Category: domain.CategoryGrocery, PurchaseFrequency: domain.FrequencyWeekly,
	}})
	require.NoError(t, err)

	items, err := svc.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].ID)
}

func TestImportInventoryRejectsEmpty(t *testing.T) {
	svc := newTestService(t)
	assert.Error(t, svc.ImportInventory(context.Background(), nil))
}

func TestPredictItemUsesConfiguredHousehold(t *testing.T) {
	svc := newTestService(t)

	pred, err := svc.PredictItem(context.Background(), engine.PredictRequest{
		ItemName: "milk",
		Category: domain.CategoryGrocery,
	})
	require.NoError(t, err)
	assert.Greater(t, pred.DailyConsumptionRate, 0.0)
	assert.GreaterOrEqual(t, pred.Confidence, 40.0)
	assert.LessOrEqual(t, pred.Confidence, 95.0)
}
