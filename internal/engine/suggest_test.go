package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryops/restockd/internal/domain"
)

func TestSuggestEmptyInventory(t *testing.T) {
	_, err := Suggest(nil, SuggestOptions{})
	assert.Error(t, err)
	assert.IsType(t, &EmptyInputError{}, err)
}

func TestSuggestOutOfStockScenario(t *testing.T) {
	inventory := []domain.InventoryItem{{
		ID:                "itm-milk",
		Name:              "Milk",
		Quantity:          0,
		MinThreshold:      2,
		Category:          domain.CategoryGrocery,
		PurchaseFrequency: domain.FrequencyWeekly,
	}}

	set, err := Suggest(inventory, SuggestOptions{})
	require.NoError(t, err)
	require.Len(t, set.Items, 1)

	s := set.Items[0]
	assert.Equal(t, domain.UrgencyCritical, s.Urgency)
	// max(1, 2) * weekly multiplier 2 = 4
	assert.Equal(t, 4, s.SuggestedOrderQuantity)
	assert.Equal(t, 0, s.DaysLeft)
	assert.Equal(t, 1, set.Metadata.CriticalCount)
}

func TestSuggestOrderQuantityNeverBelowOne(t *testing.T) {
	inventory := []domain.InventoryItem{
		{ID: "a", Name: "Tape", Quantity: 0, MinThreshold: 0, Category: domain.CategoryOffice, PurchaseFrequency: domain.FrequencyAsNeeded},
		{ID: "b", Name: "Glue", Quantity: 0, MinThreshold: 0.2, Category: domain.CategoryOffice, PurchaseFrequency: domain.FrequencyMonthly},
	}

	set, err := Suggest(inventory, SuggestOptions{})
	require.NoError(t, err)
	for _, s := range set.Items {
		assert.GreaterOrEqual(t, s.SuggestedOrderQuantity, 1, "item %s", s.Item.ID)
	}
}

func TestSuggestUrgencyTiers(t *testing.T) {
	inventory := []domain.InventoryItem{
		{ID: "oos", Name: "A", Quantity: 0, MinThreshold: 1, Category: domain.CategoryGrocery, PurchaseFrequency: domain.FrequencyWeekly},
		{ID: "below", Name: "B", Quantity: 1, MinThreshold: 2, Category: domain.CategoryGrocery, PurchaseFrequency: domain.FrequencyWeekly, DailyConsumptionRate: 0.01},
		{ID: "soon", Name: "C", Quantity: 4, MinThreshold: 1, Category: domain.CategoryGrocery, PurchaseFrequency: domain.FrequencyWeekly, DailyConsumptionRate: 2},
		{ID: "later", Name: "D", Quantity: 10, MinThreshold: 1, Category: domain.CategoryGrocery, PurchaseFrequency: domain.FrequencyWeekly, DailyConsumptionRate: 2},
	}

	set, err := Suggest(inventory, SuggestOptions{})
	require.NoError(t, err)

	byID := make(map[string]domain.Suggestion)
	for _, s := range set.Items {
		byID[s.Item.ID] = s
	}

	assert.Equal(t, domain.UrgencyCritical, byID["oos"].Urgency)
	assert.Equal(t, domain.UrgencyHigh, byID["below"].Urgency)
	assert.Equal(t, domain.UrgencyMedium, byID["soon"].Urgency)  // 2 days left
	assert.Equal(t, domain.UrgencyLow, byID["later"].Urgency)    // 5 days left
}

func TestSuggestSkipsInvalidItems(t *testing.T) {
	inventory := []domain.InventoryItem{
		{ID: "bad", Name: "", Quantity: 0, Category: domain.CategoryGrocery},
		{ID: "good", Name: "Milk", Quantity: 0, MinThreshold: 1, Category: domain.CategoryGrocery, PurchaseFrequency: domain.FrequencyWeekly},
	}

	set, err := Suggest(inventory, SuggestOptions{})
	require.NoError(t, err)
	require.Len(t, set.Items, 1)
	assert.Equal(t, "good", set.Items[0].Item.ID)
	assert.Equal(t, 1, set.Metadata.SkippedInvalid)
}

func TestSuggestHonorsInclusionToggles(t *testing.T) {
	inventory := []domain.InventoryItem{
		{ID: "oos", Name: "A", Quantity: 0, MinThreshold: 1, Category: domain.CategoryGrocery, PurchaseFrequency: domain.FrequencyWeekly},
		{ID: "below", Name: "B", Quantity: 1, MinThreshold: 3, Category: domain.CategoryGrocery, PurchaseFrequency: domain.FrequencyWeekly, DailyConsumptionRate: 0.01},
	}

	set, err := Suggest(inventory, SuggestOptions{SkipOutOfStock: true})
	require.NoError(t, err)
	require.Len(t, set.Items, 1)
	assert.Equal(t, "below", set.Items[0].Item.ID)
}

func TestSuggestCachedOptimalQuantityWins(t *testing.T) {
	inventory := []domain.InventoryItem{{
		ID:                "itm",
		Name:              "Detergent",
		Quantity:          0,
		MinThreshold:      2,
		Category:          domain.CategoryHousehold,
		PurchaseFrequency: domain.FrequencyMonthly,
		AIMeta:            &domain.AIMetadata{OptimalOrderQuantity: 7, Confidence: 81},
	}}

	set, err := Suggest(inventory, SuggestOptions{})
	require.NoError(t, err)
	require.Len(t, set.Items, 1)
	assert.Equal(t, 7, set.Items[0].SuggestedOrderQuantity)
	assert.Equal(t, 81.0, set.Items[0].Confidence)
}

func TestSuggestSubscriptionEligibility(t *testing.T) {
	inventory := []domain.InventoryItem{
		{ID: "sub", Name: "A", Quantity: 0, MinThreshold: 1, Category: domain.CategoryGrocery, PurchaseFrequency: domain.FrequencyWeekly, HasSubscription: true},
		{ID: "asneeded", Name: "B", Quantity: 0, MinThreshold: 1, Category: domain.CategoryGrocery, PurchaseFrequency: domain.FrequencyAsNeeded},
		{ID: "eligible", Name: "C", Quantity: 0, MinThreshold: 1, Category: domain.CategoryGrocery, PurchaseFrequency: domain.FrequencyWeekly},
	}

	set, err := Suggest(inventory, SuggestOptions{})
	require.NoError(t, err)

	byID := make(map[string]domain.Suggestion)
	for _, s := range set.Items {
		byID[s.Item.ID] = s
	}
	assert.False(t, byID["sub"].SubscriptionEligible)
	assert.False(t, byID["asneeded"].SubscriptionEligible)
	assert.True(t, byID["eligible"].SubscriptionEligible)
	assert.Equal(t, 1, set.Metadata.SubscriptionEligible)
}

func TestSuggestIdempotent(t *testing.T) {
	inventory := []domain.InventoryItem{
		{ID: "a", Name: "Milk", Quantity: 0, MinThreshold: 2, Category: domain.CategoryGrocery, PurchaseFrequency: domain.FrequencyWeekly},
		{ID: "b", Name: "Soap", Quantity: 1, MinThreshold: 2, Category: domain.CategoryPersonal, PurchaseFrequency: domain.FrequencyMonthly, DailyConsumptionRate: 0.05},
	}

	first, err := Suggest(inventory, SuggestOptions{})
	require.NoError(t, err)
	second, err := Suggest(inventory, SuggestOptions{})
	require.NoError(t, err)

	require.Equal(t, len(first.Items), len(second.Items))
	for i := range first.Items {
		assert.Equal(t, first.Items[i].Item.ID, second.Items[i].Item.ID)
		assert.Equal(t, first.Items[i].Urgency, second.Items[i].Urgency)
		assert.Equal(t, first.Items[i].SuggestedOrderQuantity, second.Items[i].SuggestedOrderQuantity)
	}
}

func TestSuggestBulkRecommendation(t *testing.T) {
	inventory := []domain.InventoryItem{{
		ID: "bulk", Name: "Toilet Paper", Quantity: 0, MinThreshold: 4,
		Category: domain.CategoryHousehold, PurchaseFrequency: domain.FrequencyBiweekly,
	}}

	set, err := Suggest(inventory, SuggestOptions{})
	require.NoError(t, err)
	require.Len(t, set.Items, 1)
	// ceil(4 * 1.5) = 6 >= default bulk threshold 3
	assert.Equal(t, 6, set.Items[0].SuggestedOrderQuantity)
	assert.True(t, set.Items[0].BulkRecommended)
	assert.Equal(t, 1, set.Metadata.BulkCount)
}
