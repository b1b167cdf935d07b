package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryops/restockd/internal/domain"
)

func bulkItem(category domain.Category, price float64, qty int) domain.Suggestion {
	return domain.Suggestion{
		Item: domain.InventoryItem{
			ID:       "itm",
			Name:     "Item",
			Category: category,
			Price:    price,
		},
		SuggestedOrderQuantity: qty,
	}
}

func TestBulkSavingsEmpty(t *testing.T) {
	assert.Equal(t, 0.0, BulkSavings(nil))
	assert.Equal(t, 0.0, BulkSavings([]domain.Suggestion{}))
}

func TestBulkSavingsQuantityTiers(t *testing.T) {
	// quantity-tier discount dominates the grocery floor
	assert.InDelta(t, 10*10*0.15, BulkSavings([]domain.Suggestion{bulkItem(domain.CategoryGrocery, 10, 10)}), 1e-9)
	assert.InDelta(t, 10*5*0.12, BulkSavings([]domain.Suggestion{bulkItem(domain.CategoryGeneral, 10, 5)}), 1e-9)
	assert.InDelta(t, 10*3*0.10, BulkSavings([]domain.Suggestion{bulkItem(domain.CategoryGeneral, 10, 3)}), 1e-9)
	assert.Equal(t, 0.0, BulkSavings([]domain.Suggestion{bulkItem(domain.CategoryGeneral, 10, 2)}))
}

func TestBulkSavingsCategoryFloors(t *testing.T) {
	// household floor raises the 10% tier to 12%
	assert.InDelta(t, 10*3*0.12, BulkSavings([]domain.Suggestion{bulkItem(domain.CategoryHousehold, 10, 3)}), 1e-9)
	// electronics floor kicks in below the quantity tiers
	assert.InDelta(t, 10*2*0.05, BulkSavings([]domain.Suggestion{bulkItem(domain.CategoryElectronics, 10, 2)}), 1e-9)
}

func TestBulkSavingsMissingPriceContributesNothing(t *testing.T) {
	items := []domain.Suggestion{
		bulkItem(domain.CategoryGrocery, 0, 10),
		bulkItem(domain.CategoryGrocery, 10, 10),
	}
	assert.InDelta(t, 15.0, BulkSavings(items), 1e-9)
}

func TestSubscriptionSavingsEmpty(t *testing.T) {
	report := SubscriptionSavings(nil)
	require.NotNil(t, report)
	assert.Zero(t, report.TotalSavings)
	assert.Zero(t, report.TotalAnnualSavings)
	assert.Zero(t, report.RecommendedCount)
	assert.Empty(t, report.Items)
}

func TestSubscriptionSavingsEligibility(t *testing.T) {
	history := []domain.PurchaseRecord{
		{Date: time.Now().AddDate(0, -3, 0)},
		{Date: time.Now().AddDate(0, -2, 0)},
		{Date: time.Now().AddDate(0, -1, 0)},
	}

	items := []domain.InventoryItem{
		{ID: "subscribed", Name: "A", Category: domain.CategoryGrocery, PurchaseFrequency: domain.FrequencyWeekly, Price: 5, HasSubscription: true},
		{ID: "asneeded-no-history", Name: "B", Category: domain.CategoryGrocery, PurchaseFrequency: domain.FrequencyAsNeeded, Price: 5},
		{ID: "asneeded-history", Name: "C", Category: domain.CategoryGrocery, PurchaseFrequency: domain.FrequencyAsNeeded, Price: 5, PurchaseHistory: history},
		{ID: "weekly", Name: "D", Category: domain.CategoryGrocery, PurchaseFrequency: domain.FrequencyWeekly, Price: 5},
	}

	report := SubscriptionSavings(items)
	ids := make([]string, 0, len(report.Items))
	for _, s := range report.Items {
		ids = append(ids, s.ItemID)
	}
	assert.ElementsMatch(t, []string{"asneeded-history", "weekly"}, ids)
}

func TestSubscriptionSavingsAnnualization(t *testing.T) {
	items := []domain.InventoryItem{{
		ID:                "milk",
		Name:              "Milk",
		Category:          domain.CategoryGrocery,
		PurchaseFrequency: domain.FrequencyWeekly,
		Price:             4,
	}}

	report := SubscriptionSavings(items)
	require.Len(t, report.Items, 1)

	saving := report.Items[0]
	assert.InDelta(t, 4*0.10, saving.PerPurchaseSavings, 1e-9)
	assert.InDelta(t, 4*0.10*52, saving.AnnualSavings, 1e-9)
	assert.True(t, saving.Recommended) // 20.8/year clears the threshold
	assert.Equal(t, 1, report.RecommendedCount)
}

func TestSubscriptionSavingsBelowRecommendThreshold(t *testing.T) {
	items := []domain.InventoryItem{{
		ID:                "bulb",
		Name:              "Bulb",
		Category:          domain.CategoryElectronics,
		PurchaseFrequency: domain.FrequencyMonthly,
		Price:             10,
	}}

	report := SubscriptionSavings(items)
	require.Len(t, report.Items, 1)
	// 10 * 0.05 * 12 = 6/year
	assert.False(t, report.Items[0].Recommended)
	assert.Zero(t, report.RecommendedCount)
}

func TestSubscriptionSavingsDefaultCategoryRate(t *testing.T) {
	items := []domain.InventoryItem{{
		ID:                "pets",
		Name:              "Dog Food",
		Category:          domain.CategoryPets,
		PurchaseFrequency: domain.FrequencyWeekly,
		Price:             10,
	}}

	report := SubscriptionSavings(items)
	require.Len(t, report.Items, 1)
	assert.InDelta(t, 10*0.15, report.Items[0].PerPurchaseSavings, 1e-9)
}
