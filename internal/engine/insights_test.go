package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryops/restockd/internal/domain"
)

func TestInsightsEmptyInventory(t *testing.T) {
	_, err := Insights(nil)
	assert.Error(t, err)
	assert.IsType(t, &EmptyInputError{}, err)
}

func TestInsightsTopCategories(t *testing.T) {
	inventory := []domain.InventoryItem{
		{ID: "1", Name: "A", Quantity: 5, Category: domain.CategoryGrocery},
		{ID: "2", Name: "B", Quantity: 5, Category: domain.CategoryGrocery},
		{ID: "3", Name: "C", Quantity: 5, Category: domain.CategoryGrocery},
		{ID: "4", Name: "D", Quantity: 5, Category: domain.CategoryHousehold},
		{ID: "5", Name: "E", Quantity: 5, Category: domain.CategoryHousehold},
		{ID: "6", Name: "F", Quantity: 5, Category: domain.CategoryPersonal},
		{ID: "7", Name: "G", Quantity: 5, Category: domain.CategoryOffice},
	}

	report, err := Insights(inventory)
	require.NoError(t, err)

	require.Len(t, report.TopCategories, 3)
	assert.Equal(t, domain.CategoryGrocery, report.TopCategories[0].Category)
	assert.Equal(t, 3, report.TopCategories[0].Count)
	assert.InDelta(t, 3.0/7*100, report.TopCategories[0].Share, 1e-9)
	assert.Equal(t, domain.CategoryHousehold, report.TopCategories[1].Category)
}

func TestInsightsStockHealth(t *testing.T) {
	inventory := []domain.InventoryItem{
		{ID: "oos", Name: "A", Quantity: 0, MinThreshold: 1, Category: domain.CategoryGrocery},
		{ID: "low", Name: "B", Quantity: 1, MinThreshold: 2, Category: domain.CategoryGrocery},
		{ID: "fine", Name: "C", Quantity: 9, MinThreshold: 2, Category: domain.CategoryGrocery},
	}

	report, err := Insights(inventory)
	require.NoError(t, err)

	assert.Equal(t, 1, report.StockHealth.OutOfStock)
	assert.Equal(t, 1, report.StockHealth.LowStock)
	require.Len(t, report.StockHealth.ByCategory, 1)
	assert.Equal(t, domain.CategoryGrocery, report.StockHealth.ByCategory[0].Category)
	assert.Equal(t, 1, report.StockHealth.ByCategory[0].OutOfStock)
	assert.Equal(t, 1, report.StockHealth.ByCategory[0].LowStock)
}

func TestInsightsSubscriptionOpportunitiesTopFive(t *testing.T) {
	var inventory []domain.InventoryItem
	prices := []float64{1, 2, 3, 4, 5, 6, 7}
	for i, p := range prices {
		inventory = append(inventory, domain.InventoryItem{
			ID:                string(rune('a' + i)),
			Name:              "Item",
			Quantity:          5,
			Category:          domain.CategoryGrocery,
			PurchaseFrequency: domain.FrequencyWeekly,
			Price:             p,
		})
	}

	report, err := Insights(inventory)
	require.NoError(t, err)

	require.Len(t, report.SubscriptionOpportunities, 5)
	// sorted by annual savings, most valuable first
	assert.Equal(t, "g", report.SubscriptionOpportunities[0].ItemID)
	for i := 1; i < len(report.SubscriptionOpportunities); i++ {
		assert.GreaterOrEqual(t,
			report.SubscriptionOpportunities[i-1].AnnualSavings,
			report.SubscriptionOpportunities[i].AnnualSavings)
	}
}

func TestInsightsSeasonalSpikes(t *testing.T) {
	december := time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC)

	inventory := []domain.InventoryItem{
		{ID: "cocoa", Name: "Cocoa", Quantity: 2, Category: domain.CategoryGrocery,
			SeasonalPatterns: map[int]float64{11: 1.8}},
		{ID: "mild", Name: "Tea", Quantity: 2, Category: domain.CategoryGrocery,
			SeasonalPatterns: map[int]float64{11: 1.1}},
		{ID: "flat", Name: "Salt", Quantity: 2, Category: domain.CategoryGrocery},
	}

	report, err := insightsAt(inventory, december)
	require.NoError(t, err)

	require.Len(t, report.SeasonalSpikes, 1)
	assert.Equal(t, "cocoa", report.SeasonalSpikes[0].ItemID)
	assert.InDelta(t, 1.8, report.SeasonalSpikes[0].Multiplier, 1e-9)
}

func TestInsightsIrregularPatterns(t *testing.T) {
	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	regular := domain.InventoryItem{
		ID: "regular", Name: "Milk", Quantity: 2, Category: domain.CategoryGrocery,
		PurchaseFrequency: domain.FrequencyWeekly,
		PurchaseHistory: []domain.PurchaseRecord{
			{Date: base},
			{Date: base.AddDate(0, 0, 7)},
			{Date: base.AddDate(0, 0, 14)},
			{Date: base.AddDate(0, 0, 21)},
		},
	}

	erratic := domain.InventoryItem{
		ID: "erratic", Name: "Chips", Quantity: 2, Category: domain.CategoryGrocery,
		PurchaseFrequency: domain.FrequencyWeekly,
		PurchaseHistory: []domain.PurchaseRecord{
			{Date: base},
			{Date: base.AddDate(0, 0, 1)},
			{Date: base.AddDate(0, 0, 2)},
			{Date: base.AddDate(0, 0, 60)},
		},
	}

	sparse := domain.InventoryItem{
		ID: "sparse", Name: "Foil", Quantity: 2, Category: domain.CategoryHousehold,
		PurchaseHistory: []domain.PurchaseRecord{
			{Date: base},
			{Date: base.AddDate(0, 0, 30)},
		},
	}

	report, err := Insights([]domain.InventoryItem{regular, erratic, sparse})
	require.NoError(t, err)

	require.Len(t, report.IrregularPatterns, 1)
	finding := report.IrregularPatterns[0]
	assert.Equal(t, "erratic", finding.ItemID)
	assert.Greater(t, finding.VariationCoefficient, 0.5)
	// mean interval (1+1+58)/3 = 20 days -> monthly bucket
	assert.Equal(t, domain.FrequencyMonthly, finding.RecommendedFrequency)
}

func TestFrequencyForIntervalBuckets(t *testing.T) {
	assert.Equal(t, domain.FrequencyDaily, frequencyForInterval(1.5))
	assert.Equal(t, domain.FrequencyWeekly, frequencyForInterval(7))
	assert.Equal(t, domain.FrequencyBiweekly, frequencyForInterval(14))
	assert.Equal(t, domain.FrequencyMonthly, frequencyForInterval(30))
	assert.Equal(t, domain.FrequencyAsNeeded, frequencyForInterval(90))
}
