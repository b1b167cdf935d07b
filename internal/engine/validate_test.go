package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pantryops/restockd/internal/domain"
)

func validItem() domain.InventoryItem {
	return domain.InventoryItem{
		ID:                "itm-1",
		Name:              "Milk",
		Quantity:          2,
		Unit:              "items",
		MinThreshold:      1,
		Category:          domain.CategoryGrocery,
		PurchaseFrequency: domain.FrequencyWeekly,
		Price:             3.5,
	}
}

func TestValidateAcceptsMinimalItem(t *testing.T) {
	item := validItem()
	assert.NoError(t, Validate(&item))
}

func TestValidateRejectsNil(t *testing.T) {
	err := Validate(nil)
	assert.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)
}

func TestValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.InventoryItem)
	}{
		{"empty name", func(i *domain.InventoryItem) { i.Name = "  " }},
		{"empty category", func(i *domain.InventoryItem) { i.Category = "" }},
		{"negative quantity", func(i *domain.InventoryItem) { i.Quantity = -1 }},
		{"negative threshold", func(i *domain.InventoryItem) { i.MinThreshold = -0.5 }},
		{"nan threshold", func(i *domain.InventoryItem) { i.MinThreshold = math.NaN() }},
		{"infinite price", func(i *domain.InventoryItem) { i.Price = math.Inf(1) }},
		{"negative price", func(i *domain.InventoryItem) { i.Price = -1 }},
		{"negative rate", func(i *domain.InventoryItem) { i.DailyConsumptionRate = -0.1 }},
		{"unknown frequency", func(i *domain.InventoryItem) { i.PurchaseFrequency = "fortnightly" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := validItem()
			tc.mutate(&item)
			err := Validate(&item)
			assert.Error(t, err)
			assert.IsType(t, &ValidationError{}, err)
		})
	}
}

func TestValidateAllowsUnrecognizedCategory(t *testing.T) {
	item := validItem()
	item.Category = "garage"
	assert.NoError(t, Validate(&item))
}

func TestValidateAllowsAbsentFrequency(t *testing.T) {
	item := validItem()
	item.PurchaseFrequency = ""
	assert.NoError(t, Validate(&item))
}
