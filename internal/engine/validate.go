package engine

import (
	"math"
	"strings"

	"github.com/pantryops/restockd/internal/domain"
)

// Validate checks that an item has the minimum shape required for downstream
// math. It is side-effect-free and never mutates the item.
func Validate(item *domain.InventoryItem) error {
	if item == nil {
		return &ValidationError{Field: "item", Reason: "is nil"}
	}
	if strings.TrimSpace(item.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if item.Category == "" {
		return &ValidationError{Field: "category", Reason: "is required"}
	}
	if item.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if err := checkFinite("min_threshold", item.MinThreshold); err != nil {
		return err
	}
	if item.MinThreshold < 0 {
		return &ValidationError{Field: "min_threshold", Reason: "must not be negative"}
	}
	if err := checkFinite("price", item.Price); err != nil {
		return err
	}
	if item.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if err := checkFinite("daily_consumption_rate", item.DailyConsumptionRate); err != nil {
		return err
	}
	if item.DailyConsumptionRate < 0 {
		return &ValidationError{Field: "daily_consumption_rate", Reason: "must not be negative"}
	}
	if item.PurchaseFrequency != "" && !item.PurchaseFrequency.IsValid() {
		return &ValidationError{Field: "purchase_frequency", Reason: "is not a recognized cadence"}
	}
	return nil
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: field, Reason: "must be a finite number"}
	}
	return nil
}
