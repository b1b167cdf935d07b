package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pantryops/restockd/internal/domain"
)

// WriteSuggestions writes a suggestion list as CSV.
func WriteSuggestions(w io.Writer, suggestions []domain.Suggestion) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{
		"id", "name", "category", "quantity", "days_left", "urgency",
		"suggested_order_quantity", "estimated_cost", "essential",
		"bulk_recommended", "subscription_eligible",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range suggestions {
		s := &suggestions[i]
		record := []string{
			s.Item.ID,
			s.Item.Name,
			string(s.Item.Category),
			strconv.Itoa(s.Item.Quantity),
			strconv.Itoa(s.DaysLeft),
			string(s.Urgency),
			strconv.Itoa(s.SuggestedOrderQuantity),
			formatAmount(s.LineCost()),
			strconv.FormatBool(s.Essential),
			strconv.FormatBool(s.BulkRecommended),
			strconv.FormatBool(s.SubscriptionEligible),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write suggestion %s: %w", s.Item.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteBatches writes a batch plan as CSV, one row per item with its batch
// number so the file prints as a sequence of shopping trips.
func WriteBatches(w io.Writer, batches []domain.Batch) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{
		"batch", "id", "name", "category", "suggested_order_quantity",
		"estimated_cost", "urgency", "essential",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for n, batch := range batches {
		for i := range batch.Items {
			s := &batch.Items[i]
			record := []string{
				strconv.Itoa(n + 1),
				s.Item.ID,
				s.Item.Name,
				string(s.Item.Category),
				strconv.Itoa(s.SuggestedOrderQuantity),
				formatAmount(s.LineCost()),
				string(s.Urgency),
				strconv.FormatBool(s.Essential),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("write batch %d item %s: %w", n+1, s.Item.ID, err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteItems writes inventory records back out in canonical column names.
func WriteItems(w io.Writer, items []domain.InventoryItem) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{
		"id", "name", "quantity", "unit", "min_threshold", "category",
		"purchase_frequency", "price", "daily_consumption_rate",
		"has_subscription", "store", "aisle",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range items {
		item := &items[i]
		record := []string{
			item.ID,
			item.Name,
			strconv.Itoa(item.Quantity),
			item.Unit,
			formatAmount(item.MinThreshold),
			string(item.Category),
			string(item.PurchaseFrequency),
			formatAmount(item.Price),
			formatAmount(item.DailyConsumptionRate),
			strconv.FormatBool(item.HasSubscription),
			item.Store,
			item.Aisle,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write item %s: %w", item.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
