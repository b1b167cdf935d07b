package engine

import (
	"math"
	"time"

	"github.com/pantryops/restockd/internal/domain"
)

const (
	defaultNotificationThreshold = 7
	defaultBulkThreshold         = 3

	// defaultConfidence labels suggestions for items that carry no cached
	// prediction. Descriptive only.
	defaultConfidence = 50.0
)

// SuggestOptions controls suggestion generation. The zero value keeps every
// inclusion toggle on and applies the documented defaults.
type SuggestOptions struct {
	// NotificationThreshold is the depletion horizon in days. Defaults to 7.
	NotificationThreshold int
	// BulkPurchaseThreshold is the order quantity at which a bulk purchase
	// is recommended. Defaults to 3.
	BulkPurchaseThreshold int

	SkipOutOfStock     bool
	SkipBelowThreshold bool
	SkipNearDepletion  bool
}

func (o SuggestOptions) normalized() SuggestOptions {
	if o.NotificationThreshold <= 0 {
		o.NotificationThreshold = defaultNotificationThreshold
	}
	if o.BulkPurchaseThreshold <= 0 {
		o.BulkPurchaseThreshold = defaultBulkThreshold
	}
	return o
}

// orderMultipliers scales the reorder floor into a suggested order quantity
// per purchase cadence.
var orderMultipliers = map[domain.Frequency]float64{
	domain.FrequencyDaily:    3,
	domain.FrequencyWeekly:   2,
	domain.FrequencyBiweekly: 1.5,
	domain.FrequencyMonthly:  1.2,
	domain.FrequencyAsNeeded: 1,
}

// Suggest filters the inventory to items needing attention and attaches
// order quantity, urgency tier and savings eligibility. Invalid items are
// skipped, not errored.
func Suggest(inventory []domain.InventoryItem, opts SuggestOptions) (*domain.SuggestionSet, error) {
	if len(inventory) == 0 {
		return nil, &EmptyInputError{Op: "suggest"}
	}
	opts = opts.normalized()

	set := &domain.SuggestionSet{
		Items:    make([]domain.Suggestion, 0, len(inventory)),
		Metadata: domain.SuggestionMetadata{GeneratedAt: time.Now()},
	}

	for i := range inventory {
		item := inventory[i]
		if err := Validate(&item); err != nil {
			set.Metadata.SkippedInvalid++
			continue
		}

		daysLeft := DaysLeft(&item)
		if !selected(&item, daysLeft, opts) {
			continue
		}

		s := buildSuggestion(item, daysLeft, opts)
		set.Items = append(set.Items, s)

		switch s.Urgency {
		case domain.UrgencyCritical:
			set.Metadata.CriticalCount++
		case domain.UrgencyHigh:
			set.Metadata.HighCount++
		}
		if s.BulkRecommended {
			set.Metadata.BulkCount++
		}
		if s.SubscriptionEligible {
			set.Metadata.SubscriptionEligible++
		}
	}

	set.Metadata.TotalItems = len(set.Items)
	return set, nil
}

func selected(item *domain.InventoryItem, daysLeft int, opts SuggestOptions) bool {
	if item.OutOfStock() {
		return !opts.SkipOutOfStock
	}
	if item.BelowThreshold() && !opts.SkipBelowThreshold {
		return true
	}
	if daysLeft <= opts.NotificationThreshold && !opts.SkipNearDepletion {
		return true
	}
	return false
}

func buildSuggestion(item domain.InventoryItem, daysLeft int, opts SuggestOptions) domain.Suggestion {
	qty := suggestedOrderQuantity(&item)

	confidence := defaultConfidence
	if item.AIMeta != nil && item.AIMeta.Confidence > 0 {
		confidence = item.AIMeta.Confidence
	}

	return domain.Suggestion{
		Item:                   item,
		DaysLeft:               daysLeft,
		Confidence:             confidence,
		SuggestedOrderQuantity: qty,
		Urgency:                urgencyFor(&item, daysLeft),
		BulkRecommended:        qty >= opts.BulkPurchaseThreshold,
		SubscriptionEligible:   item.PurchaseFrequency != domain.FrequencyAsNeeded && !item.HasSubscription,
	}
}

// suggestedOrderQuantity prefers a cached optimal quantity and otherwise
// scales the reorder floor by the cadence multiplier. Never below 1.
func suggestedOrderQuantity(item *domain.InventoryItem) int {
	if item.AIMeta != nil && item.AIMeta.OptimalOrderQuantity > 0 {
		return item.AIMeta.OptimalOrderQuantity
	}

	mult, ok := orderMultipliers[item.PurchaseFrequency]
	if !ok {
		mult = 1
	}

	qty := int(math.Ceil(math.Max(1, item.MinThreshold) * mult))
	if qty < 1 {
		qty = 1
	}
	return qty
}

// urgencyFor tiers severity from hard stockout down to horizon proximity.
func urgencyFor(item *domain.InventoryItem, daysLeft int) domain.Urgency {
	switch {
	case item.OutOfStock():
		return domain.UrgencyCritical
	case item.BelowThreshold():
		return domain.UrgencyHigh
	case daysLeft <= 3:
		return domain.UrgencyMedium
	default:
		return domain.UrgencyLow
	}
}
