package engine

import (
	"math"

	"github.com/pantryops/restockd/internal/domain"
)

const (
	// farFutureDays bounds "never runs out" so day comparisons stay
	// total-ordered instead of drifting into +Inf.
	farFutureDays = 9999

	// fallbackRateDays normalizes a reorder threshold into a daily rate
	// when no learned consumption rate exists: the threshold is assumed to
	// cover two weeks of use.
	fallbackRateDays = 14.0
)

// DaysLeft estimates how many whole days of stock remain for an item.
func DaysLeft(item *domain.InventoryItem) int {
	if item == nil || item.Quantity <= 0 {
		return 0
	}

	rate := item.DailyConsumptionRate
	if rate <= 0 {
		rate = item.MinThreshold / fallbackRateDays
	}
	if rate <= 0 {
		return farFutureDays
	}

	days := int(math.Ceil(float64(item.Quantity) / rate))
	if days > farFutureDays {
		return farFutureDays
	}
	return days
}
