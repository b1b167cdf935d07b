package engine

import (
	"sort"

	"github.com/pantryops/restockd/internal/domain"
)

const (
	// maxBatchItems bounds one purchase trip.
	maxBatchItems = 10
	// maxBatchCost is the running cost cap per batch, in the same currency
	// unit as item prices.
	maxBatchCost = 100.0
)

// PlanBatches partitions an optimized list into purchase batches in a single
// greedy pass over urgency order. No item is dropped; an item whose cost
// alone exceeds the cap gets a batch of its own.
func PlanBatches(suggestions []domain.Suggestion) []domain.Batch {
	if len(suggestions) == 0 {
		return nil
	}

	items := make([]domain.Suggestion, len(suggestions))
	copy(items, suggestions)

	// Out-of-stock first, then below-threshold, then by remaining days.
	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i], &items[j]
		if ao, bo := a.Item.OutOfStock(), b.Item.OutOfStock(); ao != bo {
			return ao
		}
		if ab, bb := a.Item.BelowThreshold(), b.Item.BelowThreshold(); ab != bb {
			return ab
		}
		return a.DaysLeft < b.DaysLeft
	})

	var batches []domain.Batch
	current := domain.Batch{}

	for _, s := range items {
		cost := s.LineCost()
		full := current.ItemCount >= maxBatchItems ||
			(current.ItemCount > 0 && current.TotalCost+cost > maxBatchCost)
		if full {
			batches = append(batches, current)
			current = domain.Batch{}
		}

		current.Items = append(current.Items, s)
		current.ItemCount++
		current.TotalCost += cost
		if s.Essential {
			current.EssentialItemCount++
		}
	}

	if current.ItemCount > 0 {
		batches = append(batches, current)
	}
	return batches
}
