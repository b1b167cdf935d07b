package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/pantryops/restockd/internal/domain"
)

// OptimizeOptions controls shopping list ordering and constraints. The zero
// value means balanced ordering, no caps, non-essentials included.
type OptimizeOptions struct {
	Preference domain.Preference
	// MaxItems caps the final list size when > 0.
	MaxItems int
	// Budget caps accumulated cost for non-essential items when > 0.
	// Essential items are always kept and still count against it.
	Budget float64
	// PreferredStores ranks stores for the time and balanced orderings;
	// unlisted stores sort after listed ones.
	PreferredStores []string
	// ExcludeNonEssentials drops everything not labeled essential.
	ExcludeNonEssentials bool
}

// Optimize reorders and constrains a suggestion set into a purchasable
// shopping list. The input slice is never modified.
func Optimize(suggestions []domain.Suggestion, opts OptimizeOptions) (*domain.OptimizedList, error) {
	if len(suggestions) == 0 {
		return nil, &EmptyInputError{Op: "optimize"}
	}
	if opts.Preference == "" {
		opts.Preference = domain.PreferenceBalanced
	}

	items := make([]domain.Suggestion, len(suggestions))
	copy(items, suggestions)

	// 1) Essential labeling. An item already labeled essential keeps it.
	for i := range items {
		items[i].Essential = items[i].Essential || isEssential(&items[i])
	}

	// 2) Optional non-essential filter.
	if opts.ExcludeNonEssentials {
		kept := items[:0]
		for _, s := range items {
			if s.Essential {
				kept = append(kept, s)
			}
		}
		items = kept
		if len(items) == 0 {
			return nil, &EmptyInputError{Op: "optimize"}
		}
	}

	// 3) Ordering by preference.
	orderItems(items, opts)

	meta := domain.OptimizeMetadata{Preference: opts.Preference}

	// 4) Budget constraint: essentials always survive, non-essentials only
	// while the running total stays within budget.
	if opts.Budget > 0 {
		kept := make([]domain.Suggestion, 0, len(items))
		total := 0.0
		for _, s := range items {
			cost := s.LineCost()
			if s.Essential {
				total += cost
				kept = append(kept, s)
				continue
			}
			if total+cost <= opts.Budget {
				total += cost
				kept = append(kept, s)
			} else {
				meta.DroppedOverBudget++
			}
		}
		items = kept
	}

	// 5) Item cap: essentials first, remaining slots filled in order.
	if opts.MaxItems > 0 && len(items) > opts.MaxItems {
		items = applyItemCap(items, opts.MaxItems, &meta)
	}

	for _, s := range items {
		meta.EstimatedTotalCost += s.LineCost()
		if s.Essential {
			meta.EssentialCount++
		} else {
			meta.NonEssentialCount++
		}
	}
	meta.TotalItems = len(items)
	meta.BulkSavings = BulkSavings(items)
	meta.SubscriptionSavings = SubscriptionSavings(itemsOf(items)).TotalSavings

	return &domain.OptimizedList{Items: items, Metadata: meta}, nil
}

// isEssential labels items that must survive budget and size caps.
func isEssential(s *domain.Suggestion) bool {
	if s.Item.OutOfStock() || s.Item.BelowThreshold() {
		return true
	}
	switch s.Item.PurchaseFrequency {
	case domain.FrequencyDaily, domain.FrequencyWeekly:
		return true
	}
	switch s.Item.Category {
	case domain.CategoryGrocery, domain.CategoryHousehold:
		return true
	}
	return s.Urgency == domain.UrgencyHigh || s.Urgency == domain.UrgencyCritical
}

func orderItems(items []domain.Suggestion, opts OptimizeOptions) {
	storeRank := storeRanks(opts.PreferredStores)

	switch opts.Preference {
	case domain.PreferenceCost:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := &items[i], &items[j]
			if a.Essential != b.Essential {
				return a.Essential
			}
			if a.Item.Store != b.Item.Store {
				return a.Item.Store < b.Item.Store
			}
			if a.Item.Category != b.Item.Category {
				return a.Item.Category < b.Item.Category
			}
			return unitPriceKey(a) < unitPriceKey(b)
		})

	case domain.PreferenceTime:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := &items[i], &items[j]
			if a.Essential != b.Essential {
				return a.Essential
			}
			ra, rb := rankOf(storeRank, a.Item.Store), rankOf(storeRank, b.Item.Store)
			if ra != rb {
				return ra < rb
			}
			if a.Item.Category != b.Item.Category {
				return a.Item.Category < b.Item.Category
			}
			return a.Item.Aisle < b.Item.Aisle
		})

	case domain.PreferenceUrgent:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := &items[i], &items[j]
			if av, bv := a.Urgency.Value(), b.Urgency.Value(); av != bv {
				return av > bv
			}
			if ao, bo := a.Item.OutOfStock(), b.Item.OutOfStock(); ao != bo {
				return ao
			}
			return a.DaysLeft < b.DaysLeft
		})

	default: // balanced
		sort.SliceStable(items, func(i, j int) bool {
			a, b := &items[i], &items[j]
			if ta, tb := urgencyTier(a), urgencyTier(b); ta != tb {
				return ta < tb
			}
			ra, rb := rankOf(storeRank, a.Item.Store), rankOf(storeRank, b.Item.Store)
			if ra != rb {
				return ra < rb
			}
			if a.Item.Category != b.Item.Category {
				return a.Item.Category < b.Item.Category
			}
			return unitPriceKey(a) < unitPriceKey(b)
		})
	}
}

// urgencyTier buckets suggestions for the balanced ordering; 0 is the most
// urgent bucket.
func urgencyTier(s *domain.Suggestion) int {
	switch {
	case s.Item.OutOfStock():
		return 0
	case s.Item.BelowThreshold():
		return 1
	case s.DaysLeft <= 3:
		return 2
	case s.DaysLeft <= 7:
		return 3
	default:
		return 4
	}
}

// unitPriceKey sorts unknown prices after known ones so zero-priced items do
// not masquerade as bargains.
func unitPriceKey(s *domain.Suggestion) float64 {
	if s.Item.Price <= 0 {
		return math.MaxFloat64
	}
	return s.Item.Price
}

func storeRanks(preferred []string) map[string]int {
	ranks := make(map[string]int, len(preferred))
	for i, store := range preferred {
		key := strings.ToLower(strings.TrimSpace(store))
		if _, seen := ranks[key]; key != "" && !seen {
			ranks[key] = i
		}
	}
	return ranks
}

func rankOf(ranks map[string]int, store string) int {
	if r, ok := ranks[strings.ToLower(strings.TrimSpace(store))]; ok {
		return r
	}
	return len(ranks)
}

// applyItemCap keeps essentials (truncated to the cap if they alone exceed
// it) and fills the remaining slots with non-essentials in list order.
func applyItemCap(items []domain.Suggestion, maxItems int, meta *domain.OptimizeMetadata) []domain.Suggestion {
	essentials := make([]domain.Suggestion, 0, len(items))
	rest := make([]domain.Suggestion, 0, len(items))
	for _, s := range items {
		if s.Essential {
			essentials = append(essentials, s)
		} else {
			rest = append(rest, s)
		}
	}

	meta.DroppedOverCap = len(items) - maxItems

	if len(essentials) >= maxItems {
		return essentials[:maxItems]
	}
	capped := essentials
	for _, s := range rest {
		if len(capped) == maxItems {
			break
		}
		capped = append(capped, s)
	}
	return capped
}

func itemsOf(suggestions []domain.Suggestion) []domain.InventoryItem {
	items := make([]domain.InventoryItem, len(suggestions))
	for i := range suggestions {
		items[i] = suggestions[i].Item
	}
	return items
}
