package engine

import (
	"math"
	"sort"
	"time"

	"github.com/pantryops/restockd/internal/domain"
)

const (
	// seasonalSpikeFloor is the current-month multiplier above which an
	// item counts as in-season.
	seasonalSpikeFloor = 1.2

	// irregularityThreshold is the coefficient of variation over purchase
	// intervals beyond which a cadence is flagged as irregular.
	irregularityThreshold = 0.5
)

// Insights aggregates category, stock-health, subscription, seasonal and
// purchase-pattern signals over the full inventory.
func Insights(inventory []domain.InventoryItem) (*domain.InsightReport, error) {
	return insightsAt(inventory, time.Now())
}

func insightsAt(inventory []domain.InventoryItem, now time.Time) (*domain.InsightReport, error) {
	if len(inventory) == 0 {
		return nil, &EmptyInputError{Op: "insights"}
	}

	report := &domain.InsightReport{
		GeneratedAt: now,
		TotalItems:  len(inventory),
	}

	report.TopCategories = topCategories(inventory, 3)
	report.StockHealth = stockHealth(inventory)
	report.SubscriptionOpportunities = subscriptionOpportunities(inventory, 5)
	report.SeasonalSpikes = seasonalSpikes(inventory, now)
	report.IrregularPatterns = irregularPatterns(inventory)

	return report, nil
}

func topCategories(inventory []domain.InventoryItem, limit int) []domain.CategoryShare {
	counts := make(map[domain.Category]int)
	for i := range inventory {
		counts[inventory[i].Category]++
	}

	shares := make([]domain.CategoryShare, 0, len(counts))
	for category, count := range counts {
		shares = append(shares, domain.CategoryShare{
			Category: category,
			Count:    count,
			Share:    float64(count) / float64(len(inventory)) * 100,
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Category < shares[j].Category
	})

	if len(shares) > limit {
		shares = shares[:limit]
	}
	return shares
}

func stockHealth(inventory []domain.InventoryItem) domain.StockHealthSummary {
	summary := domain.StockHealthSummary{}
	byCategory := make(map[domain.Category]*domain.CategoryStockBreakdown)

	for i := range inventory {
		item := &inventory[i]

		var entry *domain.CategoryStockBreakdown
		record := func() *domain.CategoryStockBreakdown {
			if entry == nil {
				entry = byCategory[item.Category]
				if entry == nil {
					entry = &domain.CategoryStockBreakdown{Category: item.Category}
					byCategory[item.Category] = entry
				}
			}
			return entry
		}

		if item.OutOfStock() {
			summary.OutOfStock++
			record().OutOfStock++
		} else if item.BelowThreshold() {
			summary.LowStock++
			record().LowStock++
		}
	}

	summary.ByCategory = make([]domain.CategoryStockBreakdown, 0, len(byCategory))
	for _, entry := range byCategory {
		summary.ByCategory = append(summary.ByCategory, *entry)
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		return summary.ByCategory[i].Category < summary.ByCategory[j].Category
	})
	return summary
}

func subscriptionOpportunities(inventory []domain.InventoryItem, limit int) []domain.SubscriptionSaving {
	savings := SubscriptionSavings(inventory).Items

	kept := savings[:0]
	for _, s := range savings {
		if s.AnnualSavings > 0 {
			kept = append(kept, s)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].AnnualSavings > kept[j].AnnualSavings
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

func seasonalSpikes(inventory []domain.InventoryItem, now time.Time) []domain.SeasonalSpike {
	var spikes []domain.SeasonalSpike
	for i := range inventory {
		item := &inventory[i]
		if m := item.SeasonalMultiplier(now); m > seasonalSpikeFloor {
			spikes = append(spikes, domain.SeasonalSpike{
				ItemID:     item.ID,
				Name:       item.Name,
				Multiplier: m,
			})
		}
	}
	sort.SliceStable(spikes, func(i, j int) bool {
		return spikes[i].Multiplier > spikes[j].Multiplier
	})
	return spikes
}

// irregularPatterns flags items whose purchase intervals vary too much for
// their recorded cadence and recommends the cadence the intervals support.
func irregularPatterns(inventory []domain.InventoryItem) []domain.PatternFinding {
	var findings []domain.PatternFinding

	for i := range inventory {
		item := &inventory[i]
		if len(item.PurchaseHistory) < 3 {
			continue
		}

		intervals := purchaseIntervals(item.PurchaseHistory)
		if len(intervals) == 0 {
			continue
		}

		mean, stddev := meanStddev(intervals)
		if mean <= 0 {
			continue
		}
		cv := stddev / mean
		if cv <= irregularityThreshold {
			continue
		}

		findings = append(findings, domain.PatternFinding{
			ItemID:               item.ID,
			Name:                 item.Name,
			MeanIntervalDays:     mean,
			VariationCoefficient: cv,
			CurrentFrequency:     item.PurchaseFrequency,
			RecommendedFrequency: frequencyForInterval(mean),
		})
	}
	return findings
}

func purchaseIntervals(history []domain.PurchaseRecord) []float64 {
	sorted := make([]domain.PurchaseRecord, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	intervals := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		days := sorted[i].Date.Sub(sorted[i-1].Date).Hours() / 24
		intervals = append(intervals, days)
	}
	return intervals
}

func meanStddev(values []float64) (float64, float64) {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}

// frequencyForInterval buckets a mean inter-purchase interval into the
// nearest cadence.
func frequencyForInterval(days float64) domain.Frequency {
	switch {
	case days <= 2:
		return domain.FrequencyDaily
	case days <= 10:
		return domain.FrequencyWeekly
	case days <= 18:
		return domain.FrequencyBiweekly
	case days <= 45:
		return domain.FrequencyMonthly
	default:
		return domain.FrequencyAsNeeded
	}
}
