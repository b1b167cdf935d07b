package engine

import "github.com/pantryops/restockd/internal/domain"

// subscriptionRates is the per-category discount a recurring order earns.
var subscriptionRates = map[domain.Category]float64{
	domain.CategoryGrocery:     0.10,
	domain.CategoryHousehold:   0.15,
	domain.CategoryPersonal:    0.12,
	domain.CategoryElectronics: 0.05,
}

const defaultSubscriptionRate = 0.15

// purchasesPerYear annualizes per-purchase savings by cadence.
var purchasesPerYear = map[domain.Frequency]float64{
	domain.FrequencyDaily:    365,
	domain.FrequencyWeekly:   52,
	domain.FrequencyBiweekly: 26,
	domain.FrequencyMonthly:  12,
	domain.FrequencyAsNeeded: 6,
}

// recommendAnnualSavings is the projected yearly savings at which a
// subscription becomes worth recommending, in the same currency unit as
// item prices.
const recommendAnnualSavings = 20.0

// BulkSavings estimates the total discount from ordering each suggestion at
// its suggested quantity. Items without a known price contribute nothing.
// Empty input yields 0.
func BulkSavings(suggestions []domain.Suggestion) float64 {
	total := 0.0
	for i := range suggestions {
		s := &suggestions[i]
		if s.Item.Price <= 0 {
			continue
		}
		rate := bulkRate(s.SuggestedOrderQuantity, s.Item.Category)
		total += s.Item.Price * float64(s.SuggestedOrderQuantity) * rate
	}
	return total
}

// bulkRate resolves the quantity-tier discount, raised to the category floor
// where one applies.
func bulkRate(qty int, category domain.Category) float64 {
	rate := 0.0
	switch {
	case qty >= 10:
		rate = 0.15
	case qty >= 5:
		rate = 0.12
	case qty >= 3:
		rate = 0.10
	}

	switch category {
	case domain.CategoryGrocery:
		if qty >= 3 && rate < 0.08 {
			rate = 0.08
		}
	case domain.CategoryHousehold:
		if qty >= 3 && rate < 0.12 {
			rate = 0.12
		}
	case domain.CategoryElectronics:
		if qty >= 2 && rate < 0.05 {
			rate = 0.05
		}
	}
	return rate
}

// SubscriptionSavings estimates per-purchase and annualized savings from
// moving eligible items onto recurring orders. Empty input yields a zero
// report, never an error.
func SubscriptionSavings(items []domain.InventoryItem) *domain.SubscriptionSavingsReport {
	report := &domain.SubscriptionSavingsReport{
		Items: make([]domain.SubscriptionSaving, 0, len(items)),
	}

	for i := range items {
		item := &items[i]
		if !subscriptionEligible(item) {
			continue
		}

		rate, ok := subscriptionRates[item.Category]
		if !ok {
			rate = defaultSubscriptionRate
		}

		perPurchase := item.Price * rate
		annual := perPurchase * purchasesPerYear[item.PurchaseFrequency]
		recommended := annual >= recommendAnnualSavings

		report.Items = append(report.Items, domain.SubscriptionSaving{
			ItemID:             item.ID,
			Name:               item.Name,
			Category:           item.Category,
			PerPurchaseSavings: perPurchase,
			AnnualSavings:      annual,
			Recommended:        recommended,
		})
		report.TotalSavings += perPurchase
		report.TotalAnnualSavings += annual
		if recommended {
			report.RecommendedCount++
		}
	}

	return report
}

// subscriptionEligible requires an unsubscribed item with a recurring
// cadence, or at least a purchase trail regular enough to subscribe on.
func subscriptionEligible(item *domain.InventoryItem) bool {
	if item.HasSubscription {
		return false
	}
	return item.PurchaseFrequency != domain.FrequencyAsNeeded || len(item.PurchaseHistory) >= 3
}
