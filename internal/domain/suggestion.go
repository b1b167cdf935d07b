package domain

import "time"

// Suggestion is a derived reorder record. It copies the item snapshot it was
// computed from and carries no identity of its own; recomputation is the
// only update path.
type Suggestion struct {
	Item InventoryItem `json:"item"`

	DaysLeft               int     `json:"days_left"`
	Confidence             float64 `json:"confidence"`
	SuggestedOrderQuantity int     `json:"suggested_order_quantity"`
	Urgency                Urgency `json:"urgency"`
	BulkRecommended        bool    `json:"bulk_recommended"`
	SubscriptionEligible   bool    `json:"subscription_eligible"`
	Essential              bool    `json:"essential"`
}

// LineCost is the estimated cost of purchasing the suggested quantity.
// Items without a known price cost nothing.
func (s *Suggestion) LineCost() float64 {
	if s.Item.Price <= 0 {
		return 0
	}
	return s.Item.Price * float64(s.SuggestedOrderQuantity)
}

// SuggestionSet is the output of suggestion generation.
type SuggestionSet struct {
	Items    []Suggestion       `json:"items"`
	Metadata SuggestionMetadata `json:"metadata"`
}

// SuggestionMetadata reports aggregate counts for observability.
type SuggestionMetadata struct {
	GeneratedAt          time.Time `json:"generated_at"`
	TotalItems           int       `json:"total_items"`
	CriticalCount        int       `json:"critical_count"`
	HighCount            int       `json:"high_count"`
	BulkCount            int       `json:"bulk_count"`
	SubscriptionEligible int       `json:"subscription_eligible"`
	SkippedInvalid       int       `json:"skipped_invalid"`
}

// OptimizedList is the output of shopping list optimization.
type OptimizedList struct {
	Items    []Suggestion     `json:"items"`
	Metadata OptimizeMetadata `json:"metadata"`
}

// OptimizeMetadata summarizes the final list.
type OptimizeMetadata struct {
	Preference          Preference `json:"preference"`
	TotalItems          int        `json:"total_items"`
	EssentialCount      int        `json:"essential_count"`
	NonEssentialCount   int        `json:"non_essential_count"`
	EstimatedTotalCost  float64    `json:"estimated_total_cost"`
	BulkSavings         float64    `json:"bulk_savings"`
	SubscriptionSavings float64    `json:"subscription_savings"`
	DroppedOverBudget   int        `json:"dropped_over_budget"`
	DroppedOverCap      int        `json:"dropped_over_cap"`
}

// Batch is one purchase trip: a bounded group of suggestions. Batches
// partition the optimized list; no item appears twice.
type Batch struct {
	Items              []Suggestion `json:"items"`
	TotalCost          float64      `json:"total_cost"`
	ItemCount          int          `json:"item_count"`
	EssentialItemCount int          `json:"essential_item_count"`
}

// SubscriptionSaving is the subscription estimate for a single item.
type SubscriptionSaving struct {
	ItemID             string   `json:"item_id"`
	Name               string   `json:"name"`
	Category           Category `json:"category"`
	PerPurchaseSavings float64  `json:"per_purchase_savings"`
	AnnualSavings      float64  `json:"annual_savings"`
	Recommended        bool     `json:"recommended"`
}

// SubscriptionSavingsReport aggregates subscription estimates.
type SubscriptionSavingsReport struct {
	TotalSavings       float64              `json:"total_savings"`
	TotalAnnualSavings float64              `json:"total_annual_savings"`
	RecommendedCount   int                  `json:"recommended_count"`
	Items              []SubscriptionSaving `json:"items"`
}
