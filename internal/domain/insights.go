package domain

import "time"

// CategoryShare is one slice of the category breakdown.
type CategoryShare struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
	Share    float64  `json:"share"` // percentage of total items
}

// CategoryStockBreakdown counts stock problems per category.
type CategoryStockBreakdown struct {
	Category   Category `json:"category"`
	LowStock   int      `json:"low_stock"`
	OutOfStock int      `json:"out_of_stock"`
}

// StockHealthSummary counts items needing attention across the inventory.
type StockHealthSummary struct {
	LowStock   int                      `json:"low_stock"`
	OutOfStock int                      `json:"out_of_stock"`
	ByCategory []CategoryStockBreakdown `json:"by_category"`
}

// SeasonalSpike flags an item whose current-month multiplier is elevated.
type SeasonalSpike struct {
	ItemID     string  `json:"item_id"`
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

// PatternFinding flags an irregular purchase pattern and the cadence the
// observed intervals actually support.
type PatternFinding struct {
	ItemID               string    `json:"item_id"`
	Name                 string    `json:"name"`
	MeanIntervalDays     float64   `json:"mean_interval_days"`
	VariationCoefficient float64   `json:"variation_coefficient"`
	CurrentFrequency     Frequency `json:"current_frequency"`
	RecommendedFrequency Frequency `json:"recommended_frequency"`
}

// InsightReport is the aggregated inventory summary.
type InsightReport struct {
	GeneratedAt               time.Time            `json:"generated_at"`
	TotalItems                int                  `json:"total_items"`
	TopCategories             []CategoryShare      `json:"top_categories"`
	StockHealth               StockHealthSummary   `json:"stock_health"`
	SubscriptionOpportunities []SubscriptionSaving `json:"subscription_opportunities"`
	SeasonalSpikes            []SeasonalSpike      `json:"seasonal_spikes"`
	IrregularPatterns         []PatternFinding     `json:"irregular_patterns"`
}
