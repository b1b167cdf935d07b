package domain

import "time"

// InventoryItem is a snapshot of one tracked item. Identity is owned by the
// calling application; the engine never mutates a passed-in item.
type InventoryItem struct {
	ID                string    `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Quantity          int       `json:"quantity" db:"quantity"`
	Unit              string    `json:"unit" db:"unit"`
	MinThreshold      float64   `json:"min_threshold" db:"min_threshold"`
	Category          Category  `json:"category" db:"category"`
	PurchaseFrequency Frequency `json:"purchase_frequency" db:"purchase_frequency"`

	// Price per unit. Zero means unknown; savings math treats unknown
	// prices as contributing nothing.
	Price float64 `json:"price,omitempty" db:"price"`

	// DailyConsumptionRate overrides the threshold heuristic when > 0.
	DailyConsumptionRate float64 `json:"daily_consumption_rate,omitempty" db:"daily_consumption_rate"`

	PurchaseHistory []PurchaseRecord `json:"purchase_history,omitempty" db:"-"`

	// AIMeta caches a previously computed prediction. Never required.
	AIMeta *AIMetadata `json:"ai_metadata,omitempty" db:"-"`

	HasSubscription bool `json:"has_subscription" db:"has_subscription"`

	// SeasonalPatterns maps month index (0 = January .. 11 = December) to a
	// consumption multiplier.
	SeasonalPatterns map[int]float64 `json:"seasonal_patterns,omitempty" db:"-"`

	// Store and Aisle locate the item for time/cost ordered shopping lists.
	Store string `json:"store,omitempty" db:"store"`
	Aisle string `json:"aisle,omitempty" db:"aisle"`

	UpdatedAt time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// PurchaseRecord is one entry of an item's append-only purchase history.
type PurchaseRecord struct {
	Date     time.Time `json:"date" db:"purchased_at"`
	Quantity int       `json:"quantity" db:"quantity"`
	Price    float64   `json:"price" db:"price"`
}

// AIMetadata holds cached prediction output carried on an item.
type AIMetadata struct {
	OptimalOrderQuantity  int     `json:"optimal_order_quantity,omitempty"`
	RecommendSubscription bool    `json:"recommend_subscription,omitempty"`
	Confidence            float64 `json:"confidence,omitempty"`
}

// OutOfStock reports whether the item has no stock left. A zero quantity is
// always out of stock regardless of other fields.
func (i *InventoryItem) OutOfStock() bool {
	return i.Quantity <= 0
}

// BelowThreshold reports whether stock has reached the reorder floor.
func (i *InventoryItem) BelowThreshold() bool {
	return float64(i.Quantity) <= i.MinThreshold
}

// SeasonalMultiplier returns the consumption multiplier for the month of t,
// defaulting to 1.0 when no pattern is recorded.
func (i *InventoryItem) SeasonalMultiplier(t time.Time) float64 {
	if i.SeasonalPatterns == nil {
		return 1.0
	}
	m, ok := i.SeasonalPatterns[int(t.Month())-1]
	if !ok || m <= 0 {
		return 1.0
	}
	return m
}
