package engine

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/pantryops/restockd/internal/domain"
)

const (
	minConfidence   = 40.0
	maxConfidence   = 95.0
	jitterAmplitude = 0.10

	// defaultHouseholdSize anchors the household scaling factor at 1.0.
	defaultHouseholdSize = 2
)

// PredictRequest carries the inputs for a consumption prediction.
type PredictRequest struct {
	ItemName        string
	Category        domain.Category
	HouseholdSize   int
	Seasonality     map[int]float64 // month index (0-11) -> multiplier
	PurchaseHistory []domain.PurchaseRecord
}

// Prediction is a heuristic consumption profile for one item.
type Prediction struct {
	SuggestedThreshold   float64          `json:"suggested_threshold"`
	SuggestedFrequency   domain.Frequency `json:"suggested_frequency"`
	DailyConsumptionRate float64          `json:"daily_consumption_rate"`
	Confidence           float64          `json:"confidence"`
}

// Predictor resolves items against the ordered rule table and applies
// household, seasonal and jitter scaling. It is a deterministic lookup
// dressed up with bounded noise, not a statistical model.
type Predictor struct {
	rng *rand.Rand
	now func() time.Time
}

// NewPredictor returns a predictor with time-seeded jitter.
func NewPredictor() *Predictor {
	return &Predictor{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// NewPredictorWithSource returns a predictor using the given random source
// and clock. A nil rng disables jitter entirely, which pins predictions for
// tests.
func NewPredictorWithSource(rng *rand.Rand, now func() time.Time) *Predictor {
	if now == nil {
		now = time.Now
	}
	return &Predictor{rng: rng, now: now}
}

// Predict returns the heuristic profile for an item.
func (p *Predictor) Predict(req PredictRequest) (Prediction, error) {
	name := strings.ToLower(strings.TrimSpace(req.ItemName))
	if name == "" {
		return Prediction{}, &ValidationError{Field: "item_name", Reason: "is required"}
	}

	rule := p.resolveRule(name, req.Category)

	rate := baseDailyRate(rule.Frequency, rule.Threshold)

	// Scale for household size; the table is calibrated for two people.
	size := req.HouseholdSize
	if size <= 0 {
		size = defaultHouseholdSize
	}
	rate *= math.Sqrt(float64(size) / float64(defaultHouseholdSize))

	// Seasonal multiplier for the current calendar month.
	month := int(p.now().Month()) - 1
	if m, ok := req.Seasonality[month]; ok && m > 0 {
		rate *= m
	}

	confidence := rule.Confidence
	if len(req.PurchaseHistory) >= 3 {
		// A real purchase trail makes the cadence guess less of a guess.
		confidence += 5
	}

	rate *= p.jitter()
	confidence *= p.jitter()
	confidence = clamp(confidence, minConfidence, maxConfidence)

	return Prediction{
		SuggestedThreshold:   rule.Threshold,
		SuggestedFrequency:   rule.Frequency,
		DailyConsumptionRate: rate,
		Confidence:           confidence,
	}, nil
}

func (p *Predictor) resolveRule(loweredName string, category domain.Category) predictionRule {
	for _, rule := range predictionRules {
		if rule.Category == category && strings.Contains(loweredName, rule.Keyword) {
			return rule
		}
	}
	if def, ok := categoryDefaults[category]; ok {
		return def
	}
	return globalDefault
}

// baseDailyRate converts a {frequency, threshold} pair into units per day.
// Daily cadences consume slightly under a full threshold per day; asNeeded
// falls back to the two-week normalization.
func baseDailyRate(freq domain.Frequency, threshold float64) float64 {
	switch freq {
	case domain.FrequencyDaily:
		return threshold * 0.9
	case domain.FrequencyWeekly:
		return threshold / 7
	case domain.FrequencyBiweekly:
		return threshold / 14
	case domain.FrequencyMonthly:
		return threshold / 30
	default:
		return threshold / 14
	}
}

// jitter returns a bounded multiplicative factor in [1-amp, 1+amp].
func (p *Predictor) jitter() float64 {
	if p.rng == nil {
		return 1.0
	}
	return 1.0 + (p.rng.Float64()*2-1)*jitterAmplitude
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
