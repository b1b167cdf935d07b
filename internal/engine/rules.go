package engine

import "github.com/pantryops/restockd/internal/domain"

// predictionRule maps a category-scoped name keyword to a consumption
// profile. Rules are evaluated in order and the first match wins, so more
// specific keywords must come before broader ones.
type predictionRule struct {
	Category   domain.Category
	Keyword    string
	Threshold  float64
	Frequency  domain.Frequency
	Confidence float64
}

// predictionRules is the full ordered rule table. It is a deterministic
// lookup, not a model; confidence is a descriptive signal only.
var predictionRules = []predictionRule{
	// grocery
	{domain.CategoryGrocery, "milk", 1, domain.FrequencyWeekly, 85},
	{domain.CategoryGrocery, "bread", 1, domain.FrequencyWeekly, 80},
	{domain.CategoryGrocery, "egg", 1, domain.FrequencyWeekly, 82},
	{domain.CategoryGrocery, "butter", 1, domain.FrequencyBiweekly, 75},
	{domain.CategoryGrocery, "coffee", 1, domain.FrequencyBiweekly, 78},
	{domain.CategoryGrocery, "cereal", 1, domain.FrequencyBiweekly, 72},
	{domain.CategoryGrocery, "rice", 1, domain.FrequencyMonthly, 75},
	{domain.CategoryGrocery, "pasta", 2, domain.FrequencyMonthly, 70},
	{domain.CategoryGrocery, "oil", 1, domain.FrequencyMonthly, 68},

	// household
	{domain.CategoryHousehold, "toilet paper", 4, domain.FrequencyBiweekly, 85},
	{domain.CategoryHousehold, "paper towel", 2, domain.FrequencyBiweekly, 80},
	{domain.CategoryHousehold, "detergent", 1, domain.FrequencyMonthly, 82},
	{domain.CategoryHousehold, "dish soap", 1, domain.FrequencyMonthly, 78},
	{domain.CategoryHousehold, "trash bag", 1, domain.FrequencyMonthly, 75},
	{domain.CategoryHousehold, "sponge", 2, domain.FrequencyMonthly, 65},

	// personal
	{domain.CategoryPersonal, "toothpaste", 1, domain.FrequencyMonthly, 85},
	{domain.CategoryPersonal, "shampoo", 1, domain.FrequencyMonthly, 80},
	{domain.CategoryPersonal, "soap", 2, domain.FrequencyMonthly, 78},
	{domain.CategoryPersonal, "razor", 2, domain.FrequencyMonthly, 70},
	{domain.CategoryPersonal, "deodorant", 1, domain.FrequencyMonthly, 75},

	// pets
	{domain.CategoryPets, "food", 1, domain.FrequencyWeekly, 80},
	{domain.CategoryPets, "litter", 1, domain.FrequencyBiweekly, 78},
	{domain.CategoryPets, "treat", 1, domain.FrequencyBiweekly, 65},

	// office
	{domain.CategoryOffice, "paper", 1, domain.FrequencyMonthly, 70},
	{domain.CategoryOffice, "ink", 1, domain.FrequencyMonthly, 68},
	{domain.CategoryOffice, "pen", 3, domain.FrequencyMonthly, 60},

	// electronics
	{domain.CategoryElectronics, "batter", 4, domain.FrequencyMonthly, 72},
	{domain.CategoryElectronics, "bulb", 2, domain.FrequencyMonthly, 65},
	{domain.CategoryElectronics, "cable", 1, domain.FrequencyAsNeeded, 55},
}

// categoryDefaults is the fallback profile per recognized category when no
// keyword rule matched.
var categoryDefaults = map[domain.Category]predictionRule{
	domain.CategoryGrocery:     {Threshold: 1, Frequency: domain.FrequencyWeekly, Confidence: 70},
	domain.CategoryHousehold:   {Threshold: 1, Frequency: domain.FrequencyMonthly, Confidence: 65},
	domain.CategoryPersonal:    {Threshold: 1, Frequency: domain.FrequencyMonthly, Confidence: 65},
	domain.CategoryElectronics: {Threshold: 1, Frequency: domain.FrequencyAsNeeded, Confidence: 55},
	domain.CategoryOffice:      {Threshold: 1, Frequency: domain.FrequencyMonthly, Confidence: 60},
	domain.CategoryPets:        {Threshold: 1, Frequency: domain.FrequencyBiweekly, Confidence: 65},
	domain.CategoryGeneral:     {Threshold: 1, Frequency: domain.FrequencyMonthly, Confidence: 55},
	domain.CategoryOther:       {Threshold: 1, Frequency: domain.FrequencyMonthly, Confidence: 50},
}

// globalDefault applies when the category itself is unrecognized.
var globalDefault = predictionRule{Threshold: 1, Frequency: domain.FrequencyMonthly, Confidence: 50}
