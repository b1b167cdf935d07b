package domain

import "strings"

// Category is the bounded item category vocabulary. Unrecognized values are
// permitted on items and fall back to default heuristics downstream.
type Category string

const (
	CategoryGeneral     Category = "general"
	CategoryGrocery     Category = "grocery"
	CategoryHousehold   Category = "household"
	CategoryPersonal    Category = "personal"
	CategoryElectronics Category = "electronics"
	CategoryOffice      Category = "office"
	CategoryPets        Category = "pets"
	CategoryOther       Category = "other"
)

var knownCategories = map[Category]bool{
	CategoryGeneral:     true,
	CategoryGrocery:     true,
	CategoryHousehold:   true,
	CategoryPersonal:    true,
	CategoryElectronics: true,
	CategoryOffice:      true,
	CategoryPets:        true,
	CategoryOther:       true,
}

// IsKnown reports whether the category belongs to the bounded vocabulary.
func (c Category) IsKnown() bool {
	return knownCategories[c]
}

// ParseCategory returns the category for a label (case-insensitive) and
// whether it is part of the bounded vocabulary.
func ParseCategory(label string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(label)))
	return c, knownCategories[c]
}

// Frequency is the purchase cadence of an item.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyAsNeeded Frequency = "asNeeded"
)

var frequencyCodes = map[string]Frequency{
	"daily":     FrequencyDaily,
	"weekly":    FrequencyWeekly,
	"biweekly":  FrequencyBiweekly,
	"bi-weekly": FrequencyBiweekly,
	"monthly":   FrequencyMonthly,
	"asneeded":  FrequencyAsNeeded,
	"as-needed": FrequencyAsNeeded,
	"as_needed": FrequencyAsNeeded,
}

// IsValid reports whether the frequency is one of the enumerated values.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyAsNeeded:
		return true
	}
	return false
}

// ParseFrequency returns the frequency for a label (case-insensitive,
// tolerating dash/underscore spellings) and whether it is valid.
func ParseFrequency(label string) (Frequency, bool) {
	f, ok := frequencyCodes[strings.ToLower(strings.TrimSpace(label))]
	return f, ok
}

// Urgency is the severity tier attached to a reorder suggestion.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
	UrgencyUpcoming Urgency = "upcoming"
)

var urgencyValues = map[Urgency]int{
	UrgencyCritical: 4,
	UrgencyHigh:     3,
	UrgencyMedium:   2,
	UrgencyLow:      1,
	UrgencyUpcoming: 0,
}

// Value returns the ordinal weight of the urgency, highest is most severe.
func (u Urgency) Value() int {
	return urgencyValues[u]
}

// Preference selects the shopping list ordering strategy.
type Preference string

const (
	PreferenceCost     Preference = "cost"
	PreferenceTime     Preference = "time"
	PreferenceUrgent   Preference = "urgent"
	PreferenceBalanced Preference = "balanced"
)

// ParsePreference returns the preference for a label, defaulting to balanced.
func ParsePreference(label string) Preference {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "cost":
		return PreferenceCost
	case "time":
		return PreferenceTime
	case "urgent", "urgency":
		return PreferenceUrgent
	default:
		return PreferenceBalanced
	}
}
