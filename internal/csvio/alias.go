package csvio

import "strings"

// AliasTableVersion identifies the field-alias configuration below. Bump it
// when aliases change so exported files can record what they were read with.
const AliasTableVersion = 1

// fieldAliases maps each canonical InventoryItem field to the column names
// accepted for it, in priority order: when several candidate columns exist
// in one file, the earliest alias wins. Resolution happens once per file at
// header time, never per row.
var fieldAliases = map[string][]string{
	"id":                     {"id", "item_id", "sku"},
	"name":                   {"name", "item_name", "item", "product_name", "product"},
	"quantity":               {"quantity", "qty", "stock", "inventory", "count"},
	"unit":                   {"unit", "uom"},
	"min_threshold":          {"min_threshold", "threshold", "reorder_point", "min"},
	"category":               {"category", "cat", "type"},
	"purchase_frequency":     {"purchase_frequency", "frequency", "cadence"},
	"price":                  {"price", "unit_price", "cost"},
	"daily_consumption_rate": {"daily_consumption_rate", "consumption_rate", "daily_rate"},
	"has_subscription":       {"has_subscription", "subscribed", "subscription"},
	"store":                  {"store", "shop"},
	"aisle":                  {"aisle"},
}

// normalizeHeader canonicalizes a raw CSV column name for alias matching.
func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}

// resolveColumns maps canonical field names to column indexes for one file
// header.
func resolveColumns(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, raw := range header {
		name := normalizeHeader(raw)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	columns := make(map[string]int, len(fieldAliases))
	for field, aliases := range fieldAliases {
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				columns[field] = i
				break
			}
		}
	}
	return columns
}
