package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pantryops/restockd/internal/domain"
)

// ImportResult reports what a CSV read produced.
type ImportResult struct {
	Items       []domain.InventoryItem
	SkippedRows int
}

// ReadFile reads one inventory CSV from disk.
func ReadFile(path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open inventory file %s: %w", path, err)
	}
	defer f.Close()

	result, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read inventory file %s: %w", path, err)
	}
	return result, nil
}

// Read parses inventory records from CSV data. The header is resolved once
// against the field-alias table; rows missing a usable name or quantity are
// counted and skipped rather than failing the whole file.
func Read(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("inventory csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := resolveColumns(header)
	if _, ok := columns["name"]; !ok {
		return nil, fmt.Errorf("inventory csv has no recognizable name column")
	}

	result := &ImportResult{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.SkippedRows++
			continue
		}

		item, ok := itemFromRecord(record, columns, line)
		if !ok {
			result.SkippedRows++
			continue
		}
		result.Items = append(result.Items, item)
	}

	return result, nil
}

func itemFromRecord(record []string, columns map[string]int, line int) (domain.InventoryItem, bool) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field("name")
	if name == "" {
		return domain.InventoryItem{}, false
	}

	quantity, err := strconv.Atoi(field("quantity"))
	if err != nil || quantity < 0 {
		return domain.InventoryItem{}, false
	}

	item := domain.InventoryItem{
		ID:       field("id"),
		Name:     name,
		Quantity: quantity,
		Unit:     field("unit"),
		Store:    field("store"),
		Aisle:    field("aisle"),
	}
	if item.ID == "" {
		item.ID = fmt.Sprintf("row-%d", line)
	}
	if item.Unit == "" {
		item.Unit = "items"
	}

	if category, ok := domain.ParseCategory(field("category")); ok {
		item.Category = category
	} else if raw := field("category"); raw != "" {
		// unrecognized categories are permitted; downstream heuristics
		// fall back to defaults
		item.Category = domain.Category(strings.ToLower(raw))
	} else {
		item.Category = domain.CategoryGeneral
	}

	if freq, ok := domain.ParseFrequency(field("purchase_frequency")); ok {
		item.PurchaseFrequency = freq
	} else {
		item.PurchaseFrequency = domain.FrequencyAsNeeded
	}

	item.MinThreshold = parseFloat(field("min_threshold"))
	item.Price = parseFloat(field("price"))
	item.DailyConsumptionRate = parseFloat(field("daily_consumption_rate"))
	item.HasSubscription = parseBool(field("has_subscription"))

	return item, true
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
