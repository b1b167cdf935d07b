package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryops/restockd/internal/domain"
)

func TestReadCanonicalColumns(t *testing.T) {
	data := `id,name,quantity,unit,min_threshold,category,purchase_frequency,price
m1,Milk,2,liters,1,grocery,weekly,3.50
`
	result, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	item := result.Items[0]
	assert.Equal(t, "m1", item.ID)
	assert.Equal(t, "Milk", item.Name)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "liters", item.Unit)
	assert.Equal(t, 1.0, item.MinThreshold)
	assert.Equal(t, domain.CategoryGrocery, item.Category)
	assert.Equal(t, domain.FrequencyWeekly, item.PurchaseFrequency)
	assert.InDelta(t, 3.5, item.Price, 1e-9)
}

func TestReadStripsByteOrderMark(t *testing.T) {
	// exports from spreadsheet tools often prefix the first header cell
	data := "\ufeffname,quantity\nMilk,2\n"
	result, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Milk", result.Items[0].Name)
}

func TestReadResolvesAliases(t *testing.T) {
	data := `Item Name,Qty,Reorder-Point,Cat,Cadence
Bread,1,2,grocery,weekly
`
	result, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	item := result.Items[0]
	assert.Equal(t, "Bread", item.Name)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, 2.0, item.MinThreshold)
	assert.Equal(t, domain.CategoryGrocery, item.Category)
	assert.Equal(t, domain.FrequencyWeekly, item.PurchaseFrequency)
}

func TestReadAliasPriorityOrder(t *testing.T) {
	// both "quantity" and "stock" present: the earlier alias wins
	data := `name,stock,quantity
Soap,9,3
`
	result, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 3, result.Items[0].Quantity)
}

func TestReadSkipsUnusableRows(t *testing.T) {
	data := `name,quantity
,2
Eggs,not-a-number
Butter,1
`
	result, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Butter", result.Items[0].Name)
	assert.Equal(t, 2, result.SkippedRows)
}

func TestReadDefaults(t *testing.T) {
	data := `name,quantity
Mystery Box,4
`
	result, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	item := result.Items[0]
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "items", item.Unit)
	assert.Equal(t, domain.CategoryGeneral, item.Category)
	assert.Equal(t, domain.FrequencyAsNeeded, item.PurchaseFrequency)
}

func TestReadRejectsHeaderlessData(t *testing.T) {
	_, err := Read(strings.NewReader("no_names_here,whatever\n1,2\n"))
	assert.Error(t, err)
}

func TestReadRejectsEmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.Error(t, err)
}

func TestWriteItemsRoundTrip(t *testing.T) {
	items := []domain.InventoryItem{{
		ID:                "m1",
		Name:              "Milk",
		Quantity:          2,
		Unit:              "liters",
		MinThreshold:      1,
		Category:          domain.CategoryGrocery,
		PurchaseFrequency: domain.FrequencyWeekly,
		Price:             3.5,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteItems(&buf, items))

	result, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, items[0].ID, result.Items[0].ID)
	assert.Equal(t, items[0].Quantity, result.Items[0].Quantity)
	assert.Equal(t, items[0].Category, result.Items[0].Category)
}

func TestWriteSuggestions(t *testing.T) {
	suggestions := []domain.Suggestion{{
		Item: domain.InventoryItem{
			ID: "m1", Name: "Milk", Quantity: 0,
			Category: domain.CategoryGrocery, Price: 3.5,
		},
		DaysLeft:               0,
		SuggestedOrderQuantity: 4,
		Urgency:                domain.UrgencyCritical,
		Essential:              true,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteSuggestions(&buf, suggestions))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "critical")
	assert.Contains(t, lines[1], "14") // 3.5 * 4
}
