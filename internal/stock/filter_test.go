package stock

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterFixture() []Row {
	mkRow := func(category *string, actual int) Row {
		r := Row{ProductID: uuid.New(), Category: category, UnitPrice: decimal.NewFromInt(10), OpeningStock: 10, ActualClosingStock: actual}
		r.recompute()
		return r
	}
	return []Row{
		mkRow(strptr("Snacks"), 2),
		mkRow(strptr("Snacks"), 9),
		mkRow(strptr("Beverages"), 3),
		mkRow(nil, 1),
	}
}

func TestFilterByCategory(t *testing.T) {
	rows := filterFixture()

	all := FilterByCategory(rows, CategoryAll)
	assert.Equal(t, rows, all)

	snacks := FilterByCategory(rows, "Snacks")
	require.Len(t, snacks, 2)
	for _, r := range snacks {
		assert.Equal(t, "Snacks", *r.Category)
	}

	// Uncategorized rows never match a named category.
	assert.Empty(t, FilterByCategory(rows, ""))
	assert.Empty(t, FilterByCategory(rows, "Stationery"))
}

func TestFilterLowStock(t *testing.T) {
	rows := filterFixture()

	low := FilterLowStock(rows, DefaultLowStockThreshold)
	require.Len(t, low, 3)
	for _, r := range low {
		assert.LessOrEqual(t, r.ActualClosingStock, DefaultLowStockThreshold)
	}

	// Threshold is inclusive.
	assert.Len(t, FilterLowStock(rows, 9), 4)
	assert.Len(t, FilterLowStock(rows, 0), 0)
}

func TestFiltersCommute(t *testing.T) {
	rows := filterFixture()

	a := FilterLowStock(FilterByCategory(rows, "Snacks"), 5)
	b := FilterByCategory(FilterLowStock(rows, 5), "Snacks")
	assert.Equal(t, a, b)
	require.Len(t, a, 1)
	assert.Equal(t, 2, a[0].ActualClosingStock)
}

func TestFiltersDoNotMutateInput(t *testing.T) {
	rows := filterFixture()
	snapshot := make([]Row, len(rows))
	copy(snapshot, rows)

	FilterByCategory(rows, "Snacks")
	FilterLowStock(rows, 5)
	assert.Equal(t, snapshot, rows)
}
