package stock

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func testProducts() []ProductInfo {
	return []ProductInfo{
		{ID: uuid.New(), SKU: "SNK-001", Name: "Chips", Category: strptr("Snacks"), Unit: "pcs", UnitPrice: decimal.NewFromInt(10), Stock: 50},
		{ID: uuid.New(), SKU: "BEV-001", Name: "Cola", Category: strptr("Beverages"), Unit: "btl", UnitPrice: decimal.RequireFromString("25.50"), Stock: 24},
		{ID: uuid.New(), SKU: "MSC-001", Name: "Notebook", Category: nil, Unit: "pcs", UnitPrice: decimal.NewFromInt(40), Stock: 12},
	}
}

func TestComputeEstimatedClosing(t *testing.T) {
	assert.Equal(t, 47, ComputeEstimatedClosing(50, 0, 3))
	assert.Equal(t, 60, ComputeEstimatedClosing(50, 20, 10))
	assert.Equal(t, 0, ComputeEstimatedClosing(0, 0, 0))

	// Overselling is surfaced, not hidden.
	assert.Equal(t, -5, ComputeEstimatedClosing(10, 0, 15))
}

func TestComputeStolenStock(t *testing.T) {
	assert.Equal(t, 10, ComputeStolenStock(100, 80, 10))
	assert.Equal(t, 2, ComputeStolenStock(47, 45, 0))

	// Floored at zero when actual + wasted exceed the estimate.
	assert.Equal(t, 0, ComputeStolenStock(100, 95, 10))
	assert.Equal(t, 0, ComputeStolenStock(0, 5, 0))
}

func TestComputeSales(t *testing.T) {
	assert.True(t, ComputeSales(0, decimal.NewFromInt(10)).IsZero())
	assert.True(t, ComputeSales(3, decimal.NewFromInt(10)).Equal(decimal.NewFromInt(30)))
	assert.True(t, ComputeSales(4, decimal.RequireFromString("25.50")).Equal(decimal.NewFromInt(102)))
	assert.True(t, ComputeSales(7, decimal.RequireFromString("9.99")).Equal(decimal.RequireFromString("69.93")))
}

func TestBuildRowsCompleteness(t *testing.T) {
	products := testProducts()

	// No saved movements at all: still one row per product, in input order.
	rows := BuildRows(products, nil)
	require.Len(t, rows, len(products))
	seen := map[uuid.UUID]bool{}
	for i, r := range rows {
		assert.Equal(t, products[i].ID, r.ProductID)
		assert.False(t, seen[r.ProductID], "duplicate row for %s", r.ProductID)
		seen[r.ProductID] = true
		assert.Nil(t, r.RecordID)
		assert.Zero(t, r.AdditionalStock)
		assert.Zero(t, r.OrderCount)
		assert.Zero(t, r.ActualClosingStock)
		assert.Zero(t, r.WastedStock)
	}
}

func TestBuildRowsSeedsFromSavedMovement(t *testing.T) {
	products := testProducts()
	recID := uuid.New()
	saved := map[uuid.UUID]SavedMovement{
		products[1].ID: {RecordID: recID, AdditionalStock: 12, OrderCount: 8, ActualClosingStock: 27, WastedStock: 1},
	}

	rows := BuildRows(products, saved)
	require.Len(t, rows, 3)

	r := rows[1]
	require.NotNil(t, r.RecordID)
	assert.Equal(t, recID, *r.RecordID)
	assert.Equal(t, 12, r.AdditionalStock)
	assert.Equal(t, 8, r.OrderCount)
	assert.Equal(t, 27, r.ActualClosingStock)
	assert.Equal(t, 1, r.WastedStock)
	// Opening stock and price come from the product, never the saved row.
	assert.Equal(t, 24, r.OpeningStock)
	assert.True(t, r.UnitPrice.Equal(decimal.RequireFromString("25.50")))
	assert.Equal(t, 24+12-8, r.EstimatedClosingStock)
	assert.Equal(t, 0, r.StolenStock)
	assert.True(t, r.Sales.Equal(decimal.NewFromInt(204)))

	// The untouched products keep zero defaults.
	assert.Nil(t, rows[0].RecordID)
	assert.Nil(t, rows[2].RecordID)
}

// A fresh sheet with no actual count reports the entire estimate as stolen
// until the operator records one. That is the intended reading, not a bug.
func TestBuildRowsZeroActualCountsAsStolen(t *testing.T) {
	p := ProductInfo{ID: uuid.New(), SKU: "SNK-001", Name: "Chips", Category: strptr("Snacks"), UnitPrice: decimal.NewFromInt(10), Stock: 50}

	rows := BuildRows([]ProductInfo{p}, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, 50, rows[0].EstimatedClosingStock)
	assert.Equal(t, 50, rows[0].StolenStock)
	assert.True(t, rows[0].Sales.IsZero())
}

func TestBuildRowsIdempotent(t *testing.T) {
	products := testProducts()
	saved := map[uuid.UUID]SavedMovement{
		products[0].ID: {RecordID: uuid.New(), AdditionalStock: 5, OrderCount: 2, ActualClosingStock: 52, WastedStock: 1},
	}

	first := BuildRows(products, saved)
	second := BuildRows(products, saved)
	assert.Equal(t, first, second)
}

func TestApplyEditLocality(t *testing.T) {
	products := testProducts()
	rows := BuildRows(products, nil)
	before := make([]Row, len(rows))
	copy(before, rows)

	edited, err := ApplyEdit(rows, products[0].ID, FieldWastedStock, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, edited[0].WastedStock)
	assert.Equal(t, ComputeStolenStock(50, 0, 5), edited[0].StolenStock)
	// Every other row is untouched, and so is the input slice.
	assert.Equal(t, before[1], edited[1])
	assert.Equal(t, before[2], edited[2])
	assert.Equal(t, before, rows)
}

func TestApplyEditRecomputesDerivedFields(t *testing.T) {
	p := ProductInfo{ID: uuid.New(), Name: "Chips", Category: strptr("Snacks"), UnitPrice: decimal.NewFromInt(10), Stock: 50}
	rows := BuildRows([]ProductInfo{p}, nil)

	rows, err := ApplyEdit(rows, p.ID, FieldActualClosingStock, 45)
	require.NoError(t, err)
	rows, err = ApplyEdit(rows, p.ID, FieldOrderCount, 3)
	require.NoError(t, err)

	r := rows[0]
	assert.Equal(t, 47, r.EstimatedClosingStock)
	assert.Equal(t, 2, r.StolenStock)
	assert.True(t, r.Sales.Equal(decimal.NewFromInt(30)))
}

func TestApplyEditMatchesByRecordID(t *testing.T) {
	products := testProducts()
	recID := uuid.New()
	saved := map[uuid.UUID]SavedMovement{
		products[2].ID: {RecordID: recID, ActualClosingStock: 10},
	}
	rows := BuildRows(products, saved)

	// Callers may address a persisted row by its record id instead of the
	// product id; both must resolve to the same row.
	byRecord, err := ApplyEdit(rows, recID, FieldAdditionalStock, 6)
	require.NoError(t, err)
	byProduct, err := ApplyEdit(rows, products[2].ID, FieldAdditionalStock, 6)
	require.NoError(t, err)
	assert.Equal(t, byProduct, byRecord)
	assert.Equal(t, 6, byRecord[2].AdditionalStock)
}

func TestApplyEditRejectsNegativeValue(t *testing.T) {
	products := testProducts()
	rows := BuildRows(products, nil)

	_, err := ApplyEdit(rows, products[1].ID, FieldOrderCount, -4)
	require.Error(t, err)

	var nqe *NegativeQuantityError
	require.ErrorAs(t, err, &nqe)
	assert.Equal(t, FieldOrderCount, nqe.Field)
	assert.Equal(t, products[1].ID, nqe.ProductID)
	assert.Equal(t, -4, nqe.Value)
}

func TestApplyEditUnknownTargetAndField(t *testing.T) {
	rows := BuildRows(testProducts(), nil)

	_, err := ApplyEdit(rows, uuid.New(), FieldOrderCount, 1)
	assert.ErrorIs(t, err, ErrRowNotFound)

	_, err = ApplyEdit(rows, rows[0].ProductID, Field("opening_stock"), 1)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestWithOrderCounts(t *testing.T) {
	products := testProducts()
	saved := map[uuid.UUID]SavedMovement{
		products[0].ID: {RecordID: uuid.New(), OrderCount: 99, ActualClosingStock: 40},
	}
	rows := BuildRows(products, saved)

	seeded := WithOrderCounts(rows, map[uuid.UUID]int{products[0].ID: 7})
	// Sales-record units replace the stored figure; products with no paid
	// units drop to zero.
	assert.Equal(t, 7, seeded[0].OrderCount)
	assert.Equal(t, 50+0-7, seeded[0].EstimatedClosingStock)
	assert.Equal(t, 0, seeded[1].OrderCount)
	// Input untouched.
	assert.Equal(t, 99, rows[0].OrderCount)
}

func TestSaveRecords(t *testing.T) {
	p := ProductInfo{ID: uuid.New(), Name: "Candy", UnitPrice: decimal.RequireFromString("3.333"), Stock: 20}
	rows := BuildRows([]ProductInfo{p}, nil)
	rows, err := ApplyEdit(rows, p.ID, FieldOrderCount, 3)
	require.NoError(t, err)
	rows, err = ApplyEdit(rows, p.ID, FieldActualClosingStock, 17)
	require.NoError(t, err)

	date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	records := SaveRecords(rows, date)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, p.ID, rec.ProductID)
	assert.Equal(t, date, rec.Date)
	assert.Equal(t, 20, rec.OpeningStock)
	assert.Equal(t, 3, rec.OrderCount)
	assert.Equal(t, 17, rec.ActualClosingStock)
	assert.Equal(t, 17, rec.EstimatedClosingStock)
	assert.Equal(t, 0, rec.StolenStock)
	// 3 * 3.333 = 9.999, rounded to minor units at the boundary.
	assert.True(t, rec.Sales.Equal(decimal.RequireFromString("10.00")), "got %s", rec.Sales)
}
