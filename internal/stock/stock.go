// Package stock holds the daily stock reconciliation math. It is pure:
// no database, no framework imports, everything operates on values handed
// in by the caller.
package stock

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrRowNotFound  = errors.New("no reconciliation row matches the given id")
	ErrUnknownField = errors.New("unknown editable field")
)

// NegativeQuantityError reports a rejected negative edit. Quantities are
// never clamped; the caller gets told exactly which field on which row
// was bad so data-entry mistakes are not masked as zero-theft days.
type NegativeQuantityError struct {
	Field     Field
	ProductID uuid.UUID
	Value     int
}

func (e *NegativeQuantityError) Error() string {
	return fmt.Sprintf("negative quantity %d for field %q on product %s", e.Value, e.Field, e.ProductID)
}

// Field names an operator-editable quantity on a Row.
type Field string

const (
	FieldAdditionalStock    Field = "additional_stock"
	FieldOrderCount         Field = "order_count"
	FieldActualClosingStock Field = "actual_closing_stock"
	FieldWastedStock        Field = "wasted_stock"
)

// ProductInfo is the slice of the product master record the engine needs.
type ProductInfo struct {
	ID        uuid.UUID
	SKU       string
	Name      string
	Category  *string
	Unit      string
	UnitPrice decimal.Decimal
	Stock     int
}

// SavedMovement is a previously persisted movement record for one product
// on the target date.
type SavedMovement struct {
	RecordID           uuid.UUID
	AdditionalStock    int
	OrderCount         int
	ActualClosingStock int
	WastedStock        int
}

// Row is one product's reconciliation line for the accounting date.
// RecordID is nil until the row has been persisted for that date.
type Row struct {
	RecordID  *uuid.UUID      `json:"record_id,omitempty"`
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  *string         `json:"category,omitempty"`
	Unit      string          `json:"unit,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`

	OpeningStock       int `json:"opening_stock"`
	AdditionalStock    int `json:"additional_stock"`
	OrderCount         int `json:"order_count"`
	ActualClosingStock int `json:"actual_closing_stock"`
	WastedStock        int `json:"wasted_stock"`

	EstimatedClosingStock int             `json:"estimated_closing_stock"`
	StolenStock           int             `json:"stolen_stock"`
	Sales                 decimal.Decimal `json:"sales"`
}

// ComputeEstimatedClosing returns what should be on the shelf after the
// day's restocks and sales. The result is deliberately not clamped: a
// negative estimate surfaces an overselling or data-entry error upstream.
func ComputeEstimatedClosing(openingStock, additionalStock, orderCount int) int {
	return openingStock + additionalStock - orderCount
}

// ComputeStolenStock returns the shortfall not explained by wastage.
// Floored at zero: a surplus count is not negative theft.
func ComputeStolenStock(estimatedClosing, actualClosing, wastedStock int) int {
	stolen := estimatedClosing - actualClosing - wastedStock
	if stolen < 0 {
		return 0
	}
	return stolen
}

// ComputeSales returns orderCount * unitPrice at full precision. Rounding
// to minor units happens only where values leave the engine.
func ComputeSales(orderCount int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(orderCount)))
}

func (r *Row) recompute() {
	r.EstimatedClosingStock = ComputeEstimatedClosing(r.OpeningStock, r.AdditionalStock, r.OrderCount)
	r.StolenStock = ComputeStolenStock(r.EstimatedClosingStock, r.ActualClosingStock, r.WastedStock)
	r.Sales = ComputeSales(r.OrderCount, r.UnitPrice)
}

// BuildRows merges the product master list with any saved movements for
// the date. Every product yields exactly one row, in input order. Opening
// stock and unit price always come from the product; the four movement
// quantities come from the saved record when one exists, else zero.
func BuildRows(products []ProductInfo, saved map[uuid.UUID]SavedMovement) []Row {
	rows := make([]Row, 0, len(products))
	for _, p := range products {
		row := Row{
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			Category:     p.Category,
			Unit:         p.Unit,
			UnitPrice:    p.UnitPrice,
			OpeningStock: p.Stock,
		}
		if mv, ok := saved[p.ID]; ok {
			id := mv.RecordID
			row.RecordID = &id
			row.AdditionalStock = mv.AdditionalStock
			row.OrderCount = mv.OrderCount
			row.ActualClosingStock = mv.ActualClosingStock
			row.WastedStock = mv.WastedStock
		}
		row.recompute()
		rows = append(rows, row)
	}
	return rows
}

// ApplyEdit sets one field on the row matching target and recomputes that
// row's derived figures. The target matches the persisted record id when
// the row has one, otherwise the product id; callers use either key.
// Negative values are rejected, untouched rows are returned as-is, and
// the input slice is never mutated.
func ApplyEdit(rows []Row, target uuid.UUID, field Field, value int) ([]Row, error) {
	switch field {
	case FieldAdditionalStock, FieldOrderCount, FieldActualClosingStock, FieldWastedStock:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	idx := -1
	for i := range rows {
		if (rows[i].RecordID != nil && *rows[i].RecordID == target) || rows[i].ProductID == target {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrRowNotFound, target)
	}

	if value < 0 {
		return nil, &NegativeQuantityError{Field: field, ProductID: rows[idx].ProductID, Value: value}
	}

	out := make([]Row, len(rows))
	copy(out, rows)

	switch field {
	case FieldAdditionalStock:
		out[idx].AdditionalStock = value
	case FieldOrderCount:
		out[idx].OrderCount = value
	case FieldActualClosingStock:
		out[idx].ActualClosingStock = value
	case FieldWastedStock:
		out[idx].WastedStock = value
	}
	out[idx].recompute()

	return out, nil
}

// WithOrderCounts overrides each row's order count with the unit total
// from actual sales records (orders mode). Products without an entry get
// zero. Input rows are not mutated.
func WithOrderCounts(rows []Row, units map[uuid.UUID]int) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	for i := range out {
		out[i].OrderCount = units[out[i].ProductID]
		out[i].recompute()
	}
	return out
}

// SaveRecord is the flat upsert payload for one row on one date, keyed by
// the record id when present, else (product_id, date).
type SaveRecord struct {
	RecordID              *uuid.UUID      `json:"id,omitempty"`
	ProductID             uuid.UUID       `json:"product_id"`
	Date                  time.Time       `json:"date"`
	OpeningStock          int             `json:"opening_stock"`
	AdditionalStock       int             `json:"additional_stock"`
	OrderCount            int             `json:"order_count"`
	ActualClosingStock    int             `json:"actual_closing_stock"`
	WastedStock           int             `json:"wastage_stock"`
	EstimatedClosingStock int             `json:"estimated_closing_stock"`
	StolenStock           int             `json:"stolen_stock"`
	Sales                 decimal.Decimal `json:"sales"`
}

// SaveRecords maps rows to their persistence payload. Sales is rounded to
// two decimal places here, at the boundary where it leaves the engine.
func SaveRecords(rows []Row, date time.Time) []SaveRecord {
	records := make([]SaveRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, SaveRecord{
			RecordID:              r.RecordID,
			ProductID:             r.ProductID,
			Date:                  date,
			OpeningStock:          r.OpeningStock,
			AdditionalStock:       r.AdditionalStock,
			OrderCount:            r.OrderCount,
			ActualClosingStock:    r.ActualClosingStock,
			WastedStock:           r.WastedStock,
			EstimatedClosingStock: r.EstimatedClosingStock,
			StolenStock:           r.StolenStock,
			Sales:                 r.Sales.Round(2),
		})
	}
	return records
}
