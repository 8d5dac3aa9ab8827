package service

import (
	"testing"
	"time"

	"honesty-store-backend/internal/config"
	"honesty-store-backend/internal/model"
	"honesty-store-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProductRepo struct {
	repository.ProductRepository
	active []model.Product
}

func (f *fakeProductRepo) FindActive() ([]model.Product, error) {
	return f.active, nil
}

type fakeStockRecordRepo struct {
	repository.StockRecordRepository
	records []model.StockRecord
}

func (f *fakeStockRecordRepo) FindByDate(date time.Time) ([]model.StockRecord, error) {
	return f.records, nil
}

type fakeOrderRepo struct {
	repository.OrderRepository
	paidUnits map[uuid.UUID]int
}

func (f *fakeOrderRepo) PaidUnitsByDate(date time.Time) (map[uuid.UUID]int, error) {
	return f.paidUnits, nil
}

func strptr(s string) *string { return &s }

func sheetFixture() (*fakeProductRepo, *fakeStockRecordRepo, *fakeOrderRepo) {
	chips := model.Product{
		SKU: "SNK-001", Name: "Chips", Category: strptr("Snacks"),
		UnitPrice: decimal.NewFromInt(10), Stock: 50,
	}
	chips.ID = uuid.New()
	cola := model.Product{
		SKU: "BEV-001", Name: "Cola", Category: strptr("Beverages"),
		UnitPrice: decimal.RequireFromString("25.50"), Stock: 3,
	}
	cola.ID = uuid.New()

	saved := model.StockRecord{
		ProductID:       chips.ID,
		RecordDate:      time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		OpeningStock:    48,
		AdditionalStock: 10,
		OrderCount:      5,
	}
	saved.ID = uuid.New()

	return &fakeProductRepo{active: []model.Product{chips, cola}},
		&fakeStockRecordRepo{records: []model.StockRecord{saved}},
		&fakeOrderRepo{paidUnits: map[uuid.UUID]int{chips.ID: 12}}
}

func newTestStockService(p *fakeProductRepo, r *fakeStockRecordRepo, o *fakeOrderRepo, cfg *config.Config) StockService {
	return NewStockService(p, r, o, (*gorm.DB)(nil), nil, cfg)
}

func TestBuildSheetMergesSavedRecords(t *testing.T) {
	products, records, orders := sheetFixture()
	svc := newTestStockService(products, records, orders, &config.Config{
		LowStockThreshold: 5,
		StockOrderSource:  config.OrderSourceManual,
	})

	rows, err := svc.BuildSheet(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), "", false)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	chips := rows[0]
	require.NotNil(t, chips.RecordID)
	assert.Equal(t, records.records[0].ID, *chips.RecordID)
	assert.Equal(t, 10, chips.AdditionalStock)
	assert.Equal(t, 5, chips.OrderCount)
	// Opening stock comes from the product's live level, not the saved row.
	assert.Equal(t, 50, chips.OpeningStock)
	assert.Equal(t, 50+10-5, chips.EstimatedClosingStock)

	cola := rows[1]
	assert.Nil(t, cola.RecordID)
	assert.Zero(t, cola.OrderCount)
}

func TestBuildSheetOrdersModeSeedsOrderCounts(t *testing.T) {
	products, records, orders := sheetFixture()
	svc := newTestStockService(products, records, orders, &config.Config{
		LowStockThreshold: 5,
		StockOrderSource:  config.OrderSourceOrders,
	})

	rows, err := svc.BuildSheet(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), "", false)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Paid order units replace the manually saved count.
	assert.Equal(t, 12, rows[0].OrderCount)
	assert.Equal(t, 50+10-12, rows[0].EstimatedClosingStock)
	assert.Equal(t, 0, rows[1].OrderCount)
}

func TestBuildSheetFilters(t *testing.T) {
	products, records, orders := sheetFixture()
	svc := newTestStockService(products, records, orders, &config.Config{
		LowStockThreshold: 5,
		StockOrderSource:  config.OrderSourceManual,
	})
	date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	snacks, err := svc.BuildSheet(date, "Snacks", false)
	require.NoError(t, err)
	require.Len(t, snacks, 1)
	assert.Equal(t, "Chips", snacks[0].Name)

	// Both rows still have a zero actual count, so both are low stock.
	low, err := svc.BuildSheet(date, "", true)
	require.NoError(t, err)
	assert.Len(t, low, 2)

	both, err := svc.BuildSheet(date, "Beverages", true)
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Cola", both[0].Name)
}

func TestSaveSheetRejectsInvalidEntries(t *testing.T) {
	products, records, orders := sheetFixture()
	svc := newTestStockService(products, records, orders, &config.Config{
		LowStockThreshold: 5,
		StockOrderSource:  config.OrderSourceManual,
	})
	date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	err := svc.SaveSheet(date, nil, "admin", "Admin")
	assert.ErrorIs(t, err, ErrEmptySheet)

	// Negative quantities are rejected before any persistence happens,
	// so the nil DB handle is never reached.
	err = svc.SaveSheet(date, []SheetEntry{
		{ProductID: products.active[0].ID, WastedStock: -1},
	}, "admin", "Admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WastedStock")

	err = svc.SaveSheet(date, []SheetEntry{
		{ProductID: uuid.Nil, OrderCount: 1},
	}, "admin", "Admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ProductID")
}
