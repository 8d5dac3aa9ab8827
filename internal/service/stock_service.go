package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"honesty-store-backend/internal/config"
	"honesty-store-backend/internal/model"
	"honesty-store-backend/internal/repository"
	"honesty-store-backend/internal/stock"
	"honesty-store-backend/internal/ws"
	"honesty-store-backend/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotInCatalog = errors.New("product not found in catalog")
	ErrEmptySheet          = errors.New("sheet has no entries to save")
)

// SheetEntry is one edited row as submitted by the operator. Derived
// figures are never accepted from the client; they are recomputed here.
type SheetEntry struct {
	RecordID           *uuid.UUID `json:"id,omitempty"`
	ProductID          uuid.UUID  `json:"product_id" validate:"uuid_required"`
	AdditionalStock    int        `json:"additional_stock" validate:"min=0"`
	OrderCount         int        `json:"order_count" validate:"min=0"`
	ActualClosingStock int        `json:"actual_closing_stock" validate:"min=0"`
	WastedStock        int        `json:"wastage_stock" validate:"min=0"`
}

type StockService interface {
	BuildSheet(date time.Time, category string, lowStockOnly bool) ([]stock.Row, error)
	SaveSheet(date time.Time, entries []SheetEntry, userID, userName string) error
}

type stockService struct {
	productRepo repository.ProductRepository
	recordRepo  repository.StockRecordRepository
	orderRepo   repository.OrderRepository
	db          *gorm.DB
	wsHub       *ws.Hub
	cfg         *config.Config
}

func NewStockService(
	pRepo repository.ProductRepository,
	rRepo repository.StockRecordRepository,
	oRepo repository.OrderRepository,
	db *gorm.DB,
	hub *ws.Hub,
	cfg *config.Config,
) StockService {
	return &stockService{
		productRepo: pRepo,
		recordRepo:  rRepo,
		orderRepo:   oRepo,
		db:          db,
		wsHub:       hub,
		cfg:         cfg,
	}
}

func toProductInfos(products []model.Product) []stock.ProductInfo {
	infos := make([]stock.ProductInfo, len(products))
	for i, p := range products {
		infos[i] = stock.ProductInfo{
			ID:        p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Category:  p.Category,
			Unit:      p.Unit,
			UnitPrice: p.UnitPrice,
			Stock:     p.Stock,
		}
	}
	return infos
}

// BuildSheet synthesizes the reconciliation sheet for a date: every active
// product gets a row, seeded from any previously saved record for that day.
func (s *stockService) BuildSheet(date time.Time, category string, lowStockOnly bool) ([]stock.Row, error) {
	products, err := s.productRepo.FindActive()
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.FindByDate(date)
	if err != nil {
		return nil, err
	}

	saved := make(map[uuid.UUID]stock.SavedMovement, len(records))
	for _, rec := range records {
		saved[rec.ProductID] = stock.SavedMovement{
			RecordID:           rec.ID,
			AdditionalStock:    rec.AdditionalStock,
			OrderCount:         rec.OrderCount,
			ActualClosingStock: rec.ActualClosingStock,
			WastedStock:        rec.WastedStock,
		}
	}

	rows := stock.BuildRows(toProductInfos(products), saved)

	if s.cfg.StockOrderSource == config.OrderSourceOrders {
		units, err := s.orderRepo.PaidUnitsByDate(date)
		if err != nil {
			return nil, err
		}
		rows = stock.WithOrderCounts(rows, units)
	}

	if category == "" {
		category = stock.CategoryAll
	}
	rows = stock.FilterByCategory(rows, category)
	if lowStockOnly {
		rows = stock.FilterLowStock(rows, s.cfg.LowStockThreshold)
	}

	return rows, nil
}

// SaveSheet validates and persists the edited rows for a date in one DB
// transaction, recomputing the derived figures server-side. Opening stock
// is frozen on first save; the product's authoritative stock level is set
// to the counted closing stock. On any failure the whole save rolls back.
func (s *stockService) SaveSheet(date time.Time, entries []SheetEntry, userID, userName string) error {
	if len(entries) == 0 {
		return ErrEmptySheet
	}

	for _, e := range entries {
		if errs := validator.ValidateStruct(&e); len(errs) > 0 {
			firstErr := errs[0]
			return fmt.Errorf("validation failed for product %s: field '%s' failed on tag '%s'",
				e.ProductID, firstErr.FailedField, firstErr.Tag)
		}
	}

	var orderUnits map[uuid.UUID]int
	if s.cfg.StockOrderSource == config.OrderSourceOrders {
		units, err := s.orderRepo.PaidUnitsByDate(date)
		if err != nil {
			return err
		}
		orderUnits = units
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			var product model.Product
			if err := tx.First(&product, "id = ? AND archived = ?", e.ProductID, false).Error; err != nil {
				return fmt.Errorf("%w: %s", ErrProductNotInCatalog, e.ProductID)
			}

			existing, err := s.recordRepo.FindByProductAndDateTx(tx, e.ProductID, day)
			if err != nil {
				return err
			}

			// Opening stock and price come from the product on first
			// save and stay frozen afterwards, so a second save of the
			// same day does not treat the written-back closing count
			// as the day's opening level.
			openingStock := product.Stock
			unitPrice := product.UnitPrice
			if existing != nil {
				openingStock = existing.OpeningStock
				unitPrice = existing.UnitPrice
			}

			orderCount := e.OrderCount
			if orderUnits != nil {
				orderCount = orderUnits[e.ProductID]
			}

			estimated := stock.ComputeEstimatedClosing(openingStock, e.AdditionalStock, orderCount)
			stolen := stock.ComputeStolenStock(estimated, e.ActualClosingStock, e.WastedStock)
			sales := stock.ComputeSales(orderCount, unitPrice).Round(2)

			record := &model.StockRecord{
				ProductID:             e.ProductID,
				RecordDate:            day,
				OpeningStock:          openingStock,
				AdditionalStock:       e.AdditionalStock,
				OrderCount:            orderCount,
				ActualClosingStock:    e.ActualClosingStock,
				WastedStock:           e.WastedStock,
				EstimatedClosingStock: estimated,
				StolenStock:           stolen,
				Sales:                 sales,
				UnitPrice:             unitPrice,
			}
			if existing != nil {
				record.ID = existing.ID
				record.CreatedAt = existing.CreatedAt
				record.CreatedBy = existing.CreatedBy
			} else {
				record.CreatedBy = userID
			}
			record.UpdatedBy = userID

			if err := s.recordRepo.UpsertTx(tx, record); err != nil {
				return err
			}

			// The counted stock becomes the product's authoritative level.
			if err := s.productRepo.UpdateStock(tx, e.ProductID, e.ActualClosingStock, userID); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return err
	}

	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "stock_sheet_saved",
			"sheet": map[string]interface{}{
				"date":      day.Format("2006-01-02"),
				"row_count": len(entries),
			},
			"user": map[string]interface{}{
				"id":   userID,
				"name": userName,
			},
			"message": fmt.Sprintf("%s saved the stock sheet for %s", userName, day.Format("2006-01-02")),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()

	return nil
}
