package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockRecord is the persisted reconciliation row: one per product per
// accounting date, upserted whole on every sheet save. Derived figures
// are recomputed server-side before each save and stored alongside the
// operator-entered quantities so reports never re-derive them from a
// possibly changed product price.
type StockRecord struct {
	BaseModel
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_records_product_date" json:"product_id" validate:"uuid_required"`
	Product    Product   `json:"product,omitempty" validate:"-"`
	RecordDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_stock_records_product_date;index" json:"record_date" validate:"required"`

	// Operator-entered quantities
	OpeningStock       int `gorm:"not null;default:0" json:"opening_stock" validate:"min=0"`
	AdditionalStock    int `gorm:"not null;default:0" json:"additional_stock" validate:"min=0"`
	OrderCount         int `gorm:"not null;default:0" json:"order_count" validate:"min=0"`
	ActualClosingStock int `gorm:"not null;default:0" json:"actual_closing_stock" validate:"min=0"`
	WastedStock        int `gorm:"not null;default:0" json:"wastage_stock" validate:"min=0"`

	// Derived at save time
	EstimatedClosingStock int             `gorm:"not null;default:0" json:"estimated_closing_stock"`
	StolenStock           int             `gorm:"not null;default:0" json:"stolen_stock"`
	Sales                 decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"sales"`

	// Unit price snapshot; later price changes do not touch saved rows.
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"unit_price"`
}

func (StockRecord) TableName() string {
	return "stock_records"
}
