package model

import "github.com/shopspring/decimal"

// Product is a catalog item on the honesty-store shelf. Stock is the
// current authoritative level and becomes the opening stock whenever a
// new reconciliation sheet is built. Archived products stay queryable
// (saved sheets reference them) but are excluded from the catalog and
// from new sheets.
type Product struct {
	BaseModel
	SKU       string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category  *string         `gorm:"type:varchar(100);index" json:"category"`
	Unit      string          `gorm:"type:varchar(20)" json:"unit"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"unit_price"`
	Stock     int             `gorm:"default:0" json:"stock"`
	Archived  bool            `gorm:"default:false;index" json:"archived"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	UpdatedByUserID *string `gorm:"type:varchar(255)" json:"updated_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
	UpdatedByUser   *User   `gorm:"foreignKey:UpdatedByUserID;references:ID" json:"updated_by_user,omitempty"`
}
