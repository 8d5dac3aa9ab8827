package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order is a student's self-service checkout. Stock is decremented when
// the order is placed; payment is recorded afterwards (honesty box, UPI,
// whatever the store accepts) and flips the status to PAID.
type Order struct {
	BaseModel
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id" validate:"uuid_required"`
	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
	Status        OrderStatus     `gorm:"type:varchar(10);not null;default:'PENDING'" json:"status"`
	PaymentMethod string          `gorm:"type:varchar(20)" json:"payment_method"` // CASH, UPI. May be empty until paid.
	TotalAmount   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_amount"`
	Note          string          `json:"note"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items" validate:"-"`
}

// OrderItem snapshots the unit price at checkout so saved orders are not
// affected by later price changes.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   Product         `json:"product,omitempty" validate:"-"`
	Quantity  int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"line_total"`
}
