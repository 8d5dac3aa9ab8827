package repository

import (
	"time"

	"honesty-store-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateTx(tx *gorm.DB, order *model.Order) error
	FindByID(id uuid.UUID) (*model.Order, error)
	FindByUser(userID uuid.UUID) ([]model.Order, error)
	FindAll() ([]model.Order, error)
	PaidUnitsByDate(date time.Time) (map[uuid.UUID]int, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) CreateTx(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items.Product").Preload("User").First(&order, "id = ?", id).Error
	return &order, err
}

func (r *orderRepo) FindByUser(userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items.Product").Preload("User").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// PaidUnitsByDate aggregates paid order units per product for one calendar
// day. Feeds the reconciliation sheet's order counts in orders mode.
func (r *orderRepo) PaidUnitsByDate(date time.Time) (map[uuid.UUID]int, error) {
	start, end := dayBounds(date)

	rows, err := r.db.Model(&model.OrderItem{}).
		Select("order_items.product_id, COALESCE(SUM(order_items.quantity), 0)").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ? AND orders.paid_at BETWEEN ? AND ?", model.OrderPaid, start, end).
		Group("order_items.product_id").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	units := make(map[uuid.UUID]int)
	for rows.Next() {
		var productID uuid.UUID
		var qty int
		if err := rows.Scan(&productID, &qty); err != nil {
			return nil, err
		}
		units[productID] = qty
	}

	return units, nil
}
