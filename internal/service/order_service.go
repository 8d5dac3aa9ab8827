package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"honesty-store-backend/internal/model"
	"honesty-store-backend/internal/repository"
	"honesty-store-backend/internal/ws"
	"honesty-store-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderNotPending   = errors.New("order is not pending")
)

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type PlaceOrderRequest struct {
	PaymentMethod string             `json:"payment_method"`
	Note          string             `json:"note"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderService interface {
	PlaceOrder(req *PlaceOrderRequest, userID uuid.UUID, userName string) (*model.Order, error)
	ConfirmPayment(orderID uuid.UUID, paymentMethod, adminID, adminName string) (*model.Order, error)
	CancelOrder(orderID uuid.UUID, actorID uuid.UUID, isAdmin bool) (*model.Order, error)
	GetOrder(id uuid.UUID) (*model.Order, error)
	GetOrdersByUser(userID uuid.UUID) ([]model.Order, error)
	GetAllOrders() ([]model.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewOrderService(
	oRepo repository.OrderRepository,
	pRepo repository.ProductRepository,
	uRepo repository.UserRepository,
	db *gorm.DB,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		orderRepo:   oRepo,
		productRepo: pRepo,
		userRepo:    uRepo,
		db:          db,
		wsHub:       hub,
	}
}

// PlaceOrder takes items off the shelf: stock is decremented when the
// order is placed, not when it is paid, because the student is already
// holding the goods.
func (s *orderService) PlaceOrder(req *PlaceOrderRequest, userID uuid.UUID, userName string) (*model.Order, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	order := &model.Order{
		UserID:        userID,
		Status:        model.OrderPending,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero

		for _, item := range req.Items {
			var product model.Product
			if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", item.ProductID).Error; err != nil {
				return errors.New("product not found")
			}
			if product.Archived {
				return fmt.Errorf("product '%s' is no longer sold", product.Name)
			}
			if product.Stock < item.Quantity {
				return fmt.Errorf("%w for '%s'", ErrInsufficientStock, product.Name)
			}

			if err := s.productRepo.UpdateStock(tx, product.ID, product.Stock-item.Quantity, userID.String()); err != nil {
				return err
			}

			lineTotal := product.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			order.Items = append(order.Items, model.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.UnitPrice,
				LineTotal: lineTotal,
			})
			total = total.Add(lineTotal)
		}

		order.TotalAmount = total
		order.CreatedBy = userID.String()
		order.UpdatedBy = userID.String()

		return s.orderRepo.CreateTx(tx, order)
	})

	if err != nil {
		return nil, err
	}

	go func() {
		payload := map[string]interface{}{
			"type":   "order_update",
			"action": "order_placed",
			"order": map[string]interface{}{
				"id":           order.ID,
				"total_amount": order.TotalAmount,
				"item_count":   len(order.Items),
			},
			"user": map[string]interface{}{
				"id":   userID.String(),
				"name": userName,
			},
			"message": fmt.Sprintf("%s placed an order worth %s", userName, order.TotalAmount.Round(2)),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()

	return order, nil
}

// ConfirmPayment flips a pending order to PAID and credits the buyer's
// reward points (one point per whole currency unit spent).
func (s *orderService) ConfirmPayment(orderID uuid.UUID, paymentMethod, adminID, adminName string) (*model.Order, error) {
	var confirmed *model.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.Set("gorm:query_option", "FOR UPDATE").Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			return ErrOrderNotFound
		}
		if order.Status != model.OrderPending {
			return ErrOrderNotPending
		}

		now := time.Now()
		order.Status = model.OrderPaid
		order.PaidAt = &now
		if paymentMethod != "" {
			order.PaymentMethod = paymentMethod
		}
		order.UpdatedBy = adminID

		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		points := int(order.TotalAmount.IntPart())
		if points > 0 {
			if err := s.userRepo.AddRewardPointsTx(tx, order.UserID, points); err != nil {
				return err
			}
		}

		confirmed = &order
		return nil
	})

	if err != nil {
		return nil, err
	}

	go func() {
		payload := map[string]interface{}{
			"type":   "order_update",
			"action": "payment_confirmed",
			"order": map[string]interface{}{
				"id":           confirmed.ID,
				"total_amount": confirmed.TotalAmount,
			},
			"user": map[string]interface{}{
				"id":   adminID,
				"name": adminName,
			},
			"message": fmt.Sprintf("%s confirmed payment for order %s", adminName, confirmed.ID),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()

	return confirmed, nil
}

// CancelOrder puts a pending order's items back on the shelf. Students
// may only cancel their own orders; admins may cancel any pending order.
func (s *orderService) CancelOrder(orderID uuid.UUID, actorID uuid.UUID, isAdmin bool) (*model.Order, error) {
	var cancelled *model.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.Set("gorm:query_option", "FOR UPDATE").Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			return ErrOrderNotFound
		}
		if order.Status != model.OrderPending {
			return ErrOrderNotPending
		}
		if !isAdmin && order.UserID != actorID {
			return errors.New("cannot cancel another user's order")
		}

		for _, item := range order.Items {
			var product model.Product
			if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}
			if err := s.productRepo.UpdateStock(tx, product.ID, product.Stock+item.Quantity, actorID.String()); err != nil {
				return err
			}
		}

		order.Status = model.OrderCancelled
		order.UpdatedBy = actorID.String()
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		cancelled = &order
		return nil
	})

	if err != nil {
		return nil, err
	}

	return cancelled, nil
}

func (s *orderService) GetOrder(id uuid.UUID) (*model.Order, error) {
	return s.orderRepo.FindByID(id)
}

func (s *orderService) GetOrdersByUser(userID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.FindByUser(userID)
}

func (s *orderService) GetAllOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}
