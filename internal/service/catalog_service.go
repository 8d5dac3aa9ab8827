package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"honesty-store-backend/internal/model"
	"honesty-store-backend/internal/repository"
	"honesty-store-backend/internal/ws"
	"honesty-store-backend/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSKUExists = errors.New("SKU already exists")

type CatalogService interface {
	CreateProduct(req *model.Product, userID, userName string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error)
	ArchiveProduct(id uuid.UUID, userID, userName string) error
	GetProducts(includeArchived bool, category string) ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo: pRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *catalogService) CreateProduct(req *model.Product, userID, userName string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if req.UnitPrice.IsNegative() {
		return errors.New("unit price cannot be negative")
	}
	if req.Stock < 0 {
		return errors.New("stock cannot be negative")
	}

	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrSKUExists
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID
	req.CreatedByUserID = &userID
	req.UpdatedByUserID = &userID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.broadcastProductEvent("product_created", req, userID, userName,
		fmt.Sprintf("%s added '%s' to the shelf", userName, req.Name))

	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error) {
	if req.UnitPrice.IsNegative() {
		return nil, errors.New("unit price cannot be negative")
	}
	if req.Stock < 0 {
		return nil, errors.New("stock cannot be negative")
	}

	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		// Lock the row: a concurrent sheet save writes stock too.
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&existing, "id = ?", id).Error; err != nil {
			return errors.New("product not found")
		}

		existing.Name = req.Name
		existing.SKU = req.SKU
		existing.Category = req.Category
		existing.Unit = req.Unit
		existing.UnitPrice = req.UnitPrice
		existing.Stock = req.Stock
		existing.UpdatedBy = userID
		existing.UpdatedByUserID = &userID

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		updated = &existing
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.broadcastProductEvent("product_updated", updated, userID, userName,
		fmt.Sprintf("%s updated product '%s'", userName, updated.Name))

	return updated, nil
}

func (s *catalogService) ArchiveProduct(id uuid.UUID, userID, userName string) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return errors.New("product not found")
	}

	if err := s.productRepo.Archive(id, userID); err != nil {
		return err
	}

	s.broadcastProductEvent("product_archived", product, userID, userName,
		fmt.Sprintf("%s archived product '%s'", userName, product.Name))

	return nil
}

func (s *catalogService) GetProducts(includeArchived bool, category string) ([]model.Product, error) {
	return s.productRepo.FindAll(includeArchived, category)
}

func (s *catalogService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *catalogService) broadcastProductEvent(action string, p *model.Product, userID, userName, message string) {
	go func() {
		payload := map[string]interface{}{
			"type":   "catalog_update",
			"action": action,
			"product": map[string]interface{}{
				"id":         p.ID,
				"sku":        p.SKU,
				"name":       p.Name,
				"stock":      p.Stock,
				"unit_price": p.UnitPrice,
			},
			"user": map[string]interface{}{
				"id":   userID,
				"name": userName,
			},
			"message": message,
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
