package repository

import (
	"honesty-store-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(includeArchived bool, category string) ([]model.Product, error)
	FindActive() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	Update(product *model.Product) error
	UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error
	Archive(id uuid.UUID, updatedBy string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(includeArchived bool, category string) ([]model.Product, error) {
	var products []model.Product
	q := r.db.Preload("CreatedByUser").Preload("UpdatedByUser").Order("name ASC")
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Find(&products).Error
	return products, err
}

// FindActive returns the non-archived catalog in a stable order; sheet
// building depends on this ordering being deterministic.
func (r *productRepo) FindActive() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("archived = ?", false).Order("name ASC, id ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("CreatedByUser").Preload("UpdatedByUser").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// UpdateStock runs on the caller's tx so sheet saves and checkouts stay atomic.
func (r *productRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":      newStock,
			"updated_by": updatedBy,
		}).Error
}

func (r *productRepo) Archive(id uuid.UUID, updatedBy string) error {
	return r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"archived":   true,
			"updated_by": updatedBy,
		}).Error
}
