package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rawkart/internal/model"
)

// InventoryRepository inventory repository interface
type InventoryRepository interface {
	// Create inventory item
	Create(ctx context.Context, item *model.InventoryItem) error

	// Get item by ID
	GetByID(ctx context.Context, id uint64) (*model.InventoryItem, error)

	// List a supplier's items, newest first
	ListBySupplier(ctx context.Context, supplierID uint64) ([]*model.InventoryItem, error)

	// Search items by name pattern, cheapest first
	SearchByName(ctx context.Context, pattern string) ([]*model.InventoryItem, error)
}

// inventoryRepository inventory repository implementation
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates an inventory repository
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// Create creates an inventory item
func (r *inventoryRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID gets an inventory item by ID
func (r *inventoryRepository) GetByID(ctx context.Context, id uint64) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ListBySupplier lists a supplier's inventory items, newest first
func (r *inventoryRepository) ListBySupplier(ctx context.Context, supplierID uint64) ([]*model.InventoryItem, error) {
	var items []*model.InventoryItem
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// SearchByName searches inventory items by name pattern, cheapest first,
// with the supplier loaded for display
func (r *inventoryRepository) SearchByName(ctx context.Context, pattern string) ([]*model.InventoryItem, error) {
	var items []*model.InventoryItem
	err := r.db.WithContext(ctx).
		Where("item_name LIKE ?", "%"+pattern+"%").
		Order("price ASC").
		Preload("Supplier").
		Find(&items).Error
	return items, err
}
