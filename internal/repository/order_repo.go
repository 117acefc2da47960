package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rawkart/internal/model"
)

// OrderRepository order repository interface
type OrderRepository interface {
	// Create order
	Create(ctx context.Context, order *model.Order) error

	// Get order by ID with associations
	GetByID(ctx context.Context, id uint64) (*model.Order, error)

	// Find the active (non-closed) order for a vendor/supplier/item triple
	FindActive(ctx context.Context, vendorID, supplierID, itemID uint64) (*model.Order, error)

	// List a vendor's orders, newest first
	ListByVendor(ctx context.Context, vendorID uint64) ([]*model.Order, error)

	// List a supplier's orders, newest first
	ListBySupplier(ctx context.Context, supplierID uint64) ([]*model.Order, error)

	// Count non-closed orders bound to a chat room
	CountActiveByRoom(ctx context.Context, roomID string) (int64, error)

	// Delete order
	Delete(ctx context.Context, id uint64) error
}

// orderRepository order repository implementation
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create creates an order
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// GetByID gets an order by ID
func (r *orderRepository) GetByID(ctx context.Context, id uint64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("Supplier").
		Preload("InventoryItem").
		Where("id = ?", id).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindActive finds the non-closed order for a vendor/supplier/item triple.
// Returns nil without error when none exists (idempotency check, not a
// failure).
func (r *orderRepository) FindActive(ctx context.Context, vendorID, supplierID, itemID uint64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Where("supplier_id = ?", supplierID).
		Where("inventory_item_id = ?", itemID).
		Where("status <> ?", model.OrderStatusClosed).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByVendor lists a vendor's orders, newest first
func (r *orderRepository) ListByVendor(ctx context.Context, vendorID uint64) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Preload("Supplier").
		Preload("InventoryItem").
		Find(&orders).Error
	return orders, err
}

// ListBySupplier lists a supplier's orders, newest first
func (r *orderRepository) ListBySupplier(ctx context.Context, supplierID uint64) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC").
		Preload("Vendor").
		Preload("InventoryItem").
		Find(&orders).Error
	return orders, err
}

// CountActiveByRoom counts non-closed orders bound to a chat room
func (r *orderRepository) CountActiveByRoom(ctx context.Context, roomID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("chat_room_id = ?", roomID).
		Where("status <> ?", model.OrderStatusClosed).
		Count(&count).Error
	return count, err
}

// Delete deletes an order
func (r *orderRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Order{}).Error
}
