package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"rawkart/internal/chat"
	"rawkart/internal/model"
	"rawkart/internal/monitor"
	"rawkart/internal/repository"
	"rawkart/pkg/log"
)

// activeRoomsKey redis set of room ids with at least one non-closed order
const activeRoomsKey = "chat:active_rooms"

// Service errors
var (
	ErrItemNotFound  = errors.New("inventory item not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrNotSupplier   = errors.New("only the supplier on an order may delete it")
)

// CreateOrderRequest create purchase request
type CreateOrderRequest struct {
	SupplierID      uint64 `json:"supplier_id" binding:"required"`
	InventoryItemID uint64 `json:"inventory_item_id" binding:"required"`
}

// OrderService order service interface
type OrderService interface {
	// Create a purchase request; reuses the active one for the same triple
	Create(ctx context.Context, vendorID uint64, req *CreateOrderRequest) (*model.Order, bool, error)

	// List a vendor's orders
	ListForVendor(ctx context.Context, vendorID uint64) ([]*model.Order, error)

	// List a supplier's orders
	ListForSupplier(ctx context.Context, supplierID uint64) ([]*model.Order, error)

	// Delete an order; supplier only. Closes the chat room.
	Delete(ctx context.Context, supplierID, orderID uint64) error
}

// orderService order service implementation
type orderService struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.InventoryRepository
	lifecycle chat.Lifecycle
	redis     *redis.Client
}

// NewOrderService creates an order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.InventoryRepository,
	lifecycle chat.Lifecycle,
	redisClient *redis.Client,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		lifecycle: lifecycle,
		redis:     redisClient,
	}
}

// Create creates a purchase request. When a non-closed order already exists
// for the same vendor/supplier/item triple, that order is returned instead of
// inserting a duplicate. A fresh order reopens the pair's chat room and
// notifies the supplier. The bool result reports whether an order was created.
func (s *orderService) Create(ctx context.Context, vendorID uint64, req *CreateOrderRequest) (*model.Order, bool, error) {
	item, err := s.itemRepo.GetByID(ctx, req.InventoryItemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrItemNotFound
		}
		return nil, false, err
	}
	if item.SupplierID != req.SupplierID {
		return nil, false, ErrItemNotFound
	}

	existing, err := s.orderRepo.FindActive(ctx, vendorID, req.SupplierID, req.InventoryItemID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		full, err := s.orderRepo.GetByID(ctx, existing.ID)
		if err != nil {
			return nil, false, err
		}
		return full, false, nil
	}

	roomID := chat.DeriveRoomID(vendorID, req.SupplierID)
	order := &model.Order{
		VendorID:        vendorID,
		SupplierID:      req.SupplierID,
		InventoryItemID: req.InventoryItemID,
		ChatRoomID:      roomID,
		Status:          model.OrderStatusPending,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		log.WithFields(map[string]interface{}{
			"vendor_id":   vendorID,
			"supplier_id": req.SupplierID,
			"error":       err.Error(),
		}).Error("Create order failed")
		return nil, false, errors.New("failed to create request")
	}
	monitor.OrdersCreatedTotal.Inc()

	// Room bookkeeping and the supplier ping ride behind the insert; their
	// failure never rolls the order back.
	if err := s.redis.SAdd(ctx, activeRoomsKey, roomID).Err(); err != nil {
		log.WithFields(map[string]interface{}{
			"room_id": roomID,
			"error":   err.Error(),
		}).Warn("Track active room failed")
	}

	s.lifecycle.Reopen(roomID)

	full, err := s.orderRepo.GetByID(ctx, order.ID)
	if err != nil {
		full = order
	}

	vendorName := ""
	if full.Vendor != nil {
		vendorName = full.Vendor.Name
	}
	s.lifecycle.Notify(chat.RoleSupplier, req.SupplierID, chat.NewRequestNotification{
		Order:   full,
		Message: fmt.Sprintf("New purchase request from %s for %s", vendorName, item.ItemName),
	})

	log.WithFields(map[string]interface{}{
		"order_id":    order.ID,
		"vendor_id":   vendorID,
		"supplier_id": req.SupplierID,
		"room_id":     roomID,
	}).Info("Purchase request created")

	return full, true, nil
}

// ListForVendor lists a vendor's orders
func (s *orderService) ListForVendor(ctx context.Context, vendorID uint64) ([]*model.Order, error) {
	return s.orderRepo.ListByVendor(ctx, vendorID)
}

// ListForSupplier lists a supplier's orders
func (s *orderService) ListForSupplier(ctx context.Context, supplierID uint64) ([]*model.Order, error) {
	return s.orderRepo.ListBySupplier(ctx, supplierID)
}

// Delete deletes an order on the supplier's behalf and closes the bound chat
// room. The room identity survives; a later request for the same pair resumes
// it with history intact.
func (s *orderService) Delete(ctx context.Context, supplierID, orderID uint64) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	if order.SupplierID != supplierID {
		return ErrNotSupplier
	}

	itemName := ""
	if order.InventoryItem != nil {
		itemName = order.InventoryItem.ItemName
	}

	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		log.WithFields(map[string]interface{}{
			"order_id": orderID,
			"error":    err.Error(),
		}).Error("Delete order failed")
		return errors.New("failed to delete request")
	}
	monitor.OrdersDeletedTotal.Inc()

	s.lifecycle.Close(order.ChatRoomID, chat.ClosePayload{
		OrderID:    orderID,
		ItemName:   itemName,
		SupplierID: supplierID,
		Message:    fmt.Sprintf("The supplier has closed this chat for %s", itemName),
	})

	remaining, err := s.orderRepo.CountActiveByRoom(ctx, order.ChatRoomID)
	if err == nil && remaining == 0 {
		if err := s.redis.SRem(ctx, activeRoomsKey, order.ChatRoomID).Err(); err != nil {
			log.WithFields(map[string]interface{}{
				"room_id": order.ChatRoomID,
				"error":   err.Error(),
			}).Warn("Untrack active room failed")
		}
	}

	log.WithFields(map[string]interface{}{
		"order_id":    orderID,
		"supplier_id": supplierID,
		"room_id":     order.ChatRoomID,
	}).Info("Purchase request deleted, chat closed")

	return nil
}
