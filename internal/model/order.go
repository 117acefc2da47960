package model

import (
	"time"
)

// Order purchase request from a vendor to a supplier.
// ChatRoomID groups every request between the same vendor/supplier pair
// under one stable chat identity.
type Order struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	VendorID        uint64    `gorm:"type:bigint unsigned;not null;index" json:"vendor_id"`
	SupplierID      uint64    `gorm:"type:bigint unsigned;not null;index" json:"supplier_id"`
	InventoryItemID uint64    `gorm:"type:bigint unsigned;not null;index" json:"inventory_item_id"`
	ChatRoomID      string    `gorm:"type:varchar(64);not null;index" json:"chat_room_id"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt       time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	Vendor        *User          `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Supplier      *User          `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventory_item,omitempty"`
}

// TableName set name
func (Order) TableName() string {
	return "orders"
}

// Order status const
const (
	OrderStatusPending   = "pending"
	OrderStatusAccepted  = "accepted"
	OrderStatusCompleted = "completed"
	OrderStatusClosed    = "closed"
)

// IsPending check order is pending
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsClosed check order is closed
func (o *Order) IsClosed() bool {
	return o.Status == OrderStatusClosed
}
