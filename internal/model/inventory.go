package model

import (
	"time"
)

// InventoryItem raw material listed by a supplier
type InventoryItem struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SupplierID uint64    `gorm:"type:bigint unsigned;not null;index" json:"supplier_id"`
	ItemName   string    `gorm:"type:varchar(200);not null;index" json:"item_name"`
	Unit       string    `gorm:"type:varchar(20);not null;default:'per Kg'" json:"unit"`
	Price      int64     `gorm:"type:bigint;not null" json:"price"` // selling price in paise
	MinPrice   int64     `gorm:"type:bigint;not null" json:"min_price"`
	Quantity   int       `gorm:"type:int;not null" json:"quantity"`
	Image      *string   `gorm:"type:varchar(255)" json:"image,omitempty"`
	CreatedAt  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	Supplier *User `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// TableName set name
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// GetPriceRupees get price in rupees
func (i *InventoryItem) GetPriceRupees() float64 {
	return float64(i.Price) / 100
}

// GetMinPriceRupees get minimum price in rupees
func (i *InventoryItem) GetMinPriceRupees() float64 {
	return float64(i.MinPrice) / 100
}
