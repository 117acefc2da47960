package model

import (
	"time"
)

// User model
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null;index" json:"name"`
	Mobile       string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"mobile"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;index" json:"role"` // vendor, supplier
	CreatedAt    time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName set name
func (User) TableName() string {
	return "users"
}

// User roles
const (
	RoleVendor   = "vendor"
	RoleSupplier = "supplier"
)

// IsVendor check if user is a vendor
func (u *User) IsVendor() bool {
	return u.Role == RoleVendor
}

// IsSupplier check if user is a supplier
func (u *User) IsSupplier() bool {
	return u.Role == RoleSupplier
}
