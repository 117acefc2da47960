package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rawkart/internal/model"
)

// ErrNotFound returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// UserRepository user repository interface
type UserRepository interface {
	// Create user
	Create(ctx context.Context, user *model.User) error

	// Get user by ID
	GetByID(ctx context.Context, id uint64) (*model.User, error)

	// Get user by mobile number
	GetByMobile(ctx context.Context, mobile string) (*model.User, error)

	// Check if mobile number is registered
	ExistsByMobile(ctx context.Context, mobile string) (bool, error)

	// Find a supplier by (partial) name
	FindSupplierByName(ctx context.Context, name string) (*model.User, error)
}

// userRepository user repository implementation
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a user
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByMobile gets a user by mobile number
func (r *userRepository) GetByMobile(ctx context.Context, mobile string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("mobile = ?", mobile).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ExistsByMobile checks whether a mobile number is registered
func (r *userRepository) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("mobile = ?", mobile).
		Count(&count).Error
	return count > 0, err
}

// FindSupplierByName finds a supplier by case-insensitive partial name match
func (r *userRepository) FindSupplierByName(ctx context.Context, name string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("role = ?", model.RoleSupplier).
		Where("name LIKE ?", "%"+name+"%").
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
