package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rawkart/internal/config"
	"rawkart/internal/model"
)

// MockInventoryRepository is a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) GetByID(ctx context.Context, id uint64) (*model.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListBySupplier(ctx context.Context, supplierID uint64) ([]*model.InventoryItem, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) SearchByName(ctx context.Context, pattern string) ([]*model.InventoryItem, error) {
	args := m.Called(ctx, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InventoryItem), args.Error(1)
}

func cacheConfig(enabled bool) config.CacheConfig {
	var cfg config.CacheConfig
	cfg.Search.Enabled = enabled
	cfg.Search.TTL = time.Minute
	cfg.Search.Shards = 16
	return cfg
}

func TestNormalizeSearchTerm(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Potatoes", "potato"},
		{"potato", "potato"},
		{"Onions", "onion"},
		{"Tomatoes", "tomato"},
		{"  Garlic  ", "garlic"},
		{"chillies", "chilli"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSearchTerm(tt.input))
		})
	}
}

func TestInventoryService_AddItem(t *testing.T) {
	repo := new(MockInventoryRepository)
	service, err := NewInventoryService(repo, cacheConfig(false))
	assert.NoError(t, err)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(item *model.InventoryItem) bool {
		return item.SupplierID == 2 && item.ItemName == "Onion" && item.Unit == "per Kg"
	})).Return(nil)

	item, err := service.AddItem(context.Background(), 2, &AddItemRequest{
		ItemName: "Onion",
		Price:    3000,
		MinPrice: 2500,
		Quantity: 100,
	})

	assert.NoError(t, err)
	assert.Equal(t, "per Kg", item.Unit, "unit defaults when omitted")
	repo.AssertExpectations(t)
}

func TestInventoryService_AddItem_MinPriceAbovePrice(t *testing.T) {
	repo := new(MockInventoryRepository)
	service, err := NewInventoryService(repo, cacheConfig(false))
	assert.NoError(t, err)

	_, err = service.AddItem(context.Background(), 2, &AddItemRequest{
		ItemName: "Onion",
		Price:    2000,
		MinPrice: 2500,
		Quantity: 100,
	})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create")
}

func TestInventoryService_Search_NormalizesTerm(t *testing.T) {
	repo := new(MockInventoryRepository)
	service, err := NewInventoryService(repo, cacheConfig(false))
	assert.NoError(t, err)

	repo.On("SearchByName", mock.Anything, "potato").Return([]*model.InventoryItem{
		{ID: 1, ItemName: "Potato", Price: 2000},
	}, nil)

	items, err := service.Search(context.Background(), "Potatoes")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	repo.AssertExpectations(t)
}

func TestInventoryService_Search_CachesResults(t *testing.T) {
	repo := new(MockInventoryRepository)
	service, err := NewInventoryService(repo, cacheConfig(true))
	assert.NoError(t, err)

	repo.On("SearchByName", mock.Anything, "onion").Return([]*model.InventoryItem{
		{ID: 1, ItemName: "Onion", Price: 3000},
	}, nil).Once()

	first, err := service.Search(context.Background(), "onion")
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	// Second hit comes from the cache; the repo is not asked again
	second, err := service.Search(context.Background(), "Onions")
	assert.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	repo.AssertNumberOfCalls(t, "SearchByName", 1)
}
