package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/allegro/bigcache/v3"

	"rawkart/internal/config"
	"rawkart/internal/model"
	"rawkart/internal/repository"
	"rawkart/pkg/log"
)

// AddItemRequest add inventory item request
type AddItemRequest struct {
	ItemName string  `json:"item_name" binding:"required,min=2,max=200"`
	Unit     string  `json:"unit"`
	Price    int64   `json:"price" binding:"required,gt=0"`     // paise
	MinPrice int64   `json:"min_price" binding:"required,gt=0"` // paise
	Quantity int     `json:"quantity" binding:"required,gt=0"`
	Image    *string `json:"image"`
}

// InventoryService inventory service interface
type InventoryService interface {
	// Add an inventory item for a supplier
	AddItem(ctx context.Context, supplierID uint64, req *AddItemRequest) (*model.InventoryItem, error)

	// List a supplier's own items
	ListMine(ctx context.Context, supplierID uint64) ([]*model.InventoryItem, error)

	// Search items by ingredient name, cheapest first
	Search(ctx context.Context, ingredient string) ([]*model.InventoryItem, error)
}

// inventoryService inventory service implementation
type inventoryService struct {
	repo  repository.InventoryRepository
	cache *bigcache.BigCache
}

// NewInventoryService creates an inventory service. The search cache is
// optional; a nil cache disables it.
func NewInventoryService(repo repository.InventoryRepository, cacheCfg config.CacheConfig) (InventoryService, error) {
	var cache *bigcache.BigCache
	if cacheCfg.Search.Enabled {
		bcCfg := bigcache.DefaultConfig(cacheCfg.Search.TTL)
		bcCfg.Shards = cacheCfg.Search.Shards
		var err error
		cache, err = bigcache.New(context.Background(), bcCfg)
		if err != nil {
			return nil, err
		}
	}

	return &inventoryService{
		repo:  repo,
		cache: cache,
	}, nil
}

// AddItem adds an inventory item for a supplier
func (s *inventoryService) AddItem(ctx context.Context, supplierID uint64, req *AddItemRequest) (*model.InventoryItem, error) {
	if req.MinPrice > req.Price {
		return nil, errors.New("minimum price cannot exceed selling price")
	}

	unit := req.Unit
	if unit == "" {
		unit = "per Kg"
	}

	item := &model.InventoryItem{
		SupplierID: supplierID,
		ItemName:   req.ItemName,
		Unit:       unit,
		Price:      req.Price,
		MinPrice:   req.MinPrice,
		Quantity:   req.Quantity,
		Image:      req.Image,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		log.WithFields(map[string]interface{}{
			"supplier_id": supplierID,
			"error":       err.Error(),
		}).Error("Create inventory item failed")
		return nil, errors.New("failed to add item")
	}

	return item, nil
}

// ListMine lists a supplier's own items
func (s *inventoryService) ListMine(ctx context.Context, supplierID uint64) ([]*model.InventoryItem, error) {
	return s.repo.ListBySupplier(ctx, supplierID)
}

// Search searches items by ingredient name. The search term is reduced to a
// singular base form so "Potatoes" matches "Potato"; results come back
// cheapest first. Hits are served from a short-TTL cache.
func (s *inventoryService) Search(ctx context.Context, ingredient string) ([]*model.InventoryItem, error) {
	term := NormalizeSearchTerm(ingredient)

	if s.cache != nil {
		if raw, err := s.cache.Get(term); err == nil {
			var items []*model.InventoryItem
			if err := json.Unmarshal(raw, &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := s.repo.SearchByName(ctx, term)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(items); err == nil {
			if err := s.cache.Set(term, raw); err != nil {
				log.WithFields(map[string]interface{}{
					"term":  term,
					"error": err.Error(),
				}).Debug("Search cache set failed")
			}
		}
	}

	return items, nil
}

// NormalizeSearchTerm lowercases an ingredient name and strips a plural
// suffix ("es", then "s") so singular and plural forms find the same items
func NormalizeSearchTerm(ingredient string) string {
	term := strings.ToLower(strings.TrimSpace(ingredient))
	if strings.HasSuffix(term, "es") {
		return strings.TrimSuffix(term, "es")
	}
	if strings.HasSuffix(term, "s") {
		return strings.TrimSuffix(term, "s")
	}
	return term
}
