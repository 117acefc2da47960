package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rawkart/internal/middleware"
	"rawkart/internal/model"
	"rawkart/internal/service/order"
)

// MockOrderService is a mock implementation of OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, vendorID uint64, req *order.CreateOrderRequest) (*model.Order, bool, error) {
	args := m.Called(ctx, vendorID, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Order), args.Bool(1), args.Error(2)
}

func (m *MockOrderService) ListForVendor(ctx context.Context, vendorID uint64) ([]*model.Order, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Order), args.Error(1)
}

func (m *MockOrderService) ListForSupplier(ctx context.Context, supplierID uint64) ([]*model.Order, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, supplierID, orderID uint64) error {
	args := m.Called(ctx, supplierID, orderID)
	return args.Error(0)
}

// asUser injects an authenticated identity the way the auth middleware would
func asUser(id uint64, name, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, id)
		c.Set(middleware.UserNameKey, name)
		c.Set(middleware.UserRoleKey, role)
		c.Next()
	}
}

func setupOrderRouter(service order.OrderService, id uint64, name, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewOrderHandler(service)
	router.POST("/orders", asUser(id, name, role), h.Create)
	router.GET("/orders", asUser(id, name, role), h.List)
	router.DELETE("/orders/:id", asUser(id, name, role), h.Delete)
	return router
}

func TestOrderHandler_Create(t *testing.T) {
	service := new(MockOrderService)
	router := setupOrderRouter(service, 1, "Ravi", model.RoleVendor)

	service.On("Create", mock.Anything, uint64(1), mock.MatchedBy(func(req *order.CreateOrderRequest) bool {
		return req.SupplierID == 2 && req.InventoryItemID == 3
	})).Return(&model.Order{ID: 11, ChatRoomID: "room_1_2"}, true, nil)

	body, _ := json.Marshal(map[string]uint64{
		"supplier_id":       2,
		"inventory_item_id": 3,
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestOrderHandler_Create_UnknownItem(t *testing.T) {
	service := new(MockOrderService)
	router := setupOrderRouter(service, 1, "Ravi", model.RoleVendor)

	service.On("Create", mock.Anything, uint64(1), mock.Anything).Return(nil, false, order.ErrItemNotFound)

	body, _ := json.Marshal(map[string]uint64{
		"supplier_id":       2,
		"inventory_item_id": 999,
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_List_SupplierSide(t *testing.T) {
	service := new(MockOrderService)
	router := setupOrderRouter(service, 2, "Sita", model.RoleSupplier)

	service.On("ListForSupplier", mock.Anything, uint64(2)).Return([]*model.Order{{ID: 11}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertNotCalled(t, "ListForVendor")
}

func TestOrderHandler_Delete(t *testing.T) {
	service := new(MockOrderService)
	router := setupOrderRouter(service, 2, "Sita", model.RoleSupplier)

	service.On("Delete", mock.Anything, uint64(2), uint64(11)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/orders/11", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestOrderHandler_Delete_NotOwner(t *testing.T) {
	service := new(MockOrderService)
	router := setupOrderRouter(service, 5, "Mallory", model.RoleSupplier)

	service.On("Delete", mock.Anything, uint64(5), uint64(11)).Return(order.ErrNotSupplier)

	req := httptest.NewRequest(http.MethodDelete, "/orders/11", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrderHandler_Delete_BadID(t *testing.T) {
	service := new(MockOrderService)
	router := setupOrderRouter(service, 2, "Sita", model.RoleSupplier)

	req := httptest.NewRequest(http.MethodDelete, "/orders/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "Delete")
}
