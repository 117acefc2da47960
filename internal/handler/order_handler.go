package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"rawkart/internal/middleware"
	"rawkart/internal/model"
	"rawkart/internal/service/order"
	"rawkart/pkg/utils"
)

// OrderHandler purchase request handler
type OrderHandler struct {
	orderService order.OrderService
}

// NewOrderHandler creates an order handler
func NewOrderHandler(orderService order.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// Create creates a purchase request on the authenticated vendor's behalf.
// Resubmitting while a request for the same item is still open returns the
// open request instead of a duplicate.
func (h *OrderHandler) Create(c *gin.Context) {
	vendorID, ok := middleware.GetUserID(c)
	if !ok {
		utils.Error(c, utils.CodeUnauthorized, "not authenticated")
		return
	}

	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "invalid parameters: "+err.Error())
		return
	}

	ord, created, err := h.orderService.Create(c.Request.Context(), vendorID, &req)
	if err != nil {
		if errors.Is(err, order.ErrItemNotFound) {
			utils.Error(c, utils.CodeItemNotFound, err.Error())
			return
		}
		utils.Error(c, utils.CodeInternalError, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order":   ord,
		"created": created,
	})
}

// List lists the authenticated user's orders for their side of the market
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.Error(c, utils.CodeUnauthorized, "not authenticated")
		return
	}
	role, _ := middleware.GetUserRole(c)

	var (
		orders []*model.Order
		err    error
	)
	if role == model.RoleSupplier {
		orders, err = h.orderService.ListForSupplier(c.Request.Context(), userID)
	} else {
		orders, err = h.orderService.ListForVendor(c.Request.Context(), userID)
	}
	if err != nil {
		utils.Error(c, utils.CodeDatabaseError, "failed to load orders")
		return
	}

	utils.SuccessResponse(c, orders)
}

// Delete deletes a purchase request. Supplier only; closes the chat room.
func (h *OrderHandler) Delete(c *gin.Context) {
	supplierID, ok := middleware.GetUserID(c)
	if !ok {
		utils.Error(c, utils.CodeUnauthorized, "not authenticated")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, utils.CodeInvalidParam, "invalid order id")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), supplierID, orderID); err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			utils.Error(c, utils.CodeOrderNotFound, err.Error())
		case errors.Is(err, order.ErrNotSupplier):
			utils.Error(c, utils.CodeForbidden, err.Error())
		default:
			utils.Error(c, utils.CodeInternalError, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, nil)
}
