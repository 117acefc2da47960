package handler

import (
	"github.com/gin-gonic/gin"

	"rawkart/internal/middleware"
	"rawkart/internal/service/inventory"
	"rawkart/pkg/utils"
)

// InventoryHandler inventory handler
type InventoryHandler struct {
	inventoryService inventory.InventoryService
}

// NewInventoryHandler creates an inventory handler
func NewInventoryHandler(inventoryService inventory.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// AddItem adds an item to the authenticated supplier's inventory
func (h *InventoryHandler) AddItem(c *gin.Context) {
	supplierID, ok := middleware.GetUserID(c)
	if !ok {
		utils.Error(c, utils.CodeUnauthorized, "not authenticated")
		return
	}

	var req inventory.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "invalid parameters: "+err.Error())
		return
	}

	item, err := h.inventoryService.AddItem(c.Request.Context(), supplierID, &req)
	if err != nil {
		utils.Error(c, utils.CodeInvalidParam, err.Error())
		return
	}

	utils.SuccessResponse(c, item)
}

// ListMine lists the authenticated supplier's items
func (h *InventoryHandler) ListMine(c *gin.Context) {
	supplierID, ok := middleware.GetUserID(c)
	if !ok {
		utils.Error(c, utils.CodeUnauthorized, "not authenticated")
		return
	}

	items, err := h.inventoryService.ListMine(c.Request.Context(), supplierID)
	if err != nil {
		utils.Error(c, utils.CodeDatabaseError, "failed to load inventory")
		return
	}

	utils.SuccessResponse(c, items)
}

// Search searches inventory by ingredient name, cheapest offer first
func (h *InventoryHandler) Search(c *gin.Context) {
	ingredient := c.Param("ingredient")
	if ingredient == "" {
		utils.Error(c, utils.CodeInvalidParam, "missing ingredient")
		return
	}

	items, err := h.inventoryService.Search(c.Request.Context(), ingredient)
	if err != nil {
		utils.Error(c, utils.CodeDatabaseError, "search failed")
		return
	}

	utils.SuccessResponse(c, items)
}
