package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"rawkart/internal/service/auth"
	"rawkart/pkg/utils"
)

// AuthHandler authentication handler
type AuthHandler struct {
	authService auth.AuthService
}

// NewAuthHandler creates an authentication handler
func NewAuthHandler(authService auth.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "invalid parameters: "+err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, utils.CodeUserExists, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user_id": user.ID,
		"name":    user.Name,
		"role":    user.Role,
	})
}

// Login user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "invalid parameters: "+err.Error())
		return
	}

	tokenResp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, utils.CodeUnauthorized, err.Error())
		return
	}

	utils.SuccessResponse(c, tokenResp)
}

// Logout user logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		utils.Error(c, utils.CodeInvalidParam, "missing token")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		utils.Error(c, utils.CodeInternalError, "logout failed")
		return
	}

	utils.SuccessResponse(c, nil)
}

// SearchSupplier finds a supplier by name
func (h *AuthHandler) SearchSupplier(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		utils.Error(c, utils.CodeInvalidParam, "missing supplier name")
		return
	}

	supplier, err := h.authService.SearchSupplier(c.Request.Context(), name)
	if err != nil {
		utils.Error(c, utils.CodeUserNotFound, err.Error())
		return
	}

	utils.SuccessResponse(c, supplier)
}
