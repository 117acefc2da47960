package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"rawkart/pkg/utils"
)

const (
	// AuthorizationHeader authentication header name
	AuthorizationHeader = "Authorization"
	// BearerPrefix Bearer prefix
	BearerPrefix = "Bearer "
	// UserIDKey user ID key in context
	UserIDKey = "user_id"
	// UserNameKey user name key in context
	UserNameKey = "user_name"
	// UserRoleKey user role key in context
	UserRoleKey = "user_role"
)

// UserInfo authenticated user identity
type UserInfo struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// TokenValidator resolves a bearer token to a user identity
type TokenValidator func(c *gin.Context, token string) (*UserInfo, error)

// Auth authentication middleware
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			utils.Error(c, utils.CodeUnauthorized, "Missing or malformed authorization header")
			c.Abort()
			return
		}

		userInfo, err := validator(c, token)
		if err != nil {
			utils.Error(c, utils.CodeUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, userInfo.ID)
		c.Set(UserNameKey, userInfo.Name)
		c.Set(UserRoleKey, userInfo.Role)

		c.Next()
	}
}

// RequireRole middleware requiring a specific role; runs after Auth
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, ok := GetUserRole(c)
		if !ok || userRole != role {
			utils.Error(c, utils.CodeForbidden, "Insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		// Browsers cannot set headers on websocket dials; accept a query token
		if token := c.Query("token"); token != "" {
			return token, true
		}
		return "", false
	}

	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", false
	}

	token := strings.TrimPrefix(authHeader, BearerPrefix)
	return token, token != ""
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}

	if id, ok := userID.(uint64); ok {
		return id, true
	}
	return 0, false
}

// GetUserName gets the user name from context
func GetUserName(c *gin.Context) (string, bool) {
	name, exists := c.Get(UserNameKey)
	if !exists {
		return "", false
	}

	if nameStr, ok := name.(string); ok {
		return nameStr, true
	}
	return "", false
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}

	if roleStr, ok := role.(string); ok {
		return roleStr, true
	}
	return "", false
}
