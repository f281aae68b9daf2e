package middleware

import (
	"net/http"
	"strings"

	"halvi-backend/internal/auth"
	"halvi-backend/internal/models"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// BusinessMiddleware requires a business-owner (or admin) account
func BusinessMiddleware(jwtSecret string) gin.HandlerFunc {
	return requireRole(jwtSecret, func(role string) bool {
		return role == models.RoleBusiness || role == models.RoleAdmin
	}, "Business access required")
}

// AdminMiddleware requires an admin account
func AdminMiddleware(jwtSecret string) gin.HandlerFunc {
	return requireRole(jwtSecret, func(role string) bool {
		return role == models.RoleAdmin
	}, "Admin access required")
}

func requireRole(jwtSecret string, allowed func(string) bool, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authMiddleware := AuthMiddleware(jwtSecret)
		authMiddleware(c)

		if c.IsAborted() {
			return
		}

		userRole, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User role not found"})
			c.Abort()
			return
		}

		role, ok := userRole.(string)
		if !ok || !allowed(role) {
			c.JSON(http.StatusForbidden, gin.H{"error": message})
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuthMiddleware extracts user info from a JWT token if present but
// doesn't require it, so guests and signed-in shoppers share the endpoints
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Next()
			return
		}

		claims, err := auth.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			// Invalid token - continue as guest user
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}
