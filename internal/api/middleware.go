package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolafm/portal-backend/internal/auth"
	"github.com/escolafm/portal-backend/internal/user"
)

// RequireApproved ensures the authenticated account has passed admin
// approval. MUST be used after auth.AuthRequired.
func RequireApproved(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if u.Status != user.StatusApproved {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account pending approval"})
			return
		}

		c.Next()
	}
}

// RequireAdmin ensures the authenticated user holds admin privilege.
// MUST be used after auth.AuthRequired.
func RequireAdmin(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if !u.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}
