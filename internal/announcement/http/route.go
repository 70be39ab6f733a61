package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, approvedMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/notifications")
	group.Use(authMiddleware, approvedMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", adminMiddleware, h.Create)
		group.DELETE("/:id", adminMiddleware, h.Delete)
	}
}
