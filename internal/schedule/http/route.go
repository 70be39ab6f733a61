package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, approvedMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/resources")
	group.Use(authMiddleware, approvedMiddleware)
	{
		group.GET("", h.List)
		group.POST("", adminMiddleware, h.Create)
		group.PATCH("/:id", adminMiddleware, h.Update)
	}
}
