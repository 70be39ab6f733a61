package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, approvedMiddleware, adminMiddleware gin.HandlerFunc) {
	categories := g.Group("/categories")
	categories.Use(authMiddleware, approvedMiddleware)
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:id/materials", h.ListByCategory)
		categories.POST("", adminMiddleware, h.CreateCategory)
		categories.DELETE("/:id", adminMiddleware, h.DeleteCategory)
	}

	materials := g.Group("/materials")
	materials.Use(authMiddleware, approvedMiddleware)
	{
		materials.POST("", h.Upload)
		materials.GET("/:id/download", h.Download)
		materials.DELETE("/:id", h.Delete)
	}
}
