package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, approvedMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(authMiddleware, approvedMiddleware)
	{
		group.GET("", h.List)
		group.GET("/day", h.Day)
		group.GET("/availability", h.Availability)
		group.GET("/events", h.Events)
		group.POST("", h.Create)
		group.DELETE("/:id", h.Delete)
	}
}
