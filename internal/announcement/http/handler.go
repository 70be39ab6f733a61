package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolafm/portal-backend/internal/announcement"
	"github.com/escolafm/portal-backend/internal/auth"
	"github.com/escolafm/portal-backend/internal/pkg/request"
	"github.com/escolafm/portal-backend/internal/pkg/response"
)

type Handler struct {
	service announcement.Service
}

func NewHandler(service announcement.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListAnnouncementsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	filter := announcement.Filter{
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}

	resp := make([]AnnouncementResponse, len(items))
	for i, a := range items {
		resp[i] = NewAnnouncementResponse(a)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(resp, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var byID request.ByIDRequest
	if err := c.ShouldBindUri(&byID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), byID.ID)
	if err != nil {
		if errors.Is(err, announcement.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get notification"})
		return
	}

	c.JSON(http.StatusOK, NewAnnouncementResponse(a))
}

// Create publishes a notification to the feed. Admin only.
func (h *Handler) Create(c *gin.Context) {
	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	a, err := h.service.Create(c.Request.Context(), announcement.CreateRequest{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: auth.GetUserID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, announcement.ErrTitleRequired),
			errors.Is(err, announcement.ErrContentRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create notification"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewAnnouncementResponse(a))
}

// Delete removes a notification. Admin only.
func (h *Handler) Delete(c *gin.Context) {
	var byID request.ByIDRequest
	if err := c.ShouldBindUri(&byID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), byID.ID); err != nil {
		if errors.Is(err, announcement.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete notification"})
		return
	}

	c.Status(http.StatusNoContent)
}
