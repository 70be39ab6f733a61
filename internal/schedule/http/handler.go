package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/escolafm/portal-backend/internal/pkg/request"
	"github.com/escolafm/portal-backend/internal/schedule"
)

type Handler struct {
	service schedule.Service
}

func NewHandler(service schedule.Service) *Handler {
	return &Handler{service: service}
}

// List returns the resource catalog. Pass active_only=true to restrict to
// resources the booking engine counts.
func (h *Handler) List(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active_only", "false"))

	resources, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list resources"})
		return
	}

	items := make([]ResourceResponse, len(resources))
	for i, r := range resources {
		items[i] = NewResourceResponse(r)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create adds a resource to the catalog. Admin only.
func (h *Handler) Create(c *gin.Context) {
	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	res, err := h.service.Create(c.Request.Context(), schedule.CreateResourceRequest{
		Name: req.Name,
		Kind: req.Kind,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, schedule.ErrDuplicateName):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create resource"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewResourceResponse(res))
}

// Update renames or deactivates a resource. Admin only. Deactivating keeps
// historical bookings intact but removes the resource from availability.
func (h *Handler) Update(c *gin.Context) {
	var byID request.ByIDRequest
	if err := c.ShouldBindUri(&byID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	res, err := h.service.Update(c.Request.Context(), byID.ID, schedule.UpdateResourceRequest{
		Name:   req.Name,
		Kind:   req.Kind,
		Active: req.Active,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
		case errors.Is(err, schedule.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, schedule.ErrDuplicateName):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update resource"})
		}
		return
	}

	c.JSON(http.StatusOK, NewResourceResponse(res))
}
