package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolafm/portal-backend/internal/auth"
	"github.com/escolafm/portal-backend/internal/material"
	"github.com/escolafm/portal-backend/internal/pkg/request"
	"github.com/escolafm/portal-backend/internal/user"
)

// maxUploadSize caps material uploads at 25 MB.
const maxUploadSize = 25 << 20

type Handler struct {
	service     material.Service
	userService user.Service
}

func NewHandler(service material.Service, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
	}
}

func (h *Handler) checkIsAdmin(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsAdmin
}

func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}

	items := make([]CategoryResponse, len(cats))
	for i, cat := range cats {
		items[i] = NewCategoryResponse(cat)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateCategory adds a category. Admin only.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, material.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, material.ErrNameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create category"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewCategoryResponse(cat))
}

// DeleteCategory removes an empty category. Admin only.
func (h *Handler) DeleteCategory(c *gin.Context) {
	var byID request.ByIDRequest
	if err := c.ShouldBindUri(&byID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), byID.ID); err != nil {
		switch {
		case errors.Is(err, material.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		case errors.Is(err, material.ErrCategoryInUse):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete category"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ListByCategory returns the materials of one category.
func (h *Handler) ListByCategory(c *gin.Context) {
	var byID request.ByIDRequest
	if err := c.ShouldBindUri(&byID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	items, err := h.service.ListByCategory(c.Request.Context(), byID.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list materials"})
		return
	}

	resp := make([]MaterialResponse, len(items))
	for i, m := range items {
		resp[i] = NewMaterialResponse(m)
	}
	c.JSON(http.StatusOK, gin.H{"items": resp})
}

// Upload stores a new material file under a category.
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	categoryID := c.PostForm("category_id")
	title := c.PostForm("title")

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	m, err := h.service.Upload(c.Request.Context(), categoryID, title, header, auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, material.ErrTitleRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, material.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload material"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewMaterialResponse(m))
}

// Download streams the stored file.
func (h *Handler) Download(c *gin.Context) {
	var byID request.ByIDRequest
	if err := c.ShouldBindUri(&byID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rc, m, err := h.service.Download(c.Request.Context(), byID.ID)
	if err != nil {
		if errors.Is(err, material.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "material not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to download material"})
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", m.FileName))
	c.DataFromReader(http.StatusOK, m.Size, m.ContentType, rc, nil)
}

// Delete removes a material. Uploader or admin only.
func (h *Handler) Delete(c *gin.Context) {
	var byID request.ByIDRequest
	if err := c.ShouldBindUri(&byID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	userID := auth.GetUserID(c)
	isAdmin := h.checkIsAdmin(c, userID)

	if err := h.service.Delete(c.Request.Context(), byID.ID, userID, isAdmin); err != nil {
		switch {
		case errors.Is(err, material.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "material not found"})
		case errors.Is(err, material.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete material"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
