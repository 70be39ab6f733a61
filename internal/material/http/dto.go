package http

import (
	"time"

	"github.com/escolafm/portal-backend/internal/material"
)

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCategoryResponse(c *material.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type MaterialResponse struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category_id"`
	Title        string    `json:"title"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	HasThumbnail bool      `json:"has_thumbnail"`
	UploaderID   string    `json:"uploader_id"`
	UploaderName string    `json:"uploader_name"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewMaterialResponse(m *material.Material) MaterialResponse {
	return MaterialResponse{
		ID:           m.ID,
		CategoryID:   m.CategoryID,
		Title:        m.Title,
		FileName:     m.FileName,
		ContentType:  m.ContentType,
		Size:         m.Size,
		HasThumbnail: m.ThumbnailPath != nil,
		UploaderID:   m.UploaderID,
		UploaderName: m.UploaderName,
		CreatedAt:    m.CreatedAt,
	}
}
