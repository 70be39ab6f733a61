package http

import (
	"time"

	"github.com/escolafm/portal-backend/internal/schedule"
)

// ResourceResponse is the API shape of a bookable resource.
type ResourceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ResourceTag is a brief representation for embedding in other resources.
type ResourceTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewResourceResponse(r *schedule.Resource) ResourceResponse {
	return ResourceResponse{
		ID:        r.ID,
		Name:      r.Name,
		Kind:      r.Kind,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
	}
}

type CreateResourceRequest struct {
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind" binding:"required,oneof=room projector lab"`
}

type UpdateResourceRequest struct {
	Name   *string `json:"name"`
	Kind   *string `json:"kind" binding:"omitempty,oneof=room projector lab"`
	Active *bool   `json:"active"`
}
