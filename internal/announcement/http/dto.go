package http

import (
	"time"

	"github.com/escolafm/portal-backend/internal/announcement"
	"github.com/escolafm/portal-backend/internal/pkg/request"
)

type ListAnnouncementsRequest struct {
	request.ListParams
	Keyword string `form:"keyword"`
}

type AnnouncementResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewAnnouncementResponse(a *announcement.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:         a.ID,
		Title:      a.Title,
		Content:    a.Content,
		AuthorID:   a.AuthorID,
		AuthorName: a.AuthorName,
		CreatedAt:  a.CreatedAt,
	}
}

type CreateAnnouncementRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}
