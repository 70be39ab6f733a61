package announcement

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("notification not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
)

// Announcement is one entry in the school-wide notifications feed.
type Announcement struct {
	ID         string
	Title      string
	Content    string
	AuthorID   string
	AuthorName string
	CreatedAt  time.Time
}

// Filter defines parameters for listing announcements.
type Filter struct {
	Keyword  string
	Page     int
	PageSize int
}
