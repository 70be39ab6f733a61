package material

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("material not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category still has materials")
	ErrTitleRequired    = errors.New("title is required")
	ErrNameRequired     = errors.New("name is required")
	ErrNameTaken        = errors.New("a category with this name already exists")
	ErrPermissionDenied = errors.New("permission denied")
)

// Category groups materials (e.g. "Matemática", "História").
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Material is one uploaded study file in the library.
type Material struct {
	ID            string
	CategoryID    string
	Title         string
	FileName      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	UploaderID    string
	UploaderName  string
	CreatedAt     time.Time
}
