package material

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/escolafm/portal-backend/internal/pkg/storage"
)

type Service interface {
	CreateCategory(ctx context.Context, name string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	DeleteCategory(ctx context.Context, id string) error

	Upload(ctx context.Context, categoryID, title string, header *multipart.FileHeader, uploaderID string) (*Material, error)
	GetByID(ctx context.Context, id string) (*Material, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*Material, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Material, error)
	Delete(ctx context.Context, id string, deleterUserID string, isAdmin bool) error
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (s *service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	cat := &Category{Name: name}
	if err := s.repo.CreateCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *service) Upload(ctx context.Context, categoryID, title string, header *multipart.FileHeader, uploaderID string) (*Material, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffer the content so it can be read twice when a thumbnail is
	// generated. Uploads are study materials, small enough for memory.
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(header.Filename))

	fileID := uuid.New().String()
	shard := fileID[:2]
	storagePath := fmt.Sprintf("materials/%s/%s%s", shard, fileID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save file to storage: %w", err)
	}

	var thumbnailPath *string
	if strings.HasPrefix(contentType, "image/") {
		thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), 200, 200)
		if err == nil {
			tPath := fmt.Sprintf("materials/%s/%s_thumb.jpg", shard, fileID)
			if err := s.storage.Save(ctx, tPath, thumbReader); err == nil {
				thumbnailPath = &tPath
			}
		}
		// A failed thumbnail never blocks the upload.
	}

	m := &Material{
		CategoryID:    categoryID,
		Title:         strings.TrimSpace(title),
		FileName:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
		UploaderID:    uploaderID,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		// Roll back the stored file; the record is the source of truth.
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return s.repo.GetByID(ctx, m.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Material, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByCategory(ctx context.Context, categoryID string) ([]*Material, error) {
	return s.repo.ListByCategory(ctx, categoryID)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Material, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.storage.Get(ctx, m.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return rc, m, nil
}

func (s *service) Delete(ctx context.Context, id string, deleterUserID string, isAdmin bool) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if m.UploaderID != deleterUserID && !isAdmin {
		return ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Remove files after the record; leftover files are harmless, a
	// dangling record is not.
	_ = s.storage.Delete(ctx, m.StoragePath)
	if m.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *m.ThumbnailPath)
	}

	return nil
}
