package material

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolafm/portal-backend/internal/pkg/storage"
)

type fakeRepository struct {
	seq        int
	categories map[string]*Category
	materials  map[string]*Material

	createErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		categories: make(map[string]*Category),
		materials:  make(map[string]*Material),
	}
}

func (r *fakeRepository) CreateCategory(_ context.Context, cat *Category) error {
	r.seq++
	cat.ID = fmt.Sprintf("cat-%d", r.seq)
	cat.CreatedAt = time.Now().UTC()
	stored := *cat
	r.categories[cat.ID] = &stored
	return nil
}

func (r *fakeRepository) ListCategories(_ context.Context) ([]*Category, error) {
	out := make([]*Category, 0, len(r.categories))
	for _, cat := range r.categories {
		copied := *cat
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRepository) DeleteCategory(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return ErrCategoryNotFound
	}
	for _, m := range r.materials {
		if m.CategoryID == id {
			return ErrCategoryInUse
		}
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeRepository) Create(_ context.Context, m *Material) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	m.ID = fmt.Sprintf("mat-%d", r.seq)
	m.CreatedAt = time.Now().UTC()
	stored := *m
	stored.UploaderName = "Maria"
	r.materials[m.ID] = &stored
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Material, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeRepository) ListByCategory(_ context.Context, categoryID string) ([]*Material, error) {
	out := make([]*Material, 0)
	for _, m := range r.materials {
		if m.CategoryID == categoryID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.materials[id]; !ok {
		return ErrNotFound
	}
	delete(r.materials, id)
	return nil
}

// spyStorage records the paths written and removed.
type spyStorage struct {
	storage.Storage
	saved   []string
	deleted []string
}

func (s *spyStorage) Save(ctx context.Context, path string, content io.Reader) error {
	if err := s.Storage.Save(ctx, path, content); err != nil {
		return err
	}
	s.saved = append(s.saved, path)
	return nil
}

func (s *spyStorage) Delete(ctx context.Context, path string) error {
	if err := s.Storage.Delete(ctx, path); err != nil {
		return err
	}
	s.deleted = append(s.deleted, path)
	return nil
}

// fileHeader builds a real multipart.FileHeader the way gin hands it to
// the handler.
func fileHeader(t *testing.T, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {fmt.Sprintf(`form-data; name="file"; filename=%q`, name)},
		"Content-Type":        {contentType},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func newTestService(t *testing.T) (Service, *fakeRepository, storage.Storage) {
	t.Helper()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	repo := newFakeRepository()
	return NewService(repo, store), repo, store
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("pdf has no thumbnail", func(t *testing.T) {
		svc, _, store := newTestService(t)

		header := fileHeader(t, "prova.pdf", "application/pdf", []byte("%PDF-1.4 fake"))
		m, err := svc.Upload(ctx, "cat-1", "Prova de matemática", header, "user-1")
		require.NoError(t, err)

		assert.Equal(t, "prova.pdf", m.FileName)
		assert.Equal(t, "application/pdf", m.ContentType)
		assert.Nil(t, m.ThumbnailPath)
		assert.Equal(t, "Maria", m.UploaderName)

		rc, err := store.Get(ctx, m.StoragePath)
		require.NoError(t, err)
		defer rc.Close()
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4 fake"), content)
	})

	t.Run("image gets a thumbnail", func(t *testing.T) {
		svc, _, store := newTestService(t)

		header := fileHeader(t, "mapa.jpg", "image/jpeg", jpegBytes(t))
		m, err := svc.Upload(ctx, "cat-1", "Mapa mundi", header, "user-1")
		require.NoError(t, err)

		require.NotNil(t, m.ThumbnailPath)
		rc, err := store.Get(ctx, *m.ThumbnailPath)
		require.NoError(t, err)
		rc.Close()
	})

	t.Run("empty title rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		header := fileHeader(t, "prova.pdf", "application/pdf", []byte("x"))
		_, err := svc.Upload(ctx, "cat-1", "   ", header, "user-1")
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("record failure rolls the stored file back", func(t *testing.T) {
		store, err := storage.NewLocalStorage(t.TempDir())
		require.NoError(t, err)
		spy := &spyStorage{Storage: store}

		repo := newFakeRepository()
		repo.createErr = ErrCategoryNotFound
		svc := NewService(repo, spy)

		header := fileHeader(t, "prova.pdf", "application/pdf", []byte("x"))
		_, err = svc.Upload(ctx, "cat-missing", "Prova", header, "user-1")
		require.ErrorIs(t, err, ErrCategoryNotFound)

		// Everything saved before the failure must be removed again.
		require.NotEmpty(t, spy.saved)
		assert.ElementsMatch(t, spy.saved, spy.deleted)
	})
}

func TestDownload(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	header := fileHeader(t, "apostila.pdf", "application/pdf", []byte("conteúdo"))
	m, err := svc.Upload(ctx, "cat-1", "Apostila", header, "user-1")
	require.NoError(t, err)

	rc, got, err := svc.Download(ctx, m.ID)
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, m.ID, got.ID)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("conteúdo"), content)

	_, _, err = svc.Download(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMaterial(t *testing.T) {
	ctx := context.Background()

	upload := func(t *testing.T, svc Service) *Material {
		t.Helper()
		header := fileHeader(t, "prova.pdf", "application/pdf", []byte("x"))
		m, err := svc.Upload(ctx, "cat-1", "Prova", header, "user-1")
		require.NoError(t, err)
		return m
	}

	t.Run("uploader may delete", func(t *testing.T) {
		svc, _, store := newTestService(t)
		m := upload(t, svc)

		require.NoError(t, svc.Delete(ctx, m.ID, "user-1", false))

		_, err := svc.GetByID(ctx, m.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = store.Get(ctx, m.StoragePath)
		assert.Error(t, err)
	})

	t.Run("admin may delete", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		m := upload(t, svc)

		assert.NoError(t, svc.Delete(ctx, m.ID, "admin-1", true))
	})

	t.Run("someone else may not", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		m := upload(t, svc)

		err := svc.Delete(ctx, m.ID, "user-2", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		_, err = svc.GetByID(ctx, m.ID)
		assert.NoError(t, err)
	})
}

func TestCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("create and list", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		cat, err := svc.CreateCategory(ctx, "  Matemática  ")
		require.NoError(t, err)
		assert.Equal(t, "Matemática", cat.Name)

		cats, err := svc.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, cats, 1)
	})

	t.Run("empty name", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.CreateCategory(ctx, "   ")
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("category with materials cannot be deleted", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		cat, err := svc.CreateCategory(ctx, "História")
		require.NoError(t, err)

		header := fileHeader(t, "resumo.pdf", "application/pdf", []byte("x"))
		_, err = svc.Upload(ctx, cat.ID, "Resumo", header, "user-1")
		require.NoError(t, err)

		assert.ErrorIs(t, svc.DeleteCategory(ctx, cat.ID), ErrCategoryInUse)
	})
}
