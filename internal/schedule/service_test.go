package schedule

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	seq  int
	byID map[string]*Resource
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: make(map[string]*Resource)}
}

func (r *fakeRepository) Create(_ context.Context, res *Resource) error {
	for _, existing := range r.byID {
		if existing.Name == res.Name {
			return ErrDuplicateName
		}
	}
	r.seq++
	res.ID = fmt.Sprintf("res-%d", r.seq)
	stored := *res
	r.byID[res.ID] = &stored
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Resource, error) {
	res, ok := r.byID[id]
	if !ok {
		return nil, ErrResourceNotFound
	}
	copied := *res
	return &copied, nil
}

func (r *fakeRepository) List(_ context.Context, activeOnly bool) ([]*Resource, error) {
	out := make([]*Resource, 0, len(r.byID))
	for _, res := range r.byID {
		if activeOnly && !res.Active {
			continue
		}
		copied := *res
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRepository) Update(_ context.Context, res *Resource) error {
	if _, ok := r.byID[res.ID]; !ok {
		return ErrResourceNotFound
	}
	stored := *res
	r.byID[res.ID] = &stored
	return nil
}

func (r *fakeRepository) CountActive(_ context.Context) (int, error) {
	count := 0
	for _, res := range r.byID {
		if res.Active {
			count++
		}
	}
	return count, nil
}

func TestResourceService(t *testing.T) {
	ctx := context.Background()

	t.Run("create trims and activates", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		res, err := svc.Create(ctx, CreateResourceRequest{Name: "  Sala 1  ", Kind: "room"})
		require.NoError(t, err)
		assert.Equal(t, "Sala 1", res.Name)
		assert.True(t, res.Active)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		_, err := svc.Create(ctx, CreateResourceRequest{Name: "   ", Kind: "room"})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		_, err := svc.Create(ctx, CreateResourceRequest{Name: "Projetor", Kind: "projector"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateResourceRequest{Name: "Projetor", Kind: "projector"})
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("deactivation shrinks the active count", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo)

		a, err := svc.Create(ctx, CreateResourceRequest{Name: "Sala 1", Kind: "room"})
		require.NoError(t, err)
		_, err = svc.Create(ctx, CreateResourceRequest{Name: "Sala 2", Kind: "room"})
		require.NoError(t, err)

		count, err := svc.CountActive(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, count)

		inactive := false
		_, err = svc.Update(ctx, a.ID, UpdateResourceRequest{Active: &inactive})
		require.NoError(t, err)

		count, err = svc.CountActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		active, err := svc.List(ctx, true)
		require.NoError(t, err)
		assert.Len(t, active, 1)
	})

	t.Run("update unknown resource", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		name := "Sala X"
		_, err := svc.Update(ctx, "missing", UpdateResourceRequest{Name: &name})
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})
}
