package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolafm/portal-backend/internal/auth"
)

type fakeRepository struct {
	seq   int
	byID  map[string]*User
	email map[string]string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:  make(map[string]*User),
		email: make(map[string]string),
	}
}

func (r *fakeRepository) Create(_ context.Context, u *User) error {
	if _, ok := r.email[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now().UTC()
	stored := *u
	r.byID[u.ID] = &stored
	r.email[u.Email] = u.ID
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	id, ok := r.email[email]
	if !ok {
		return nil, ErrNotFound
	}
	return r.GetByID(context.Background(), id)
}

func (r *fakeRepository) List(_ context.Context, filter Filter) ([]*User, int, error) {
	out := make([]*User, 0, len(r.byID))
	for _, u := range r.byID {
		if filter.Status != "" && u.Status != filter.Status {
			continue
		}
		copied := *u
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (r *fakeRepository) UpdateStatus(_ context.Context, id string, status Status) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Status = status
	return nil
}

func (r *fakeRepository) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	// Low cost keeps the hashing fast in tests.
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4)), repo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("signup starts pending", func(t *testing.T) {
		svc, _ := newTestService()

		u, err := svc.Register(ctx, RegisterRequest{
			Email:    "Maria@Escola.com ",
			Password: "super-secret",
			Name:     "Maria Silva",
			Role:     "Professor",
		})
		require.NoError(t, err)

		assert.Equal(t, "maria@escola.com", u.Email)
		assert.Equal(t, StatusPending, u.Status)
		assert.False(t, u.IsAdmin)
		assert.NotEqual(t, "super-secret", u.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newTestService()

		req := RegisterRequest{Email: "joao@escola.com", Password: "super-secret", Name: "João", Role: "Professor"}
		_, err := svc.Register(ctx, req)
		require.NoError(t, err)

		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("validation", func(t *testing.T) {
		svc, _ := newTestService()

		cases := []struct {
			name string
			req  RegisterRequest
		}{
			{"missing email", RegisterRequest{Password: "super-secret", Name: "Ana"}},
			{"short password", RegisterRequest{Email: "ana@escola.com", Password: "short", Name: "Ana"}},
			{"missing name", RegisterRequest{Email: "ana@escola.com", Password: "super-secret", Name: "   "}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Register(ctx, tc.req)
				assert.Error(t, err)
			})
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc Service) *User {
		t.Helper()
		u, err := svc.Register(ctx, RegisterRequest{
			Email:    "carla@escola.com",
			Password: "super-secret",
			Name:     "Carla",
			Role:     "Coordenadora",
		})
		require.NoError(t, err)
		return u
	}

	t.Run("pending account may still log in", func(t *testing.T) {
		svc, repo := newTestService()
		register(t, svc)

		u, err := svc.Login(ctx, "carla@escola.com", "super-secret")
		require.NoError(t, err)
		assert.Equal(t, StatusPending, u.Status)

		stored, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newTestService()
		register(t, svc)

		_, err := svc.Login(ctx, "carla@escola.com", "wrong-secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to the same error", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Login(ctx, "nobody@escola.com", "super-secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("approve and reject", func(t *testing.T) {
		svc, _ := newTestService()
		u, err := svc.Register(ctx, RegisterRequest{
			Email: "pedro@escola.com", Password: "super-secret", Name: "Pedro", Role: "Professor",
		})
		require.NoError(t, err)

		approved, err := svc.SetStatus(ctx, u.ID, StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, approved.Status)

		rejected, err := svc.SetStatus(ctx, u.ID, StatusRejected)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, rejected.Status)
	})

	t.Run("pending is not a reviewable decision", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.SetStatus(ctx, "user-1", StatusPending)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.SetStatus(ctx, "missing", StatusApproved)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
