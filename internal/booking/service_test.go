package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/escolafm/portal-backend/internal/schedule"
)

func newTestService(t *testing.T) (Service, *fakeRepository, *Engine, *Feed) {
	t.Helper()

	repo := newFakeRepository()
	sched := newFakeScheduleService(5)
	feed := NewFeed()
	engine := NewEngine(testEngineConfig, repo, sched, zap.NewNop())
	require.NoError(t, engine.Start(context.Background(), feed))
	t.Cleanup(engine.Stop)

	return NewService(repo, sched, engine, feed, testEngineConfig.ClassSlots), repo, engine, feed
}

func validCreateRequest() CreateRequest {
	return CreateRequest{
		UserID:     "user-1",
		Date:       time.Date(2026, 3, 9, 14, 30, 0, 0, time.FixedZone("BRT", -3*3600)),
		Period:     schedule.PeriodMorning,
		ClassSlot:  2,
		ResourceID: "res-1",
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success normalizes the date and updates the cache", func(t *testing.T) {
		svc, _, engine, _ := newTestService(t)

		b, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)

		assert.NotEmpty(t, b.ID)
		assert.Equal(t, "2026-03-09", b.DayKey())
		assert.Equal(t, time.UTC, b.Date.Location())

		// The feed event drives a reload, so the cache sees it at once.
		assert.False(t, engine.ResourceAvailable(b.Date, b.Period, b.ClassSlot, b.ResourceID))
		assert.Equal(t, DensityLow, engine.DayDensity(b.Date, b.Period))
	})

	t.Run("requires an authenticated user", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		req := validCreateRequest()
		req.UserID = ""

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("rejects an unknown period", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		req := validCreateRequest()
		req.Period = "night"

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("rejects a class slot out of range", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		for _, slot := range []int{0, -1, 7} {
			req := validCreateRequest()
			req.ClassSlot = slot

			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidClassSlot)
		}
	})

	t.Run("rejects an unknown resource", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		req := validCreateRequest()
		req.ResourceID = "res-99"

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("same tuple twice fails fast from the cache", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)

		req := validCreateRequest()
		req.UserID = "user-2"

		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("race lost at the insert surfaces the conflict", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)

		// A concurrent actor books the tuple behind the engine's back:
		// no feed event, so the cache check passes and the repository's
		// uniqueness rule decides.
		ghost := validCreateRequest()
		require.NoError(t, repo.Create(ctx, &Booking{
			Date:       NormalizeDate(ghost.Date),
			Period:     ghost.Period,
			ClassSlot:  ghost.ClassSlot,
			ResourceID: ghost.ResourceID,
			OwnerID:    "user-2",
		}))

		_, err := svc.Create(ctx, validCreateRequest())
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("different resources share a slot", func(t *testing.T) {
		svc, _, engine, _ := newTestService(t)

		first := validCreateRequest()
		_, err := svc.Create(ctx, first)
		require.NoError(t, err)

		second := validCreateRequest()
		second.UserID = "user-2"
		second.ResourceID = "res-2"
		b, err := svc.Create(ctx, second)
		require.NoError(t, err)

		assert.Equal(t, first.ClassSlot, b.ClassSlot)
		assert.True(t, engine.SlotAvailable(b.Date, b.Period, b.ClassSlot))
	})
}

func TestDeleteBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("owner may delete and the slot reopens", func(t *testing.T) {
		svc, _, engine, _ := newTestService(t)

		b, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)
		require.False(t, engine.ResourceAvailable(b.Date, b.Period, b.ClassSlot, b.ResourceID))

		require.NoError(t, svc.Delete(ctx, b.ID, "user-1", false))

		assert.True(t, engine.ResourceAvailable(b.Date, b.Period, b.ClassSlot, b.ResourceID))
		_, err = svc.GetByID(ctx, b.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("admin may delete someone else's booking", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		b, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)

		assert.NoError(t, svc.Delete(ctx, b.ID, "admin-1", true))
	})

	t.Run("non-owner non-admin is rejected with no side effects", func(t *testing.T) {
		svc, _, engine, _ := newTestService(t)

		b, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)

		err = svc.Delete(ctx, b.ID, "user-2", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		got, err := svc.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
		assert.False(t, engine.ResourceAvailable(b.Date, b.Period, b.ClassSlot, b.ResourceID))
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		err := svc.Delete(ctx, "missing", "user-1", true)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListRangeNormalizesBounds(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	_, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	// Bounds carry a time of day; the day precision must still match.
	from := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)
	to := time.Date(2026, 3, 9, 0, 1, 0, 0, time.UTC)

	got, err := svc.ListRange(ctx, from, to)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
