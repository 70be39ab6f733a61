package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/escolafm/portal-backend/internal/schedule"
)

// fakeRepository is an in-memory Repository that enforces the same
// mutual-exclusion rule as the database unique index.
type fakeRepository struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*Booking

	listErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bookings: make(map[string]*Booking)}
}

func (r *fakeRepository) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.DayKey() == b.DayKey() &&
			existing.Period == b.Period &&
			existing.ClassSlot == b.ClassSlot &&
			existing.ResourceID == b.ResourceID {
			return ErrSlotTaken
		}
	}

	r.seq++
	stored := *b
	stored.ID = fmt.Sprintf("booking-%d", r.seq)
	stored.CreatedAt = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC).Add(time.Duration(r.seq) * time.Second)
	r.bookings[stored.ID] = &stored

	b.ID = stored.ID
	b.CreatedAt = stored.CreatedAt
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeRepository) ListAll(_ context.Context) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return nil, r.listErr
	}

	out := make([]*Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRepository) ListRange(_ context.Context, from, to time.Time) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Booking, 0)
	for _, b := range r.bookings {
		if !b.Date.Before(from) && !b.Date.After(to) {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListDay(_ context.Context, date time.Time, period schedule.Period) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := date.Format(DateLayout)
	out := make([]*Booking, 0)
	for _, b := range r.bookings {
		if b.DayKey() == day && b.Period == period {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeScheduleService serves a fixed resource catalog.
type fakeScheduleService struct {
	resources map[string]*schedule.Resource
}

func newFakeScheduleService(active int) *fakeScheduleService {
	s := &fakeScheduleService{resources: make(map[string]*schedule.Resource)}
	for i := 1; i <= active; i++ {
		id := fmt.Sprintf("res-%d", i)
		s.resources[id] = &schedule.Resource{
			ID:     id,
			Name:   fmt.Sprintf("Sala %d", i),
			Kind:   "room",
			Active: true,
		}
	}
	return s
}

func (s *fakeScheduleService) Create(context.Context, schedule.CreateResourceRequest) (*schedule.Resource, error) {
	panic("not used in tests")
}

func (s *fakeScheduleService) GetByID(_ context.Context, id string) (*schedule.Resource, error) {
	res, ok := s.resources[id]
	if !ok {
		return nil, schedule.ErrResourceNotFound
	}
	return res, nil
}

func (s *fakeScheduleService) List(_ context.Context, activeOnly bool) ([]*schedule.Resource, error) {
	out := make([]*schedule.Resource, 0, len(s.resources))
	for _, res := range s.resources {
		if activeOnly && !res.Active {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (s *fakeScheduleService) Update(context.Context, string, schedule.UpdateResourceRequest) (*schedule.Resource, error) {
	panic("not used in tests")
}

func (s *fakeScheduleService) CountActive(context.Context) (int, error) {
	count := 0
	for _, res := range s.resources {
		if res.Active {
			count++
		}
	}
	return count, nil
}
