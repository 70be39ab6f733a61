package booking

import (
	"context"
	"errors"
	"time"

	"github.com/escolafm/portal-backend/internal/schedule"
)

type CreateRequest struct {
	UserID     string
	Date       time.Time
	Period     schedule.Period
	ClassSlot  int
	ResourceID string
}

// Service mediates booking creation and deletion against the database
// with authorization and conflict enforcement. A booking is created only
// after the two-step selection (class slot, then resource) passes the
// engine's availability check; the database unique index remains the
// authoritative serialization point for concurrent actors.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*Booking, error)
	ListDay(ctx context.Context, date time.Time, period schedule.Period) ([]*Booking, error)
	Delete(ctx context.Context, id string, deleterUserID string, isAdmin bool) error
}

type service struct {
	repo       Repository
	resService schedule.Service
	engine     *Engine
	feed       *Feed
	classSlots int
}

func NewService(repo Repository, resService schedule.Service, engine *Engine, feed *Feed, classSlots int) Service {
	return &service{
		repo:       repo,
		resService: resService,
		engine:     engine,
		feed:       feed,
		classSlots: classSlots,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. No booking without identity
	if req.UserID == "" {
		return nil, ErrUnauthenticated
	}

	// 2. Validate the tuple
	if _, err := schedule.ParsePeriod(string(req.Period)); err != nil {
		return nil, ErrInvalidPeriod
	}
	if req.ClassSlot < 1 || req.ClassSlot > s.classSlots {
		return nil, ErrInvalidClassSlot
	}

	res, err := s.resService.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, schedule.ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	if !res.Active {
		return nil, ErrResourceInactive
	}

	date := NormalizeDate(req.Date)

	// 3. Fast-fail against the cache before touching the database. The
	// unique index still decides races the cache cannot see.
	if !s.engine.ResourceAvailable(date, req.Period, req.ClassSlot, req.ResourceID) {
		return nil, ErrSlotTaken
	}

	b := &Booking{
		Date:       date,
		Period:     req.Period,
		ClassSlot:  req.ClassSlot,
		ResourceID: req.ResourceID,
		OwnerID:    req.UserID,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		// ErrSlotTaken here means a concurrent actor won the slot
		// between our cache check and the insert; the caller reselects.
		return nil, err
	}

	// Fetch the joined row for owner and resource display fields.
	created, err := s.repo.GetByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	s.feed.Publish(Event{Type: EventCreated, BookingID: created.ID})

	return created, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListRange(ctx context.Context, from, to time.Time) ([]*Booking, error) {
	return s.repo.ListRange(ctx, NormalizeDate(from), NormalizeDate(to))
}

func (s *service) ListDay(ctx context.Context, date time.Time, period schedule.Period) ([]*Booking, error) {
	return s.repo.ListDay(ctx, NormalizeDate(date), period)
}

func (s *service) Delete(ctx context.Context, id string, deleterUserID string, isAdmin bool) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Only the owner or an admin may delete; rejected deletes have no
	// side effects.
	if b.OwnerID != deleterUserID && !isAdmin {
		return ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.feed.Publish(Event{Type: EventDeleted, BookingID: id})

	return nil
}
