package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/escolafm/portal-backend/internal/schedule"
)

// EngineConfig fixes the schedule shape the engine classifies against.
// The thresholds are tied to the class-slot count (one and two
// shift-widths) and arrive precomputed from configuration.
type EngineConfig struct {
	ClassSlots      int
	LowThreshold    int
	MediumThreshold int
}

// Engine is the availability and conflict-resolution core. It holds the
// in-memory cache of the booking set and answers every availability
// question the calendar needs; handlers never compute availability
// themselves.
//
// The cache is reconciled by full refetch: every change-feed event causes
// a reload, and a reload replaces the whole map keyed by booking id, so
// replaying an event or applying the same snapshot twice is a no-op.
type Engine struct {
	cfg       EngineConfig
	repo      Repository
	resources schedule.Service
	log       *zap.Logger

	mu              sync.RWMutex
	cache           map[string]*Booking
	activeResources int

	unsubscribe func()
}

func NewEngine(cfg EngineConfig, repo Repository, resources schedule.Service, log *zap.Logger) *Engine {
	return &Engine{
		cfg:       cfg,
		repo:      repo,
		resources: resources,
		log:       log,
		cache:     make(map[string]*Booking),
	}
}

// Start performs the initial full fetch and subscribes to the change feed.
// Stop must be called to release the subscription.
func (e *Engine) Start(ctx context.Context, feed *Feed) error {
	if err := e.Reload(ctx); err != nil {
		return fmt.Errorf("initial booking fetch failed: %w", err)
	}

	e.unsubscribe = feed.Subscribe(func(ev Event) {
		// Full refetch on any event rather than incremental patching.
		reloadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Reload(reloadCtx); err != nil {
			e.log.Warn("booking cache reload failed",
				zap.String("event", string(ev.Type)),
				zap.Error(err))
		}
	})

	return nil
}

// Stop releases the change-feed subscription.
func (e *Engine) Stop() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

// Reload fetches the full booking set and the active resource count, then
// swaps the cache. On any error the current cache is left untouched.
func (e *Engine) Reload(ctx context.Context) error {
	bookings, err := e.repo.ListAll(ctx)
	if err != nil {
		return err
	}

	count, err := e.resources.CountActive(ctx)
	if err != nil {
		return err
	}

	fresh := make(map[string]*Booking, len(bookings))
	for _, b := range bookings {
		fresh[b.ID] = b
	}

	e.mu.Lock()
	e.cache = fresh
	e.activeResources = count
	e.mu.Unlock()

	return nil
}

// ResourceAvailable reports whether the exact (date, period, slot,
// resource) tuple is free in the cached booking set. Dates are compared as
// normalized calendar-day strings.
func (e *Engine) ResourceAvailable(date time.Time, period schedule.Period, classSlot int, resourceID string) bool {
	day := date.Format(DateLayout)

	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, b := range e.cache {
		if b.DayKey() == day && b.Period == period && b.ClassSlot == classSlot && b.ResourceID == resourceID {
			return false
		}
	}
	return true
}

// SlotAvailable reports whether at least one resource is still free for
// the class slot on (date, period). This is a cardinality check; which
// resource remains is resolved by ResourceAvailable at selection time.
func (e *Engine) SlotAvailable(date time.Time, period schedule.Period, classSlot int) bool {
	day := date.Format(DateLayout)

	e.mu.RLock()
	defer e.mu.RUnlock()

	count := 0
	for _, b := range e.cache {
		if b.DayKey() == day && b.Period == period && b.ClassSlot == classSlot {
			count++
		}
	}
	return count < e.activeResources
}

// DayDensity classifies the occupancy of (date, period). Full means every
// slot of every resource is booked and the day must be treated as
// non-selectable for that shift.
func (e *Engine) DayDensity(date time.Time, period schedule.Period) Density {
	day := date.Format(DateLayout)

	e.mu.RLock()
	defer e.mu.RUnlock()

	count := 0
	for _, b := range e.cache {
		if b.DayKey() == day && b.Period == period {
			count++
		}
	}

	capacity := e.cfg.ClassSlots * e.activeResources

	switch {
	case count == 0:
		return DensityNone
	case capacity > 0 && count == capacity:
		return DensityFull
	case count <= e.cfg.LowThreshold:
		return DensityLow
	case count <= e.cfg.MediumThreshold:
		return DensityMedium
	default:
		return DensityHigh
	}
}

// SlotInfo describes one class slot in the availability grid.
type SlotInfo struct {
	ClassSlot int
	Available bool
	Bookings  []*Booking
}

// DayGrid assembles the per-slot availability view the selection dialog
// renders for (date, period). Slots are returned in order 1..N.
func (e *Engine) DayGrid(date time.Time, period schedule.Period) []SlotInfo {
	day := date.Format(DateLayout)

	e.mu.RLock()
	defer e.mu.RUnlock()

	bySlot := make(map[int][]*Booking)
	for _, b := range e.cache {
		if b.DayKey() == day && b.Period == period {
			bySlot[b.ClassSlot] = append(bySlot[b.ClassSlot], b)
		}
	}

	grid := make([]SlotInfo, 0, e.cfg.ClassSlots)
	for slot := 1; slot <= e.cfg.ClassSlots; slot++ {
		booked := bySlot[slot]
		// Map iteration order is random; keep the grid stable.
		sort.Slice(booked, func(i, j int) bool {
			return booked[i].CreatedAt.Before(booked[j].CreatedAt)
		})
		grid = append(grid, SlotInfo{
			ClassSlot: slot,
			Available: len(booked) < e.activeResources,
			Bookings:  booked,
		})
	}
	return grid
}

// Size returns the number of cached bookings.
func (e *Engine) Size() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}
