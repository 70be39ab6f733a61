package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrDuplicateName    = errors.New("a resource with this name already exists")
)

// Period is a school shift. The set is fixed; the slots inside a shift are
// configurable.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

// Periods lists all shifts in display order.
var Periods = []Period{PeriodMorning, PeriodAfternoon, PeriodEvening}

// ParsePeriod validates a raw string as a Period.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodMorning, PeriodAfternoon, PeriodEvening:
		return Period(s), nil
	}
	return "", fmt.Errorf("invalid period %q", s)
}

// Resource represents a bookable unit (e.g. meeting room, projector A).
// The set is data, not code: admins manage the catalog and the booking
// engine counts only active entries.
type Resource struct {
	ID        string
	Name      string
	Kind      string // room, projector, lab
	Active    bool
	CreatedAt time.Time
}
