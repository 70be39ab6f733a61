package booking

import (
	"net/http"
	"time"

	"github.com/escolafm/portal-backend/internal/pkg/apperror"
	"github.com/escolafm/portal-backend/internal/schedule"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrSlotTaken        = apperror.New(http.StatusConflict, "slot no longer available")
	ErrUnauthenticated  = apperror.New(http.StatusUnauthorized, "sign in to create a booking")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidPeriod    = apperror.New(http.StatusBadRequest, "invalid period")
	ErrInvalidClassSlot = apperror.New(http.StatusBadRequest, "class slot out of range")
	ErrResourceNotFound = apperror.New(http.StatusNotFound, "resource not found")
	ErrResourceInactive = apperror.New(http.StatusBadRequest, "resource is not bookable")
)

// DateLayout is the normalized calendar-day form used everywhere a booking
// date is compared. Comparing formatted days avoids time-of-day and zone
// drift between clients.
const DateLayout = "2006-01-02"

// Booking reserves one resource for one class slot of one shift on one day.
// A booking has no status: it either exists or it does not, and changes are
// delete plus recreate.
type Booking struct {
	ID           string
	Date         time.Time // day precision, stored at UTC midnight
	Period       schedule.Period
	ClassSlot    int
	ResourceID   string
	ResourceName string
	OwnerID      string
	OwnerName    string
	OwnerRole    string
	CreatedAt    time.Time
}

// DayKey returns the booking's date in normalized calendar-day form.
func (b *Booking) DayKey() string {
	return b.Date.Format(DateLayout)
}

// NormalizeDate strips the time component, keeping only the calendar day
// in UTC.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Density classifies how occupied a (date, period) pair is. The calendar
// uses it to shade days; Full days must not open the selection dialog.
type Density string

const (
	DensityNone   Density = "none"
	DensityLow    Density = "low"
	DensityMedium Density = "medium"
	DensityHigh   Density = "high"
	DensityFull   Density = "full"
)
