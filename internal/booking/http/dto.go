package http

import (
	"time"

	"github.com/escolafm/portal-backend/internal/booking"
	schedHttp "github.com/escolafm/portal-backend/internal/schedule/http"
	userHttp "github.com/escolafm/portal-backend/internal/user/http"
)

// ListBookingsRequest defines query parameters for listing bookings over a
// date range.
type ListBookingsRequest struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// DayRequest addresses a single (date, period) pair.
type DayRequest struct {
	Date   string `form:"date" binding:"required,datetime=2006-01-02"`
	Period string `form:"period" binding:"required,oneof=morning afternoon evening"`
}

// BookingResponse is the API shape of a booking, with the owner display
// snapshot and resource joined in.
type BookingResponse struct {
	ID        string                `json:"id"`
	Date      string                `json:"date"`
	Period    string                `json:"period"`
	ClassSlot int                   `json:"class_slot"`
	Resource  schedHttp.ResourceTag `json:"resource"`
	Owner     userHttp.UserTag      `json:"owner"`
	CreatedAt time.Time             `json:"created_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Date:      b.DayKey(),
		Period:    string(b.Period),
		ClassSlot: b.ClassSlot,
		Resource:  schedHttp.ResourceTag{ID: b.ResourceID, Name: b.ResourceName},
		Owner:     userHttp.UserTag{ID: b.OwnerID, Name: b.OwnerName, Role: b.OwnerRole},
		CreatedAt: b.CreatedAt,
	}
}

// CreateBookingRequest defines the payload for creating a booking.
type CreateBookingRequest struct {
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
	Period     string `json:"period" binding:"required,oneof=morning afternoon evening"`
	ClassSlot  int    `json:"class_slot" binding:"required,min=1"`
	ResourceID string `json:"resource_id" binding:"required,uuid"`
}

// SlotResponse is one row of the availability grid.
type SlotResponse struct {
	ClassSlot int               `json:"class_slot"`
	Available bool              `json:"available"`
	Bookings  []BookingResponse `json:"bookings"`
}

// AvailabilityResponse is the full availability answer for (date, period):
// the density classification plus the per-slot grid. A "full" density
// means the client must not open the selection dialog.
type AvailabilityResponse struct {
	Date    string         `json:"date"`
	Period  string         `json:"period"`
	Density string         `json:"density"`
	Slots   []SlotResponse `json:"slots"`
}
