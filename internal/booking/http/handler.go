package http

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/escolafm/portal-backend/internal/auth"
	"github.com/escolafm/portal-backend/internal/booking"
	"github.com/escolafm/portal-backend/internal/pkg/request"
	"github.com/escolafm/portal-backend/internal/pkg/response"
	"github.com/escolafm/portal-backend/internal/schedule"
	"github.com/escolafm/portal-backend/internal/user"
)

type Handler struct {
	service     booking.Service
	engine      *booking.Engine
	feed        *booking.Feed
	userService user.Service
}

func NewHandler(service booking.Service, engine *booking.Engine, feed *booking.Feed, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		engine:      engine,
		feed:        feed,
		userService: userService,
	}
}

// checkIsAdmin helper checks if the current user holds admin privilege.
func (h *Handler) checkIsAdmin(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsAdmin
}

// List returns all bookings in a date range for the calendar view.
func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	from, _ := time.Parse(booking.DateLayout, req.From)
	to, _ := time.Parse(booking.DateLayout, req.To)
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return
	}

	bookings, err := h.service.ListRange(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Day returns the bookings for one (date, period) pair.
func (h *Handler) Day(c *gin.Context) {
	var req DayRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	date, _ := time.Parse(booking.DateLayout, req.Date)

	bookings, err := h.service.ListDay(c.Request.Context(), date, schedule.Period(req.Period))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Availability answers from the engine's cache: density for the day plus
// the per-slot grid the selection dialog renders.
func (h *Handler) Availability(c *gin.Context) {
	var req DayRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	date, _ := time.Parse(booking.DateLayout, req.Date)
	period := schedule.Period(req.Period)

	grid := h.engine.DayGrid(date, period)
	slots := make([]SlotResponse, len(grid))
	for i, s := range grid {
		bookings := make([]BookingResponse, len(s.Bookings))
		for j, b := range s.Bookings {
			bookings[j] = NewBookingResponse(b)
		}
		slots[i] = SlotResponse{
			ClassSlot: s.ClassSlot,
			Available: s.Available,
			Bookings:  bookings,
		}
	}

	c.JSON(http.StatusOK, AvailabilityResponse{
		Date:    req.Date,
		Period:  req.Period,
		Density: string(h.engine.DayDensity(date, period)),
		Slots:   slots,
	})
}

// Create books a resource for a class slot.
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date, _ := time.Parse(booking.DateLayout, req.Date)

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:     userID,
		Date:       date,
		Period:     schedule.Period(req.Period),
		ClassSlot:  req.ClassSlot,
		ResourceID: req.ResourceID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// Delete removes a booking. Owner or admin only.
func (h *Handler) Delete(c *gin.Context) {
	var byID request.ByIDRequest
	if err := c.ShouldBindUri(&byID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	userID := auth.GetUserID(c)
	isAdmin := h.checkIsAdmin(c, userID)

	if err := h.service.Delete(c.Request.Context(), byID.ID, userID, isAdmin); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Events streams change-feed notifications over SSE so concurrent clients
// know to refetch. The subscription is released when the client
// disconnects.
func (h *Handler) Events(c *gin.Context) {
	events := make(chan booking.Event, 16)
	unsubscribe := h.feed.Subscribe(func(ev booking.Event) {
		select {
		case events <- ev:
		default:
			// Slow client; it will catch up on its next refetch.
		}
	})
	defer unsubscribe()

	c.Writer.Header().Set("Cache-Control", "no-cache")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev := <-events:
			c.SSEvent("change", gin.H{
				"type":       string(ev.Type),
				"booking_id": ev.BookingID,
			})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
