package handler

import (
	"net/http"
	"strconv"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/apperr"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/middleware"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/model"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves booking creation, listing, retrieval and
// status changes.
type BookingHandler struct {
	bookingService service.BookingService
	errorResponder
}

func NewBookingHandler(bookingService service.BookingService, log *zap.SugaredLogger, debug bool) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, errorResponder: errorResponder{log: log, debug: debug}}
}

func bookingIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Create books a vehicle for a customer over a date range.
func (h *BookingHandler) Create(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid request body"))
		return
	}

	claims, found := middleware.GetClaims(c)
	if !found {
		h.fail(c, apperr.Unauthenticated("Authentication required"))
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), claims, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Booking created successfully", booking)
}

// List returns all bookings for admins and the caller's own bookings
// for customers.
func (h *BookingHandler) List(c *gin.Context) {
	claims, found := middleware.GetClaims(c)
	if !found {
		h.fail(c, apperr.Unauthenticated("Authentication required"))
		return
	}

	bookings, err := h.bookingService.ListBookings(c.Request.Context(), claims)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// Get returns one booking by id.
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		h.fail(c, apperr.Validation("Invalid booking ID"))
		return
	}

	claims, found := middleware.GetClaims(c)
	if !found {
		h.fail(c, apperr.Unauthenticated("Authentication required"))
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), claims, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Booking retrieved successfully", booking)
}

// UpdateStatus cancels a booking or marks it returned.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		h.fail(c, apperr.Validation("Invalid booking ID"))
		return
	}

	var req model.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid request body"))
		return
	}

	claims, found := middleware.GetClaims(c)
	if !found {
		h.fail(c, apperr.Unauthenticated("Authentication required"))
		return
	}

	booking, err := h.bookingService.UpdateBookingStatus(c.Request.Context(), claims, id, req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}

	message := "Booking cancelled successfully"
	if booking.Status == model.BookingReturned {
		message = "Booking marked as returned. Vehicle is now available"
	}
	respond(c, http.StatusOK, message, booking)
}
