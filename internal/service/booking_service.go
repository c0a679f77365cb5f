package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/apperr"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/model"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/policy"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/repository"
)

const dateLayout = "2006-01-02"

// BookingService owns the booking lifecycle: creation, listing with the
// overdue sweep, and status transitions, each keeping the referenced
// vehicle's availability gate in lockstep.
type BookingService interface {
	CreateBooking(ctx context.Context, caller policy.Claims, req model.CreateBookingRequest) (*model.BookingDetails, error)
	ListBookings(ctx context.Context, caller policy.Claims) ([]model.BookingDetails, error)
	GetBooking(ctx context.Context, caller policy.Claims, id int64) (*model.BookingDetails, error)
	UpdateBookingStatus(ctx context.Context, caller policy.Claims, id int64, status string) (*model.Booking, error)
	SweepOverdue(ctx context.Context) (int64, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
	policies    *policy.Engine
}

// NewBookingService creates a new BookingService
func NewBookingService(bookingRepo repository.BookingRepository, userRepo repository.UserRepository, policies *policy.Engine) BookingService {
	return &bookingService{bookingRepo: bookingRepo, userRepo: userRepo, policies: policies}
}

// CreateBooking validates the request and creates an active booking,
// marking the vehicle booked in the same transaction. The total price is
// the vehicle's daily rate times the ceiling day count, computed once
// here and never recomputed.
func (s *bookingService) CreateBooking(ctx context.Context, caller policy.Claims, req model.CreateBookingRequest) (*model.BookingDetails, error) {
	if err := s.policies.AuthorizeBookingCreate(caller, req.CustomerID); err != nil {
		return nil, err
	}

	start, err := time.Parse(dateLayout, req.RentStartDate)
	if err != nil {
		return nil, apperr.Validation("Invalid rent_start_date, use YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, req.RentEndDate)
	if err != nil {
		return nil, apperr.Validation("Invalid rent_end_date, use YYYY-MM-DD")
	}
	if !end.After(start) {
		return nil, apperr.Validation("End date must be after start date")
	}

	if _, err := s.userRepo.FindByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Customer not found")
		}
		return nil, fmt.Errorf("failed to check customer: %w", err)
	}

	booking := &model.Booking{
		CustomerID:    req.CustomerID,
		VehicleID:     req.VehicleID,
		RentStartDate: start,
		RentEndDate:   end,
	}

	vehicle, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.NotFound("Vehicle not found")
		case errors.Is(err, repository.ErrVehicleUnavailable):
			return nil, apperr.Conflict("Vehicle is not available")
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return &model.BookingDetails{Booking: *booking, Vehicle: vehicle}, nil
}

// ListBookings first sweeps overdue active bookings to returned, then
// returns every booking for admins and only the caller's own bookings
// for customers.
func (s *bookingService) ListBookings(ctx context.Context, caller policy.Claims) ([]model.BookingDetails, error) {
	if _, err := s.bookingRepo.SweepOverdue(ctx); err != nil {
		return nil, fmt.Errorf("failed to sweep overdue bookings: %w", err)
	}

	if caller.Role == model.RoleAdmin {
		bookings, err := s.bookingRepo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list bookings: %w", err)
		}
		return bookings, nil
	}

	bookings, err := s.bookingRepo.FindByCustomer(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) GetBooking(ctx context.Context, caller policy.Claims, id int64) (*model.BookingDetails, error) {
	details, err := s.bookingRepo.FindDetailsByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Booking not found")
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if caller.Role == model.RoleCustomer && details.CustomerID != caller.UserID {
		return nil, apperr.Forbidden("Access denied to this booking")
	}
	return details, nil
}

// UpdateBookingStatus transitions a booking to cancelled or returned,
// releasing the vehicle's availability gate in the same transaction.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, caller policy.Claims, id int64, status string) (*model.Booking, error) {
	newStatus := model.BookingStatus(status)
	if newStatus != model.BookingCancelled && newStatus != model.BookingReturned {
		return nil, apperr.Validation("Status must be 'cancelled' or 'returned'")
	}

	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Booking not found")
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	if err := s.policies.AuthorizeTransition(caller, booking, newStatus, time.Now()); err != nil {
		return nil, err
	}

	updated, err := s.bookingRepo.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.NotFound("Booking not found")
		case errors.Is(err, repository.ErrBookingNotActive):
			// Lost a race with another transition: the booking went
			// terminal between the policy check and the update.
			return nil, apperr.Conflict("Booking is already cancelled or returned")
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return updated, nil
}

// SweepOverdue expires active bookings past their end date. Exposed for
// the scheduled job so overdue bookings expire even without list traffic.
func (s *bookingService) SweepOverdue(ctx context.Context) (int64, error) {
	return s.bookingRepo.SweepOverdue(ctx)
}
