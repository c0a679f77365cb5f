package model

import (
	"time"
)

// BookingStatus is the lifecycle state of a booking (persisted as a string).
type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCancelled BookingStatus = "cancelled"
	BookingReturned  BookingStatus = "returned"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingActive, BookingCancelled, BookingReturned:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingReturned
}

// allowedTransitions is the booking state machine: active is the sole
// initial state, cancelled and returned are terminal.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingActive:    {BookingCancelled, BookingReturned},
	BookingCancelled: {},
	BookingReturned:  {},
}

// CanTransition reports whether from -> to is a legal status transition.
func CanTransition(from, to BookingStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Booking represents a rental of a vehicle by a customer
type Booking struct {
	ID            int64         `json:"id"`
	CustomerID    int           `json:"customer_id"`
	VehicleID     int           `json:"vehicle_id"`
	RentStartDate time.Time     `json:"rent_start_date"`
	RentEndDate   time.Time     `json:"rent_end_date"`
	TotalPrice    float64       `json:"total_price"`
	Status        BookingStatus `json:"status"`
}

// CustomerSummary is the customer projection embedded in booking views.
type CustomerSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// VehicleSummary is the vehicle projection embedded in booking views.
// Fields not selected by a given query stay zero and are omitted.
type VehicleSummary struct {
	VehicleName        string      `json:"vehicle_name"`
	RegistrationNumber string      `json:"registration_number,omitempty"`
	Type               VehicleType `json:"type,omitempty"`
	DailyRentPrice     float64     `json:"daily_rent_price,omitempty"`
}

// BookingDetails is a booking enriched with customer and vehicle summaries.
type BookingDetails struct {
	Booking
	Customer *CustomerSummary `json:"customer,omitempty"`
	Vehicle  *VehicleSummary  `json:"vehicle,omitempty"`
}

// CreateBookingRequest is the payload for creating a booking. Dates are
// accepted as YYYY-MM-DD strings and parsed by the service.
type CreateBookingRequest struct {
	CustomerID    int    `json:"customer_id" binding:"required"`
	VehicleID     int    `json:"vehicle_id" binding:"required"`
	RentStartDate string `json:"rent_start_date" binding:"required"`
	RentEndDate   string `json:"rent_end_date" binding:"required"`
}

// UpdateBookingStatusRequest carries the requested status transition.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RentalDays returns the chargeable day count for the interval, rounding
// any partial day up. Callers must ensure end is after start.
func RentalDays(start, end time.Time) int {
	hours := end.Sub(start).Hours()
	days := int(hours / 24)
	if hours > float64(days*24) {
		days++
	}
	return days
}

// TotalPrice computes the booking price: daily rate times ceil day count.
// Computed once at creation and never recomputed.
func TotalPrice(dailyRentPrice float64, start, end time.Time) float64 {
	return dailyRentPrice * float64(RentalDays(start, end))
}
