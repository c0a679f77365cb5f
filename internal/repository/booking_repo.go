package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/model"

	"github.com/jackc/pgx/v5"
)

// BookingRepository defines operations for booking data. Create and
// UpdateStatus each run as a single transaction that also maintains the
// referenced vehicle's availability gate.
type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) (*model.VehicleSummary, error)
	FindByID(ctx context.Context, id int64) (*model.Booking, error)
	FindDetailsByID(ctx context.Context, id int64) (*model.BookingDetails, error)
	FindAll(ctx context.Context) ([]model.BookingDetails, error)
	FindByCustomer(ctx context.Context, customerID int) ([]model.BookingDetails, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (*model.Booking, error)
	SweepOverdue(ctx context.Context) (int64, error)
	OwnerID(ctx context.Context, id int64) (int, bool, error)
	HasActiveByCustomer(ctx context.Context, customerID int) (bool, error)
	HasActiveByVehicle(ctx context.Context, vehicleID int) (bool, error)
}

type bookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = "id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status"

// Create inserts a booking and flips the vehicle's availability gate in
// one transaction.
//
// Two concurrent creates for the same vehicle would both observe
// availability_status = 'available' with a plain read, so the vehicle row
// is locked with SELECT ... FOR UPDATE before the check: the second
// transaction blocks until the first commits and then sees 'booked'. The
// flip itself is still a conditional update whose affected-row count is
// verified, so a missed gate can never slip through.
func (r *bookingRepository) Create(ctx context.Context, b *model.Booking) (*model.VehicleSummary, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var vehicleName string
	var dailyRentPrice float64
	var availability model.AvailabilityStatus
	err = tx.QueryRow(ctx,
		`SELECT vehicle_name, daily_rent_price, availability_status
		 FROM vehicles WHERE id = $1 FOR UPDATE`,
		b.VehicleID,
	).Scan(&vehicleName, &dailyRentPrice, &availability)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrNotFound
			return nil, err
		}
		return nil, fmt.Errorf("lock vehicle row: %w", err)
	}
	if availability != model.StatusAvailable {
		err = ErrVehicleUnavailable
		return nil, err
	}

	b.TotalPrice = model.TotalPrice(dailyRentPrice, b.RentStartDate, b.RentEndDate)
	b.Status = model.BookingActive

	err = tx.QueryRow(ctx,
		`INSERT INTO bookings (customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		b.CustomerID, b.VehicleID, b.RentStartDate, b.RentEndDate, b.TotalPrice, b.Status,
	).Scan(&b.ID)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	cmdTag, err := tx.Exec(ctx,
		`UPDATE vehicles SET availability_status = 'booked'
		 WHERE id = $1 AND availability_status = 'available'`,
		b.VehicleID,
	)
	if err != nil {
		return nil, fmt.Errorf("mark vehicle booked: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		err = ErrVehicleUnavailable
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &model.VehicleSummary{VehicleName: vehicleName, DailyRentPrice: dailyRentPrice}, nil
}

// FindByID retrieves a booking by its ID
func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	b := &model.Booking{}
	err := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id).Scan(
		&b.ID, &b.CustomerID, &b.VehicleID, &b.RentStartDate, &b.RentEndDate, &b.TotalPrice, &b.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return b, nil
}

// FindDetailsByID retrieves a booking with its customer and vehicle summaries
func (r *bookingRepository) FindDetailsByID(ctx context.Context, id int64) (*model.BookingDetails, error) {
	d := &model.BookingDetails{Customer: &model.CustomerSummary{}, Vehicle: &model.VehicleSummary{}}
	sql := `SELECT b.id, b.customer_id, b.vehicle_id, b.rent_start_date, b.rent_end_date, b.total_price, b.status,
	               u.name, u.email, v.vehicle_name, v.registration_number
	        FROM bookings b
	        JOIN users u ON b.customer_id = u.id
	        JOIN vehicles v ON b.vehicle_id = v.id
	        WHERE b.id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&d.ID, &d.CustomerID, &d.VehicleID, &d.RentStartDate, &d.RentEndDate, &d.TotalPrice, &d.Status,
		&d.Customer.Name, &d.Customer.Email, &d.Vehicle.VehicleName, &d.Vehicle.RegistrationNumber,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking details: %w", err)
	}
	return d, nil
}

// FindAll retrieves every booking joined with customer and vehicle
// summaries, newest first.
func (r *bookingRepository) FindAll(ctx context.Context) ([]model.BookingDetails, error) {
	sql := `SELECT b.id, b.customer_id, b.vehicle_id, b.rent_start_date, b.rent_end_date, b.total_price, b.status,
	               u.name, u.email, v.vehicle_name, v.registration_number
	        FROM bookings b
	        JOIN users u ON b.customer_id = u.id
	        JOIN vehicles v ON b.vehicle_id = v.id
	        ORDER BY b.id DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.BookingDetails
	for rows.Next() {
		d := model.BookingDetails{Customer: &model.CustomerSummary{}, Vehicle: &model.VehicleSummary{}}
		if err := rows.Scan(
			&d.ID, &d.CustomerID, &d.VehicleID, &d.RentStartDate, &d.RentEndDate, &d.TotalPrice, &d.Status,
			&d.Customer.Name, &d.Customer.Email, &d.Vehicle.VehicleName, &d.Vehicle.RegistrationNumber,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}
	return bookings, nil
}

// FindByCustomer retrieves a customer's own bookings joined with vehicle
// summaries, newest first.
func (r *bookingRepository) FindByCustomer(ctx context.Context, customerID int) ([]model.BookingDetails, error) {
	sql := `SELECT b.id, b.customer_id, b.vehicle_id, b.rent_start_date, b.rent_end_date, b.total_price, b.status,
	               v.vehicle_name, v.registration_number, v.type
	        FROM bookings b
	        JOIN vehicles v ON b.vehicle_id = v.id
	        WHERE b.customer_id = $1
	        ORDER BY b.id DESC`
	rows, err := r.db.Query(ctx, sql, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.BookingDetails
	for rows.Next() {
		d := model.BookingDetails{Vehicle: &model.VehicleSummary{}}
		if err := rows.Scan(
			&d.ID, &d.CustomerID, &d.VehicleID, &d.RentStartDate, &d.RentEndDate, &d.TotalPrice, &d.Status,
			&d.Vehicle.VehicleName, &d.Vehicle.RegistrationNumber, &d.Vehicle.Type,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer booking row: %w", err)
		}
		bookings = append(bookings, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer booking rows: %w", err)
	}
	return bookings, nil
}

// UpdateStatus moves a booking into a terminal status and reopens the
// vehicle's availability gate, all in one transaction. The booking row is
// locked and re-checked so a transition is applied at most once: a second
// attempt on an already-terminal booking fails with ErrBookingNotActive.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (*model.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	b := &model.Booking{}
	err = tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id).Scan(
		&b.ID, &b.CustomerID, &b.VehicleID, &b.RentStartDate, &b.RentEndDate, &b.TotalPrice, &b.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrNotFound
			return nil, err
		}
		return nil, fmt.Errorf("lock booking row: %w", err)
	}
	if b.Status != model.BookingActive {
		err = ErrBookingNotActive
		return nil, err
	}

	if _, err = tx.Exec(ctx, `UPDATE bookings SET status = $1 WHERE id = $2`, status, id); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	if _, err = tx.Exec(ctx,
		`UPDATE vehicles SET availability_status = 'available' WHERE id = $1`,
		b.VehicleID,
	); err != nil {
		return nil, fmt.Errorf("release vehicle: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	b.Status = status
	return b, nil
}

// SweepOverdue expires active bookings whose rental period has ended.
// Status-only: the vehicle's availability gate is left untouched here.
func (r *bookingRepository) SweepOverdue(ctx context.Context) (int64, error) {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE bookings SET status = 'returned'
		 WHERE status = 'active' AND rent_end_date < CURRENT_DATE`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep overdue bookings: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// OwnerID resolves a booking's customer without loading the full row.
func (r *bookingRepository) OwnerID(ctx context.Context, id int64) (int, bool, error) {
	var customerID int
	err := r.db.QueryRow(ctx, `SELECT customer_id FROM bookings WHERE id = $1`, id).Scan(&customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to resolve booking owner: %w", err)
	}
	return customerID, true, nil
}

// HasActiveByCustomer reports whether the customer owns any active booking.
func (r *bookingRepository) HasActiveByCustomer(ctx context.Context, customerID int) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE customer_id = $1 AND status = 'active'`,
		customerID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count active bookings for customer: %w", err)
	}
	return count > 0, nil
}

// HasActiveByVehicle reports whether any active booking references the vehicle.
func (r *bookingRepository) HasActiveByVehicle(ctx context.Context, vehicleID int) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE vehicle_id = $1 AND status = 'active'`,
		vehicleID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count active bookings for vehicle: %w", err)
	}
	return count > 0, nil
}
