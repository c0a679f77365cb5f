package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/model"

	"github.com/jackc/pgx/v5"
)

// VehicleRepository defines operations for vehicle data
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	FindAll(ctx context.Context) ([]model.Vehicle, error)
	FindByID(ctx context.Context, id int) (*model.Vehicle, error)
	RegistrationTaken(ctx context.Context, registrationNumber string, excludeID int) (bool, error)
	Update(ctx context.Context, id int, req model.UpdateVehicleRequest) (*model.Vehicle, error)
	Delete(ctx context.Context, id int) error
}

type vehicleRepository struct {
	db DB
}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(db DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = "id, vehicle_name, type, registration_number, daily_rent_price, availability_status"

// Create inserts a new vehicle into the database
func (r *vehicleRepository) Create(ctx context.Context, v *model.Vehicle) error {
	sql := `INSERT INTO vehicles (vehicle_name, type, registration_number, daily_rent_price, availability_status)
            VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRow(ctx, sql, v.VehicleName, v.Type, v.RegistrationNumber, v.DailyRentPrice, v.AvailabilityStatus).Scan(&v.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// FindAll retrieves all vehicles ordered by id
func (r *vehicleRepository) FindAll(ctx context.Context) ([]model.Vehicle, error) {
	rows, err := r.db.Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(&v.ID, &v.VehicleName, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.AvailabilityStatus); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicle rows: %w", err)
	}
	return vehicles, nil
}

// FindByID retrieves a vehicle by its ID
func (r *vehicleRepository) FindByID(ctx context.Context, id int) (*model.Vehicle, error) {
	v := &model.Vehicle{}
	err := r.db.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id).Scan(
		&v.ID, &v.VehicleName, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.AvailabilityStatus,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find vehicle by ID: %w", err)
	}
	return v, nil
}

// RegistrationTaken reports whether another vehicle holds the registration number.
func (r *vehicleRepository) RegistrationTaken(ctx context.Context, registrationNumber string, excludeID int) (bool, error) {
	var id int
	sql := `SELECT id FROM vehicles WHERE registration_number = $1 AND id != $2`
	err := r.db.QueryRow(ctx, sql, registrationNumber, excludeID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check registration uniqueness: %w", err)
	}
	return true, nil
}

// Update applies the non-nil fields of req to the vehicle row
func (r *vehicleRepository) Update(ctx context.Context, id int, req model.UpdateVehicleRequest) (*model.Vehicle, error) {
	var a assignments
	if req.VehicleName != nil {
		a.set("vehicle_name", *req.VehicleName)
	}
	if req.Type != nil {
		a.set("type", *req.Type)
	}
	if req.RegistrationNumber != nil {
		a.set("registration_number", *req.RegistrationNumber)
	}
	if req.DailyRentPrice != nil {
		a.set("daily_rent_price", *req.DailyRentPrice)
	}
	if req.AvailabilityStatus != nil {
		a.set("availability_status", *req.AvailabilityStatus)
	}
	if a.empty() {
		return nil, fmt.Errorf("no update data provided")
	}

	sql, args := buildUpdate("vehicles", &a, "id", id, vehicleColumns)
	v := &model.Vehicle{}
	err := r.db.QueryRow(ctx, sql, args...).Scan(
		&v.ID, &v.VehicleName, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.AvailabilityStatus,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	return v, nil
}

// Delete removes a vehicle row
func (r *vehicleRepository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
