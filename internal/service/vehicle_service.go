package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/apperr"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/model"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/repository"
)

// VehicleService defines operations over the vehicle catalog
type VehicleService interface {
	CreateVehicle(ctx context.Context, req model.CreateVehicleRequest) (*model.Vehicle, error)
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	GetVehicle(ctx context.Context, id int) (*model.Vehicle, error)
	UpdateVehicle(ctx context.Context, id int, req model.UpdateVehicleRequest) (*model.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int) error
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	bookingRepo repository.BookingRepository
}

// NewVehicleService creates a new VehicleService
func NewVehicleService(vehicleRepo repository.VehicleRepository, bookingRepo repository.BookingRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo, bookingRepo: bookingRepo}
}

func (s *vehicleService) CreateVehicle(ctx context.Context, req model.CreateVehicleRequest) (*model.Vehicle, error) {
	if !model.VehicleType(req.Type).Valid() {
		return nil, apperr.Validation("Type must be one of: car, bike, van, SUV")
	}
	if req.DailyRentPrice <= 0 {
		return nil, apperr.Validation("Daily rent price must be positive")
	}

	availability := model.StatusAvailable
	if req.AvailabilityStatus != "" {
		availability = model.AvailabilityStatus(req.AvailabilityStatus)
		if !availability.Valid() {
			return nil, apperr.Validation("Availability status must be 'available' or 'booked'")
		}
	}

	taken, err := s.vehicleRepo.RegistrationTaken(ctx, req.RegistrationNumber, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check registration number: %w", err)
	}
	if taken {
		return nil, apperr.Conflict("Registration number already exists")
	}

	vehicle := &model.Vehicle{
		VehicleName:        req.VehicleName,
		Type:               model.VehicleType(req.Type),
		RegistrationNumber: req.RegistrationNumber,
		DailyRentPrice:     req.DailyRentPrice,
		AvailabilityStatus: availability,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("Registration number already exists")
		}
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *vehicleService) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	vehicles, err := s.vehicleRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, id int) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Vehicle not found")
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, id int, req model.UpdateVehicleRequest) (*model.Vehicle, error) {
	if req.Empty() {
		return nil, apperr.Validation("No update data provided")
	}
	if req.Type != nil && !model.VehicleType(*req.Type).Valid() {
		return nil, apperr.Validation("Type must be one of: car, bike, van, SUV")
	}
	if req.AvailabilityStatus != nil && !model.AvailabilityStatus(*req.AvailabilityStatus).Valid() {
		return nil, apperr.Validation("Availability status must be 'available' or 'booked'")
	}
	if req.DailyRentPrice != nil && *req.DailyRentPrice <= 0 {
		return nil, apperr.Validation("Daily rent price must be positive")
	}

	if _, err := s.vehicleRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Vehicle not found")
		}
		return nil, fmt.Errorf("failed to find vehicle for update: %w", err)
	}

	if req.RegistrationNumber != nil {
		taken, err := s.vehicleRepo.RegistrationTaken(ctx, *req.RegistrationNumber, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check registration number: %w", err)
		}
		if taken {
			return nil, apperr.Conflict("Registration number already in use")
		}
	}

	vehicle, err := s.vehicleRepo.Update(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.NotFound("Vehicle not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperr.Conflict("Registration number already exists")
		}
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	return vehicle, nil
}

// DeleteVehicle removes a vehicle unless an active booking still
// references it.
func (s *vehicleService) DeleteVehicle(ctx context.Context, id int) error {
	if _, err := s.vehicleRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Vehicle not found")
		}
		return fmt.Errorf("failed to find vehicle for deletion: %w", err)
	}

	hasActive, err := s.bookingRepo.HasActiveByVehicle(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check active bookings: %w", err)
	}
	if hasActive {
		return apperr.Conflict("Cannot delete vehicle with active bookings")
	}

	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Vehicle not found")
		}
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return nil
}
