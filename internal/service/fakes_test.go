package service

import (
	"context"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/model"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/repository"
)

// Function-field fakes keep each test declaring only the calls it
// expects; an unexpected call panics on the nil field.

type fakeUserRepo struct {
	create      func(ctx context.Context, user *model.User) error
	findByEmail func(ctx context.Context, email string) (*model.User, error)
	findByID    func(ctx context.Context, id int) (*model.User, error)
	findAll     func(ctx context.Context) ([]model.User, error)
	emailTaken  func(ctx context.Context, email string, excludeID int) (bool, error)
	update      func(ctx context.Context, id int, req model.UpdateUserRequest) (*model.User, error)
	delete      func(ctx context.Context, id int) error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error { return f.create(ctx, user) }
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return f.findByEmail(ctx, email)
}
func (f *fakeUserRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	return f.findByID(ctx, id)
}
func (f *fakeUserRepo) FindAll(ctx context.Context) ([]model.User, error) { return f.findAll(ctx) }
func (f *fakeUserRepo) EmailTaken(ctx context.Context, email string, excludeID int) (bool, error) {
	return f.emailTaken(ctx, email, excludeID)
}
func (f *fakeUserRepo) Update(ctx context.Context, id int, req model.UpdateUserRequest) (*model.User, error) {
	return f.update(ctx, id, req)
}
func (f *fakeUserRepo) Delete(ctx context.Context, id int) error { return f.delete(ctx, id) }

type fakeVehicleRepo struct {
	create            func(ctx context.Context, vehicle *model.Vehicle) error
	findAll           func(ctx context.Context) ([]model.Vehicle, error)
	findByID          func(ctx context.Context, id int) (*model.Vehicle, error)
	registrationTaken func(ctx context.Context, registrationNumber string, excludeID int) (bool, error)
	update            func(ctx context.Context, id int, req model.UpdateVehicleRequest) (*model.Vehicle, error)
	delete            func(ctx context.Context, id int) error
}

func (f *fakeVehicleRepo) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return f.create(ctx, vehicle)
}
func (f *fakeVehicleRepo) FindAll(ctx context.Context) ([]model.Vehicle, error) {
	return f.findAll(ctx)
}
func (f *fakeVehicleRepo) FindByID(ctx context.Context, id int) (*model.Vehicle, error) {
	return f.findByID(ctx, id)
}
func (f *fakeVehicleRepo) RegistrationTaken(ctx context.Context, registrationNumber string, excludeID int) (bool, error) {
	return f.registrationTaken(ctx, registrationNumber, excludeID)
}
func (f *fakeVehicleRepo) Update(ctx context.Context, id int, req model.UpdateVehicleRequest) (*model.Vehicle, error) {
	return f.update(ctx, id, req)
}
func (f *fakeVehicleRepo) Delete(ctx context.Context, id int) error { return f.delete(ctx, id) }

type fakeBookingRepo struct {
	create              func(ctx context.Context, b *model.Booking) (*model.VehicleSummary, error)
	findByID            func(ctx context.Context, id int64) (*model.Booking, error)
	findDetailsByID     func(ctx context.Context, id int64) (*model.BookingDetails, error)
	findAll             func(ctx context.Context) ([]model.BookingDetails, error)
	findByCustomer      func(ctx context.Context, customerID int) ([]model.BookingDetails, error)
	updateStatus        func(ctx context.Context, id int64, status model.BookingStatus) (*model.Booking, error)
	sweepOverdue        func(ctx context.Context) (int64, error)
	ownerID             func(ctx context.Context, id int64) (int, bool, error)
	hasActiveByCustomer func(ctx context.Context, customerID int) (bool, error)
	hasActiveByVehicle  func(ctx context.Context, vehicleID int) (bool, error)
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *model.Booking) (*model.VehicleSummary, error) {
	return f.create(ctx, b)
}
func (f *fakeBookingRepo) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	return f.findByID(ctx, id)
}
func (f *fakeBookingRepo) FindDetailsByID(ctx context.Context, id int64) (*model.BookingDetails, error) {
	return f.findDetailsByID(ctx, id)
}
func (f *fakeBookingRepo) FindAll(ctx context.Context) ([]model.BookingDetails, error) {
	return f.findAll(ctx)
}
func (f *fakeBookingRepo) FindByCustomer(ctx context.Context, customerID int) ([]model.BookingDetails, error) {
	return f.findByCustomer(ctx, customerID)
}
func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (*model.Booking, error) {
	return f.updateStatus(ctx, id, status)
}
func (f *fakeBookingRepo) SweepOverdue(ctx context.Context) (int64, error) {
	return f.sweepOverdue(ctx)
}
func (f *fakeBookingRepo) OwnerID(ctx context.Context, id int64) (int, bool, error) {
	return f.ownerID(ctx, id)
}
func (f *fakeBookingRepo) HasActiveByCustomer(ctx context.Context, customerID int) (bool, error) {
	return f.hasActiveByCustomer(ctx, customerID)
}
func (f *fakeBookingRepo) HasActiveByVehicle(ctx context.Context, vehicleID int) (bool, error) {
	return f.hasActiveByVehicle(ctx, vehicleID)
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)
var _ repository.VehicleRepository = (*fakeVehicleRepo)(nil)
var _ repository.BookingRepository = (*fakeBookingRepo)(nil)
