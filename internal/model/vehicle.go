package model

// VehicleType is the closed set of rentable vehicle categories.
type VehicleType string

const (
	TypeCar  VehicleType = "car"
	TypeBike VehicleType = "bike"
	TypeVan  VehicleType = "van"
	TypeSUV  VehicleType = "SUV"
)

func (t VehicleType) Valid() bool {
	switch t {
	case TypeCar, TypeBike, TypeVan, TypeSUV:
		return true
	}
	return false
}

// AvailabilityStatus is the mutual-exclusion flag the booking engine
// maintains on each vehicle: at most one active booking per vehicle.
type AvailabilityStatus string

const (
	StatusAvailable AvailabilityStatus = "available"
	StatusBooked    AvailabilityStatus = "booked"
)

func (s AvailabilityStatus) Valid() bool {
	return s == StatusAvailable || s == StatusBooked
}

// Vehicle represents a rentable vehicle
type Vehicle struct {
	ID                 int                `json:"id"`
	VehicleName        string             `json:"vehicle_name"`
	Type               VehicleType        `json:"type"`
	RegistrationNumber string             `json:"registration_number"`
	DailyRentPrice     float64            `json:"daily_rent_price"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status"`
}

// CreateVehicleRequest is the payload for registering a vehicle
type CreateVehicleRequest struct {
	VehicleName        string  `json:"vehicle_name" binding:"required"`
	Type               string  `json:"type" binding:"required"`
	RegistrationNumber string  `json:"registration_number" binding:"required"`
	DailyRentPrice     float64 `json:"daily_rent_price" binding:"required"`
	AvailabilityStatus string  `json:"availability_status"`
}

// UpdateVehicleRequest carries a partial update; only non-nil fields are applied
type UpdateVehicleRequest struct {
	VehicleName        *string  `json:"vehicle_name,omitempty"`
	Type               *string  `json:"type,omitempty"`
	RegistrationNumber *string  `json:"registration_number,omitempty"`
	DailyRentPrice     *float64 `json:"daily_rent_price,omitempty"`
	AvailabilityStatus *string  `json:"availability_status,omitempty"`
}

func (r UpdateVehicleRequest) Empty() bool {
	return r.VehicleName == nil && r.Type == nil && r.RegistrationNumber == nil &&
		r.DailyRentPrice == nil && r.AvailabilityStatus == nil
}
