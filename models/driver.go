package models

import "time"

// DriverStatus is whether a driver can be assigned to bookings.
type DriverStatus string

const (
	DriverActive   DriverStatus = "active"
	DriverInactive DriverStatus = "inactive"
)

// Driver is a detailer that can be dispatched to mobile bookings.
type Driver struct {
	ID                  string       `bson:"id" json:"id"`
	Name                string       `bson:"name" json:"name"`
	Email               string       `bson:"email" json:"email"`
	Phone               string       `bson:"phone" json:"phone"`
	LicenseNumber       string       `bson:"license_number" json:"license_number"`
	VehicleRegistration string       `bson:"vehicle_registration" json:"vehicle_registration"`
	VehicleModel        string       `bson:"vehicle_model" json:"vehicle_model"`
	Status              DriverStatus `bson:"status" json:"status"`
	CreatedAt           time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time    `bson:"updated_at" json:"updated_at"`
}

// DriverInput is what the dashboard submits when creating or editing a driver.
type DriverInput struct {
	Name                string       `json:"name" validate:"required"`
	Email               string       `json:"email" validate:"required,email"`
	Phone               string       `json:"phone" validate:"required"`
	LicenseNumber       string       `json:"license_number" validate:"required"`
	VehicleRegistration string       `json:"vehicle_registration" validate:"required"`
	VehicleModel        string       `json:"vehicle_model" validate:"required"`
	Status              DriverStatus `json:"status" validate:"omitempty,oneof=active inactive"`
}
