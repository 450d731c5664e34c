package models

import "time"

// VehicleType is the size class of the customer's vehicle.
type VehicleType string

const (
	VehicleSmall  VehicleType = "small"
	VehicleMedium VehicleType = "medium"
	VehicleLarge  VehicleType = "large"
	VehicleVan    VehicleType = "van"
)

// VehicleTypes lists the vehicle classes in display order.
var VehicleTypes = []VehicleType{VehicleSmall, VehicleMedium, VehicleLarge, VehicleVan}

var vehicleNames = map[VehicleType]string{
	VehicleSmall:  "Small Car",
	VehicleMedium: "Medium Car",
	VehicleLarge:  "Large Car",
	VehicleVan:    "Van",
}

func (v VehicleType) Valid() bool {
	_, ok := vehicleNames[v]
	return ok
}

// DisplayName is the label sent to the booking API, e.g. "Medium Car".
func (v VehicleType) DisplayName() string {
	return vehicleNames[v]
}

// ServiceLocation tells whether the detailer comes to the customer or the customer visits the unit.
type ServiceLocation string

const (
	LocationMobile ServiceLocation = "mobile"
	LocationUnit   ServiceLocation = "unit"
)

func (l ServiceLocation) Valid() bool {
	return l == LocationMobile || l == LocationUnit
}

func (l ServiceLocation) DisplayName() string {
	switch l {
	case LocationMobile:
		return "Mobile Service"
	case LocationUnit:
		return "Visit Our Unit"
	}
	return ""
}

// Customer holds contact details. Address and postcode matter only for mobile bookings.
type Customer struct {
	Name     string `json:"name" bson:"name" validate:"required"`
	Email    string `json:"email" bson:"email" validate:"required"`
	Phone    string `json:"phone" bson:"phone" validate:"required"`
	Address  string `json:"address" bson:"address"`
	Postcode string `json:"postcode" bson:"postcode"`
}

// BookingRequest is the form state of a booking in progress.
type BookingRequest struct {
	VehicleType     VehicleType     `json:"vehicleType" validate:"required"`
	ServiceID       string          `json:"serviceId" validate:"required"`
	ServiceLocation ServiceLocation `json:"serviceLocation" validate:"required"`
	Date            string          `json:"date" validate:"required"` // YYYY-MM-DD
	Time            string          `json:"time" validate:"required"` // HH:00
	Customer        Customer        `json:"customer"`
	SpecialRequests string          `json:"specialRequests,omitempty"`
}

// CustomerPatch carries the customer fields a client wants to change.
type CustomerPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Postcode *string `json:"postcode"`
}

// BookingRequestPatch is a field-by-field update of a BookingRequest. Nil fields are left alone.
type BookingRequestPatch struct {
	VehicleType     *VehicleType     `json:"vehicleType"`
	ServiceID       *string          `json:"serviceId"`
	ServiceLocation *ServiceLocation `json:"serviceLocation"`
	Date            *string          `json:"date"`
	Time            *string          `json:"time"`
	Customer        *CustomerPatch   `json:"customer"`
	SpecialRequests *string          `json:"specialRequests"`
}

// PricingResult is derived from the vehicle and service; it is recomputed, never stored on its own.
type PricingResult struct {
	BasePrice         float64 `json:"basePrice" bson:"basePrice"`
	Deposit           float64 `json:"deposit" bson:"deposit"`
	DepositPercentage int     `json:"depositPercentage" bson:"depositPercentage"`
}

// BookingConfirmation describes a booking that the backend acknowledged.
type BookingConfirmation struct {
	BookingID       string         `json:"bookingId,omitempty"`
	PaymentIntentID string         `json:"paymentIntentId,omitempty"`
	ServiceName     string         `json:"serviceName"`
	Request         BookingRequest `json:"request"`
	Pricing         PricingResult  `json:"pricing"`
	ConfirmedAt     time.Time      `json:"confirmedAt"`
}
