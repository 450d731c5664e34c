package models

import "time"

// BookingStatus is the operational status an admin moves a booking through.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// BookingRecord is the admin-side copy of a booking confirmed through this service.
type BookingRecord struct {
	ID              string          `bson:"id" json:"id"`
	SessionID       string          `bson:"session_id" json:"session_id"`
	ExternalID      string          `bson:"external_id,omitempty" json:"external_id,omitempty"`
	PaymentIntentID string          `bson:"payment_intent_id,omitempty" json:"payment_intent_id,omitempty"`
	Customer        Customer        `bson:"customer" json:"customer"`
	ServiceID       string          `bson:"service_id" json:"service_id"`
	ServiceName     string          `bson:"service_name" json:"service_name"`
	VehicleType     VehicleType     `bson:"vehicle_type" json:"vehicle_type"`
	ServiceLocation ServiceLocation `bson:"service_location" json:"service_location"`
	Date            string          `bson:"date" json:"date"`
	Time            string          `bson:"time" json:"time"`
	TotalAmount     float64         `bson:"total_amount" json:"total_amount"`
	DepositAmount   float64         `bson:"deposit_amount" json:"deposit_amount"`
	SpecialRequests string          `bson:"special_requests,omitempty" json:"special_requests,omitempty"`
	Status          BookingStatus   `bson:"status" json:"status"`
	DriverID        string          `bson:"driver_id,omitempty" json:"driver_id,omitempty"`
	CreatedAt       time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updated_at"`
}

// DashboardStats summarises bookings and drivers for the admin dashboard.
type DashboardStats struct {
	TotalBookings    int64   `json:"total_bookings"`
	BookingsToday    int64   `json:"bookings_today"`
	BookingsThisWeek int64   `json:"bookings_this_week"`
	Revenue          float64 `json:"revenue"`
	ActiveDrivers    int64   `json:"active_drivers"`
}

// CustomerTotals is one customer's booking history, grouped by email.
type CustomerTotals struct {
	Email             string
	Name              string
	Phone             string
	TotalBookings     int64
	CompletedBookings int64
	TotalSpent        float64
	LastBookingAt     time.Time
}

// CustomerSummary is a row of the admin customers tab.
type CustomerSummary struct {
	CustomerID   string          `json:"customer_id"`
	PersonalInfo CustomerContact `json:"personal_info"`
	LoyaltyStats LoyaltyStats    `json:"loyalty_stats"`
	Rewards      Rewards         `json:"rewards"`
	LastBooking  time.Time       `json:"last_booking_at"`
}

type CustomerContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type LoyaltyStats struct {
	TotalBookings     int64   `json:"total_bookings"`
	CompletedBookings int64   `json:"completed_bookings"`
	LoyaltyPoints     int64   `json:"loyalty_points"`
	TotalSpent        float64 `json:"total_spent"`
}

type Rewards struct {
	FreeWashesAvailable int64 `json:"free_washes_available"`
	Discount15Available int64 `json:"discount_15_available"`
}

// DriverStats backs the driver summary cards.
type DriverStats struct {
	TotalDrivers           int64 `json:"total_drivers"`
	ActiveDrivers          int64 `json:"active_drivers"`
	BusyDrivers            int64 `json:"busy_drivers"`
	InactiveDrivers        int64 `json:"inactive_drivers"`
	TotalServicesCompleted int64 `json:"total_services_completed"`
}
