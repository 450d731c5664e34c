package admin

import (
	"context"
	"time"

	"infinitewash/models"
)

// AdminService backs the admin dashboard: drivers, recorded bookings and stats.
type AdminService interface {
	Login(ctx context.Context, email, password string) (*models.AdminSession, error)

	CreateDriver(ctx context.Context, input models.DriverInput) (*models.Driver, error)
	ListDrivers(ctx context.Context) ([]models.Driver, error)
	GetDriver(ctx context.Context, id string) (*models.Driver, error)
	UpdateDriver(ctx context.Context, id string, input models.DriverInput) (*models.Driver, error)
	DeleteDriver(ctx context.Context, id string) error

	RecordBooking(ctx context.Context, record models.BookingRecord) error
	ListBookings(ctx context.Context, status models.BookingStatus, date string) ([]models.BookingRecord, error)
	AssignDriver(ctx context.Context, bookingID, driverID string) (*models.BookingRecord, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) (*models.BookingRecord, error)

	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	DriverStats(ctx context.Context) (*models.DriverStats, error)
	ListCustomers(ctx context.Context) ([]models.CustomerSummary, error)
}

// Credentials identify the single dashboard administrator.
type Credentials struct {
	Email        string
	PasswordHash string
	JWTSecret    string
	TokenTTL     time.Duration
}
