package bookingRecordRepo

import (
	"context"
	"errors"
	"time"

	"infinitewash/models"
)

var ErrNotFound = errors.New("booking not found")

// ListFilter narrows GetAll. Zero values match everything.
type ListFilter struct {
	Status   models.BookingStatus
	Date     string
	DriverID string
}

// BookingRecordRepository stores the admin copy of confirmed bookings.
type BookingRecordRepository interface {
	Create(ctx context.Context, record *models.BookingRecord) error
	// GetByID returns nil and no error when the booking does not exist.
	GetByID(ctx context.Context, id string) (*models.BookingRecord, error)
	GetAll(ctx context.Context, filter ListFilter) ([]models.BookingRecord, error)
	// SetFields applies a partial update and refreshes updated_at.
	SetFields(ctx context.Context, id string, fields map[string]interface{}) error
	// CountSince counts bookings created at or after since; a zero time counts all of them.
	CountSince(ctx context.Context, since time.Time) (int64, error)
	// Revenue sums total_amount over bookings that were not cancelled.
	Revenue(ctx context.Context) (float64, error)
	CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error)
	// CustomerTotals groups bookings by lower-cased customer email, most recent booker first.
	CustomerTotals(ctx context.Context) ([]models.CustomerTotals, error)
	// BusyDriverIDs lists the drivers assigned to a booking that is in progress.
	BusyDriverIDs(ctx context.Context) ([]string, error)
}
