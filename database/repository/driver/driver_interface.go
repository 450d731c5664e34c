package driverRepo

import (
	"context"
	"errors"

	"infinitewash/models"
)

// ErrNotFound is returned when no driver matches the given id.
var ErrNotFound = errors.New("driver not found")

// DriverRepository defines methods for driver data access.
type DriverRepository interface {
	// Create inserts a new driver.
	Create(ctx context.Context, driver *models.Driver) error
	// GetByID returns nil and no error when the driver does not exist.
	GetByID(ctx context.Context, id string) (*models.Driver, error)
	// GetByEmail returns nil and no error when no driver uses the email.
	GetByEmail(ctx context.Context, email string) (*models.Driver, error)
	// GetAll lists drivers, newest first.
	GetAll(ctx context.Context) ([]models.Driver, error)
	Update(ctx context.Context, driver *models.Driver) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status models.DriverStatus) (int64, error)
}
