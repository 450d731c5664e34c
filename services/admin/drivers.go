package admin

import (
	"context"
	"errors"
	"strings"

	driverRepo "infinitewash/database/repository/driver"
	"infinitewash/models"
	"infinitewash/services/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func errDriverNotFound() error {
	return apperror.NewNotFound("Driver not found")
}

func normalizeDriverInput(in models.DriverInput) models.DriverInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.LicenseNumber = strings.TrimSpace(in.LicenseNumber)
	in.VehicleRegistration = strings.ToUpper(strings.TrimSpace(in.VehicleRegistration))
	in.VehicleModel = strings.TrimSpace(in.VehicleModel)
	if in.Status == "" {
		in.Status = models.DriverActive
	}
	return in
}

// ensureEmailFree rejects an email already used by a driver other than selfID.
func (s *DefaultAdminService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.Drivers.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return apperror.NewValidation("A driver with this email already exists", "email")
	}
	return nil
}

func (s *DefaultAdminService) CreateDriver(ctx context.Context, input models.DriverInput) (*models.Driver, error) {
	input = normalizeDriverInput(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, input.Email, ""); err != nil {
		return nil, err
	}

	now := s.now()
	driver := &models.Driver{
		ID:                  uuid.New().String(),
		Name:                input.Name,
		Email:               input.Email,
		Phone:               input.Phone,
		LicenseNumber:       input.LicenseNumber,
		VehicleRegistration: input.VehicleRegistration,
		VehicleModel:        input.VehicleModel,
		Status:              input.Status,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.Drivers.Create(ctx, driver); err != nil {
		return nil, err
	}
	s.logger().Info("driver created", zap.String("driverID", driver.ID))
	return driver, nil
}

func (s *DefaultAdminService) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	return s.Drivers.GetAll(ctx)
}

func (s *DefaultAdminService) GetDriver(ctx context.Context, id string) (*models.Driver, error) {
	driver, err := s.Drivers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, errDriverNotFound()
	}
	return driver, nil
}

func (s *DefaultAdminService) UpdateDriver(ctx context.Context, id string, input models.DriverInput) (*models.Driver, error) {
	driver, err := s.GetDriver(ctx, id)
	if err != nil {
		return nil, err
	}
	input = normalizeDriverInput(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Email != driver.Email {
		if err := s.ensureEmailFree(ctx, input.Email, id); err != nil {
			return nil, err
		}
	}

	driver.Name = input.Name
	driver.Email = input.Email
	driver.Phone = input.Phone
	driver.LicenseNumber = input.LicenseNumber
	driver.VehicleRegistration = input.VehicleRegistration
	driver.VehicleModel = input.VehicleModel
	driver.Status = input.Status
	driver.UpdatedAt = s.now()

	if err := s.Drivers.Update(ctx, driver); err != nil {
		if errors.Is(err, driverRepo.ErrNotFound) {
			return nil, errDriverNotFound()
		}
		return nil, err
	}
	return driver, nil
}

func (s *DefaultAdminService) DeleteDriver(ctx context.Context, id string) error {
	if err := s.Drivers.Delete(ctx, id); err != nil {
		if errors.Is(err, driverRepo.ErrNotFound) {
			return errDriverNotFound()
		}
		return err
	}
	s.logger().Info("driver deleted", zap.String("driverID", id))
	return nil
}
