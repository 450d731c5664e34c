package admin

import (
	"context"
	"errors"

	bookingRecordRepo "infinitewash/database/repository/bookingrecord"
	"infinitewash/models"
	"infinitewash/services/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func errBookingNotFound() error {
	return apperror.NewNotFound("Booking not found")
}

// RecordBooking stores a confirmed booking so the dashboard can manage it.
func (s *DefaultAdminService) RecordBooking(ctx context.Context, record models.BookingRecord) error {
	now := s.now()
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Status == "" {
		record.Status = models.BookingConfirmed
	}
	record.CreatedAt = now
	record.UpdatedAt = now
	if err := s.Bookings.Create(ctx, &record); err != nil {
		return err
	}
	s.logger().Debug("booking recorded", zap.String("bookingID", record.ID), zap.String("sessionID", record.SessionID))
	return nil
}

func (s *DefaultAdminService) ListBookings(ctx context.Context, status models.BookingStatus, date string) ([]models.BookingRecord, error) {
	if status != "" && !status.Valid() {
		return nil, apperror.NewValidation("Unknown booking status", "status")
	}
	return s.Bookings.GetAll(ctx, bookingRecordRepo.ListFilter{Status: status, Date: date})
}

func (s *DefaultAdminService) getBooking(ctx context.Context, id string) (*models.BookingRecord, error) {
	record, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errBookingNotFound()
	}
	return record, nil
}

// AssignDriver dispatches an active driver to a booking that is still open.
func (s *DefaultAdminService) AssignDriver(ctx context.Context, bookingID, driverID string) (*models.BookingRecord, error) {
	record, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if record.Status == models.BookingCompleted || record.Status == models.BookingCancelled {
		return nil, apperror.NewInvalidTransition("cannot assign a driver to a " + string(record.Status) + " booking")
	}
	driver, err := s.GetDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.Status != models.DriverActive {
		return nil, apperror.NewValidation("Driver is not active", "driver_id")
	}

	if err := s.setFields(ctx, bookingID, map[string]interface{}{"driver_id": driverID}); err != nil {
		return nil, err
	}
	record.DriverID = driverID
	record.UpdatedAt = s.now()
	s.logger().Info("driver assigned", zap.String("bookingID", bookingID), zap.String("driverID", driverID))
	return record, nil
}

func (s *DefaultAdminService) UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) (*models.BookingRecord, error) {
	if !status.Valid() {
		return nil, apperror.NewValidation("Unknown booking status", "status")
	}
	record, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.setFields(ctx, bookingID, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	record.Status = status
	record.UpdatedAt = s.now()
	s.logger().Info("booking status updated", zap.String("bookingID", bookingID), zap.String("status", string(status)))
	return record, nil
}

func (s *DefaultAdminService) setFields(ctx context.Context, id string, fields map[string]interface{}) error {
	err := s.Bookings.SetFields(ctx, id, fields)
	if errors.Is(err, bookingRecordRepo.ErrNotFound) {
		return errBookingNotFound()
	}
	return err
}
