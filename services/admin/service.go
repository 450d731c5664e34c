package admin

import (
	"reflect"
	"strings"
	"time"

	bookingRecordRepo "infinitewash/database/repository/bookingrecord"
	driverRepo "infinitewash/database/repository/driver"
	"infinitewash/services/apperror"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Drivers     driverRepo.DriverRepository
	Bookings    bookingRecordRepo.BookingRecordRepository
	Credentials Credentials
	Logger      *zap.Logger
	Now         func() time.Time
}

func (s *DefaultAdminService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAdminService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

var inputValidator = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return v
}()

// validateInput turns validator failures into a validation error naming the offending fields.
func validateInput(input interface{}) error {
	err := inputValidator.Struct(input)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.New(apperror.Validation, "invalid input", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return apperror.NewValidation("Please fill in all required fields", fields...)
}
