package booking

import (
	"reflect"
	"strings"
	"time"

	"infinitewash/models"
	"infinitewash/services/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/now"
)

const dateLayout = "2006-01-02"

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterStructValidation(mobileAddressRule, models.BookingRequest{})
	return v
}

// mobileAddressRule requires an address and postcode when the detailer travels to the customer.
func mobileAddressRule(sl validator.StructLevel) {
	req := sl.Current().Interface().(models.BookingRequest)
	if req.ServiceLocation != models.LocationMobile {
		return
	}
	if strings.TrimSpace(req.Customer.Address) == "" {
		sl.ReportError(req.Customer.Address, "customer.address", "Address", "required_if_mobile", "")
	}
	if strings.TrimSpace(req.Customer.Postcode) == "" {
		sl.ReportError(req.Customer.Postcode, "customer.postcode", "Postcode", "required_if_mobile", "")
	}
}

// validateRequest checks a request is complete enough to submit. It never touches the network.
func validateRequest(req models.BookingRequest, catalog models.ServiceCatalog, today time.Time) error {
	if err := requestValidator.Struct(req); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperror.New(apperror.Validation, "invalid booking request", err)
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldPath(fe.Namespace()))
		}
		return apperror.NewValidation("Please fill in all required fields", fields...)
	}

	var invalid []string
	if !req.VehicleType.Valid() {
		invalid = append(invalid, "vehicleType")
	}
	if !req.ServiceLocation.Valid() {
		invalid = append(invalid, "serviceLocation")
	}
	if _, ok := FindService(catalog, req.ServiceID); !ok {
		invalid = append(invalid, "serviceId")
	}
	day, err := time.ParseInLocation(dateLayout, req.Date, today.Location())
	if err != nil || day.Before(now.With(today).BeginningOfDay()) {
		invalid = append(invalid, "date")
	}
	if !IsCanonicalSlot(req.Time) {
		invalid = append(invalid, "time")
	}
	if len(invalid) > 0 {
		return apperror.NewValidation("Some booking details are not valid", invalid...)
	}
	return nil
}

// fieldPath drops the root struct name from a validator namespace: "BookingRequest.customer.email" -> "customer.email".
func fieldPath(namespace string) string {
	parts := strings.SplitN(namespace, ".", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return namespace
}

// slotStart parses the date and hourly slot of a request in loc.
func slotStart(date, slot string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout+" 15:04", date+" "+slot, loc)
}
