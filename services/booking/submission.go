package booking

import "infinitewash/models"

const unitVisitAddress = "Unit Visit"

// buildSubmission renders a request into the payload the booking API expects.
func buildSubmission(req models.BookingRequest, entry models.ServiceCatalogEntry, pricing models.PricingResult) models.BookingSubmission {
	address := unitVisitAddress
	if req.ServiceLocation == models.LocationMobile {
		address = req.Customer.Address
	}
	return models.BookingSubmission{
		CustomerName:    req.Customer.Name,
		CustomerEmail:   req.Customer.Email,
		CustomerPhone:   req.Customer.Phone,
		ServiceType:     entry.Name,
		VehicleType:     req.VehicleType.DisplayName(),
		ServiceDate:     req.Date,
		ServiceTime:     req.Time,
		ServiceLocation: req.ServiceLocation.DisplayName(),
		Address:         address,
		TotalAmount:     pricing.BasePrice,
		DepositAmount:   pricing.Deposit,
		SpecialRequests: req.SpecialRequests,
	}
}

func paymentBookingData(sub models.BookingSubmission) models.PaymentBookingData {
	return models.PaymentBookingData{
		CustomerName:    sub.CustomerName,
		CustomerEmail:   sub.CustomerEmail,
		CustomerPhone:   sub.CustomerPhone,
		ServiceType:     sub.ServiceType,
		VehicleType:     sub.VehicleType,
		ServiceDate:     sub.ServiceDate,
		ServiceTime:     sub.ServiceTime,
		ServiceLocation: sub.ServiceLocation,
		Address:         sub.Address,
		TotalAmount:     sub.TotalAmount,
		SpecialRequests: sub.SpecialRequests,
	}
}

func bookingRecord(s *models.BookingSession) models.BookingRecord {
	c := s.Confirmation
	return models.BookingRecord{
		SessionID:       s.SessionID,
		ExternalID:      c.BookingID,
		PaymentIntentID: c.PaymentIntentID,
		Customer:        c.Request.Customer,
		ServiceID:       c.Request.ServiceID,
		ServiceName:     c.ServiceName,
		VehicleType:     c.Request.VehicleType,
		ServiceLocation: c.Request.ServiceLocation,
		Date:            c.Request.Date,
		Time:            c.Request.Time,
		TotalAmount:     c.Pricing.BasePrice,
		DepositAmount:   c.Pricing.Deposit,
		SpecialRequests: c.Request.SpecialRequests,
		Status:          models.BookingConfirmed,
	}
}

func reminderPayload(s *models.BookingSession) models.ReminderPayload {
	c := s.Confirmation
	return models.ReminderPayload{
		BookingID:     c.BookingID,
		SessionID:     s.SessionID,
		CustomerName:  c.Request.Customer.Name,
		CustomerEmail: c.Request.Customer.Email,
		CustomerPhone: c.Request.Customer.Phone,
		ServiceName:   c.ServiceName,
		Date:          c.Request.Date,
		Time:          c.Request.Time,
	}
}
