package booking

import (
	"time"

	"infinitewash/models"
	"infinitewash/services/apperror"
)

// The booking flow is selecting -> paying -> confirmed, with paying -> selecting on "back"
// and confirmed -> selecting on "book another". A slot is only marked once the booking was acknowledged.

func newSession(id string, at time.Time) *models.BookingSession {
	return &models.BookingSession{
		SessionID: id,
		Step:      models.StepSelecting,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func requireStep(s *models.BookingSession, step models.BookingStep, action string) error {
	if s.Step != step {
		return apperror.NewInvalidTransition("cannot " + action + " while booking is " + string(s.Step))
	}
	return nil
}

// applyPatch mutates the request field by field and reports whether pricing inputs changed.
func applyPatch(req *models.BookingRequest, p models.BookingRequestPatch) (repriced bool) {
	if p.VehicleType != nil && *p.VehicleType != req.VehicleType {
		req.VehicleType = *p.VehicleType
		repriced = true
	}
	if p.ServiceID != nil && *p.ServiceID != req.ServiceID {
		req.ServiceID = *p.ServiceID
		repriced = true
	}
	if p.ServiceLocation != nil {
		req.ServiceLocation = *p.ServiceLocation
	}
	if p.Date != nil {
		req.Date = *p.Date
	}
	if p.Time != nil {
		req.Time = *p.Time
	}
	if p.SpecialRequests != nil {
		req.SpecialRequests = *p.SpecialRequests
	}
	if c := p.Customer; c != nil {
		setIf(&req.Customer.Name, c.Name)
		setIf(&req.Customer.Email, c.Email)
		setIf(&req.Customer.Phone, c.Phone)
		setIf(&req.Customer.Address, c.Address)
		setIf(&req.Customer.Postcode, c.Postcode)
	}
	return repriced
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func beginPayment(s *models.BookingSession, intent models.PaymentIntent, sub models.BookingSubmission) {
	s.Pending = &models.PendingPayment{Intent: intent, Submission: sub}
	s.Step = models.StepPaying
}

// confirm marks the slot booked and moves the session to its terminal step.
func confirm(s *models.BookingSession, serviceName, bookingID, intentID string, at time.Time) {
	s.BookedSlots.Mark(s.Request.Date, s.Request.Time)
	s.Confirmation = &models.BookingConfirmation{
		BookingID:       bookingID,
		PaymentIntentID: intentID,
		ServiceName:     serviceName,
		Request:         s.Request,
		Pricing:         s.Pricing,
		ConfirmedAt:     at,
	}
	s.Pending = nil
	s.Step = models.StepConfirmed
}

func backToSelecting(s *models.BookingSession) {
	s.Pending = nil
	s.Step = models.StepSelecting
}

// resetForAnother starts a fresh, empty request. Slots booked earlier in the session stay booked.
func resetForAnother(s *models.BookingSession) {
	s.Request = models.BookingRequest{}
	s.Pricing = models.PricingResult{}
	s.Pending = nil
	s.Confirmation = nil
	s.Step = models.StepSelecting
}
