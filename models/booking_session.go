package models

import "time"

// BookingStep is the position of a session in the booking flow.
type BookingStep string

const (
	StepSelecting BookingStep = "selecting"
	StepPaying    BookingStep = "paying"
	StepConfirmed BookingStep = "confirmed"
)

// PendingPayment is the payment context held while a session waits for its deposit.
type PendingPayment struct {
	Intent     PaymentIntent     `json:"intent"`
	Submission BookingSubmission `json:"submission"`
	LastError  string            `json:"lastError,omitempty"`
}

// BookingSession is everything one customer session owns: the form, its pricing,
// the flow step and the slots booked so far in this session.
type BookingSession struct {
	SessionID    string               `json:"sessionId"`
	Step         BookingStep          `json:"step"`
	Request      BookingRequest       `json:"request"`
	Pricing      PricingResult        `json:"pricing"`
	Pending      *PendingPayment      `json:"pending,omitempty"`
	BookedSlots  BookedSlotSet        `json:"bookedSlots"`
	Confirmation *BookingConfirmation `json:"confirmation,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}
