package booking

import (
	"context"
	"time"

	"infinitewash/models"
)

// BookingService drives one customer's booking from the empty form to a confirmed slot.
type BookingService interface {
	StartSession(ctx context.Context) (*models.BookingSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error)
	EndSession(ctx context.Context, sessionID string) error
	UpdateRequest(ctx context.Context, sessionID string, patch models.BookingRequestPatch) (*models.BookingSession, error)
	AvailableSlots(ctx context.Context, sessionID, date string) ([]string, error)
	Submit(ctx context.Context, sessionID string) (*models.BookingSession, error)
	ConfirmPayment(ctx context.Context, sessionID, paymentIntentID string) (*models.BookingSession, error)
	Back(ctx context.Context, sessionID string) (*models.BookingSession, error)
	BookAnother(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Catalog() models.ServiceCatalog
}

// BookingAPI submits bookings that need no deposit.
type BookingAPI interface {
	SubmitBooking(ctx context.Context, sub models.BookingSubmission) (*models.BookingAck, error)
}

// PaymentProvider collects deposits.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, paymentIntentID string, sub models.BookingSubmission) (*models.PaymentConfirmation, error)
}

// BookingRecorder keeps a copy of confirmed bookings for the admin dashboard.
type BookingRecorder interface {
	RecordBooking(ctx context.Context, record models.BookingRecord) error
}

// ReminderScheduler queues a reminder ahead of the booked slot.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload, slotStart time.Time) error
}
