package booking

import (
	"context"
	"fmt"
	"time"

	"infinitewash/models"
	"infinitewash/services/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Store     SessionStore
	API       BookingAPI
	Payments  PaymentProvider
	Recorder  BookingRecorder   // optional
	Reminders ReminderScheduler // optional
	Services  models.ServiceCatalog
	Currency  string
	Logger    *zap.Logger
	Now       func() time.Time

	locks sessionLocks
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// lock serialises requests touching the same session within this process.
func (s *DefaultBookingService) lock(sessionID string) func() {
	return s.locks.lock(sessionID)
}

func (s *DefaultBookingService) Catalog() models.ServiceCatalog {
	return s.Services
}

// StartSession creates an empty booking in the selecting step.
func (s *DefaultBookingService) StartSession(ctx context.Context) (*models.BookingSession, error) {
	session := newSession(uuid.New().String(), s.now())
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logger().Debug("booking session started", zap.String("sessionID", session.SessionID))
	return session, nil
}

func (s *DefaultBookingService) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	if sessionID == "" {
		return nil, apperror.NewValidation("session id is required", "sessionId")
	}
	return s.Store.Get(ctx, sessionID)
}

// EndSession tears the session down together with its booked slots.
func (s *DefaultBookingService) EndSession(ctx context.Context, sessionID string) error {
	unlock := s.lock(sessionID)
	defer unlock()

	if err := s.Store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.logger().Debug("booking session ended", zap.String("sessionID", sessionID))
	return nil
}

// UpdateRequest applies form edits. Pricing is recomputed when the vehicle or service changes.
func (s *DefaultBookingService) UpdateRequest(ctx context.Context, sessionID string, patch models.BookingRequestPatch) (*models.BookingSession, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(session, models.StepSelecting, "edit the booking"); err != nil {
		return nil, err
	}

	if applyPatch(&session.Request, patch) {
		session.Pricing = ComputePricing(session.Request.VehicleType, session.Request.ServiceID, s.Services)
	}
	session.UpdatedAt = s.now()
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// AvailableSlots lists the slots of date not yet booked in this session.
func (s *DefaultBookingService) AvailableSlots(ctx context.Context, sessionID, date string) ([]string, error) {
	if date == "" {
		return nil, apperror.NewValidation("date is required", "date")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, apperror.NewValidation("date must be formatted as YYYY-MM-DD", "date")
	}
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return AvailableSlots(date, session.BookedSlots), nil
}

// Submit validates the request and either books it straight away (no deposit) or
// opens a deposit payment and moves the session to paying.
func (s *DefaultBookingService) Submit(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(session, models.StepSelecting, "submit"); err != nil {
		return nil, err
	}
	if err := validateRequest(session.Request, s.Services, s.now()); err != nil {
		return nil, err
	}
	if session.BookedSlots.Contains(session.Request.Date, session.Request.Time) {
		return nil, apperror.NewValidation("This time slot has already been booked, please choose another", "time")
	}

	entry, _ := FindService(s.Services, session.Request.ServiceID)
	session.Pricing = ComputePricing(session.Request.VehicleType, session.Request.ServiceID, s.Services)
	sub := buildSubmission(session.Request, entry, session.Pricing)
	log := s.logger().With(zap.String("sessionID", sessionID), zap.String("service", entry.ID))

	if session.Pricing.Deposit > 0 {
		if s.Payments == nil {
			return nil, apperror.NewConfiguration("Online payments are not available right now", nil)
		}
		intent, err := s.Payments.CreateIntent(ctx, models.PaymentIntentRequest{
			AmountMinor: ToMinorUnits(session.Pricing.Deposit),
			Currency:    s.Currency,
			BookingData: paymentBookingData(sub),
		})
		if err != nil {
			log.Warn("failed to create deposit payment intent", zap.Error(err))
			return nil, err
		}
		if intent.ID == "" {
			log.Warn("payment intent has no id", zap.String("clientSecret", redactSecret(intent.ClientSecret)))
			return nil, apperror.NewPayment("Failed to initialize payment", nil)
		}
		beginPayment(session, *intent, sub)
		session.UpdatedAt = s.now()
		if err := s.Store.Save(ctx, session); err != nil {
			return nil, err
		}
		log.Info("awaiting deposit", zap.Float64("deposit", session.Pricing.Deposit))
		return session, nil
	}

	ack, err := s.API.SubmitBooking(ctx, sub)
	if err != nil {
		log.Warn("booking submission failed", zap.Error(err))
		return nil, err
	}
	confirm(session, entry.Name, ack.BookingID, "", s.now())
	return s.finish(ctx, session, log)
}

// ConfirmPayment completes a deposit. On failure the session stays in paying and the slot stays free.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, sessionID, paymentIntentID string) (*models.BookingSession, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(session, models.StepPaying, "confirm a payment"); err != nil {
		return nil, err
	}
	if paymentIntentID == "" {
		return nil, apperror.NewValidation("payment intent id is required", "paymentIntentId")
	}
	expected := session.Pending.Intent.ID
	if expected == "" {
		return nil, apperror.NewPayment("This payment can no longer be confirmed, please go back and try again", nil)
	}
	if expected != paymentIntentID {
		return nil, apperror.NewValidation("payment does not belong to this booking", "paymentIntentId")
	}
	log := s.logger().With(zap.String("sessionID", sessionID), zap.String("paymentIntentID", paymentIntentID))

	conf, err := s.Payments.ConfirmPayment(ctx, paymentIntentID, session.Pending.Submission)
	if err != nil {
		log.Warn("deposit payment failed", zap.Error(err))
		session.Pending.LastError = apperror.Message(err)
		session.UpdatedAt = s.now()
		if saveErr := s.Store.Save(ctx, session); saveErr != nil {
			log.Error("failed to record payment error on session", zap.Error(saveErr))
		}
		return nil, err
	}

	confirm(session, session.Pending.Submission.ServiceType, conf.BookingID, paymentIntentID, s.now())
	return s.finish(ctx, session, log)
}

// Back abandons the pending payment and returns to the form.
func (s *DefaultBookingService) Back(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return s.transition(ctx, sessionID, models.StepPaying, "go back", backToSelecting)
}

// BookAnother starts a new, empty booking within the same session.
func (s *DefaultBookingService) BookAnother(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return s.transition(ctx, sessionID, models.StepConfirmed, "book another", resetForAnother)
}

func (s *DefaultBookingService) transition(ctx context.Context, sessionID string, from models.BookingStep, action string, apply func(*models.BookingSession)) (*models.BookingSession, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(session, from, action); err != nil {
		return nil, err
	}
	apply(session)
	session.UpdatedAt = s.now()
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// finish persists a confirmed session, then records it and queues its reminder.
// Those follow-ups are best effort: the backend already holds the booking.
func (s *DefaultBookingService) finish(ctx context.Context, session *models.BookingSession, log *zap.Logger) (*models.BookingSession, error) {
	session.UpdatedAt = s.now()
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("booking confirmed but session could not be saved: %w", err)
	}
	log.Info("booking confirmed",
		zap.String("date", session.Request.Date),
		zap.String("time", session.Request.Time),
		zap.String("bookingID", session.Confirmation.BookingID))

	if s.Recorder != nil {
		if err := s.Recorder.RecordBooking(ctx, bookingRecord(session)); err != nil {
			log.Error("failed to record booking", zap.Error(err))
		}
	}
	if s.Reminders != nil {
		start, err := slotStart(session.Request.Date, session.Request.Time, s.now().Location())
		if err == nil {
			err = s.Reminders.ScheduleReminder(ctx, reminderPayload(session), start)
		}
		if err != nil {
			log.Error("failed to schedule reminder", zap.Error(err))
		}
	}
	return session, nil
}

// redactSecret keeps only the prefix of a client secret for logs.
func redactSecret(secret string) string {
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:8] + "***"
}
