package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"infinitewash/models"
	"infinitewash/services/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	subs []models.BookingSubmission
	err  error
}

func (f *fakeAPI) SubmitBooking(_ context.Context, sub models.BookingSubmission) (*models.BookingAck, error) {
	f.subs = append(f.subs, sub)
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingAck{Success: true, BookingID: "bk_direct"}, nil
}

type fakePayments struct {
	intents    []models.PaymentIntentRequest
	confirmed  []string
	createErr  error
	confirmErr error
	noIntentID bool
}

func (f *fakePayments) CreateIntent(_ context.Context, req models.PaymentIntentRequest) (*models.PaymentIntent, error) {
	f.intents = append(f.intents, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	id := "pi_123"
	if f.noIntentID {
		id = ""
	}
	return &models.PaymentIntent{
		ID:             id,
		ClientSecret:   "pi_123_secret_abc",
		PublishableKey: "pk_test_123",
		AmountMinor:    req.AmountMinor,
		Currency:       req.Currency,
	}, nil
}

func (f *fakePayments) ConfirmPayment(_ context.Context, id string, _ models.BookingSubmission) (*models.PaymentConfirmation, error) {
	f.confirmed = append(f.confirmed, id)
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return &models.PaymentConfirmation{Success: true, BookingID: "bk_paid"}, nil
}

type fakeRecorder struct {
	records []models.BookingRecord
}

func (f *fakeRecorder) RecordBooking(_ context.Context, r models.BookingRecord) error {
	f.records = append(f.records, r)
	return nil
}

type fakeReminders struct {
	starts []time.Time
}

func (f *fakeReminders) ScheduleReminder(_ context.Context, _ models.ReminderPayload, start time.Time) error {
	f.starts = append(f.starts, start)
	return nil
}

type testHarness struct {
	svc       *DefaultBookingService
	api       *fakeAPI
	payments  *fakePayments
	recorder  *fakeRecorder
	reminders *fakeReminders
}

var testNow = time.Date(2030, 1, 10, 9, 30, 0, 0, time.UTC)

func newHarness() *testHarness {
	h := &testHarness{
		api:       &fakeAPI{},
		payments:  &fakePayments{},
		recorder:  &fakeRecorder{},
		reminders: &fakeReminders{},
	}
	h.svc = &DefaultBookingService{
		Store:     NewMemorySessionStore(time.Hour),
		API:       h.api,
		Payments:  h.payments,
		Recorder:  h.recorder,
		Reminders: h.reminders,
		Services:  DefaultCatalog(),
		Currency:  "gbp",
		Now:       func() time.Time { return testNow },
	}
	return h
}

func strPtr(s string) *string { return &s }

func completePatch(vehicle models.VehicleType, serviceID string, location models.ServiceLocation) models.BookingRequestPatch {
	return models.BookingRequestPatch{
		VehicleType:     &vehicle,
		ServiceID:       &serviceID,
		ServiceLocation: &location,
		Date:            strPtr("2030-01-15"),
		Time:            strPtr("10:00"),
		Customer: &models.CustomerPatch{
			Name:     strPtr("Sam Taylor"),
			Email:    strPtr("sam@example.com"),
			Phone:    strPtr("07400000000"),
			Address:  strPtr("1 Friar Gate, Derby"),
			Postcode: strPtr("DE1 1AA"),
		},
	}
}

func (h *testHarness) startFilled(t *testing.T, vehicle models.VehicleType, serviceID string, location models.ServiceLocation) string {
	t.Helper()
	ctx := context.Background()
	session, err := h.svc.StartSession(ctx)
	require.NoError(t, err)
	require.Equal(t, models.StepSelecting, session.Step)
	_, err = h.svc.UpdateRequest(ctx, session.SessionID, completePatch(vehicle, serviceID, location))
	require.NoError(t, err)
	return session.SessionID
}

func TestZeroDepositSubmitSkipsPayment(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	id := h.startFilled(t, models.VehicleMedium, "full-valet", models.LocationUnit)

	session, err := h.svc.Submit(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, models.StepConfirmed, session.Step)
	assert.Empty(t, h.payments.intents)
	require.Len(t, h.api.subs, 1)
	sub := h.api.subs[0]
	assert.Equal(t, "Full Valet", sub.ServiceType)
	assert.Equal(t, "Medium Car", sub.VehicleType)
	assert.Equal(t, "Visit Our Unit", sub.ServiceLocation)
	assert.Equal(t, "Unit Visit", sub.Address)
	assert.Equal(t, 55.0, sub.TotalAmount)
	assert.Zero(t, sub.DepositAmount)

	assert.True(t, session.BookedSlots.Contains("2030-01-15", "10:00"))
	require.NotNil(t, session.Confirmation)
	assert.Equal(t, "bk_direct", session.Confirmation.BookingID)

	require.Len(t, h.recorder.records, 1)
	assert.Equal(t, models.BookingConfirmed, h.recorder.records[0].Status)
	assert.Equal(t, []time.Time{time.Date(2030, 1, 15, 10, 0, 0, 0, time.UTC)}, h.reminders.starts)
}

func TestSubmitWithoutEmailNeverReachesNetwork(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	id := h.startFilled(t, models.VehicleSmall, "stage2-polishing", models.LocationUnit)
	_, err := h.svc.UpdateRequest(ctx, id, models.BookingRequestPatch{Customer: &models.CustomerPatch{Email: strPtr("")}})
	require.NoError(t, err)

	_, err = h.svc.Submit(ctx, id)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.Validation))
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "customer.email")

	assert.Empty(t, h.api.subs)
	assert.Empty(t, h.payments.intents)
	session, err := h.svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StepSelecting, session.Step)
}

func TestSubmitMobileNeedsAddressAndPostcode(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	id := h.startFilled(t, models.VehicleSmall, "car-wash", models.LocationMobile)
	_, err := h.svc.UpdateRequest(ctx, id, models.BookingRequestPatch{
		Customer: &models.CustomerPatch{Address: strPtr(""), Postcode: strPtr(" ")},
	})
	require.NoError(t, err)

	_, err = h.svc.Submit(ctx, id)
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.Validation, appErr.Kind)
	assert.ElementsMatch(t, []string{"customer.address", "customer.postcode"}, appErr.Fields)
	assert.Empty(t, h.api.subs)
}

func TestSubmitRejectsInvalidDetails(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	id := h.startFilled(t, models.VehicleSmall, "car-wash", models.LocationUnit)
	_, err := h.svc.UpdateRequest(ctx, id, models.BookingRequestPatch{
		Date: strPtr("2030-01-09"),
		Time: strPtr("19:00"),
	})
	require.NoError(t, err)

	_, err = h.svc.Submit(ctx, id)
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.ElementsMatch(t, []string{"date", "time"}, appErr.Fields)
}

func TestDepositFlowConfirmsAfterPayment(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	id := h.startFilled(t, models.VehicleLarge, "full-detailing", models.LocationMobile)

	session, err := h.svc.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StepPaying, session.Step)
	assert.Equal(t, models.PricingResult{BasePrice: 300, Deposit: 70, DepositPercentage: 23}, session.Pricing)
	require.Len(t, h.payments.intents, 1)
	assert.Equal(t, int64(7000), h.payments.intents[0].AmountMinor)
	assert.Equal(t, "gbp", h.payments.intents[0].Currency)
	assert.Equal(t, "1 Friar Gate, Derby", h.payments.intents[0].BookingData.Address)
	require.NotNil(t, session.Pending)
	assert.Equal(t, "pi_123_secret_abc", session.Pending.Intent.ClientSecret)
	assert.False(t, session.BookedSlots.Contains("2030-01-15", "10:00"))
	assert.Empty(t, h.api.subs)

	session, err = h.svc.ConfirmPayment(ctx, id, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirmed, session.Step)
	assert.Nil(t, session.Pending)
	assert.True(t, session.BookedSlots.Contains("2030-01-15", "10:00"))
	assert.Equal(t, "pi_123", session.Confirmation.PaymentIntentID)
	assert.Equal(t, "bk_paid", session.Confirmation.BookingID)
	assert.Equal(t, "Full Detailing", session.Confirmation.ServiceName)
	require.Len(t, h.recorder.records, 1)
	assert.Equal(t, 70.0, h.recorder.records[0].DepositAmount)
}

func TestPaymentFailureKeepsSessionPaying(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	id := h.startFilled(t, models.VehicleSmall, "stage2-polishing", models.LocationUnit)
	_, err := h.svc.Submit(ctx, id)
	require.NoError(t, err)

	h.payments.confirmErr = apperror.NewPayment("Your card was declined.", nil)
	_, err = h.svc.ConfirmPayment(ctx, id, "pi_123")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.Payment))

	session, err := h.svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StepPaying, session.Step)
	assert.Equal(t, "Your card was declined.", session.Pending.LastError)
	assert.Zero(t, session.BookedSlots.Len())
	assert.Empty(t, h.recorder.records)

	h.payments.confirmErr = nil
	session, err = h.svc.ConfirmPayment(ctx, id, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirmed, session.Step)
}

func TestConfirmPaymentRejectsForeignIntent(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	id := h.startFilled(t, models.VehicleSmall, "stage2-polishing", models.LocationUnit)
	_, err := h.svc.Submit(ctx, id)
	require.NoError(t, err)

	_, err = h.svc.ConfirmPayment(ctx, id, "pi_other")
	assert.True(t, apperror.Is(err, apperror.Validation))
	assert.Empty(t, h.payments.confirmed)
}

func TestConfirmPaymentOutsidePayingIsInvalid(t *testing.T) {
	h := newHarness()
	id := h.startFilled(t, models.VehicleSmall, "stage2-polishing", models.LocationUnit)

	_, err := h.svc.ConfirmPayment(context.Background(), id, "pi_123")
	assert.True(t, apperror.Is(err, apperror.InvalidTransition))
}

func TestBackDiscardsPendingPayment(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	id := h.startFilled(t, models.VehicleSmall, "stage2-polishing", models.LocationUnit)
	_, err := h.svc.Submit(ctx, id)
	require.NoError(t, err)

	session, err := h.svc.Back(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StepSelecting, session.Step)
	assert.Nil(t, session.Pending)
	assert.Equal(t, "stage2-polishing", session.Request.ServiceID)

	_, err = h.svc.Back(ctx, id)
	assert.True(t, apperror.Is(err, apperror.InvalidTransition))
}

func TestNetworkFailureLeavesBookingUncreated(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	id := h.startFilled(t, models.VehicleSmall, "car-wash", models.LocationUnit)

	h.api.err = apperror.NewNetwork("Failed to submit booking. Please try again.", errors.New("connection refused"))
	_, err := h.svc.Submit(ctx, id)
	assert.True(t, apperror.Is(err, apperror.Network))

	session, err := h.svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StepSelecting, session.Step)
	assert.Zero(t, session.BookedSlots.Len())

	h.api.err = nil
	session, err = h.svc.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirmed, session.Step)
	assert.Len(t, h.api.subs, 2)
}

func TestDepositWithoutPaymentProviderIsConfigurationError(t *testing.T) {
	h := newHarness()
	h.svc.Payments = nil
	id := h.startFilled(t, models.VehicleSmall, "full-detailing", models.LocationUnit)

	_, err := h.svc.Submit(context.Background(), id)
	assert.True(t, apperror.Is(err, apperror.Configuration))
}

func TestBookAnotherKeepsSessionSlots(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	id := h.startFilled(t, models.VehicleMedium, "mini-valet", models.LocationUnit)
	_, err := h.svc.Submit(ctx, id)
	require.NoError(t, err)

	session, err := h.svc.BookAnother(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StepSelecting, session.Step)
	assert.Equal(t, models.BookingRequest{}, session.Request)
	assert.Equal(t, models.PricingResult{}, session.Pricing)
	assert.Nil(t, session.Confirmation)

	slots, err := h.svc.AvailableSlots(ctx, id, "2030-01-15")
	require.NoError(t, err)
	assert.Len(t, slots, 10)
	assert.NotContains(t, slots, "10:00")

	// The same slot cannot be taken twice in one session.
	_, err = h.svc.UpdateRequest(ctx, id, completePatch(models.VehicleMedium, "mini-valet", models.LocationUnit))
	require.NoError(t, err)
	_, err = h.svc.Submit(ctx, id)
	assert.True(t, apperror.Is(err, apperror.Validation))
	assert.Len(t, h.api.subs, 1)
}

func TestUpdateRequestRecomputesPricing(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	id := h.startFilled(t, models.VehicleMedium, "full-valet", models.LocationUnit)

	session, err := h.svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 55.0, session.Pricing.BasePrice)

	van := models.VehicleVan
	session, err = h.svc.UpdateRequest(ctx, id, models.BookingRequestPatch{VehicleType: &van})
	require.NoError(t, err)
	assert.Equal(t, 70.0, session.Pricing.BasePrice)

	session, err = h.svc.UpdateRequest(ctx, id, models.BookingRequestPatch{ServiceID: strPtr("stage2-polishing")})
	require.NoError(t, err)
	assert.Equal(t, models.PricingResult{BasePrice: 550, Deposit: 275, DepositPercentage: 50}, session.Pricing)

	_, err = h.svc.Submit(ctx, id)
	require.NoError(t, err)
	_, err = h.svc.UpdateRequest(ctx, id, models.BookingRequestPatch{Time: strPtr("11:00")})
	assert.True(t, apperror.Is(err, apperror.InvalidTransition))
}

func TestAvailableSlotsValidatesDate(t *testing.T) {
	h := newHarness()
	session, err := h.svc.StartSession(context.Background())
	require.NoError(t, err)

	_, err = h.svc.AvailableSlots(context.Background(), session.SessionID, "15/01/2030")
	assert.True(t, apperror.Is(err, apperror.Validation))

	slots, err := h.svc.AvailableSlots(context.Background(), session.SessionID, "2030-01-15")
	require.NoError(t, err)
	assert.Equal(t, allSlots, slots)
}

func TestEndSessionTearsDownState(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	session, err := h.svc.StartSession(ctx)
	require.NoError(t, err)

	require.NoError(t, h.svc.EndSession(ctx, session.SessionID))
	_, err = h.svc.GetSession(ctx, session.SessionID)
	assert.True(t, apperror.Is(err, apperror.NotFound))
	assert.True(t, apperror.Is(h.svc.EndSession(ctx, session.SessionID), apperror.NotFound))
}

func TestIntentWithoutIDIsRejected(t *testing.T) {
	h := newHarness()
	h.payments.noIntentID = true
	ctx := context.Background()
	id := h.startFilled(t, models.VehicleSmall, "full-detailing", models.LocationUnit)

	_, err := h.svc.Submit(ctx, id)
	assert.True(t, apperror.Is(err, apperror.Payment))

	session, err := h.svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StepSelecting, session.Step)
	assert.Nil(t, session.Pending)
}

func TestConfirmRequiresKnownPendingIntent(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	id := h.startFilled(t, models.VehicleSmall, "full-detailing", models.LocationUnit)
	_, err := h.svc.Submit(ctx, id)
	require.NoError(t, err)

	// A session left paying with an intent whose id was never known.
	session, err := h.svc.GetSession(ctx, id)
	require.NoError(t, err)
	session.Pending.Intent.ID = ""
	require.NoError(t, h.svc.Store.Save(ctx, session))

	_, err = h.svc.ConfirmPayment(ctx, id, "pi_anything")
	assert.True(t, apperror.Is(err, apperror.Payment))
	assert.Empty(t, h.payments.confirmed)
}
