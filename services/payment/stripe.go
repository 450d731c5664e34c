package payment

import (
	"context"

	"infinitewash/models"
	"infinitewash/services/apperror"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProvider creates and verifies intents directly against Stripe. When a backend is set
// it is still told about successful payments so it can record the booking.
type StripeProvider struct {
	sc             *client.API
	publishableKey string
	backend        Backend
}

func NewStripeProvider(secretKey, publishableKey string, backend Backend) (*StripeProvider, error) {
	if secretKey == "" {
		return nil, apperror.NewConfiguration("Stripe secret key is not configured", nil)
	}
	if publishableKey == "" {
		return nil, apperror.NewConfiguration("Stripe publishable key is not configured", nil)
	}
	return &StripeProvider{
		sc:             client.New(secretKey, nil),
		publishableKey: publishableKey,
		backend:        backend,
	}, nil
}

func (p *StripeProvider) CreateIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountMinor),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Description: stripe.String(req.BookingData.ServiceType + " deposit"),
		Metadata:    intentMetadata(req.BookingData),
	}
	if req.BookingData.CustomerEmail != "" {
		params.ReceiptEmail = stripe.String(req.BookingData.CustomerEmail)
	}
	params.Context = ctx

	pi, err := p.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, stripeError("Failed to initialize payment", err)
	}
	return &models.PaymentIntent{
		ID:             pi.ID,
		ClientSecret:   pi.ClientSecret,
		PublishableKey: p.publishableKey,
		AmountMinor:    pi.Amount,
		Currency:       string(pi.Currency),
	}, nil
}

func (p *StripeProvider) ConfirmPayment(ctx context.Context, paymentIntentID string, sub models.BookingSubmission) (*models.PaymentConfirmation, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := p.sc.PaymentIntents.Get(paymentIntentID, params)
	if err != nil {
		return nil, stripeError("Payment could not be verified", err)
	}
	if err := checkSucceeded(pi); err != nil {
		return nil, err
	}
	if p.backend == nil {
		return &models.PaymentConfirmation{Success: true, BookingID: pi.ID}, nil
	}
	return p.backend.ConfirmPayment(ctx, paymentIntentID, sub)
}

// checkSucceeded accepts only a settled intent; anything else is reported as a payment failure.
func checkSucceeded(pi *stripe.PaymentIntent) error {
	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		return nil
	}
	msg := "Payment has not been completed"
	if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
		msg = pi.LastPaymentError.Msg
	}
	return apperror.NewPayment(msg, nil)
}

func intentMetadata(d models.PaymentBookingData) map[string]string {
	return map[string]string{
		"customer_name":    d.CustomerName,
		"customer_email":   d.CustomerEmail,
		"customer_phone":   d.CustomerPhone,
		"service_type":     d.ServiceType,
		"vehicle_type":     d.VehicleType,
		"service_date":     d.ServiceDate,
		"service_time":     d.ServiceTime,
		"service_location": d.ServiceLocation,
	}
}

// stripeError keeps card errors user facing and treats everything else as a transport problem.
func stripeError(fallback string, err error) error {
	if serr, ok := err.(*stripe.Error); ok {
		switch serr.Type {
		case stripe.ErrorTypeCard:
			return apperror.NewPayment(serr.Msg, err)
		case stripe.ErrorTypeInvalidRequest:
			return apperror.NewPayment(fallback, err)
		}
	}
	return apperror.NewNetwork(fallback, err)
}
