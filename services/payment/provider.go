package payment

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"infinitewash/models"
	"infinitewash/services/apperror"
	"infinitewash/services/booking"
)

const (
	ProviderBackend = "backend"
	ProviderStripe  = "stripe"
)

// Backend is the part of the booking backend client the providers rely on.
type Backend interface {
	CreatePaymentIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, paymentIntentID string, sub models.BookingSubmission) (*models.PaymentConfirmation, error)
	PublishableKey(ctx context.Context) (string, error)
}

// Config selects and configures the deposit provider.
type Config struct {
	Provider             string
	StripeSecretKey      string
	StripePublishableKey string
}

// NewProvider builds the provider named by cfg.Provider.
func NewProvider(cfg Config, backend Backend) (booking.PaymentProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderBackend:
		return NewBackendProvider(backend, cfg.StripePublishableKey), nil
	case ProviderStripe:
		sp, err := NewStripeProvider(cfg.StripeSecretKey, cfg.StripePublishableKey, backend)
		if err != nil {
			return nil, err
		}
		return sp, nil
	default:
		return nil, apperror.NewConfiguration(fmt.Sprintf("unknown payment provider %q", cfg.Provider), nil)
	}
}

// BackendProvider lets the booking backend create and confirm intents.
type BackendProvider struct {
	backend Backend

	mu             sync.Mutex
	publishableKey string
}

func NewBackendProvider(backend Backend, publishableKey string) *BackendProvider {
	return &BackendProvider{backend: backend, publishableKey: publishableKey}
}

func (p *BackendProvider) CreateIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntent, error) {
	key, err := p.key(ctx)
	if err != nil {
		return nil, err
	}
	intent, err := p.backend.CreatePaymentIntent(ctx, req)
	if err != nil {
		return nil, err
	}
	intent.PublishableKey = key
	return intent, nil
}

func (p *BackendProvider) ConfirmPayment(ctx context.Context, paymentIntentID string, sub models.BookingSubmission) (*models.PaymentConfirmation, error) {
	return p.backend.ConfirmPayment(ctx, paymentIntentID, sub)
}

// key returns the configured publishable key, asking the backend once when none is set.
func (p *BackendProvider) key(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.publishableKey != "" {
		return p.publishableKey, nil
	}
	key, err := p.backend.PublishableKey(ctx)
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", apperror.NewConfiguration("Failed to load payment system configuration", nil)
	}
	p.publishableKey = key
	return key, nil
}
