package subscription

import (
	"context"

	"infinitewash/models"
)

// SubscriptionService sells recurring mobile services built from the booking catalog.
type SubscriptionService interface {
	Plans() []models.SubscriptionPlan
	Quote(planID string, vehicle models.VehicleType, frequency models.Frequency) (*models.SubscriptionQuote, error)
	Create(ctx context.Context, req models.SubscriptionRequest) (*models.SubscriptionConfirmation, error)
	CheckoutSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
	SubscribeNewsletter(ctx context.Context, email string) (*models.NewsletterAck, error)
}

// Backend is the part of the booking backend that owns subscriptions and the mailing list.
type Backend interface {
	CreateSubscription(ctx context.Context, sub models.SubscriptionSubmission) (*models.SubscriptionAck, error)
	CheckoutSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
	SubscribeNewsletter(ctx context.Context, email string) (*models.NewsletterAck, error)
}
