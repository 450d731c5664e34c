package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"infinitewash/models"
	"infinitewash/services/apperror"
)

const (
	createSubscriptionPath = "/api/v2/create-subscription"
	checkoutSessionPath    = "/api/stripe/session/"
	newsletterPath         = "/api/subscribe"
)

type newsletterRequest struct {
	Email string `json:"email"`
}

// CreateSubscription registers a recurring service. A 4xx answer carries the backend's reason.
func (c *Client) CreateSubscription(ctx context.Context, sub models.SubscriptionSubmission) (*models.SubscriptionAck, error) {
	var ack models.SubscriptionAck
	status, err := c.post(ctx, createSubscriptionPath, sub, &ack)
	if err != nil {
		return nil, apperror.NewNetwork("Failed to create subscription. Please try again.", err)
	}
	if status >= http.StatusInternalServerError {
		return nil, apperror.NewNetwork("Failed to create subscription. Please try again.",
			fmt.Errorf("subscription API responded %d: %s", status, ack.Error))
	}
	if status >= http.StatusBadRequest || !ack.Success {
		msg := ack.Error
		if msg == "" {
			msg = "Unknown error"
		}
		return nil, apperror.NewValidation("Failed to create subscription: " + msg)
	}
	return &ack, nil
}

// CheckoutSession looks up a hosted checkout session by id.
func (c *Client) CheckoutSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+checkoutSessionPath+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, err
	}
	var res models.CheckoutSession
	status, err := c.do(req, &res)
	if err != nil {
		return nil, apperror.NewNetwork("Unable to retrieve booking details", err)
	}
	switch {
	case status == http.StatusNotFound:
		return nil, apperror.NewNotFound("Unable to retrieve booking details")
	case status >= http.StatusBadRequest:
		return nil, apperror.NewNetwork("Unable to retrieve booking details",
			fmt.Errorf("checkout session lookup responded %d", status))
	}
	return &res, nil
}

// SubscribeNewsletter adds email to the offers mailing list.
func (c *Client) SubscribeNewsletter(ctx context.Context, email string) (*models.NewsletterAck, error) {
	var ack models.NewsletterAck
	status, err := c.post(ctx, newsletterPath, newsletterRequest{Email: email}, &ack)
	if err != nil {
		return nil, apperror.NewNetwork("Network error. Please try again.", err)
	}
	if status >= http.StatusBadRequest || !ack.Success {
		return nil, apperror.NewNetwork("Subscription failed. Please try again.",
			fmt.Errorf("newsletter API responded %d: %s", status, ack.Message))
	}
	return &ack, nil
}
