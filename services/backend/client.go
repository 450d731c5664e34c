package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"infinitewash/models"
	"infinitewash/services/apperror"

	"go.uber.org/zap"
)

const (
	bookPath          = "/api/book"
	createIntentPath  = "/api/payment/create-payment-intent"
	confirmIntentPath = "/api/payment/confirm-payment"
	stripeConfigPath  = "/api/payment/stripe-config"

	defaultTimeout = 15 * time.Second
)

// Client talks to the booking backend that owns bookings and deposit payments.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		Logger:     logger,
	}
}

type createIntentResponse struct {
	Success      bool   `json:"success"`
	ClientSecret string `json:"client_secret"`
	Message      string `json:"message"`
}

type confirmPaymentRequest struct {
	PaymentIntentID string                   `json:"payment_intent_id"`
	BookingData     models.BookingSubmission `json:"booking_data"`
}

type stripeConfigResponse struct {
	Success        bool   `json:"success"`
	PublishableKey string `json:"publishable_key"`
}

// SubmitBooking creates a booking that needs no deposit.
func (c *Client) SubmitBooking(ctx context.Context, sub models.BookingSubmission) (*models.BookingAck, error) {
	var ack models.BookingAck
	status, err := c.post(ctx, bookPath, sub, &ack)
	if err != nil {
		return nil, apperror.NewNetwork("Failed to submit booking. Please try again.", err)
	}
	if status >= http.StatusBadRequest {
		return nil, apperror.NewNetwork("Failed to submit booking. Please try again.",
			fmt.Errorf("booking API responded %d: %s", status, ack.Message))
	}
	ack.Success = true
	return &ack, nil
}

// CreatePaymentIntent opens a deposit payment. The backend only returns the client secret,
// so the intent id is taken from its "pi_..._secret_..." prefix.
func (c *Client) CreatePaymentIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntent, error) {
	var res createIntentResponse
	status, err := c.post(ctx, createIntentPath, req, &res)
	if err != nil {
		return nil, apperror.NewNetwork("Network error. Please try again.", err)
	}
	if status >= http.StatusBadRequest || !res.Success || res.ClientSecret == "" {
		msg := res.Message
		if msg == "" {
			msg = "Failed to initialize payment"
		}
		return nil, apperror.NewPayment(msg, fmt.Errorf("create payment intent responded %d", status))
	}
	return &models.PaymentIntent{
		ID:           IntentIDFromSecret(res.ClientSecret),
		ClientSecret: res.ClientSecret,
		AmountMinor:  req.AmountMinor,
		Currency:     req.Currency,
	}, nil
}

// ConfirmPayment tells the backend a deposit went through so it records the booking.
func (c *Client) ConfirmPayment(ctx context.Context, paymentIntentID string, sub models.BookingSubmission) (*models.PaymentConfirmation, error) {
	var res models.PaymentConfirmation
	_, err := c.post(ctx, confirmIntentPath, confirmPaymentRequest{PaymentIntentID: paymentIntentID, BookingData: sub}, &res)
	if err != nil {
		return nil, apperror.NewNetwork("Payment succeeded but confirmation failed. Please contact support.", err)
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = "Payment confirmation failed"
		}
		return nil, apperror.NewPayment(msg, nil)
	}
	return &res, nil
}

// PublishableKey fetches the card SDK key the backend is configured with.
func (c *Client) PublishableKey(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+stripeConfigPath, nil)
	if err != nil {
		return "", err
	}
	var res stripeConfigResponse
	if _, err := c.do(req, &res); err != nil {
		return "", apperror.NewNetwork("Failed to initialize payment system", err)
	}
	if !res.Success || res.PublishableKey == "" {
		return "", apperror.NewConfiguration("Failed to load payment system configuration", nil)
	}
	return res.PublishableKey, nil
}

// IntentIDFromSecret returns the intent id embedded in a client secret, or "" when it has none.
func IntentIDFromSecret(secret string) string {
	if i := strings.Index(secret, "_secret_"); i > 0 {
		return secret[:i]
	}
	return ""
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do sends req and decodes a JSON body into out. Non-2xx responses are returned with their status,
// a body that cannot be decoded only fails the call when the status was a success.
func (c *Client) do(req *http.Request, out interface{}) (int, error) {
	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Warn("backend request failed", zap.String("path", req.URL.Path), zap.Error(err))
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	c.Logger.Debug("backend request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil && resp.StatusCode < http.StatusBadRequest {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
