// Package apperror defines the error kinds the booking portal surfaces to customers.
// None of them are retried automatically and none are fatal to the process.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind string

const (
	// Validation means a required field is missing; it never reaches the network.
	Validation Kind = "validation"
	// Network means a backend request failed or answered with a non-success status.
	Network Kind = "network"
	// Payment means the payment provider declined or rejected the card details.
	Payment Kind = "payment"
	// Configuration means the payment provider could not be initialised.
	Configuration Kind = "configuration"
	NotFound      Kind = "not_found"
	// InvalidTransition means the booking flow is not in a step that allows the action.
	InvalidTransition Kind = "invalid_transition"
	Unauthorized      Kind = "unauthorized"
	// RateLimited means the client sent too many requests in the current window.
	RateLimited Kind = "rate_limited"
)

type Error struct {
	Kind    Kind
	Message string
	Fields  []string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if len(e.Fields) > 0 {
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(e.Fields, ", "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewValidation(message string, fields ...string) *Error {
	return &Error{Kind: Validation, Message: message, Fields: fields}
}

func NewNetwork(message string, err error) *Error {
	return New(Network, message, err)
}

func NewPayment(message string, err error) *Error {
	return New(Payment, message, err)
}

func NewConfiguration(message string, err error) *Error {
	return New(Configuration, message, err)
}

func NewNotFound(message string) *Error {
	return New(NotFound, message, nil)
}

func NewUnauthorized(message string) *Error {
	return New(Unauthorized, message, nil)
}

func NewInvalidTransition(message string) *Error {
	return New(InvalidTransition, message, nil)
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case InvalidTransition:
		return http.StatusConflict
	case Payment:
		return http.StatusPaymentRequired
	case Network:
		return http.StatusBadGateway
	case Configuration:
		return http.StatusServiceUnavailable
	case Unauthorized:
		return http.StatusUnauthorized
	case RateLimited:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// Message is the user-facing text of err.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "An unexpected error occurred. Please try again later."
}
