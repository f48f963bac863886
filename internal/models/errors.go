package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrUnauthenticated      = errors.New("invalid or missing API key")
	ErrForbidden            = errors.New("IP address not allowed")
	ErrRateLimited          = errors.New("rate limit exceeded")
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("payment not found")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
	ErrGatewayRejected      = errors.New("payment gateway rejected the request")
	ErrRateUnavailable      = errors.New("exchange rate unavailable")
	ErrRefundExceedsBalance = errors.New("refund amount exceeds refundable balance")
	ErrNotRefundable        = errors.New("payment is not refundable")
	ErrRefundInProgress     = errors.New("a refund is already in progress")
	ErrIllegalTransition    = errors.New("illegal payment state transition")
	ErrAlreadyApplied       = errors.New("transition already applied")
	ErrInvalidSignature     = errors.New("invalid webhook signature")
)

// ValidationError carries field level messages. It matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("validation failed (%s)", strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// RateLimitError matches ErrRateLimited and tells the caller when to retry.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter.Round(time.Second))
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// GatewayError wraps an upstream failure with the processor's message.
type GatewayError struct {
	Kind    error
	Message string
	Status  int
}

func (e *GatewayError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (http %d)", e.Kind, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Kind
}

// PendingPaymentError is returned when a payment was recorded but the
// processor call that opens its checkout failed. The payment stays pending
// under Reference.
type PendingPaymentError struct {
	Reference string
	Err       error
}

func (e *PendingPaymentError) Error() string {
	return fmt.Sprintf("payment %s left pending: %v", e.Reference, e.Err)
}

func (e *PendingPaymentError) Unwrap() error {
	return e.Err
}
