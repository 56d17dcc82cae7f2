package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// Token verification failures. Handlers collapse ErrMalformedToken,
	// ErrBadSignature and ErrMalformedPayload into the single wire code
	// "invalid" so a probing client cannot tell which check failed.
	ErrMissingInput     = errors.New("missing input")
	ErrMalformedToken   = errors.New("malformed token")
	ErrBadSignature     = errors.New("bad signature")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrExpired          = errors.New("token expired")

	ErrRateLimited = errors.New("rate limited")

	// ErrMissingSecret indicates server misconfiguration. It is fatal at
	// startup and must never be papered over with a default secret.
	ErrMissingSecret = errors.New("missing secret")
)

// RateLimitError wraps ErrRateLimited with the remaining cooldown so the
// handler can emit a retry-after hint.
type RateLimitError struct {
	Retry time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry in %s", e.Retry)
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// Stable wire error codes returned in response envelopes.
const (
	CodeInvalidEmail = "invalid_email"
	CodeRateLimited  = "rate_limited"
	CodeInvalid      = "invalid"
	CodeExpired      = "expired"
	CodeSendFailed   = "send_failed"
	CodeNotVerified  = "not_verified"
	CodeInvalidCode  = "invalid_code"
	CodeUnauthorized = "unauthorized"
	CodeBadRequest   = "bad_request"
	CodeInternal     = "internal"
)
