package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brightclass/verify-api/internal/domain"
)

// Envelope is the generic response wrapper. Every endpoint answers with
// ok:true plus payload fields, or ok:false plus a stable error code.
type Envelope struct {
	OK           bool   `json:"ok"`
	Error        string `json:"error,omitempty"`
	RetryAfterMs int64  `json:"retry_after_ms,omitempty"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role,omitempty"`
	Code         string `json:"code,omitempty"`
}

// StatusEnvelope wraps verification-status responses.
type StatusEnvelope struct {
	OK       bool   `json:"ok"`
	Verified bool   `json:"verified"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, Envelope{Error: code})
}

// httpError maps domain sentinel errors onto HTTP status and wire codes.
// The three decoding/signature failures collapse into one "invalid" code so
// responses cannot be used as a signature oracle; only expiry is distinct,
// because clients legitimately prompt "resend" on it.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrExpired):
		writeError(w, http.StatusBadRequest, domain.CodeExpired)
	case errors.Is(err, domain.ErrMalformedToken),
		errors.Is(err, domain.ErrBadSignature),
		errors.Is(err, domain.ErrMalformedPayload):
		writeError(w, http.StatusBadRequest, domain.CodeInvalid)
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, domain.CodeRateLimited)
	case errors.Is(err, domain.ErrMissingInput), errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, domain.CodeBadRequest)
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, domain.CodeUnauthorized)
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, domain.CodeNotVerified)
	default:
		writeError(w, http.StatusInternalServerError, domain.CodeInternal)
	}
}
