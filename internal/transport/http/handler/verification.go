package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/brightclass/verify-api/internal/application/verification"
	"github.com/brightclass/verify-api/internal/config"
	"github.com/brightclass/verify-api/internal/domain"
	"github.com/brightclass/verify-api/internal/pkg/cookie"
	"github.com/brightclass/verify-api/internal/transport/http/middleware"
)

// VerificationHandler handles the email verification flow endpoints.
type VerificationHandler struct {
	svc verification.Service
	cfg *config.Config
}

func NewVerificationHandler(svc verification.Service, cfg *config.Config) *VerificationHandler {
	return &VerificationHandler{svc: svc, cfg: cfg}
}

func (h *VerificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeInvalidEmail)
		return
	}
	if err := h.svc.Send(r.Context(), req.Email, middleware.RealIP(r)); err != nil {
		var rle *domain.RateLimitError
		switch {
		case errors.As(err, &rle):
			writeJSON(w, http.StatusTooManyRequests, Envelope{
				Error:        domain.CodeRateLimited,
				RetryAfterMs: rle.Retry.Milliseconds(),
			})
		case errors.Is(err, domain.ErrBadRequest):
			writeError(w, http.StatusBadRequest, domain.CodeInvalidEmail)
		case errors.Is(err, domain.ErrMissingSecret):
			writeError(w, http.StatusInternalServerError, domain.CodeInternal)
		default:
			writeError(w, http.StatusInternalServerError, domain.CodeSendFailed)
		}
		return
	}
	writeJSON(w, http.StatusOK, Envelope{OK: true})
}

// Confirm exchanges a verify token for a session cookie. A GET is a browser
// navigation from the emailed link, so it answers with redirects to
// human-readable pages; a POST is a fetch call and gets JSON.
func (h *VerificationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	tok := r.URL.Query().Get("token")
	if r.Method == http.MethodPost && tok == "" {
		var req struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			tok = req.Token
		}
	}

	result, err := h.svc.Confirm(r.Context(), tok)
	if err != nil {
		if r.Method == http.MethodGet {
			reason := domain.CodeInvalid
			if errors.Is(err, domain.ErrExpired) {
				reason = domain.CodeExpired
			}
			http.Redirect(w, r, h.cfg.FrontendBaseURL+"/verify-failed?reason="+reason, http.StatusSeeOther)
			return
		}
		httpError(w, err)
		return
	}

	w.Header().Add("Set-Cookie", cookie.BuildSetCookie(cookie.SessionCookie, result.SessionToken, cookie.Options{
		MaxAge: int(h.cfg.SessionTTL / time.Second),
		Domain: cookie.ComputeDomain(r.Host),
		Secure: h.cfg.Production(),
	}))

	if r.Method == http.MethodGet {
		http.Redirect(w, r, h.cfg.FrontendBaseURL+"/verified", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{OK: true, Email: result.Email})
}

func (h *VerificationHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.svc.Status(r.Context(), middleware.SessionToken(r))
	writeJSON(w, http.StatusOK, StatusEnvelope{
		OK:       true,
		Verified: st.Verified,
		Email:    st.Email,
		Role:     st.Role,
	})
}
