package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/brightclass/verify-api/internal/application/invite"
	"github.com/brightclass/verify-api/internal/config"
	"github.com/brightclass/verify-api/internal/domain"
	"github.com/brightclass/verify-api/internal/pkg/cookie"
	"github.com/brightclass/verify-api/internal/pkg/validate"
	"github.com/brightclass/verify-api/internal/transport/http/middleware"
)

// InviteHandler handles teacher-invite redemption and provisioning.
type InviteHandler struct {
	svc invite.Service
	cfg *config.Config
}

func NewInviteHandler(svc invite.Service, cfg *config.Config) *InviteHandler {
	return &InviteHandler{svc: svc, cfg: cfg}
}

// Redeem runs behind RequireVerified, so the caller's email comes from the
// resolved status, never from the request body.
func (h *InviteHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	status, ok := middleware.StatusFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, domain.CodeNotVerified)
		return
	}
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeBadRequest)
		return
	}

	tok, err := h.svc.Redeem(r.Context(), status.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingInput):
			writeError(w, http.StatusBadRequest, domain.CodeBadRequest)
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, domain.CodeInvalidCode)
		default:
			httpError(w, err)
		}
		return
	}

	w.Header().Add("Set-Cookie", cookie.BuildSetCookie(cookie.TeacherCookie, tok, cookie.Options{
		MaxAge: int(h.cfg.SessionTTL / time.Second),
		Domain: cookie.ComputeDomain(r.Host),
		Secure: h.cfg.Production(),
	}))
	writeJSON(w, http.StatusOK, Envelope{OK: true, Role: domain.RoleTeacher})
}

// Create provisions an invite code. Runs behind RequireOperator.
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeBadRequest)
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeBadRequest)
		return
	}
	code, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, Envelope{OK: true, Code: code})
}
