package handler

import (
	"net/http"

	"github.com/brightclass/verify-api/internal/config"
	"github.com/brightclass/verify-api/internal/pkg/cookie"
)

// SessionHandler handles session lifecycle endpoints.
type SessionHandler struct {
	cfg *config.Config
}

func NewSessionHandler(cfg *config.Config) *SessionHandler {
	return &SessionHandler{cfg: cfg}
}

// Signout clears both the session and teacher cookies. Tokens themselves stay
// valid until expiry — there is no revocation list — so clearing the cookie
// is the whole sign-out.
func (h *SessionHandler) Signout(w http.ResponseWriter, r *http.Request) {
	opts := cookie.Options{
		Domain: cookie.ComputeDomain(r.Host),
		Secure: h.cfg.Production(),
	}
	w.Header().Add("Set-Cookie", cookie.BuildClearCookie(cookie.SessionCookie, opts))
	w.Header().Add("Set-Cookie", cookie.BuildClearCookie(cookie.TeacherCookie, opts))
	writeJSON(w, http.StatusOK, Envelope{OK: true})
}
