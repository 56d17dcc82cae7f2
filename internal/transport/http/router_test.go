package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brightclass/verify-api/internal/config"
	"github.com/brightclass/verify-api/internal/domain"
	"github.com/brightclass/verify-api/internal/infrastructure/backend"
	"github.com/brightclass/verify-api/internal/pkg/ratelimit"
	pkgtoken "github.com/brightclass/verify-api/internal/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct{ to, subject, text, html string }

type fakeMailer struct{ sent []sentMail }

func (f *fakeMailer) SendEmail(to, subject, text, html string) error {
	f.sent = append(f.sent, sentMail{to, subject, text, html})
	return nil
}

func testRouter(t *testing.T) (http.Handler, *config.Config, *fakeMailer) {
	t.Helper()
	cfg := &config.Config{
		AppEnv:              "development",
		VerifyTokenSecret:   "verify-secret",
		SessionTokenSecret:  "session-secret",
		TeacherCookieSecret: "teacher-secret",
		FrontendBaseURL:     "https://brightclass.app",
		VerifyTokenTTL:      30 * time.Minute,
		SessionTTL:          30 * 24 * time.Hour,
		SendCooldown:        time.Minute,
		AllowedOrigins:      []string{"*"},
	}
	ml := &fakeMailer{}
	deps := &Deps{
		Mailer:   ml,
		Resolver: backend.NewClient(""), // no backend: everything resolves to guest
		Cooldown: ratelimit.New(),
	}
	return NewRouter(cfg, deps), cfg, ml
}

func TestRouter_HealthPing(t *testing.T) {
	r, _, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/health-check/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_SendThenConfirm_EndToEnd(t *testing.T) {
	r, cfg, ml := testRouter(t)

	body, _ := json.Marshal(map[string]string{"email": "a@b.com"})
	req := httptest.NewRequest(http.MethodPost, "/v1/verification/send", bytes.NewReader(body))
	req.RemoteAddr = "1.2.3.4:1000"
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, ml.sent, 1)
	assert.Equal(t, "a@b.com", ml.sent[0].to)
	assert.Contains(t, ml.sent[0].text, cfg.FrontendBaseURL+"/verify?token=")

	// Exchange a verify token for a session cookie, the way the emailed link would.
	tok, err := pkgtoken.Sign(domain.TokenPayload{Email: "a@b.com", Purpose: domain.PurposeVerify}, cfg.VerifyTokenSecret, cfg.VerifyTokenTTL)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/v1/verification/confirm?token="+tok, nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, cfg.FrontendBaseURL+"/verified", rr.Header().Get("Location"))

	setCookie := rr.Header().Get("Set-Cookie")
	require.Contains(t, setCookie, "session_token=")
}

func TestRouter_SendTwice_RateLimited(t *testing.T) {
	r, _, _ := testRouter(t)

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		body, _ := json.Marshal(map[string]string{"email": "a@b.com"})
		req := httptest.NewRequest(http.MethodPost, "/v1/verification/send", bytes.NewReader(body))
		req.RemoteAddr = "1.2.3.4:1000"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, want, rr.Code, "attempt %d", i+1)
	}
}

func TestRouter_RedeemUnverified_403(t *testing.T) {
	r, _, _ := testRouter(t)

	body, _ := json.Marshal(map[string]string{"code": "id.secret"})
	req := httptest.NewRequest(http.MethodPost, "/v1/teacher/redeem", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), domain.CodeNotVerified)
}

func TestRouter_CreateInviteWithoutOperatorKey_401(t *testing.T) {
	r, _, _ := testRouter(t)

	body, _ := json.Marshal(map[string]string{"note": "x"})
	req := httptest.NewRequest(http.MethodPost, "/v1/teacher/invites", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRouter_StatusWithoutSession_Guest(t *testing.T) {
	r, _, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/verification/status", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		OK       bool   `json:"ok"`
		Verified bool   `json:"verified"`
		Role     string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.OK)
	assert.False(t, env.Verified)
	assert.Equal(t, domain.RoleGuest, env.Role)
}
