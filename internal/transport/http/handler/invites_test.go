package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brightclass/verify-api/internal/domain"
	"github.com/brightclass/verify-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockInviteSvc struct{ mock.Mock }

func (m *mockInviteSvc) Redeem(ctx context.Context, email, code string) (string, error) {
	args := m.Called(ctx, email, code)
	return args.String(0), args.Error(1)
}

func (m *mockInviteSvc) Create(ctx context.Context, req domain.CreateInviteRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// verifiedReq builds a request carrying a resolved verified status, the way
// RequireVerified injects it.
func verifiedReq(t *testing.T, email string, body []byte) *http.Request {
	t.Helper()
	resolver := &staticResolver{status: domain.VerificationStatus{Verified: true, Email: email, Role: domain.RoleStudent}}
	outer := httptest.NewRequest(http.MethodPost, "/v1/teacher/redeem", bytes.NewReader(body))

	var inner *http.Request
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { inner = r })
	middleware.RequireVerified(resolver)(capture).ServeHTTP(httptest.NewRecorder(), outer)
	require.NotNil(t, inner)
	return inner
}

type staticResolver struct{ status domain.VerificationStatus }

func (s *staticResolver) ResolveStatus(context.Context, string) domain.VerificationStatus {
	return s.status
}

// --- Redeem ---

func TestRedeem_OK_SetsTeacherCookie(t *testing.T) {
	svc := &mockInviteSvc{}
	svc.On("Redeem", mock.Anything, "t@school.edu", "id.secret").Return("teacher.tok", nil)
	h := NewInviteHandler(svc, testConfig())

	body, _ := json.Marshal(map[string]string{"code": "id.secret"})
	rr := httptest.NewRecorder()
	h.Redeem(rr, verifiedReq(t, "t@school.edu", body))

	assert.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.True(t, env.OK)
	assert.Equal(t, domain.RoleTeacher, env.Role)

	setCookie := rr.Header().Get("Set-Cookie")
	assert.Contains(t, setCookie, "teacher_token=")
	assert.Contains(t, setCookie, "HttpOnly")
}

func TestRedeem_InvalidCode_401(t *testing.T) {
	svc := &mockInviteSvc{}
	svc.On("Redeem", mock.Anything, mock.Anything, mock.Anything).Return("", domain.ErrUnauthorized)
	h := NewInviteHandler(svc, testConfig())

	body, _ := json.Marshal(map[string]string{"code": "bogus"})
	rr := httptest.NewRecorder()
	h.Redeem(rr, verifiedReq(t, "t@school.edu", body))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, domain.CodeInvalidCode, decodeEnvelope(t, rr).Error)
}

func TestRedeem_NoStatusInContext_403(t *testing.T) {
	h := NewInviteHandler(&mockInviteSvc{}, testConfig())

	body, _ := json.Marshal(map[string]string{"code": "id.secret"})
	req := httptest.NewRequest(http.MethodPost, "/v1/teacher/redeem", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Redeem(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, domain.CodeNotVerified, decodeEnvelope(t, rr).Error)
}

func TestRedeem_BadBody_400(t *testing.T) {
	h := NewInviteHandler(&mockInviteSvc{}, testConfig())

	rr := httptest.NewRecorder()
	h.Redeem(rr, verifiedReq(t, "t@school.edu", []byte("{not json")))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- Create ---

func TestCreateInvite_OK(t *testing.T) {
	svc := &mockInviteSvc{}
	svc.On("Create", mock.Anything, mock.AnythingOfType("domain.CreateInviteRequest")).Return("01ABC.secret", nil)
	h := NewInviteHandler(svc, testConfig())

	body, _ := json.Marshal(domain.CreateInviteRequest{Note: "pilot", MaxUses: 5})
	req := httptest.NewRequest(http.MethodPost, "/v1/teacher/invites", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.True(t, env.OK)
	assert.Equal(t, "01ABC.secret", env.Code)
}

func TestCreateInvite_NegativeMaxUses_400(t *testing.T) {
	h := NewInviteHandler(&mockInviteSvc{}, testConfig())

	body, _ := json.Marshal(map[string]int{"max_uses": -1})
	req := httptest.NewRequest(http.MethodPost, "/v1/teacher/invites", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
