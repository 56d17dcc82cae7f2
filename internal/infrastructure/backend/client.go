// Package backend proxies verified/teacher status lookups to the
// backend-of-record. Nothing here is authoritative or cached: every check is
// resolved fresh, and every failure degrades to the guest status so an outage
// of the backend can never take a page render down with it.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/brightclass/verify-api/internal/domain"
)

const statusTimeout = 5 * time.Second

// StatusResolver resolves a session token to a verification status.
type StatusResolver interface {
	ResolveStatus(ctx context.Context, sessionToken string) domain.VerificationStatus
}

// Client talks to the backend-of-record's status endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a status client. baseURL may be empty, in which case every
// lookup resolves to guest.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: statusTimeout},
	}
}

// ResolveStatus asks the backend-of-record whether the bearer of sessionToken
// is verified. An empty token short-circuits to guest with no network call.
// Transport errors, non-2xx responses and malformed bodies all fail open to
// guest — they are logged, never surfaced.
func (c *Client) ResolveStatus(ctx context.Context, sessionToken string) domain.VerificationStatus {
	if sessionToken == "" || c.baseURL == "" {
		return domain.Guest()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/status", nil)
	if err != nil {
		slog.Warn("status request build failed", "err", err)
		return domain.Guest()
	}
	req.Header.Set("Authorization", "Bearer "+sessionToken)

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("backend status unreachable, failing open", "err", err)
		return domain.Guest()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("backend status returned non-2xx, failing open", "status", resp.StatusCode)
		return domain.Guest()
	}

	var body struct {
		Verified bool   `json:"verified"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Warn("backend status body malformed, failing open", "err", fmt.Errorf("decode status: %w", err))
		return domain.Guest()
	}

	role := body.Role
	if role == "" {
		role = domain.RoleGuest
	}
	return domain.VerificationStatus{Verified: body.Verified, Email: body.Email, Role: role}
}
