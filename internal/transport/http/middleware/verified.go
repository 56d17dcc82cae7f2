package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/brightclass/verify-api/internal/domain"
	"github.com/brightclass/verify-api/internal/infrastructure/backend"
	"github.com/brightclass/verify-api/internal/pkg/cookie"
)

type contextKey string

const statusKey contextKey = "verification_status"

// SessionToken extracts the caller's session token from the session cookie,
// falling back to an Authorization Bearer header. Returns "" when absent.
func SessionToken(r *http.Request) string {
	if tok := cookie.ExtractToken(r.Header.Get("Cookie"), cookie.SessionCookie); tok != "" {
		return tok
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// RequireVerified returns middleware that resolves the caller's verification
// status and rejects unverified callers with 403 not_verified. The resolved
// status is injected into the request context for the handler.
func RequireVerified(resolver backend.StatusResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			status := resolver.ResolveStatus(r.Context(), SessionToken(r))
			if !status.Verified {
				writeJSONError(w, http.StatusForbidden, domain.CodeNotVerified)
				return
			}
			ctx := context.WithValue(r.Context(), statusKey, status)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StatusFromContext extracts the resolved verification status from the request context.
func StatusFromContext(ctx context.Context) (domain.VerificationStatus, bool) {
	s, ok := ctx.Value(statusKey).(domain.VerificationStatus)
	return s, ok
}
