package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/brightclass/verify-api/internal/domain"
)

// OperatorKeyHeader carries the operator API key on provisioning requests.
const OperatorKeyHeader = "X-Operator-Key"

// RequireOperator returns middleware that gates operator-only endpoints with
// a shared API key, compared in constant time. An empty configured key
// disables the endpoints entirely rather than letting everyone in.
func RequireOperator(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(OperatorKeyHeader)
			if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				writeJSONError(w, http.StatusUnauthorized, domain.CodeUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
