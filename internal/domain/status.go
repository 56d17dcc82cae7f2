package domain

// Roles as reported by the backend-of-record.
const (
	RoleGuest   = "guest"
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// VerificationStatus is the per-request view of a caller's standing. It is
// derived from a session token (locally or via the backend-of-record) and is
// never cached beyond the request that resolved it.
type VerificationStatus struct {
	Verified bool   `json:"verified"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Guest is the zero-privilege status every failing or anonymous check
// resolves to.
func Guest() VerificationStatus {
	return VerificationStatus{Verified: false, Email: "", Role: RoleGuest}
}
