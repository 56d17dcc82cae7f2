package domain

// Token purposes. Each purpose is signed and verified with its own secret so a
// token minted for one flow can never be replayed into another, even though
// all three share the same wire format.
const (
	PurposeVerify  = "verify"
	PurposeSession = "verified_session"
	PurposeTeacher = "teacher"
)

// PayloadVersion is the current token payload schema version.
const PayloadVersion = 1

// TokenPayload is the set of claims carried inside a signed token.
type TokenPayload struct {
	Email     string `json:"email"`
	Purpose   string `json:"purpose"`
	Invite    string `json:"invite,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	Version   int    `json:"v"`
}
