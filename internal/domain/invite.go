package domain

import "time"

// TeacherInvite is a redeemable invite code granting the teacher role.
// PK: invite_id. The code handed to a teacher is "<invite_id>.<secret>";
// only the bcrypt hash of the secret half is stored.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type TeacherInvite struct {
	InviteID  string    `json:"id" dynamodbav:"invite_id"`
	CodeHash  string    `json:"-" dynamodbav:"code_hash"`
	Note      string    `json:"note,omitempty" dynamodbav:"note"`
	MaxUses   int       `json:"max_uses" dynamodbav:"max_uses"`
	Uses      int       `json:"uses" dynamodbav:"uses"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

// CreateInviteRequest is the operator request to provision an invite code.
type CreateInviteRequest struct {
	Note     string `json:"note"`
	MaxUses  int    `json:"max_uses" validate:"omitempty,min=1"`
	TTLHours int    `json:"ttl_hours" validate:"omitempty,min=1"`
}
