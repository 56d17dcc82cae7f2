// Package token signs and verifies the compact two-part tokens used for
// verification links and session/teacher cookies.
//
// Wire format: base64url(payload JSON) + "." + base64url(HMAC-SHA256 digest).
// The algorithm is fixed — there is deliberately no header or algorithm field
// to negotiate, which closes the algorithm-confusion class of bugs entirely.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/brightclass/verify-api/internal/domain"
)

var enc = base64.RawURLEncoding

// Sign stamps iat/exp/v onto the payload, serialises it and returns the
// signed token string. Email, purpose and secret are all required.
func Sign(p domain.TokenPayload, secret string, ttl time.Duration) (string, error) {
	if p.Email == "" || p.Purpose == "" {
		return "", fmt.Errorf("email and purpose required: %w", domain.ErrMissingInput)
	}
	if secret == "" {
		return "", fmt.Errorf("empty signing secret: %w", domain.ErrMissingSecret)
	}
	now := time.Now().UTC()
	p.IssuedAt = now.Unix()
	p.ExpiresAt = now.Add(ttl).Unix()
	p.Version = domain.PayloadVersion

	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	encoded := enc.EncodeToString(raw)
	return encoded + "." + enc.EncodeToString(sign(encoded, secret)), nil
}

// Verify checks the token's signature and expiry against secret and returns
// the decoded payload. The signature is compared in constant time and is
// checked before the payload is ever parsed, so no claim is trusted until the
// bytes are known to be ours.
func Verify(tok, secret string) (*domain.TokenPayload, error) {
	if tok == "" || secret == "" {
		return nil, fmt.Errorf("token and secret required: %w", domain.ErrMissingInput)
	}
	parts := strings.Split(tok, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("want 2 token parts, got %d: %w", len(parts), domain.ErrMalformedToken)
	}

	gotSig, err := enc.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("decode signature: %w", domain.ErrMalformedToken)
	}
	if !hmac.Equal(gotSig, sign(parts[0], secret)) {
		return nil, domain.ErrBadSignature
	}

	raw, err := enc.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", domain.ErrMalformedPayload)
	}
	var p domain.TokenPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse payload: %w", domain.ErrMalformedPayload)
	}
	if p.ExpiresAt < time.Now().Unix() {
		return nil, domain.ErrExpired
	}
	return &p, nil
}

func sign(encodedPayload, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(encodedPayload))
	return mac.Sum(nil)
}
