package invite

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/brightclass/verify-api/internal/config"
	"github.com/brightclass/verify-api/internal/domain"
	"github.com/brightclass/verify-api/internal/pkg/id"
	pkgtoken "github.com/brightclass/verify-api/internal/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

const (
	secretLen       = 24
	defaultMaxUses  = 1
	defaultTTLHours = 24 * 30
)

// Store is the invite persistence the service needs.
type Store interface {
	Put(ctx context.Context, inv *domain.TeacherInvite) error
	Get(ctx context.Context, inviteID string) (*domain.TeacherInvite, error)
	ConsumeUse(ctx context.Context, inviteID string) error
}

type Service interface {
	// Redeem exchanges a valid invite code for a signed teacher token.
	Redeem(ctx context.Context, email, code string) (string, error)
	// Create provisions a new invite and returns the one-time code.
	Create(ctx context.Context, req domain.CreateInviteRequest) (string, error)
}

type service struct {
	cfg   *config.Config
	store Store
}

func NewService(cfg *config.Config, store Store) Service {
	return &service{cfg: cfg, store: store}
}

// Redeem validates code against the stored invite and mints a teacher token
// for email. All validation failures collapse to ErrUnauthorized so a caller
// cannot distinguish unknown, expired and exhausted codes.
func (s *service) Redeem(ctx context.Context, email, code string) (string, error) {
	if email == "" || code == "" {
		return "", fmt.Errorf("email and code required: %w", domain.ErrMissingInput)
	}
	inviteID, secret, ok := strings.Cut(strings.TrimSpace(code), ".")
	if !ok || inviteID == "" || secret == "" {
		return "", fmt.Errorf("code shape: %w", domain.ErrUnauthorized)
	}

	inv, err := s.store.Get(ctx, inviteID)
	if err != nil {
		return "", fmt.Errorf("invite lookup: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(inv.CodeHash), []byte(secret)); err != nil {
		return "", fmt.Errorf("code mismatch: %w", domain.ErrUnauthorized)
	}
	if inv.ExpiresAt > 0 && inv.ExpiresAt < time.Now().Unix() {
		return "", fmt.Errorf("invite expired: %w", domain.ErrUnauthorized)
	}
	if err := s.store.ConsumeUse(ctx, inviteID); err != nil {
		return "", fmt.Errorf("invite spent: %w", domain.ErrUnauthorized)
	}

	teacherSecret, err := s.cfg.SecretFor(domain.PurposeTeacher)
	if err != nil {
		return "", err
	}
	tok, err := pkgtoken.Sign(domain.TokenPayload{
		Email:   email,
		Purpose: domain.PurposeTeacher,
		Invite:  inviteID,
	}, teacherSecret, s.cfg.SessionTTL)
	if err != nil {
		return "", err
	}
	slog.Info("teacher invite redeemed", "invite_id", inviteID, "email", email)
	return tok, nil
}

func (s *service) Create(ctx context.Context, req domain.CreateInviteRequest) (string, error) {
	if req.MaxUses <= 0 {
		req.MaxUses = defaultMaxUses
	}
	if req.TTLHours <= 0 {
		req.TTLHours = defaultTTLHours
	}

	secret, err := generateSecret(secretLen)
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	inv := &domain.TeacherInvite{
		InviteID:  id.New(),
		CodeHash:  string(hash),
		Note:      req.Note,
		MaxUses:   req.MaxUses,
		Uses:      0,
		ExpiresAt: now.Add(time.Duration(req.TTLHours) * time.Hour).Unix(),
		CreatedAt: now,
	}
	if err := s.store.Put(ctx, inv); err != nil {
		return "", err
	}
	slog.Info("teacher invite created", "invite_id", inv.InviteID, "max_uses", inv.MaxUses)
	return inv.InviteID + "." + secret, nil
}

func generateSecret(n int) (string, error) {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		b[i] = letters[idx.Int64()]
	}
	return string(b), nil
}
