package verification

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/brightclass/verify-api/internal/config"
	"github.com/brightclass/verify-api/internal/domain"
	"github.com/brightclass/verify-api/internal/infrastructure/backend"
	"github.com/brightclass/verify-api/internal/infrastructure/mail"
	"github.com/brightclass/verify-api/internal/pkg/ratelimit"
	pkgtoken "github.com/brightclass/verify-api/internal/pkg/token"
	"github.com/brightclass/verify-api/internal/pkg/validate"
)

// ConfirmResult is the outcome of a successful verify-token exchange.
type ConfirmResult struct {
	SessionToken string
	Email        string
}

type Service interface {
	// Send rate-limits by ip and email, then mails a verification link.
	Send(ctx context.Context, email, ip string) error
	// Confirm exchanges a verify token for a long-lived session token.
	Confirm(ctx context.Context, tok string) (*ConfirmResult, error)
	// Status resolves the caller's standing from their session token.
	Status(ctx context.Context, sessionToken string) domain.VerificationStatus
}

type ServiceDeps struct {
	Config   *config.Config
	Mailer   mail.Mailer
	Limiter  *ratelimit.Cooldown
	Resolver backend.StatusResolver
}

type service struct {
	cfg      *config.Config
	mailer   mail.Mailer
	limiter  *ratelimit.Cooldown
	resolver backend.StatusResolver
}

func NewService(deps ServiceDeps) Service {
	return &service{
		cfg:      deps.Config,
		mailer:   deps.Mailer,
		limiter:  deps.Limiter,
		resolver: deps.Resolver,
	}
}

func (s *service) Send(ctx context.Context, email, ip string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Email(email); err != nil {
		return fmt.Errorf("invalid email %q: %w", email, domain.ErrBadRequest)
	}

	for _, key := range []string{ratelimit.IPKey(ip), ratelimit.EmailKey(email)} {
		if ok, retry := s.limiter.Hit(key, s.cfg.SendCooldown); !ok {
			return &domain.RateLimitError{Retry: retry}
		}
	}

	secret, err := s.cfg.SecretFor(domain.PurposeVerify)
	if err != nil {
		return err
	}
	tok, err := pkgtoken.Sign(domain.TokenPayload{Email: email, Purpose: domain.PurposeVerify}, secret, s.cfg.VerifyTokenTTL)
	if err != nil {
		return err
	}

	link := s.cfg.FrontendBaseURL + "/verify?token=" + url.QueryEscape(tok)
	minutes := int(s.cfg.VerifyTokenTTL / time.Minute)
	text := fmt.Sprintf("Confirm your email address by opening this link:\n\n%s\n\nThe link expires in %d minutes. If you didn't request this, you can ignore it.", link, minutes)
	html := fmt.Sprintf(`<p>Confirm your email address:</p><p><a href="%s">Verify my email</a></p><p>The link expires in %d minutes. If you didn't request this, you can ignore it.</p>`, link, minutes)

	if err := s.mailer.SendEmail(email, "Verify your email", text, html); err != nil {
		slog.Error("verification email send failed", "email", email, "err", err)
		return fmt.Errorf("send verification email: %w", err)
	}
	slog.Info("verification email sent", "email", email)
	return nil
}

func (s *service) Confirm(ctx context.Context, tok string) (*ConfirmResult, error) {
	verifySecret, err := s.cfg.SecretFor(domain.PurposeVerify)
	if err != nil {
		return nil, err
	}
	payload, err := pkgtoken.Verify(tok, verifySecret)
	if err != nil {
		return nil, err
	}
	if payload.Purpose != domain.PurposeVerify {
		return nil, fmt.Errorf("purpose %q not valid for confirmation: %w", payload.Purpose, domain.ErrBadSignature)
	}

	sessionSecret, err := s.cfg.SecretFor(domain.PurposeSession)
	if err != nil {
		return nil, err
	}
	sessionTok, err := pkgtoken.Sign(domain.TokenPayload{Email: payload.Email, Purpose: domain.PurposeSession}, sessionSecret, s.cfg.SessionTTL)
	if err != nil {
		return nil, err
	}
	slog.Info("email verified", "email", payload.Email)
	return &ConfirmResult{SessionToken: sessionTok, Email: payload.Email}, nil
}

func (s *service) Status(ctx context.Context, sessionToken string) domain.VerificationStatus {
	return s.resolver.ResolveStatus(ctx, sessionToken)
}
