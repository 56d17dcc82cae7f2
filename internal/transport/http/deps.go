package http

import (
	"github.com/brightclass/verify-api/internal/application/invite"
	"github.com/brightclass/verify-api/internal/infrastructure/backend"
	"github.com/brightclass/verify-api/internal/infrastructure/mail"
	"github.com/brightclass/verify-api/internal/pkg/ratelimit"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	InviteRepo invite.Store
	Mailer     mail.Mailer
	Resolver   backend.StatusResolver
	Cooldown   *ratelimit.Cooldown
}
