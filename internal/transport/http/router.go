package http

import (
	"net/http"

	"github.com/brightclass/verify-api/internal/application/invite"
	"github.com/brightclass/verify-api/internal/application/verification"
	"github.com/brightclass/verify-api/internal/config"
	"github.com/brightclass/verify-api/internal/transport/http/handler"
	appmiddleware "github.com/brightclass/verify-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", appmiddleware.OperatorKeyHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	verificationSvc := verification.NewService(verification.ServiceDeps{
		Config:   cfg,
		Mailer:   deps.Mailer,
		Limiter:  deps.Cooldown,
		Resolver: deps.Resolver,
	})
	inviteSvc := invite.NewService(cfg, deps.InviteRepo)

	healthH := handler.NewHealthHandler()
	verificationH := handler.NewVerificationHandler(verificationSvc, cfg)
	inviteH := handler.NewInviteHandler(inviteSvc, cfg)
	sessionH := handler.NewSessionHandler(cfg)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/verification/send", verificationH.Send)
		r.Get("/verification/confirm", verificationH.Confirm)
		r.Post("/verification/confirm", verificationH.Confirm)
		r.Get("/verification/status", verificationH.Status)

		r.Post("/sessions/signout", sessionH.Signout)

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireVerified(deps.Resolver))
			r.With(sensitiveRL.Limit).Post("/teacher/redeem", inviteH.Redeem)
		})

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireOperator(cfg.OperatorAPIKey))
			r.Post("/teacher/invites", inviteH.Create)
		})
	})

	return r
}
