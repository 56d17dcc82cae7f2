package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightclass/verify-api/internal/config"
	"github.com/brightclass/verify-api/internal/infrastructure/backend"
	"github.com/brightclass/verify-api/internal/infrastructure/dynamo"
	"github.com/brightclass/verify-api/internal/infrastructure/mail"
	"github.com/brightclass/verify-api/internal/pkg/ratelimit"
	transporthttp "github.com/brightclass/verify-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		// Missing secrets are fatal. Starting without them would either break
		// every token check or tempt a guessable default.
		log.Fatalf("configuration invalid: %v", err)
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	deps := &transporthttp.Deps{
		InviteRepo: dynamo.NewInviteRepo(dynamoClient, cfg.DynamoTables.TeacherInvites),
		Mailer:     mail.NewMailer(cfg),
		Resolver:   backend.NewClient(cfg.BackendBaseURL),
		Cooldown:   ratelimit.New(),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
