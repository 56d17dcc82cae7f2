package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/brightclass/verify-api/internal/domain"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// Per-purpose HMAC secrets. A verify-link token must never validate
	// against the session secret, so the three are kept strictly separate.
	VerifyTokenSecret   string
	SessionTokenSecret  string
	TeacherCookieSecret string

	FrontendBaseURL string
	BackendBaseURL  string

	VerifyTokenTTL time.Duration
	SessionTTL     time.Duration
	SendCooldown   time.Duration

	OperatorAPIKey string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	TeacherInvites string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		VerifyTokenSecret:   os.Getenv("VERIFY_TOKEN_SECRET"),
		SessionTokenSecret:  os.Getenv("SESSION_TOKEN_SECRET"),
		TeacherCookieSecret: os.Getenv("TEACHER_COOKIE_SECRET"),

		FrontendBaseURL: getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),
		BackendBaseURL:  getEnv("BACKEND_BASE_URL", ""),

		VerifyTokenTTL: time.Duration(getEnvInt("VERIFY_TOKEN_TTL_MINUTES", 30)) * time.Minute,
		SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_DAYS", 30)) * 24 * time.Hour,
		SendCooldown:   time.Duration(getEnvInt("SEND_COOLDOWN_SECONDS", 60)) * time.Second,

		OperatorAPIKey: os.Getenv("OPERATOR_API_KEY"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			TeacherInvites: getEnv("DYNAMO_TABLE_TEACHER_INVITES", "teacher_invites"),
		},

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 1025),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@brightclass.app"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// Production reports whether the service runs in production mode. Controls
// the Secure attribute on issued cookies.
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

// SecretFor returns the HMAC secret for the given token purpose.
func (c *Config) SecretFor(purpose string) (string, error) {
	var s string
	switch purpose {
	case domain.PurposeVerify:
		s = c.VerifyTokenSecret
	case domain.PurposeSession:
		s = c.SessionTokenSecret
	case domain.PurposeTeacher:
		s = c.TeacherCookieSecret
	default:
		return "", fmt.Errorf("unknown token purpose %q: %w", purpose, domain.ErrBadRequest)
	}
	if s == "" {
		return "", fmt.Errorf("no secret configured for purpose %q: %w", purpose, domain.ErrMissingSecret)
	}
	return s, nil
}

// Validate fails fast on misconfiguration that would otherwise surface as
// runtime 500s. Missing secrets are fatal — there is no guessable default.
func (c *Config) Validate() error {
	for _, purpose := range []string{domain.PurposeVerify, domain.PurposeSession, domain.PurposeTeacher} {
		if _, err := c.SecretFor(purpose); err != nil {
			return err
		}
	}
	if c.FrontendBaseURL == "" {
		return fmt.Errorf("FRONTEND_BASE_URL is required: %w", domain.ErrBadRequest)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
