package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Transport selection values for MAIL_TRANSPORT.
const (
	TransportSMTP   = "smtp"
	TransportResend = "resend"
)

// Config holds all application configuration read from the environment.
type Config struct {
	GeminiAPIKey string
	GeminiModel  string

	MailTransport string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	ResendAPIKey  string
	FromEmail     string
	FromName      string

	DatabasePath string
	Port         string
}

// Load reads configuration from .env and the process environment.
// Missing provider credentials are not fatal here; they surface as
// configuration errors when the affected operation is attempted.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables directly")
	}

	cfg := &Config{
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getenvDefault("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		MailTransport: getenvDefault("MAIL_TRANSPORT", TransportSMTP),
		SMTPHost:      getenvDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      587,
		SMTPUser:      firstNonEmpty(os.Getenv("SMTP_USER"), os.Getenv("GMAIL_USER")),
		SMTPPassword:  firstNonEmpty(os.Getenv("SMTP_PASSWORD"), os.Getenv("GMAIL_APP_PASSWORD")),
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		FromEmail:     os.Getenv("FROM_EMAIL"),
		FromName:      os.Getenv("FROM_NAME"),
		DatabasePath:  getenvDefault("DATABASE_PATH", "email_history.db"),
		Port:          getenvDefault("PORT", "8080"),
	}

	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", portStr, err)
		}
		cfg.SMTPPort = port
	}

	return cfg, nil
}

// MailConfigured reports whether the active transport has the
// credentials it needs; used by the health endpoint.
func (c *Config) MailConfigured() bool {
	if c.MailTransport == TransportResend {
		return c.ResendAPIKey != "" && c.FromEmail != ""
	}
	return c.SMTPUser != "" && c.SMTPPassword != ""
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
