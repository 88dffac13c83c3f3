package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultSecretKey is the development placeholder for SECRET_KEY.
	DefaultSecretKey = "a-very-secret-key-that-you-should-change"

	// DefaultAdminPassword is the development placeholder for ADMIN_PASSWORD.
	DefaultAdminPassword = "password123"
)

// Config holds all configuration for the application.
// It is built once by Load and shared by pointer; nothing mutates it afterwards.
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	SecretKey     string
	DatabaseURL   string
	SecureCookies bool

	Mail  MailConfig
	Admin AdminConfig
}

// MailConfig holds the outbound SMTP settings and notification addresses.
type MailConfig struct {
	Host       string
	Port       int
	UseTLS     bool
	Username   string
	Password   string
	SenderName string
	Owner      string // recipient of contact notifications
}

// AdminConfig holds the single admin credential guarding the message listing.
type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string // bcrypt hash, takes precedence over Password
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
// In production, it panics on missing secrets.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SecretKey:     getEnv("SECRET_KEY", DefaultSecretKey),
		DatabaseURL:   getEnv("DATABASE_URL", "messages.db"),
		SecureCookies: getEnv("USE_HTTPS", "false") == "true",
		Mail: MailConfig{
			Host:       getEnv("MAIL_SERVER", "smtp.googlemail.com"),
			Port:       getEnvInt("MAIL_PORT", 587),
			UseTLS:     getEnv("MAIL_USE_TLS", "true") == "true",
			Username:   os.Getenv("EMAIL_USER"),
			Password:   os.Getenv("EMAIL_PASS"),
			SenderName: getEnv("MAIL_SENDER_NAME", "Personal Website"),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			Password:     getEnv("ADMIN_PASSWORD", DefaultAdminPassword),
			PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		},
	}

	// Notifications go to the mailbox we send from unless told otherwise
	cfg.Mail.Owner = getEnv("OWNER_EMAIL", cfg.Mail.Username)

	if cfg.Env == "production" {
		if cfg.SecretKey == DefaultSecretKey {
			panic("SECRET_KEY is required in production")
		}
		if cfg.Admin.PasswordHash == "" && cfg.Admin.Password == DefaultAdminPassword {
			panic("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required in production")
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
