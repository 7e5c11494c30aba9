package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	ListenAddr  string
	BaseURL     string

	// AuthCookieSecure marks session and entitlement cookies Secure.
	AuthCookieSecure bool

	// SigningSecret signs entitlement tokens. Required in production.
	SigningSecret string

	// DatabaseURL selects the durable backend when set. Empty selects the
	// embedded backend.
	DatabaseURL string
	// StorageStrict forbids silent fallback to the embedded backend when the
	// durable backend is configured but unreachable.
	StorageStrict bool
	SQLitePath    string

	SessionTTL     time.Duration
	MagicLinkTTL   time.Duration
	FreeDailyLimit int
	MaxUploadBytes int64

	Email EmailConfig
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	cfg := Config{
		AppName:          getenv("APP_SERVICE", "formfill"),
		AppVersion:       getenv("APP_VERSION", "0.1.0"),
		Environment:      environment,
		ListenAddr:       getenv("LISTEN_ADDR", ":8080"),
		BaseURL:          strings.TrimRight(getenv("BASE_URL", "http://localhost:8080"), "/"),
		AuthCookieSecure: authCookieSecure,
		SigningSecret:    strings.TrimSpace(getenv("APP_SIGNING_SECRET", "")),
		DatabaseURL:      strings.TrimSpace(getenv("DATABASE_URL", "")),
		StorageStrict:    getenvBool("STORAGE_STRICT", environment == "production"),
		SQLitePath:       getenv("SQLITE_PATH", "data/formfill.db"),
		SessionTTL:       getenvDuration("SESSION_TTL", 30*24*time.Hour),
		MagicLinkTTL:     getenvDuration("MAGIC_LINK_TTL", 15*time.Minute),
		FreeDailyLimit:   getenvInt("FREE_DAILY_LIMIT", 1),
		MaxUploadBytes:   int64(getenvInt("MAX_UPLOAD_MB", 10)) * 1024 * 1024,
		Email: EmailConfig{
			SMTPHost:     getenv("SMTP_HOST", ""),
			SMTPPort:     getenvInt("SMTP_PORT", 587),
			SMTPUsername: getenv("SMTP_USER", ""),
			SMTPPassword: getenv("SMTP_PASS", ""),
			SMTPFrom:     getenv("SMTP_FROM", "no-reply@formfill.local"),
		},
	}

	if cfg.SigningSecret == "" && environment != "production" {
		cfg.SigningSecret = devSigningSecret()
	}

	return cfg
}

// devSigningSecret keeps development tokens signed with a real key. The
// key rotates every restart, which invalidates outstanding dev tokens.
func devSigningSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	return hex.EncodeToString(buf)
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate enforces the settings whose absence must abort startup.
func (c Config) Validate() error {
	if c.IsProduction() && c.SigningSecret == "" {
		return errors.New("APP_SIGNING_SECRET is required in production")
	}
	if c.IsProduction() && c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required in production")
	}
	if c.SessionTTL <= 0 || c.MagicLinkTTL <= 0 {
		return errors.New("session and magic link TTLs must be positive")
	}
	if c.DatabaseURL != "" {
		if _, err := url.Parse(c.DatabaseURL); err != nil {
			return errors.New("DATABASE_URL is not a valid URL")
		}
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}
