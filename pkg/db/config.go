package db

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config describes the selected storage backend. Exactly one backend is
// chosen at startup and fixed for the process lifetime.
type Config struct {
	// Type is "postgres" or "sqlite".
	Type string

	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string

	// Path is the embedded backend's database file.
	Path string

	// Strict forbids fallback to the embedded backend when the durable
	// backend is configured but unreachable after retries.
	Strict bool

	MaxIdleConn     int
	MaxOpenConn     int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// FromURL parses a postgres:// connection descriptor into a Config. An empty
// URL selects the embedded backend.
func FromURL(rawURL, sqlitePath string, strict bool) (Config, error) {
	cfg := Config{
		Type:            "sqlite",
		Path:            sqlitePath,
		Strict:          strict,
		MaxIdleConn:     2,
		MaxOpenConn:     10,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
	if strings.TrimSpace(rawURL) == "" {
		return cfg, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Config{}, fmt.Errorf("parse database url: %w", err)
	}
	switch parsed.Scheme {
	case "postgres", "postgresql":
	default:
		return Config{}, fmt.Errorf("unsupported database scheme %q", parsed.Scheme)
	}

	cfg.Type = "postgres"
	cfg.Host = parsed.Hostname()
	cfg.Port = parsed.Port()
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	cfg.Name = strings.TrimPrefix(parsed.Path, "/")
	if parsed.User != nil {
		cfg.User = parsed.User.Username()
		cfg.Password, _ = parsed.User.Password()
	}
	cfg.SSLMode = strings.ToLower(parsed.Query().Get("sslmode"))
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	return cfg, nil
}
