package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "formfill", cfg.AppName)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 15*time.Minute, cfg.MagicLinkTTL)
	require.Equal(t, 1, cfg.FreeDailyLimit)
	require.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	require.NoError(t, cfg.Validate())
}

func TestValidateRequiresSecretInProduction(t *testing.T) {
	cfg := Load()
	cfg.Environment = "production"
	cfg.SigningSecret = ""
	require.Error(t, cfg.Validate())

	cfg.SigningSecret = "secret"
	cfg.DatabaseURL = "postgres://formfill:pw@db:5432/formfill"
	require.NoError(t, cfg.Validate())
}

func TestValidateRequiresDatabaseURLInProduction(t *testing.T) {
	cfg := Load()
	cfg.Environment = "production"
	cfg.SigningSecret = "secret"
	cfg.DatabaseURL = ""
	require.Error(t, cfg.Validate())
}

func TestDevSigningSecretGenerated(t *testing.T) {
	cfg := Load()
	require.NotEmpty(t, cfg.SigningSecret)
	require.NotEqual(t, Load().SigningSecret, cfg.SigningSecret)
}

func TestValidateRejectsBadTTLs(t *testing.T) {
	cfg := Load()
	cfg.SessionTTL = 0
	require.Error(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("FREE_DAILY_LIMIT", "3")
	t.Setenv("STORAGE_STRICT", "true")

	cfg := Load()
	require.Equal(t, time.Hour, cfg.SessionTTL)
	require.Equal(t, 3, cfg.FreeDailyLimit)
	require.True(t, cfg.StorageStrict)
}
