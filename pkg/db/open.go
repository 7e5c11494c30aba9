package db

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	obslogger "github.com/formfillhq/formfill/internal/observability/logger"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormprometheus "gorm.io/plugin/prometheus"
)

const (
	maxConnectAttempts = 5
	baseConnectDelay   = 500 * time.Millisecond
	maxConnectDelay    = 5 * time.Second
	pingTimeout        = 5 * time.Second
)

// Open connects to the configured backend. The durable backend is attempted
// with capped, jittered exponential backoff; exhaustion is fatal in strict
// mode and falls back to the embedded backend otherwise.
func Open(cfg Config, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         obslogger.NewGormLogger(obslogger.DefaultGormLoggerConfig()),
		TranslateError: true,
	}

	if cfg.Type == "postgres" {
		conn, err := openWithRetry(cfg, gormCfg, log)
		if err == nil {
			log.Info("storage backend ready", zap.String("backend", "postgres"))
			return conn, nil
		}
		if cfg.Strict {
			return nil, fmt.Errorf("durable backend unreachable in strict mode: %w", err)
		}
		log.Warn("durable backend unreachable, falling back to embedded backend", zap.Error(err))
		cfg.Type = "sqlite"
	}

	conn, err := openSQLite(cfg, gormCfg)
	if err != nil {
		return nil, err
	}
	log.Info("storage backend ready", zap.String("backend", "sqlite"), zap.String("path", cfg.Path))
	return conn, nil
}

func openWithRetry(cfg Config, gormCfg *gorm.Config, log *zap.Logger) (*gorm.DB, error) {
	var lastErr error
	delay := baseConnectDelay

	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		conn, err := openPostgres(cfg, gormCfg)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		if attempt == maxConnectAttempts {
			break
		}

		// Jittered exponential backoff, capped.
		sleep := delay/2 + time.Duration(rand.Int63n(int64(delay)))
		log.Warn("storage connect failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", sleep),
			zap.Error(err),
		)
		time.Sleep(sleep)
		delay *= 2
		if delay > maxConnectDelay {
			delay = maxConnectDelay
		}
	}
	return nil, lastErr
}

func openPostgres(cfg Config, gormCfg *gorm.Config) (*gorm.DB, error) {
	dialector, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}
	conn, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if err := installPlugins(conn, cfg.Name); err != nil {
		return nil, err
	}
	return conn, nil
}

func openSQLite(cfg Config, gormCfg *gorm.Config) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	cfg.Type = "sqlite"
	dialector, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}
	conn, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	// Single writer connection: transactions against the same row serialize
	// here instead of via FOR UPDATE (see LockForUpdate).
	sqlDB.SetMaxOpenConns(1)

	if err := installPlugins(conn, filepath.Base(cfg.Path)); err != nil {
		return nil, err
	}
	return conn, nil
}

func installPlugins(conn *gorm.DB, dbName string) error {
	if err := conn.Use(otelgorm.NewPlugin()); err != nil {
		return err
	}
	return conn.Use(gormprometheus.New(gormprometheus.Config{
		DBName:          dbName,
		RefreshInterval: 15,
	}))
}
