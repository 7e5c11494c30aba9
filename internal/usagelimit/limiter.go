package usagelimit

import (
	"sync"

	"github.com/formfillhq/formfill/internal/clock"
	"github.com/formfillhq/formfill/internal/config"
	"github.com/formfillhq/formfill/internal/observability/metrics"
	"go.uber.org/zap"
)

// Limiter counts free-tier fills per browser token per calendar day (UTC).
// State is process-local and non-durable; a restart resets all counters,
// which only ever errs in the visitor's favor.
type Limiter struct {
	mu      sync.Mutex
	log     *zap.Logger
	clock   clock.Clock
	metrics *metrics.Metrics
	limit   int
	day     string
	counts  map[string]int
}

func New(log *zap.Logger, cfg config.Config, clk clock.Clock, m *metrics.Metrics) *Limiter {
	limit := cfg.FreeDailyLimit
	if limit < 1 {
		limit = 1
	}
	return &Limiter{
		log:     log,
		clock:   clk,
		metrics: m,
		limit:   limit,
		counts:  make(map[string]int),
	}
}

// Allow consumes one fill for the token if the daily budget permits.
func (l *Limiter) Allow(token string) bool {
	if token == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	day := l.clock.Now().Format("2006-01-02")
	if day != l.day {
		l.day = day
		l.counts = make(map[string]int)
	}

	if l.counts[token] >= l.limit {
		l.metrics.LimiterRejected.Inc()
		l.log.Debug("free-tier fill rejected", zap.String("day", day))
		return false
	}
	l.counts[token]++
	return true
}

// Remaining reports the unused budget without consuming any of it.
func (l *Limiter) Remaining(token string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.clock.Now().Format("2006-01-02") != l.day {
		return l.limit
	}
	remaining := l.limit - l.counts[token]
	if remaining < 0 {
		return 0
	}
	return remaining
}
