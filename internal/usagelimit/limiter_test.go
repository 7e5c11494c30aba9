package usagelimit

import (
	"testing"
	"time"

	"github.com/formfillhq/formfill/internal/clock"
	"github.com/formfillhq/formfill/internal/config"
	"github.com/formfillhq/formfill/internal/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLimiter(t *testing.T, limit int) (*Limiter, *clock.FakeClock) {
	t.Helper()

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC))
	l := New(zap.NewNop(), config.Config{FreeDailyLimit: limit}, clk, metrics.NewWith(prometheus.NewRegistry()))
	return l, clk
}

func TestAllowWithinLimit(t *testing.T) {
	l, _ := newTestLimiter(t, 1)

	require.True(t, l.Allow("browser-a"))
	require.False(t, l.Allow("browser-a"))
	require.True(t, l.Allow("browser-b"))
}

func TestAllowEmptyTokenRejected(t *testing.T) {
	l, _ := newTestLimiter(t, 1)

	require.False(t, l.Allow(""))
}

func TestDayRolloverResets(t *testing.T) {
	l, clk := newTestLimiter(t, 1)

	require.True(t, l.Allow("browser-a"))
	require.False(t, l.Allow("browser-a"))

	clk.Advance(2 * time.Hour)

	require.True(t, l.Allow("browser-a"))
}

func TestRemaining(t *testing.T) {
	l, clk := newTestLimiter(t, 2)

	require.Equal(t, 2, l.Remaining("browser-a"))
	l.Allow("browser-a")
	require.Equal(t, 1, l.Remaining("browser-a"))
	l.Allow("browser-a")
	require.Equal(t, 0, l.Remaining("browser-a"))

	clk.Advance(24 * time.Hour)
	require.Equal(t, 2, l.Remaining("browser-a"))
}

func TestLimitFloor(t *testing.T) {
	l, _ := newTestLimiter(t, 0)

	// A zero or negative configured limit still grants one fill.
	require.True(t, l.Allow("browser-a"))
	require.False(t, l.Allow("browser-a"))
}
