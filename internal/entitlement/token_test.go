package entitlement

import (
	"strings"
	"testing"
	"time"

	"github.com/formfillhq/formfill/internal/clock"
	"github.com/formfillhq/formfill/internal/config"
	"github.com/formfillhq/formfill/internal/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEntitlement(t *testing.T) (*Service, *clock.FakeClock) {
	t.Helper()

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	cfg := config.Config{SigningSecret: "test-signing-secret"}
	svc := New(zap.NewNop(), cfg, NewDenylist(clk), clk, metrics.NewWith(prometheus.NewRegistry()))
	return svc, clk
}

func TestMintParseRoundTrip(t *testing.T) {
	svc, clk := newTestEntitlement(t)

	token, err := svc.Mint(clk.Now().Add(time.Hour), "sub_123", "cus_456")
	require.NoError(t, err)

	claims, ok := svc.Active(token)
	require.True(t, ok)
	require.Equal(t, "sub_123", claims.SubID)
	require.Equal(t, "cus_456", claims.CustomerID)
	require.NotEmpty(t, claims.Nonce)
}

func TestTamperedTokenRejected(t *testing.T) {
	svc, clk := newTestEntitlement(t)

	token, err := svc.Mint(clk.Now().Add(time.Hour), "sub_123", "cus_456")
	require.NoError(t, err)

	flip := func(s string, i int) string {
		b := []byte(s)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		return string(b)
	}

	dot := strings.LastIndex(token, ".")
	// Flip one character in the payload, then one in the signature.
	for _, i := range []int{0, dot + 1} {
		if _, ok := svc.Active(flip(token, i)); ok {
			t.Fatalf("tampered token at offset %d must not validate", i)
		}
	}
}

func TestMalformedTokensRejected(t *testing.T) {
	svc, _ := newTestEntitlement(t)

	for _, token := range []string{"", ".", "no-separator", "payload.", ".signature", "a.b.c!"} {
		if _, ok := svc.Active(token); ok {
			t.Fatalf("malformed token %q must not validate", token)
		}
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc, clk := newTestEntitlement(t)

	token, err := svc.Mint(clk.Now().Add(time.Hour), "sub_123", "cus_456")
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)

	_, ok := svc.Active(token)
	require.False(t, ok)
}

func TestRevokedTokenRejected(t *testing.T) {
	svc, clk := newTestEntitlement(t)

	token, err := svc.Mint(clk.Now().Add(time.Hour), "sub_123", "cus_456")
	require.NoError(t, err)

	svc.Revoke("sub_123")
	_, ok := svc.Active(token)
	require.False(t, ok)
}

func TestDenylistEntryExpires(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	denylist := NewDenylist(clk)

	denylist.Revoke("sub_123")
	require.True(t, denylist.Revoked("sub_123"))

	clk.Advance(25 * time.Hour)
	require.False(t, denylist.Revoked("sub_123"))
}

func TestWrongSecretRejected(t *testing.T) {
	svc, clk := newTestEntitlement(t)

	other := NewSigner("other-secret")
	token, err := other.Mint(clk.Now().Add(time.Hour), "sub_123", "cus_456")
	require.NoError(t, err)

	_, ok := svc.Active(token)
	require.False(t, ok)
}
