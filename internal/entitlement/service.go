package entitlement

import (
	"time"

	"github.com/formfillhq/formfill/internal/clock"
	"github.com/formfillhq/formfill/internal/config"
	"github.com/formfillhq/formfill/internal/observability/metrics"
	"go.uber.org/zap"
)

// Service answers whether a presented entitlement token is currently good:
// valid signature, unexpired, and not revoked since mint.
type Service struct {
	log      *zap.Logger
	signer   *Signer
	denylist *Denylist
	clock    clock.Clock
	metrics  *metrics.Metrics
}

func New(log *zap.Logger, cfg config.Config, denylist *Denylist, clk clock.Clock, m *metrics.Metrics) *Service {
	return &Service{
		log:      log,
		signer:   NewSigner(cfg.SigningSecret),
		denylist: denylist,
		clock:    clk,
		metrics:  m,
	}
}

func (s *Service) Mint(expiresAt time.Time, subID, customerID string) (string, error) {
	return s.signer.Mint(expiresAt, subID, customerID)
}

func (s *Service) Active(token string) (*Claims, bool) {
	claims, ok := s.signer.Parse(token)
	if !ok {
		s.metrics.EntitlementDeny.Inc()
		s.log.Debug("entitlement token rejected", zap.String("reason", "signature"))
		return nil, false
	}
	if claims.Exp <= s.clock.Now().Unix() {
		s.metrics.EntitlementDeny.Inc()
		s.log.Debug("entitlement token rejected", zap.String("reason", "expired"))
		return nil, false
	}
	if s.denylist.Revoked(claims.SubID) {
		s.metrics.EntitlementDeny.Inc()
		s.log.Debug("entitlement token rejected", zap.String("reason", "revoked"))
		return nil, false
	}
	return claims, true
}

func (s *Service) Revoke(subID string) {
	s.denylist.Revoke(subID)
}
