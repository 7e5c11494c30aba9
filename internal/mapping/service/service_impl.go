package service

import (
	"context"
	"fmt"

	"github.com/formfillhq/formfill/internal/clock"
	"github.com/formfillhq/formfill/internal/mapping/domain"
	"github.com/formfillhq/formfill/internal/observability/metrics"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	log     *zap.Logger
	db      *gorm.DB
	repo    domain.Repository
	clock   clock.Clock
	metrics *metrics.Metrics
}

func New(log *zap.Logger, conn *gorm.DB, repo domain.Repository, clk clock.Clock, m *metrics.Metrics) domain.Service {
	return &Service{log: log, db: conn, repo: repo, clock: clk, metrics: m}
}

func (s *Service) Get(ctx context.Context, userID, digest string) (map[string]string, bool, error) {
	row, err := s.repo.FindOne(ctx, s.db, userID, digest)
	if err != nil {
		return nil, false, err
	}
	if row == nil {
		s.metrics.MappingCache.WithLabelValues("miss").Inc()
		return nil, false, nil
	}

	mapping := make(map[string]string, len(row.Mapping))
	for field, key := range row.Mapping {
		text, ok := key.(string)
		if !ok {
			return nil, false, fmt.Errorf("mapping for digest %s holds non-string value under %q", digest, field)
		}
		mapping[field] = text
	}
	s.metrics.MappingCache.WithLabelValues("hit").Inc()
	return mapping, true, nil
}

func (s *Service) Put(ctx context.Context, userID, digest string, mapping map[string]string) error {
	payload := make(datatypes.JSONMap, len(mapping))
	for field, key := range mapping {
		payload[field] = key
	}

	now := s.clock.Now().Unix()
	return s.repo.Upsert(ctx, s.db, &domain.PDFMapping{
		ID:        ulid.Make().String(),
		UserID:    userID,
		PDFDigest: digest,
		Mapping:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	})
}
