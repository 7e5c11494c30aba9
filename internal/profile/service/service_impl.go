package service

import (
	"context"
	"strings"

	"github.com/formfillhq/formfill/internal/clock"
	"github.com/formfillhq/formfill/internal/profile/domain"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	log   *zap.Logger
	db    *gorm.DB
	repo  domain.Repository
	clock clock.Clock
}

func New(log *zap.Logger, conn *gorm.DB, repo domain.Repository, clk clock.Clock) domain.Service {
	return &Service{log: log, db: conn, repo: repo, clock: clk}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Profile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := s.clock.Now().Unix()
	profile := &domain.Profile{
		ID:        ulid.Make().String(),
		UserID:    req.UserID,
		Name:      name,
		Data:      toJSONMap(req.Data),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*domain.Profile, error) {
	profile, err := s.repo.FindOne(ctx, s.db, userID, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	return profile, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Profile, error) {
	return s.repo.FindByUser(ctx, s.db, userID)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Profile, error) {
	var updated *domain.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.repo.FindOne(ctx, tx, req.UserID, req.ID)
		if err != nil {
			return err
		}
		if profile == nil {
			return domain.ErrNotFound
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return domain.ErrInvalidName
			}
			profile.Name = name
		}
		if req.Data != nil {
			profile.Data = toJSONMap(req.Data)
		}
		profile.UpdatedAt = s.clock.Now().Unix()

		if err := s.repo.Update(ctx, tx, profile); err != nil {
			return err
		}
		updated = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, s.db, userID, id)
}

func toJSONMap(data map[string]any) datatypes.JSONMap {
	if data == nil {
		return datatypes.JSONMap{}
	}
	return datatypes.JSONMap(data)
}
