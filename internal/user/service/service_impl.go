package service

import (
	"context"
	"strings"

	"github.com/formfillhq/formfill/internal/clock"
	"github.com/formfillhq/formfill/internal/user/domain"
	"github.com/formfillhq/formfill/pkg/db"
	"github.com/google/uuid"
	"go.uber.org/zap"
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

func (s *Service) Ensure(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: s.clock.Now().Unix(),
	}
	if err := s.repo.Insert(ctx, s.db, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			// Lost a concurrent-create race; the winner's row is the user.
			return s.repo.FindByEmail(ctx, s.db, email)
		}
		return nil, err
	}

	s.log.Info("created user", zap.String("user_id", user.ID))
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, s.db, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *Service) SetPro(ctx context.Context, id string, isPro bool, customerRef string) error {
	return s.repo.UpdatePro(ctx, s.db, id, isPro, customerRef)
}

func (s *Service) UpdateContact(ctx context.Context, id string, fullName, phone *string) error {
	return s.repo.UpdateContact(ctx, s.db, id, fullName, phone)
}

func (s *Service) DeleteAllData(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.DeleteCascade(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("deleted all data for user", zap.String("user_id", id))
	return nil
}
