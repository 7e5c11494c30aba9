package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/formfillhq/formfill/internal/auth/domain"
	"github.com/formfillhq/formfill/internal/clock"
	"github.com/formfillhq/formfill/internal/config"
	"github.com/formfillhq/formfill/internal/observability/metrics"
	userdomain "github.com/formfillhq/formfill/internal/user/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// 192-bit magic tokens, 256-bit session ids.
	magicTokenBytes = 24
	sessionIDBytes  = 32
)

type Service struct {
	log     *zap.Logger
	db      *gorm.DB
	repo    domain.Repository
	users   userdomain.Service
	clock   clock.Clock
	metrics *metrics.Metrics
	cfg     config.Config
}

func New(
	log *zap.Logger,
	conn *gorm.DB,
	repo domain.Repository,
	users userdomain.Service,
	clk clock.Clock,
	m *metrics.Metrics,
	cfg config.Config,
) domain.Service {
	return &Service{log: log, db: conn, repo: repo, users: users, clock: clk, metrics: m, cfg: cfg}
}

func (s *Service) RequestLink(ctx context.Context, email string) (*domain.MagicToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}

	now := s.clock.Now().Unix()
	token := &domain.MagicToken{
		Token:     randomToken(magicTokenBytes),
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now + int64(s.cfg.MagicLinkTTL.Seconds()),
	}

	// Invalidation and insert commit together: at no point can two live
	// tokens exist for one email.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InvalidateUnused(ctx, tx, email); err != nil {
			return err
		}
		return s.repo.InsertToken(ctx, tx, token)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.MagicLinks.WithLabelValues("issued").Inc()
	s.log.Info("issued magic link", zap.Int64("expires_at", token.ExpiresAt))
	return token, nil
}

func (s *Service) Verify(ctx context.Context, token string) (string, bool, error) {
	var email string
	ok := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.repo.FindTokenForUpdate(ctx, tx, token)
		if err != nil {
			return err
		}
		switch {
		case row == nil:
			s.log.Debug("magic token unknown")
			return nil
		case row.Used:
			s.log.Debug("magic token already used")
			return nil
		case row.ExpiresAt <= s.clock.Now().Unix():
			s.log.Debug("magic token expired")
			return nil
		}
		if err := s.repo.MarkTokenUsed(ctx, tx, token); err != nil {
			return err
		}
		email = row.Email
		ok = true
		return nil
	})
	if err != nil {
		return "", false, err
	}

	if ok {
		s.metrics.MagicLinks.WithLabelValues("verified").Inc()
	} else {
		s.metrics.MagicLinks.WithLabelValues("rejected").Inc()
	}
	return email, ok, nil
}

func (s *Service) StartSession(ctx context.Context, email string) (*domain.Session, *userdomain.User, error) {
	account, err := s.users.Ensure(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now().Unix()
	session := &domain.Session{
		ID:        randomToken(sessionIDBytes),
		UserID:    account.ID,
		CreatedAt: now,
		ExpiresAt: now + int64(s.cfg.SessionTTL.Seconds()),
	}
	if err := s.repo.InsertSession(ctx, s.db, session); err != nil {
		return nil, nil, err
	}
	return session, account, nil
}

func (s *Service) Session(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.repo.FindSession(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if session == nil || session.ExpiresAt <= s.clock.Now().Unix() {
		return nil, nil
	}
	return session, nil
}

func (s *Service) EndSession(ctx context.Context, id string) error {
	return s.repo.DeleteSession(ctx, s.db, id)
}

func randomToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
