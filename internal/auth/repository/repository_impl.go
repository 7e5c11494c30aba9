package repository

import (
	"context"

	"github.com/formfillhq/formfill/internal/auth/domain"
	"github.com/formfillhq/formfill/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertSession(ctx context.Context, conn *gorm.DB, session *domain.Session) error {
	return conn.WithContext(ctx).Create(session).Error
}

func (r *repo) FindSession(ctx context.Context, conn *gorm.DB, id string) (*domain.Session, error) {
	var session domain.Session
	err := conn.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *repo) DeleteSession(ctx context.Context, conn *gorm.DB, id string) error {
	return conn.WithContext(ctx).Where("id = ?", id).Delete(&domain.Session{}).Error
}

func (r *repo) InsertToken(ctx context.Context, conn *gorm.DB, token *domain.MagicToken) error {
	return conn.WithContext(ctx).Create(token).Error
}

func (r *repo) InvalidateUnused(ctx context.Context, conn *gorm.DB, email string) error {
	return conn.WithContext(ctx).
		Model(&domain.MagicToken{}).
		Where("email = ? AND used = ?", email, false).
		Update("used", true).Error
}

func (r *repo) FindTokenForUpdate(ctx context.Context, conn *gorm.DB, token string) (*domain.MagicToken, error) {
	var row domain.MagicToken
	err := db.LockForUpdate(conn.WithContext(ctx)).Where("token = ?", token).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repo) MarkTokenUsed(ctx context.Context, conn *gorm.DB, token string) error {
	return conn.WithContext(ctx).
		Model(&domain.MagicToken{}).
		Where("token = ?", token).
		Update("used", true).Error
}
