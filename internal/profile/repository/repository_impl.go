package repository

import (
	"context"
	"errors"

	"github.com/formfillhq/formfill/internal/profile/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, profile *domain.Profile) error {
	return conn.WithContext(ctx).Create(profile).Error
}

func (r *repo) FindOne(ctx context.Context, conn *gorm.DB, userID, id string) (*domain.Profile, error) {
	var row domain.Profile
	err := conn.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repo) FindByUser(ctx context.Context, conn *gorm.DB, userID string) ([]domain.Profile, error) {
	var rows []domain.Profile
	err := conn.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) Update(ctx context.Context, conn *gorm.DB, profile *domain.Profile) error {
	return conn.WithContext(ctx).
		Where("id = ? AND user_id = ?", profile.ID, profile.UserID).
		Select("name", "data", "updated_at").
		Updates(profile).Error
}

func (r *repo) Delete(ctx context.Context, conn *gorm.DB, userID, id string) error {
	return conn.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Profile{}).Error
}
