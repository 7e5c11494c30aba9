package repository

import (
	"context"
	"errors"

	"github.com/formfillhq/formfill/internal/mapping/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindOne(ctx context.Context, conn *gorm.DB, userID, digest string) (*domain.PDFMapping, error) {
	var row domain.PDFMapping
	err := conn.WithContext(ctx).
		Where("user_id = ? AND pdf_digest = ?", userID, digest).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repo) Upsert(ctx context.Context, conn *gorm.DB, row *domain.PDFMapping) error {
	return conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "pdf_digest"}},
			DoUpdates: clause.AssignmentColumns([]string{"mapping", "updated_at"}),
		}).
		Create(row).Error
}
