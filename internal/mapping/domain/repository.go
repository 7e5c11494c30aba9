package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindOne(ctx context.Context, db *gorm.DB, userID, digest string) (*PDFMapping, error)
	// Upsert replaces the whole mapping on conflict, never merging.
	Upsert(ctx context.Context, db *gorm.DB, row *PDFMapping) error
}
