package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository persists profiles. Every operation is scoped by the owning
// user id; a row belonging to another user is indistinguishable from a
// missing row.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, profile *Profile) error
	FindOne(ctx context.Context, db *gorm.DB, userID, id string) (*Profile, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID string) ([]Profile, error)
	Update(ctx context.Context, db *gorm.DB, profile *Profile) error
	Delete(ctx context.Context, db *gorm.DB, userID, id string) error
}
