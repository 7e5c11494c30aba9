package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertSession(ctx context.Context, db *gorm.DB, session *Session) error
	FindSession(ctx context.Context, db *gorm.DB, id string) (*Session, error)
	DeleteSession(ctx context.Context, db *gorm.DB, id string) error

	InsertToken(ctx context.Context, db *gorm.DB, token *MagicToken) error
	// InvalidateUnused marks every unused token for email as used. Must run
	// inside the same transaction as the subsequent InsertToken.
	InvalidateUnused(ctx context.Context, db *gorm.DB, email string) error
	// FindTokenForUpdate locks the token row for the enclosing transaction
	// so concurrent verifications serialize.
	FindTokenForUpdate(ctx context.Context, db *gorm.DB, token string) (*MagicToken, error)
	MarkTokenUsed(ctx context.Context, db *gorm.DB, token string) error
}
