package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	UpdatePro(ctx context.Context, db *gorm.DB, id string, isPro bool, customerRef string) error
	UpdateContact(ctx context.Context, db *gorm.DB, id string, fullName, phone *string) error
	// DeleteCascade removes the user and every owned row: profiles, pdf
	// mappings and sessions. Runs inside the caller's transaction.
	DeleteCascade(ctx context.Context, db *gorm.DB, id string) error
}
