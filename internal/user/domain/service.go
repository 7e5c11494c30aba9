package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Ensure returns the user for email, creating it on first sight. Safe
	// under concurrent creation: a duplicate-key race resolves by refetch.
	Ensure(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	SetPro(ctx context.Context, id string, isPro bool, customerRef string) error
	UpdateContact(ctx context.Context, id string, fullName, phone *string) error
	// DeleteAllData removes the user and all owned data in one transaction.
	DeleteAllData(ctx context.Context, id string) error
}

var (
	ErrNotFound     = errors.New("user_not_found")
	ErrInvalidEmail = errors.New("invalid_email")
)
