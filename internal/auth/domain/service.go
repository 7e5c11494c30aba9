package domain

import (
	"context"
	"errors"

	userdomain "github.com/formfillhq/formfill/internal/user/domain"
)

type Service interface {
	// RequestLink invalidates any prior unused tokens for email and mints a
	// fresh single-use token. Exactly one live token exists per email.
	RequestLink(ctx context.Context, email string) (*MagicToken, error)
	// Verify redeems a magic token, returning the associated email. Every
	// failure mode (unknown, expired, already used) is reported as absent:
	// ok is false and err is nil. Exactly one concurrent caller can win.
	Verify(ctx context.Context, token string) (email string, ok bool, err error)
	// StartSession creates the user on first sight and opens a session.
	StartSession(ctx context.Context, email string) (*Session, *userdomain.User, error)
	// Session returns the session iff it exists and has not expired.
	Session(ctx context.Context, id string) (*Session, error)
	// EndSession deletes the session. Deleting an absent session is not an
	// error.
	EndSession(ctx context.Context, id string) error
}

var ErrInvalidEmail = errors.New("invalid_email")
