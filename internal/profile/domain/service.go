package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("profile_not_found")
	ErrInvalidName = errors.New("invalid_profile_name")
)

type CreateRequest struct {
	UserID string
	Name   string
	Data   map[string]any
}

// UpdateRequest carries a partial update. Nil fields are left untouched;
// Data, when set, replaces the stored map wholesale.
type UpdateRequest struct {
	UserID string
	ID     string
	Name   *string
	Data   map[string]any
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Profile, error)
	Get(ctx context.Context, userID, id string) (*Profile, error)
	List(ctx context.Context, userID string) ([]Profile, error)
	Update(ctx context.Context, req UpdateRequest) (*Profile, error)
	Delete(ctx context.Context, userID, id string) error
}
