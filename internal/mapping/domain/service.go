package domain

import "context"

// Service is the content-addressed mapping cache: Get and Put operate on
// pdf-field-name → canonical-key maps scoped by (user, digest).
type Service interface {
	Get(ctx context.Context, userID, digest string) (map[string]string, bool, error)
	Put(ctx context.Context, userID, digest string, mapping map[string]string) error
}
