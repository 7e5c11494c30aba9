package extract

import "context"

// Provider guesses values for the given field names out of free text.
// Accuracy beyond exact alias matching lives behind this interface.
type Provider interface {
	GuessValues(ctx context.Context, fieldNames []string, freeText string) (map[string]string, error)
}

// NoOpProvider guesses nothing.
type NoOpProvider struct{}

func (p *NoOpProvider) GuessValues(ctx context.Context, fieldNames []string, freeText string) (map[string]string, error) {
	return map[string]string{}, nil
}
