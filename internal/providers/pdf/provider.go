package pdf

import "context"

// Field describes one fillable form field discovered in a PDF.
type Field struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// Provider is the byte-level PDF capability: read form fields out of a
// document and write values back into one.
type Provider interface {
	ExtractFields(ctx context.Context, pdf []byte) ([]Field, error)
	Fill(ctx context.Context, pdf []byte, values map[string]any, watermark bool) ([]byte, error)
}

// NoOpProvider reports no fields and returns documents unchanged. It
// stands in until a real form-filling engine is plugged in.
type NoOpProvider struct{}

func (p *NoOpProvider) ExtractFields(ctx context.Context, pdf []byte) ([]Field, error) {
	return []Field{}, nil
}

func (p *NoOpProvider) Fill(ctx context.Context, pdf []byte, values map[string]any, watermark bool) ([]byte, error) {
	return pdf, nil
}
