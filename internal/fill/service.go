package fill

import (
	"context"

	"github.com/formfillhq/formfill/internal/fields"
	"github.com/formfillhq/formfill/internal/mapping"
	mappingdomain "github.com/formfillhq/formfill/internal/mapping/domain"
	"github.com/formfillhq/formfill/internal/observability/metrics"
	"github.com/formfillhq/formfill/internal/providers/extract"
	"github.com/formfillhq/formfill/internal/providers/pdf"
	"go.uber.org/zap"
)

// Service orchestrates a fill: digest the PDF, reuse or compute the
// field mapping, and hand the assignments to the PDF engine.
type Service struct {
	log     *zap.Logger
	table   *fields.TableHolder
	cache   mappingdomain.Service
	pdf     pdf.Provider
	extract extract.Provider
	metrics *metrics.Metrics
}

// Request carries one fill invocation. UserID is empty for anonymous
// free-tier fills, which bypass the per-user mapping cache.
type Request struct {
	UserID    string
	PDF       []byte
	Data      map[string]any
	Watermark bool
}

// Result is the filled document plus the assignments that produced it.
type Result struct {
	PDF      []byte
	Digest   string
	Assigned map[string]any
}

func New(
	log *zap.Logger,
	table *fields.TableHolder,
	cache mappingdomain.Service,
	pdfProvider pdf.Provider,
	extractProvider extract.Provider,
	m *metrics.Metrics,
) *Service {
	return &Service{
		log:     log,
		table:   table,
		cache:   cache,
		pdf:     pdfProvider,
		extract: extractProvider,
		metrics: m,
	}
}

func (s *Service) Apply(ctx context.Context, req Request) (*Result, error) {
	digest := mapping.Digest(req.PDF)

	values, err := s.resolve(ctx, req, digest)
	if err != nil {
		return nil, err
	}

	filled, err := s.pdf.Fill(ctx, req.PDF, values, req.Watermark)
	if err != nil {
		return nil, err
	}

	tier := "pro"
	if req.Watermark {
		tier = "free"
	}
	s.metrics.Fills.WithLabelValues(tier).Inc()

	return &Result{PDF: filled, Digest: digest, Assigned: values}, nil
}

// resolve produces pdfFieldName → value assignments, via the cache for
// signed-in users or a fresh alias-table pass otherwise.
func (s *Service) resolve(ctx context.Context, req Request, digest string) (map[string]any, error) {
	if req.UserID != "" {
		cached, ok, err := s.cache.Get(ctx, req.UserID, digest)
		if err != nil {
			return nil, err
		}
		if ok {
			return invert(cached, req.Data), nil
		}
	}

	metadata, err := s.pdf.ExtractFields(ctx, req.PDF)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(metadata))
	for _, field := range metadata {
		names = append(names, field.Name)
	}

	keys := make([]string, 0, len(req.Data))
	for k := range req.Data {
		keys = append(keys, k)
	}
	table := s.table.Get()
	computed := table.MapFields(keys, names)

	if req.UserID != "" && len(computed) > 0 {
		if err := s.cache.Put(ctx, req.UserID, digest, computed); err != nil {
			// The fill itself still succeeds; only reuse is lost.
			s.log.Warn("failed to persist field mapping", zap.Error(err), zap.String("digest", digest))
		}
	}
	return invert(computed, req.Data), nil
}

// Extract reports the fillable fields found in the PDF.
func (s *Service) Extract(ctx context.Context, pdfBytes []byte) ([]pdf.Field, error) {
	return s.pdf.ExtractFields(ctx, pdfBytes)
}

// AIExtract guesses values for the named fields from free text.
func (s *Service) AIExtract(ctx context.Context, fieldNames []string, freeText string) (map[string]string, error) {
	return s.extract.GuessValues(ctx, fieldNames, freeText)
}

// invert turns a pdfFieldName → canonicalKey mapping into
// pdfFieldName → value using the profile data. Keys without data are
// skipped.
func invert(mapping map[string]string, data map[string]any) map[string]any {
	values := make(map[string]any)
	for pdfName, canonicalKey := range mapping {
		if v, ok := data[canonicalKey]; ok {
			values[pdfName] = v
		}
	}
	return values
}
