package fill

import (
	"context"
	"testing"
	"time"

	"github.com/formfillhq/formfill/internal/clock"
	"github.com/formfillhq/formfill/internal/fields"
	mappingdomain "github.com/formfillhq/formfill/internal/mapping/domain"
	mappingrepository "github.com/formfillhq/formfill/internal/mapping/repository"
	mappingservice "github.com/formfillhq/formfill/internal/mapping/service"
	"github.com/formfillhq/formfill/internal/observability/metrics"
	"github.com/formfillhq/formfill/internal/providers/extract"
	"github.com/formfillhq/formfill/internal/providers/pdf"
	"github.com/formfillhq/formfill/pkg/db"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakePDF serves scripted field metadata and counts extraction calls.
type fakePDF struct {
	fields       []pdf.Field
	extractCalls int
	lastValues   map[string]any
	lastMark     bool
}

func (f *fakePDF) ExtractFields(ctx context.Context, pdfBytes []byte) ([]pdf.Field, error) {
	f.extractCalls++
	return f.fields, nil
}

func (f *fakePDF) Fill(ctx context.Context, pdfBytes []byte, values map[string]any, watermark bool) ([]byte, error) {
	f.lastValues = values
	f.lastMark = watermark
	return append([]byte("filled:"), pdfBytes...), nil
}

func newTestFill(t *testing.T, engine *fakePDF) *Service {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&mappingdomain.PDFMapping{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	m := metrics.NewWith(prometheus.NewRegistry())
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	cache := mappingservice.New(zap.NewNop(), dbConn, mappingrepository.Provide(), clk, m)

	holder, err := fields.NewTableHolder(zap.NewNop())
	if err != nil {
		t.Fatalf("failed to build table holder: %v", err)
	}

	return New(zap.NewNop(), holder, cache, engine, &extract.NoOpProvider{}, m)
}

func TestApplyResolvesAndCaches(t *testing.T) {
	engine := &fakePDF{fields: []pdf.Field{{Name: "E-Mail", Type: "text"}, {Name: "Phone", Type: "text"}}}
	svc := newTestFill(t, engine)

	req := Request{
		UserID: "user-1",
		PDF:    []byte("%PDF-1.7 stable bytes"),
		Data:   map[string]any{"email": "a@b.com", "phone": "555"},
	}

	result, err := svc.Apply(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"E-Mail": "a@b.com", "Phone": "555"}, result.Assigned)
	require.Equal(t, 1, engine.extractCalls)

	// Second upload of the identical bytes hits the cache, never the engine's extractor.
	result2, err := svc.Apply(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, result.Assigned, result2.Assigned)
	require.Equal(t, result.Digest, result2.Digest)
	require.Equal(t, 1, engine.extractCalls)
}

func TestApplyAnonymousSkipsCache(t *testing.T) {
	engine := &fakePDF{fields: []pdf.Field{{Name: "E-Mail", Type: "text"}}}
	svc := newTestFill(t, engine)

	req := Request{
		PDF:       []byte("%PDF-1.7 anonymous"),
		Data:      map[string]any{"email": "a@b.com"},
		Watermark: true,
	}

	_, err := svc.Apply(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Apply(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, 2, engine.extractCalls)
	require.True(t, engine.lastMark)
}

func TestApplyCachedMappingInvertedThroughProfile(t *testing.T) {
	engine := &fakePDF{fields: []pdf.Field{{Name: "E-Mail", Type: "text"}, {Name: "Phone", Type: "text"}}}
	svc := newTestFill(t, engine)

	pdfBytes := []byte("%PDF-1.7 reused form")
	if _, err := svc.Apply(context.Background(), Request{
		UserID: "user-1",
		PDF:    pdfBytes,
		Data:   map[string]any{"email": "a@b.com", "phone": "555"},
	}); err != nil {
		t.Fatalf("warm-up fill failed: %v", err)
	}

	// A different profile flows through the cached mapping.
	result, err := svc.Apply(context.Background(), Request{
		UserID: "user-1",
		PDF:    pdfBytes,
		Data:   map[string]any{"email": "other@b.com"},
	})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"E-Mail": "other@b.com"}, result.Assigned)
}

func TestApplyNoMatchesStillFills(t *testing.T) {
	engine := &fakePDF{fields: []pdf.Field{{Name: "Grantor Signature", Type: "sig"}}}
	svc := newTestFill(t, engine)

	result, err := svc.Apply(context.Background(), Request{
		UserID: "user-1",
		PDF:    []byte("%PDF-1.7 exotic form"),
		Data:   map[string]any{"email": "a@b.com"},
	})
	require.NoError(t, err)
	require.Empty(t, result.Assigned)
	require.Equal(t, []byte("filled:%PDF-1.7 exotic form"), result.PDF)
}
