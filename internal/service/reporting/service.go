package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alerthe/alerthe-server/internal/domain/models"
)

// Sentinel failures the caller must be able to tell apart. A zero-incident
// month produces a normal report; these two produce no report at all.
var (
	ErrSourceUnavailable = errors.New("incident source unavailable")
	ErrRenderFailure     = errors.New("report rendering failed")
)

// RecordSource bulk-reads the raw incident snapshot the pipeline works on.
type RecordSource interface {
	ListRaw(ctx context.Context) ([]map[string]any, error)
}

// NarrativeClient produces the technical-analysis prose. Implementations
// may fail or time out; the pipeline recovers with a placeholder.
type NarrativeClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Renderer turns a compiled document description into artifact bytes.
type Renderer interface {
	Render(doc models.ReportDocument) ([]byte, error)
}

// Service runs the monthly report pipeline: snapshot, normalize, filter,
// aggregate, narrative, compile, render. Each invocation works on its own
// snapshot and document buffer; concurrent invocations share nothing.
type Service struct {
	source    RecordSource
	narrative NarrativeClient
	renderer  Renderer
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// NewService wires a new reporting service instance. narrative may be nil,
// in which case every report carries the narrative placeholder.
func NewService(source RecordSource, narrative NarrativeClient, renderer Renderer, loc *time.Location, logger *zap.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:    source,
		narrative: narrative,
		renderer:  renderer,
		loc:       loc,
		now:       time.Now,
		logger:    logger,
	}
}

// CompileMonthly runs every pipeline stage short of rendering and returns
// the document description for the given month.
func (s *Service) CompileMonthly(ctx context.Context, year int, month time.Month) (models.ReportDocument, error) {
	raw, err := s.source.ListRaw(ctx)
	if err != nil {
		return models.ReportDocument{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	records := s.normalizeAll(raw)
	filtered := FilterMonth(records, year, month, s.loc)
	agg := Aggregate(filtered, year, month, s.loc)

	narrative := s.requestNarrative(ctx, agg)

	return BuildDocument(agg, filtered, narrative, s.now().In(s.loc)), nil
}

// GenerateMonthlyReport compiles and renders the report for the given
// month. Source and render failures surface as typed errors; a month with
// zero incidents still renders a complete report.
func (s *Service) GenerateMonthlyReport(ctx context.Context, year int, month time.Month) (*models.RenderedReport, error) {
	doc, err := s.CompileMonthly(ctx, year, month)
	if err != nil {
		return nil, err
	}

	content, err := s.renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}

	s.logger.Info("monthly report generated",
		zap.Int("year", year),
		zap.String("month", month.String()),
		zap.Int("incidents", len(doc.Rows)),
		zap.String("filename", doc.Filename))

	return &models.RenderedReport{Filename: doc.Filename, Content: content}, nil
}

// normalizeAll coerces the raw snapshot, dropping malformed documents with
// a warning. A bad record never aborts the report.
func (s *Service) normalizeAll(raw []map[string]any) []models.IncidentRecord {
	records := make([]models.IncidentRecord, 0, len(raw))
	for _, doc := range raw {
		rec, err := models.NormalizeIncident(doc)
		if err != nil {
			s.logger.Warn("dropping malformed incident record", zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records
}

// requestNarrative performs the single narrative call for this invocation.
// No retry: on any failure the placeholder stands in and compilation
// continues.
func (s *Service) requestNarrative(ctx context.Context, agg models.MonthlyAggregate) string {
	if s.narrative == nil {
		return NarrativePlaceholder
	}

	text, err := s.narrative.GenerateText(ctx, NarrativePrompt(agg))
	if err != nil {
		s.logger.Warn("narrative generation failed, using placeholder", zap.Error(err))
		return NarrativePlaceholder
	}
	return text
}
