package incidents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alerthe/alerthe-server/internal/domain/models"
	"github.com/alerthe/alerthe-server/internal/repository/mongodb"
)

// ErrInvalidSubmission marks a submission payload the service refuses to
// store.
var ErrInvalidSubmission = errors.New("invalid incident submission")

// Service handles citizen submissions and the map client's listing needs.
type Service struct {
	repo   mongodb.Repository
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires a new incidents service instance.
func NewService(repo mongodb.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, now: time.Now, logger: logger}
}

// Submit validates and stores a new citizen report. The creation timestamp
// is assigned server-side, and anonymous submissions are stripped of
// identity fields before they ever reach storage.
func (s *Service) Submit(ctx context.Context, req models.NewIncident) (models.IncidentRecord, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return models.IncidentRecord{}, fmt.Errorf("%w: description is required", ErrInvalidSubmission)
	}

	createdAt := s.now().UTC()
	rec := models.IncidentRecord{
		Description: description,
		Category:    models.ParseCategory(req.Category),
		IsAnonymous: req.IsAnonymous,
		Location:    req.Location,
		CreatedAt:   &createdAt,
	}
	if !req.IsAnonymous {
		rec.ContactNumber = strings.TrimSpace(req.ContactNumber)
		rec.Reporter = req.Reporter
	}

	id, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return models.IncidentRecord{}, fmt.Errorf("store incident: %w", err)
	}
	rec.ID = id

	s.logger.Info("incident submitted",
		zap.String("id", id),
		zap.String("category", string(rec.Category)),
		zap.Bool("anonymous", rec.IsAnonymous))

	return rec, nil
}

// List returns every stored incident in canonical form. Malformed
// documents are dropped with a warning rather than failing the listing.
func (s *Service) List(ctx context.Context) ([]models.IncidentRecord, error) {
	raw, err := s.repo.ListRaw(ctx)
	if err != nil {
		return nil, fmt.Errorf("load incidents: %w", err)
	}

	records := make([]models.IncidentRecord, 0, len(raw))
	for _, doc := range raw {
		rec, err := models.NormalizeIncident(doc)
		if err != nil {
			s.logger.Warn("skipping malformed incident record", zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Delete removes one incident by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete incident %s: %w", id, err)
	}
	s.logger.Info("incident deleted", zap.String("id", id))
	return nil
}
