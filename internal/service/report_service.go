package service

import (
	"context"
	"path"
	"time"

	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/folioworks/folio-backend/internal/report"
	"github.com/folioworks/folio-backend/internal/repository/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const reportContentType = "text/html; charset=utf-8"

// ReportHandle describes the output of one successful generation: where
// the documents live, how many sections were written (always twelve) and
// the index document's address.
type ReportHandle struct {
	ReportID     int32    `json:"reportId"`
	Namespace    string   `json:"namespace"`
	SectionCount int      `json:"sectionCount"`
	SectionURLs  []string `json:"sectionUrls"`
	IndexKey     string   `json:"indexKey"`
	IndexURL     string   `json:"indexUrl"`
}

// ReportService orchestrates the portfolio pipeline: snapshot, metrics,
// render, write. Each invocation is stateless and independent; the only
// shared resource is the store behind the repositories.
type ReportService struct {
	snapshots  *SnapshotService
	store      storage.ObjectStore
	reportRepo domain.ReportRepository
	currency   string
	now        func() time.Time
}

// NewReportService creates a new ReportService. currency is the display
// currency code stamped on every document.
func NewReportService(snapshots *SnapshotService, store storage.ObjectStore, reportRepo domain.ReportRepository, currency string) *ReportService {
	return &ReportService{
		snapshots:  snapshots,
		store:      store,
		reportRepo: reportRepo,
		currency:   currency,
		now:        time.Now,
	}
}

// Generate runs the full pipeline for one project and materializes all
// twelve section documents plus the index under a fresh namespace.
//
// Ordering within the invocation is strict: the snapshot is fully
// assembled before metrics are computed, and metrics are complete before
// any document is rendered or written. Any failure aborts the invocation
// without returning a handle; documents already written under the
// abandoned namespace are never referenced by an index, so no partial
// set is addressable as complete.
func (s *ReportService) Generate(ctx context.Context, projectID int32, ownerID uuid.UUID) (*ReportHandle, error) {
	snap, metrics, err := s.load(projectID, ownerID)
	if err != nil {
		return nil, err
	}

	generatedAt := s.now().UTC()
	namespace := storage.ReportNamespace(projectID, generatedAt)
	in := report.Input{
		Snapshot:    snap,
		Metrics:     metrics,
		Currency:    s.currency,
		GeneratedAt: generatedAt,
	}

	sectionURLs := make([]string, 0, report.SectionCount)
	for _, section := range report.Sections() {
		key := path.Join(namespace, section.Filename())
		url, err := s.store.Put(ctx, key, []byte(report.Render(section, in)), reportContentType)
		if err != nil {
			log.Error().Err(err).Int32("project_id", projectID).Str("key", key).Msg("Failed to write report section")
			return nil, err
		}
		sectionURLs = append(sectionURLs, url)
	}

	indexKey := path.Join(namespace, report.IndexFilename)
	indexURL, err := s.store.Put(ctx, indexKey, []byte(report.Index(in)), reportContentType)
	if err != nil {
		log.Error().Err(err).Int32("project_id", projectID).Str("key", indexKey).Msg("Failed to write report index")
		return nil, err
	}

	created, err := s.reportRepo.Create(&domain.Report{
		ProjectID: projectID,
		UserID:    ownerID,
		IndexKey:  indexKey,
		IndexURL:  indexURL,
		Format:    domain.ReportFormatHTML,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int32("project_id", projectID).
		Str("namespace", namespace).
		Int("sections", len(sectionURLs)).
		Msg("Generated portfolio")

	return &ReportHandle{
		ReportID:     created.ID,
		Namespace:    namespace,
		SectionCount: len(sectionURLs),
		SectionURLs:  sectionURLs,
		IndexKey:     indexKey,
		IndexURL:     indexURL,
	}, nil
}

// Preview runs the same authorization and computation path as Generate
// without rendering or writing anything.
func (s *ReportService) Preview(projectID int32, ownerID uuid.UUID) (*domain.Snapshot, *domain.FinancialMetrics, error) {
	snap, metrics, err := s.load(projectID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	return snap, metrics, nil
}

// load assembles the snapshot, enforces ownership before exposing any
// derived value, and computes metrics.
func (s *ReportService) load(projectID int32, ownerID uuid.UUID) (*domain.Snapshot, *domain.FinancialMetrics, error) {
	snap, err := s.snapshots.Load(projectID)
	if err != nil {
		return nil, nil, err
	}

	if snap.Project.UserID != ownerID {
		return nil, nil, domain.ErrUnauthorized
	}

	metrics, err := ComputeFinancials(snap)
	if err != nil {
		if field, ok := domain.IsDivisionByZero(err); ok {
			log.Warn().Int32("project_id", projectID).Str("field", field).Msg("Metrics computation failed on zero denominator")
		}
		return nil, nil, err
	}

	return snap, metrics, nil
}
