package postgres

import (
	"context"

	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepository implements domain.ReportRepository using PostgreSQL
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// Create inserts a generated report record and returns the stored row.
func (r *ReportRepository) Create(report *domain.Report) (*domain.Report, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO reports (project_id, user_id, index_key, index_url, format)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, project_id, user_id, index_key, index_url, format, created_at`,
		report.ProjectID, report.UserID, report.IndexKey, report.IndexURL, string(report.Format),
	)

	var created domain.Report
	var format string
	if err := row.Scan(&created.ID, &created.ProjectID, &created.UserID,
		&created.IndexKey, &created.IndexURL, &format, &created.CreatedAt); err != nil {
		return nil, err
	}
	created.Format = domain.ReportFormat(format)
	return &created, nil
}

// GetByProject retrieves all generated reports for a project, newest first.
func (r *ReportRepository) GetByProject(projectID int32) ([]*domain.Report, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, user_id, index_key, index_url, format, created_at
		FROM reports
		WHERE project_id = $1
		ORDER BY created_at DESC, id DESC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []*domain.Report{}
	for rows.Next() {
		var rep domain.Report
		var format string
		if err := rows.Scan(&rep.ID, &rep.ProjectID, &rep.UserID,
			&rep.IndexKey, &rep.IndexURL, &format, &rep.CreatedAt); err != nil {
			return nil, err
		}
		rep.Format = domain.ReportFormat(format)
		reports = append(reports, &rep)
	}
	return reports, rows.Err()
}
