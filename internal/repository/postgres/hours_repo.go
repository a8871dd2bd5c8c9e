package postgres

import (
	"context"

	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HoursRepository implements domain.HoursRepository using PostgreSQL
type HoursRepository struct {
	pool *pgxpool.Pool
}

// NewHoursRepository creates a new HoursRepository
func NewHoursRepository(pool *pgxpool.Pool) *HoursRepository {
	return &HoursRepository{pool: pool}
}

// CreateBatch inserts hours records in one round trip.
func (r *HoursRepository) CreateBatch(records []*domain.HoursRecord) error {
	if len(records) == 0 {
		return nil
	}
	ctx := context.Background()

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(`
			INSERT INTO hours_records (project_id, month, hours, is_forecast)
			VALUES ($1, $2, $3, $4)`,
			rec.ProjectID, rec.Month, rec.Hours, rec.IsForecast,
		)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

// GetByProject retrieves all hours records for a project ordered by month.
func (r *HoursRepository) GetByProject(projectID int32) ([]*domain.HoursRecord, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, month, hours, is_forecast, created_at
		FROM hours_records
		WHERE project_id = $1
		ORDER BY month, id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*domain.HoursRecord{}
	for rows.Next() {
		var rec domain.HoursRecord
		if err := rows.Scan(&rec.ID, &rec.ProjectID, &rec.Month, &rec.Hours,
			&rec.IsForecast, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
