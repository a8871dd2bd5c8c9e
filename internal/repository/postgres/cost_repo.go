package postgres

import (
	"context"

	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CostRepository implements domain.CostRepository using PostgreSQL
type CostRepository struct {
	pool *pgxpool.Pool
}

// NewCostRepository creates a new CostRepository
func NewCostRepository(pool *pgxpool.Pool) *CostRepository {
	return &CostRepository{pool: pool}
}

// CreateBatch inserts cost items in one round trip.
func (r *CostRepository) CreateBatch(items []*domain.CostItem) error {
	if len(items) == 0 {
		return nil
	}
	ctx := context.Background()

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(`
			INSERT INTO cost_items (project_id, category, amount, is_paid, payment_date, notes)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ProjectID, item.Category, item.Amount, item.IsPaid, item.PaymentDate, item.Notes,
		)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

// GetByProject retrieves all cost items for a project in insertion order.
func (r *CostRepository) GetByProject(projectID int32) ([]*domain.CostItem, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, category, amount, is_paid, payment_date, notes, created_at
		FROM cost_items
		WHERE project_id = $1
		ORDER BY id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*domain.CostItem{}
	for rows.Next() {
		var item domain.CostItem
		if err := rows.Scan(&item.ID, &item.ProjectID, &item.Category, &item.Amount,
			&item.IsPaid, &item.PaymentDate, &item.Notes, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}
