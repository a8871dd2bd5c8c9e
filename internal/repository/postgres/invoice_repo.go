package postgres

import (
	"context"

	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvoiceRepository implements domain.InvoiceRepository using PostgreSQL
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

// CreateBatch inserts invoices in one round trip.
func (r *InvoiceRepository) CreateBatch(invoices []*domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	ctx := context.Background()

	batch := &pgx.Batch{}
	for _, inv := range invoices {
		batch.Queue(`
			INSERT INTO invoices (project_id, invoice_number, amount, submission_date, status, notes)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			inv.ProjectID, inv.InvoiceNumber, inv.Amount, inv.SubmissionDate, string(inv.Status), inv.Notes,
		)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

// GetByProject retrieves all invoices for a project in insertion order.
func (r *InvoiceRepository) GetByProject(projectID int32) ([]*domain.Invoice, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, invoice_number, amount, submission_date, status, notes, created_at
		FROM invoices
		WHERE project_id = $1
		ORDER BY id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []*domain.Invoice{}
	for rows.Next() {
		var inv domain.Invoice
		var status string
		if err := rows.Scan(&inv.ID, &inv.ProjectID, &inv.InvoiceNumber, &inv.Amount,
			&inv.SubmissionDate, &status, &inv.Notes, &inv.CreatedAt); err != nil {
			return nil, err
		}
		inv.Status = domain.InvoiceStatus(status)
		invoices = append(invoices, &inv)
	}
	return invoices, rows.Err()
}
