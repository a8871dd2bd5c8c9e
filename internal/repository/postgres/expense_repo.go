package postgres

import (
	"context"

	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// CreateBatch inserts expenses in one round trip.
func (r *ExpenseRepository) CreateBatch(expenses []*domain.Expense) error {
	if len(expenses) == 0 {
		return nil
	}
	ctx := context.Background()

	batch := &pgx.Batch{}
	for _, exp := range expenses {
		batch.Queue(`
			INSERT INTO expenses (project_id, expense_type, amount, payment_date, description)
			VALUES ($1, $2, $3, $4, $5)`,
			exp.ProjectID, exp.ExpenseType, exp.Amount, exp.PaymentDate, exp.Description,
		)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

// GetByProject retrieves all expenses for a project in insertion order.
func (r *ExpenseRepository) GetByProject(projectID int32) ([]*domain.Expense, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, expense_type, amount, payment_date, description, created_at
		FROM expenses
		WHERE project_id = $1
		ORDER BY id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []*domain.Expense{}
	for rows.Next() {
		var exp domain.Expense
		if err := rows.Scan(&exp.ID, &exp.ProjectID, &exp.ExpenseType, &exp.Amount,
			&exp.PaymentDate, &exp.Description, &exp.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, &exp)
	}
	return expenses, rows.Err()
}
