package postgres

import (
	"context"
	"errors"

	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProjectRepository implements domain.ProjectRepository using PostgreSQL
type ProjectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

const projectColumns = `id, user_id, name, code, client_name, project_manager,
	contract_value, baseline_budget, baseline_gpm, working_budget, current_gpm,
	actual_costs, project_progress, dashboard_file_key, dashboard_file_url,
	workbook_file_key, workbook_file_url, created_at, updated_at`

// Create inserts a new project and returns the stored row.
func (r *ProjectRepository) Create(project *domain.Project) (*domain.Project, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO projects (
			user_id, name, code, client_name, project_manager,
			contract_value, baseline_budget, baseline_gpm, working_budget,
			current_gpm, actual_costs, project_progress,
			dashboard_file_key, dashboard_file_url, workbook_file_key, workbook_file_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING `+projectColumns,
		project.UserID, project.Name, project.Code, project.ClientName, project.ProjectManager,
		project.ContractValue, project.BaselineBudget, project.BaselineGPM, project.WorkingBudget,
		project.CurrentGPM, project.ActualCosts, project.ProjectProgress,
		project.DashboardFileKey, project.DashboardFileURL, project.WorkbookFileKey, project.WorkbookFileURL,
	)
	return scanProject(row)
}

// GetByID retrieves a project by its ID.
func (r *ProjectRepository) GetByID(id int32) (*domain.Project, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// GetByUser retrieves all projects owned by a user, newest first.
func (r *ProjectRepository) GetByUser(userID uuid.UUID) ([]*domain.Project, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+projectColumns+` FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []*domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Code, &p.ClientName, &p.ProjectManager,
		&p.ContractValue, &p.BaselineBudget, &p.BaselineGPM, &p.WorkingBudget, &p.CurrentGPM,
		&p.ActualCosts, &p.ProjectProgress, &p.DashboardFileKey, &p.DashboardFileURL,
		&p.WorkbookFileKey, &p.WorkbookFileURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
