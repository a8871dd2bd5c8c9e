package service

import (
	"context"
	"time"

	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/folioworks/folio-backend/internal/ingest"
	"github.com/folioworks/folio-backend/internal/repository/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ProjectService handles project intake: creation from extracted
// dashboard metrics, workbook imports, and forecast rows. Projects are
// immutable after creation; everything else is append-only.
type ProjectService struct {
	projectRepo domain.ProjectRepository
	costRepo    domain.CostRepository
	hoursRepo   domain.HoursRepository
	invoiceRepo domain.InvoiceRepository
	expenseRepo domain.ExpenseRepository
	store       storage.ObjectStore
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo domain.ProjectRepository,
	costRepo domain.CostRepository,
	hoursRepo domain.HoursRepository,
	invoiceRepo domain.InvoiceRepository,
	expenseRepo domain.ExpenseRepository,
	store storage.ObjectStore,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		costRepo:    costRepo,
		hoursRepo:   hoursRepo,
		invoiceRepo: invoiceRepo,
		expenseRepo: expenseRepo,
		store:       store,
	}
}

// CreateProjectInput carries the dashboard figures extracted upstream.
// The document-understanding step itself lives outside this service; by
// the time values arrive here they are already typed integers in minor
// units and basis-points-of-percent.
type CreateProjectInput struct {
	Name           string
	Code           *string
	ClientName     *string
	ProjectManager *string

	ContractValue   int64
	BaselineBudget  int64
	BaselineGPM     int64
	WorkingBudget   int64
	CurrentGPM      int64
	ActualCosts     int64
	ProjectProgress int64
}

// CreateProject stores a new project owned by userID.
func (s *ProjectService) CreateProject(userID uuid.UUID, in *CreateProjectInput) (*domain.Project, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	project, err := s.projectRepo.Create(&domain.Project{
		UserID:          userID,
		Name:            in.Name,
		Code:            in.Code,
		ClientName:      in.ClientName,
		ProjectManager:  in.ProjectManager,
		ContractValue:   in.ContractValue,
		BaselineBudget:  in.BaselineBudget,
		BaselineGPM:     in.BaselineGPM,
		WorkingBudget:   in.WorkingBudget,
		CurrentGPM:      in.CurrentGPM,
		ActualCosts:     in.ActualCosts,
		ProjectProgress: in.ProjectProgress,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create project")
		return nil, err
	}
	return project, nil
}

// ListProjects returns all projects owned by userID.
func (s *ProjectService) ListProjects(userID uuid.UUID) ([]*domain.Project, error) {
	return s.projectRepo.GetByUser(userID)
}

// GetProject returns one owned project with all child collections.
// Ownership failures surface as ErrProjectNotFound so callers cannot
// probe for projects they do not own.
func (s *ProjectService) GetProject(projectID int32, userID uuid.UUID) (*domain.Snapshot, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, domain.ErrProjectNotFound
	}

	costs, err := s.costRepo.GetByProject(projectID)
	if err != nil {
		return nil, err
	}
	hours, err := s.hoursRepo.GetByProject(projectID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.GetByProject(projectID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.GetByProject(projectID)
	if err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		Project:  project,
		Costs:    costs,
		Hours:    hours,
		Invoices: invoices,
		Expenses: expenses,
	}, nil
}

// ImportWorkbook parses an uploaded cost/hours workbook, stores the
// original file, and appends the extracted rows to the project.
func (s *ProjectService) ImportWorkbook(ctx context.Context, projectID int32, userID uuid.UUID, filename string, data []byte) (*ingest.WorkbookData, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, domain.ErrProjectNotFound
	}

	parsed, err := ingest.ParseWorkbook(data)
	if err != nil {
		log.Error().Err(err).Int32("project_id", projectID).Msg("Failed to parse workbook")
		return nil, err
	}

	key := storage.UploadKey(userID, "workbook", filename, time.Now())
	if _, err := s.store.Put(ctx, key, data, ingest.WorkbookContentType); err != nil {
		return nil, err
	}

	if len(parsed.Costs) > 0 {
		items := make([]*domain.CostItem, 0, len(parsed.Costs))
		for _, row := range parsed.Costs {
			items = append(items, &domain.CostItem{
				ProjectID:   projectID,
				Category:    row.Category,
				Amount:      row.Amount,
				IsPaid:      row.IsPaid,
				PaymentDate: row.PaymentDate,
				Notes:       row.Notes,
			})
		}
		if err := s.costRepo.CreateBatch(items); err != nil {
			return nil, err
		}
	}

	if len(parsed.Hours) > 0 {
		records := make([]*domain.HoursRecord, 0, len(parsed.Hours))
		for _, row := range parsed.Hours {
			records = append(records, &domain.HoursRecord{
				ProjectID:  projectID,
				Month:      row.Month,
				Hours:      row.Hours,
				IsForecast: row.IsForecast,
			})
		}
		if err := s.hoursRepo.CreateBatch(records); err != nil {
			return nil, err
		}
	}

	log.Info().
		Int32("project_id", projectID).
		Int("costs", len(parsed.Costs)).
		Int("hours", len(parsed.Hours)).
		Msg("Imported workbook")

	return parsed, nil
}

// ForecastInvoiceInput is one invoice row appended through AddForecast.
type ForecastInvoiceInput struct {
	InvoiceNumber  string
	Amount         int64
	SubmissionDate *time.Time
	Status         domain.InvoiceStatus
	Notes          *string
}

// ForecastExpenseInput is one future expense row appended through AddForecast.
type ForecastExpenseInput struct {
	ExpenseType string
	Amount      int64
	PaymentDate *time.Time
	Description *string
}

// AddForecast appends invoices and future expenses to an owned project.
func (s *ProjectService) AddForecast(projectID int32, userID uuid.UUID, invoices []ForecastInvoiceInput, expenses []ForecastExpenseInput) error {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return err
	}
	if project.UserID != userID {
		return domain.ErrProjectNotFound
	}

	for _, inv := range invoices {
		if !domain.ValidInvoiceStatus(inv.Status) {
			return domain.ErrInvalidInput
		}
	}

	if len(invoices) > 0 {
		rows := make([]*domain.Invoice, 0, len(invoices))
		for _, inv := range invoices {
			rows = append(rows, &domain.Invoice{
				ProjectID:      projectID,
				InvoiceNumber:  inv.InvoiceNumber,
				Amount:         inv.Amount,
				SubmissionDate: inv.SubmissionDate,
				Status:         inv.Status,
				Notes:          inv.Notes,
			})
		}
		if err := s.invoiceRepo.CreateBatch(rows); err != nil {
			return err
		}
	}

	if len(expenses) > 0 {
		rows := make([]*domain.Expense, 0, len(expenses))
		for _, exp := range expenses {
			rows = append(rows, &domain.Expense{
				ProjectID:   projectID,
				ExpenseType: exp.ExpenseType,
				Amount:      exp.Amount,
				PaymentDate: exp.PaymentDate,
				Description: exp.Description,
			})
		}
		if err := s.expenseRepo.CreateBatch(rows); err != nil {
			return err
		}
	}

	return nil
}
