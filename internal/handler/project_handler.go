package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/folioworks/folio-backend/internal/ingest"
	"github.com/folioworks/folio-backend/internal/middleware"
	"github.com/folioworks/folio-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// MaxWorkbookSize is the upload limit for imported workbooks
const MaxWorkbookSize = 10 * 1024 * 1024 // 10MB

// ProjectHandler handles project-related HTTP requests
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProjectRequest represents the create project request body.
// Monetary fields are integers in minor currency units; percentage
// fields are integers in basis-points-of-percent (31.00% = 3100).
type CreateProjectRequest struct {
	Name           string  `json:"name"`
	Code           *string `json:"code,omitempty"`
	ClientName     *string `json:"clientName,omitempty"`
	ProjectManager *string `json:"projectManager,omitempty"`

	ContractValue   int64 `json:"contractValue"`
	BaselineBudget  int64 `json:"baselineBudget"`
	BaselineGPM     int64 `json:"baselineGpm"`
	WorkingBudget   int64 `json:"workingBudget"`
	CurrentGPM      int64 `json:"currentGpm"`
	ActualCosts     int64 `json:"actualCosts"`
	ProjectProgress int64 `json:"projectProgress"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID             int32   `json:"id"`
	Name           string  `json:"name"`
	Code           *string `json:"code,omitempty"`
	ClientName     *string `json:"clientName,omitempty"`
	ProjectManager *string `json:"projectManager,omitempty"`

	ContractValue   int64 `json:"contractValue"`
	BaselineBudget  int64 `json:"baselineBudget"`
	BaselineGPM     int64 `json:"baselineGpm"`
	WorkingBudget   int64 `json:"workingBudget"`
	CurrentGPM      int64 `json:"currentGpm"`
	ActualCosts     int64 `json:"actualCosts"`
	ProjectProgress int64 `json:"projectProgress"`

	WorkbookFileURL *string `json:"workbookFileUrl,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// SnapshotResponse represents a project with all of its child
// collections in API responses
type SnapshotResponse struct {
	Project  ProjectResponse       `json:"project"`
	Costs    []*domain.CostItem    `json:"costs"`
	Hours    []*domain.HoursRecord `json:"hours"`
	Invoices []*domain.Invoice     `json:"invoices"`
	Expenses []*domain.Expense     `json:"expenses"`
}

// CreateProject handles POST /api/v1/projects
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.Name == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Project name is required"},
		})
	}

	input := service.CreateProjectInput{
		Name:            req.Name,
		Code:            req.Code,
		ClientName:      req.ClientName,
		ProjectManager:  req.ProjectManager,
		ContractValue:   req.ContractValue,
		BaselineBudget:  req.BaselineBudget,
		BaselineGPM:     req.BaselineGPM,
		WorkingBudget:   req.WorkingBudget,
		CurrentGPM:      req.CurrentGPM,
		ActualCosts:     req.ActualCosts,
		ProjectProgress: req.ProjectProgress,
	}

	project, err := h.projectService.CreateProject(userID, &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Project name is required"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create project")
		return NewInternalError(c, "Failed to create project")
	}

	log.Info().Str("user_id", userID.String()).Int32("project_id", project.ID).Str("name", project.Name).Msg("Project created")

	return c.JSON(http.StatusCreated, toProjectResponse(project))
}

// GetProjects handles GET /api/v1/projects
func (h *ProjectHandler) GetProjects(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	projects, err := h.projectService.ListProjects(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list projects")
		return NewInternalError(c, "Failed to list projects")
	}

	response := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		response[i] = toProjectResponse(p)
	}

	return c.JSON(http.StatusOK, response)
}

// GetProject handles GET /api/v1/projects/:id
func (h *ProjectHandler) GetProject(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid project ID", nil)
	}

	snap, err := h.projectService.GetProject(int32(id), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return NewNotFoundError(c, "Project not found")
		}
		log.Error().Err(err).Int("project_id", id).Msg("Failed to get project")
		return NewInternalError(c, "Failed to get project")
	}

	return c.JSON(http.StatusOK, SnapshotResponse{
		Project:  toProjectResponse(snap.Project),
		Costs:    snap.Costs,
		Hours:    snap.Hours,
		Invoices: snap.Invoices,
		Expenses: snap.Expenses,
	})
}

// ImportWorkbookResponse reports how many rows the workbook produced
type ImportWorkbookResponse struct {
	CostRows  int `json:"costRows"`
	HoursRows int `json:"hoursRows"`
}

// ImportWorkbook handles POST /api/v1/projects/:id/import
// Accepts a multipart form with a "file" field containing the workbook
func (h *ProjectHandler) ImportWorkbook(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid project ID", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "Missing file", []ValidationError{
			{Field: "file", Message: "A workbook file is required"},
		})
	}

	if fileHeader.Size > MaxWorkbookSize {
		return NewValidationError(c, "File too large", []ValidationError{
			{Field: "file", Message: "Workbook must be 10MB or less"},
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded workbook")
		return NewInternalError(c, "Failed to read file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxWorkbookSize+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded workbook")
		return NewInternalError(c, "Failed to read file")
	}
	if len(data) > MaxWorkbookSize {
		return NewValidationError(c, "File too large", []ValidationError{
			{Field: "file", Message: "Workbook must be 10MB or less"},
		})
	}

	parsed, err := h.projectService.ImportWorkbook(c.Request().Context(), int32(id), userID, fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return NewNotFoundError(c, "Project not found")
		}
		if errors.Is(err, ingest.ErrUnreadableWorkbook) || errors.Is(err, ingest.ErrEmptyWorkbook) {
			return NewValidationError(c, "Unreadable workbook", []ValidationError{
				{Field: "file", Message: err.Error()},
			})
		}
		log.Error().Err(err).Int("project_id", id).Msg("Failed to import workbook")
		return NewInternalError(c, "Failed to import workbook")
	}

	return c.JSON(http.StatusOK, ImportWorkbookResponse{
		CostRows:  len(parsed.Costs),
		HoursRows: len(parsed.Hours),
	})
}

// ForecastInvoiceRequest is one invoice row in a forecast submission
type ForecastInvoiceRequest struct {
	InvoiceNumber  string  `json:"invoiceNumber"`
	Amount         int64   `json:"amount"`
	SubmissionDate *string `json:"submissionDate,omitempty"`
	Status         string  `json:"status"`
	Notes          *string `json:"notes,omitempty"`
}

// ForecastExpenseRequest is one future expense row in a forecast submission
type ForecastExpenseRequest struct {
	ExpenseType string  `json:"expenseType"`
	Amount      int64   `json:"amount"`
	PaymentDate *string `json:"paymentDate,omitempty"`
	Description *string `json:"description,omitempty"`
}

// AddForecastRequest represents the forecast intake request body
type AddForecastRequest struct {
	Invoices []ForecastInvoiceRequest `json:"invoices"`
	Expenses []ForecastExpenseRequest `json:"expenses"`
}

// AddForecast handles POST /api/v1/projects/:id/forecast
func (h *ProjectHandler) AddForecast(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid project ID", nil)
	}

	var req AddForecastRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	invoices := make([]service.ForecastInvoiceInput, 0, len(req.Invoices))
	for _, inv := range req.Invoices {
		status := domain.InvoiceStatus(inv.Status)
		if !domain.ValidInvoiceStatus(status) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "invoices", Message: "Status must be 'paid', 'unpaid', 'submitted' or 'to_submit'"},
			})
		}
		submissionDate, err := parseOptionalDate(inv.SubmissionDate)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "invoices", Message: "Submission date must be in YYYY-MM-DD format"},
			})
		}
		invoices = append(invoices, service.ForecastInvoiceInput{
			InvoiceNumber:  inv.InvoiceNumber,
			Amount:         inv.Amount,
			SubmissionDate: submissionDate,
			Status:         status,
			Notes:          inv.Notes,
		})
	}

	expenses := make([]service.ForecastExpenseInput, 0, len(req.Expenses))
	for _, exp := range req.Expenses {
		paymentDate, err := parseOptionalDate(exp.PaymentDate)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "expenses", Message: "Payment date must be in YYYY-MM-DD format"},
			})
		}
		expenses = append(expenses, service.ForecastExpenseInput{
			ExpenseType: exp.ExpenseType,
			Amount:      exp.Amount,
			PaymentDate: paymentDate,
			Description: exp.Description,
		})
	}

	if err := h.projectService.AddForecast(int32(id), userID, invoices, expenses); err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return NewNotFoundError(c, "Project not found")
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", nil)
		}
		log.Error().Err(err).Int("project_id", id).Msg("Failed to add forecast")
		return NewInternalError(c, "Failed to add forecast")
	}

	log.Info().
		Int("project_id", id).
		Int("invoices", len(invoices)).
		Int("expenses", len(expenses)).
		Msg("Forecast rows added")

	return c.NoContent(http.StatusNoContent)
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:              p.ID,
		Name:            p.Name,
		Code:            p.Code,
		ClientName:      p.ClientName,
		ProjectManager:  p.ProjectManager,
		ContractValue:   p.ContractValue,
		BaselineBudget:  p.BaselineBudget,
		BaselineGPM:     p.BaselineGPM,
		WorkingBudget:   p.WorkingBudget,
		CurrentGPM:      p.CurrentGPM,
		ActualCosts:     p.ActualCosts,
		ProjectProgress: p.ProjectProgress,
		WorkbookFileURL: p.WorkbookFileURL,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       p.UpdatedAt.Format(time.RFC3339),
	}
}
