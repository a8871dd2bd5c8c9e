package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/folioworks/folio-backend/internal/middleware"
	"github.com/folioworks/folio-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ReportHandler handles portfolio generation HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// PreviewResponse carries the computed metrics without writing any
// documents. The snapshot rides along so the client can show the inputs
// next to the derived figures.
type PreviewResponse struct {
	Project  ProjectResponse          `json:"project"`
	Metrics  *domain.FinancialMetrics `json:"metrics"`
	Costs    []*domain.CostItem       `json:"costs"`
	Hours    []*domain.HoursRecord    `json:"hours"`
	Invoices []*domain.Invoice        `json:"invoices"`
	Expenses []*domain.Expense        `json:"expenses"`
}

// GeneratePortfolio handles POST /api/v1/projects/:id/portfolio
func (h *ReportHandler) GeneratePortfolio(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid project ID", nil)
	}

	handle, err := h.reportService.Generate(c.Request().Context(), int32(id), userID)
	if err != nil {
		return reportErrorResponse(c, id, err, "Failed to generate portfolio")
	}

	return c.JSON(http.StatusCreated, handle)
}

// PreviewPortfolio handles GET /api/v1/projects/:id/portfolio/preview
func (h *ReportHandler) PreviewPortfolio(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid project ID", nil)
	}

	snap, metrics, err := h.reportService.Preview(int32(id), userID)
	if err != nil {
		return reportErrorResponse(c, id, err, "Failed to preview portfolio")
	}

	return c.JSON(http.StatusOK, PreviewResponse{
		Project:  toProjectResponse(snap.Project),
		Metrics:  metrics,
		Costs:    snap.Costs,
		Hours:    snap.Hours,
		Invoices: snap.Invoices,
		Expenses: snap.Expenses,
	})
}

// reportErrorResponse maps pipeline failures onto HTTP responses.
// Ownership failures answer exactly like missing projects so callers
// cannot probe for projects they do not own. A zero denominator is a
// data problem in the project, not a server fault, and surfaces as 422
// naming the field that could not be derived.
func reportErrorResponse(c echo.Context, projectID int, err error, fallback string) error {
	if errors.Is(err, domain.ErrProjectNotFound) || errors.Is(err, domain.ErrUnauthorized) {
		return NewNotFoundError(c, "Project not found")
	}
	if field, ok := domain.IsDivisionByZero(err); ok {
		return NewUnprocessableError(c, "Metrics cannot be derived from this project's figures", []ValidationError{
			{Field: field, Message: "Denominator is zero"},
		})
	}
	log.Error().Err(err).Int("project_id", projectID).Msg(fallback)
	return NewInternalError(c, fallback)
}
