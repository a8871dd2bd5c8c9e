package service

import (
	"github.com/folioworks/folio-backend/internal/domain"
)

// SnapshotService assembles point-in-time snapshots of a project and its
// child records.
type SnapshotService struct {
	projectRepo domain.ProjectRepository
	costRepo    domain.CostRepository
	hoursRepo   domain.HoursRepository
	invoiceRepo domain.InvoiceRepository
	expenseRepo domain.ExpenseRepository
}

// NewSnapshotService creates a new SnapshotService
func NewSnapshotService(
	projectRepo domain.ProjectRepository,
	costRepo domain.CostRepository,
	hoursRepo domain.HoursRepository,
	invoiceRepo domain.InvoiceRepository,
	expenseRepo domain.ExpenseRepository,
) *SnapshotService {
	return &SnapshotService{
		projectRepo: projectRepo,
		costRepo:    costRepo,
		hoursRepo:   hoursRepo,
		invoiceRepo: invoiceRepo,
		expenseRepo: expenseRepo,
	}
}

// Load returns the project and all of its child collections as one
// snapshot. Missing child rows yield empty slices, never an error.
//
// The reads are individual statements, not one transaction: a write
// landing between them can leave the snapshot reflecting a brief race.
// Callers get best-effort consistency, not a serialized view.
func (s *SnapshotService) Load(projectID int32) (*domain.Snapshot, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
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
