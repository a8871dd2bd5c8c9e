package service

import (
	"errors"
	"testing"

	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/folioworks/folio-backend/internal/testutil"
	"github.com/google/uuid"
)

func TestSnapshotLoad_EmptyChildrenAreEmptySlices(t *testing.T) {
	projectRepo := testutil.NewMockProjectRepository()
	project, _ := projectRepo.Create(&domain.Project{
		UserID:         uuid.New(),
		Name:           "Empty Project",
		ContractValue:  100,
		BaselineBudget: 100,
		WorkingBudget:  100,
	})

	svc := NewSnapshotService(
		projectRepo,
		testutil.NewMockCostRepository(),
		testutil.NewMockHoursRepository(),
		testutil.NewMockInvoiceRepository(),
		testutil.NewMockExpenseRepository(),
	)

	snap, err := svc.Load(project.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if snap.Costs == nil || snap.Hours == nil || snap.Invoices == nil || snap.Expenses == nil {
		t.Error("Expected empty slices, not nil, for absent child rows")
	}
	if len(snap.Costs)+len(snap.Hours)+len(snap.Invoices)+len(snap.Expenses) != 0 {
		t.Error("Expected all child collections empty")
	}
}

func TestSnapshotLoad_ProjectNotFound(t *testing.T) {
	svc := NewSnapshotService(
		testutil.NewMockProjectRepository(),
		testutil.NewMockCostRepository(),
		testutil.NewMockHoursRepository(),
		testutil.NewMockInvoiceRepository(),
		testutil.NewMockExpenseRepository(),
	)

	_, err := svc.Load(42)
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("Expected ErrProjectNotFound, got %v", err)
	}
}

func TestSnapshotLoad_ChildReadFailurePropagates(t *testing.T) {
	projectRepo := testutil.NewMockProjectRepository()
	project, _ := projectRepo.Create(&domain.Project{
		UserID: uuid.New(),
		Name:   "Flaky",
	})

	invoiceRepo := testutil.NewMockInvoiceRepository()
	invoiceRepo.Err = errors.New("connection refused")

	svc := NewSnapshotService(
		projectRepo,
		testutil.NewMockCostRepository(),
		testutil.NewMockHoursRepository(),
		invoiceRepo,
		testutil.NewMockExpenseRepository(),
	)

	_, err := svc.Load(project.ID)
	if err == nil {
		t.Fatal("Expected child read failure to propagate")
	}
}
