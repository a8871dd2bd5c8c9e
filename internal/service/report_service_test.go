package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/folioworks/folio-backend/internal/report"
	"github.com/folioworks/folio-backend/internal/testutil"
	"github.com/google/uuid"
)

type reportFixture struct {
	svc        *ReportService
	store      *testutil.MockObjectStore
	reportRepo *testutil.MockReportRepository
	owner      uuid.UUID
	projectID  int32
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	owner := uuid.New()
	projectRepo := testutil.NewMockProjectRepository()
	project, err := projectRepo.Create(&domain.Project{
		UserID:         owner,
		Name:           "Metro Substation Upgrade",
		ContractValue:  1_000_000_00,
		BaselineBudget: 700_000_00,
		BaselineGPM:    3000,
		WorkingBudget:  700_000_00,
		CurrentGPM:     3000,
		ActualCosts:    300_000_00,
	})
	if err != nil {
		t.Fatalf("Failed to seed project: %v", err)
	}

	snapshots := NewSnapshotService(
		projectRepo,
		testutil.NewMockCostRepository(),
		testutil.NewMockHoursRepository(),
		testutil.NewMockInvoiceRepository(),
		testutil.NewMockExpenseRepository(),
	)

	store := testutil.NewMockObjectStore()
	reportRepo := testutil.NewMockReportRepository()
	svc := NewReportService(snapshots, store, reportRepo, "QAR")

	return &reportFixture{
		svc:        svc,
		store:      store,
		reportRepo: reportRepo,
		owner:      owner,
		projectID:  project.ID,
	}
}

func TestGenerate_WritesAllSectionsThenIndex(t *testing.T) {
	f := newReportFixture(t)

	handle, err := f.svc.Generate(context.Background(), f.projectID, f.owner)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if handle.SectionCount != 12 {
		t.Errorf("Expected 12 sections, got %d", handle.SectionCount)
	}
	if len(f.store.Keys) != 13 {
		t.Fatalf("Expected 13 objects written, got %d", len(f.store.Keys))
	}

	// The index must be the last write so no partial set is ever
	// addressable as complete.
	last := f.store.Keys[len(f.store.Keys)-1]
	if path.Base(last) != report.IndexFilename {
		t.Errorf("Expected final write to be %s, got %s", report.IndexFilename, last)
	}
	if handle.IndexKey != last {
		t.Errorf("Expected handle index key %s, got %s", last, handle.IndexKey)
	}

	// Section keys follow the fixed NN-slug naming in order.
	for i, section := range report.Sections() {
		want := section.Filename()
		got := path.Base(f.store.Keys[i])
		if got != want {
			t.Errorf("Write %d: expected key %s, got %s", i, want, got)
		}
	}

	if len(f.reportRepo.Reports[f.projectID]) != 1 {
		t.Errorf("Expected one report row, got %d", len(f.reportRepo.Reports[f.projectID]))
	}
}

func TestGenerate_KeysShareOneNamespace(t *testing.T) {
	f := newReportFixture(t)

	handle, err := f.svc.Generate(context.Background(), f.projectID, f.owner)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, key := range f.store.Keys {
		if path.Dir(key) != handle.Namespace {
			t.Errorf("Key %s outside namespace %s", key, handle.Namespace)
		}
	}
	if !strings.Contains(handle.Namespace, fmt.Sprintf("portfolios/%d/", f.projectID)) {
		t.Errorf("Expected namespace scoped to project, got %s", handle.Namespace)
	}
}

func TestGenerate_IdempotentExceptClosingTimestamp(t *testing.T) {
	f := newReportFixture(t)

	// Pin the clock for the first run, advance it for the second.
	first := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	second := time.Date(2025, 6, 2, 16, 30, 0, 0, time.UTC)

	f.svc.now = func() time.Time { return first }
	h1, err := f.svc.Generate(context.Background(), f.projectID, f.owner)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	f.svc.now = func() time.Time { return second }
	h2, err := f.svc.Generate(context.Background(), f.projectID, f.owner)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, section := range report.Sections() {
		a := string(f.store.Objects[path.Join(h1.Namespace, section.Filename())].Data)
		b := string(f.store.Objects[path.Join(h2.Namespace, section.Filename())].Data)
		if section == report.SectionClosing {
			if a == b {
				t.Errorf("Expected closing sections to differ by timestamp")
			}
			continue
		}
		if a != b {
			t.Errorf("Section %s not byte-identical across runs", section.Slug())
		}
	}
}

func TestGenerate_Unauthorized(t *testing.T) {
	f := newReportFixture(t)

	stranger := uuid.New()
	handle, err := f.svc.Generate(context.Background(), f.projectID, stranger)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Expected ErrUnauthorized, got %v", err)
	}
	if handle != nil {
		t.Error("Expected no handle on unauthorized generate")
	}
	if len(f.store.Keys) != 0 {
		t.Errorf("Expected no writes, got %d", len(f.store.Keys))
	}
}

func TestGenerate_ProjectNotFound(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.Generate(context.Background(), 999, f.owner)
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("Expected ErrProjectNotFound, got %v", err)
	}
	if len(f.store.Keys) != 0 {
		t.Errorf("Expected no writes, got %d", len(f.store.Keys))
	}
}

func TestGenerate_DivisionByZeroAbortsBeforeAnyWrite(t *testing.T) {
	owner := uuid.New()
	projectRepo := testutil.NewMockProjectRepository()
	project, _ := projectRepo.Create(&domain.Project{
		UserID:         owner,
		Name:           "Zero Contract",
		ContractValue:  0,
		BaselineBudget: 700_000,
		WorkingBudget:  700_000,
		ActualCosts:    300_000,
	})

	snapshots := NewSnapshotService(
		projectRepo,
		testutil.NewMockCostRepository(),
		testutil.NewMockHoursRepository(),
		testutil.NewMockInvoiceRepository(),
		testutil.NewMockExpenseRepository(),
	)
	store := testutil.NewMockObjectStore()
	svc := NewReportService(snapshots, store, testutil.NewMockReportRepository(), "QAR")

	_, err := svc.Generate(context.Background(), project.ID, owner)
	field, ok := domain.IsDivisionByZero(err)
	if !ok {
		t.Fatalf("Expected DivisionByZeroError, got %v", err)
	}
	if field != "projectedGPM" {
		t.Errorf("Expected field projectedGPM, got %q", field)
	}
	if len(store.Keys) != 0 {
		t.Errorf("Expected no writes, got %d", len(store.Keys))
	}
}

func TestGenerate_StoreFailureLeavesNoHandle(t *testing.T) {
	f := newReportFixture(t)

	// Fail on the fifth write: some sections land, no index ever does.
	f.store.FailAfter = 4
	f.store.PutErr = errors.New("connection reset")

	handle, err := f.svc.Generate(context.Background(), f.projectID, f.owner)
	if err == nil {
		t.Fatal("Expected error from failing store")
	}
	if handle != nil {
		t.Error("Expected no handle on store failure")
	}
	for _, key := range f.store.Keys {
		if path.Base(key) == report.IndexFilename {
			t.Error("Index must never be written after a section failure")
		}
	}
	if len(f.reportRepo.Reports[f.projectID]) != 0 {
		t.Errorf("Expected no report row, got %d", len(f.reportRepo.Reports[f.projectID]))
	}
}

func TestPreview_ComputesWithoutWriting(t *testing.T) {
	f := newReportFixture(t)

	snap, metrics, err := f.svc.Preview(f.projectID, f.owner)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if snap == nil || metrics == nil {
		t.Fatal("Expected snapshot and metrics")
	}
	if metrics.ProjectedGPM != 3000 {
		t.Errorf("Expected projectedGPM 3000, got %d", metrics.ProjectedGPM)
	}
	if len(f.store.Keys) != 0 {
		t.Errorf("Preview must not write, got %d writes", len(f.store.Keys))
	}
	if len(f.reportRepo.Reports[f.projectID]) != 0 {
		t.Errorf("Preview must not record a report, got %d", len(f.reportRepo.Reports[f.projectID]))
	}
}

func TestPreview_Unauthorized(t *testing.T) {
	f := newReportFixture(t)

	_, _, err := f.svc.Preview(f.projectID, uuid.New())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Expected ErrUnauthorized, got %v", err)
	}
}
