package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func testInput() Input {
	code := "PRJ-077"
	client := "Qatar Rail"
	return Input{
		Snapshot: &domain.Snapshot{
			Project: &domain.Project{
				Name:            "Red Line Extension",
				Code:            &code,
				ClientName:      &client,
				ContractValue:   1_000_000_00,
				BaselineBudget:  700_000_00,
				BaselineGPM:     3000,
				WorkingBudget:   700_000_00,
				CurrentGPM:      3000,
				ActualCosts:     300_000_00,
				ProjectProgress: 4500,
			},
			Costs: []*domain.CostItem{},
			Hours: []*domain.HoursRecord{},
			Invoices: []*domain.Invoice{
				{InvoiceNumber: "INV-001", Amount: 50_000_00, Status: domain.InvoiceStatusPaid},
				{InvoiceNumber: "INV-002", Amount: 30_000_00, Status: domain.InvoiceStatusUnpaid},
			},
			Expenses: []*domain.Expense{},
		},
		Metrics: &domain.FinancialMetrics{
			ContractValue:        1_000_000_00,
			BaselineBudget:       700_000_00,
			BaselineGPM:          3000,
			WorkingBudget:        700_000_00,
			CurrentGPM:           3000,
			ActualCosts:          300_000_00,
			TotalFutureCosts:     400_000_00,
			ForecastTotalCosts:   700_000_00,
			CurrentGrossProfit:   700_000_00,
			ProjectedGrossProfit: 300_000_00,
			ProjectedGPM:         3000,
			TotalActualHours:     decimal.RequireFromString("125.50"),
			TotalForecastHours:   decimal.RequireFromString("40.00"),
			TotalProjectHours:    decimal.RequireFromString("165.50"),
			AverageHourlyRate:    decimal.RequireFromString("2390.44"),
			TotalInvoiced:        80_000_00,
			TotalPaid:            50_000_00,
			TotalOutstanding:     30_000_00,
			CollectionRate:       6250,
			NetCashPosition:      -250_000_00,
		},
		Currency:    "QAR",
		GeneratedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestRender_AllSectionsProduceDocuments(t *testing.T) {
	in := testInput()

	for _, s := range Sections() {
		doc := Render(s, in)
		if !strings.HasPrefix(doc, "<!DOCTYPE html>") {
			t.Errorf("Section %s: not a standalone document", s.Slug())
		}
		if !strings.Contains(doc, "</html>") {
			t.Errorf("Section %s: unterminated document", s.Slug())
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	in := testInput()
	for _, s := range Sections() {
		if Render(s, in) != Render(s, in) {
			t.Errorf("Section %s: render not deterministic", s.Slug())
		}
	}
}

func TestRenderTitle(t *testing.T) {
	doc := Render(SectionTitle, testInput())

	for _, want := range []string{"Red Line Extension", "Qatar Rail", "PRJ-077", "QAR 100,000,000", "45.00%", "30.00%"} {
		if !strings.Contains(doc, want) {
			t.Errorf("Title section missing %q", want)
		}
	}
}

func TestRenderInvoices_StatusClasses(t *testing.T) {
	doc := Render(SectionInvoices, testInput())

	for _, want := range []string{`class="status-paid"`, `class="status-unpaid"`, "PAID", "UNPAID", "INV-001", "INV-002", "TBC"} {
		if !strings.Contains(doc, want) {
			t.Errorf("Invoices section missing %q", want)
		}
	}
}

func TestRenderCashPosition(t *testing.T) {
	doc := Render(SectionCashPosition, testInput())

	for _, want := range []string{"QAR 8,000,000", "QAR 5,000,000", "QAR 3,000,000", "62.50%", "QAR -25,000,000", `class="negative"`} {
		if !strings.Contains(doc, want) {
			t.Errorf("Cash position section missing %q", want)
		}
	}
}

func TestRenderHours(t *testing.T) {
	doc := Render(SectionHours, testInput())

	for _, want := range []string{"125.50", "40.00", "165.50", "QAR 2390.44/hr"} {
		if !strings.Contains(doc, want) {
			t.Errorf("Hours section missing %q", want)
		}
	}
}

func TestRenderClosing_EmbedsTimestamp(t *testing.T) {
	in := testInput()
	doc := Render(SectionClosing, in)

	if !strings.Contains(doc, "Jun 1, 2025") {
		t.Error("Closing section missing generation date")
	}

	in.GeneratedAt = time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC)
	if Render(SectionClosing, in) == doc {
		t.Error("Closing section must vary with generation time")
	}
}

func TestRender_EscapesUserStrings(t *testing.T) {
	in := testInput()
	in.Snapshot.Project.Name = `<script>alert("x")</script>`

	doc := Render(SectionTitle, in)
	if strings.Contains(doc, "<script>") {
		t.Error("Project name not escaped")
	}
	if !strings.Contains(doc, "&lt;script&gt;") {
		t.Error("Expected escaped project name")
	}
}

func TestSectionFilenames(t *testing.T) {
	sections := Sections()
	if len(sections) != SectionCount {
		t.Fatalf("Expected %d sections, got %d", SectionCount, len(sections))
	}

	want := []string{
		"01-title.html",
		"02-overview.html",
		"03-cash-position.html",
		"04-invoices.html",
		"05-hours.html",
		"06-cashflow.html",
		"07-costs.html",
		"08-structure.html",
		"09-profitability.html",
		"10-budget-evolution.html",
		"11-risks.html",
		"12-closing.html",
	}
	for i, s := range sections {
		if s.Filename() != want[i] {
			t.Errorf("Section %d: expected %s, got %s", i+1, want[i], s.Filename())
		}
	}
}

func TestIndex_LinksAllSectionsInOrder(t *testing.T) {
	doc := Index(testInput())

	last := -1
	for _, s := range Sections() {
		link := fmt.Sprintf(`href="%s"`, s.Filename())
		pos := strings.Index(doc, link)
		if pos < 0 {
			t.Errorf("Index missing link to %s", s.Filename())
			continue
		}
		if pos < last {
			t.Errorf("Index link %s out of order", s.Filename())
		}
		last = pos

		label := fmt.Sprintf("Slide %d: %s", int(s), s.Label())
		if !strings.Contains(doc, label) {
			t.Errorf("Index missing label %q", label)
		}
	}
}
