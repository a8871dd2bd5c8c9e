package service

import (
	"errors"
	"testing"

	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func snapshotWithProject(p *domain.Project) *domain.Snapshot {
	return &domain.Snapshot{
		Project:  p,
		Costs:    []*domain.CostItem{},
		Hours:    []*domain.HoursRecord{},
		Invoices: []*domain.Invoice{},
		Expenses: []*domain.Expense{},
	}
}

func TestComputeFinancials_EndToEnd(t *testing.T) {
	// contractValue 1,000,000, actualCosts 300,000, workingBudget 700,000,
	// no expenses:
	//   totalFutureCosts     = 700,000 - 300,000 = 400,000
	//   forecastTotalCosts   = 300,000 + 400,000 = 700,000
	//   projectedGrossProfit = 1,000,000 - 700,000 = 300,000
	//   projectedGPM         = 3000 (30.00%)
	snap := snapshotWithProject(&domain.Project{
		ContractValue:  1_000_000,
		BaselineBudget: 700_000,
		WorkingBudget:  700_000,
		ActualCosts:    300_000,
	})

	m, err := ComputeFinancials(snap)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if m.TotalFutureCosts != 400_000 {
		t.Errorf("Expected totalFutureCosts 400000, got %d", m.TotalFutureCosts)
	}
	if m.ForecastTotalCosts != 700_000 {
		t.Errorf("Expected forecastTotalCosts 700000, got %d", m.ForecastTotalCosts)
	}
	if m.CurrentGrossProfit != 700_000 {
		t.Errorf("Expected currentGrossProfit 700000, got %d", m.CurrentGrossProfit)
	}
	if m.ProjectedGrossProfit != 300_000 {
		t.Errorf("Expected projectedGrossProfit 300000, got %d", m.ProjectedGrossProfit)
	}
	if m.ProjectedGPM != 3000 {
		t.Errorf("Expected projectedGPM 3000, got %d", m.ProjectedGPM)
	}
}

func TestComputeFinancials_Invoices(t *testing.T) {
	// 50,000 paid + 30,000 unpaid:
	//   totalInvoiced 80,000, totalPaid 50,000, outstanding 30,000
	//   collectionRate 6250 (62.50%)
	snap := snapshotWithProject(&domain.Project{
		ContractValue:  1_000_000,
		BaselineBudget: 700_000,
		WorkingBudget:  700_000,
		ActualCosts:    300_000,
	})
	snap.Invoices = []*domain.Invoice{
		{Amount: 50_000, Status: domain.InvoiceStatusPaid},
		{Amount: 30_000, Status: domain.InvoiceStatusUnpaid},
	}

	m, err := ComputeFinancials(snap)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if m.TotalInvoiced != 80_000 {
		t.Errorf("Expected totalInvoiced 80000, got %d", m.TotalInvoiced)
	}
	if m.TotalPaid != 50_000 {
		t.Errorf("Expected totalPaid 50000, got %d", m.TotalPaid)
	}
	if m.TotalOutstanding != 30_000 {
		t.Errorf("Expected totalOutstanding 30000, got %d", m.TotalOutstanding)
	}
	if m.CollectionRate != 6250 {
		t.Errorf("Expected collectionRate 6250, got %d", m.CollectionRate)
	}
	if m.NetCashPosition != 50_000-300_000 {
		t.Errorf("Expected netCashPosition -250000, got %d", m.NetCashPosition)
	}
}

func TestComputeFinancials_ZeroContractValue(t *testing.T) {
	snap := snapshotWithProject(&domain.Project{
		ContractValue:  0,
		BaselineBudget: 700_000,
		WorkingBudget:  700_000,
		ActualCosts:    300_000,
	})

	m, err := ComputeFinancials(snap)
	if m != nil {
		t.Fatal("Expected no metrics on failure")
	}
	field, ok := domain.IsDivisionByZero(err)
	if !ok {
		t.Fatalf("Expected DivisionByZeroError, got %v", err)
	}
	if field != "projectedGPM" {
		t.Errorf("Expected field projectedGPM, got %q", field)
	}
}

func TestComputeFinancials_ZeroBaselineBudget(t *testing.T) {
	snap := snapshotWithProject(&domain.Project{
		ContractValue:  1_000_000,
		BaselineBudget: 0,
		WorkingBudget:  700_000,
		ActualCosts:    300_000,
	})

	_, err := ComputeFinancials(snap)
	field, ok := domain.IsDivisionByZero(err)
	if !ok {
		t.Fatalf("Expected DivisionByZeroError, got %v", err)
	}
	if field != "baselineToCurrentVariancePercent" {
		t.Errorf("Expected field baselineToCurrentVariancePercent, got %q", field)
	}
}

func TestComputeFinancials_ZeroWorkingBudget(t *testing.T) {
	snap := snapshotWithProject(&domain.Project{
		ContractValue:  1_000_000,
		BaselineBudget: 700_000,
		WorkingBudget:  0,
		ActualCosts:    300_000,
	})

	_, err := ComputeFinancials(snap)
	field, ok := domain.IsDivisionByZero(err)
	if !ok {
		t.Fatalf("Expected DivisionByZeroError, got %v", err)
	}
	if field != "currentToForecastVariancePercent" {
		t.Errorf("Expected field currentToForecastVariancePercent, got %q", field)
	}
}

func TestComputeFinancials_NoInvoicesNoFailure(t *testing.T) {
	snap := snapshotWithProject(&domain.Project{
		ContractValue:  1_000_000,
		BaselineBudget: 700_000,
		WorkingBudget:  700_000,
		ActualCosts:    300_000,
	})

	m, err := ComputeFinancials(snap)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m.CollectionRate != 0 {
		t.Errorf("Expected collectionRate 0, got %d", m.CollectionRate)
	}
	if m.TotalOutstanding != 0 {
		t.Errorf("Expected totalOutstanding 0, got %d", m.TotalOutstanding)
	}
}

func TestComputeFinancials_NoActualHoursNoFailure(t *testing.T) {
	// actualCosts > 0 but no actual hours logged: the rate reads zero
	// instead of failing.
	snap := snapshotWithProject(&domain.Project{
		ContractValue:  1_000_000,
		BaselineBudget: 700_000,
		WorkingBudget:  700_000,
		ActualCosts:    300_000,
	})
	snap.Hours = []*domain.HoursRecord{
		{Month: "2025-06", Hours: 4000, IsForecast: true},
	}

	m, err := ComputeFinancials(snap)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !m.AverageHourlyRate.IsZero() {
		t.Errorf("Expected averageHourlyRate 0, got %s", m.AverageHourlyRate)
	}
	if !m.TotalForecastHours.Equal(decimal.NewFromInt(40)) {
		t.Errorf("Expected totalForecastHours 40, got %s", m.TotalForecastHours)
	}
}

func TestComputeFinancials_Hours(t *testing.T) {
	// 125.50 actual + 40.00 forecast hours, actualCosts 300,000:
	//   rate = 300000 / 125.5 = 2390.438... → 2390.44
	snap := snapshotWithProject(&domain.Project{
		ContractValue:  1_000_000,
		BaselineBudget: 700_000,
		WorkingBudget:  700_000,
		ActualCosts:    300_000,
	})
	snap.Hours = []*domain.HoursRecord{
		{Month: "2025-04", Hours: 10000, IsForecast: false},
		{Month: "2025-05", Hours: 2550, IsForecast: false},
		{Month: "2025-06", Hours: 4000, IsForecast: true},
	}

	m, err := ComputeFinancials(snap)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !m.TotalActualHours.Equal(decimal.RequireFromString("125.5")) {
		t.Errorf("Expected totalActualHours 125.5, got %s", m.TotalActualHours)
	}
	if !m.TotalProjectHours.Equal(decimal.RequireFromString("165.5")) {
		t.Errorf("Expected totalProjectHours 165.5, got %s", m.TotalProjectHours)
	}
	if !m.AverageHourlyRate.Equal(decimal.RequireFromString("2390.44")) {
		t.Errorf("Expected averageHourlyRate 2390.44, got %s", m.AverageHourlyRate)
	}
}

func TestComputeFinancials_FutureExpensesPropagate(t *testing.T) {
	// Working budget already overrun; the negative remainder propagates
	// into the forecast rather than being floored at zero.
	snap := snapshotWithProject(&domain.Project{
		ContractValue:  1_000_000,
		BaselineBudget: 700_000,
		WorkingBudget:  700_000,
		ActualCosts:    750_000,
	})
	snap.Expenses = []*domain.Expense{
		{Amount: 20_000},
		{Amount: 5_000},
	}

	m, err := ComputeFinancials(snap)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// remaining = 700000 - 750000 = -50000; future = -50000 + 25000
	if m.TotalFutureCosts != -25_000 {
		t.Errorf("Expected totalFutureCosts -25000, got %d", m.TotalFutureCosts)
	}
	if m.ForecastTotalCosts != 725_000 {
		t.Errorf("Expected forecastTotalCosts 725000, got %d", m.ForecastTotalCosts)
	}
}

func TestComputeFinancials_TieRoundsAwayFromZero(t *testing.T) {
	// projectedGrossProfit 6,201 over contractValue 20,000 is exactly
	// 31.005%, which must round to 3101, not 3100.
	snap := snapshotWithProject(&domain.Project{
		ContractValue:  20_000,
		BaselineBudget: 13_799,
		WorkingBudget:  13_799,
		ActualCosts:    5_000,
	})

	m, err := ComputeFinancials(snap)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m.ProjectedGPM != 3101 {
		t.Errorf("Expected projectedGPM 3101, got %d", m.ProjectedGPM)
	}
}

func TestRoundHalfAwayBps(t *testing.T) {
	cases := []struct {
		num, den, want int64
	}{
		{1, 2, 5000},        // 50.00%
		{1, 3, 3333},        // 33.33%
		{2, 3, 6667},        // 66.67%
		{6201, 20000, 3101}, // 31.005% tie, away from zero
		{-6201, 20000, -3101},
		{6201, -20000, -3101},
		{-1, 2, -5000},
		{0, 7, 0},
	}
	for _, c := range cases {
		got := roundHalfAwayBps(c.num, c.den)
		if got != c.want {
			t.Errorf("roundHalfAwayBps(%d, %d) = %d, expected %d", c.num, c.den, got, c.want)
		}
	}
}

func TestRatioBps_ZeroDenominator(t *testing.T) {
	_, err := ratioBps(100, 0, "projectedGPM")
	var dz *domain.DivisionByZeroError
	if !errors.As(err, &dz) {
		t.Fatalf("Expected DivisionByZeroError, got %v", err)
	}
	if dz.Field != "projectedGPM" {
		t.Errorf("Expected field projectedGPM, got %q", dz.Field)
	}
}
