package service

import (
	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeFinancials derives the full set of financial metrics from a
// snapshot. It is a pure function: no I/O, no mutation of the snapshot,
// and the same snapshot always yields the same metrics.
//
// All currency arithmetic is integer arithmetic on minor units.
// Percentages are computed in basis-points-of-percent with ties rounded
// away from zero. A zero denominator aborts the whole computation with a
// DivisionByZeroError naming the metric, except for averageHourlyRate
// and collectionRate, which legitimately read as zero before any hours
// or invoices exist.
func ComputeFinancials(snap *domain.Snapshot) (*domain.FinancialMetrics, error) {
	p := snap.Project

	var futureExpenses int64
	for _, exp := range snap.Expenses {
		futureExpenses += exp.Amount
	}

	// Remaining budget for uncompleted work. Deliberately not floored at
	// zero: an overrun propagates into the forecast.
	remainingBudget := p.WorkingBudget - p.ActualCosts
	totalFutureCosts := remainingBudget + futureExpenses
	forecastTotalCosts := p.ActualCosts + totalFutureCosts

	currentGrossProfit := p.ContractValue - p.ActualCosts
	projectedGrossProfit := p.ContractValue - forecastTotalCosts

	projectedGPM, err := ratioBps(projectedGrossProfit, p.ContractValue, "projectedGPM")
	if err != nil {
		return nil, err
	}

	baselineToCurrent := p.WorkingBudget - p.BaselineBudget
	baselineToCurrentPct, err := ratioBps(baselineToCurrent, p.BaselineBudget, "baselineToCurrentVariancePercent")
	if err != nil {
		return nil, err
	}

	currentToForecast := forecastTotalCosts - p.WorkingBudget
	currentToForecastPct, err := ratioBps(currentToForecast, p.WorkingBudget, "currentToForecastVariancePercent")
	if err != nil {
		return nil, err
	}

	baselineToForecast := forecastTotalCosts - p.BaselineBudget
	baselineToForecastPct, err := ratioBps(baselineToForecast, p.BaselineBudget, "baselineToForecastVariancePercent")
	if err != nil {
		return nil, err
	}

	var actualHundredths, forecastHundredths int64
	for _, h := range snap.Hours {
		if h.IsForecast {
			forecastHundredths += h.Hours
		} else {
			actualHundredths += h.Hours
		}
	}
	totalActualHours := decimal.New(actualHundredths, -2)
	totalForecastHours := decimal.New(forecastHundredths, -2)
	totalProjectHours := totalActualHours.Add(totalForecastHours)

	// The one metric that degrades instead of failing: a rate with no
	// actual hours logged is "not yet meaningful", not an error.
	averageHourlyRate := decimal.Zero
	if actualHundredths > 0 {
		averageHourlyRate = decimal.NewFromInt(p.ActualCosts).Div(totalActualHours).Round(2)
	}

	var totalInvoiced, totalPaid int64
	for _, inv := range snap.Invoices {
		totalInvoiced += inv.Amount
		if inv.Status == domain.InvoiceStatusPaid {
			totalPaid += inv.Amount
		}
	}
	totalOutstanding := totalInvoiced - totalPaid

	var collectionRate int64
	if totalInvoiced > 0 {
		collectionRate = roundHalfAwayBps(totalPaid, totalInvoiced)
	}

	netCashPosition := totalPaid - p.ActualCosts

	return &domain.FinancialMetrics{
		ContractValue:  p.ContractValue,
		BaselineBudget: p.BaselineBudget,
		BaselineGPM:    p.BaselineGPM,
		WorkingBudget:  p.WorkingBudget,
		CurrentGPM:     p.CurrentGPM,
		ActualCosts:    p.ActualCosts,

		TotalFutureCosts:   totalFutureCosts,
		ForecastTotalCosts: forecastTotalCosts,

		CurrentGrossProfit:   currentGrossProfit,
		ProjectedGrossProfit: projectedGrossProfit,
		ProjectedGPM:         projectedGPM,

		BaselineToCurrentVariance:         baselineToCurrent,
		BaselineToCurrentVariancePercent:  baselineToCurrentPct,
		CurrentToForecastVariance:         currentToForecast,
		CurrentToForecastVariancePercent:  currentToForecastPct,
		BaselineToForecastVariance:        baselineToForecast,
		BaselineToForecastVariancePercent: baselineToForecastPct,

		TotalActualHours:   totalActualHours,
		TotalForecastHours: totalForecastHours,
		TotalProjectHours:  totalProjectHours,
		AverageHourlyRate:  averageHourlyRate,

		TotalInvoiced:    totalInvoiced,
		TotalPaid:        totalPaid,
		TotalOutstanding: totalOutstanding,
		CollectionRate:   collectionRate,

		NetCashPosition: netCashPosition,
	}, nil
}

// ratioBps computes num/den in basis-points-of-percent, failing with a
// DivisionByZeroError naming field when den is zero.
func ratioBps(num, den int64, field string) (int64, error) {
	if den == 0 {
		return 0, &domain.DivisionByZeroError{Field: field}
	}
	return roundHalfAwayBps(num, den), nil
}

// roundHalfAwayBps returns round(num/den × 10000) with ties rounded away
// from zero, using only integer arithmetic. den must be non-zero.
func roundHalfAwayBps(num, den int64) int64 {
	n := num * 10000
	if den < 0 {
		n, den = -n, -den
	}
	if n >= 0 {
		return (n + den/2) / den
	}
	return -((-n + den/2) / den)
}
