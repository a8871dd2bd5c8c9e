package domain

import "github.com/shopspring/decimal"

// FinancialMetrics is the full derived view of a Snapshot. It is
// recomputed on every request and never persisted.
//
// Monetary fields are minor currency units, percentage fields are
// basis-points-of-percent. The hours totals and the average hourly rate
// are display values carried as decimals: hours with two fractional
// digits, the rate rounded to two decimal places.
type FinancialMetrics struct {
	// Pass-through from the project
	ContractValue  int64 `json:"contractValue"`
	BaselineBudget int64 `json:"baselineBudget"`
	BaselineGPM    int64 `json:"baselineGpm"`
	WorkingBudget  int64 `json:"workingBudget"`
	CurrentGPM     int64 `json:"currentGpm"`
	ActualCosts    int64 `json:"actualCosts"`

	// Costs
	TotalFutureCosts   int64 `json:"totalFutureCosts"`
	ForecastTotalCosts int64 `json:"forecastTotalCosts"`

	// Profit
	CurrentGrossProfit   int64 `json:"currentGrossProfit"`
	ProjectedGrossProfit int64 `json:"projectedGrossProfit"`
	ProjectedGPM         int64 `json:"projectedGpm"`

	// Budget variances
	BaselineToCurrentVariance         int64 `json:"baselineToCurrentVariance"`
	BaselineToCurrentVariancePercent  int64 `json:"baselineToCurrentVariancePercent"`
	CurrentToForecastVariance         int64 `json:"currentToForecastVariance"`
	CurrentToForecastVariancePercent  int64 `json:"currentToForecastVariancePercent"`
	BaselineToForecastVariance        int64 `json:"baselineToForecastVariance"`
	BaselineToForecastVariancePercent int64 `json:"baselineToForecastVariancePercent"`

	// Hours
	TotalActualHours   decimal.Decimal `json:"totalActualHours"`
	TotalForecastHours decimal.Decimal `json:"totalForecastHours"`
	TotalProjectHours  decimal.Decimal `json:"totalProjectHours"`
	AverageHourlyRate  decimal.Decimal `json:"averageHourlyRate"`

	// Invoices
	TotalInvoiced    int64 `json:"totalInvoiced"`
	TotalPaid        int64 `json:"totalPaid"`
	TotalOutstanding int64 `json:"totalOutstanding"`
	CollectionRate   int64 `json:"collectionRate"`

	// Cash flow
	NetCashPosition int64 `json:"netCashPosition"`
}
