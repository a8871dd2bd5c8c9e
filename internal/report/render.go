package report

import (
	"fmt"
	"html"
	"time"

	"github.com/folioworks/folio-backend/internal/domain"
)

// Input carries everything a section render needs. Rendering is a pure
// function of this value: the same Input always produces the same bytes,
// with the closing section's generation timestamp the only field that
// varies between otherwise identical runs.
type Input struct {
	Snapshot    *domain.Snapshot
	Metrics     *domain.FinancialMetrics
	Currency    string
	GeneratedAt time.Time
}

// Render produces the self-contained HTML document for one section.
func Render(s Section, in Input) string {
	f := Formatter{Currency: in.Currency}
	switch s {
	case SectionTitle:
		return renderTitle(in, f)
	case SectionOverview:
		return renderOverview(in, f)
	case SectionCashPosition:
		return renderCashPosition(in, f)
	case SectionInvoices:
		return renderInvoices(in, f)
	case SectionHours:
		return renderHours(in, f)
	case SectionCashFlow:
		return renderPlaceholder("Cash Flow Visualization", "Cash flow chart will appear here once monthly cash movements are tracked.")
	case SectionCosts:
		return renderPlaceholder("Cost Breakdown", "Detailed cost category table will appear here once cost rows are classified.")
	case SectionStructure:
		return renderPlaceholder("Cost Structure Analysis", "Cost structure chart will appear here once cost rows are classified.")
	case SectionProfitability:
		return renderProfitability(in, f)
	case SectionBudgetEvolution:
		return renderBudgetEvolution(in, f)
	case SectionRisks:
		return renderPlaceholder("Risk Assessment", "Risk register will appear here once risks are recorded against the project.")
	case SectionClosing:
		return renderClosing(in)
	}
	return ""
}

// Shared style blocks. Sections share one visual language; the cover
// pages (title, closing) use the gradient treatment, everything else the
// white content card.
const (
	cssCover = `body{margin:0;font-family:Arial,sans-serif;background:linear-gradient(135deg,#667eea 0%,#764ba2 100%);display:flex;align-items:center;justify-content:center;min-height:100vh}` +
		`.container{width:1280px;height:720px;background:#fff;display:flex;flex-direction:column;align-items:center;justify-content:center;padding:60px;text-align:center}` +
		`.title{font-size:48px;font-weight:700;color:#1a202c;margin-bottom:20px}` +
		`.subtitle{font-size:32px;color:#4a5568;margin-bottom:40px}`

	cssContent = `body{margin:0;font-family:Arial,sans-serif;background:#f5f5f5;padding:40px}` +
		`.container{max-width:1200px;margin:0 auto;background:#fff;padding:40px;border-radius:8px}` +
		`h1{color:#1a202c;margin-bottom:30px}`

	cssCards = `.grid{display:grid;grid-template-columns:repeat(var(--cols,3),1fr);gap:20px;margin-bottom:30px}` +
		`.card{background:#f7fafc;padding:20px;border-radius:8px;border-left:4px solid #667eea}` +
		`.card-label{font-size:12px;color:#718096;text-transform:uppercase;margin-bottom:8px}` +
		`.card-value{font-size:26px;font-weight:700;color:#1a202c}` +
		`.card-sub{font-size:14px;color:#4a5568;margin-top:5px}` +
		`.positive{color:#10b981}.negative{color:#ef4444}`

	cssTable = `table{width:100%;border-collapse:collapse;margin-top:20px}` +
		`th{background:#1a202c;color:#fff;padding:12px;text-align:left;font-size:14px}` +
		`td{padding:12px;border-bottom:1px solid #e2e8f0;font-size:14px}` +
		`tr:nth-child(even){background:#f7fafc}`

	cssStatus = `.status-paid{color:#10b981;font-weight:700}` +
		`.status-unpaid{color:#ef4444;font-weight:700}` +
		`.status-submitted{color:#f59e0b;font-weight:700}` +
		`.status-to_submit{color:#6b7280;font-weight:700}`
)

// page assembles a standalone HTML document. Sections never reference
// each other or any external asset.
func page(title, css, body string) string {
	return `<!DOCTYPE html>
<html><head><meta charset="UTF-8"><title>` + html.EscapeString(title) + `</title>
<style>` + css + `</style></head><body>` + body + `</body></html>`
}

func card(label, value string) string {
	return `<div class="card"><div class="card-label">` + html.EscapeString(label) + `</div><div class="card-value">` + value + `</div></div>`
}

func cardWithSub(label, value, sub string) string {
	return `<div class="card"><div class="card-label">` + html.EscapeString(label) + `</div><div class="card-value">` + value + `</div><div class="card-sub">` + sub + `</div></div>`
}

func signClass(v int64) string {
	if v < 0 {
		return "negative"
	}
	return "positive"
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return html.EscapeString(*s)
}

func renderTitle(in Input, f Formatter) string {
	p := in.Snapshot.Project
	m := in.Metrics
	body := `<div class="container">
<div class="title">` + html.EscapeString(p.Name) + `</div>
<div class="subtitle">` + orDefault(p.ClientName, "Financial Portfolio") + `</div>
<div class="grid" style="width:100%;max-width:900px">` +
		card("Contract Value", f.Money(m.ContractValue)) +
		card("Project Code", orDefault(p.Code, "N/A")) +
		card("Progress", f.Percent(p.ProjectProgress)) + `
</div>
<div class="highlight"><strong>Current GPM: ` + f.Percent(m.CurrentGPM) + `</strong><br>
<span style="font-size:14px">vs Baseline: ` + f.Percent(m.BaselineGPM) + `</span></div>
</div>`
	css := cssCover + cssCards +
		`.highlight{background:linear-gradient(135deg,#667eea 0%,#764ba2 100%);color:#fff;padding:20px 40px;border-radius:50px;font-size:18px;margin-top:30px}`
	return page("Title", css, body)
}

func renderOverview(in Input, f Formatter) string {
	m := in.Metrics
	baselineProfit := m.ContractValue - m.BaselineBudget
	body := `<div class="container">
<h1>Project Overview &amp; Financial Analysis</h1>
<div class="grid">` +
		card("Contract Fee", f.Money(m.ContractValue)) +
		cardWithSub("Current GPM", f.Percent(m.CurrentGPM), "Baseline: "+f.Percent(m.BaselineGPM)) +
		cardWithSub("Projected GPM", f.Percent(m.ProjectedGPM), "At completion") + `
</div>
<table>
<tr><th>Metric</th><th>Baseline</th><th>Current</th><th>Projected</th></tr>
<tr><td>Budget</td><td>` + f.Money(m.BaselineBudget) + `</td><td>` + f.Money(m.WorkingBudget) + `</td><td>` + f.Money(m.ForecastTotalCosts) + `</td></tr>
<tr><td>GPM</td><td>` + f.Percent(m.BaselineGPM) + `</td><td>` + f.Percent(m.CurrentGPM) + `</td><td>` + f.Percent(m.ProjectedGPM) + `</td></tr>
<tr><td>Gross Profit</td><td>` + f.Money(baselineProfit) + `</td><td>` + f.Money(m.CurrentGrossProfit) + `</td><td>` + f.Money(m.ProjectedGrossProfit) + `</td></tr>
</table>
</div>`
	return page("Overview", cssContent+cssCards+cssTable, body)
}

func renderCashPosition(in Input, f Formatter) string {
	m := in.Metrics
	body := `<div class="container">
<h1>Cash Position &amp; Collection Status</h1>
<div class="grid" style="--cols:4">` +
		card("Total Invoiced", f.Money(m.TotalInvoiced)) +
		card("Total Paid", `<span class="positive">`+f.Money(m.TotalPaid)+`</span>`) +
		card("Outstanding", `<span class="negative">`+f.Money(m.TotalOutstanding)+`</span>`) +
		card("Collection Rate", f.Percent(m.CollectionRate)) + `
</div>
<div style="margin-top:40px;padding:30px;background:#f7fafc;border-radius:8px;text-align:center">
<div style="font-size:14px;color:#718096;margin-bottom:10px">NET CASH POSITION</div>
<div class="` + signClass(m.NetCashPosition) + `" style="font-size:36px;font-weight:700">` + f.Money(m.NetCashPosition) + `</div>
<div style="font-size:14px;color:#4a5568;margin-top:10px">Paid (` + f.Money(m.TotalPaid) + `) - Costs (` + f.Money(m.ActualCosts) + `)</div>
</div>
</div>`
	return page("Cash Position", cssContent+cssCards, body)
}

func renderInvoices(in Input, f Formatter) string {
	rows := ""
	for _, inv := range in.Snapshot.Invoices {
		rows += fmt.Sprintf(
			`<tr><td>%s</td><td>%s</td><td>%s</td><td class="status-%s">%s</td><td>%s</td></tr>`,
			html.EscapeString(inv.InvoiceNumber),
			f.Money(inv.Amount),
			f.Date(inv.SubmissionDate),
			inv.Status,
			StatusTag(inv.Status),
			orDefault(inv.Notes, "-"),
		)
	}
	body := `<div class="container">
<h1>Invoice Tracking &amp; Status</h1>
<table><tr><th>Invoice #</th><th>Amount</th><th>Date</th><th>Status</th><th>Notes</th></tr>
` + rows + `
</table></div>`
	return page("Invoices", cssContent+cssTable+cssStatus, body)
}

func renderHours(in Input, f Formatter) string {
	m := in.Metrics
	body := `<div class="container">
<h1>Hours Consumption Analysis</h1>
<div class="grid" style="--cols:4">` +
		card("Actual Hours", f.Hours(m.TotalActualHours)) +
		card("Forecast Hours", f.Hours(m.TotalForecastHours)) +
		card("Total Hours", f.Hours(m.TotalProjectHours)) +
		card("Avg Rate", f.Rate(m.AverageHourlyRate)) + `
</div></div>`
	return page("Hours", cssContent+cssCards, body)
}

func renderProfitability(in Input, f Formatter) string {
	m := in.Metrics
	body := `<div class="container">
<h1>Profitability Analysis</h1>
<table><tr><th>Metric</th><th>Current</th><th>Projected</th><th>Variance</th></tr>
<tr><td>Gross Profit</td><td>` + f.Money(m.CurrentGrossProfit) + `</td><td>` + f.Money(m.ProjectedGrossProfit) + `</td><td>` + f.Money(m.ProjectedGrossProfit-m.CurrentGrossProfit) + `</td></tr>
<tr><td>GPM</td><td>` + f.Percent(m.CurrentGPM) + `</td><td>` + f.Percent(m.ProjectedGPM) + `</td><td>` + f.Percent(m.ProjectedGPM-m.CurrentGPM) + `</td></tr>
</table></div>`
	return page("Profitability", cssContent+cssTable, body)
}

func renderBudgetEvolution(in Input, f Formatter) string {
	m := in.Metrics
	body := `<div class="container">
<h1>Budget Evolution &amp; Variance Analysis</h1>
<table><tr><th>Budget Type</th><th>Amount</th><th>GPM</th><th>Variance from Baseline</th></tr>
<tr><td>Baseline</td><td>` + f.Money(m.BaselineBudget) + `</td><td>` + f.Percent(m.BaselineGPM) + `</td><td>-</td></tr>
<tr><td>Current/Working</td><td>` + f.Money(m.WorkingBudget) + `</td><td>` + f.Percent(m.CurrentGPM) + `</td><td>` + f.Money(m.BaselineToCurrentVariance) + ` (` + f.Percent(m.BaselineToCurrentVariancePercent) + `)</td></tr>
<tr><td>Forecast</td><td>` + f.Money(m.ForecastTotalCosts) + `</td><td>` + f.Percent(m.ProjectedGPM) + `</td><td>` + f.Money(m.BaselineToForecastVariance) + ` (` + f.Percent(m.BaselineToForecastVariancePercent) + `)</td></tr>
</table></div>`
	return page("Budget Evolution", cssContent+cssTable, body)
}

func renderClosing(in Input) string {
	p := in.Snapshot.Project
	body := `<div class="container">
<div class="title">Thank You</div>
<div class="subtitle">` + html.EscapeString(p.Name) + `</div>
<div style="margin-top:40px;color:#718096">Portfolio Generated: ` + in.GeneratedAt.Format("Jan 2, 2006") + `</div>
</div>`
	return page("Closing", cssCover, body)
}

// renderPlaceholder emits a titled document for sections whose richer
// source data is not captured yet. The section still occupies its
// position and appears on the index.
func renderPlaceholder(title, content string) string {
	body := `<div class="container">
<h1>` + html.EscapeString(title) + `</h1>
<div class="content">` + html.EscapeString(content) + `</div>
</div>`
	css := cssContent + `.content{font-size:18px;color:#4a5568}`
	return page(title, css, body)
}

// StatusTag returns the uppercased display label for an invoice status.
func StatusTag(s domain.InvoiceStatus) string {
	switch s {
	case domain.InvoiceStatusPaid:
		return "PAID"
	case domain.InvoiceStatusUnpaid:
		return "UNPAID"
	case domain.InvoiceStatusSubmitted:
		return "SUBMITTED"
	case domain.InvoiceStatusToSubmit:
		return "TO_SUBMIT"
	}
	return "UNKNOWN"
}
