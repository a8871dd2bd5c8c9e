package report

import "fmt"

// Section identifies one of the twelve portfolio documents. The numeric
// value is the section's ordinal position, starting at 1, and fixes both
// the render order and the object key prefix. Adding, removing or
// reordering sections changes the published document set, so the list is
// closed by construction.
type Section int

const (
	SectionTitle Section = iota + 1
	SectionOverview
	SectionCashPosition
	SectionInvoices
	SectionHours
	SectionCashFlow
	SectionCosts
	SectionStructure
	SectionProfitability
	SectionBudgetEvolution
	SectionRisks
	SectionClosing
)

// SectionCount is the number of sections in every generated portfolio.
const SectionCount = 12

// Sections returns all sections in render order.
func Sections() []Section {
	sections := make([]Section, 0, SectionCount)
	for s := SectionTitle; s <= SectionClosing; s++ {
		sections = append(sections, s)
	}
	return sections
}

// Slug returns the stable identifier used in document filenames.
func (s Section) Slug() string {
	switch s {
	case SectionTitle:
		return "title"
	case SectionOverview:
		return "overview"
	case SectionCashPosition:
		return "cash-position"
	case SectionInvoices:
		return "invoices"
	case SectionHours:
		return "hours"
	case SectionCashFlow:
		return "cashflow"
	case SectionCosts:
		return "costs"
	case SectionStructure:
		return "structure"
	case SectionProfitability:
		return "profitability"
	case SectionBudgetEvolution:
		return "budget-evolution"
	case SectionRisks:
		return "risks"
	case SectionClosing:
		return "closing"
	}
	return "unknown"
}

// Label returns the human-readable name used on the index document.
func (s Section) Label() string {
	switch s {
	case SectionTitle:
		return "Title"
	case SectionOverview:
		return "Project Overview"
	case SectionCashPosition:
		return "Cash Position"
	case SectionInvoices:
		return "Invoice Tracking"
	case SectionHours:
		return "Hours Consumption"
	case SectionCashFlow:
		return "Cash Flow Visualization"
	case SectionCosts:
		return "Cost Breakdown"
	case SectionStructure:
		return "Cost Structure"
	case SectionProfitability:
		return "Profitability Analysis"
	case SectionBudgetEvolution:
		return "Budget Evolution"
	case SectionRisks:
		return "Risk Assessment"
	case SectionClosing:
		return "Closing"
	}
	return "Unknown"
}

// Filename returns the deterministic document name, zero-padded ordinal
// plus slug, e.g. "01-title.html".
func (s Section) Filename() string {
	return fmt.Sprintf("%02d-%s.html", int(s), s.Slug())
}

// IndexFilename is the name of the index document linking all sections.
const IndexFilename = "index.html"
