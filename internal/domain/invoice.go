package domain

import "time"

type InvoiceStatus string

const (
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusUnpaid    InvoiceStatus = "unpaid"
	InvoiceStatusSubmitted InvoiceStatus = "submitted"
	InvoiceStatusToSubmit  InvoiceStatus = "to_submit"
)

// ValidInvoiceStatus reports whether s is one of the known statuses.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusPaid, InvoiceStatusUnpaid, InvoiceStatusSubmitted, InvoiceStatusToSubmit:
		return true
	}
	return false
}

// Invoice is one client invoice for a project, past or planned.
// Amount is in minor currency units. Rows are append-only.
type Invoice struct {
	ID             int32         `json:"id"`
	ProjectID      int32         `json:"projectId"`
	InvoiceNumber  string        `json:"invoiceNumber"`
	Amount         int64         `json:"amount"`
	SubmissionDate *time.Time    `json:"submissionDate,omitempty"`
	Status         InvoiceStatus `json:"status"`
	Notes          *string       `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
}

type InvoiceRepository interface {
	CreateBatch(invoices []*Invoice) error
	GetByProject(projectID int32) ([]*Invoice, error)
}
