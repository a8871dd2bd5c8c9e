package domain

import "time"

// CostItem is one recorded cost line for a project. Amount is in minor
// currency units. Rows are append-only.
type CostItem struct {
	ID          int32      `json:"id"`
	ProjectID   int32      `json:"projectId"`
	Category    string     `json:"category"`
	Amount      int64      `json:"amount"`
	IsPaid      bool       `json:"isPaid"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type CostRepository interface {
	CreateBatch(items []*CostItem) error
	GetByProject(projectID int32) ([]*CostItem, error)
}
