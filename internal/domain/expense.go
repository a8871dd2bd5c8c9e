package domain

import "time"

// Expense is one forecast future expense for a project, such as a
// subconsultant fee or a mission. Amount is in minor currency units.
// Rows are append-only.
type Expense struct {
	ID          int32      `json:"id"`
	ProjectID   int32      `json:"projectId"`
	ExpenseType string     `json:"expenseType"`
	Amount      int64      `json:"amount"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type ExpenseRepository interface {
	CreateBatch(expenses []*Expense) error
	GetByProject(projectID int32) ([]*Expense, error)
}
