package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReportFormat string

const (
	ReportFormatHTML ReportFormat = "html"
)

// Report is the persisted record of one generated portfolio: where the
// index document lives and who generated it. The section documents
// themselves live in the object store under the same namespace as the
// index key.
type Report struct {
	ID        int32        `json:"id"`
	ProjectID int32        `json:"projectId"`
	UserID    uuid.UUID    `json:"userId"`
	IndexKey  string       `json:"indexKey"`
	IndexURL  string       `json:"indexUrl"`
	Format    ReportFormat `json:"format"`
	CreatedAt time.Time    `json:"createdAt"`
}

type ReportRepository interface {
	Create(report *Report) (*Report, error)
	GetByProject(projectID int32) ([]*Report, error)
}
