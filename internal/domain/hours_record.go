package domain

import "time"

// HoursRecord is one month of logged or forecast hours for a project.
// Hours are stored as hundredths of an hour, so 12.5 hours is 1250.
// Month uses the YYYY-MM format.
type HoursRecord struct {
	ID         int32     `json:"id"`
	ProjectID  int32     `json:"projectId"`
	Month      string    `json:"month"`
	Hours      int64     `json:"hours"`
	IsForecast bool      `json:"isForecast"`
	CreatedAt  time.Time `json:"createdAt"`
}

type HoursRepository interface {
	CreateBatch(records []*HoursRecord) error
	GetByProject(projectID int32) ([]*HoursRecord, error)
}
