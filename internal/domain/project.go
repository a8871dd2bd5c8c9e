package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project holds the dashboard figures extracted for one engagement.
//
// All monetary fields are integers in minor currency units. Percentage
// fields are integers in basis-points-of-percent: a stored value v means
// v/100 percent, so 31.00% is stored as 3100. Projects are immutable once
// created; forecast data is appended through the child tables.
type Project struct {
	ID             int32     `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	Name           string    `json:"name"`
	Code           *string   `json:"code,omitempty"`
	ClientName     *string   `json:"clientName,omitempty"`
	ProjectManager *string   `json:"projectManager,omitempty"`

	ContractValue   int64 `json:"contractValue"`
	BaselineBudget  int64 `json:"baselineBudget"`
	BaselineGPM     int64 `json:"baselineGpm"`
	WorkingBudget   int64 `json:"workingBudget"`
	CurrentGPM      int64 `json:"currentGpm"`
	ActualCosts     int64 `json:"actualCosts"`
	ProjectProgress int64 `json:"projectProgress"`

	DashboardFileKey *string `json:"dashboardFileKey,omitempty"`
	DashboardFileURL *string `json:"dashboardFileUrl,omitempty"`
	WorkbookFileKey  *string `json:"workbookFileKey,omitempty"`
	WorkbookFileURL  *string `json:"workbookFileUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProjectRepository interface {
	Create(project *Project) (*Project, error)
	GetByID(id int32) (*Project, error)
	GetByUser(userID uuid.UUID) ([]*Project, error)
}
