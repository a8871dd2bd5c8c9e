package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/folioworks/folio-backend/internal/domain"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users map[string]*domain.User
	ByID  map[uuid.UUID]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(auth0ID, email string, name, pictureURL *string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:         uuid.New(),
		Auth0ID:    auth0ID,
		Email:      email,
		Name:       name,
		PictureURL: pictureURL,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	m.Users[auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockProjectRepository is a mock implementation of domain.ProjectRepository
type MockProjectRepository struct {
	Projects map[int32]*domain.Project
	NextID   int32
	GetFn    func(id int32) (*domain.Project, error)
}

// NewMockProjectRepository creates a new MockProjectRepository
func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{
		Projects: make(map[int32]*domain.Project),
		NextID:   1,
	}
}

// Create stores a new project
func (m *MockProjectRepository) Create(project *domain.Project) (*domain.Project, error) {
	p := *project
	p.ID = m.NextID
	m.NextID++
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.Projects[p.ID] = &p
	return &p, nil
}

// GetByID retrieves a project by ID
func (m *MockProjectRepository) GetByID(id int32) (*domain.Project, error) {
	if m.GetFn != nil {
		return m.GetFn(id)
	}
	if p, ok := m.Projects[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProjectNotFound
}

// GetByUser retrieves all projects owned by a user
func (m *MockProjectRepository) GetByUser(userID uuid.UUID) ([]*domain.Project, error) {
	out := []*domain.Project{}
	for _, p := range m.Projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// AddProject adds a project to the mock repository (helper for tests)
func (m *MockProjectRepository) AddProject(project *domain.Project) {
	m.Projects[project.ID] = project
	if project.ID >= m.NextID {
		m.NextID = project.ID + 1
	}
}

// MockCostRepository is a mock implementation of domain.CostRepository
type MockCostRepository struct {
	Items map[int32][]*domain.CostItem
	Err   error
}

// NewMockCostRepository creates a new MockCostRepository
func NewMockCostRepository() *MockCostRepository {
	return &MockCostRepository{Items: make(map[int32][]*domain.CostItem)}
}

// CreateBatch appends cost items
func (m *MockCostRepository) CreateBatch(items []*domain.CostItem) error {
	if m.Err != nil {
		return m.Err
	}
	for _, item := range items {
		m.Items[item.ProjectID] = append(m.Items[item.ProjectID], item)
	}
	return nil
}

// GetByProject retrieves cost items for a project
func (m *MockCostRepository) GetByProject(projectID int32) ([]*domain.CostItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	items := m.Items[projectID]
	if items == nil {
		return []*domain.CostItem{}, nil
	}
	return items, nil
}

// MockHoursRepository is a mock implementation of domain.HoursRepository
type MockHoursRepository struct {
	Records map[int32][]*domain.HoursRecord
	Err     error
}

// NewMockHoursRepository creates a new MockHoursRepository
func NewMockHoursRepository() *MockHoursRepository {
	return &MockHoursRepository{Records: make(map[int32][]*domain.HoursRecord)}
}

// CreateBatch appends hours records
func (m *MockHoursRepository) CreateBatch(records []*domain.HoursRecord) error {
	if m.Err != nil {
		return m.Err
	}
	for _, rec := range records {
		m.Records[rec.ProjectID] = append(m.Records[rec.ProjectID], rec)
	}
	return nil
}

// GetByProject retrieves hours records for a project
func (m *MockHoursRepository) GetByProject(projectID int32) ([]*domain.HoursRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	records := m.Records[projectID]
	if records == nil {
		return []*domain.HoursRecord{}, nil
	}
	return records, nil
}

// MockInvoiceRepository is a mock implementation of domain.InvoiceRepository
type MockInvoiceRepository struct {
	Invoices map[int32][]*domain.Invoice
	Err      error
}

// NewMockInvoiceRepository creates a new MockInvoiceRepository
func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{Invoices: make(map[int32][]*domain.Invoice)}
}

// CreateBatch appends invoices
func (m *MockInvoiceRepository) CreateBatch(invoices []*domain.Invoice) error {
	if m.Err != nil {
		return m.Err
	}
	for _, inv := range invoices {
		m.Invoices[inv.ProjectID] = append(m.Invoices[inv.ProjectID], inv)
	}
	return nil
}

// GetByProject retrieves invoices for a project
func (m *MockInvoiceRepository) GetByProject(projectID int32) ([]*domain.Invoice, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	invoices := m.Invoices[projectID]
	if invoices == nil {
		return []*domain.Invoice{}, nil
	}
	return invoices, nil
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses map[int32][]*domain.Expense
	Err      error
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{Expenses: make(map[int32][]*domain.Expense)}
}

// CreateBatch appends expenses
func (m *MockExpenseRepository) CreateBatch(expenses []*domain.Expense) error {
	if m.Err != nil {
		return m.Err
	}
	for _, exp := range expenses {
		m.Expenses[exp.ProjectID] = append(m.Expenses[exp.ProjectID], exp)
	}
	return nil
}

// GetByProject retrieves expenses for a project
func (m *MockExpenseRepository) GetByProject(projectID int32) ([]*domain.Expense, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	expenses := m.Expenses[projectID]
	if expenses == nil {
		return []*domain.Expense{}, nil
	}
	return expenses, nil
}

// MockReportRepository is a mock implementation of domain.ReportRepository
type MockReportRepository struct {
	Reports map[int32][]*domain.Report
	NextID  int32
	Err     error
}

// NewMockReportRepository creates a new MockReportRepository
func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{
		Reports: make(map[int32][]*domain.Report),
		NextID:  1,
	}
}

// Create stores report metadata
func (m *MockReportRepository) Create(report *domain.Report) (*domain.Report, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	r := *report
	r.ID = m.NextID
	m.NextID++
	r.CreatedAt = time.Now()
	m.Reports[r.ProjectID] = append(m.Reports[r.ProjectID], &r)
	return &r, nil
}

// GetByProject retrieves reports for a project
func (m *MockReportRepository) GetByProject(projectID int32) ([]*domain.Report, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	reports := m.Reports[projectID]
	if reports == nil {
		return []*domain.Report{}, nil
	}
	return reports, nil
}

// StoredObject is one object written through MockObjectStore
type StoredObject struct {
	Data        []byte
	ContentType string
}

// MockObjectStore is an in-memory implementation of storage.ObjectStore.
// Put records every object in write order; FailAfter, when non-negative,
// makes the Nth write and all later ones fail.
type MockObjectStore struct {
	Objects   map[string]StoredObject
	Keys      []string
	FailAfter int
	PutErr    error
}

// NewMockObjectStore creates a new MockObjectStore
func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{
		Objects:   make(map[string]StoredObject),
		FailAfter: -1,
	}
}

// Put stores an object in memory and returns a fake URL for it
func (m *MockObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if m.PutErr != nil && m.FailAfter >= 0 && len(m.Keys) >= m.FailAfter {
		return "", m.PutErr
	}
	m.Objects[key] = StoredObject{Data: data, ContentType: contentType}
	m.Keys = append(m.Keys, key)
	return "https://store.test/" + key, nil
}

// PresignGet returns a fake presigned URL
func (m *MockObjectStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://store.test/" + key + "?signed=1", nil
}
