package domain

// Snapshot is a point-in-time aggregate of one project and all of its
// child records. It is assembled once per derivation cycle, never
// persisted, and never mutated after assembly. Child slices are empty,
// not nil, when no rows exist.
type Snapshot struct {
	Project  *Project       `json:"project"`
	Costs    []*CostItem    `json:"costs"`
	Hours    []*HoursRecord `json:"hours"`
	Invoices []*Invoice     `json:"invoices"`
	Expenses []*Expense     `json:"expenses"`
}
