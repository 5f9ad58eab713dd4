package payroll

import (
	"context"

	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
)

// Repository defines persistence operations for payroll records.
type Repository interface {
	// CreateAssignment inserts a salary assignment. The (period, employee)
	// pair is unique; a duplicate surfaces as a Duplicate error.
	CreateAssignment(ctx context.Context, a *SalaryAssignment) error

	// FindAssignment returns the employee's assignment for the period,
	// or nil.
	FindAssignment(ctx context.Context, periodID id.ID, employeeID string) (*SalaryAssignment, error)

	// ListAssignments returns all assignments of the period.
	ListAssignments(ctx context.Context, periodID id.ID) ([]*SalaryAssignment, error)

	// CreateAdvance inserts a salary advance.
	CreateAdvance(ctx context.Context, adv *SalaryAdvance) error

	// SumAdvances totals the employee's advances in the period as a single
	// grouped-sum query.
	SumAdvances(ctx context.Context, periodID id.ID, employeeID string) (types.Money, error)
}
