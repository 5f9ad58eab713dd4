package expense

import (
	"context"

	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
)

// ListFilter narrows expense listings.
type ListFilter struct {
	PeriodID  id.ID
	SectionID *id.ID
	Category  *Category

	Limit  int
	Offset int
}

// Repository defines persistence operations for the expense ledger.
//
// The Sum* aggregations must be single grouped-sum queries so they stay
// correct under concurrent appends; iterating rows in application code is
// not an acceptable implementation.
type Repository interface {
	// Create appends an expense line. This is the only write operation:
	// the ledger is append-only by design.
	Create(ctx context.Context, e *PeriodExpense) error

	// GetByID retrieves an expense or a NotFound error.
	GetByID(ctx context.Context, expenseID id.ID) (*PeriodExpense, error)

	// List retrieves expenses newest first.
	List(ctx context.Context, filter ListFilter) ([]*PeriodExpense, error)

	// SumByPeriod totals all expenses of the period.
	SumByPeriod(ctx context.Context, periodID id.ID) (types.Money, error)

	// SumByPeriodSection totals expenses of the period scoped to a section.
	SumByPeriodSection(ctx context.Context, periodID, sectionID id.ID) (types.Money, error)

	// SumByCategory totals expenses of the period grouped by category.
	SumByCategory(ctx context.Context, periodID id.ID) ([]CategorySum, error)
}
