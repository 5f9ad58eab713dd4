package period

import (
	"context"

	"farmledger/internal/core/id"
)

// ListFilter narrows period listings.
type ListFilter struct {
	Status *Status

	Limit  int
	Offset int
}

// Repository defines persistence operations for periods.
type Repository interface {
	// Create inserts a new period.
	Create(ctx context.Context, p *Period) error

	// GetByID retrieves a period or a NotFound error.
	GetByID(ctx context.Context, periodID id.ID) (*Period, error)

	// Update modifies an existing period (optimistic locking).
	Update(ctx context.Context, p *Period) error

	// List retrieves periods newest first.
	List(ctx context.Context, filter ListFilter) ([]*Period, error)
}
