package section

import (
	"context"

	"farmledger/internal/core/id"
)

// Repository defines persistence operations for sections.
type Repository interface {
	// Create inserts a new section.
	Create(ctx context.Context, s *Section) error

	// GetByID retrieves a section or a NotFound error.
	GetByID(ctx context.Context, sectionID id.ID) (*Section, error)

	// Update modifies an existing section (optimistic locking).
	Update(ctx context.Context, s *Section) error

	// List retrieves all sections ordered by name.
	List(ctx context.Context) ([]*Section, error)

	// ListByPeriod retrieves sections linked to the given period.
	ListByPeriod(ctx context.Context, periodID id.ID) ([]*Section, error)
}
