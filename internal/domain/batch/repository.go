package batch

import (
	"context"

	"farmledger/internal/core/id"
)

// Repository defines persistence operations for batches.
//
// The "at most one live batch per section" invariant must be backed by a
// partial unique index on (section_id) WHERE status != 'CLOSED'; Create
// surfaces a violation as an InvalidState error so racing creators cannot
// both succeed.
type Repository interface {
	// Create inserts a new batch.
	Create(ctx context.Context, b *Batch) error

	// GetByID retrieves a batch or a NotFound error.
	GetByID(ctx context.Context, batchID id.ID) (*Batch, error)

	// Update modifies an existing batch (optimistic locking).
	Update(ctx context.Context, b *Batch) error

	// FindLiveBySection returns the section's non-CLOSED batch, or nil.
	FindLiveBySection(ctx context.Context, sectionID id.ID) (*Batch, error)

	// CountLiveByPeriod counts non-CLOSED batches referencing the period.
	CountLiveByPeriod(ctx context.Context, periodID id.ID) (int64, error)

	// ListByPeriod returns all batches of the period, oldest first.
	ListByPeriod(ctx context.Context, periodID id.ID) ([]*Batch, error)

	// ListBySection returns all batches of the section, oldest first.
	ListBySection(ctx context.Context, sectionID id.ID) ([]*Batch, error)

	// IncrementChicksOut atomically adds n to the operational out-counter.
	IncrementChicksOut(ctx context.Context, batchID id.ID, n int) error
}
