package chickout

import (
	"context"

	"farmledger/internal/core/id"
)

// Repository defines persistence operations for chick-outs.
type Repository interface {
	// Create inserts a new chick-out.
	Create(ctx context.Context, c *ChickOut) error

	// GetByID retrieves a chick-out or a NotFound error.
	GetByID(ctx context.Context, chickOutID id.ID) (*ChickOut, error)

	// Update modifies an existing chick-out (optimistic locking).
	Update(ctx context.Context, c *ChickOut) error

	// ListByBatch returns the batch's chick-outs, oldest first.
	ListByBatch(ctx context.Context, batchID id.ID) ([]*ChickOut, error)

	// ListBySection returns the section's chick-outs, newest first.
	ListBySection(ctx context.Context, sectionID id.ID) ([]*ChickOut, error)

	// CountIncompleteByBatch counts INCOMPLETE records for the batch.
	CountIncompleteByBatch(ctx context.Context, batchID id.ID) (int64, error)

	// CountIncompleteByPeriod counts INCOMPLETE records across every batch
	// of the period.
	CountIncompleteByPeriod(ctx context.Context, periodID id.ID) (int64, error)

	// HasCompleteByBatch reports whether any COMPLETE record exists.
	HasCompleteByBatch(ctx context.Context, batchID id.ID) (bool, error)

	// SumCountsByBatch sums Count across all records of the batch,
	// regardless of completion status.
	SumCountsByBatch(ctx context.Context, batchID id.ID) (int64, error)
}
