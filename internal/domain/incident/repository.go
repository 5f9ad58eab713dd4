package incident

import (
	"context"

	"farmledger/internal/core/id"
)

// Repository defines persistence operations for incidents.
type Repository interface {
	// Create inserts a new incident.
	Create(ctx context.Context, i *Incident) error

	// GetByID retrieves an incident or a NotFound error.
	GetByID(ctx context.Context, incidentID id.ID) (*Incident, error)

	// Update modifies an existing incident (optimistic locking).
	Update(ctx context.Context, i *Incident) error

	// ListByPeriod returns the period's incidents, newest first.
	ListByPeriod(ctx context.Context, periodID id.ID) ([]*Incident, error)

	// CountUnresolvedBySection counts OPEN expense-requiring incidents in
	// the section. Feeds the batch close guard.
	CountUnresolvedBySection(ctx context.Context, sectionID id.ID) (int64, error)

	// CountUnresolvedByPeriod counts OPEN expense-requiring incidents
	// across the period's sections. Feeds the period close guard.
	CountUnresolvedByPeriod(ctx context.Context, periodID id.ID) (int64, error)
}
