package forecast

import (
	"context"

	"farmledger/internal/core/id"
)

// PriceRepository defines persistence operations for forecast prices.
type PriceRepository interface {
	// Activate inserts the price and deactivates the prior active price of
	// the same (period, section) scope in the same statement batch. Must be
	// called inside a transaction.
	Activate(ctx context.Context, p *Price) error

	// FindActive returns the active price for the exact (period, section)
	// scope, or nil. A nil sectionID queries the period-wide default.
	FindActive(ctx context.Context, periodID id.ID, sectionID *id.ID) (*Price, error)

	// ListByPeriod returns all price records of the period, newest first.
	ListByPeriod(ctx context.Context, periodID id.ID) ([]*Price, error)
}
