package dailybalance

import (
	"context"
	"time"

	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
)

// Repository defines persistence operations for daily balances.
//
// AddDeaths/AddChickOut must be implemented as a single atomic
// increment-and-recompute statement, never a read-then-save cycle, so
// concurrent reports for the same day serialize correctly.
type Repository interface {
	// Create inserts a day snapshot. The (batch_id, date) pair is unique;
	// a concurrent duplicate surfaces as a Duplicate error.
	Create(ctx context.Context, b *DailyBalance) error

	// FindByBatchAndDate returns the day's record or nil when absent.
	FindByBatchAndDate(ctx context.Context, batchID id.ID, day time.Time) (*DailyBalance, error)

	// FindLatestBefore returns the most recent record dated strictly before
	// day, or nil. Used to bridge gaps in the chain.
	FindLatestBefore(ctx context.Context, batchID id.ID, day time.Time) (*DailyBalance, error)

	// AddDeaths atomically accumulates n deaths into the day's record and
	// recomputes the clamped end-of-day count.
	AddDeaths(ctx context.Context, batchID id.ID, day time.Time, n int) error

	// AddChickOut atomically accumulates n removed chicks into the day's
	// record and recomputes the clamped end-of-day count.
	AddChickOut(ctx context.Context, batchID id.ID, day time.Time, n int) error

	// ListByBatch returns all records for a batch, oldest first.
	ListByBatch(ctx context.Context, batchID id.ID) ([]*DailyBalance, error)

	// SumByBatch returns total deaths and chick-outs across all records,
	// computed as a single grouped-sum query.
	SumByBatch(ctx context.Context, batchID id.ID) (deaths, chickOut int, err error)

	// CloseForBatch marks every record of the batch closed.
	CloseForBatch(ctx context.Context, batchID id.ID) error

	// UpsertAvgWeight records the day's reported average chick weight.
	UpsertAvgWeight(ctx context.Context, batchID id.ID, day time.Time, kg types.Money) error

	// FindLatestAvgWeight returns the most recent reported average weight
	// for the batch, or nil when none was ever reported.
	FindLatestAvgWeight(ctx context.Context, batchID id.ID) (*types.Money, error)
}
