package reports

import (
	"context"

	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
)

// Repository answers the period-level aggregation queries. The storage
// layer computes these as grouped sums; they are never assembled row by
// row in memory.
type Repository interface {
	// PeriodRevenue sums totalRevenue across COMPLETE chick-outs of the
	// period. INCOMPLETE records contribute nothing.
	PeriodRevenue(ctx context.Context, periodID id.ID) (types.Money, error)
	// FinalChicksOut sums the count of COMPLETE chick-outs of the period.
	FinalChicksOut(ctx context.Context, periodID id.ID) (int, error)
	// PeriodChicksIn sums TotalChicksIn across the period's batches.
	PeriodChicksIn(ctx context.Context, periodID id.ID) (int, error)
}
