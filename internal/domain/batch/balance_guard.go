package batch

import (
	"context"

	"farmledger/internal/core/id"
	"farmledger/internal/domain/dailybalance"
	"farmledger/internal/domain/section"
)

// balanceGuard adapts the batch and section repositories to the guard
// interface the daily balance ledger checks before opening a day.
type balanceGuard struct {
	batches  Repository
	sections section.Repository
}

// NewBalanceGuard builds a dailybalance.GuardSource over the repositories.
func NewBalanceGuard(batches Repository, sections section.Repository) dailybalance.GuardSource {
	return &balanceGuard{batches: batches, sections: sections}
}

func (g *balanceGuard) BalanceGuard(ctx context.Context, batchID id.ID) (dailybalance.GuardInfo, error) {
	b, err := g.batches.GetByID(ctx, batchID)
	if err != nil {
		return dailybalance.GuardInfo{}, err
	}

	sec, err := g.sections.GetByID(ctx, b.SectionID)
	if err != nil {
		return dailybalance.GuardInfo{}, err
	}

	return dailybalance.GuardInfo{
		BatchClosed:    !b.IsLive(),
		SectionBlocked: sec.Blocked(),
		StartingChicks: b.TotalChicksIn,
		SectionID:      sec.ID,
		PeriodID:       b.PeriodID,
	}, nil
}
