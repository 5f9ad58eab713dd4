package reports

import (
	"context"

	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
	"farmledger/internal/domain/batch"
	"farmledger/internal/domain/chickout"
	"farmledger/internal/domain/dailybalance"
	"farmledger/internal/domain/expense"
	"farmledger/internal/domain/period"
)

// PeriodGuard re-checks the period close preconditions. The closing
// service implements it; the P&L refuses to compute while any guard
// fails, because a period with open operational loops has no defined
// P&L yet.
type PeriodGuard interface {
	GuardPeriod(ctx context.Context, periodID id.ID) error
}

// Service composes the read-only financial reports. It owns no state
// and performs no writes.
type Service struct {
	reports   Repository
	periods   period.Repository
	batches   batch.Repository
	chickOuts chickout.Repository
	balances  dailybalance.Repository
	expenses  expense.Repository
	guard     PeriodGuard
}

// NewService creates a new reports service.
func NewService(
	reports Repository,
	periods period.Repository,
	batches batch.Repository,
	chickOuts chickout.Repository,
	balances dailybalance.Repository,
	expenses expense.Repository,
	guard PeriodGuard,
) *Service {
	return &Service{
		reports:   reports,
		periods:   periods,
		batches:   batches,
		chickOuts: chickOuts,
		balances:  balances,
		expenses:  expenses,
		guard:     guard,
	}
}

// PeriodRevenue returns the period's completed-sale revenue. It runs no
// guards: revenue-to-date is meaningful for an open period.
func (s *Service) PeriodRevenue(ctx context.Context, periodID id.ID) (types.Money, error) {
	if _, err := s.periods.GetByID(ctx, periodID); err != nil {
		return types.Zero(), err
	}
	return s.reports.PeriodRevenue(ctx, periodID)
}

// PeriodPL computes the period profit-and-loss statement. The close
// guards must all pass first.
func (s *Service) PeriodPL(ctx context.Context, periodID id.ID) (*PeriodPL, error) {
	if _, err := s.periods.GetByID(ctx, periodID); err != nil {
		return nil, err
	}
	if err := s.guard.GuardPeriod(ctx, periodID); err != nil {
		return nil, err
	}

	revenue, err := s.reports.PeriodRevenue(ctx, periodID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.SumByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	profit := revenue.Sub(expenses)
	return &PeriodPL{
		PeriodID:      periodID,
		TotalRevenue:  revenue,
		TotalExpenses: expenses,
		Profit:        profit,
		IsProfitable:  profit.IsPositive(),
	}, nil
}

// PeriodKPI derives the per-chick and margin ratios. Unlike the P&L it
// does not re-run the close guards: partial KPIs over an open period are
// useful and every ratio degrades to zero on missing data.
func (s *Service) PeriodKPI(ctx context.Context, periodID id.ID) (*PeriodKPI, error) {
	if _, err := s.periods.GetByID(ctx, periodID); err != nil {
		return nil, err
	}

	revenue, err := s.reports.PeriodRevenue(ctx, periodID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.SumByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	chicksIn, err := s.reports.PeriodChicksIn(ctx, periodID)
	if err != nil {
		return nil, err
	}
	finalOut, err := s.reports.FinalChicksOut(ctx, periodID)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.expenses.SumByCategory(ctx, periodID)
	if err != nil {
		return nil, err
	}

	profit := revenue.Sub(expenses)
	return &PeriodKPI{
		PeriodID: periodID,
		Totals: PeriodTotals{
			TotalRevenue:   revenue,
			TotalExpenses:  expenses,
			Profit:         profit,
			TotalChicksIn:  chicksIn,
			FinalChicksOut: finalOut,
		},
		ProfitMarginPercent: types.RatioPercent(profit, revenue),
		CostPerChick:        types.DivSafe(expenses, types.NewMoneyFromInt(int64(chicksIn))),
		RevenuePerChick:     types.DivSafe(revenue, types.NewMoneyFromInt(int64(finalOut))),
		ProfitPerChick:      types.DivSafe(profit, types.NewMoneyFromInt(int64(finalOut))),
		ExpensesByCategory:  byCategory,
	}, nil
}

// BatchSummary aggregates a batch's daily-balance ledger and verifies the
// three chick-out tallies against each other.
func (s *Service) BatchSummary(ctx context.Context, batchID id.ID) (*BatchSummary, error) {
	b, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	deaths, ledgerOut, err := s.balances.SumByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	recordOut, err := s.chickOuts.SumCountsByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	final := b.TotalChicksIn - deaths - ledgerOut
	if final < 0 {
		final = 0
	}

	return &BatchSummary{
		BatchID:         b.ID,
		TotalChicksIn:   b.TotalChicksIn,
		TotalDeaths:     deaths,
		TotalChickOut:   ledgerOut,
		FinalChickCount: final,
		Verification: TotalsCheck{
			LedgerChickOut: ledgerOut,
			BatchChickOut:  b.TotalChicksOut,
			RecordChickOut: int(recordOut),
			Match:          ledgerOut == b.TotalChicksOut && ledgerOut == int(recordOut),
		},
	}, nil
}
