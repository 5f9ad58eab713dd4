package dailybalance

import (
	"context"
	"time"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/entity"
	"farmledger/internal/core/id"
	"farmledger/internal/core/tx"
	"farmledger/internal/core/types"
	"farmledger/internal/domain/events"
	"farmledger/internal/domain/expense"
	"farmledger/pkg/logger"
)

// GuardInfo carries the batch and section facts the ledger checks before
// opening a new day.
type GuardInfo struct {
	BatchClosed    bool
	SectionBlocked bool
	StartingChicks int
	SectionID      id.ID
	PeriodID       *id.ID
}

// GuardSource resolves GuardInfo for a batch. Implemented on top of the
// batch and section repositories (see batch.NewBalanceGuard); declared here
// to keep this package free of upward imports.
type GuardSource interface {
	BalanceGuard(ctx context.Context, batchID id.ID) (GuardInfo, error)
}

// Service maintains the daily balance chain for batches.
type Service struct {
	balances  Repository
	guard     GuardSource
	expenses  expense.Repository
	txManager tx.Manager
	publisher events.Publisher
}

// NewService creates a new daily balance service.
func NewService(balances Repository, guard GuardSource, expenses expense.Repository, txManager tx.Manager, publisher events.Publisher) *Service {
	return &Service{
		balances:  balances,
		guard:     guard,
		expenses:  expenses,
		txManager: txManager,
		publisher: publisher,
	}
}

// GetOrCreate returns the day's record for the batch, creating it if absent.
// Creation fails with InvalidState for a CLOSED batch or a section in
// CLEANING/PREPARING state.
func (s *Service) GetOrCreate(ctx context.Context, batchID id.ID, date time.Time) (*DailyBalance, error) {
	day := Day(date)

	existing, err := s.balances.FindByBatchAndDate(ctx, batchID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	g, err := s.guard.BalanceGuard(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if g.BatchClosed {
		return nil, apperror.NewInvalidState("cannot open a balance day for a closed batch").
			WithDetail("batch_id", batchID.String())
	}
	if g.SectionBlocked {
		return nil, apperror.NewInvalidState("section is not in production").
			WithDetail("batch_id", batchID.String()).
			WithDetail("section_id", g.SectionID.String())
	}

	start := g.StartingChicks
	prev, err := s.balances.FindLatestBefore(ctx, batchID, day)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		start = prev.EndOfDayChicks
	}

	rec := NewOpening(batchID, day, start)
	if err := s.balances.Create(ctx, rec); err != nil {
		// Lost a creation race: the unique (batch, day) index won, re-read.
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeDuplicate {
			return s.balances.FindByBatchAndDate(ctx, batchID, day)
		}
		return nil, err
	}

	return rec, nil
}

// AddDeaths accumulates n deaths into the day's record.
// Repeated calls for the same day are cumulative.
func (s *Service) AddDeaths(ctx context.Context, batchID id.ID, date time.Time, n int) error {
	if n < 0 {
		return apperror.NewValidation("deaths must not be negative").
			WithDetail("value", n)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.GetOrCreate(ctx, batchID, date); err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		return s.balances.AddDeaths(ctx, batchID, Day(date), n)
	})
}

// AddChickOut accumulates n removed chicks into the day's record.
func (s *Service) AddChickOut(ctx context.Context, batchID id.ID, date time.Time, n int) error {
	if n <= 0 {
		return apperror.NewValidation("chick-out count must be positive").
			WithDetail("value", n)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.GetOrCreate(ctx, batchID, date); err != nil {
			return err
		}
		return s.balances.AddChickOut(ctx, batchID, Day(date), n)
	})
}

// DailyReportInput is the ledger-facing slice of a filed daily report.
type DailyReportInput struct {
	BatchID     id.ID
	Date        time.Time
	Deaths      int
	AvgWeightKg *types.Money
	FeedCost    *types.Money
	ActorID     string
}

// ApplyDailyReport folds a daily report into the ledger: deaths accumulate
// into the day's balance, the reported average weight feeds the forecast,
// and a reported feed cost posts a FEED expense tagged DAILY_REPORT, all
// in one transaction.
func (s *Service) ApplyDailyReport(ctx context.Context, in DailyReportInput) (*DailyBalance, error) {
	if in.Deaths < 0 {
		return nil, apperror.NewValidation("deaths must not be negative").
			WithDetail("value", in.Deaths)
	}
	if in.AvgWeightKg != nil && !in.AvgWeightKg.IsPositive() {
		return nil, apperror.NewValidation("average weight must be positive").
			WithDetail("value", in.AvgWeightKg.String())
	}
	if in.FeedCost != nil && !in.FeedCost.IsPositive() {
		return nil, apperror.NewValidation("feed cost must be positive").
			WithDetail("value", in.FeedCost.String())
	}

	day := Day(in.Date)
	var rec *DailyBalance
	var line *expense.PeriodExpense
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		if rec, err = s.GetOrCreate(ctx, in.BatchID, day); err != nil {
			return err
		}
		if in.Deaths > 0 {
			if err := s.balances.AddDeaths(ctx, in.BatchID, day, in.Deaths); err != nil {
				return err
			}
		}
		if in.AvgWeightKg != nil {
			if err := s.balances.UpsertAvgWeight(ctx, in.BatchID, day, *in.AvgWeightKg); err != nil {
				return err
			}
		}
		if in.FeedCost != nil {
			if line, err = s.postFeedCost(ctx, in, rec); err != nil {
				return err
			}
		}
		rec, err = s.balances.FindByBatchAndDate(ctx, in.BatchID, day)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "daily report applied",
		"batch_id", in.BatchID, "date", day.Format("2006-01-02"), "deaths", in.Deaths)
	s.publisher.Publish(events.TopicBatch(in.BatchID.String()), events.KindDailyReported, rec)
	if line != nil {
		s.publisher.Publish(events.TopicPeriod(line.PeriodID.String()), events.KindExpenseAdded, line)
	}
	return rec, nil
}

// postFeedCost appends the report's feed cost to the period expense
// ledger, linked back to the balance record it came from.
func (s *Service) postFeedCost(ctx context.Context, in DailyReportInput, rec *DailyBalance) (*expense.PeriodExpense, error) {
	g, err := s.guard.BalanceGuard(ctx, in.BatchID)
	if err != nil {
		return nil, err
	}
	if g.PeriodID == nil {
		return nil, apperror.NewInvalidState("batch is not linked to a period, feed cost has no ledger").
			WithDetail("batch_id", in.BatchID.String())
	}

	sectionID := g.SectionID
	line := &expense.PeriodExpense{
		BaseRecord:    entity.NewBaseRecord(),
		PeriodID:      *g.PeriodID,
		SectionID:     &sectionID,
		Category:      expense.CategoryFeed,
		Amount:        *in.FeedCost,
		Description:   "daily feed consumption",
		ExpenseDate:   rec.Date,
		Source:        expense.SourceDailyReport,
		DailyReportID: &rec.ID,
	}
	line.CreatedBy = in.ActorID
	line.UpdatedBy = in.ActorID

	if err := s.expenses.Create(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// CloseForBatch marks the batch's balance rows closed. Called when the
// batch itself closes; no further days can be opened afterwards.
func (s *Service) CloseForBatch(ctx context.Context, batchID id.ID) error {
	return s.balances.CloseForBatch(ctx, batchID)
}

// ListForBatch returns the batch's balance chain, oldest first.
func (s *Service) ListForBatch(ctx context.Context, batchID id.ID) ([]*DailyBalance, error) {
	return s.balances.ListByBatch(ctx, batchID)
}
