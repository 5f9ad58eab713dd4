// Package closing is the orchestration layer for the guarded close
// operations. The data-owning packages (period, batch, chickout, incident,
// dailybalance) know nothing of each other's services; the cross-entity
// close preconditions compose here, depending downward on all of them.
package closing

import (
	"context"
	"time"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/id"
	"farmledger/internal/core/tx"
	"farmledger/internal/domain/batch"
	"farmledger/internal/domain/chickout"
	"farmledger/internal/domain/dailybalance"
	"farmledger/internal/domain/events"
	"farmledger/internal/domain/incident"
	"farmledger/internal/domain/payroll"
	"farmledger/internal/domain/period"
	"farmledger/internal/domain/section"
	"farmledger/pkg/logger"
)

// Service runs the guarded batch and period close operations.
type Service struct {
	periods   period.Repository
	sections  section.Repository
	batches   batch.Repository
	chickOuts chickout.Repository
	incidents incident.Repository
	balances  dailybalance.Repository
	payroll   *payroll.Service
	txManager tx.Manager
	publisher events.Publisher
}

// NewService creates a new closing service.
func NewService(
	periods period.Repository,
	sections section.Repository,
	batches batch.Repository,
	chickOuts chickout.Repository,
	incidents incident.Repository,
	balances dailybalance.Repository,
	payrollSvc *payroll.Service,
	txManager tx.Manager,
	publisher events.Publisher,
) *Service {
	return &Service{
		periods:   periods,
		sections:  sections,
		batches:   batches,
		chickOuts: chickOuts,
		incidents: incidents,
		balances:  balances,
		payroll:   payrollSvc,
		txManager: txManager,
		publisher: publisher,
	}
}

// CloseBatch closes a batch under its three guards:
// no INCOMPLETE chick-out may remain, a non-trivial batch needs at least
// one COMPLETE sale, and the section must have no unresolved
// expense-requiring incident. On success the batch closes, the section
// moves to CLEANING and the balance rows are sealed, atomically.
func (s *Service) CloseBatch(ctx context.Context, batchID id.ID, endedAt *time.Time, actorID string) (*batch.Batch, error) {
	var b *batch.Batch
	var sec *section.Section

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		b, err = s.batches.GetByID(ctx, batchID)
		if err != nil {
			return err
		}
		if !b.IsLive() {
			return apperror.NewInvalidState("batch is already closed").
				WithDetail("batch_id", b.ID.String())
		}

		if err := s.guardBatch(ctx, b); err != nil {
			return err
		}

		end := time.Now().UTC()
		if endedAt != nil {
			end = endedAt.UTC()
		}
		b.MarkClosed(end)
		b.UpdatedBy = actorID
		if err := s.batches.Update(ctx, b); err != nil {
			return err
		}

		sec, err = s.sections.GetByID(ctx, b.SectionID)
		if err != nil {
			return err
		}
		sec.Status = section.StatusCleaning
		sec.ActiveBatchID = nil
		sec.UpdatedBy = actorID
		sec.Touch()
		if err := s.sections.Update(ctx, sec); err != nil {
			return err
		}

		return s.balances.CloseForBatch(ctx, b.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "batch closed", "id", b.ID, "section_id", sec.ID)
	s.publisher.Publish(events.TopicSection(sec.ID.String()), events.KindBatchClosed, b)
	return b, nil
}

// guardBatch checks the batch close preconditions in order.
func (s *Service) guardBatch(ctx context.Context, b *batch.Batch) error {
	n, err := s.chickOuts.CountIncompleteByBatch(ctx, b.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperror.NewInvalidState("batch has incomplete chick-outs").
			WithReason(apperror.ReasonIncompleteChickOuts).
			WithDetail("count", n)
	}

	if b.TotalChicksIn > 0 {
		has, err := s.chickOuts.HasCompleteByBatch(ctx, b.ID)
		if err != nil {
			return err
		}
		if !has {
			return apperror.NewInvalidState("batch has no completed sale").
				WithReason(apperror.ReasonNoCompletedSale).
				WithDetail("chicks_in", b.TotalChicksIn)
		}
	}

	unresolved, err := s.incidents.CountUnresolvedBySection(ctx, b.SectionID)
	if err != nil {
		return err
	}
	if unresolved > 0 {
		return apperror.NewInvalidState("section has unresolved incidents").
			WithReason(apperror.ReasonUnresolvedIncidents).
			WithDetail("count", unresolved)
	}

	return nil
}

// ClosePeriod closes a period under its three guards, then finalizes
// salaries and flips the status, all in one transaction.
func (s *Service) ClosePeriod(ctx context.Context, periodID id.ID, actorID string) (*period.Period, error) {
	var p *period.Period

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.periods.GetByID(ctx, periodID)
		if err != nil {
			return err
		}
		if !p.IsActive() {
			return apperror.NewInvalidState("period is already closed").
				WithDetail("period_id", p.ID.String())
		}

		if err := s.guardPeriod(ctx, p.ID); err != nil {
			return err
		}

		// Remaining salaries become expenses before the books shut.
		if err := s.payroll.FinalizeForPeriod(ctx, p.ID); err != nil {
			return err
		}

		p.MarkClosed(time.Now())
		p.UpdatedBy = actorID
		return s.periods.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "period closed", "id", p.ID, "name", p.Name)
	s.publisher.Publish(events.TopicPeriod(p.ID.String()), events.KindPeriodClosed, p)
	return p, nil
}

// guardPeriod checks the period close preconditions in order: live
// batches, incomplete chick-outs, unresolved incidents. All three must
// pass; any violation names its blocker category.
func (s *Service) guardPeriod(ctx context.Context, periodID id.ID) error {
	live, err := s.batches.CountLiveByPeriod(ctx, periodID)
	if err != nil {
		return err
	}
	if live > 0 {
		return apperror.NewInvalidState("period has batches that are not closed").
			WithReason(apperror.ReasonActiveBatches).
			WithDetail("count", live)
	}

	incomplete, err := s.chickOuts.CountIncompleteByPeriod(ctx, periodID)
	if err != nil {
		return err
	}
	if incomplete > 0 {
		return apperror.NewInvalidState("period has incomplete chick-outs").
			WithReason(apperror.ReasonIncompleteChickOuts).
			WithDetail("count", incomplete)
	}

	unresolved, err := s.incidents.CountUnresolvedByPeriod(ctx, periodID)
	if err != nil {
		return err
	}
	if unresolved > 0 {
		return apperror.NewInvalidState("period has unresolved incidents").
			WithReason(apperror.ReasonUnresolvedIncidents).
			WithDetail("count", unresolved)
	}

	return nil
}

// GuardPeriod re-runs the period close guards without closing anything.
// The P&L aggregator uses it: a period with open operational loops has no
// defined P&L, only a blocker to report.
func (s *Service) GuardPeriod(ctx context.Context, periodID id.ID) error {
	return s.guardPeriod(ctx, periodID)
}
