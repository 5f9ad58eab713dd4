package chickout

import (
	"context"
	"time"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/entity"
	"farmledger/internal/core/id"
	"farmledger/internal/core/tx"
	"farmledger/internal/core/types"
	"farmledger/internal/domain/batch"
	"farmledger/internal/domain/dailybalance"
	"farmledger/internal/domain/events"
	"farmledger/internal/domain/forecast"
	"farmledger/internal/domain/period"
	"farmledger/internal/domain/section"
	"farmledger/pkg/logger"
)

// Service provides the two-phase chick-out operations.
type Service struct {
	chickOuts Repository
	batches   batch.Repository
	sections  section.Repository
	periods   period.Repository
	balances  *dailybalance.Service
	prices    forecast.PriceRepository
	txManager tx.Manager
	publisher events.Publisher
}

// NewService creates a new chick-out service.
func NewService(
	chickOuts Repository,
	batches batch.Repository,
	sections section.Repository,
	periods period.Repository,
	balances *dailybalance.Service,
	prices forecast.PriceRepository,
	txManager tx.Manager,
	publisher events.Publisher,
) *Service {
	return &Service{
		chickOuts: chickOuts,
		batches:   batches,
		sections:  sections,
		periods:   periods,
		balances:  balances,
		prices:    prices,
		txManager: txManager,
		publisher: publisher,
	}
}

// CreateInput carries the operational fields recorded at the loading dock.
type CreateInput struct {
	SectionID     id.ID
	Count         int
	VehicleNumber string
	MachineNumber string
	IsFinal       bool
	ActorID       string
}

// Create records an INCOMPLETE chick-out and its operational side effects
// in one transaction: the batch out-counter is incremented and the day's
// balance accumulates the count. A final chick-out closes the batch and
// moves the section to CLEANING synchronously, regardless of the record's
// own completion status; a non-final one flips batch and section to
// PARTIAL_OUT.
func (s *Service) Create(ctx context.Context, in CreateInput) (*ChickOut, error) {
	sec, err := s.sections.GetByID(ctx, in.SectionID)
	if err != nil {
		return nil, err
	}
	if sec.ActiveBatchID == nil {
		return nil, apperror.NewInvalidState("section has no active batch").
			WithDetail("section_id", sec.ID.String())
	}

	b, err := s.batches.GetByID(ctx, *sec.ActiveBatchID)
	if err != nil {
		return nil, err
	}
	if !b.IsLive() {
		return nil, apperror.NewInvalidState("batch is already closed").
			WithDetail("batch_id", b.ID.String())
	}

	now := time.Now().UTC()
	c := &ChickOut{
		BaseRecord:    entity.NewBaseRecord(),
		SectionID:     sec.ID,
		BatchID:       b.ID,
		Date:          now,
		Count:         in.Count,
		VehicleNumber: in.VehicleNumber,
		MachineNumber: in.MachineNumber,
		IsFinal:       in.IsFinal,
		Status:        StatusIncomplete,
	}
	c.CreatedBy = in.ActorID
	c.UpdatedBy = in.ActorID

	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	batchClosed := false
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.chickOuts.Create(ctx, c); err != nil {
			return err
		}

		// Operational counter: bumps on every creation, not just COMPLETE.
		if err := s.batches.IncrementChicksOut(ctx, b.ID, c.Count); err != nil {
			return err
		}
		if err := s.balances.AddChickOut(ctx, b.ID, now, c.Count); err != nil {
			return err
		}

		if in.IsFinal {
			// Unguarded finalization: the batch closes even while this
			// chick-out is INCOMPLETE. The period close guards catch the
			// open financial loop later.
			b.MarkClosed(now)
			b.UpdatedBy = in.ActorID
			if err := s.batches.Update(ctx, b); err != nil {
				return err
			}

			sec.Status = section.StatusCleaning
			sec.ActiveBatchID = nil
			sec.UpdatedBy = in.ActorID
			sec.Touch()
			if err := s.sections.Update(ctx, sec); err != nil {
				return err
			}

			batchClosed = true
			return s.balances.CloseForBatch(ctx, b.ID)
		}

		if sec.Status != section.StatusPartialOut {
			b.MarkPartialOut()
			b.UpdatedBy = in.ActorID
			if err := s.batches.Update(ctx, b); err != nil {
				return err
			}

			sec.Status = section.StatusPartialOut
			sec.UpdatedBy = in.ActorID
			sec.Touch()
			if err := s.sections.Update(ctx, sec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "chick-out recorded",
		"id", c.ID, "batch_id", b.ID, "count", c.Count, "final", c.IsFinal)
	s.publisher.Publish(events.TopicSection(sec.ID.String()), events.KindChickOutCreated, c)
	if batchClosed {
		s.publisher.Publish(events.TopicSection(sec.ID.String()), events.KindBatchClosed, b)
	}
	return c, nil
}

// CompleteInput carries the financial facts from the weighbridge/invoice.
type CompleteInput struct {
	TotalWeightKg types.Money
	WastePercent  types.Money
	PricePerKg    types.Money
	ActorID       string
}

// Complete finalizes the financial phase of a chick-out. One-way: a
// COMPLETE record rejects further completion. The owning period must still
// be ACTIVE. The sale price also refreshes the section's active forecast
// price (source LAST_REAL_SALE).
func (s *Service) Complete(ctx context.Context, chickOutID id.ID, in CompleteInput) (*ChickOut, error) {
	c, err := s.chickOuts.GetByID(ctx, chickOutID)
	if err != nil {
		return nil, err
	}
	if c.IsComplete() {
		return nil, apperror.NewInvalidState("chick-out is already completed").
			WithDetail("chick_out_id", c.ID.String())
	}

	b, err := s.batches.GetByID(ctx, c.BatchID)
	if err != nil {
		return nil, err
	}
	// Pre-period legacy batches carry no period reference; completion is
	// allowed for them without a period guard.
	if b.PeriodID != nil {
		p, err := s.periods.GetByID(ctx, *b.PeriodID)
		if err != nil {
			return nil, err
		}
		if !p.IsActive() {
			return nil, apperror.NewPeriodClosed(p.Name).
				WithDetail("period_id", p.ID.String())
		}
	}

	if in.WastePercent.IsNegative() || in.WastePercent.GreaterThan(types.NewMoneyFromInt(100)) {
		return nil, apperror.NewValidation("waste percent must be between 0 and 100").
			WithDetail("field", "wastePercent").
			WithDetail("value", in.WastePercent.String())
	}
	if !in.TotalWeightKg.IsPositive() {
		return nil, apperror.NewValidation("total weight must be positive").
			WithDetail("field", "totalWeightKg")
	}
	if !in.PricePerKg.IsPositive() {
		return nil, apperror.NewValidation("price per kg must be positive").
			WithDetail("field", "pricePerKg")
	}

	c.Complete(in.TotalWeightKg, in.WastePercent, in.PricePerKg, in.ActorID, time.Now())
	c.UpdatedBy = in.ActorID

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.chickOuts.Update(ctx, c); err != nil {
			return err
		}

		// A real sale is the best available price assumption.
		if b.PeriodID != nil {
			price := forecast.NewPrice(*b.PeriodID, &c.SectionID, in.PricePerKg, forecast.SourceLastRealSale)
			price.CreatedBy = in.ActorID
			if err := s.prices.Activate(ctx, price); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "chick-out completed",
		"id", c.ID, "revenue", c.TotalRevenue.String(), "net_kg", c.NetWeightKg.String())
	s.publisher.Publish(events.TopicSection(c.SectionID.String()), events.KindChickOutCompleted, c)
	return c, nil
}

// Get retrieves a chick-out by id.
func (s *Service) Get(ctx context.Context, chickOutID id.ID) (*ChickOut, error) {
	return s.chickOuts.GetByID(ctx, chickOutID)
}

// ListByBatch retrieves the batch's chick-outs.
func (s *Service) ListByBatch(ctx context.Context, batchID id.ID) ([]*ChickOut, error) {
	return s.chickOuts.ListByBatch(ctx, batchID)
}
