package batch

import (
	"context"
	"time"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/entity"
	"farmledger/internal/core/id"
	"farmledger/internal/core/tx"
	"farmledger/internal/domain/dailybalance"
	"farmledger/internal/domain/events"
	"farmledger/internal/domain/period"
	"farmledger/internal/domain/section"
	"farmledger/pkg/logger"
)

// Service provides batch creation and counter maintenance.
type Service struct {
	batches   Repository
	sections  section.Repository
	periods   period.Repository
	balances  dailybalance.Repository
	txManager tx.Manager
	publisher events.Publisher
}

// NewService creates a new batch service.
func NewService(
	batches Repository,
	sections section.Repository,
	periods period.Repository,
	balances dailybalance.Repository,
	txManager tx.Manager,
	publisher events.Publisher,
) *Service {
	return &Service{
		batches:   batches,
		sections:  sections,
		periods:   periods,
		balances:  balances,
		txManager: txManager,
		publisher: publisher,
	}
}

// CreateInput carries the fields for a new batch.
type CreateInput struct {
	SectionID     id.ID
	ExpectedEndAt time.Time
	TotalChicksIn int
	ActorID       string
}

// Create starts a new batch in the section.
// Guards: the section must be linked to an ACTIVE period and must not
// already hold a live batch. On success the batch, the section flip to
// ACTIVE and the day-one balance snapshot are written in one transaction.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Batch, error) {
	sec, err := s.sections.GetByID(ctx, in.SectionID)
	if err != nil {
		return nil, err
	}

	if sec.ActivePeriodID == nil {
		return nil, apperror.NewInvalidState("section has no active period").
			WithDetail("section_id", sec.ID.String())
	}
	p, err := s.periods.GetByID(ctx, *sec.ActivePeriodID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, apperror.NewPeriodClosed(p.Name).
			WithDetail("period_id", p.ID.String())
	}

	if live, err := s.batches.FindLiveBySection(ctx, in.SectionID); err != nil {
		return nil, err
	} else if live != nil {
		return nil, apperror.NewInvalidState("section already has a live batch").
			WithReason(apperror.ReasonActiveBatches).
			WithDetail("section_id", sec.ID.String()).
			WithDetail("batch_id", live.ID.String())
	}

	now := time.Now().UTC()
	b := &Batch{
		SectionID:     in.SectionID,
		PeriodID:      &p.ID,
		StartedAt:     now,
		ExpectedEndAt: in.ExpectedEndAt.UTC(),
		TotalChicksIn: in.TotalChicksIn,
		Status:        StatusActive,
	}
	b.BaseRecord = entity.NewBaseRecord()
	b.CreatedBy = in.ActorID
	b.UpdatedBy = in.ActorID

	if err := b.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.batches.Create(ctx, b); err != nil {
			return err
		}

		sec.Status = section.StatusActive
		sec.ActiveBatchID = &b.ID
		sec.UpdatedBy = in.ActorID
		sec.Touch()
		if err := s.sections.Update(ctx, sec); err != nil {
			return err
		}

		// Day-one snapshot opens the balance chain at the chick-in count.
		return s.balances.Create(ctx, dailybalance.NewOpening(b.ID, now, b.TotalChicksIn))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "batch created",
		"id", b.ID, "section_id", sec.ID, "period_id", p.ID, "chicks_in", b.TotalChicksIn)
	s.publisher.Publish(events.TopicSection(sec.ID.String()), events.KindBatchCreated, b)
	return b, nil
}

// Get retrieves a batch by id.
func (s *Service) Get(ctx context.Context, batchID id.ID) (*Batch, error) {
	return s.batches.GetByID(ctx, batchID)
}

// ListByPeriod retrieves the period's batches.
func (s *Service) ListByPeriod(ctx context.Context, periodID id.ID) ([]*Batch, error) {
	return s.batches.ListByPeriod(ctx, periodID)
}

// ListBySection retrieves the section's batches.
func (s *Service) ListBySection(ctx context.Context, sectionID id.ID) ([]*Batch, error) {
	return s.batches.ListBySection(ctx, sectionID)
}
