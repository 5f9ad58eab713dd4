package incident

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
	"farmledger/internal/domain/period"
	"farmledger/pkg/logger"
)

// Service provides incident reporting and guarded resolution.
type Service struct {
	incidents Repository
	periods   period.Repository
	expenses  expense.Repository
	txManager tx.Manager
	publisher events.Publisher
}

// NewService creates a new incident service.
func NewService(
	incidents Repository,
	periods period.Repository,
	expenses expense.Repository,
	txManager tx.Manager,
	publisher events.Publisher,
) *Service {
	return &Service{
		incidents: incidents,
		periods:   periods,
		expenses:  expenses,
		txManager: txManager,
		publisher: publisher,
	}
}

// ReportInput carries the fields for a new incident.
type ReportInput struct {
	SectionID       id.ID
	PeriodID        id.ID
	Description     string
	RequiresExpense bool
	ActorID         string
}

// Report records a new OPEN incident.
func (s *Service) Report(ctx context.Context, in ReportInput) (*Incident, error) {
	p, err := s.periods.GetByID(ctx, in.PeriodID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, apperror.NewPeriodClosed(p.Name).
			WithDetail("period_id", p.ID.String())
	}

	i := &Incident{
		BaseRecord:      entity.NewBaseRecord(),
		SectionID:       in.SectionID,
		PeriodID:        in.PeriodID,
		Description:     in.Description,
		RequiresExpense: in.RequiresExpense,
		Status:          StatusOpen,
	}
	i.CreatedBy = in.ActorID
	i.UpdatedBy = in.ActorID

	if err := i.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.incidents.Create(ctx, i); err != nil {
		return nil, err
	}

	logger.Info(ctx, "incident reported",
		"id", i.ID, "section_id", i.SectionID, "requires_expense", i.RequiresExpense)
	s.publisher.Publish(events.TopicSection(i.SectionID.String()), events.KindIncidentReported, i)
	return i, nil
}

// Resolve settles an incident. A cost-bearing incident requires a repair
// cost, and the resolution and its ASSET_REPAIR expense line are written in
// one transaction: if either fails, neither persists.
func (s *Service) Resolve(ctx context.Context, incidentID id.ID, repairCost *types.Money, actorID string) (*Incident, error) {
	i, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}
	if i.IsResolved() {
		return nil, apperror.NewInvalidState("incident is already resolved").
			WithDetail("incident_id", i.ID.String())
	}

	p, err := s.periods.GetByID(ctx, i.PeriodID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, apperror.NewPeriodClosed(p.Name).
			WithDetail("period_id", p.ID.String())
	}

	if i.RequiresExpense {
		if repairCost == nil {
			return nil, apperror.NewValidation("repair cost is required for an expense-requiring incident").
				WithDetail("field", "repairCost")
		}
		if !repairCost.IsPositive() {
			return nil, apperror.NewValidation("repair cost must be positive").
				WithDetail("field", "repairCost")
		}
	}

	now := time.Now()
	i.MarkResolved(repairCost, actorID, now)
	i.UpdatedBy = actorID

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.incidents.Update(ctx, i); err != nil {
			return err
		}

		if !i.RequiresExpense {
			return nil
		}

		e := &expense.PeriodExpense{
			BaseRecord:  entity.NewBaseRecord(),
			PeriodID:    i.PeriodID,
			SectionID:   &i.SectionID,
			Category:    expense.CategoryAssetRepair,
			Amount:      *repairCost,
			Description: "incident repair: " + i.Description,
			ExpenseDate: now.UTC(),
			Source:      expense.SourceManual,
			IncidentID:  &i.ID,
		}
		e.CreatedBy = actorID
		return s.expenses.Create(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "incident resolved", "id", i.ID)
	s.publisher.Publish(events.TopicSection(i.SectionID.String()), events.KindIncidentResolved, i)
	return i, nil
}

// ListByPeriod retrieves the period's incidents.
func (s *Service) ListByPeriod(ctx context.Context, periodID id.ID) ([]*Incident, error) {
	return s.incidents.ListByPeriod(ctx, periodID)
}
