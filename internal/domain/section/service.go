package section

import (
	"context"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/id"
	"farmledger/internal/domain/period"
	"farmledger/pkg/logger"
)

// Service provides section operations.
type Service struct {
	sections Repository
	periods  period.Repository
}

// NewService creates a new section service.
func NewService(sections Repository, periods period.Repository) *Service {
	return &Service{sections: sections, periods: periods}
}

// Create registers a new empty section.
func (s *Service) Create(ctx context.Context, name, actorID string) (*Section, error) {
	sec := New(name)
	sec.CreatedBy = actorID
	sec.UpdatedBy = actorID

	if err := sec.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.sections.Create(ctx, sec); err != nil {
		return nil, err
	}

	logger.Info(ctx, "section created", "id", sec.ID, "name", name)
	return sec, nil
}

// LinkPeriod assigns the section to an accounting period.
// The period must be ACTIVE; batch creation requires this link.
func (s *Service) LinkPeriod(ctx context.Context, sectionID, periodID id.ID, actorID string) (*Section, error) {
	sec, err := s.sections.GetByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	p, err := s.periods.GetByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, apperror.NewPeriodClosed(p.Name).
			WithDetail("period_id", p.ID.String())
	}

	if sec.ActiveBatchID != nil {
		return nil, apperror.NewInvalidState("cannot relink a section while a batch is live").
			WithDetail("section_id", sec.ID.String()).
			WithDetail("batch_id", sec.ActiveBatchID.String())
	}

	sec.ActivePeriodID = &p.ID
	if sec.Status == StatusEmpty || sec.Status == StatusCleaning {
		sec.Status = StatusPreparing
	}
	sec.UpdatedBy = actorID
	sec.Touch()

	if err := s.sections.Update(ctx, sec); err != nil {
		return nil, err
	}

	logger.Info(ctx, "section linked to period", "section_id", sec.ID, "period_id", p.ID)
	return sec, nil
}

// Get retrieves a section by id.
func (s *Service) Get(ctx context.Context, sectionID id.ID) (*Section, error) {
	return s.sections.GetByID(ctx, sectionID)
}

// List retrieves all sections.
func (s *Service) List(ctx context.Context) ([]*Section, error) {
	return s.sections.List(ctx)
}
