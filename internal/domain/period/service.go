package period

import (
	"context"
	"time"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/id"
	"farmledger/internal/domain/events"
	"farmledger/pkg/logger"
)

// Service provides period operations that do not span other entities.
// Closing spans batches, chick-outs and incidents and lives in closing.Service.
type Service struct {
	periods   Repository
	publisher events.Publisher
}

// NewService creates a new period service.
func NewService(periods Repository, publisher events.Publisher) *Service {
	return &Service{periods: periods, publisher: publisher}
}

// CreateInput carries the fields for a new period.
type CreateInput struct {
	Name      string
	StartDate time.Time
	ActorID   string
}

// Create opens a new ACTIVE period.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Period, error) {
	p := New(in.Name, in.StartDate)
	p.CreatedBy = in.ActorID
	p.UpdatedBy = in.ActorID

	if err := p.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.periods.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.Info(ctx, "period created", "id", p.ID, "name", p.Name)
	s.publisher.Publish(events.TopicPeriod(p.ID.String()), events.KindPeriodCreated, p)
	return p, nil
}

// UpdateInput is a typed patch: nil fields are left untouched.
type UpdateInput struct {
	Name      *string
	StartDate *time.Time
	ActorID   string
}

// Update modifies an ACTIVE period. Closed periods are immutable.
func (s *Service) Update(ctx context.Context, periodID id.ID, in UpdateInput) (*Period, error) {
	p, err := s.periods.GetByID(ctx, periodID)
	if err != nil {
		return nil, err
	}

	if !p.IsActive() {
		return nil, apperror.NewPeriodClosed(p.Name).
			WithDetail("period_id", p.ID.String())
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.StartDate != nil {
		p.StartDate = in.StartDate.UTC()
	}
	p.UpdatedBy = in.ActorID

	if err := p.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.periods.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Get retrieves a period by id.
func (s *Service) Get(ctx context.Context, periodID id.ID) (*Period, error) {
	return s.periods.GetByID(ctx, periodID)
}

// List retrieves periods.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Period, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.periods.List(ctx, filter)
}
