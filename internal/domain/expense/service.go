package expense

import (
	"context"
	"time"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/entity"
	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
	"farmledger/internal/domain/events"
	"farmledger/internal/domain/period"
	"farmledger/pkg/logger"
)

// Service provides the manual expense entry path and the aggregation reads.
// Coupled workflows (incident repair, salary advance) append through the
// repository inside their own transactions.
type Service struct {
	expenses  Repository
	periods   period.Repository
	publisher events.Publisher
}

// NewService creates a new expense service.
func NewService(expenses Repository, periods period.Repository, publisher events.Publisher) *Service {
	return &Service{expenses: expenses, periods: periods, publisher: publisher}
}

// AddInput carries the fields for a new expense line.
type AddInput struct {
	PeriodID    id.ID
	SectionID   *id.ID
	Category    Category
	Amount      types.Money
	Quantity    *types.Money
	UnitCost    *types.Money
	Description string
	ExpenseDate time.Time
	ActorID     string
}

// Add appends an expense to the period's ledger.
// The only lifecycle guard: the period must still be ACTIVE. What gets
// posted is the creating workflow's responsibility, not the ledger's.
func (s *Service) Add(ctx context.Context, in AddInput) (*PeriodExpense, error) {
	p, err := s.periods.GetByID(ctx, in.PeriodID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, apperror.NewPeriodClosed(p.Name).
			WithDetail("period_id", p.ID.String())
	}

	expenseDate := in.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	e := &PeriodExpense{
		BaseRecord:  entity.NewBaseRecord(),
		PeriodID:    in.PeriodID,
		SectionID:   in.SectionID,
		Category:    in.Category,
		Amount:      in.Amount,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		Description: in.Description,
		ExpenseDate: expenseDate.UTC(),
		Source:      SourceManual,
	}
	e.CreatedBy = in.ActorID
	e.UpdatedBy = in.ActorID

	if err := e.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.expenses.Create(ctx, e); err != nil {
		return nil, err
	}

	logger.Info(ctx, "expense added",
		"id", e.ID, "period_id", e.PeriodID, "category", e.Category, "amount", e.Amount.String())
	s.publisher.Publish(events.TopicPeriod(e.PeriodID.String()), events.KindExpenseAdded, e)
	return e, nil
}

// List retrieves expenses.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*PeriodExpense, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return s.expenses.List(ctx, filter)
}

// TotalForPeriod returns the period's expense total.
func (s *Service) TotalForPeriod(ctx context.Context, periodID id.ID) (types.Money, error) {
	return s.expenses.SumByPeriod(ctx, periodID)
}

// TotalsByCategory returns the period's expenses grouped by category.
func (s *Service) TotalsByCategory(ctx context.Context, periodID id.ID) ([]CategorySum, error) {
	return s.expenses.SumByCategory(ctx, periodID)
}
