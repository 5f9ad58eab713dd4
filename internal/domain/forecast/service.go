package forecast

import (
	"context"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/id"
	"farmledger/internal/core/tx"
	"farmledger/internal/core/types"
	"farmledger/internal/domain/batch"
	"farmledger/internal/domain/dailybalance"
	"farmledger/internal/domain/events"
	"farmledger/internal/domain/expense"
	"farmledger/internal/domain/period"
	"farmledger/internal/domain/section"
	"farmledger/pkg/logger"
)

// Service computes section forecasts and manages the price assumptions
// behind them.
type Service struct {
	prices    PriceRepository
	periods   period.Repository
	sections  section.Repository
	batches   batch.Repository
	balances  dailybalance.Repository
	expenses  expense.Repository
	txManager tx.Manager
	publisher events.Publisher
}

// NewService creates a new forecast service.
func NewService(
	prices PriceRepository,
	periods period.Repository,
	sections section.Repository,
	batches batch.Repository,
	balances dailybalance.Repository,
	expenses expense.Repository,
	txManager tx.Manager,
	publisher events.Publisher,
) *Service {
	return &Service{
		prices:    prices,
		periods:   periods,
		sections:  sections,
		batches:   batches,
		balances:  balances,
		expenses:  expenses,
		txManager: txManager,
		publisher: publisher,
	}
}

// SetPriceInput is the input for a manual price assumption.
type SetPriceInput struct {
	PeriodID   id.ID
	SectionID  *id.ID
	PricePerKg types.Money
	ActorID    string
}

// SetPrice records a manager-entered price assumption, deactivating the
// prior active price of the same scope.
func (s *Service) SetPrice(ctx context.Context, in SetPriceInput) (*Price, error) {
	p, err := s.periods.GetByID(ctx, in.PeriodID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, apperror.NewPeriodClosed(p.Name).
			WithDetail("period_id", p.ID.String())
	}

	price := NewPrice(in.PeriodID, in.SectionID, in.PricePerKg, SourceManualInitial)
	price.CreatedBy = in.ActorID
	price.UpdatedBy = in.ActorID
	if err := price.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.prices.Activate(ctx, price)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "forecast price set", "period_id", in.PeriodID, "price", in.PricePerKg)
	s.publisher.Publish(events.TopicPeriod(in.PeriodID.String()), events.KindForecastPriceSet, price)
	return price, nil
}

// SectionForecast estimates the revenue and profit of selling a section's
// remaining flock today. A missing precondition yields a BLOCKED result,
// never an error: absent prices and fresh batches are everyday states.
func (s *Service) SectionForecast(ctx context.Context, sectionID id.ID) (*SectionForecast, error) {
	sec, err := s.sections.GetByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	if sec.ActivePeriodID == nil {
		return Blocked(sectionID, ReasonNoActivePeriod), nil
	}
	p, err := s.periods.GetByID(ctx, *sec.ActivePeriodID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return Blocked(sectionID, ReasonNoActivePeriod), nil
	}

	if sec.ActiveBatchID == nil {
		return Blocked(sectionID, ReasonNoBatch), nil
	}
	b, err := s.batches.GetByID(ctx, *sec.ActiveBatchID)
	if err != nil {
		return nil, err
	}

	price, err := s.activePrice(ctx, p.ID, sectionID)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return Blocked(sectionID, ReasonPriceNotSet), nil
	}

	avgWeight, err := s.balances.FindLatestAvgWeight(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if avgWeight == nil || !avgWeight.IsPositive() {
		return Blocked(sectionID, ReasonInsufficientData), nil
	}

	deaths, _, err := s.balances.SumByBatch(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	alive := b.TotalChicksIn - deaths - b.TotalChicksOut
	if alive < 0 {
		alive = 0
	}

	costs, err := s.expenses.SumByPeriodSection(ctx, p.ID, sectionID)
	if err != nil {
		return nil, err
	}

	aliveMoney := types.NewMoneyFromInt(int64(alive))
	estRevenue := aliveMoney.Mul(*avgWeight).Mul(price.PricePerKg)

	// Only the unsold share of costs burdens the remaining flock.
	soldShare := types.DivSafe(
		types.NewMoneyFromInt(int64(b.TotalChicksOut)),
		types.NewMoneyFromInt(int64(b.TotalChicksIn)),
	)
	remainingCosts := costs.Mul(types.NewMoneyFromInt(1).Sub(soldShare))

	return &SectionForecast{
		Status:           StatusSuccess,
		SectionID:        sectionID,
		BatchID:          &b.ID,
		PeriodID:         &p.ID,
		AliveChicks:      alive,
		AvgWeightKg:      *avgWeight,
		PricePerKg:       price.PricePerKg,
		EstimatedRevenue: estRevenue,
		CostsToDate:      costs,
		RemainingCosts:   remainingCosts,
		EstimatedProfit:  estRevenue.Sub(remainingCosts),
	}, nil
}

// SimulatePartialSale answers "what if we sold N chicks now". It is pure
// over the current forecast inputs and writes nothing.
func (s *Service) SimulatePartialSale(ctx context.Context, sectionID id.ID, soldChicks int) (*Simulation, error) {
	fc, err := s.SectionForecast(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if fc.Status == StatusBlocked {
		return &Simulation{Status: StatusBlocked, Reason: fc.Reason}, nil
	}

	if soldChicks <= 0 {
		return nil, apperror.NewValidation("sold chicks must be positive").
			WithDetail("field", "soldChicks")
	}
	if soldChicks > fc.AliveChicks {
		return nil, apperror.NewValidation("sold chicks exceed the live flock").
			WithDetail("field", "soldChicks").
			WithDetail("alive", fc.AliveChicks)
	}

	perChick := fc.AvgWeightKg.Mul(fc.PricePerKg)
	sold := types.NewMoneyFromInt(int64(soldChicks)).Mul(perChick)
	remaining := fc.AliveChicks - soldChicks

	return &Simulation{
		Status:           StatusSuccess,
		SoldChicks:       soldChicks,
		RemainingChicks:  remaining,
		SoldRevenue:      sold,
		RemainingRevenue: types.NewMoneyFromInt(int64(remaining)).Mul(perChick),
		PricePerKg:       fc.PricePerKg,
		AvgWeightKg:      fc.AvgWeightKg,
	}, nil
}

// activePrice resolves the section-scoped price, falling back to the
// period-wide default.
func (s *Service) activePrice(ctx context.Context, periodID, sectionID id.ID) (*Price, error) {
	price, err := s.prices.FindActive(ctx, periodID, &sectionID)
	if err != nil {
		return nil, err
	}
	if price != nil {
		return price, nil
	}
	return s.prices.FindActive(ctx, periodID, nil)
}
