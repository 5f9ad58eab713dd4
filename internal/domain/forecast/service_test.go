package forecast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/entity"
	"farmledger/internal/core/types"
	"farmledger/internal/domain/batch"
	"farmledger/internal/domain/dailybalance"
	"farmledger/internal/domain/domaintest"
	"farmledger/internal/domain/events"
	"farmledger/internal/domain/expense"
	"farmledger/internal/domain/forecast"
	"farmledger/internal/domain/period"
	"farmledger/internal/domain/section"
)

type forecastEnv struct {
	periods   *domaintest.PeriodRepo
	sections  *domaintest.SectionRepo
	batches   *domaintest.BatchRepo
	balances  *domaintest.DailyBalanceRepo
	expenses  *domaintest.ExpenseRepo
	prices    *domaintest.PriceRepo
	publisher *domaintest.Publisher
	svc       *forecast.Service

	period  *period.Period
	section *section.Section
}

func newForecastEnv(t *testing.T) *forecastEnv {
	t.Helper()
	ctx := context.Background()

	env := &forecastEnv{
		periods:   domaintest.NewPeriodRepo(),
		sections:  domaintest.NewSectionRepo(),
		batches:   domaintest.NewBatchRepo(),
		balances:  domaintest.NewDailyBalanceRepo(),
		expenses:  domaintest.NewExpenseRepo(),
		prices:    domaintest.NewPriceRepo(),
		publisher: &domaintest.Publisher{},
	}
	env.svc = forecast.NewService(env.prices, env.periods, env.sections, env.batches,
		env.balances, env.expenses, domaintest.TxManager{}, env.publisher)

	env.period = period.New("2026 Q1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, env.periods.Create(ctx, env.period))

	env.section = section.New("house-1")
	require.NoError(t, env.sections.Create(ctx, env.section))
	return env
}

func (e *forecastEnv) linkPeriod() {
	e.section.ActivePeriodID = &e.period.ID
	e.section.Status = section.StatusActive
}

func (e *forecastEnv) seedBatch(t *testing.T, chicksIn, chicksOut int) *batch.Batch {
	t.Helper()
	b := &batch.Batch{
		BaseRecord:     entity.NewBaseRecord(),
		SectionID:      e.section.ID,
		PeriodID:       &e.period.ID,
		StartedAt:      time.Now().UTC().AddDate(0, 0, -30),
		ExpectedEndAt:  time.Now().UTC().AddDate(0, 0, 15),
		TotalChicksIn:  chicksIn,
		TotalChicksOut: chicksOut,
		Status:         batch.StatusActive,
	}
	require.NoError(t, e.batches.Create(context.Background(), b))
	e.section.ActiveBatchID = &b.ID
	return b
}

func (e *forecastEnv) setPrice(t *testing.T, sectionScoped bool, price string) {
	t.Helper()
	in := forecast.SetPriceInput{
		PeriodID:   e.period.ID,
		PricePerKg: types.MustMoney(price),
		ActorID:    "mgr-1",
	}
	if sectionScoped {
		in.SectionID = &e.section.ID
	}
	_, err := e.svc.SetPrice(context.Background(), in)
	require.NoError(t, err)
}

func TestSectionForecast_BlockedCascade(t *testing.T) {
	env := newForecastEnv(t)
	ctx := context.Background()

	// No period link.
	fc, err := env.svc.SectionForecast(ctx, env.section.ID)
	require.NoError(t, err)
	assert.Equal(t, forecast.StatusBlocked, fc.Status)
	assert.Equal(t, forecast.ReasonNoActivePeriod, fc.Reason)

	// Linked, but no live batch.
	env.linkPeriod()
	fc, err = env.svc.SectionForecast(ctx, env.section.ID)
	require.NoError(t, err)
	assert.Equal(t, forecast.ReasonNoBatch, fc.Reason)

	// Batch, but no price assumption.
	b := env.seedBatch(t, 1000, 0)
	fc, err = env.svc.SectionForecast(ctx, env.section.ID)
	require.NoError(t, err)
	assert.Equal(t, forecast.ReasonPriceNotSet, fc.Reason)

	// Price, but no weight ever reported.
	env.setPrice(t, false, "45000")
	fc, err = env.svc.SectionForecast(ctx, env.section.ID)
	require.NoError(t, err)
	assert.Equal(t, forecast.ReasonInsufficientData, fc.Reason)

	// All preconditions met.
	require.NoError(t, env.balances.UpsertAvgWeight(ctx, b.ID, time.Now(), types.MustMoney("2")))
	fc, err = env.svc.SectionForecast(ctx, env.section.ID)
	require.NoError(t, err)
	assert.Equal(t, forecast.StatusSuccess, fc.Status)
}

func TestSectionForecast_ClosedPeriodBlocks(t *testing.T) {
	env := newForecastEnv(t)
	env.linkPeriod()
	env.period.MarkClosed(time.Now())

	fc, err := env.svc.SectionForecast(context.Background(), env.section.ID)
	require.NoError(t, err)
	assert.Equal(t, forecast.ReasonNoActivePeriod, fc.Reason)
}

func TestSectionForecast_Estimates(t *testing.T) {
	env := newForecastEnv(t)
	ctx := context.Background()
	env.linkPeriod()

	b := env.seedBatch(t, 1000, 100)
	env.setPrice(t, true, "45000")
	require.NoError(t, env.balances.UpsertAvgWeight(ctx, b.ID, time.Now(), types.MustMoney("2")))

	// 20 deaths on the ledger.
	openingWithDeaths(t, env, b, 20)

	// 10,000,000 of section-scoped costs.
	sectionID := env.section.ID
	require.NoError(t, env.expenses.Create(ctx, &expense.PeriodExpense{
		BaseRecord:  entity.NewBaseRecord(),
		PeriodID:    env.period.ID,
		SectionID:   &sectionID,
		Category:    expense.CategoryFeed,
		Amount:      types.MustMoney("10000000"),
		ExpenseDate: time.Now().UTC(),
		Source:      expense.SourceManual,
	}))

	fc, err := env.svc.SectionForecast(ctx, env.section.ID)
	require.NoError(t, err)
	require.Equal(t, forecast.StatusSuccess, fc.Status)

	// alive = 1000 - 20 - 100 = 880
	assert.Equal(t, 880, fc.AliveChicks)
	// revenue = 880 * 2kg * 45000 = 79,200,000
	assert.True(t, fc.EstimatedRevenue.Equal(types.MustMoney("79200000")), "got %s", fc.EstimatedRevenue)
	// 10% of the flock already sold, so 90% of costs remain: 9,000,000
	assert.True(t, fc.RemainingCosts.Equal(types.MustMoney("9000000")), "got %s", fc.RemainingCosts)
	assert.True(t, fc.EstimatedProfit.Equal(types.MustMoney("70200000")), "got %s", fc.EstimatedProfit)
}

func TestSectionForecast_FallsBackToPeriodWidePrice(t *testing.T) {
	env := newForecastEnv(t)
	ctx := context.Background()
	env.linkPeriod()
	b := env.seedBatch(t, 1000, 0)
	require.NoError(t, env.balances.UpsertAvgWeight(ctx, b.ID, time.Now(), types.MustMoney("2")))

	env.setPrice(t, false, "40000") // period-wide default

	fc, err := env.svc.SectionForecast(ctx, env.section.ID)
	require.NoError(t, err)
	require.Equal(t, forecast.StatusSuccess, fc.Status)
	assert.True(t, fc.PricePerKg.Equal(types.MustMoney("40000")))

	// A section-scoped price takes precedence once set.
	env.setPrice(t, true, "47000")
	fc, err = env.svc.SectionForecast(ctx, env.section.ID)
	require.NoError(t, err)
	assert.True(t, fc.PricePerKg.Equal(types.MustMoney("47000")))
}

func TestSetPrice_DeactivatesPrior(t *testing.T) {
	env := newForecastEnv(t)
	ctx := context.Background()

	env.setPrice(t, false, "40000")
	env.setPrice(t, false, "42000")

	active, err := env.prices.FindActive(ctx, env.period.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.True(t, active.PricePerKg.Equal(types.MustMoney("42000")))

	all, err := env.prices.ListByPeriod(ctx, env.period.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2, "history is kept")

	assert.Contains(t, env.publisher.Kinds(), events.KindForecastPriceSet)
}

func TestSetPrice_ClosedPeriodRejected(t *testing.T) {
	env := newForecastEnv(t)
	env.period.MarkClosed(time.Now())

	_, err := env.svc.SetPrice(context.Background(), forecast.SetPriceInput{
		PeriodID:   env.period.ID,
		PricePerKg: types.MustMoney("45000"),
		ActorID:    "mgr-1",
	})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePeriodClosed, appErr.Code)
}

func TestSimulatePartialSale(t *testing.T) {
	env := newForecastEnv(t)
	ctx := context.Background()
	env.linkPeriod()
	b := env.seedBatch(t, 1000, 100)
	env.setPrice(t, true, "45000")
	require.NoError(t, env.balances.UpsertAvgWeight(ctx, b.ID, time.Now(), types.MustMoney("2")))
	openingWithDeaths(t, env, b, 20) // alive = 880

	sim, err := env.svc.SimulatePartialSale(ctx, env.section.ID, 100)
	require.NoError(t, err)
	require.Equal(t, forecast.StatusSuccess, sim.Status)

	// per chick: 2kg * 45000 = 90,000
	assert.Equal(t, 100, sim.SoldChicks)
	assert.Equal(t, 780, sim.RemainingChicks)
	assert.True(t, sim.SoldRevenue.Equal(types.MustMoney("9000000")), "got %s", sim.SoldRevenue)
	assert.True(t, sim.RemainingRevenue.Equal(types.MustMoney("70200000")), "got %s", sim.RemainingRevenue)
}

func TestSimulatePartialSale_ExceedingFlockRejected(t *testing.T) {
	env := newForecastEnv(t)
	ctx := context.Background()
	env.linkPeriod()
	b := env.seedBatch(t, 1000, 0)
	env.setPrice(t, true, "45000")
	require.NoError(t, env.balances.UpsertAvgWeight(ctx, b.ID, time.Now(), types.MustMoney("2")))

	_, err := env.svc.SimulatePartialSale(ctx, env.section.ID, 1001)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestSimulatePartialSale_BlockedPassesThrough(t *testing.T) {
	env := newForecastEnv(t)

	sim, err := env.svc.SimulatePartialSale(context.Background(), env.section.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, forecast.StatusBlocked, sim.Status)
	assert.Equal(t, forecast.ReasonNoActivePeriod, sim.Reason)
}

// openingWithDeaths seeds one ledger day carrying the given death count.
func openingWithDeaths(t *testing.T, env *forecastEnv, b *batch.Batch, deaths int) {
	t.Helper()
	rec := dailybalance.NewOpening(b.ID, b.StartedAt, b.TotalChicksIn)
	rec.Deaths = deaths
	rec.Recompute()
	require.NoError(t, env.balances.Create(context.Background(), rec))
}
