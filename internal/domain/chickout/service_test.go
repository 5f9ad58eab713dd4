package chickout_test

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
	"farmledger/internal/domain/chickout"
	"farmledger/internal/domain/dailybalance"
	"farmledger/internal/domain/domaintest"
	"farmledger/internal/domain/forecast"
	"farmledger/internal/domain/period"
	"farmledger/internal/domain/section"
)

type chickOutEnv struct {
	periods  *domaintest.PeriodRepo
	sections *domaintest.SectionRepo
	batches  *domaintest.BatchRepo
	balances *domaintest.DailyBalanceRepo
	outs     *domaintest.ChickOutRepo
	prices   *domaintest.PriceRepo
	svc      *chickout.Service

	period  *period.Period
	section *section.Section
	batch   *batch.Batch
}

func newChickOutEnv(t *testing.T, chicksIn int) *chickOutEnv {
	t.Helper()
	ctx := context.Background()

	env := &chickOutEnv{
		periods:  domaintest.NewPeriodRepo(),
		sections: domaintest.NewSectionRepo(),
		batches:  domaintest.NewBatchRepo(),
		balances: domaintest.NewDailyBalanceRepo(),
		prices:   domaintest.NewPriceRepo(),
	}
	env.outs = domaintest.NewChickOutRepo(env.batches)

	guard := batch.NewBalanceGuard(env.batches, env.sections)
	balanceSvc := dailybalance.NewService(env.balances, guard, domaintest.NewExpenseRepo(),
		domaintest.TxManager{}, &domaintest.Publisher{})
	env.svc = chickout.NewService(env.outs, env.batches, env.sections, env.periods,
		balanceSvc, env.prices, domaintest.TxManager{}, &domaintest.Publisher{})

	env.period = period.New("2026 Q1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, env.periods.Create(ctx, env.period))

	env.section = section.New("house-1")
	env.section.Status = section.StatusActive
	env.section.ActivePeriodID = &env.period.ID
	require.NoError(t, env.sections.Create(ctx, env.section))

	env.batch = &batch.Batch{
		BaseRecord:    entity.NewBaseRecord(),
		SectionID:     env.section.ID,
		PeriodID:      &env.period.ID,
		StartedAt:     time.Now().UTC(),
		ExpectedEndAt: time.Now().UTC().AddDate(0, 0, 45),
		TotalChicksIn: chicksIn,
		Status:        batch.StatusActive,
	}
	require.NoError(t, env.batches.Create(ctx, env.batch))
	env.section.ActiveBatchID = &env.batch.ID

	return env
}

func TestCreate_StartsIncompleteAndCounts(t *testing.T) {
	env := newChickOutEnv(t, 10000)
	ctx := context.Background()

	c, err := env.svc.Create(ctx, chickout.CreateInput{
		SectionID:     env.section.ID,
		Count:         800,
		VehicleNumber: "27A-123.45",
		ActorID:       "mgr-1",
	})
	require.NoError(t, err)

	assert.Equal(t, chickout.StatusIncomplete, c.Status)
	assert.Nil(t, c.TotalRevenue, "no money facts before completion")

	// Operational side effects land immediately.
	assert.Equal(t, 800, env.batch.TotalChicksOut)
	assert.Equal(t, batch.StatusPartialOut, env.batch.Status)
	assert.Equal(t, section.StatusPartialOut, env.section.Status)

	rec, err := env.balances.FindByBatchAndDate(ctx, env.batch.ID, time.Now())
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 800, rec.ChickOut)
	assert.Equal(t, 9200, rec.EndOfDayChicks)
}

func TestCreate_FinalClosesBatchSynchronously(t *testing.T) {
	env := newChickOutEnv(t, 10000)
	ctx := context.Background()

	c, err := env.svc.Create(ctx, chickout.CreateInput{
		SectionID:     env.section.ID,
		Count:         10000,
		VehicleNumber: "27A-123.45",
		IsFinal:       true,
		ActorID:       "mgr-1",
	})
	require.NoError(t, err)

	// The batch closes even though the chick-out is still INCOMPLETE.
	assert.Equal(t, chickout.StatusIncomplete, c.Status)
	assert.Equal(t, batch.StatusClosed, env.batch.Status)
	assert.Equal(t, section.StatusCleaning, env.section.Status)
	assert.Nil(t, env.section.ActiveBatchID)

	recs, err := env.balances.ListByBatch(ctx, env.batch.ID)
	require.NoError(t, err)
	for _, rec := range recs {
		assert.True(t, rec.IsClosed)
	}
}

func TestCreate_NoActiveBatchRejected(t *testing.T) {
	env := newChickOutEnv(t, 1000)
	env.section.ActiveBatchID = nil

	_, err := env.svc.Create(context.Background(), chickout.CreateInput{
		SectionID:     env.section.ID,
		Count:         100,
		VehicleNumber: "27A-1",
		ActorID:       "mgr-1",
	})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
}

func TestComplete_ComputesRevenue(t *testing.T) {
	env := newChickOutEnv(t, 10000)
	ctx := context.Background()

	c, err := env.svc.Create(ctx, chickout.CreateInput{
		SectionID:     env.section.ID,
		Count:         800,
		VehicleNumber: "27A-123.45",
		ActorID:       "mgr-1",
	})
	require.NoError(t, err)

	c, err = env.svc.Complete(ctx, c.ID, chickout.CompleteInput{
		TotalWeightKg: types.MustMoney("2000"),
		WastePercent:  types.MustMoney("10"),
		PricePerKg:    types.MustMoney("50000"),
		ActorID:       "acct-1",
	})
	require.NoError(t, err)

	assert.Equal(t, chickout.StatusComplete, c.Status)
	assert.True(t, c.NetWeightKg.Equal(types.MustMoney("1800")), "got %s", c.NetWeightKg)
	assert.True(t, c.TotalRevenue.Equal(types.MustMoney("90000000")), "got %s", c.TotalRevenue)
	assert.Equal(t, "acct-1", c.CompletedBy)

	// The real sale refreshed the section's price assumption.
	price, err := env.prices.FindActive(ctx, env.period.ID, &env.section.ID)
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Equal(t, forecast.SourceLastRealSale, price.Source)
	assert.True(t, price.PricePerKg.Equal(types.MustMoney("50000")))
}

func TestComplete_IsOneWay(t *testing.T) {
	env := newChickOutEnv(t, 10000)
	ctx := context.Background()

	c, err := env.svc.Create(ctx, chickout.CreateInput{
		SectionID: env.section.ID, Count: 500, VehicleNumber: "27A-1", ActorID: "mgr-1",
	})
	require.NoError(t, err)

	in := chickout.CompleteInput{
		TotalWeightKg: types.MustMoney("1000"),
		PricePerKg:    types.MustMoney("45000"),
		ActorID:       "acct-1",
	}
	_, err = env.svc.Complete(ctx, c.ID, in)
	require.NoError(t, err)

	_, err = env.svc.Complete(ctx, c.ID, in)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
}

func TestComplete_ClosedPeriodRejected(t *testing.T) {
	env := newChickOutEnv(t, 10000)
	ctx := context.Background()

	c, err := env.svc.Create(ctx, chickout.CreateInput{
		SectionID: env.section.ID, Count: 500, VehicleNumber: "27A-1", ActorID: "mgr-1",
	})
	require.NoError(t, err)

	env.period.MarkClosed(time.Now())

	_, err = env.svc.Complete(ctx, c.ID, chickout.CompleteInput{
		TotalWeightKg: types.MustMoney("1000"),
		PricePerKg:    types.MustMoney("45000"),
		ActorID:       "acct-1",
	})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePeriodClosed, appErr.Code)
}

func TestComplete_WasteOutOfRangeRejected(t *testing.T) {
	env := newChickOutEnv(t, 10000)
	ctx := context.Background()

	c, err := env.svc.Create(ctx, chickout.CreateInput{
		SectionID: env.section.ID, Count: 500, VehicleNumber: "27A-1", ActorID: "mgr-1",
	})
	require.NoError(t, err)

	for _, waste := range []string{"-1", "101"} {
		_, err := env.svc.Complete(ctx, c.ID, chickout.CompleteInput{
			TotalWeightKg: types.MustMoney("1000"),
			WastePercent:  types.MustMoney(waste),
			PricePerKg:    types.MustMoney("45000"),
			ActorID:       "acct-1",
		})
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok, "waste %s", waste)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	}
}
