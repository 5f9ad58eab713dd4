package batch_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmledger/internal/core/apperror"
	"farmledger/internal/domain/batch"
	"farmledger/internal/domain/domaintest"
	"farmledger/internal/domain/period"
	"farmledger/internal/domain/section"
)

type batchEnv struct {
	periods  *domaintest.PeriodRepo
	sections *domaintest.SectionRepo
	batches  *domaintest.BatchRepo
	balances *domaintest.DailyBalanceRepo
	svc      *batch.Service
}

func newBatchEnv(t *testing.T) *batchEnv {
	t.Helper()
	env := &batchEnv{
		periods:  domaintest.NewPeriodRepo(),
		sections: domaintest.NewSectionRepo(),
		batches:  domaintest.NewBatchRepo(),
		balances: domaintest.NewDailyBalanceRepo(),
	}
	env.svc = batch.NewService(env.batches, env.sections, env.periods,
		env.balances, domaintest.TxManager{}, &domaintest.Publisher{})
	return env
}

func (e *batchEnv) seedSection(t *testing.T) (*section.Section, *period.Period) {
	t.Helper()
	ctx := context.Background()

	p := period.New("2026 Q1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, e.periods.Create(ctx, p))

	sec := section.New("house-1")
	sec.Status = section.StatusPreparing
	sec.ActivePeriodID = &p.ID
	require.NoError(t, e.sections.Create(ctx, sec))
	return sec, p
}

func TestCreate_OpensDayOneBalance(t *testing.T) {
	env := newBatchEnv(t)
	ctx := context.Background()
	sec, p := env.seedSection(t)

	b, err := env.svc.Create(ctx, batch.CreateInput{
		SectionID:     sec.ID,
		ExpectedEndAt: time.Now().AddDate(0, 0, 45),
		TotalChicksIn: 10000,
		ActorID:       "mgr-1",
	})
	require.NoError(t, err)

	assert.Equal(t, batch.StatusActive, b.Status)
	require.NotNil(t, b.PeriodID)
	assert.Equal(t, p.ID, *b.PeriodID)

	assert.Equal(t, section.StatusActive, sec.Status)
	require.NotNil(t, sec.ActiveBatchID)
	assert.Equal(t, b.ID, *sec.ActiveBatchID)

	rec, err := env.balances.FindByBatchAndDate(ctx, b.ID, time.Now())
	require.NoError(t, err)
	require.NotNil(t, rec, "day-one snapshot must exist")
	assert.Equal(t, 10000, rec.StartOfDayChicks)
	assert.Equal(t, 10000, rec.EndOfDayChicks)
}

func TestCreate_SecondLiveBatchRejected(t *testing.T) {
	env := newBatchEnv(t)
	ctx := context.Background()
	sec, _ := env.seedSection(t)

	in := batch.CreateInput{
		SectionID:     sec.ID,
		ExpectedEndAt: time.Now().AddDate(0, 0, 45),
		TotalChicksIn: 5000,
		ActorID:       "mgr-1",
	}
	_, err := env.svc.Create(ctx, in)
	require.NoError(t, err)

	_, err = env.svc.Create(ctx, in)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
	assert.Equal(t, apperror.ReasonActiveBatches, appErr.Details["reason"])
}

func TestCreate_ClosedPeriodRejected(t *testing.T) {
	env := newBatchEnv(t)
	ctx := context.Background()
	sec, p := env.seedSection(t)
	p.MarkClosed(time.Now())

	_, err := env.svc.Create(ctx, batch.CreateInput{
		SectionID:     sec.ID,
		ExpectedEndAt: time.Now().AddDate(0, 0, 45),
		TotalChicksIn: 5000,
		ActorID:       "mgr-1",
	})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePeriodClosed, appErr.Code)
}

func TestCreate_UnlinkedSectionRejected(t *testing.T) {
	env := newBatchEnv(t)
	ctx := context.Background()

	sec := section.New("house-2")
	require.NoError(t, env.sections.Create(ctx, sec))

	_, err := env.svc.Create(ctx, batch.CreateInput{
		SectionID:     sec.ID,
		ExpectedEndAt: time.Now().AddDate(0, 0, 45),
		TotalChicksIn: 5000,
		ActorID:       "mgr-1",
	})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
}

func TestCreate_NonPositiveChicksRejected(t *testing.T) {
	env := newBatchEnv(t)
	sec, _ := env.seedSection(t)

	_, err := env.svc.Create(context.Background(), batch.CreateInput{
		SectionID:     sec.ID,
		ExpectedEndAt: time.Now().AddDate(0, 0, 45),
		TotalChicksIn: 0,
		ActorID:       "mgr-1",
	})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
