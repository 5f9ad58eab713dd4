package closing_test

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
	"farmledger/internal/domain/closing"
	"farmledger/internal/domain/dailybalance"
	"farmledger/internal/domain/domaintest"
	"farmledger/internal/domain/expense"
	"farmledger/internal/domain/incident"
	"farmledger/internal/domain/payroll"
	"farmledger/internal/domain/period"
	"farmledger/internal/domain/section"
)

type closingEnv struct {
	periods   *domaintest.PeriodRepo
	sections  *domaintest.SectionRepo
	batches   *domaintest.BatchRepo
	outs      *domaintest.ChickOutRepo
	incidents *domaintest.IncidentRepo
	balances  *domaintest.DailyBalanceRepo
	expenses  *domaintest.ExpenseRepo
	payroll   *domaintest.PayrollRepo
	svc       *closing.Service

	period  *period.Period
	section *section.Section
	batch   *batch.Batch
}

func newClosingEnv(t *testing.T) *closingEnv {
	t.Helper()
	ctx := context.Background()

	env := &closingEnv{
		periods:   domaintest.NewPeriodRepo(),
		sections:  domaintest.NewSectionRepo(),
		batches:   domaintest.NewBatchRepo(),
		incidents: domaintest.NewIncidentRepo(),
		balances:  domaintest.NewDailyBalanceRepo(),
		expenses:  domaintest.NewExpenseRepo(),
		payroll:   domaintest.NewPayrollRepo(),
	}
	env.outs = domaintest.NewChickOutRepo(env.batches)

	payrollSvc := payroll.NewService(env.payroll, env.periods, env.expenses, domaintest.TxManager{})
	env.svc = closing.NewService(env.periods, env.sections, env.batches, env.outs,
		env.incidents, env.balances, payrollSvc, domaintest.TxManager{}, &domaintest.Publisher{})

	env.period = period.New("2026 Q1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, env.periods.Create(ctx, env.period))

	env.section = section.New("house-1")
	env.section.Status = section.StatusPartialOut
	env.section.ActivePeriodID = &env.period.ID
	require.NoError(t, env.sections.Create(ctx, env.section))

	env.batch = &batch.Batch{
		BaseRecord:    entity.NewBaseRecord(),
		SectionID:     env.section.ID,
		PeriodID:      &env.period.ID,
		StartedAt:     time.Now().UTC().AddDate(0, 0, -45),
		ExpectedEndAt: time.Now().UTC(),
		TotalChicksIn: 10000,
		Status:        batch.StatusPartialOut,
	}
	require.NoError(t, env.batches.Create(ctx, env.batch))
	env.section.ActiveBatchID = &env.batch.ID

	return env
}

// addSale records a chick-out for the env's batch, optionally completed.
func (e *closingEnv) addSale(t *testing.T, count int, complete bool) *chickout.ChickOut {
	t.Helper()
	c := &chickout.ChickOut{
		BaseRecord:    entity.NewBaseRecord(),
		SectionID:     e.section.ID,
		BatchID:       e.batch.ID,
		Date:          time.Now().UTC(),
		Count:         count,
		VehicleNumber: "27A-1",
		Status:        chickout.StatusIncomplete,
	}
	if complete {
		c.Complete(types.MustMoney("1000"), types.Zero(), types.MustMoney("45000"), "acct-1", time.Now())
	}
	require.NoError(t, e.outs.Create(context.Background(), c))
	return c
}

func requireBlocked(t *testing.T, err error, reason string) {
	t.Helper()
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok, "expected an app error, got %v", err)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
	assert.Equal(t, reason, appErr.Details["reason"])
}

func TestCloseBatch_BlockedByIncompleteChickOut(t *testing.T) {
	env := newClosingEnv(t)
	ctx := context.Background()

	sale := env.addSale(t, 10000, false)

	_, err := env.svc.CloseBatch(ctx, env.batch.ID, nil, "mgr-1")
	requireBlocked(t, err, apperror.ReasonIncompleteChickOuts)

	// Completing the open sale unblocks the close.
	sale.Complete(types.MustMoney("20000"), types.Zero(), types.MustMoney("45000"), "acct-1", time.Now())

	b, err := env.svc.CloseBatch(ctx, env.batch.ID, nil, "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, batch.StatusClosed, b.Status)
	assert.Equal(t, section.StatusCleaning, env.section.Status)
	assert.Nil(t, env.section.ActiveBatchID)
}

func TestCloseBatch_CommitsWithReadTimeVersions(t *testing.T) {
	env := newClosingEnv(t)
	ctx := context.Background()
	env.addSale(t, 10000, true)

	batchVersion := env.batch.Version
	sectionVersion := env.section.Version

	_, err := env.svc.CloseBatch(ctx, env.batch.ID, nil, "mgr-1")
	require.NoError(t, err)

	// The store bumps each version on commit; the mutators leave it
	// alone, so the close matches the read-time version on the first try.
	assert.Equal(t, batchVersion+1, env.batch.Version)
	assert.Equal(t, sectionVersion+1, env.section.Version)

	// A write carrying an already-committed version is a lost update.
	stale := *env.batch
	stale.Version = batchVersion
	err = env.batches.Update(ctx, &stale)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConcurrentModification, appErr.Code)
}

func TestCloseBatch_RequiresCompletedSale(t *testing.T) {
	env := newClosingEnv(t)

	_, err := env.svc.CloseBatch(context.Background(), env.batch.ID, nil, "mgr-1")
	requireBlocked(t, err, apperror.ReasonNoCompletedSale)
}

func TestCloseBatch_BlockedByUnresolvedIncident(t *testing.T) {
	env := newClosingEnv(t)
	ctx := context.Background()

	env.addSale(t, 10000, true)

	inc := &incident.Incident{
		BaseRecord:      entity.NewBaseRecord(),
		SectionID:       env.section.ID,
		PeriodID:        env.period.ID,
		Description:     "broken ventilation fan",
		RequiresExpense: true,
		Status:          incident.StatusOpen,
	}
	require.NoError(t, env.incidents.Create(ctx, inc))

	_, err := env.svc.CloseBatch(ctx, env.batch.ID, nil, "mgr-1")
	requireBlocked(t, err, apperror.ReasonUnresolvedIncidents)

	// A resolved incident no longer blocks.
	cost := types.MustMoney("500000")
	inc.MarkResolved(&cost, "mgr-1", time.Now())

	_, err = env.svc.CloseBatch(ctx, env.batch.ID, nil, "mgr-1")
	require.NoError(t, err)
}

func TestCloseBatch_AlreadyClosedRejected(t *testing.T) {
	env := newClosingEnv(t)
	env.batch.MarkClosed(time.Now())

	_, err := env.svc.CloseBatch(context.Background(), env.batch.ID, nil, "mgr-1")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
}

func TestCloseBatch_SealsBalances(t *testing.T) {
	env := newClosingEnv(t)
	ctx := context.Background()

	env.addSale(t, 10000, true)
	require.NoError(t, env.balances.Create(ctx,
		dailybalance.NewOpening(env.batch.ID, env.batch.StartedAt, env.batch.TotalChicksIn)))

	_, err := env.svc.CloseBatch(ctx, env.batch.ID, nil, "mgr-1")
	require.NoError(t, err)

	recs, err := env.balances.ListByBatch(ctx, env.batch.ID)
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	for _, rec := range recs {
		assert.True(t, rec.IsClosed)
	}
}

func TestClosePeriod_BlockedByLiveBatch(t *testing.T) {
	env := newClosingEnv(t)

	_, err := env.svc.ClosePeriod(context.Background(), env.period.ID, "mgr-1")
	requireBlocked(t, err, apperror.ReasonActiveBatches)
}

func TestClosePeriod_BlockedByIncompleteChickOut(t *testing.T) {
	env := newClosingEnv(t)

	// An incomplete sale on an already-closed batch: the only remaining
	// blocker is the open financial loop.
	env.addSale(t, 10000, false)
	env.batch.MarkClosed(time.Now())

	_, err := env.svc.ClosePeriod(context.Background(), env.period.ID, "mgr-1")
	requireBlocked(t, err, apperror.ReasonIncompleteChickOuts)
}

func TestClosePeriod_FinalizesSalaries(t *testing.T) {
	env := newClosingEnv(t)
	ctx := context.Background()

	env.batch.MarkClosed(time.Now())

	a := &payroll.SalaryAssignment{
		BaseRecord:   entity.NewBaseRecord(),
		PeriodID:     env.period.ID,
		EmployeeID:   "emp-7",
		EmployeeName: "Nguyen Van A",
		BaseAmount:   types.MustMoney("3000000"),
	}
	require.NoError(t, env.payroll.CreateAssignment(ctx, a))
	require.NoError(t, env.payroll.CreateAdvance(ctx, &payroll.SalaryAdvance{
		BaseRecord: entity.NewBaseRecord(),
		PeriodID:   env.period.ID,
		EmployeeID: "emp-7",
		Amount:     types.MustMoney("1000000"),
	}))

	p, err := env.svc.ClosePeriod(ctx, env.period.ID, "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, period.StatusClosed, p.Status)
	assert.NotNil(t, p.EndDate)

	// The unpaid remainder (base minus advances) became a LABOR_FIXED line.
	lines, err := env.expenses.List(ctx, expense.ListFilter{PeriodID: env.period.ID})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, expense.CategoryLaborFixed, lines[0].Category)
	assert.True(t, lines[0].Amount.Equal(types.MustMoney("2000000")), "got %s", lines[0].Amount)
}

func TestClosePeriod_AlreadyClosedRejected(t *testing.T) {
	env := newClosingEnv(t)
	env.batch.MarkClosed(time.Now())
	env.period.MarkClosed(time.Now())

	_, err := env.svc.ClosePeriod(context.Background(), env.period.ID, "mgr-1")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
}
