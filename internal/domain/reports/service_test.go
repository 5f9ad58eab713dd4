package reports_test

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
	"farmledger/internal/domain/payroll"
	"farmledger/internal/domain/period"
	"farmledger/internal/domain/reports"
	"farmledger/internal/domain/section"
)

type reportsEnv struct {
	periods  *domaintest.PeriodRepo
	sections *domaintest.SectionRepo
	batches  *domaintest.BatchRepo
	outs     *domaintest.ChickOutRepo
	balances *domaintest.DailyBalanceRepo
	expenses *domaintest.ExpenseRepo
	svc      *reports.Service

	period  *period.Period
	section *section.Section
}

func newReportsEnv(t *testing.T) *reportsEnv {
	t.Helper()
	ctx := context.Background()

	env := &reportsEnv{
		periods:  domaintest.NewPeriodRepo(),
		sections: domaintest.NewSectionRepo(),
		batches:  domaintest.NewBatchRepo(),
		balances: domaintest.NewDailyBalanceRepo(),
		expenses: domaintest.NewExpenseRepo(),
	}
	env.outs = domaintest.NewChickOutRepo(env.batches)
	incidents := domaintest.NewIncidentRepo()
	payrollRepo := domaintest.NewPayrollRepo()

	payrollSvc := payroll.NewService(payrollRepo, env.periods, env.expenses, domaintest.TxManager{})
	guard := closing.NewService(env.periods, env.sections, env.batches, env.outs,
		incidents, env.balances, payrollSvc, domaintest.TxManager{}, &domaintest.Publisher{})
	reportRepo := domaintest.NewReportRepo(env.outs, env.batches)
	env.svc = reports.NewService(reportRepo, env.periods, env.batches, env.outs,
		env.balances, env.expenses, guard)

	env.period = period.New("2026 Q1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, env.periods.Create(ctx, env.period))

	env.section = section.New("house-1")
	env.section.ActivePeriodID = &env.period.ID
	require.NoError(t, env.sections.Create(ctx, env.section))
	return env
}

func (e *reportsEnv) seedBatch(t *testing.T, chicksIn int, closed bool) *batch.Batch {
	t.Helper()
	status := batch.StatusActive
	if closed {
		status = batch.StatusClosed
	}
	b := &batch.Batch{
		BaseRecord:    entity.NewBaseRecord(),
		SectionID:     e.section.ID,
		PeriodID:      &e.period.ID,
		StartedAt:     time.Now().UTC().AddDate(0, 0, -45),
		ExpectedEndAt: time.Now().UTC(),
		TotalChicksIn: chicksIn,
		Status:        status,
	}
	require.NoError(t, e.batches.Create(context.Background(), b))
	return b
}

// seedSale records a chick-out; complete ones carry the financial facts.
func (e *reportsEnv) seedSale(t *testing.T, b *batch.Batch, count int, weight, waste, price string) *chickout.ChickOut {
	t.Helper()
	c := &chickout.ChickOut{
		BaseRecord:    entity.NewBaseRecord(),
		SectionID:     b.SectionID,
		BatchID:       b.ID,
		Date:          time.Now().UTC(),
		Count:         count,
		VehicleNumber: "27A-1",
		Status:        chickout.StatusIncomplete,
	}
	if weight != "" {
		c.Complete(types.MustMoney(weight), types.MustMoney(waste), types.MustMoney(price), "acct-1", time.Now())
	}
	require.NoError(t, e.outs.Create(context.Background(), c))
	return c
}

func (e *reportsEnv) addExpense(t *testing.T, amount string) {
	t.Helper()
	require.NoError(t, e.expenses.Create(context.Background(), &expense.PeriodExpense{
		BaseRecord:  entity.NewBaseRecord(),
		PeriodID:    e.period.ID,
		Category:    expense.CategoryFeed,
		Amount:      types.MustMoney(amount),
		ExpenseDate: time.Now().UTC(),
		Source:      expense.SourceManual,
	}))
}

func TestPeriodRevenue_CountsOnlyCompleteSales(t *testing.T) {
	env := newReportsEnv(t)
	ctx := context.Background()
	b := env.seedBatch(t, 10000, false)

	env.seedSale(t, b, 800, "2000", "10", "50000") // 90,000,000
	env.seedSale(t, b, 500, "", "", "")            // incomplete, no revenue yet

	revenue, err := env.svc.PeriodRevenue(ctx, env.period.ID)
	require.NoError(t, err)
	assert.True(t, revenue.Equal(types.MustMoney("90000000")), "got %s", revenue)
}

func TestPeriodPL_BlockedByOpenLoops(t *testing.T) {
	env := newReportsEnv(t)
	env.seedBatch(t, 10000, false)

	_, err := env.svc.PeriodPL(context.Background(), env.period.ID)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
	assert.Equal(t, apperror.ReasonActiveBatches, appErr.Details["reason"])
}

func TestPeriodPL_RevenueMinusExpenses(t *testing.T) {
	env := newReportsEnv(t)
	ctx := context.Background()
	b := env.seedBatch(t, 1000, true)

	env.seedSale(t, b, 800, "2000", "10", "50000") // 90,000,000
	env.addExpense(t, "30000000")

	pl, err := env.svc.PeriodPL(ctx, env.period.ID)
	require.NoError(t, err)
	assert.True(t, pl.TotalRevenue.Equal(types.MustMoney("90000000")))
	assert.True(t, pl.TotalExpenses.Equal(types.MustMoney("30000000")))
	assert.True(t, pl.Profit.Equal(types.MustMoney("60000000")))
	assert.True(t, pl.IsProfitable)
}

func TestPeriodKPI_Ratios(t *testing.T) {
	env := newReportsEnv(t)
	ctx := context.Background()
	b := env.seedBatch(t, 1000, true)

	env.seedSale(t, b, 800, "2000", "10", "50000") // 90,000,000 revenue
	env.addExpense(t, "30000000")

	kpi, err := env.svc.PeriodKPI(ctx, env.period.ID)
	require.NoError(t, err)

	assert.Equal(t, 1000, kpi.Totals.TotalChicksIn)
	assert.Equal(t, 800, kpi.Totals.FinalChicksOut)
	assert.True(t, kpi.Totals.Profit.Equal(types.MustMoney("60000000")))

	assert.Equal(t, "66.67", kpi.ProfitMarginPercent.StringFixed(2))
	assert.True(t, kpi.CostPerChick.Equal(types.MustMoney("30000")), "got %s", kpi.CostPerChick)
	assert.True(t, kpi.RevenuePerChick.Equal(types.MustMoney("112500")), "got %s", kpi.RevenuePerChick)
	assert.True(t, kpi.ProfitPerChick.Equal(types.MustMoney("75000")), "got %s", kpi.ProfitPerChick)

	require.Len(t, kpi.ExpensesByCategory, 1)
	assert.Equal(t, expense.CategoryFeed, kpi.ExpensesByCategory[0].Category)
}

func TestPeriodKPI_EmptyPeriodReportsZeros(t *testing.T) {
	env := newReportsEnv(t)

	// KPI runs no close guards and never divides by zero.
	kpi, err := env.svc.PeriodKPI(context.Background(), env.period.ID)
	require.NoError(t, err)

	assert.True(t, kpi.ProfitMarginPercent.IsZero())
	assert.True(t, kpi.CostPerChick.IsZero())
	assert.True(t, kpi.RevenuePerChick.IsZero())
	assert.True(t, kpi.ProfitPerChick.IsZero())
}

func TestBatchSummary_Conservation(t *testing.T) {
	env := newReportsEnv(t)
	ctx := context.Background()
	b := env.seedBatch(t, 1000, false)
	b.TotalChicksOut = 800

	opening := dailybalance.NewOpening(b.ID, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 1000)
	opening.Deaths = 50
	opening.ChickOut = 800
	opening.Recompute()
	require.NoError(t, env.balances.Create(ctx, opening))

	env.seedSale(t, b, 800, "2000", "0", "45000")

	summary, err := env.svc.BatchSummary(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000, summary.TotalChicksIn)
	assert.Equal(t, 50, summary.TotalDeaths)
	assert.Equal(t, 800, summary.TotalChickOut)
	assert.Equal(t, 150, summary.FinalChickCount)
	assert.True(t, summary.Verification.Match)
}

func TestBatchSummary_ReportsMismatch(t *testing.T) {
	env := newReportsEnv(t)
	ctx := context.Background()
	b := env.seedBatch(t, 1000, false)
	b.TotalChicksOut = 800 // counter says 800

	opening := dailybalance.NewOpening(b.ID, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 1000)
	opening.ChickOut = 700 // ledger says 700
	opening.Recompute()
	require.NoError(t, env.balances.Create(ctx, opening))

	env.seedSale(t, b, 800, "2000", "0", "45000") // records say 800

	summary, err := env.svc.BatchSummary(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, summary.Verification.Match, "a mismatch is reported, never reconciled")
	assert.Equal(t, 700, summary.Verification.LedgerChickOut)
	assert.Equal(t, 800, summary.Verification.BatchChickOut)
	assert.Equal(t, 800, summary.Verification.RecordChickOut)
}
