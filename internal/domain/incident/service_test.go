package incident_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
	"farmledger/internal/domain/domaintest"
	"farmledger/internal/domain/expense"
	"farmledger/internal/domain/incident"
	"farmledger/internal/domain/period"
)

type incidentEnv struct {
	periods   *domaintest.PeriodRepo
	incidents *domaintest.IncidentRepo
	expenses  *domaintest.ExpenseRepo
	svc       *incident.Service
	period    *period.Period
	sectionID id.ID
}

func newIncidentEnv(t *testing.T) *incidentEnv {
	t.Helper()
	env := &incidentEnv{
		periods:   domaintest.NewPeriodRepo(),
		incidents: domaintest.NewIncidentRepo(),
		expenses:  domaintest.NewExpenseRepo(),
		sectionID: id.New(),
	}
	env.svc = incident.NewService(env.incidents, env.periods, env.expenses,
		domaintest.TxManager{}, &domaintest.Publisher{})

	env.period = period.New("2026 Q1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, env.periods.Create(context.Background(), env.period))
	return env
}

func (e *incidentEnv) report(t *testing.T, requiresExpense bool) *incident.Incident {
	t.Helper()
	inc, err := e.svc.Report(context.Background(), incident.ReportInput{
		SectionID:       e.sectionID,
		PeriodID:        e.period.ID,
		Description:     "broken water pump",
		RequiresExpense: requiresExpense,
		ActorID:         "mgr-1",
	})
	require.NoError(t, err)
	return inc
}

func TestReport_StartsOpen(t *testing.T) {
	env := newIncidentEnv(t)
	inc := env.report(t, true)

	assert.Equal(t, incident.StatusOpen, inc.Status)
	assert.True(t, inc.RequiresExpense)

	n, err := env.incidents.CountUnresolvedBySection(context.Background(), env.sectionID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestResolve_RequiresRepairCost(t *testing.T) {
	env := newIncidentEnv(t)
	inc := env.report(t, true)

	_, err := env.svc.Resolve(context.Background(), inc.ID, nil, "mgr-1")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestResolve_PostsAssetRepairExpense(t *testing.T) {
	env := newIncidentEnv(t)
	ctx := context.Background()
	inc := env.report(t, true)

	cost := types.MustMoney("750000")
	inc, err := env.svc.Resolve(ctx, inc.ID, &cost, "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, incident.StatusResolved, inc.Status)

	lines, err := env.expenses.List(ctx, expense.ListFilter{PeriodID: env.period.ID})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, expense.CategoryAssetRepair, lines[0].Category)
	assert.True(t, lines[0].Amount.Equal(cost))
	require.NotNil(t, lines[0].IncidentID)
	assert.Equal(t, inc.ID, *lines[0].IncidentID)

	n, err := env.incidents.CountUnresolvedBySection(ctx, env.sectionID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestResolve_CosmeticIncidentNeedsNoCost(t *testing.T) {
	env := newIncidentEnv(t)
	ctx := context.Background()
	inc := env.report(t, false)

	inc, err := env.svc.Resolve(ctx, inc.ID, nil, "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, incident.StatusResolved, inc.Status)

	lines, err := env.expenses.List(ctx, expense.ListFilter{PeriodID: env.period.ID})
	require.NoError(t, err)
	assert.Empty(t, lines, "no expense line for a non-cost incident")
}

func TestResolve_TwiceRejected(t *testing.T) {
	env := newIncidentEnv(t)
	ctx := context.Background()
	inc := env.report(t, false)

	_, err := env.svc.Resolve(ctx, inc.ID, nil, "mgr-1")
	require.NoError(t, err)

	_, err = env.svc.Resolve(ctx, inc.ID, nil, "mgr-1")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
}

func TestResolve_ClosedPeriodRejected(t *testing.T) {
	env := newIncidentEnv(t)
	inc := env.report(t, false)
	env.period.MarkClosed(time.Now())

	_, err := env.svc.Resolve(context.Background(), inc.ID, nil, "mgr-1")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePeriodClosed, appErr.Code)
}
