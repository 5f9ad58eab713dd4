package expense_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/types"
	"farmledger/internal/domain/domaintest"
	"farmledger/internal/domain/events"
	"farmledger/internal/domain/expense"
	"farmledger/internal/domain/period"
)

type expenseEnv struct {
	expenses  *domaintest.ExpenseRepo
	periods   *domaintest.PeriodRepo
	publisher *domaintest.Publisher
	svc       *expense.Service

	period *period.Period
}

func newExpenseEnv(t *testing.T) *expenseEnv {
	t.Helper()
	env := &expenseEnv{
		expenses:  domaintest.NewExpenseRepo(),
		periods:   domaintest.NewPeriodRepo(),
		publisher: &domaintest.Publisher{},
	}
	env.svc = expense.NewService(env.expenses, env.periods, env.publisher)

	env.period = period.New("2026 Q1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, env.periods.Create(context.Background(), env.period))
	return env
}

func TestAdd_PostsManualLine(t *testing.T) {
	env := newExpenseEnv(t)

	e, err := env.svc.Add(context.Background(), expense.AddInput{
		PeriodID:    env.period.ID,
		Category:    expense.CategoryFeed,
		Amount:      types.MustMoney("2500000"),
		Description: "starter feed, 50 bags",
		ActorID:     "mgr-1",
	})
	require.NoError(t, err)
	assert.Equal(t, expense.SourceManual, e.Source)
	assert.False(t, e.ExpenseDate.IsZero(), "defaults to now when omitted")
	assert.Contains(t, env.publisher.Kinds(), events.KindExpenseAdded)
}

func TestAdd_ClosedPeriodRejected(t *testing.T) {
	env := newExpenseEnv(t)
	env.period.MarkClosed(time.Now())

	_, err := env.svc.Add(context.Background(), expense.AddInput{
		PeriodID: env.period.ID,
		Category: expense.CategoryFeed,
		Amount:   types.MustMoney("100"),
		ActorID:  "mgr-1",
	})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePeriodClosed, appErr.Code)
}

func TestAdd_NonPositiveAmountRejected(t *testing.T) {
	env := newExpenseEnv(t)

	_, err := env.svc.Add(context.Background(), expense.AddInput{
		PeriodID: env.period.ID,
		Category: expense.CategoryWater,
		Amount:   types.Zero(),
		ActorID:  "mgr-1",
	})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestAdd_UnknownCategoryRejected(t *testing.T) {
	env := newExpenseEnv(t)

	_, err := env.svc.Add(context.Background(), expense.AddInput{
		PeriodID: env.period.ID,
		Category: expense.Category("GOLF"),
		Amount:   types.MustMoney("100"),
		ActorID:  "mgr-1",
	})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestTotals(t *testing.T) {
	env := newExpenseEnv(t)
	ctx := context.Background()

	add := func(cat expense.Category, amount string) {
		_, err := env.svc.Add(ctx, expense.AddInput{
			PeriodID: env.period.ID,
			Category: cat,
			Amount:   types.MustMoney(amount),
			ActorID:  "mgr-1",
		})
		require.NoError(t, err)
	}
	add(expense.CategoryFeed, "3000000")
	add(expense.CategoryFeed, "2000000")
	add(expense.CategoryMedicine, "500000")

	total, err := env.svc.TotalForPeriod(ctx, env.period.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(types.MustMoney("5500000")), "got %s", total)

	byCat, err := env.svc.TotalsByCategory(ctx, env.period.ID)
	require.NoError(t, err)
	require.Len(t, byCat, 2)
	assert.Equal(t, expense.CategoryFeed, byCat[0].Category, "largest category first")
	assert.True(t, byCat[0].Total.Equal(types.MustMoney("5000000")))
}

func TestList_FiltersByCategory(t *testing.T) {
	env := newExpenseEnv(t)
	ctx := context.Background()

	for _, cat := range []expense.Category{expense.CategoryFeed, expense.CategoryTransport} {
		_, err := env.svc.Add(ctx, expense.AddInput{
			PeriodID: env.period.ID,
			Category: cat,
			Amount:   types.MustMoney("100000"),
			ActorID:  "mgr-1",
		})
		require.NoError(t, err)
	}

	cat := expense.CategoryTransport
	got, err := env.svc.List(ctx, expense.ListFilter{PeriodID: env.period.ID, Category: &cat})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, expense.CategoryTransport, got[0].Category)
}
