package farm_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
	"farmledger/internal/domain/expense"
	"farmledger/internal/infrastructure/storage/postgres"
)

const expenseTable = "period_expenses"

// ExpenseRepo implements expense.Repository. The ledger is append-only:
// there is deliberately no Update or Delete here.
type ExpenseRepo struct {
	*BaseRepo[*expense.PeriodExpense]
}

var _ expense.Repository = (*ExpenseRepo)(nil)

// NewExpenseRepo creates a new expense repository.
func NewExpenseRepo(txm *postgres.TxManager) *ExpenseRepo {
	return &ExpenseRepo{
		BaseRepo: NewBaseRepo(
			txm,
			expenseTable,
			postgres.ExtractDBColumns[expense.PeriodExpense](),
			func() *expense.PeriodExpense { return &expense.PeriodExpense{} },
		),
	}
}

// List retrieves expenses newest first.
func (r *ExpenseRepo) List(ctx context.Context, filter expense.ListFilter) ([]*expense.PeriodExpense, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"period_id": filter.PeriodID}).
		OrderBy("expense_date DESC")

	if filter.SectionID != nil {
		q = q.Where(squirrel.Eq{"section_id": *filter.SectionID})
	}
	if filter.Category != nil {
		q = q.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	return r.selectMany(ctx, q)
}

// SumByPeriod totals all expenses of the period.
func (r *ExpenseRepo) SumByPeriod(ctx context.Context, periodID id.ID) (types.Money, error) {
	return r.sumWhere(ctx, squirrel.Eq{"period_id": periodID})
}

// SumByPeriodSection totals expenses of the period scoped to a section.
func (r *ExpenseRepo) SumByPeriodSection(ctx context.Context, periodID, sectionID id.ID) (types.Money, error) {
	return r.sumWhere(ctx,
		squirrel.Eq{"period_id": periodID},
		squirrel.Eq{"section_id": sectionID},
	)
}

func (r *ExpenseRepo) sumWhere(ctx context.Context, conds ...squirrel.Sqlizer) (types.Money, error) {
	q := r.Builder().
		Select("COALESCE(SUM(amount), 0)").
		From(expenseTable)
	for _, c := range conds {
		q = q.Where(c)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return types.Zero(), fmt.Errorf("build sum: %w", err)
	}

	var total types.Money
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return types.Zero(), fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}

// SumByCategory totals expenses of the period grouped by category.
func (r *ExpenseRepo) SumByCategory(ctx context.Context, periodID id.ID) ([]expense.CategorySum, error) {
	q := r.Builder().
		Select("category", "COALESCE(SUM(amount), 0) AS total").
		From(expenseTable).
		Where(squirrel.Eq{"period_id": periodID}).
		GroupBy("category").
		OrderBy("total DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sum by category: %w", err)
	}

	var sums []expense.CategorySum
	if err := pgxscan.Select(ctx, r.Querier(ctx), &sums, sql, args...); err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	return sums, nil
}
