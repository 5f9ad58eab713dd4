package farm_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
	"farmledger/internal/domain/dailybalance"
	"farmledger/internal/infrastructure/storage/postgres"
)

const (
	dailyBalanceTable = "daily_balances"
	batchWeightTable  = "batch_weights"
)

// DailyBalanceRepo implements dailybalance.Repository.
//
// The accumulate operations are single UPDATE statements that recompute
// end_of_day_chicks in place, so concurrent reports for the same day
// serialize on the row lock instead of racing a read-then-save cycle.
type DailyBalanceRepo struct {
	*BaseRepo[*dailybalance.DailyBalance]
}

var _ dailybalance.Repository = (*DailyBalanceRepo)(nil)

// NewDailyBalanceRepo creates a new daily balance repository.
func NewDailyBalanceRepo(txm *postgres.TxManager) *DailyBalanceRepo {
	return &DailyBalanceRepo{
		BaseRepo: NewBaseRepo(
			txm,
			dailyBalanceTable,
			postgres.ExtractDBColumns[dailybalance.DailyBalance](),
			func() *dailybalance.DailyBalance { return &dailybalance.DailyBalance{} },
		),
	}
}

// FindByBatchAndDate returns the day's record or nil when absent.
func (r *DailyBalanceRepo) FindByBatchAndDate(ctx context.Context, batchID id.ID, day time.Time) (*dailybalance.DailyBalance, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"batch_id": batchID}).
		Where(squirrel.Eq{"date": day}).
		Limit(1)

	b, found, err := r.findOne(ctx, q)
	if err != nil || !found {
		return nil, err
	}
	return b, nil
}

// FindLatestBefore returns the most recent record dated strictly before
// day, or nil.
func (r *DailyBalanceRepo) FindLatestBefore(ctx context.Context, batchID id.ID, day time.Time) (*dailybalance.DailyBalance, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"batch_id": batchID}).
		Where(squirrel.Lt{"date": day}).
		OrderBy("date DESC").
		Limit(1)

	b, found, err := r.findOne(ctx, q)
	if err != nil || !found {
		return nil, err
	}
	return b, nil
}

// AddDeaths atomically accumulates n deaths into the day's record.
func (r *DailyBalanceRepo) AddDeaths(ctx context.Context, batchID id.ID, day time.Time, n int) error {
	return r.accumulate(ctx, batchID, day, "deaths", n)
}

// AddChickOut atomically accumulates n removed chicks into the day's record.
func (r *DailyBalanceRepo) AddChickOut(ctx context.Context, batchID id.ID, day time.Time, n int) error {
	return r.accumulate(ctx, batchID, day, "chick_out", n)
}

// accumulate adds n to one movement column and recomputes the clamped
// end-of-day count in the same statement. On the right-hand side the
// incremented column still holds its pre-update value, so subtracting
// both columns plus the delta yields the new total.
func (r *DailyBalanceRepo) accumulate(ctx context.Context, batchID id.ID, day time.Time, column string, n int) error {
	stmt := fmt.Sprintf(`
		UPDATE %s
		SET %s = %s + $1,
		    end_of_day_chicks = GREATEST(0, start_of_day_chicks - deaths - chick_out - $1),
		    updated_at = now(),
		    version = version + 1
		WHERE batch_id = $2 AND date = $3`,
		dailyBalanceTable, column, column)

	result, err := r.Querier(ctx).Exec(ctx, stmt, n, batchID, day)
	if err != nil {
		return fmt.Errorf("accumulate %s: %w", column, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(dailyBalanceTable, fmt.Sprintf("%s/%s", batchID, day.Format("2006-01-02")))
	}
	return nil
}

// ListByBatch returns all records for a batch, oldest first.
func (r *DailyBalanceRepo) ListByBatch(ctx context.Context, batchID id.ID) ([]*dailybalance.DailyBalance, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"batch_id": batchID}).
		OrderBy("date ASC")
	return r.selectMany(ctx, q)
}

// SumByBatch returns total deaths and chick-outs as one grouped sum.
func (r *DailyBalanceRepo) SumByBatch(ctx context.Context, batchID id.ID) (int, int, error) {
	q := r.Builder().
		Select("COALESCE(SUM(deaths), 0)", "COALESCE(SUM(chick_out), 0)").
		From(dailyBalanceTable).
		Where(squirrel.Eq{"batch_id": batchID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("build sum: %w", err)
	}

	var deaths, chickOut int
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&deaths, &chickOut); err != nil {
		return 0, 0, fmt.Errorf("sum by batch: %w", err)
	}
	return deaths, chickOut, nil
}

// CloseForBatch marks every record of the batch closed.
func (r *DailyBalanceRepo) CloseForBatch(ctx context.Context, batchID id.ID) error {
	q := r.Builder().
		Update(dailyBalanceTable).
		Set("is_closed", true).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"batch_id": batchID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build close: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("close for batch: %w", err)
	}
	return nil
}

// UpsertAvgWeight records the day's reported average chick weight.
func (r *DailyBalanceRepo) UpsertAvgWeight(ctx context.Context, batchID id.ID, day time.Time, kg types.Money) error {
	stmt := fmt.Sprintf(`
		INSERT INTO %s (batch_id, date, avg_weight_kg, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (batch_id, date)
		DO UPDATE SET avg_weight_kg = EXCLUDED.avg_weight_kg, updated_at = now()`,
		batchWeightTable)

	if _, err := r.Querier(ctx).Exec(ctx, stmt, batchID, day, kg); err != nil {
		return fmt.Errorf("upsert avg weight: %w", err)
	}
	return nil
}

// FindLatestAvgWeight returns the most recent reported average weight, or
// nil when none was ever reported.
func (r *DailyBalanceRepo) FindLatestAvgWeight(ctx context.Context, batchID id.ID) (*types.Money, error) {
	q := r.Builder().
		Select("avg_weight_kg").
		From(batchWeightTable).
		Where(squirrel.Eq{"batch_id": batchID}).
		OrderBy("date DESC").
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var kg types.Money
	err = r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&kg)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest avg weight: %w", err)
	}
	return &kg, nil
}
