package farm_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"farmledger/internal/core/id"
	"farmledger/internal/domain/chickout"
	"farmledger/internal/infrastructure/storage/postgres"
)

const chickOutTable = "chick_outs"

// ChickOutRepo implements chickout.Repository.
type ChickOutRepo struct {
	*BaseRepo[*chickout.ChickOut]
}

var _ chickout.Repository = (*ChickOutRepo)(nil)

// NewChickOutRepo creates a new chick-out repository.
func NewChickOutRepo(txm *postgres.TxManager) *ChickOutRepo {
	return &ChickOutRepo{
		BaseRepo: NewBaseRepo(
			txm,
			chickOutTable,
			postgres.ExtractDBColumns[chickout.ChickOut](),
			func() *chickout.ChickOut { return &chickout.ChickOut{} },
		),
	}
}

// ListByBatch returns the batch's chick-outs, oldest first.
func (r *ChickOutRepo) ListByBatch(ctx context.Context, batchID id.ID) ([]*chickout.ChickOut, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"batch_id": batchID}).
		OrderBy("date ASC")
	return r.selectMany(ctx, q)
}

// ListBySection returns the section's chick-outs, newest first.
func (r *ChickOutRepo) ListBySection(ctx context.Context, sectionID id.ID) ([]*chickout.ChickOut, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"section_id": sectionID}).
		OrderBy("date DESC")
	return r.selectMany(ctx, q)
}

// CountIncompleteByBatch counts INCOMPLETE records for the batch.
func (r *ChickOutRepo) CountIncompleteByBatch(ctx context.Context, batchID id.ID) (int64, error) {
	return r.countWhere(ctx,
		squirrel.Eq{"batch_id": batchID},
		squirrel.Eq{"status": chickout.StatusIncomplete},
	)
}

// CountIncompleteByPeriod counts INCOMPLETE records across every batch of
// the period, joining through the batch table.
func (r *ChickOutRepo) CountIncompleteByPeriod(ctx context.Context, periodID id.ID) (int64, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From(chickOutTable + " c").
		Join(batchTable + " b ON b.id = c.batch_id").
		Where(squirrel.Eq{"b.period_id": periodID}).
		Where(squirrel.Eq{"c.status": chickout.StatusIncomplete})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int64
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count incomplete by period: %w", err)
	}
	return n, nil
}

// HasCompleteByBatch reports whether any COMPLETE record exists.
func (r *ChickOutRepo) HasCompleteByBatch(ctx context.Context, batchID id.ID) (bool, error) {
	q := r.Builder().
		Select("1").
		From(chickOutTable).
		Where(squirrel.Eq{"batch_id": batchID}).
		Where(squirrel.Eq{"status": chickout.StatusComplete}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if postgres.IsNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("has complete by batch: %w", err)
	}
	return true, nil
}

// SumCountsByBatch sums Count across all records of the batch.
func (r *ChickOutRepo) SumCountsByBatch(ctx context.Context, batchID id.ID) (int64, error) {
	q := r.Builder().
		Select("COALESCE(SUM(count), 0)").
		From(chickOutTable).
		Where(squirrel.Eq{"batch_id": batchID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sum: %w", err)
	}

	var n int64
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("sum counts by batch: %w", err)
	}
	return n, nil
}
