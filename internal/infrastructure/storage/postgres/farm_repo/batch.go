package farm_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/id"
	"farmledger/internal/domain/batch"
	"farmledger/internal/infrastructure/storage/postgres"
)

const batchTable = "batches"

// liveBatchConstraint is the partial unique index on (section_id)
// WHERE status != 'CLOSED'. It is what makes the one-live-batch rule
// race-safe: two concurrent creators cannot both commit.
const liveBatchConstraint = "batches_one_live_per_section"

// BatchRepo implements batch.Repository.
type BatchRepo struct {
	*BaseRepo[*batch.Batch]
}

var _ batch.Repository = (*BatchRepo)(nil)

// NewBatchRepo creates a new batch repository.
func NewBatchRepo(txm *postgres.TxManager) *BatchRepo {
	return &BatchRepo{
		BaseRepo: NewBaseRepo(
			txm,
			batchTable,
			postgres.ExtractDBColumns[batch.Batch](),
			func() *batch.Batch { return &batch.Batch{} },
		),
	}
}

// Create inserts a batch. Violating the one-live-batch index surfaces as
// InvalidState, matching what the service-level pre-check would have said.
func (r *BatchRepo) Create(ctx context.Context, b *batch.Batch) error {
	err := r.BaseRepo.Create(ctx, b)
	if err != nil && postgres.IsUniqueViolation(err, liveBatchConstraint) {
		return apperror.NewInvalidState("section already has a live batch").
			WithDetail("section_id", b.SectionID.String()).
			WithCause(err)
	}
	return err
}

// FindLiveBySection returns the section's non-CLOSED batch, or nil.
func (r *BatchRepo) FindLiveBySection(ctx context.Context, sectionID id.ID) (*batch.Batch, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"section_id": sectionID}).
		Where(squirrel.NotEq{"status": batch.StatusClosed}).
		Limit(1)

	b, found, err := r.findOne(ctx, q)
	if err != nil || !found {
		return nil, err
	}
	return b, nil
}

// CountLiveByPeriod counts non-CLOSED batches referencing the period.
func (r *BatchRepo) CountLiveByPeriod(ctx context.Context, periodID id.ID) (int64, error) {
	return r.countWhere(ctx,
		squirrel.Eq{"period_id": periodID},
		squirrel.NotEq{"status": batch.StatusClosed},
	)
}

// ListByPeriod returns all batches of the period, oldest first.
func (r *BatchRepo) ListByPeriod(ctx context.Context, periodID id.ID) ([]*batch.Batch, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"period_id": periodID}).
		OrderBy("started_at ASC")
	return r.selectMany(ctx, q)
}

// ListBySection returns all batches of the section, oldest first.
func (r *BatchRepo) ListBySection(ctx context.Context, sectionID id.ID) ([]*batch.Batch, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"section_id": sectionID}).
		OrderBy("started_at ASC")
	return r.selectMany(ctx, q)
}

// IncrementChicksOut atomically adds n to the operational out-counter.
func (r *BatchRepo) IncrementChicksOut(ctx context.Context, batchID id.ID, n int) error {
	q := r.Builder().
		Update(batchTable).
		Set("total_chicks_out", squirrel.Expr("total_chicks_out + ?", n)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": batchID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build increment: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("increment chicks out: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(batchTable, batchID.String())
	}
	return nil
}
