package farm_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"farmledger/internal/domain/period"
	"farmledger/internal/infrastructure/storage/postgres"
)

const periodTable = "periods"

// PeriodRepo implements period.Repository.
type PeriodRepo struct {
	*BaseRepo[*period.Period]
}

var _ period.Repository = (*PeriodRepo)(nil)

// NewPeriodRepo creates a new period repository.
func NewPeriodRepo(txm *postgres.TxManager) *PeriodRepo {
	return &PeriodRepo{
		BaseRepo: NewBaseRepo(
			txm,
			periodTable,
			postgres.ExtractDBColumns[period.Period](),
			func() *period.Period { return &period.Period{} },
		),
	}
}

// List retrieves periods newest first.
func (r *PeriodRepo) List(ctx context.Context, filter period.ListFilter) ([]*period.Period, error) {
	q := r.baseSelect().OrderBy("start_date DESC")

	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	return r.selectMany(ctx, q)
}
