package farm_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"farmledger/internal/core/id"
	"farmledger/internal/domain/forecast"
	"farmledger/internal/infrastructure/storage/postgres"
)

const forecastPriceTable = "forecast_prices"

// ForecastPriceRepo implements forecast.PriceRepository.
type ForecastPriceRepo struct {
	*BaseRepo[*forecast.Price]
}

var _ forecast.PriceRepository = (*ForecastPriceRepo)(nil)

// NewForecastPriceRepo creates a new forecast price repository.
func NewForecastPriceRepo(txm *postgres.TxManager) *ForecastPriceRepo {
	return &ForecastPriceRepo{
		BaseRepo: NewBaseRepo(
			txm,
			forecastPriceTable,
			postgres.ExtractDBColumns[forecast.Price](),
			func() *forecast.Price { return &forecast.Price{} },
		),
	}
}

// Activate deactivates the prior active price of the same (period,
// section) scope and inserts the new one. Callers run it inside a
// transaction so both statements land together.
func (r *ForecastPriceRepo) Activate(ctx context.Context, p *forecast.Price) error {
	deact := r.Builder().
		Update(forecastPriceTable).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"period_id": p.PeriodID}).
		Where(squirrel.Eq{"is_active": true})
	deact = whereSectionScope(deact, p.SectionID)

	sql, args, err := deact.ToSql()
	if err != nil {
		return fmt.Errorf("build deactivate: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("deactivate prior price: %w", err)
	}

	return r.Create(ctx, p)
}

// FindActive returns the active price for the exact (period, section)
// scope, or nil.
func (r *ForecastPriceRepo) FindActive(ctx context.Context, periodID id.ID, sectionID *id.ID) (*forecast.Price, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"period_id": periodID}).
		Where(squirrel.Eq{"is_active": true}).
		Limit(1)
	if sectionID != nil {
		q = q.Where(squirrel.Eq{"section_id": *sectionID})
	} else {
		q = q.Where(squirrel.Eq{"section_id": nil})
	}

	p, found, err := r.findOne(ctx, q)
	if err != nil || !found {
		return nil, err
	}
	return p, nil
}

// ListByPeriod returns all price records of the period, newest first.
func (r *ForecastPriceRepo) ListByPeriod(ctx context.Context, periodID id.ID) ([]*forecast.Price, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"period_id": periodID}).
		OrderBy("created_at DESC")
	return r.selectMany(ctx, q)
}

func whereSectionScope(q squirrel.UpdateBuilder, sectionID *id.ID) squirrel.UpdateBuilder {
	if sectionID != nil {
		return q.Where(squirrel.Eq{"section_id": *sectionID})
	}
	return q.Where(squirrel.Eq{"section_id": nil})
}
