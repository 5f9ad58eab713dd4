// Package report_repo provides the PostgreSQL implementation of the
// period-level report aggregations.
package report_repo

import (
	"context"
	"fmt"

	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
	"farmledger/internal/domain/reports"
	"farmledger/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository. Every query is a single
// grouped sum evaluated by the database; nothing is assembled row by row.
type ReportRepo struct {
	txm *postgres.TxManager
}

var _ reports.Repository = (*ReportRepo)(nil)

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

// PeriodRevenue sums totalRevenue across COMPLETE chick-outs of the
// period. INCOMPLETE records have NULL revenue and contribute nothing.
func (r *ReportRepo) PeriodRevenue(ctx context.Context, periodID id.ID) (types.Money, error) {
	const query = `
		SELECT COALESCE(SUM(c.total_revenue), 0)
		FROM chick_outs c
		JOIN batches b ON b.id = c.batch_id
		WHERE b.period_id = $1 AND c.status = 'COMPLETE'`

	var total types.Money
	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, query, periodID).Scan(&total); err != nil {
		return types.Zero(), fmt.Errorf("period revenue: %w", err)
	}
	return total, nil
}

// FinalChicksOut sums the count of COMPLETE chick-outs of the period.
func (r *ReportRepo) FinalChicksOut(ctx context.Context, periodID id.ID) (int, error) {
	const query = `
		SELECT COALESCE(SUM(c.count), 0)
		FROM chick_outs c
		JOIN batches b ON b.id = c.batch_id
		WHERE b.period_id = $1 AND c.status = 'COMPLETE'`

	var n int
	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, query, periodID).Scan(&n); err != nil {
		return 0, fmt.Errorf("final chicks out: %w", err)
	}
	return n, nil
}

// PeriodChicksIn sums TotalChicksIn across the period's batches.
func (r *ReportRepo) PeriodChicksIn(ctx context.Context, periodID id.ID) (int, error) {
	const query = `
		SELECT COALESCE(SUM(total_chicks_in), 0)
		FROM batches
		WHERE period_id = $1`

	var n int
	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, query, periodID).Scan(&n); err != nil {
		return 0, fmt.Errorf("period chicks in: %w", err)
	}
	return n, nil
}
