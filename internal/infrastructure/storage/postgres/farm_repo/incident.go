package farm_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"farmledger/internal/core/id"
	"farmledger/internal/domain/incident"
	"farmledger/internal/infrastructure/storage/postgres"
)

const incidentTable = "incidents"

// IncidentRepo implements incident.Repository.
type IncidentRepo struct {
	*BaseRepo[*incident.Incident]
}

var _ incident.Repository = (*IncidentRepo)(nil)

// NewIncidentRepo creates a new incident repository.
func NewIncidentRepo(txm *postgres.TxManager) *IncidentRepo {
	return &IncidentRepo{
		BaseRepo: NewBaseRepo(
			txm,
			incidentTable,
			postgres.ExtractDBColumns[incident.Incident](),
			func() *incident.Incident { return &incident.Incident{} },
		),
	}
}

// ListByPeriod returns the period's incidents, newest first.
func (r *IncidentRepo) ListByPeriod(ctx context.Context, periodID id.ID) ([]*incident.Incident, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"period_id": periodID}).
		OrderBy("created_at DESC")
	return r.selectMany(ctx, q)
}

// CountUnresolvedBySection counts OPEN expense-requiring incidents in the
// section.
func (r *IncidentRepo) CountUnresolvedBySection(ctx context.Context, sectionID id.ID) (int64, error) {
	return r.countWhere(ctx,
		squirrel.Eq{"section_id": sectionID},
		squirrel.Eq{"status": incident.StatusOpen},
		squirrel.Eq{"requires_expense": true},
	)
}

// CountUnresolvedByPeriod counts OPEN expense-requiring incidents across
// the period's sections.
func (r *IncidentRepo) CountUnresolvedByPeriod(ctx context.Context, periodID id.ID) (int64, error) {
	return r.countWhere(ctx,
		squirrel.Eq{"period_id": periodID},
		squirrel.Eq{"status": incident.StatusOpen},
		squirrel.Eq{"requires_expense": true},
	)
}
