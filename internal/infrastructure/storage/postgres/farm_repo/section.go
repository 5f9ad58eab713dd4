package farm_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"farmledger/internal/core/id"
	"farmledger/internal/domain/section"
	"farmledger/internal/infrastructure/storage/postgres"
)

const sectionTable = "sections"

// SectionRepo implements section.Repository.
type SectionRepo struct {
	*BaseRepo[*section.Section]
}

var _ section.Repository = (*SectionRepo)(nil)

// NewSectionRepo creates a new section repository.
func NewSectionRepo(txm *postgres.TxManager) *SectionRepo {
	return &SectionRepo{
		BaseRepo: NewBaseRepo(
			txm,
			sectionTable,
			postgres.ExtractDBColumns[section.Section](),
			func() *section.Section { return &section.Section{} },
		),
	}
}

// List retrieves all sections ordered by name.
func (r *SectionRepo) List(ctx context.Context) ([]*section.Section, error) {
	return r.selectMany(ctx, r.baseSelect().OrderBy("name ASC"))
}

// ListByPeriod retrieves sections linked to the given period.
func (r *SectionRepo) ListByPeriod(ctx context.Context, periodID id.ID) ([]*section.Section, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"active_period_id": periodID}).
		OrderBy("name ASC")
	return r.selectMany(ctx, q)
}
