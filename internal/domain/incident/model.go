// Package incident provides expense-requiring incident tracking.
// An unresolved incident flagged as cost-bearing blocks batch and period
// closing: a failure that has not been priced yet must not silently vanish
// from the P&L when the books shut.
package incident

import (
	"context"
	"time"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/entity"
	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
)

// Status is the incident resolution state.
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusResolved Status = "RESOLVED"
)

// Incident is a technical failure reported in a section.
type Incident struct {
	entity.BaseRecord

	SectionID id.ID `db:"section_id" json:"sectionId"`
	PeriodID  id.ID `db:"period_id" json:"periodId"`

	Description     string `db:"description" json:"description"`
	RequiresExpense bool   `db:"requires_expense" json:"requiresExpense"`
	Status          Status `db:"status" json:"status"`

	RepairCost *types.Money `db:"repair_cost" json:"repairCost,omitempty"`
	ResolvedAt *time.Time   `db:"resolved_at" json:"resolvedAt,omitempty"`
	ResolvedBy string       `db:"resolved_by" json:"resolvedBy,omitempty"`
}

// IsResolved reports whether the incident is settled.
func (i *Incident) IsResolved() bool {
	return i.Status == StatusResolved
}

// MarkResolved settles the incident.
func (i *Incident) MarkResolved(repairCost *types.Money, resolvedBy string, at time.Time) {
	i.Status = StatusResolved
	i.RepairCost = repairCost
	atUTC := at.UTC()
	i.ResolvedAt = &atUTC
	i.ResolvedBy = resolvedBy
	i.Touch()
}

// Validate implements entity.Validatable.
func (i *Incident) Validate(ctx context.Context) error {
	if id.IsNil(i.SectionID) {
		return apperror.NewValidation("section is required").
			WithDetail("field", "sectionId")
	}
	if id.IsNil(i.PeriodID) {
		return apperror.NewValidation("period is required").
			WithDetail("field", "periodId")
	}
	if i.Description == "" {
		return apperror.NewValidation("description is required").
			WithDetail("field", "description")
	}
	return nil
}
