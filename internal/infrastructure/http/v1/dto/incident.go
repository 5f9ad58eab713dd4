package dto

import (
	"github.com/shopspring/decimal"

	"farmledger/internal/core/id"
	"farmledger/internal/domain/incident"
)

// ReportIncidentRequest records a new technical incident.
type ReportIncidentRequest struct {
	SectionID       string `json:"sectionId" binding:"required"`
	PeriodID        string `json:"periodId" binding:"required"`
	Description     string `json:"description" binding:"required"`
	RequiresExpense bool   `json:"requiresExpense"`
}

// ToInput converts the request to a service input.
func (r *ReportIncidentRequest) ToInput(sectionID, periodID id.ID, actorID string) incident.ReportInput {
	return incident.ReportInput{
		SectionID:       sectionID,
		PeriodID:        periodID,
		Description:     r.Description,
		RequiresExpense: r.RequiresExpense,
		ActorID:         actorID,
	}
}

// ResolveIncidentRequest closes an incident, optionally pricing the repair.
type ResolveIncidentRequest struct {
	RepairCost *decimal.Decimal `json:"repairCost"`
}
