// Package expense provides the period expense ledger.
// It is an append-only sink: every cost-producing workflow in the system
// (feed delivery, medication, salaries, repairs, utilities) funnels its cost
// through this single ledger; records are never mutated or deleted.
package expense

import (
	"context"
	"time"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/entity"
	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
)

// Category classifies an expense line.
type Category string

const (
	CategoryFeed          Category = "FEED"
	CategoryWater         Category = "WATER"
	CategoryElectricity   Category = "ELECTRICITY"
	CategoryMedicine      Category = "MEDICINE"
	CategoryLaborFixed    Category = "LABOR_FIXED"
	CategoryMaintenance   Category = "MAINTENANCE"
	CategoryTransport     Category = "TRANSPORT"
	CategoryAssetPurchase Category = "ASSET_PURCHASE"
	CategoryAssetRepair   Category = "ASSET_REPAIR"
	CategoryOther         Category = "OTHER"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryFeed, CategoryWater, CategoryElectricity, CategoryMedicine,
		CategoryLaborFixed, CategoryMaintenance, CategoryTransport,
		CategoryAssetPurchase, CategoryAssetRepair, CategoryOther:
		return true
	}
	return false
}

// Source records which workflow produced the entry.
type Source string

const (
	SourceManual      Source = "MANUAL"
	SourceDailyReport Source = "DAILY_REPORT"
)

// PeriodExpense is a single costed line item attributed to a period.
type PeriodExpense struct {
	entity.BaseRecord

	PeriodID  id.ID  `db:"period_id" json:"periodId"`
	SectionID *id.ID `db:"section_id" json:"sectionId,omitempty"`

	Category    Category     `db:"category" json:"category"`
	Amount      types.Money  `db:"amount" json:"amount"`
	Quantity    *types.Money `db:"quantity" json:"quantity,omitempty"`
	UnitCost    *types.Money `db:"unit_cost" json:"unitCost,omitempty"`
	Description string       `db:"description" json:"description"`
	ExpenseDate time.Time    `db:"expense_date" json:"expenseDate"`

	Source        Source `db:"source" json:"source"`
	DailyReportID *id.ID `db:"daily_report_id" json:"dailyReportId,omitempty"`
	IncidentID    *id.ID `db:"incident_id" json:"incidentId,omitempty"`
}

// Validate implements entity.Validatable.
func (e *PeriodExpense) Validate(ctx context.Context) error {
	if id.IsNil(e.PeriodID) {
		return apperror.NewValidation("period is required").
			WithDetail("field", "periodId")
	}
	if !e.Category.Valid() {
		return apperror.NewValidation("unknown expense category").
			WithDetail("field", "category").
			WithDetail("value", string(e.Category))
	}
	if !e.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}
	if e.Source != SourceManual && e.Source != SourceDailyReport {
		return apperror.NewValidation("unknown expense source").
			WithDetail("field", "source").
			WithDetail("value", string(e.Source))
	}
	return nil
}

// CategorySum is one row of a per-category aggregation.
type CategorySum struct {
	Category Category    `db:"category" json:"category"`
	Total    types.Money `db:"total" json:"total"`
}
