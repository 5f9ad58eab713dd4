// Package forecast provides speculative profit estimates and the managed
// sale-price assumption they are built on. Forecasts never persist anything;
// only prices are stored.
package forecast

import (
	"context"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/entity"
	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
)

// PriceSource records where an assumed sale price came from.
type PriceSource string

const (
	// SourceManualInitial is a price entered by a manager before any sale.
	SourceManualInitial PriceSource = "MANUAL_INITIAL"
	// SourceLastRealSale is a price refreshed from a completed chick-out.
	SourceLastRealSale PriceSource = "LAST_REAL_SALE"
)

// Price is the assumed sale price for a period, optionally scoped to one
// section. At most one active price exists per (period, section) and one
// period-wide default; activating a new one deactivates the prior.
type Price struct {
	entity.BaseRecord

	PeriodID   id.ID       `db:"period_id" json:"periodId"`
	SectionID  *id.ID      `db:"section_id" json:"sectionId,omitempty"`
	PricePerKg types.Money `db:"price_per_kg" json:"pricePerKg"`
	Source     PriceSource `db:"source" json:"source"`
	IsActive   bool        `db:"is_active" json:"isActive"`
}

// NewPrice creates an active price record.
func NewPrice(periodID id.ID, sectionID *id.ID, pricePerKg types.Money, source PriceSource) *Price {
	return &Price{
		BaseRecord: entity.NewBaseRecord(),
		PeriodID:   periodID,
		SectionID:  sectionID,
		PricePerKg: pricePerKg,
		Source:     source,
		IsActive:   true,
	}
}

// Validate implements entity.Validatable.
func (p *Price) Validate(ctx context.Context) error {
	if id.IsNil(p.PeriodID) {
		return apperror.NewValidation("period is required").
			WithDetail("field", "periodId")
	}
	if !p.PricePerKg.IsPositive() {
		return apperror.NewValidation("price per kg must be positive").
			WithDetail("field", "pricePerKg")
	}
	if p.Source != SourceManualInitial && p.Source != SourceLastRealSale {
		return apperror.NewValidation("unknown price source").
			WithDetail("field", "source").
			WithDetail("value", string(p.Source))
	}
	return nil
}

// --- Forecast results ---

// ResultStatus distinguishes a computed forecast from a blocked one.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "SUCCESS"
	StatusBlocked ResultStatus = "BLOCKED"
)

// BlockReason is the machine-readable explanation of a blocked forecast.
// A missing precondition is an expected outcome, not an error: callers
// render "why this estimate isn't available" from this code.
type BlockReason string

const (
	ReasonNoActivePeriod   BlockReason = "NO_ACTIVE_PERIOD"
	ReasonNoBatch          BlockReason = "NO_BATCH"
	ReasonPriceNotSet      BlockReason = "PRICE_NOT_SET"
	ReasonInsufficientData BlockReason = "INSUFFICIENT_DATA"
)

// SectionForecast is the speculative estimate for a section's live batch.
type SectionForecast struct {
	Status ResultStatus `json:"status"`
	Reason BlockReason  `json:"reason,omitempty"`

	SectionID id.ID  `json:"sectionId"`
	BatchID   *id.ID `json:"batchId,omitempty"`
	PeriodID  *id.ID `json:"periodId,omitempty"`

	AliveChicks      int         `json:"aliveChicks,omitempty"`
	AvgWeightKg      types.Money `json:"avgWeightKg,omitempty"`
	PricePerKg       types.Money `json:"pricePerKg,omitempty"`
	EstimatedRevenue types.Money `json:"estimatedRevenue,omitempty"`
	CostsToDate      types.Money `json:"costsToDate,omitempty"`
	RemainingCosts   types.Money `json:"remainingCosts,omitempty"`
	EstimatedProfit  types.Money `json:"estimatedProfit,omitempty"`
}

// Blocked builds a BLOCKED result for the section.
func Blocked(sectionID id.ID, reason BlockReason) *SectionForecast {
	return &SectionForecast{
		Status:    StatusBlocked,
		Reason:    reason,
		SectionID: sectionID,
	}
}

// Simulation is the read-only what-if result for a hypothetical partial sale.
type Simulation struct {
	Status ResultStatus `json:"status"`
	Reason BlockReason  `json:"reason,omitempty"`

	SoldChicks       int         `json:"soldChicks,omitempty"`
	RemainingChicks  int         `json:"remainingChicks,omitempty"`
	SoldRevenue      types.Money `json:"soldRevenue,omitempty"`
	RemainingRevenue types.Money `json:"remainingRevenue,omitempty"`
	PricePerKg       types.Money `json:"pricePerKg,omitempty"`
	AvgWeightKg      types.Money `json:"avgWeightKg,omitempty"`
}
