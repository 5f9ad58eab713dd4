// Package chickout provides the two-phase chick removal record.
//
// A chick-out is created INCOMPLETE at the loading dock with only the
// operational facts (count, vehicle); the financial facts (weight, waste,
// price, revenue) arrive later from the weighbridge and invoice, and the
// one-way transition to COMPLETE is the sole path that sets them. Revenue
// accounting waits for certainty while chick-count bookkeeping stays
// real-time.
package chickout

import (
	"context"
	"time"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/entity"
	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
)

// Status is the chick-out completion state.
type Status string

const (
	StatusIncomplete Status = "INCOMPLETE"
	StatusComplete   Status = "COMPLETE"
)

// ChickOut is a record of chicks physically removed from a section.
type ChickOut struct {
	entity.BaseRecord

	SectionID id.ID     `db:"section_id" json:"sectionId"`
	BatchID   id.ID     `db:"batch_id" json:"batchId"`
	Date      time.Time `db:"date" json:"date"`

	// Operational phase
	Count         int    `db:"count" json:"count"`
	VehicleNumber string `db:"vehicle_number" json:"vehicleNumber"`
	MachineNumber string `db:"machine_number" json:"machineNumber"`
	IsFinal       bool   `db:"is_final" json:"isFinal"`

	Status Status `db:"status" json:"status"`

	// Financial phase, nil until COMPLETE
	TotalWeightKg *types.Money `db:"total_weight_kg" json:"totalWeightKg,omitempty"`
	WastePercent  *types.Money `db:"waste_percent" json:"wastePercent,omitempty"`
	NetWeightKg   *types.Money `db:"net_weight_kg" json:"netWeightKg,omitempty"`
	PricePerKg    *types.Money `db:"price_per_kg" json:"pricePerKg,omitempty"`
	TotalRevenue  *types.Money `db:"total_revenue" json:"totalRevenue,omitempty"`

	CompletedAt *time.Time `db:"completed_at" json:"completedAt,omitempty"`
	CompletedBy string     `db:"completed_by" json:"completedBy,omitempty"`
}

// IsComplete reports whether the financial phase is finished.
func (c *ChickOut) IsComplete() bool {
	return c.Status == StatusComplete
}

// Complete applies the financial facts and flips the record to COMPLETE.
// netWeight = totalWeight * (1 - waste/100); revenue = netWeight * price.
func (c *ChickOut) Complete(totalWeightKg, wastePercent, pricePerKg types.Money, completedBy string, at time.Time) {
	net := types.ApplyWastePercent(totalWeightKg, wastePercent)
	revenue := net.Mul(pricePerKg)

	c.TotalWeightKg = &totalWeightKg
	c.WastePercent = &wastePercent
	c.NetWeightKg = &net
	c.PricePerKg = &pricePerKg
	c.TotalRevenue = &revenue

	c.Status = StatusComplete
	atUTC := at.UTC()
	c.CompletedAt = &atUTC
	c.CompletedBy = completedBy
	c.Touch()
}

// Validate implements entity.Validatable.
func (c *ChickOut) Validate(ctx context.Context) error {
	if id.IsNil(c.SectionID) {
		return apperror.NewValidation("section is required").
			WithDetail("field", "sectionId")
	}
	if id.IsNil(c.BatchID) {
		return apperror.NewValidation("batch is required").
			WithDetail("field", "batchId")
	}
	if c.Count <= 0 {
		return apperror.NewValidation("count must be positive").
			WithDetail("field", "count")
	}
	if c.VehicleNumber == "" {
		return apperror.NewValidation("vehicle number is required").
			WithDetail("field", "vehicleNumber")
	}
	return nil
}
