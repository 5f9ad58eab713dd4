package dto

import (
	"github.com/shopspring/decimal"

	"farmledger/internal/core/id"
	"farmledger/internal/domain/chickout"
)

// CreateChickOutRequest records the operational phase at the loading dock.
type CreateChickOutRequest struct {
	SectionID     string `json:"sectionId" binding:"required"`
	Count         int    `json:"count" binding:"required,min=1"`
	VehicleNumber string `json:"vehicleNumber"`
	MachineNumber string `json:"machineNumber"`
	IsFinal       bool   `json:"isFinal"`
}

// ToInput converts the request to a service input.
func (r *CreateChickOutRequest) ToInput(sectionID id.ID, actorID string) chickout.CreateInput {
	return chickout.CreateInput{
		SectionID:     sectionID,
		Count:         r.Count,
		VehicleNumber: r.VehicleNumber,
		MachineNumber: r.MachineNumber,
		IsFinal:       r.IsFinal,
		ActorID:       actorID,
	}
}

// CompleteChickOutRequest carries the weighbridge and invoice facts.
type CompleteChickOutRequest struct {
	TotalWeightKg decimal.Decimal `json:"totalWeightKg" binding:"required"`
	WastePercent  decimal.Decimal `json:"wastePercent"`
	PricePerKg    decimal.Decimal `json:"pricePerKg" binding:"required"`
}

// ToInput converts the request to a service input.
func (r *CompleteChickOutRequest) ToInput(actorID string) chickout.CompleteInput {
	return chickout.CompleteInput{
		TotalWeightKg: r.TotalWeightKg,
		WastePercent:  r.WastePercent,
		PricePerKg:    r.PricePerKg,
		ActorID:       actorID,
	}
}
