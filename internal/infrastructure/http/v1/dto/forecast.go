package dto

import (
	"github.com/shopspring/decimal"

	"farmledger/internal/core/id"
	"farmledger/internal/domain/forecast"
)

// SetPriceRequest records a manual sale-price assumption.
type SetPriceRequest struct {
	PeriodID   string          `json:"periodId" binding:"required"`
	SectionID  *string         `json:"sectionId"`
	PricePerKg decimal.Decimal `json:"pricePerKg" binding:"required"`
}

// ToInput converts the request to a service input.
func (r *SetPriceRequest) ToInput(periodID id.ID, sectionID *id.ID, actorID string) forecast.SetPriceInput {
	return forecast.SetPriceInput{
		PeriodID:   periodID,
		SectionID:  sectionID,
		PricePerKg: r.PricePerKg,
		ActorID:    actorID,
	}
}

// SimulateSaleRequest asks "what if we sold N chicks now".
type SimulateSaleRequest struct {
	SoldChicks int `json:"soldChicks" binding:"required,min=1"`
}
