package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"farmledger/internal/core/id"
	"farmledger/internal/domain/dailybalance"
)

// DailyReportRequest is the ledger-facing slice of a filed daily report.
type DailyReportRequest struct {
	Date        time.Time        `json:"date" binding:"required"`
	Deaths      int              `json:"deaths"`
	AvgWeightKg *decimal.Decimal `json:"avgWeightKg"`
	FeedCost    *decimal.Decimal `json:"feedCost"`
}

// ToInput converts the request to a service input.
func (r *DailyReportRequest) ToInput(batchID id.ID, actorID string) dailybalance.DailyReportInput {
	return dailybalance.DailyReportInput{
		BatchID:     batchID,
		Date:        r.Date,
		Deaths:      r.Deaths,
		AvgWeightKg: r.AvgWeightKg,
		FeedCost:    r.FeedCost,
		ActorID:     actorID,
	}
}
