package reports

import (
	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
	"farmledger/internal/domain/expense"
)

// PeriodPL is the period profit-and-loss statement.
type PeriodPL struct {
	PeriodID      id.ID       `json:"periodId"`
	TotalRevenue  types.Money `json:"totalRevenue"`
	TotalExpenses types.Money `json:"totalExpenses"`
	Profit        types.Money `json:"profit"`
	IsProfitable  bool        `json:"isProfitable"`
}

// PeriodTotals are the raw figures the KPI ratios derive from.
type PeriodTotals struct {
	TotalRevenue  types.Money `json:"totalRevenue"`
	TotalExpenses types.Money `json:"totalExpenses"`
	Profit        types.Money `json:"profit"`
	TotalChicksIn int         `json:"totalChicksIn"`
	// FinalChicksOut counts only COMPLETE chick-outs. It lags the
	// operational batch counter until every sale is priced.
	FinalChicksOut int `json:"finalChicksOut"`
}

// PeriodKPI holds the per-chick and margin ratios for a period. Every
// ratio with a zero denominator is reported as zero.
type PeriodKPI struct {
	PeriodID            id.ID              `json:"periodId"`
	Totals              PeriodTotals       `json:"totals"`
	ProfitMarginPercent types.Money        `json:"profitMarginPercent"`
	CostPerChick        types.Money        `json:"costPerChick"`
	RevenuePerChick     types.Money        `json:"revenuePerChick"`
	ProfitPerChick      types.Money        `json:"profitPerChick"`
	ExpensesByCategory  []expense.CategorySum `json:"expensesByCategory"`
}

// BatchSummary aggregates a batch's ledger rows and cross-checks them
// against the other two tallies of the same movements.
type BatchSummary struct {
	BatchID         id.ID `json:"batchId"`
	TotalChicksIn   int   `json:"totalChicksIn"`
	TotalDeaths     int   `json:"totalDeaths"`
	TotalChickOut   int   `json:"totalChickOut"`
	FinalChickCount int   `json:"finalChickCount"`
	Verification    TotalsCheck `json:"verification"`
}

// TotalsCheck compares the three independently maintained chick-out
// tallies: the daily-balance ledger sum, the batch counter and the sum
// of chick-out record counts. They should agree; a mismatch is reported,
// not silently reconciled.
type TotalsCheck struct {
	LedgerChickOut  int  `json:"ledgerChickOut"`
	BatchChickOut   int  `json:"batchChickOut"`
	RecordChickOut  int  `json:"recordChickOut"`
	Match           bool `json:"match"`
}
