package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"farmledger/internal/core/id"
	"farmledger/internal/domain/expense"
)

// AddExpenseRequest appends a line to the period's expense ledger.
type AddExpenseRequest struct {
	SectionID   *string          `json:"sectionId"`
	Category    string           `json:"category" binding:"required"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unitCost"`
	Description string           `json:"description"`
	ExpenseDate time.Time        `json:"expenseDate"`
}

// ToInput converts the request to a service input.
func (r *AddExpenseRequest) ToInput(periodID id.ID, sectionID *id.ID, actorID string) expense.AddInput {
	expenseDate := r.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}
	return expense.AddInput{
		PeriodID:    periodID,
		SectionID:   sectionID,
		Category:    expense.Category(r.Category),
		Amount:      r.Amount,
		Quantity:    r.Quantity,
		UnitCost:    r.UnitCost,
		Description: r.Description,
		ExpenseDate: expenseDate,
		ActorID:     actorID,
	}
}

// ListExpensesRequest narrows an expense listing.
type ListExpensesRequest struct {
	SectionID string `form:"sectionId"`
	Category  string `form:"category"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}
