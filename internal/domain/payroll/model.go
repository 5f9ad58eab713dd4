// Package payroll provides period salary assignments and advances.
// At period close the remaining base-salary-minus-advances is posted as a
// LABOR_FIXED expense per employee; advances post their expense immediately.
package payroll

import (
	"context"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/entity"
	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
)

// SalaryAssignment fixes an employee's base salary for a period.
// One assignment per (period, employee).
type SalaryAssignment struct {
	entity.BaseRecord

	PeriodID     id.ID       `db:"period_id" json:"periodId"`
	EmployeeID   string      `db:"employee_id" json:"employeeId"`
	EmployeeName string      `db:"employee_name" json:"employeeName"`
	BaseAmount   types.Money `db:"base_amount" json:"baseAmount"`
}

// Validate implements entity.Validatable.
func (a *SalaryAssignment) Validate(ctx context.Context) error {
	if id.IsNil(a.PeriodID) {
		return apperror.NewValidation("period is required").
			WithDetail("field", "periodId")
	}
	if a.EmployeeID == "" {
		return apperror.NewValidation("employee is required").
			WithDetail("field", "employeeId")
	}
	if !a.BaseAmount.IsPositive() {
		return apperror.NewValidation("base amount must be positive").
			WithDetail("field", "baseAmount")
	}
	return nil
}

// SalaryAdvance is a mid-period payout against an assignment.
type SalaryAdvance struct {
	entity.BaseRecord

	PeriodID   id.ID       `db:"period_id" json:"periodId"`
	EmployeeID string      `db:"employee_id" json:"employeeId"`
	Amount     types.Money `db:"amount" json:"amount"`
	Note       string      `db:"note" json:"note,omitempty"`
}
