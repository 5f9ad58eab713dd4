package dto

import (
	"github.com/shopspring/decimal"

	"farmledger/internal/core/id"
	"farmledger/internal/domain/payroll"
)

// AssignSalaryRequest fixes an employee's base salary for a period.
type AssignSalaryRequest struct {
	EmployeeID   string          `json:"employeeId" binding:"required"`
	EmployeeName string          `json:"employeeName" binding:"required"`
	BaseAmount   decimal.Decimal `json:"baseAmount" binding:"required"`
}

// ToInput converts the request to a service input.
func (r *AssignSalaryRequest) ToInput(periodID id.ID, actorID string) payroll.AssignInput {
	return payroll.AssignInput{
		PeriodID:     periodID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		BaseAmount:   r.BaseAmount,
		ActorID:      actorID,
	}
}

// SalaryAdvanceRequest pays out part of an assigned salary mid-period.
type SalaryAdvanceRequest struct {
	EmployeeID string          `json:"employeeId" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Note       string          `json:"note"`
}

// ToInput converts the request to a service input.
func (r *SalaryAdvanceRequest) ToInput(periodID id.ID, actorID string) payroll.AdvanceInput {
	return payroll.AdvanceInput{
		PeriodID:   periodID,
		EmployeeID: r.EmployeeID,
		Amount:     r.Amount,
		Note:       r.Note,
		ActorID:    actorID,
	}
}
