package payroll

import (
	"context"
	"time"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/entity"
	"farmledger/internal/core/id"
	"farmledger/internal/core/tx"
	"farmledger/internal/core/types"
	"farmledger/internal/domain/expense"
	"farmledger/internal/domain/period"
	"farmledger/pkg/logger"
)

// Service provides salary assignment, advances, and the close-time
// settlement the period close orchestration calls.
type Service struct {
	payroll   Repository
	periods   period.Repository
	expenses  expense.Repository
	txManager tx.Manager
}

// NewService creates a new payroll service.
func NewService(payroll Repository, periods period.Repository, expenses expense.Repository, txManager tx.Manager) *Service {
	return &Service{
		payroll:   payroll,
		periods:   periods,
		expenses:  expenses,
		txManager: txManager,
	}
}

// AssignInput carries the fields for a salary assignment.
type AssignInput struct {
	PeriodID     id.ID
	EmployeeID   string
	EmployeeName string
	BaseAmount   types.Money
	ActorID      string
}

// Assign fixes an employee's base salary for an ACTIVE period.
func (s *Service) Assign(ctx context.Context, in AssignInput) (*SalaryAssignment, error) {
	p, err := s.periods.GetByID(ctx, in.PeriodID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, apperror.NewPeriodClosed(p.Name).
			WithDetail("period_id", p.ID.String())
	}

	a := &SalaryAssignment{
		BaseRecord:   entity.NewBaseRecord(),
		PeriodID:     in.PeriodID,
		EmployeeID:   in.EmployeeID,
		EmployeeName: in.EmployeeName,
		BaseAmount:   in.BaseAmount,
	}
	a.CreatedBy = in.ActorID
	a.UpdatedBy = in.ActorID

	if err := a.Validate(ctx); err != nil {
		return nil, err
	}

	if existing, err := s.payroll.FindAssignment(ctx, in.PeriodID, in.EmployeeID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperror.NewDuplicate("salary assignment", "employee", in.EmployeeID)
	}

	if err := s.payroll.CreateAssignment(ctx, a); err != nil {
		return nil, err
	}

	logger.Info(ctx, "salary assigned",
		"period_id", in.PeriodID, "employee_id", in.EmployeeID, "base", in.BaseAmount.String())
	return a, nil
}

// AdvanceInput carries the fields for a salary advance.
type AdvanceInput struct {
	PeriodID   id.ID
	EmployeeID string
	Amount     types.Money
	Note       string
	ActorID    string
}

// Advance pays out part of an assigned salary mid-period. The advance and
// its LABOR_FIXED expense line are written in one transaction. Cumulative
// advances may never exceed the base amount.
func (s *Service) Advance(ctx context.Context, in AdvanceInput) (*SalaryAdvance, error) {
	p, err := s.periods.GetByID(ctx, in.PeriodID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, apperror.NewPeriodClosed(p.Name).
			WithDetail("period_id", p.ID.String())
	}

	if !in.Amount.IsPositive() {
		return nil, apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}

	a, err := s.payroll.FindAssignment(ctx, in.PeriodID, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperror.NewNotFound("salary assignment", in.EmployeeID)
	}

	paid, err := s.payroll.SumAdvances(ctx, in.PeriodID, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if paid.Add(in.Amount).GreaterThan(a.BaseAmount) {
		return nil, apperror.NewValidation("advances cannot exceed the base salary").
			WithDetail("base", a.BaseAmount.String()).
			WithDetail("already_paid", paid.String()).
			WithDetail("requested", in.Amount.String())
	}

	adv := &SalaryAdvance{
		BaseRecord: entity.NewBaseRecord(),
		PeriodID:   in.PeriodID,
		EmployeeID: in.EmployeeID,
		Amount:     in.Amount,
		Note:       in.Note,
	}
	adv.CreatedBy = in.ActorID

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.payroll.CreateAdvance(ctx, adv); err != nil {
			return err
		}

		e := &expense.PeriodExpense{
			BaseRecord:  entity.NewBaseRecord(),
			PeriodID:    in.PeriodID,
			Category:    expense.CategoryLaborFixed,
			Amount:      in.Amount,
			Description: "salary advance: " + a.EmployeeName,
			ExpenseDate: time.Now().UTC(),
			Source:      expense.SourceManual,
		}
		e.CreatedBy = in.ActorID
		return s.expenses.Create(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "salary advance paid",
		"period_id", in.PeriodID, "employee_id", in.EmployeeID, "amount", in.Amount.String())
	return adv, nil
}

// FinalizeForPeriod posts each assignment's unpaid remainder (base minus
// advances) as a LABOR_FIXED expense. Called by the period close
// orchestration inside its transaction; zero or negative remainders are
// skipped.
func (s *Service) FinalizeForPeriod(ctx context.Context, periodID id.ID) error {
	assignments, err := s.payroll.ListAssignments(ctx, periodID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, a := range assignments {
		paid, err := s.payroll.SumAdvances(ctx, periodID, a.EmployeeID)
		if err != nil {
			return err
		}

		remainder := a.BaseAmount.Sub(paid)
		if !remainder.IsPositive() {
			continue
		}

		e := &expense.PeriodExpense{
			BaseRecord:  entity.NewBaseRecord(),
			PeriodID:    periodID,
			Category:    expense.CategoryLaborFixed,
			Amount:      remainder,
			Description: "salary settlement: " + a.EmployeeName,
			ExpenseDate: now,
			Source:      expense.SourceManual,
		}
		if err := s.expenses.Create(ctx, e); err != nil {
			return err
		}
	}

	return nil
}
