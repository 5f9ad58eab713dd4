package farm_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
	"farmledger/internal/domain/payroll"
	"farmledger/internal/infrastructure/storage/postgres"
)

const (
	salaryAssignmentTable = "salary_assignments"
	salaryAdvanceTable    = "salary_advances"
)

// assignmentConstraint is the unique index on (period_id, employee_id).
const assignmentConstraint = "salary_assignments_period_employee"

// PayrollRepo implements payroll.Repository over the two payroll tables.
type PayrollRepo struct {
	assignments *BaseRepo[*payroll.SalaryAssignment]
	advances    *BaseRepo[*payroll.SalaryAdvance]
}

var _ payroll.Repository = (*PayrollRepo)(nil)

// NewPayrollRepo creates a new payroll repository.
func NewPayrollRepo(txm *postgres.TxManager) *PayrollRepo {
	return &PayrollRepo{
		assignments: NewBaseRepo(
			txm,
			salaryAssignmentTable,
			postgres.ExtractDBColumns[payroll.SalaryAssignment](),
			func() *payroll.SalaryAssignment { return &payroll.SalaryAssignment{} },
		),
		advances: NewBaseRepo(
			txm,
			salaryAdvanceTable,
			postgres.ExtractDBColumns[payroll.SalaryAdvance](),
			func() *payroll.SalaryAdvance { return &payroll.SalaryAdvance{} },
		),
	}
}

// CreateAssignment inserts a salary assignment.
func (r *PayrollRepo) CreateAssignment(ctx context.Context, a *payroll.SalaryAssignment) error {
	err := r.assignments.Create(ctx, a)
	if err != nil && postgres.IsUniqueViolation(err, assignmentConstraint) {
		return apperror.NewDuplicate(salaryAssignmentTable, "employee", a.EmployeeID).WithCause(err)
	}
	return err
}

// FindAssignment returns the employee's assignment for the period, or nil.
func (r *PayrollRepo) FindAssignment(ctx context.Context, periodID id.ID, employeeID string) (*payroll.SalaryAssignment, error) {
	q := r.assignments.baseSelect().
		Where(squirrel.Eq{"period_id": periodID}).
		Where(squirrel.Eq{"employee_id": employeeID}).
		Limit(1)

	a, found, err := r.assignments.findOne(ctx, q)
	if err != nil || !found {
		return nil, err
	}
	return a, nil
}

// ListAssignments returns all assignments of the period.
func (r *PayrollRepo) ListAssignments(ctx context.Context, periodID id.ID) ([]*payroll.SalaryAssignment, error) {
	q := r.assignments.baseSelect().
		Where(squirrel.Eq{"period_id": periodID}).
		OrderBy("employee_name ASC")
	return r.assignments.selectMany(ctx, q)
}

// CreateAdvance inserts a salary advance.
func (r *PayrollRepo) CreateAdvance(ctx context.Context, adv *payroll.SalaryAdvance) error {
	return r.advances.Create(ctx, adv)
}

// SumAdvances totals the employee's advances in the period.
func (r *PayrollRepo) SumAdvances(ctx context.Context, periodID id.ID, employeeID string) (types.Money, error) {
	q := r.advances.Builder().
		Select("COALESCE(SUM(amount), 0)").
		From(salaryAdvanceTable).
		Where(squirrel.Eq{"period_id": periodID}).
		Where(squirrel.Eq{"employee_id": employeeID})

	sql, args, err := q.ToSql()
	if err != nil {
		return types.Zero(), fmt.Errorf("build sum: %w", err)
	}

	var total types.Money
	if err := r.advances.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return types.Zero(), fmt.Errorf("sum advances: %w", err)
	}
	return total, nil
}
