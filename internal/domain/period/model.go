// Package period provides the accounting period entity.
// A period is the window within which batches operate and expenses and
// revenues are tallied for P&L. Closing is guarded and irreversible; the
// close orchestration itself lives in the closing package.
package period

import (
	"context"
	"time"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/entity"
)

// Status is the period lifecycle state.
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusClosed Status = "CLOSED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusClosed
}

// Period is an accounting window. Multiple periods may be ACTIVE at once;
// there is no global singleton constraint.
type Period struct {
	entity.BaseRecord

	Name      string     `db:"name" json:"name"`
	Status    Status     `db:"status" json:"status"`
	StartDate time.Time  `db:"start_date" json:"startDate"`
	EndDate   *time.Time `db:"end_date" json:"endDate,omitempty"`
}

// New creates an ACTIVE period.
func New(name string, startDate time.Time) *Period {
	return &Period{
		BaseRecord: entity.NewBaseRecord(),
		Name:       name,
		Status:     StatusActive,
		StartDate:  startDate.UTC(),
	}
}

// IsActive reports whether the period accepts financial activity.
func (p *Period) IsActive() bool {
	return p.Status == StatusActive
}

// MarkClosed flips the period to CLOSED. Terminal, one-way.
func (p *Period) MarkClosed(endDate time.Time) {
	p.Status = StatusClosed
	end := endDate.UTC()
	p.EndDate = &end
	p.Touch()
}

// Validate implements entity.Validatable.
func (p *Period) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if p.StartDate.IsZero() {
		return apperror.NewValidation("start date is required").
			WithDetail("field", "startDate")
	}
	if !p.Status.Valid() {
		return apperror.NewValidation("unknown period status").
			WithDetail("field", "status").
			WithDetail("value", string(p.Status))
	}
	return nil
}
