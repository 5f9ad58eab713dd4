// Package batch provides the chick batch entity and its lifecycle.
// A batch is a cohort of chicks occupying one section from arrival to full
// sale. Close orchestration (guards spanning chick-outs and incidents)
// lives in the closing package.
package batch

import (
	"context"
	"time"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/entity"
	"farmledger/internal/core/id"
)

// Status is the batch lifecycle state.
// ACTIVE → PARTIAL_OUT → CLOSED; CLOSED is terminal and reachable from both.
type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusPartialOut Status = "PARTIAL_OUT"
	StatusClosed     Status = "CLOSED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusPartialOut || s == StatusClosed
}

// Batch is a cohort of chicks.
//
// TotalChicksOut is the operational counter: it is incremented on every
// chick-out creation, including still-INCOMPLETE ones. The financial count
// (COMPLETE chick-outs only) is derived by the report aggregators; the two
// are intentionally distinct.
type Batch struct {
	entity.BaseRecord

	SectionID id.ID  `db:"section_id" json:"sectionId"`
	PeriodID  *id.ID `db:"period_id" json:"periodId,omitempty"` // nullable for pre-period legacy rows

	StartedAt     time.Time  `db:"started_at" json:"startedAt"`
	ExpectedEndAt time.Time  `db:"expected_end_at" json:"expectedEndAt"`
	EndedAt       *time.Time `db:"ended_at" json:"endedAt,omitempty"`

	TotalChicksIn  int `db:"total_chicks_in" json:"totalChicksIn"`
	TotalChicksOut int `db:"total_chicks_out" json:"totalChicksOut"`

	Status Status `db:"status" json:"status"`
}

// IsLive reports whether the batch is not yet closed.
func (b *Batch) IsLive() bool {
	return b.Status != StatusClosed
}

// MarkPartialOut flips an ACTIVE batch to PARTIAL_OUT.
func (b *Batch) MarkPartialOut() {
	if b.Status == StatusActive {
		b.Status = StatusPartialOut
		b.Touch()
	}
}

// MarkClosed flips the batch to CLOSED. Terminal.
func (b *Batch) MarkClosed(endedAt time.Time) {
	b.Status = StatusClosed
	end := endedAt.UTC()
	b.EndedAt = &end
	b.Touch()
}

// Validate implements entity.Validatable.
func (b *Batch) Validate(ctx context.Context) error {
	if id.IsNil(b.SectionID) {
		return apperror.NewValidation("section is required").
			WithDetail("field", "sectionId")
	}
	if b.TotalChicksIn <= 0 {
		return apperror.NewValidation("chick-in count must be positive").
			WithDetail("field", "totalChicksIn")
	}
	if b.ExpectedEndAt.IsZero() {
		return apperror.NewValidation("expected end date is required").
			WithDetail("field", "expectedEndAt")
	}
	if !b.Status.Valid() {
		return apperror.NewValidation("unknown batch status").
			WithDetail("field", "status").
			WithDetail("value", string(b.Status))
	}
	return nil
}
