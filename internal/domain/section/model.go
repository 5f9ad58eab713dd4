// Package section provides the physical farm section (poultry house) entity.
// A section's status is driven by batch and chick-out transitions; it is a
// weak back-reference holder, outliving every batch that passes through it.
package section

import (
	"context"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/entity"
	"farmledger/internal/core/id"
)

// Status is the section occupancy state.
type Status string

const (
	StatusEmpty      Status = "EMPTY"
	StatusPreparing  Status = "PREPARING"
	StatusActive     Status = "ACTIVE"
	StatusPartialOut Status = "PARTIAL_OUT"
	StatusCleaning   Status = "CLEANING"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusEmpty, StatusPreparing, StatusActive, StatusPartialOut, StatusCleaning:
		return true
	}
	return false
}

// Section is a poultry house. At most one live batch and one active period
// may be linked at a time.
type Section struct {
	entity.BaseRecord

	Name           string `db:"name" json:"name"`
	Status         Status `db:"status" json:"status"`
	ActiveBatchID  *id.ID `db:"active_batch_id" json:"activeBatchId,omitempty"`
	ActivePeriodID *id.ID `db:"active_period_id" json:"activePeriodId,omitempty"`
}

// New creates an EMPTY section.
func New(name string) *Section {
	return &Section{
		BaseRecord: entity.NewBaseRecord(),
		Name:       name,
		Status:     StatusEmpty,
	}
}

// InProduction reports whether the section currently holds a live batch.
func (s *Section) InProduction() bool {
	return s.Status == StatusActive || s.Status == StatusPartialOut
}

// Blocked reports whether daily bookkeeping is suspended for the section.
// CLEANING and PREPARING sections take no balance records.
func (s *Section) Blocked() bool {
	return s.Status == StatusCleaning || s.Status == StatusPreparing
}

// Validate implements entity.Validatable.
func (s *Section) Validate(ctx context.Context) error {
	if s.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if !s.Status.Valid() {
		return apperror.NewValidation("unknown section status").
			WithDetail("field", "status").
			WithDetail("value", string(s.Status))
	}
	return nil
}
