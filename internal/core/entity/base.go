package entity

import (
	"context"
	"time"

	"farmledger/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// BaseRecord contains common fields for all ledger entities.
type BaseRecord struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	// Audit fields
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
	UpdatedBy string    `db:"updated_by" json:"updatedBy,omitempty"`
}

// NewBaseRecord creates a new BaseRecord with generated ID and timestamps.
func NewBaseRecord() BaseRecord {
	now := time.Now().UTC()
	return BaseRecord{
		ID:        id.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the UpdatedAt timestamp. Version is owned by the
// repository: Update matches on the read-time version and bumps it in
// the same statement, so mutators must leave it alone.
func (b *BaseRecord) Touch() {
	b.UpdatedAt = time.Now().UTC()
}

// SetVersion updates the version number (used by repository after sync).
func (b *BaseRecord) SetVersion(v int) {
	b.Version = v
}
