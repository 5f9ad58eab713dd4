package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"farmledger/internal/core/entity"
	"farmledger/internal/core/id"
	"farmledger/internal/domain/batch"
)

type MockRecord struct {
	entity.BaseRecord
	Name  string `db:"name" json:"name"`
	Count int    `db:"count" json:"count"`
}

func TestExtractDBColumns_EmbeddedBase(t *testing.T) {
	cols := ExtractDBColumns[MockRecord]()

	expectedCols := []string{
		"id", "version", "created_at", "updated_at", "created_by", "updated_by", "name", "count",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
}

// Update matches WHERE version = <struct version> against the stored
// row and bumps the column itself, so a state transition must still
// present the version it was read with.
func TestStructToMap_CarriesReadTimeVersion(t *testing.T) {
	b := &batch.Batch{
		BaseRecord:    entity.NewBaseRecord(),
		StartedAt:     time.Now().UTC(),
		TotalChicksIn: 1000,
		Status:        batch.StatusActive,
	}
	readVersion := b.Version

	b.MarkClosed(time.Now().UTC())

	m := StructToMap(b)
	assert.Equal(t, readVersion, m["version"])
}

func TestStructToMap_EmbeddedBase(t *testing.T) {
	now := time.Now().UTC()
	rec := MockRecord{
		BaseRecord: entity.BaseRecord{
			ID:        id.New(),
			Version:   5,
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: "mgr-1",
		},
		Name:  "house-1",
		Count: 42,
	}

	m := StructToMap(rec)

	assert.Equal(t, rec.ID, m["id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, "mgr-1", m["created_by"])
	assert.Equal(t, "house-1", m["name"])
	assert.Equal(t, 42, m["count"])
}
