// Package dailybalance provides the per-batch, per-day chick-count ledger.
// One record exists per (batch, calendar day); deaths and chick-outs
// accumulate into it and the end-of-day count is recomputed on every write.
package dailybalance

import (
	"time"

	"farmledger/internal/core/entity"
	"farmledger/internal/core/id"
)

// DailyBalance is a day-bucketed chick-count snapshot.
// The chain invariant: the first day starts at the batch's chick-in count,
// every later day starts at the previous existing record's end count.
// Calendar gaps are tolerated and bridged.
type DailyBalance struct {
	entity.BaseRecord

	BatchID id.ID     `db:"batch_id" json:"batchId"`
	Date    time.Time `db:"date" json:"date"`

	StartOfDayChicks int `db:"start_of_day_chicks" json:"startOfDayChicks"`
	Deaths           int `db:"deaths" json:"deaths"`
	ChickOut         int `db:"chick_out" json:"chickOut"`
	EndOfDayChicks   int `db:"end_of_day_chicks" json:"endOfDayChicks"`

	IsClosed bool `db:"is_closed" json:"isClosed"`
}

// Day normalizes a timestamp to its UTC day boundary.
func Day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// NewOpening creates the snapshot that opens a day for a batch.
func NewOpening(batchID id.ID, date time.Time, startChicks int) *DailyBalance {
	b := &DailyBalance{
		BaseRecord:       entity.NewBaseRecord(),
		BatchID:          batchID,
		Date:             Day(date),
		StartOfDayChicks: startChicks,
	}
	b.Recompute()
	return b
}

// Recompute derives the end-of-day count, clamped at zero.
func (b *DailyBalance) Recompute() {
	end := b.StartOfDayChicks - b.Deaths - b.ChickOut
	if end < 0 {
		end = 0
	}
	b.EndOfDayChicks = end
}
