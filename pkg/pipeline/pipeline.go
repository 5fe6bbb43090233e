// Package pipeline implements the per-entity reconciliation transforms: the
// ordered composition of survivorship selection, interval derivation (for
// versioned entities), field normalization and value repair that turns one
// raw batch into one cleansed batch.
//
// Every transform is a pure function over an immutable input batch. Output is
// sorted by natural key, so a transform run twice over identical input yields
// identical output.
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/lodeworks/refinery/pkg/tables"
)

// Clock supplies the processing time for a run. It stamps the audit field on
// every output record and anchors date-sanity checks.
type Clock func() time.Time

// Result describes one entity pipeline run.
type Result struct {
	Entity    tables.Entity
	RunID     uuid.UUID
	RowsIn    int
	RowsOut   int
	StartedAt time.Time
	Duration  time.Duration
	Err       error
}

// Dropped returns how many raw records did not survive reconciliation,
// whether to a null key or to survivorship.
func (r Result) Dropped() int {
	return r.RowsIn - r.RowsOut
}
