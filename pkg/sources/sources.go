// Package sources defines the raw-ingestion boundary: where per-entity raw
// batches come from. A source delivers a full snapshot of one entity's raw
// rows with no validity guarantee whatsoever; all cleansing happens
// downstream.
//
// The package ships CSV file sources for all six raw schemas, which is how
// the flat-file extracts arrive in practice. Library callers can plug any
// other backing by implementing Source, or wrap a slice with Static.
package sources

import (
	"context"

	"github.com/lodeworks/refinery/pkg/tables"
)

// Source delivers one entity's raw batch as a full snapshot.
type Source[T any] interface {
	// Fetch reads the complete raw batch. A Fetch error is a pipeline-level
	// fault for the owning entity; it never affects sibling entities.
	Fetch(ctx context.Context) ([]T, error)
}

// Func adapts a function to the Source interface.
type Func[T any] func(ctx context.Context) ([]T, error)

// Fetch implements Source.
func (f Func[T]) Fetch(ctx context.Context) ([]T, error) {
	return f(ctx)
}

// Static wraps an in-memory batch as a Source. Useful for tests and for
// embedding the engine behind a caller-owned extract step.
func Static[T any](rows []T) Source[T] {
	return Func[T](func(context.Context) ([]T, error) {
		return rows, nil
	})
}

// Set groups the raw feeds of one refinery run. A nil source skips that
// entity's pipeline.
type Set struct {
	Customers    Source[tables.RawCustomer]
	Products     Source[tables.RawProduct]
	Sales        Source[tables.RawSale]
	Demographics Source[tables.RawDemographic]
	Locations    Source[tables.RawLocation]
	Categories   Source[tables.RawCategory]
}
