// Package warehouse defines where cleansed batches land. The contract is
// full-batch replace: a pipeline hands over one entity's complete output set
// and the store publishes it atomically, or leaves the existing output
// untouched on failure. Partial output is never visible.
//
// Three backends ship with the engine: an in-memory store for tests and
// embedding, a CSV directory that publishes with a write-then-rename swap,
// and a SQLite database that replaces each table inside one transaction.
package warehouse

import "context"

// Batch is one entity's cleansed output set.
type Batch struct {
	Table  string
	Header []string
	Rows   [][]string
}

// Len returns the number of rows in the batch.
func (b Batch) Len() int {
	return len(b.Rows)
}

// Warehouse stores cleansed batches with full-replace semantics.
type Warehouse interface {
	// Replace atomically swaps the named table's contents for the batch.
	// On error the table's previous contents remain intact and visible.
	Replace(ctx context.Context, batch Batch) error

	// Read returns the current contents of a table. Tables that were never
	// replaced yield errors.ErrNotFound.
	Read(ctx context.Context, table string) (Batch, error)
}
