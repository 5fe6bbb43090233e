package warehouse

import (
	"context"
	"fmt"
	"sync"

	"github.com/lodeworks/refinery/pkg/errors"
)

// Memory is an in-memory Warehouse. Safe for concurrent use by independent
// entity pipelines.
type Memory struct {
	mu     sync.RWMutex
	tables map[string]Batch
}

// NewMemory creates an empty in-memory warehouse.
func NewMemory() *Memory {
	return &Memory{tables: make(map[string]Batch)}
}

// Replace implements Warehouse. The batch is deep-copied before it is
// published so later mutation by the caller cannot corrupt the store.
func (m *Memory) Replace(ctx context.Context, batch Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Build the new contents fully before taking the write lock.
	stored := copyBatch(batch)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[batch.Table] = stored
	return nil
}

// Read implements Warehouse. The returned batch is a copy; mutating it
// cannot corrupt the store.
func (m *Memory) Read(_ context.Context, table string) (Batch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	batch, ok := m.tables[table]
	if !ok {
		return Batch{}, fmt.Errorf("table %s: %w", table, errors.ErrNotFound)
	}
	return copyBatch(batch), nil
}

// copyBatch deep-copies a batch so store and caller never share row slices.
func copyBatch(batch Batch) Batch {
	out := Batch{
		Table:  batch.Table,
		Header: append([]string(nil), batch.Header...),
		Rows:   make([][]string, len(batch.Rows)),
	}
	for i, row := range batch.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// Tables returns the names of all tables that have been replaced at least once.
func (m *Memory) Tables() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.tables))
	for name := range m.tables {
		names = append(names, name)
	}
	return names
}
