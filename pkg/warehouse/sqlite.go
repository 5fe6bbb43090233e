package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // pure-Go sqlite driver

	"github.com/lodeworks/refinery/pkg/errors"
)

// SQLite is a Warehouse backed by a SQLite database file. Replace rebuilds
// the whole table inside a single transaction, so a failed run rolls back and
// leaves the previous contents visible.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	// Full-batch rebuilds are single-writer; one connection avoids lock
	// contention between the entity pipelines.
	db.SetMaxOpenConns(1)
	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (w *SQLite) Close() error {
	return w.db.Close()
}

// Replace implements Warehouse.
func (w *SQLite) Replace(ctx context.Context, batch Batch) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace of %s: %w", batch.Table, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(batch.Table))); err != nil {
		return fmt.Errorf("drop %s: %w", batch.Table, err)
	}
	if _, err := tx.ExecContext(ctx, createStmt(batch)); err != nil {
		return fmt.Errorf("create %s: %w", batch.Table, err)
	}

	if len(batch.Rows) > 0 {
		stmt, err := tx.PrepareContext(ctx, insertStmt(batch))
		if err != nil {
			return fmt.Errorf("prepare insert into %s: %w", batch.Table, err)
		}
		defer stmt.Close()

		args := make([]any, len(batch.Header))
		for _, row := range batch.Rows {
			for i, cell := range row {
				args[i] = cell
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("insert into %s: %w", batch.Table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace of %s: %w", batch.Table, err)
	}
	return nil
}

// Read implements Warehouse. Rows come back in insertion order.
func (w *SQLite) Read(ctx context.Context, table string) (Batch, error) {
	rows, err := w.db.QueryContext(ctx,
		fmt.Sprintf("SELECT * FROM %s ORDER BY rowid", quoteIdent(table)))
	if err != nil {
		if isMissingTable(err) {
			return Batch{}, fmt.Errorf("table %s: %w", table, errors.ErrNotFound)
		}
		return Batch{}, fmt.Errorf("read %s: %w", table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return Batch{}, fmt.Errorf("read %s columns: %w", table, err)
	}

	batch := Batch{Table: table, Header: header}
	values := make([]sql.NullString, len(header))
	scan := make([]any, len(header))
	for i := range values {
		scan[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return Batch{}, fmt.Errorf("scan %s: %w", table, err)
		}
		row := make([]string, len(header))
		for i, v := range values {
			row[i] = v.String
		}
		batch.Rows = append(batch.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return Batch{}, fmt.Errorf("read %s: %w", table, err)
	}
	return batch, nil
}

func createStmt(batch Batch) string {
	cols := make([]string, len(batch.Header))
	for i, col := range batch.Header {
		cols[i] = quoteIdent(col) + " TEXT"
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(batch.Table), strings.Join(cols, ", "))
}

func insertStmt(batch Batch) string {
	cols := make([]string, len(batch.Header))
	params := make([]string, len(batch.Header))
	for i, col := range batch.Header {
		cols[i] = quoteIdent(col)
		params[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(batch.Table), strings.Join(cols, ", "), strings.Join(params, ", "))
}

// quoteIdent quotes a SQL identifier. Table and column names are fixed
// internal constants, but quoting keeps them safe regardless.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}
