package warehouse

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lodeworks/refinery/pkg/errors"
)

// File and directory permissions for published output.
const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// CSVDir is a Warehouse that publishes each table as <dir>/<table>.csv.
// Replace writes the new contents to a temporary file in the same directory
// and renames it over the old one, so readers only ever see a complete table.
type CSVDir struct {
	dir string
}

// NewCSVDir creates a CSV-directory warehouse rooted at dir. The directory is
// created on first write.
func NewCSVDir(dir string) *CSVDir {
	return &CSVDir{dir: dir}
}

// Replace implements Warehouse.
func (w *CSVDir) Replace(ctx context.Context, batch Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, dirPermissions); err != nil {
		return errors.WrapIO("create", w.dir, err)
	}

	tmp, err := os.CreateTemp(w.dir, batch.Table+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", w.dir, err)
	}
	tmpName := tmp.Name()
	// The rename below consumes the temp file on success; this covers every
	// failure path.
	defer os.Remove(tmpName)

	if err := writeCSV(tmp, batch); err != nil {
		tmp.Close()
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, filePermissions); err != nil {
		return errors.WrapIO("write", tmpName, err)
	}

	final := w.path(batch.Table)
	if err := os.Rename(tmpName, final); err != nil {
		return errors.WrapIO("write", final, err)
	}
	return nil
}

// Read implements Warehouse.
func (w *CSVDir) Read(ctx context.Context, table string) (Batch, error) {
	if err := ctx.Err(); err != nil {
		return Batch{}, err
	}

	path := w.path(table)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Batch{}, fmt.Errorf("table %s: %w", table, errors.ErrNotFound)
		}
		return Batch{}, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return Batch{Table: table}, nil
	}
	if err != nil {
		return Batch{}, errors.WrapParse("csv", path, err)
	}

	batch := Batch{Table: table, Header: header}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Batch{}, errors.WrapParse("csv", path, err)
		}
		batch.Rows = append(batch.Rows, row)
	}
	return batch, nil
}

func (w *CSVDir) path(table string) string {
	return filepath.Join(w.dir, table+".csv")
}

func writeCSV(f *os.File, batch Batch) error {
	cw := csv.NewWriter(f)
	if err := cw.Write(batch.Header); err != nil {
		return err
	}
	for _, row := range batch.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
