package sources

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lodeworks/refinery/pkg/errors"
	"github.com/lodeworks/refinery/pkg/tables"
)

// rawDateLayout is the format calendar dates use in the flat-file extracts.
const rawDateLayout = "2006-01-02"

// csvSource reads one entity's raw batch from a headered CSV file.
type csvSource[T any] struct {
	path    string
	columns []string
	decode  func(row []string) T
}

// Fetch implements Source. The file must exist and carry exactly the entity's
// fixed column set; anything else is a pipeline-level fault. Cell-level
// anomalies are not: cells that fail to parse as their declared type decode
// to null and the row is kept.
func (s *csvSource[T]) Fetch(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.WrapIO("open", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = false // whitespace is data here; the normalizer scrubs it

	header, err := r.Read()
	if err != nil {
		return nil, errors.WrapParse("csv", s.path, err)
	}
	if err := s.checkHeader(header); err != nil {
		return nil, err
	}

	var out []T
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", s.path, err)
		}
		out = append(out, s.decode(row))
	}
	return out, nil
}

// checkHeader enforces the fixed raw schema: same columns, same order.
func (s *csvSource[T]) checkHeader(header []string) error {
	if len(header) != len(s.columns) {
		return fmt.Errorf("%s: %w: got %d columns, want %d",
			s.path, errors.ErrSchemaMismatch, len(header), len(s.columns))
	}
	for i, col := range s.columns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return fmt.Errorf("%s: %w: column %d is %q, want %q",
				s.path, errors.ErrSchemaMismatch, i, header[i], col)
		}
	}
	return nil
}

// Cell parsers. An empty or unparseable cell is a null value, never an error;
// records are not dropped for cell-level anomalies.

func parseInt(cell string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return nil
	}
	return &v
}

func parseFloat(cell string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseDate(cell string) *time.Time {
	t, err := time.ParseInLocation(rawDateLayout, strings.TrimSpace(cell), time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// CustomerCSV reads raw customer profiles from a CRM extract.
func CustomerCSV(path string) Source[tables.RawCustomer] {
	return &csvSource[tables.RawCustomer]{
		path: path,
		columns: []string{
			"cst_id", "cst_key", "cst_firstname", "cst_lastname",
			"cst_marital_status", "cst_gndr", "cst_create_date",
		},
		decode: func(row []string) tables.RawCustomer {
			return tables.RawCustomer{
				ID:            parseInt(row[0]),
				Key:           row[1],
				FirstName:     row[2],
				LastName:      row[3],
				MaritalStatus: row[4],
				Gender:        row[5],
				CreatedAt:     parseDate(row[6]),
			}
		},
	}
}

// ProductCSV reads raw product versions from a CRM extract.
func ProductCSV(path string) Source[tables.RawProduct] {
	return &csvSource[tables.RawProduct]{
		path: path,
		columns: []string{
			"prd_id", "prd_key", "prd_nm", "prd_cost",
			"prd_line", "prd_start_dt", "prd_end_dt",
		},
		decode: func(row []string) tables.RawProduct {
			return tables.RawProduct{
				ID:    parseInt(row[0]),
				Key:   row[1],
				Name:  row[2],
				Cost:  parseFloat(row[3]),
				Line:  row[4],
				Start: parseDate(row[5]),
				End:   parseDate(row[6]),
			}
		},
	}
}

// SalesCSV reads raw sales lines from a CRM extract.
func SalesCSV(path string) Source[tables.RawSale] {
	return &csvSource[tables.RawSale]{
		path: path,
		columns: []string{
			"sls_ord_num", "sls_prd_key", "sls_cust_id", "sls_order_dt",
			"sls_ship_dt", "sls_due_dt", "sls_sales", "sls_quantity", "sls_price",
		},
		decode: func(row []string) tables.RawSale {
			return tables.RawSale{
				OrderNumber: row[0],
				ProductKey:  row[1],
				CustomerID:  parseInt(row[2]),
				OrderDate:   parseInt(row[3]),
				ShipDate:    parseInt(row[4]),
				DueDate:     parseInt(row[5]),
				Sales:       parseFloat(row[6]),
				Quantity:    parseInt(row[7]),
				Price:       parseFloat(row[8]),
			}
		},
	}
}

// DemographicCSV reads raw customer demographics from an ERP extract.
func DemographicCSV(path string) Source[tables.RawDemographic] {
	return &csvSource[tables.RawDemographic]{
		path:    path,
		columns: []string{"cid", "bdate", "gen"},
		decode: func(row []string) tables.RawDemographic {
			return tables.RawDemographic{
				ID:        row[0],
				BirthDate: parseDate(row[1]),
				Gender:    row[2],
			}
		},
	}
}

// LocationCSV reads raw customer locations from an ERP extract.
func LocationCSV(path string) Source[tables.RawLocation] {
	return &csvSource[tables.RawLocation]{
		path:    path,
		columns: []string{"cid", "cntry"},
		decode: func(row []string) tables.RawLocation {
			return tables.RawLocation{
				ID:      row[0],
				Country: row[1],
			}
		},
	}
}

// CategoryCSV reads raw product categories from an ERP extract.
func CategoryCSV(path string) Source[tables.RawCategory] {
	return &csvSource[tables.RawCategory]{
		path:    path,
		columns: []string{"id", "cat", "subcat", "maintenance"},
		decode: func(row []string) tables.RawCategory {
			return tables.RawCategory{
				ID:          row[0],
				Category:    row[1],
				Subcategory: row[2],
				Maintenance: row[3],
			}
		},
	}
}
