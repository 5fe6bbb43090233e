// Package audit re-checks the reconciliation invariants against published
// silver output: key uniqueness, canonical-vocabulary closure, scrubbed
// strings, sales non-negativity, and validity-interval contiguity. Checks are
// read-side only; the audit never modifies a table.
//
// An audit works on the published string form of a batch, so it can run
// against any warehouse backend and catches output that was corrupted after
// the pipelines wrote it.
package audit

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/lodeworks/refinery/pkg/errors"
	"github.com/lodeworks/refinery/pkg/tables"
	"github.com/lodeworks/refinery/pkg/warehouse"
)

// Batch audits one entity's silver table. The returned slice is empty when
// the batch satisfies every invariant; otherwise it holds one
// errors.ValidationError per violation.
func Batch(entity tables.Entity, batch warehouse.Batch) []error {
	header := headerFor(entity)
	if !slices.Equal(batch.Header, header) {
		return []error{fmt.Errorf("table %s: %w: column set does not match the %s silver schema",
			batch.Table, errors.ErrSchemaMismatch, entity)}
	}

	var violations []error
	violations = append(violations, scrubbed(batch)...)
	violations = append(violations, uniqueKeys(entity, batch)...)
	violations = append(violations, vocabularies(entity, batch)...)

	switch entity {
	case tables.EntitySales:
		violations = append(violations, salesAmounts(batch)...)
	case tables.EntityProducts:
		violations = append(violations, intervalContiguity(batch)...)
	}
	return violations
}

// headerFor returns the silver column set of an entity.
func headerFor(entity tables.Entity) []string {
	switch entity {
	case tables.EntityCustomers:
		return tables.CustomerHeader
	case tables.EntityProducts:
		return tables.ProductHeader
	case tables.EntitySales:
		return tables.SaleHeader
	case tables.EntityDemographics:
		return tables.DemographicHeader
	case tables.EntityLocations:
		return tables.LocationHeader
	case tables.EntityCategories:
		return tables.CategoryHeader
	default:
		return nil
	}
}

// keyColumns returns the natural-key columns of an entity's silver table.
func keyColumns(entity tables.Entity) []string {
	switch entity {
	case tables.EntityCustomers:
		return []string{"cst_id"}
	case tables.EntityProducts:
		return []string{"prd_id"}
	case tables.EntitySales:
		return []string{"sls_ord_num", "sls_prd_key"}
	case tables.EntityDemographics, tables.EntityLocations:
		return []string{"cid"}
	case tables.EntityCategories:
		return []string{"id"}
	default:
		return nil
	}
}

// col returns the index of a named column. Headers are verified before any
// per-row check runs, so a miss here is a programming error.
func col(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	panic("audit: unknown column " + name)
}

// scrubbed flags cells carrying leading/trailing whitespace or embedded
// line breaks.
func scrubbed(batch warehouse.Batch) []error {
	var violations []error
	for i, row := range batch.Rows {
		for j, cell := range row {
			switch {
			case strings.ContainsAny(cell, "\r\n"):
				violations = append(violations, errors.NewValidationError(
					batch.Header[j], cell, fmt.Sprintf("row %d carries an embedded line break", i+1)))
			case strings.TrimSpace(cell) != cell:
				violations = append(violations, errors.NewValidationError(
					batch.Header[j], cell, fmt.Sprintf("row %d is not scrubbed", i+1)))
			}
		}
	}
	return violations
}

// uniqueKeys flags null and duplicate natural keys.
func uniqueKeys(entity tables.Entity, batch warehouse.Batch) []error {
	columns := keyColumns(entity)
	indexes := make([]int, len(columns))
	for i, name := range columns {
		indexes[i] = col(batch.Header, name)
	}

	field := strings.Join(columns, "+")
	seen := make(map[string]bool, len(batch.Rows))

	var violations []error
	for i, row := range batch.Rows {
		parts := make([]string, len(indexes))
		null := false
		for j, idx := range indexes {
			parts[j] = row[idx]
			null = null || row[idx] == ""
		}
		key := strings.Join(parts, "\x1f")

		switch {
		case null:
			violations = append(violations, errors.NewValidationError(
				field, key, fmt.Sprintf("row %d has a null natural key", i+1)))
		case seen[key]:
			violations = append(violations, errors.NewValidationError(
				field, key, fmt.Sprintf("row %d duplicates a natural key", i+1)))
		default:
			seen[key] = true
		}
	}
	return violations
}

// vocabularies flags enumerated fields holding values outside their closed
// canonical vocabulary.
func vocabularies(entity tables.Entity, batch warehouse.Batch) []error {
	switch entity {
	case tables.EntityCustomers:
		return append(
			closedColumn(batch, "cst_marital_status", func(s string) bool {
				return tables.MaritalStatus(s).IsValid()
			}),
			closedColumn(batch, "cst_gndr", func(s string) bool {
				return tables.Gender(s).IsValid()
			})...)
	case tables.EntityProducts:
		return closedColumn(batch, "prd_line", func(s string) bool {
			return tables.ProductLine(s).IsValid()
		})
	case tables.EntityDemographics:
		return closedColumn(batch, "gen", func(s string) bool {
			return tables.Gender(s).IsValid()
		})
	case tables.EntityCategories:
		return closedColumn(batch, "maintenance", func(s string) bool {
			return tables.MaintenanceFlag(s).IsValid()
		})
	default:
		return nil
	}
}

// closedColumn flags cells in one column that fail the vocabulary predicate.
func closedColumn(batch warehouse.Batch, name string, valid func(string) bool) []error {
	idx := col(batch.Header, name)

	var violations []error
	for i, row := range batch.Rows {
		if !valid(row[idx]) {
			violations = append(violations, errors.NewValidationError(
				name, row[idx], fmt.Sprintf("row %d is outside the closed vocabulary", i+1)))
		}
	}
	return violations
}

// salesAmounts flags sales lines whose repaired numeric triple escaped its
// invariants: amount, quantity and price must all parse and be non-negative.
func salesAmounts(batch warehouse.Batch) []error {
	var violations []error
	for _, name := range []string{"sls_sales", "sls_quantity", "sls_price"} {
		idx := col(batch.Header, name)
		for i, row := range batch.Rows {
			v, err := strconv.ParseFloat(row[idx], 64)
			if err != nil {
				violations = append(violations, errors.NewValidationError(
					name, row[idx], fmt.Sprintf("row %d is not numeric", i+1)))
				continue
			}
			if v < 0 {
				violations = append(violations, errors.NewValidationError(
					name, row[idx], fmt.Sprintf("row %d is negative", i+1)))
			}
		}
	}
	return violations
}

// version is one product version's validity interval as published.
type version struct {
	row   int
	start *time.Time
	end   *time.Time
}

// intervalContiguity flags product version chains whose validity intervals
// are not contiguous: for consecutive versions of one product key, the
// earlier version's end date must be the later version's start date minus
// one day. The last version's end date is unconstrained.
func intervalContiguity(batch warehouse.Batch) []error {
	catIdx := col(batch.Header, "cat_id")
	keyIdx := col(batch.Header, "prd_key")
	startIdx := col(batch.Header, "prd_start_dt")
	endIdx := col(batch.Header, "prd_end_dt")

	chains := make(map[string][]version)
	var order []string
	for i, row := range batch.Rows {
		key := row[catIdx] + "\x1f" + row[keyIdx]
		if _, ok := chains[key]; !ok {
			order = append(order, key)
		}
		chains[key] = append(chains[key], version{
			row:   i + 1,
			start: parseSilverDate(row[startIdx]),
			end:   parseSilverDate(row[endIdx]),
		})
	}

	var violations []error
	for _, key := range order {
		chain := chains[key]
		slices.SortStableFunc(chain, func(a, b version) int {
			return dateOrZero(a.start).Compare(dateOrZero(b.start))
		})

		for i := 0; i < len(chain)-1; i++ {
			next := chain[i+1]
			if next.start == nil {
				continue
			}
			want := next.start.AddDate(0, 0, -1)
			if chain[i].end == nil || !chain[i].end.Equal(want) {
				violations = append(violations, errors.NewValidationError(
					"prd_end_dt", fmtDate(chain[i].end),
					fmt.Sprintf("row %d does not close the version interval at %s",
						chain[i].row, want.Format(tables.DateFormat))))
			}
		}
	}
	return violations
}

func parseSilverDate(cell string) *time.Time {
	if cell == "" {
		return nil
	}
	t, err := time.ParseInLocation(tables.DateFormat, cell, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

func dateOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(tables.DateFormat)
}
