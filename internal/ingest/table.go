// Package ingest loads the tabular sample inputs (CSV or XLSX) and parses
// them into typed facts with the pipeline's coercion semantics: schema-shape
// problems are errors, data-quality problems degrade to sentinels.
package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Table is a header-mapped view of one tabular file.
type Table struct {
	Source string // file name, for error messages
	Header []string
	Rows   [][]string

	cols map[string]int
}

// NewTable builds a Table and indexes its header.
func NewTable(source string, header []string, rows [][]string) *Table {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	return &Table{Source: source, Header: header, Rows: rows, cols: cols}
}

// Col returns the index of a column, or -1 when absent. Falls back through
// the provided aliases in order.
func (t *Table) Col(name string, aliases ...string) int {
	if i, ok := t.cols[name]; ok {
		return i
	}
	for _, a := range aliases {
		if i, ok := t.cols[a]; ok {
			return i
		}
	}
	return -1
}

// Cell returns the raw cell at a column index, or "" when the row is short.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// SchemaError reports required columns missing from an input table.
// Malformed schema is a caller bug and aborts the run, unlike cell-level
// data problems which degrade to sentinel values.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("ingest: %s: missing required columns: %s", e.Source, strings.Join(e.Missing, ", "))
}

// requireColumns collects every missing column before failing, so the caller
// sees the full list at once.
type column struct {
	name    string
	aliases []string
}

func (t *Table) requireColumns(cols ...column) error {
	var missing []string
	for _, c := range cols {
		if t.Col(c.name, c.aliases...) < 0 {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Source: t.Source, Missing: missing}
	}
	return nil
}

// Float coerces a cell to float64. Empty or unparseable cells become the NaN
// sentinel, never an error.
func Float(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// FloatOrZero coerces a cell to float64 with a zero default. Used for the
// risk register, where absent numbers mean "no impact", not "unknown".
func FloatOrZero(s string) float64 {
	v := Float(s)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// dateLayouts are tried in order when parsing delivery dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// Date parses a delivery date cell. Unparseable cells yield the zero time,
// which downstream treats as "no observation".
func Date(s string) time.Time {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
