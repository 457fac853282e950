// Package store persists the pipeline's tables as flat columnar CSV files.
// Tables are schema-on-write and overwritten wholesale on each run; there is
// no incremental update. NaN cells round-trip as empty fields.
package store

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
)

// Persisted table file names.
const (
	EVMTimeseriesFile = "evm_timeseries.csv"
	RunsFile          = "monte_carlo_runs.csv"
	SummaryFile       = "monte_carlo_summary.csv"
	CurveFile         = "forecast_s_curves.csv"
	ScheduleFile      = "schedule.csv"
	ImpactsFile       = "procurement_impacts.csv"
)

// Store reads and writes the processed tables under one directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the processed-table directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the absolute location of a table file.
func (s *Store) Path(file string) string {
	return filepath.Join(s.dir, file)
}

// writeTable truncates and rewrites one table file.
func (s *Store) writeTable(file string, header []string, rows [][]string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return eris.Wrapf(err, "store: create %s", s.dir)
	}

	f, err := os.Create(s.Path(file))
	if err != nil {
		return eris.Wrapf(err, "store: create %s", file)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return eris.Wrapf(err, "store: write %s header", file)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return eris.Wrapf(err, "store: write %s row", file)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "store: flush %s", file)
	}
	return f.Close()
}

// readTable loads one table file and returns its header and rows.
func (s *Store) readTable(file string) ([]string, [][]string, error) {
	f, err := os.Open(s.Path(file))
	if err != nil {
		return nil, nil, eris.Wrapf(err, "store: open %s", file)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, eris.Wrapf(err, "store: read %s", file)
	}
	if len(records) == 0 {
		return nil, nil, eris.Errorf("store: %s is empty", file)
	}
	return records[0], records[1:], nil
}

// formatFloat renders a float cell; the NaN sentinel becomes an empty field.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// parseFloat reads a float cell; empty or unparseable fields become NaN.
func parseFloat(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
