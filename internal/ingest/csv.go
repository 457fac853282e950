package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// ReadCSV loads a CSV file into a Table. The first row is the header; rows
// may have variable field counts (short rows read as empty cells).
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "csv: open %s", path)
	}
	defer f.Close()

	t, err := ParseCSV(f, filepath.Base(path))
	if err != nil {
		return nil, eris.Wrapf(err, "csv: parse %s", path)
	}
	return t, nil
}

// ParseCSV reads CSV content from r into a Table.
func ParseCSV(r io.Reader, source string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.TrimLeadingSpace = true

	var header []string
	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}
		if header == nil {
			header = record
			continue
		}
		rows = append(rows, record)
	}

	if header == nil {
		return nil, eris.Errorf("csv: %s is empty", source)
	}
	return NewTable(source, header, rows), nil
}
