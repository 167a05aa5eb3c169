package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
)

// FromCSV reads a table from CSV data. The first line is the header; empty
// cells load as null.
func FromCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	t := New(header...)
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", len(t.Rows)+1, err)
		}
		rec := make(Record, len(header))
		for i, col := range header {
			if i >= len(fields) || fields[i] == "" {
				rec[col] = Null()
				continue
			}
			rec[col] = String(fields[i])
		}
		t.Append(rec)
	}
	return t, nil
}

// WriteCSV serializes the table: header row first, one line per record,
// values comma separated, embedded commas and newlines quoted. Null cells
// render as empty strings.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	fields := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			fields[i] = row[col].Str
		}
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
