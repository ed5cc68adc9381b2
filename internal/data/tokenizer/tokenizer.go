package tokenizer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-garmin-csv/internal/core/model"
)

// RowFunc converts one data row. Returning nil drops the row.
type RowFunc func(row model.RawRow, index int, columns []string) *model.NormalizedRow

// ParsedTable holds the non-nil RowFunc results together with the header
// columns of the table they came from.
type ParsedTable struct {
	rows    []model.NormalizedRow
	Columns []string
}

// Len returns the number of accepted rows.
func (t *ParsedTable) Len() int {
	return len(t.rows)
}

// Parse tokenizes CSV text. The first record is the header; every following
// record becomes a RawRow keyed by header name. Short records get "" for the
// missing fields and a repeated header name keeps the last value.
func Parse(text string, fn RowFunc) (*ParsedTable, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return &ParsedTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", model.ErrStructuralCSV, err)
	}

	columns := make([]string, len(header))
	copy(columns, header)

	table := &ParsedTable{Columns: columns}
	index := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("%w: line %d: %v", model.ErrStructuralCSV, parseErr.Line, parseErr.Err)
			}
			return nil, fmt.Errorf("%w: %v", model.ErrStructuralCSV, err)
		}

		row := make(model.RawRow, len(columns))
		for i, name := range columns {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}

		if result := fn(row, index, model.CloneColumns(columns)); result != nil {
			table.rows = append(table.rows, *result)
		}
		index++
	}

	return table, nil
}

// Materialize returns the table's rows as a plain slice, without the
// header metadata.
func Materialize(table *ParsedTable) []model.NormalizedRow {
	if table == nil {
		return nil
	}
	out := make([]model.NormalizedRow, len(table.rows))
	copy(out, table.rows)
	return out
}
