package formatter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/penwyp/go-garmin-csv/internal/core/upload"
)

var csvHeaders = []string{"file", "metric", "date", "timestamp", "value"}

// CSVFormatter writes one record per data point across all datasets.
type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(w io.Writer, entries []upload.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeaders); err != nil {
		return err
	}

	for _, ds := range datasets(entries) {
		for _, p := range ds.DataPoints {
			record := []string{
				ds.FileName,
				ds.YKey.Column(),
				formatDate(p.Timestamp),
				strconv.FormatInt(p.Timestamp, 10),
				p.Value.String(),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
