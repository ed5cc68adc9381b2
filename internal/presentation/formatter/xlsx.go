package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-garmin-csv/internal/core/model"
	"github.com/penwyp/go-garmin-csv/internal/core/upload"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	maxSheetName  = 31
	invalidSheetC = `:\/?*[]`
)

// XLSXFormatter writes a workbook with a summary sheet and one sheet per
// dataset.
type XLSXFormatter struct{}

func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{}
}

func (f *XLSXFormatter) Format(w io.Writer, entries []upload.Entry) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName(wb.GetSheetName(0), summarySheet); err != nil {
		return err
	}
	if err := wb.SetSheetRow(summarySheet, "A1", &[]interface{}{"File", "Metric", "Points", "Status"}); err != nil {
		return err
	}

	used := map[string]bool{strings.ToLower(summarySheet): true}
	for i, e := range entries {
		status, metric, points := "ok", "", 0
		if e.OK() {
			metric = e.Dataset.YKey.Column()
			points = e.Dataset.Len()
		} else {
			status = errorText(e)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(summarySheet, cell, &[]interface{}{e.FileName, metric, points, status}); err != nil {
			return err
		}

		if e.OK() {
			name := uniqueSheetName(e.Dataset.FileName, used)
			if err := writeDatasetSheet(wb, name, e.Dataset); err != nil {
				return fmt.Errorf("write sheet for %s: %w", e.Dataset.FileName, err)
			}
		}
	}

	return wb.Write(w)
}

func writeDatasetSheet(wb *excelize.File, sheet string, ds *model.UploadDataset) error {
	if _, err := wb.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"Date", "Month", ds.YKey.Column()}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, p := range ds.DataPoints {
		var value interface{} = p.Value.Text
		if p.Value.IsNumber {
			value = p.Value.Number
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(sheet, cell, &[]interface{}{formatDate(p.Timestamp), p.Label, value}); err != nil {
			return err
		}
	}
	return nil
}

// uniqueSheetName derives a valid, unused sheet name from a file name.
func uniqueSheetName(fileName string, used map[string]bool) string {
	base := strings.TrimSuffix(fileName, ".csv")
	base = strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidSheetC, r) {
			return '_'
		}
		return r
	}, base)
	if base == "" {
		base = "Sheet"
	}

	name := truncateRunes(base, maxSheetName)
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
