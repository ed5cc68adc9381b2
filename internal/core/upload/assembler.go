package upload

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/penwyp/go-garmin-csv/internal/core/model"
)

// Assemble sorts rows by date and builds the chart dataset for one file.
// All rows of a file share one metric, so the first row decides the value
// column. Month/year labels are computed in loc.
func Assemble(rows []model.NormalizedRow, fileName string, loc *time.Location) (*model.UploadDataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", fileName, model.ErrEmptyDataset)
	}
	if !rows[0].Type.IsChartable() {
		return nil, fmt.Errorf("%s: metric %s: %w", fileName, rows[0].Type, model.ErrUnrecognizedSchema)
	}
	if loc == nil {
		loc = time.Local
	}

	type keyed struct {
		ts  int64
		row model.NormalizedRow
	}
	sorted := make([]keyed, len(rows))
	for i, row := range rows {
		ts, err := strconv.ParseInt(row.Row[model.ColumnDate], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d has no normalized date %q: %w",
				fileName, i, row.Row[model.ColumnDate], model.ErrDateRepairFailure)
		}
		sorted[i] = keyed{ts: ts, row: row}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ts < sorted[j].ts
	})

	yKey := rows[0].Type
	points := make([]model.DataPoint, len(sorted))
	for i, k := range sorted {
		points[i] = model.DataPoint{
			Metric:    yKey,
			Value:     model.NewDisplayValue(k.row.Row[yKey.Column()]),
			Label:     MonthYearLabel(k.ts, loc),
			Timestamp: k.ts,
		}
	}

	return &model.UploadDataset{
		FileName:   fileName,
		XKey:       model.MetricDate,
		YKey:       yKey,
		DataPoints: points,
	}, nil
}

// MonthYearLabel formats an epoch-millisecond timestamp as "<month>/<year>"
// with a 1-based, unpadded month.
func MonthYearLabel(ts int64, loc *time.Location) string {
	t := time.UnixMilli(ts).In(loc)
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Year())
}
