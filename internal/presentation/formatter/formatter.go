package formatter

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/penwyp/go-garmin-csv/internal/core/model"
	"github.com/penwyp/go-garmin-csv/internal/core/upload"
	"github.com/penwyp/go-garmin-csv/internal/util"
)

// Formatter renders processed files.
type Formatter interface {
	Format(w io.Writer, entries []upload.Entry) error
}

// Names lists the supported output formats.
var Names = []string{"table", "json", "csv", "summary", "xlsx", "chart"}

// New returns the formatter registered under name.
func New(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "table", "":
		return NewTableFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	case "summary":
		return NewSummaryFormatter(), nil
	case "xlsx":
		return NewXLSXFormatter(), nil
	case "chart":
		return NewChartFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (supported: %s)", name, strings.Join(Names, ", "))
	}
}

// IsBinary reports whether the format should not be written to a terminal.
func IsBinary(name string) bool {
	return strings.EqualFold(name, "xlsx")
}

func datasets(entries []upload.Entry) []*model.UploadDataset {
	out := make([]*model.UploadDataset, 0, len(entries))
	for _, e := range entries {
		if e.OK() {
			out = append(out, e.Dataset)
		}
	}
	return out
}

func failures(entries []upload.Entry) []upload.Entry {
	var out []upload.Entry
	for _, e := range entries {
		if !e.OK() {
			out = append(out, e)
		}
	}
	return out
}

// formatDate renders an epoch-millisecond timestamp as a calendar date in
// the configured timezone.
func formatDate(ts int64) string {
	return time.UnixMilli(ts).In(util.GetTimeProvider().Location()).Format("2006-01-02")
}

// formatValue renders a data point for humans. Sleep totals are shown as
// durations.
func formatValue(metric model.MetricKind, v model.DisplayValue) string {
	if !v.IsNumber {
		return v.Text
	}
	if metric == model.MetricSleep {
		return util.FormatMinutes(v.Number)
	}
	return util.FormatFloat(v.Number)
}

// DatasetStats summarizes the values of one dataset.
type DatasetStats struct {
	Points  int
	Numeric int
	First   int64
	Last    int64
	Min     float64
	Max     float64
	Avg     float64
}

func computeStats(ds *model.UploadDataset) DatasetStats {
	stats := DatasetStats{Points: len(ds.DataPoints)}
	if stats.Points == 0 {
		return stats
	}

	stats.First = ds.DataPoints[0].Timestamp
	stats.Last = ds.DataPoints[stats.Points-1].Timestamp
	stats.Min = math.Inf(1)
	stats.Max = math.Inf(-1)

	var sum float64
	for _, p := range ds.DataPoints {
		if !p.Value.IsNumber {
			continue
		}
		stats.Numeric++
		sum += p.Value.Number
		stats.Min = math.Min(stats.Min, p.Value.Number)
		stats.Max = math.Max(stats.Max, p.Value.Number)
	}

	if stats.Numeric == 0 {
		stats.Min, stats.Max = 0, 0
		return stats
	}
	stats.Avg = sum / float64(stats.Numeric)
	return stats
}

// errorText is the one-line reason shown for a failed entry.
func errorText(e upload.Entry) string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "no dataset"
}
