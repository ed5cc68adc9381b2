package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-garmin-csv/internal/core/model"
	"github.com/penwyp/go-garmin-csv/internal/core/upload"
	"github.com/penwyp/go-garmin-csv/internal/util"
)

// SummaryFormatter prints per-file statistics and the reasons files or rows
// were rejected.
type SummaryFormatter struct{}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

func (f *SummaryFormatter) Format(w io.Writer, entries []upload.Entry) error {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, util.FormatHeaderTitle("Garmin Connect Import Summary"))
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No files to summarize")
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.Repeat("=", 60))
		return nil
	}

	ok := datasets(entries)
	failed := failures(entries)
	fmt.Fprintln(w, util.FormatOverviewTitle(fmt.Sprintf("Files: %d imported, %d failed", len(ok), len(failed))))

	for _, e := range entries {
		if !e.OK() {
			continue
		}
		ds := e.Dataset
		stats := computeStats(ds)

		fmt.Fprintf(w, "\n%s:\n", util.FormatDataTitle(ds.FileName))
		fmt.Fprintf(w, "  Metric:        %s\n", ds.YKey.Column())
		fmt.Fprintf(w, "  Points:        %s\n", util.FormatNumber(stats.Points))
		if stats.Points > 0 {
			first, last := formatDate(stats.First), formatDate(stats.Last)
			if first == last {
				fmt.Fprintf(w, "  Date Range:    %s\n", first)
			} else {
				fmt.Fprintf(w, "  Date Range:    %s to %s\n", first, last)
			}
		}
		if stats.Numeric > 0 {
			fmt.Fprintf(w, "  Min:           %s\n", formatStat(ds.YKey, stats.Min))
			fmt.Fprintf(w, "  Max:           %s\n", formatStat(ds.YKey, stats.Max))
			fmt.Fprintf(w, "  Average:       %s\n", formatStat(ds.YKey, stats.Avg))
		}
		if n := stats.Points - stats.Numeric; n > 0 {
			fmt.Fprintf(w, "  Non-numeric:   %d\n", n)
		}
		printDiagnostics(w, e.Diagnostics)
	}

	if len(failed) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, util.FormatDiagnosticTitle("Failed Files:"))
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for _, e := range failed {
			fmt.Fprintf(w, "\n%s:\n", e.FileName)
			fmt.Fprintf(w, "  Error:         %s\n", util.FormatErrorText(errorText(e)))
			printDiagnostics(w, e.Diagnostics)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	return nil
}

func formatStat(metric model.MetricKind, v float64) string {
	return formatValue(metric, model.DisplayValue{Number: v, IsNumber: true})
}

// printDiagnostics lists row-level problems, counted by kind.
func printDiagnostics(w io.Writer, diags []model.Diagnostic) {
	if len(diags) == 0 {
		return
	}

	counts := make(map[model.DiagnosticKind]int)
	var order []model.DiagnosticKind
	for _, d := range diags {
		if counts[d.Kind] == 0 {
			order = append(order, d.Kind)
		}
		counts[d.Kind]++
	}

	fmt.Fprintln(w, "  Diagnostics:")
	for _, kind := range order {
		fmt.Fprintf(w, "    %s: %d\n", kind, counts[kind])
	}
	for _, d := range diags {
		fmt.Fprintf(w, "    - %s\n", d.Error())
	}
}
