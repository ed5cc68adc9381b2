package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-garmin-csv/internal/core/upload"
	"github.com/penwyp/go-garmin-csv/internal/util"
)

type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{"File", "Metric", "Date", "Month", "Value"},
	}
}

// valueColumn is right-aligned.
const valueColumn = 4

func (f *TableFormatter) Format(w io.Writer, entries []upload.Entry) error {
	groups := f.buildRows(entries)

	totalPoints := 0
	for _, g := range groups {
		totalPoints += len(g)
	}
	total := []string{"Total", fmt.Sprintf("%d files", len(groups)), "", "", fmt.Sprintf("%d", totalPoints)}

	widths := f.calculateColumnWidths(groups, total)

	f.printBorder(w, widths, "top")
	f.printRow(w, f.headers, widths)
	f.printBorder(w, widths, "middle")

	for i, rows := range groups {
		for _, row := range rows {
			f.printRow(w, row, widths)
		}
		if i < len(groups)-1 {
			f.printBorder(w, widths, "middle")
		}
	}

	f.printBorder(w, widths, "middle")
	f.printRow(w, total, widths)
	f.printBorder(w, widths, "bottom")

	if failed := failures(entries); len(failed) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, util.FormatDiagnosticTitle(fmt.Sprintf("Failed files (%d):", len(failed))))
		width := util.TerminalWidth(120)
		for _, e := range failed {
			prefix := "  " + e.FileName + ": "
			msg := util.Truncate(errorText(e), width-util.GetDisplayWidth(prefix))
			fmt.Fprintf(w, "%s%s\n", prefix, util.FormatErrorText(msg))
		}
	}

	return nil
}

// buildRows renders every data point, grouped by dataset. The file and
// metric are only printed on the first row of each group.
func (f *TableFormatter) buildRows(entries []upload.Entry) [][][]string {
	var groups [][][]string
	for _, ds := range datasets(entries) {
		rows := make([][]string, 0, len(ds.DataPoints))
		for i, p := range ds.DataPoints {
			file, metric := "", ""
			if i == 0 {
				file, metric = ds.FileName, ds.YKey.Column()
			}
			rows = append(rows, []string{
				file,
				metric,
				formatDate(p.Timestamp),
				p.Label,
				formatValue(ds.YKey, p.Value),
			})
		}
		groups = append(groups, rows)
	}
	return groups
}

// calculateColumnWidths sizes each column to its widest cell by display
// width, so multi-byte names such as "VO₂ Max" line up.
func (f *TableFormatter) calculateColumnWidths(groups [][][]string, total []string) []int {
	widths := make([]int, len(f.headers))

	measure := func(values []string) {
		for i, v := range values {
			if w := util.GetDisplayWidth(v); w > widths[i] {
				widths[i] = w
			}
		}
	}

	measure(f.headers)
	for _, rows := range groups {
		for _, row := range rows {
			measure(row)
		}
	}
	measure(total)

	for i := range widths {
		if widths[i] < 6 {
			widths[i] = 6
		}
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(w io.Writer, widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	fmt.Fprintln(w, b.String())
}

func (f *TableFormatter) printRow(w io.Writer, values []string, widths []int) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		if i == valueColumn {
			b.WriteString(" " + util.PadLeft(value, widths[i]) + " │")
		} else {
			b.WriteString(" " + util.PadRight(value, widths[i]) + " │")
		}
	}
	fmt.Fprintln(w, b.String())
}
