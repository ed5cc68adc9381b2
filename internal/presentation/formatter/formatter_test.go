package formatter

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-garmin-csv/internal/core/model"
	"github.com/penwyp/go-garmin-csv/internal/core/upload"
	"github.com/penwyp/go-garmin-csv/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func init() {
	util.SetColorEnabled(false)
	_ = util.InitializeTimeProvider("UTC")
}

func ts(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).UnixMilli()
}

func point(metric model.MetricKind, t int64, raw string) model.DataPoint {
	return model.DataPoint{
		Metric:    metric,
		Value:     model.NewDisplayValue(raw),
		Label:     upload.MonthYearLabel(t, time.UTC),
		Timestamp: t,
	}
}

func sampleEntries() []upload.Entry {
	steps := &model.UploadDataset{
		FileName: "steps.csv",
		XKey:     model.MetricDate,
		YKey:     model.MetricSteps,
		DataPoints: []model.DataPoint{
			point(model.MetricSteps, ts(2024, 11, 14), "9000"),
			point(model.MetricSteps, ts(2024, 11, 15), "8123"),
		},
	}
	vo2 := &model.UploadDataset{
		FileName: "vo2max.csv",
		XKey:     model.MetricDate,
		YKey:     model.MetricVO2Max,
		DataPoints: []model.DataPoint{
			point(model.MetricVO2Max, ts(2024, 10, 1), "51"),
			point(model.MetricVO2Max, ts(2024, 11, 1), "52.5"),
		},
	}
	return []upload.Entry{
		{ID: "1", FileName: "steps.csv", Dataset: steps},
		{ID: "2", FileName: "vo2max.csv", Dataset: vo2},
		{
			ID:       "3",
			FileName: "calories.csv",
			Err:      errors.New("calories.csv: unrecognized export schema"),
			Diagnostics: []model.Diagnostic{
				{File: "calories.csv", Row: -1, Kind: model.DiagUnrecognizedSchema, Message: `unrecognized columns ["Date" "Calories"]`},
			},
		},
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			f, err := New(name)
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}

	_, err := New("yaml")
	assert.Error(t, err)

	f, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &TableFormatter{}, f)
}

func TestIsBinary(t *testing.T) {
	assert.True(t, IsBinary("xlsx"))
	assert.False(t, IsBinary("json"))
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().Format(&buf, sampleEntries()))

	out := buf.String()
	for _, want := range []string{"File", "Metric", "steps.csv", "Steps", "2024-11-14", "11/2024", "9000", "VO₂ Max", "52.5", "Total", "2 files", "calories.csv", "Failed files (1)"} {
		assert.Contains(t, out, want)
	}

	// Every table line has the same display width.
	var widths []int
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "│") || strings.HasPrefix(line, "┌") || strings.HasPrefix(line, "├") || strings.HasPrefix(line, "└") {
			widths = append(widths, util.GetDisplayWidth(line))
		}
	}
	require.NotEmpty(t, widths)
	for _, w := range widths {
		assert.Equal(t, widths[0], w)
	}
}

func TestTableFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().Format(&buf, nil))

	assert.Contains(t, buf.String(), "0 files")
	assert.NotContains(t, buf.String(), "Failed")
}

func TestTableFormatterSleepDuration(t *testing.T) {
	sleep := &model.UploadDataset{
		FileName:   "sleep.csv",
		XKey:       model.MetricDate,
		YKey:       model.MetricSleep,
		DataPoints: []model.DataPoint{point(model.MetricSleep, ts(2024, 11, 15), "450")},
	}

	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().Format(&buf, []upload.Entry{{FileName: "sleep.csv", Dataset: sleep}}))

	assert.Contains(t, buf.String(), "7h 30m")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, sampleEntries()))

	var decoded []map[string]any
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2, "failed entries are not exported")

	first := decoded[0]
	assert.Equal(t, "steps.csv", first["fileName"])
	assert.Equal(t, "Date", first["xKey"])
	assert.Equal(t, "Steps", first["yKey"])

	points := first["dataPoints"].([]any)
	require.Len(t, points, 2)
	p := points[0].(map[string]any)
	assert.Equal(t, 9000.0, p["Steps"])
	assert.Equal(t, "11/2024", p["Date"])
}

func TestJSONFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, nil))

	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVFormatter().Format(&buf, sampleEntries()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "file,metric,date,timestamp,value", lines[0])
	assert.Equal(t, "steps.csv,Steps,2024-11-14,1731542400000,9000", lines[1])
	assert.Equal(t, "vo2max.csv,VO₂ Max,2024-11-01,1730419200000,52.5", lines[4])
}

func TestSummaryFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter().Format(&buf, sampleEntries()))

	out := buf.String()
	assert.Contains(t, out, "Garmin Connect Import Summary")
	assert.Contains(t, out, "Files: 2 imported, 1 failed")
	assert.Contains(t, out, "Date Range:    2024-11-14 to 2024-11-15")
	assert.Contains(t, out, "Min:           8123")
	assert.Contains(t, out, "Max:           9000")
	assert.Contains(t, out, "Average:       8561.5")
	assert.Contains(t, out, "Failed Files:")
	assert.Contains(t, out, "unrecognized_schema: 1")
}

func TestSummaryFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter().Format(&buf, nil))

	assert.Contains(t, buf.String(), "No files to summarize")
}

func TestComputeStatsSkipsText(t *testing.T) {
	ds := &model.UploadDataset{
		YKey: model.MetricStress,
		DataPoints: []model.DataPoint{
			point(model.MetricStress, ts(2024, 1, 1), "30"),
			point(model.MetricStress, ts(2024, 1, 2), "--"),
			point(model.MetricStress, ts(2024, 1, 3), "20"),
		},
	}

	stats := computeStats(ds)

	assert.Equal(t, 3, stats.Points)
	assert.Equal(t, 2, stats.Numeric)
	assert.Equal(t, 20.0, stats.Min)
	assert.Equal(t, 30.0, stats.Max)
	assert.Equal(t, 25.0, stats.Avg)
	assert.Equal(t, ts(2024, 1, 1), stats.First)
	assert.Equal(t, ts(2024, 1, 3), stats.Last)
}

func TestXLSXFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXFormatter().Format(&buf, sampleEntries()))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Summary", "steps", "vo2max"}, wb.GetSheetList())

	rows, err := wb.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"File", "Metric", "Points", "Status"}, rows[0])
	assert.Equal(t, "steps.csv", rows[1][0])
	assert.Equal(t, "ok", rows[1][3])
	assert.Contains(t, rows[3][3], "unrecognized")

	steps, err := wb.GetRows("steps")
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, []string{"Date", "Month", "Steps"}, steps[0])
	assert.Equal(t, []string{"2024-11-14", "11/2024", "9000"}, steps[1])
}

func TestUniqueSheetName(t *testing.T) {
	used := map[string]bool{"summary": true}

	assert.Equal(t, "steps", uniqueSheetName("steps.csv", used))
	assert.Equal(t, "steps (2)", uniqueSheetName("steps.csv", used))
	assert.Equal(t, "a_b", uniqueSheetName("a/b.csv", used))
	assert.Equal(t, "Summary (2)", uniqueSheetName("Summary.csv", used))

	long := uniqueSheetName(strings.Repeat("x", 40)+".csv", used)
	assert.Len(t, []rune(long), maxSheetName)
}

func TestChartFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewChartFormatter().Format(&buf, sampleEntries()))

	out := buf.String()
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "echarts")
	assert.Contains(t, out, "steps.csv")
	assert.Contains(t, out, "11/2024")
	assert.NotContains(t, out, "calories.csv")
}
