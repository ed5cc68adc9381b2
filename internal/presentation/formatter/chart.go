package formatter

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/penwyp/go-garmin-csv/internal/core/model"
	"github.com/penwyp/go-garmin-csv/internal/core/upload"
)

// ChartFormatter renders one line chart per dataset on a single HTML page.
type ChartFormatter struct {
	theme string
}

func NewChartFormatter() *ChartFormatter {
	return &ChartFormatter{theme: "macarons"}
}

func (f *ChartFormatter) Format(w io.Writer, entries []upload.Entry) error {
	page := components.NewPage()
	page.PageTitle = "Garmin Connect Metrics"

	for _, ds := range datasets(entries) {
		page.AddCharts(f.lineChart(ds))
	}

	return page.Render(w)
}

func (f *ChartFormatter) lineChart(ds *model.UploadDataset) *charts.Line {
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: f.theme}),
		charts.WithTitleOpts(opts.Title{
			Title:    ds.YKey.Column(),
			Subtitle: ds.FileName,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: ds.XKey.Column(),
			AxisLabel: &opts.AxisLabel{
				Rotate: 45,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: yAxisName(ds.YKey),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	labels := make([]string, len(ds.DataPoints))
	items := make([]opts.LineData, len(ds.DataPoints))
	for i, p := range ds.DataPoints {
		labels[i] = p.Label
		if p.Value.IsNumber {
			items[i] = opts.LineData{Value: p.Value.Number}
		} else {
			// Non-numeric cells leave a gap in the line.
			items[i] = opts.LineData{Value: "-"}
		}
	}

	line.SetXAxis(labels).AddSeries(ds.YKey.Column(), items)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	return line
}

func yAxisName(metric model.MetricKind) string {
	if metric == model.MetricSleep {
		return "Sleep (minutes)"
	}
	return metric.Column()
}
