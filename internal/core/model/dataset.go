package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// DisplayValue is a chart value: a number when the cell parses as one,
// otherwise the original text.
type DisplayValue struct {
	Number   float64
	Text     string
	IsNumber bool
}

// NewDisplayValue converts a cell value for display.
func NewDisplayValue(raw string) DisplayValue {
	if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return DisplayValue{Number: f, Text: raw, IsNumber: true}
	}
	return DisplayValue{Text: raw}
}

func (v DisplayValue) String() string {
	if v.IsNumber {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}

func (v DisplayValue) MarshalJSON() ([]byte, error) {
	if v.IsNumber {
		return sonic.Marshal(v.Number)
	}
	return sonic.Marshal(v.Text)
}

func (v *DisplayValue) UnmarshalJSON(data []byte) error {
	var f float64
	if err := sonic.Unmarshal(data, &f); err == nil {
		*v = DisplayValue{Number: f, Text: strconv.FormatFloat(f, 'f', -1, 64), IsNumber: true}
		return nil
	}

	var s string
	if err := sonic.Unmarshal(data, &s); err == nil {
		*v = DisplayValue{Text: s}
		return nil
	}

	return fmt.Errorf("display value must be a number or a string")
}

// DataPoint is one chart point. It serializes as
// {"<metric column>": value, "Date": "<month>/<year>"}.
type DataPoint struct {
	Metric    MetricKind
	Value     DisplayValue
	Label     string
	Timestamp int64
}

func (p DataPoint) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(map[string]any{
		p.Metric.Column(): p.Value,
		ColumnDate:        p.Label,
	})
}

// UploadDataset is the chart-ready result of one uploaded file.
type UploadDataset struct {
	FileName   string      `json:"fileName"`
	XKey       MetricKind  `json:"xKey"`
	YKey       MetricKind  `json:"yKey"`
	DataPoints []DataPoint `json:"dataPoints"`
}

// Len returns the number of points.
func (d *UploadDataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.DataPoints)
}
