package model

// MetricKind identifies which Garmin Connect export a table represents.
// The set is closed: anything that is not recognized is MetricUnknown.
type MetricKind int

const (
	MetricUnknown MetricKind = iota
	MetricDate
	MetricClimbedFloors
	MetricStress
	MetricRestingHeartRate
	MetricIntensityMinutes
	MetricSteps
	MetricActual // shared by Intensity Minutes and Steps exports
	MetricSleep
	MetricVO2Max
)

// Export column names
const (
	ColumnUnknown          = "Unknown"
	ColumnDate             = "Date"
	ColumnClimbedFloors    = "Climbed Floors"
	ColumnStress           = "Stress"
	ColumnRestingHeartRate = "Resting Heart Rate"
	ColumnIntensityMinutes = "Intensity Minutes"
	ColumnSteps            = "Steps"
	ColumnActual           = "Actual"
	ColumnSleep            = "Sleep"
	ColumnVO2Max           = "VO₂ Max"
)

// Columns seen in exports that never reach the normalized output.
const (
	ColumnDescendedFloors = "Descended Floors"
	ColumnGoal            = "Goal"
	ColumnActivity        = "Activity"
	ColumnEmpty           = ""
)

var metricColumns = map[MetricKind]string{
	MetricUnknown:          ColumnUnknown,
	MetricDate:             ColumnDate,
	MetricClimbedFloors:    ColumnClimbedFloors,
	MetricStress:           ColumnStress,
	MetricRestingHeartRate: ColumnRestingHeartRate,
	MetricIntensityMinutes: ColumnIntensityMinutes,
	MetricSteps:            ColumnSteps,
	MetricActual:           ColumnActual,
	MetricSleep:            ColumnSleep,
	MetricVO2Max:           ColumnVO2Max,
}

// Column returns the canonical column name of the metric.
func (m MetricKind) Column() string {
	if c, ok := metricColumns[m]; ok {
		return c
	}
	return ColumnUnknown
}

func (m MetricKind) String() string {
	return m.Column()
}

// IsChartable reports whether m can be the value column of an UploadDataset.
func (m MetricKind) IsChartable() bool {
	switch m {
	case MetricClimbedFloors, MetricStress, MetricRestingHeartRate,
		MetricIntensityMinutes, MetricSteps, MetricSleep, MetricVO2Max:
		return true
	default:
		return false
	}
}

// MetricFromColumn maps a column name back to its MetricKind.
func MetricFromColumn(column string) MetricKind {
	for kind, name := range metricColumns {
		if name == column {
			return kind
		}
	}
	return MetricUnknown
}

// MarshalText encodes the metric as its column name.
func (m MetricKind) MarshalText() ([]byte, error) {
	return []byte(m.Column()), nil
}

// UnmarshalText decodes a column name; unrecognized names become MetricUnknown.
func (m *MetricKind) UnmarshalText(text []byte) error {
	*m = MetricFromColumn(string(text))
	return nil
}
