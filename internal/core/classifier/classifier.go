package classifier

import (
	"github.com/penwyp/go-garmin-csv/internal/core/model"
)

// signature is a single-column rule: any of columns present selects metric.
type signature struct {
	columns []string
	metric  model.MetricKind
}

// Checked in order; the first signature with a present column wins.
var signatures = []signature{
	{[]string{model.ColumnClimbedFloors, model.ColumnDescendedFloors}, model.MetricClimbedFloors},
	{[]string{model.ColumnStress}, model.MetricStress},
	{[]string{model.ColumnRestingHeartRate}, model.MetricRestingHeartRate},
	{[]string{model.ColumnSleep}, model.MetricSleep},
	{[]string{model.ColumnVO2Max, model.ColumnActivity}, model.MetricVO2Max},
}

// Classify infers the metric of a table from its column names. The result
// depends only on the set of names, not their order.
//
// Intensity Minutes and Steps exports share the "Actual" column; only the
// Goal column tells them apart, so that pair is checked after every
// single-column signature has missed.
func Classify(columns []string) model.MetricKind {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}
	has := func(c string) bool {
		_, ok := present[c]
		return ok
	}

	for _, sig := range signatures {
		for _, c := range sig.columns {
			if has(c) {
				return sig.metric
			}
		}
	}

	hasGoal := has(model.ColumnGoal)
	hasActual := has(model.ColumnActual)
	switch {
	case hasGoal && hasActual:
		return model.MetricIntensityMinutes
	case hasActual:
		return model.MetricSteps
	}

	// Tables that were already normalized carry the canonical names.
	switch {
	case has(model.ColumnIntensityMinutes):
		return model.MetricIntensityMinutes
	case has(model.ColumnSteps):
		return model.MetricSteps
	}

	return model.MetricUnknown
}
