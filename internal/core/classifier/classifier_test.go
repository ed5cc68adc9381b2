package classifier

import (
	"testing"

	"github.com/penwyp/go-garmin-csv/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    model.MetricKind
	}{
		{"climbed floors", []string{"", "Climbed Floors", "Descended Floors"}, model.MetricClimbedFloors},
		{"descended floors only", []string{"", "Descended Floors"}, model.MetricClimbedFloors},
		{"stress", []string{"", "Stress"}, model.MetricStress},
		{"resting heart rate", []string{"", "Resting Heart Rate"}, model.MetricRestingHeartRate},
		{"sleep", []string{"", "Sleep"}, model.MetricSleep},
		{"vo2 max", []string{"", "Activity", "VO₂ Max"}, model.MetricVO2Max},
		{"activity only", []string{"", "Activity"}, model.MetricVO2Max},
		{"intensity minutes", []string{"Date", "Goal", "Actual"}, model.MetricIntensityMinutes},
		{"steps", []string{"Date", "Actual"}, model.MetricSteps},
		{"goal without actual", []string{"Date", "Goal"}, model.MetricUnknown},
		{"normalized intensity minutes", []string{"Date", "Intensity Minutes"}, model.MetricIntensityMinutes},
		{"normalized steps", []string{"Date", "Steps"}, model.MetricSteps},
		{"unknown", []string{"Date", "Calories"}, model.MetricUnknown},
		{"empty", nil, model.MetricUnknown},
		{"floors beat stress", []string{"Stress", "Climbed Floors"}, model.MetricClimbedFloors},
		{"sleep beats actual", []string{"Actual", "Goal", "Sleep"}, model.MetricSleep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.columns))
		})
	}
}

func TestClassifyIsOrderIndependent(t *testing.T) {
	sets := [][]string{
		{"", "Climbed Floors", "Descended Floors"},
		{"Date", "Goal", "Actual"},
		{"", "Activity", "VO₂ Max"},
		{"Stress", "Sleep", "Resting Heart Rate"},
		{"Actual", "Steps", "Date"},
	}

	for _, set := range sets {
		want := Classify(set)
		for _, perm := range permutations(set) {
			assert.Equal(t, want, Classify(perm), "columns %q", perm)
		}
	}
}

func permutations(in []string) [][]string {
	if len(in) <= 1 {
		return [][]string{append([]string(nil), in...)}
	}
	var out [][]string
	for i := range in {
		rest := make([]string, 0, len(in)-1)
		rest = append(rest, in[:i]...)
		rest = append(rest, in[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]string{in[i]}, p...))
		}
	}
	return out
}
