package transformer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/penwyp/go-garmin-csv/internal/core/classifier"
	"github.com/penwyp/go-garmin-csv/internal/core/dates"
	"github.com/penwyp/go-garmin-csv/internal/core/model"
	"github.com/penwyp/go-garmin-csv/internal/util"
)

// applyFunc rewrites a row and its columns. Both arguments are private
// copies owned by the caller of the transform.
type applyFunc func(row model.RawRow, columns []string) (model.RawRow, []string)

// metricTransform describes how one export is normalized. A nil expected
// set disables column validation.
type metricTransform struct {
	expected []string
	apply    applyFunc
}

var transforms = map[model.MetricKind]metricTransform{
	// A: empty | B: Climbed Floors | C: Descended Floors
	model.MetricClimbedFloors: {
		expected: []string{model.ColumnDate, model.ColumnDescendedFloors, model.ColumnClimbedFloors},
		apply:    dropColumns(model.ColumnDescendedFloors),
	},
	// Title line removed by the cleaner, then: empty | Actual | Goal
	model.MetricIntensityMinutes: {
		expected: []string{model.ColumnDate, model.ColumnGoal, model.ColumnActual, model.ColumnIntensityMinutes},
		apply: chain(
			dropColumns(model.ColumnGoal),
			renameColumn(model.ColumnActual, model.ColumnIntensityMinutes),
		),
	},
	// A: empty | B: Actual
	model.MetricSteps: {
		expected: []string{model.ColumnDate, model.ColumnActual, model.ColumnSteps},
		apply:    renameColumn(model.ColumnActual, model.ColumnSteps),
	},
	model.MetricSleep: {
		expected: []string{model.ColumnDate, model.ColumnSleep},
		apply:    convertSleepDuration,
	},
	// Header rewritten by the cleaner: empty | Activity | VO₂ Max
	model.MetricVO2Max: {
		expected: []string{model.ColumnDate, model.ColumnActivity, model.ColumnVO2Max},
		apply:    dropColumns(model.ColumnActivity),
	},
	model.MetricStress:           {},
	model.MetricRestingHeartRate: {},
}

// ExpectedColumns returns the columns a metric's table may contain.
func ExpectedColumns(kind model.MetricKind) []string {
	return model.CloneColumns(transforms[kind].expected)
}

// Transformer normalizes rows of Garmin Connect exports.
type Transformer struct {
	dates *dates.Normalizer
}

// New returns a Transformer that repairs dates with n.
func New(n *dates.Normalizer) *Transformer {
	if n == nil {
		n = dates.NewDefault()
	}
	return &Transformer{dates: n}
}

// Transform classifies columns and normalizes row. It returns either the
// normalized row or a diagnostic explaining why the row was dropped. The
// inputs are not modified.
func (t *Transformer) Transform(row model.RawRow, columns []string) (*model.NormalizedRow, *model.Diagnostic) {
	return t.TransformWithKind(classifier.Classify(columns), row, columns)
}

// TransformWithKind normalizes row as an export of the given metric.
func (t *Transformer) TransformWithKind(kind model.MetricKind, row model.RawRow, columns []string) (*model.NormalizedRow, *model.Diagnostic) {
	row = row.Clone()
	columns = model.CloneColumns(columns)

	row, columns, diag := t.normalizeDate(row, columns)
	if diag != nil {
		diag.Metric = kind
		return nil, diag
	}

	mt, ok := transforms[kind]
	if !ok {
		util.LogDebugf("Unrecognized export columns: %q", columns)
		return nil, &model.Diagnostic{
			Row:     -1,
			Kind:    model.DiagUnrecognizedSchema,
			Metric:  kind,
			Message: fmt.Sprintf("unrecognized columns %q", columns),
		}
	}

	if mt.expected != nil && !hasValidColumns(columns, mt.expected) {
		util.LogDebugf("Unexpected columns in %s table, expected %q, received %q", kind, mt.expected, columns)
		return nil, &model.Diagnostic{
			Row:     -1,
			Kind:    model.DiagUnrecognizedSchema,
			Metric:  kind,
			Message: fmt.Sprintf("unexpected columns in %s table: expected %q, received %q", kind, mt.expected, columns),
		}
	}

	if mt.apply != nil {
		row, columns = mt.apply(row, columns)
	}

	return &model.NormalizedRow{Row: row, Columns: columns, Type: kind}, nil
}

// normalizeDate names the header-less first column Date and rewrites its
// value as epoch milliseconds.
func (t *Transformer) normalizeDate(row model.RawRow, columns []string) (model.RawRow, []string, *model.Diagnostic) {
	if len(columns) > 0 && columns[0] == model.ColumnEmpty {
		columns[0] = model.ColumnDate
	}
	if v, ok := row[model.ColumnEmpty]; ok {
		if v != "" {
			row[model.ColumnDate] = v
		}
		delete(row, model.ColumnEmpty)
	}

	value := row[model.ColumnDate]
	if value == "" {
		return row, columns, &model.Diagnostic{
			Row:     -1,
			Kind:    model.DiagDateRepairFailure,
			Message: "missing date value",
		}
	}

	ts, err := t.dates.Normalize(value)
	if err != nil {
		return row, columns, &model.Diagnostic{
			Row:     -1,
			Kind:    model.DiagDateRepairFailure,
			Message: err.Error(),
		}
	}
	row[model.ColumnDate] = ts

	return row, columns, nil
}

func hasValidColumns(received, expected []string) bool {
	for _, c := range received {
		found := false
		for _, e := range expected {
			if c == e {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func chain(fns ...applyFunc) applyFunc {
	return func(row model.RawRow, columns []string) (model.RawRow, []string) {
		for _, fn := range fns {
			row, columns = fn(row, columns)
		}
		return row, columns
	}
}

func dropColumns(names ...string) applyFunc {
	return func(row model.RawRow, columns []string) (model.RawRow, []string) {
		kept := make([]string, 0, len(columns))
		for _, c := range columns {
			drop := false
			for _, n := range names {
				if c == n {
					drop = true
					break
				}
			}
			if !drop {
				kept = append(kept, c)
			}
		}
		for _, n := range names {
			delete(row, n)
		}
		return row, kept
	}
}

// renameColumn moves from to to. Rows that no longer carry from are left
// alone so already-normalized tables keep their values.
func renameColumn(from, to string) applyFunc {
	return func(row model.RawRow, columns []string) (model.RawRow, []string) {
		v, ok := row[from]
		if !ok {
			return row, columns
		}
		row[to] = v
		delete(row, from)

		renamed := make([]string, len(columns))
		for i, c := range columns {
			if c == from {
				c = to
			}
			renamed[i] = c
		}
		return row, renamed
	}
}

// convertSleepDuration rewrites "H:MM hrs" as total minutes. Values in any
// other shape are kept.
func convertSleepDuration(row model.RawRow, columns []string) (model.RawRow, []string) {
	if minutes, ok := ParseSleepMinutes(row[model.ColumnSleep]); ok {
		row[model.ColumnSleep] = strconv.Itoa(minutes)
	}
	return row, columns
}

// ParseSleepMinutes parses a "H:MM hrs" duration into minutes.
func ParseSleepMinutes(value string) (int, bool) {
	v := strings.TrimSpace(value)
	v, ok := strings.CutSuffix(v, "hrs")
	if !ok {
		return 0, false
	}

	h, m, ok := strings.Cut(strings.TrimSpace(v), ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 {
		return 0, false
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}
