package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/go-garmin-csv/internal/core/model"
	"github.com/penwyp/go-garmin-csv/internal/util"
)

// Layouts whose values carry no zone and are read as UTC.
var utcLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
}

// Layouts with an explicit zone.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// Layouts read in the normalizer's location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/1/2",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
	"Mon Jan 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2006",
	"January 2006",
	"1/2/2006",
	"1/2 2006",
}

// Normalizer validates and repairs export date strings into epoch
// milliseconds. Garmin exports omit the year, so repairs assume the current
// year of the normalizer's clock.
type Normalizer struct {
	loc   *time.Location
	clock func() time.Time
}

// New returns a normalizer reading zone-less dates in loc.
func New(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{
		loc:   loc,
		clock: time.Now,
	}
}

// NewDefault returns a normalizer bound to the global time provider.
func NewDefault() *Normalizer {
	tp := util.GetTimeProvider()
	return &Normalizer{
		loc:   tp.Location(),
		clock: tp.Now,
	}
}

// WithClock returns a copy of n using clock as "now".
func (n *Normalizer) WithClock(clock func() time.Time) *Normalizer {
	return &Normalizer{loc: n.loc, clock: clock}
}

// Location returns the location used for zone-less dates.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Parse parses value under the supported layouts. All-digit values longer
// than a year are epoch milliseconds.
func (n *Normalizer) Parse(value string) (time.Time, bool) {
	v := strings.Join(strings.Fields(value), " ")
	if v == "" {
		return time.Time{}, false
	}

	if len(v) > 4 && isDigits(v) {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms).In(n.loc), true
	}

	for _, layout := range utcLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, v, n.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsValidDate reports whether value denotes a calendar date.
func (n *Normalizer) IsValidDate(value string) bool {
	_, ok := n.Parse(value)
	return ok
}

// ToTimestamp returns the epoch-millisecond string of a valid date.
func (n *Normalizer) ToTimestamp(value string) (string, bool) {
	t, ok := n.Parse(value)
	if !ok {
		return "", false
	}
	return strconv.FormatInt(t.UnixMilli(), 10), true
}

// Repair appends the current year to value, or treats it as a bare month
// ("Nov" -> "Nov 1 <year>"). A result after now is moved back one year.
func (n *Normalizer) Repair(value string) (string, error) {
	now := n.clock()
	year := now.In(n.loc).Year()

	t, ok := n.Parse(fmt.Sprintf("%s %d", value, year))
	if !ok {
		t, ok = n.Parse(fmt.Sprintf("%s 1 %d", value, year))
		if !ok {
			return value, fmt.Errorf("%w: %q", model.ErrDateRepairFailure, value)
		}
	}

	if t.After(now) {
		t = t.AddDate(-1, 0, 0)
	}

	return strconv.FormatInt(t.UnixMilli(), 10), nil
}

// RepairYearlessDate is Repair that returns value unchanged when it cannot
// be repaired.
func (n *Normalizer) RepairYearlessDate(value string) string {
	repaired, err := n.Repair(value)
	if err != nil {
		return value
	}
	return repaired
}

// Normalize returns the epoch-millisecond string for value, repairing it
// when it is not a valid date on its own.
func (n *Normalizer) Normalize(value string) (string, error) {
	if ts, ok := n.ToTimestamp(value); ok {
		return ts, nil
	}
	return n.Repair(value)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
