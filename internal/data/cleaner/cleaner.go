package cleaner

import (
	"strings"

	"github.com/penwyp/go-garmin-csv/internal/core/model"
)

const utf8BOM = "\ufeff"

// RepairKind records which pre-parse repair was applied to a file.
type RepairKind int

const (
	RepairNone RepairKind = iota
	RepairIntensityTitle
	RepairVO2MaxHeader
)

func (r RepairKind) String() string {
	switch r {
	case RepairIntensityTitle:
		return "intensity_title"
	case RepairVO2MaxHeader:
		return "vo2max_header"
	default:
		return "none"
	}
}

// VO2MaxHeader replaces the malformed second line of VO₂ Max exports.
var VO2MaxHeader = "," + model.ColumnActivity + "," + model.ColumnVO2Max

// Result is the cleaned text and the repair that produced it.
type Result struct {
	Text   string
	Repair RepairKind
}

// Clean returns text that a standard CSV reader can tokenize.
func Clean(text string) string {
	return Inspect(text).Text
}

// Inspect cleans text and reports which repair fired.
//
// Intensity Minutes exports start with a report title line that is not part
// of the table. VO₂ Max exports start with a title line followed by a header
// that does not name the date column consistently; both lines are replaced
// by VO2MaxHeader.
func Inspect(text string) Result {
	text = strings.TrimPrefix(text, utf8BOM)

	switch {
	case strings.HasPrefix(text, model.ColumnIntensityMinutes):
		lines := strings.Split(text, "\n")
		return Result{
			Text:   strings.Join(lines[1:], "\n"),
			Repair: RepairIntensityTitle,
		}
	case strings.HasPrefix(text, model.ColumnVO2Max):
		lines := strings.Split(text, "\n")[1:]
		if len(lines) == 0 {
			lines = []string{VO2MaxHeader}
		} else {
			lines[0] = VO2MaxHeader
		}
		return Result{
			Text:   strings.Join(lines, "\n"),
			Repair: RepairVO2MaxHeader,
		}
	default:
		return Result{Text: text, Repair: RepairNone}
	}
}
