package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExportGenerator writes Garmin Connect report exports in the shapes the
// website produces.
type ExportGenerator struct {
	baseDir string
}

// NewExportGenerator creates a generator writing into baseDir.
func NewExportGenerator(baseDir string) *ExportGenerator {
	return &ExportGenerator{baseDir: baseDir}
}

// Write stores content under name and returns the full path.
func (g *ExportGenerator) Write(name, content string) (string, error) {
	path := filepath.Join(g.baseDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// dayLabel formats a date the way daily reports do, without the year.
func dayLabel(t time.Time) string {
	return t.Format("Jan 2")
}

// Steps writes a daily steps report, newest day first.
func (g *ExportGenerator) Steps(name string, start time.Time, days int) (string, error) {
	var b strings.Builder
	b.WriteString(",Actual\n")
	for i := days - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%s,%d\n", dayLabel(start.AddDate(0, 0, i)), 6000+i*250)
	}
	return g.Write(name, b.String())
}

// Sleep writes a daily sleep report with "H:MM hrs" durations.
func (g *ExportGenerator) Sleep(name string, start time.Time, days int) (string, error) {
	var b strings.Builder
	b.WriteString(",Sleep\n")
	for i := 0; i < days; i++ {
		fmt.Fprintf(&b, "%s,%d:%02d hrs\n", dayLabel(start.AddDate(0, 0, i)), 6+i%3, (i*15)%60)
	}
	return g.Write(name, b.String())
}

// IntensityMinutes writes a weekly report including the title line the
// website puts above the header.
func (g *ExportGenerator) IntensityMinutes(name string, start time.Time, weeks int) (string, error) {
	var b strings.Builder
	b.WriteString("Intensity Minutes Weekly Total\n,Actual,Goal\n")
	for i := 0; i < weeks; i++ {
		fmt.Fprintf(&b, "%s,%d,150\n", dayLabel(start.AddDate(0, 0, 7*i)), 40+i*20)
	}
	return g.Write(name, b.String())
}

// VO2Max writes a monthly report with the duplicated title and header.
func (g *ExportGenerator) VO2Max(name string, start time.Time, months int) (string, error) {
	var b strings.Builder
	b.WriteString("VO₂ Max\n,VO₂ Max,\n")
	for i := 0; i < months; i++ {
		fmt.Fprintf(&b, "%s,Running,%d\n", start.AddDate(0, i, 0).Format("Jan"), 48+i)
	}
	return g.Write(name, b.String())
}

// Unsupported writes a report whose columns no importer recognises.
func (g *ExportGenerator) Unsupported(name string) (string, error) {
	return g.Write(name, ",Calories\nNov 15,2000\n")
}
