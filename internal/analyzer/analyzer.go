package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/cli/browser"
	"github.com/penwyp/go-garmin-csv/internal/core/dates"
	"github.com/penwyp/go-garmin-csv/internal/core/upload"
	"github.com/penwyp/go-garmin-csv/internal/data/parser"
	"github.com/penwyp/go-garmin-csv/internal/data/scanner"
	"github.com/penwyp/go-garmin-csv/internal/presentation/formatter"
	"github.com/penwyp/go-garmin-csv/internal/util"
)

// ErrNoFiles is returned when none of the given paths holds a CSV file.
var ErrNoFiles = errors.New("no CSV files found")

var openBrowser = browser.OpenFile

type Analyzer struct {
	config    *Config
	scanner   *scanner.FileScanner
	parser    *parser.Parser
	formatter formatter.Formatter
	uploads   *upload.List
	stats     *ImportStats
	stdout    io.Writer
}

// New validates config and builds an Analyzer for it.
func New(config *Config) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return nil, err
	}

	f, err := formatter.New(config.OutputFormat)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		config:    config,
		scanner:   scanner.NewFileScanner(config.Paths...),
		parser:    parser.NewParser(config.Concurrency, dates.New(loc)),
		formatter: f,
		uploads:   upload.NewList(),
		stats:     NewImportStats(),
		stdout:    os.Stdout,
	}, nil
}

// SetOutput redirects what would go to stdout.
func (a *Analyzer) SetOutput(w io.Writer) {
	a.stdout = w
}

func (a *Analyzer) Stats() *ImportStats {
	return a.stats
}

// Entries returns the uploads in completion order.
func (a *Analyzer) Entries() []upload.Entry {
	return a.uploads.Entries()
}

// Run imports every CSV under the configured paths and renders the result.
// Files that fail are reported in the output; Run itself only fails when
// nothing could be scanned or the output could not be written.
func (a *Analyzer) Run(ctx context.Context) error {
	startTime := time.Now()
	util.LogInfo("Starting import of Garmin Connect exports...")

	// Phase 1: Scan files
	scanStart := time.Now()
	files, err := a.scanner.Scan()
	if err != nil {
		return fmt.Errorf("failed to scan files: %w", err)
	}
	scanDuration := time.Since(scanStart)
	util.LogDebugf("Phase 1 - File scan duration: %v, found %d files", scanDuration, len(files))

	if len(files) == 0 {
		return ErrNoFiles
	}

	util.LogInfof("Found %d CSV files", len(files))

	// Phase 2: Process files
	parseStart := time.Now()
	a.process(ctx, files)
	parseDuration := time.Since(parseStart)
	util.LogDebugf("Phase 2 - File processing duration: %v, uploads: %d", parseDuration, a.uploads.Len())

	a.stats.PrintFinalStats()

	if err := ctx.Err(); err != nil {
		return err
	}

	// Phase 3: Sort by file name
	sortStart := time.Now()
	entries := sortEntries(a.uploads.Entries())
	sortDuration := time.Since(sortStart)
	util.LogDebugf("Phase 3 - Sorting duration: %v", sortDuration)

	// Phase 4: Limit
	if a.config.Limit > 0 && len(entries) > a.config.Limit {
		util.LogDebugf("Applying result limit: %d -> %d", len(entries), a.config.Limit)
		entries = entries[:a.config.Limit]
	}

	// Phase 5: Format and output
	outputStart := time.Now()
	err = a.render(entries)
	outputDuration := time.Since(outputStart)
	util.LogDebugf("Phase 5 - Formatting and output duration: %v", outputDuration)

	util.LogDebugf("Total duration: %v (scan:%v parse:%v sort:%v output:%v)",
		time.Since(startTime), scanDuration, parseDuration, sortDuration, outputDuration)

	return err
}

func (a *Analyzer) process(ctx context.Context, files []string) {
	processed := 0
	for result := range a.parser.ProcessFiles(ctx, files) {
		a.record(result)
		processed++
		if processed%100 == 0 {
			a.stats.PrintProgress(len(files))
		}
	}
}

func (a *Analyzer) record(result parser.Result) upload.Entry {
	a.note(result)
	return a.uploads.Append(result.Entry())
}

// rerecord is record for a file that may be listed already. A rewritten
// export replaces its earlier entry.
func (a *Analyzer) rerecord(result parser.Result) upload.Entry {
	a.note(result)
	return a.uploads.Replace(result.Entry())
}

func (a *Analyzer) note(result parser.Result) {
	a.stats.Record(result)
	if result.Err != nil {
		util.LogWarnf("Failed to import %s: %v", result.File, result.Err)
	}
}

func sortEntries(entries []upload.Entry) []upload.Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].FileName < entries[j].FileName
	})
	return entries
}

func (a *Analyzer) render(entries []upload.Entry) error {
	if a.config.OutputFile == "" {
		if formatter.IsBinary(a.config.OutputFormat) {
			return fmt.Errorf("%s output needs --out", a.config.OutputFormat)
		}
		if a.config.Open && a.config.OutputFormat == "chart" {
			return a.renderTemp(entries)
		}
		return a.formatter.Format(a.stdout, entries)
	}

	if err := a.writeFile(a.config.OutputFile, entries); err != nil {
		return err
	}
	util.LogInfof("Wrote %s output to %s", a.config.OutputFormat, a.config.OutputFile)

	if a.config.Open && a.config.OutputFormat == "chart" {
		return openBrowser(a.config.OutputFile)
	}
	return nil
}

func (a *Analyzer) writeFile(path string, entries []upload.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := a.formatter.Format(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (a *Analyzer) renderTemp(entries []upload.Entry) error {
	f, err := os.CreateTemp("", "go-garmin-csv-*.html")
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	path := f.Name()
	if err := a.formatter.Format(f, entries); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	util.LogInfo("Chart written to " + path)
	return openBrowser(path)
}
