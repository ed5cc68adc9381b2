package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/penwyp/go-garmin-csv/internal/core/classifier"
	"github.com/penwyp/go-garmin-csv/internal/core/dates"
	"github.com/penwyp/go-garmin-csv/internal/core/model"
	"github.com/penwyp/go-garmin-csv/internal/core/transformer"
	"github.com/penwyp/go-garmin-csv/internal/core/upload"
	"github.com/penwyp/go-garmin-csv/internal/data/cache"
	"github.com/penwyp/go-garmin-csv/internal/data/cleaner"
	"github.com/penwyp/go-garmin-csv/internal/data/tokenizer"
	"github.com/penwyp/go-garmin-csv/internal/util"
	"golang.org/x/sync/errgroup"
)

// Parser turns Garmin Connect CSV exports into chart datasets.
type Parser struct {
	concurrency int
	dates       *dates.Normalizer
	transformer *transformer.Transformer
	cache       *cache.MemoryCache[Result]
}

// Result is the outcome of processing a single file.
type Result struct {
	File         string
	Dataset      *model.UploadDataset
	Metric       model.MetricKind
	Repair       cleaner.RepairKind
	Diagnostics  []model.Diagnostic
	RowsTotal    int
	RowsAccepted int
	Err          error
	Cached       bool
	MissReason   cache.CacheMissReason
}

// Entry converts the result into an upload list entry.
func (r Result) Entry() upload.Entry {
	return upload.Entry{
		FileName:    filepath.Base(r.File),
		Dataset:     r.Dataset,
		Diagnostics: r.Diagnostics,
		Err:         r.Err,
	}
}

// NewParser creates a Parser. A nil normalizer uses the global time
// provider; concurrency below one defaults to the CPU count.
func NewParser(concurrency int, n *dates.Normalizer) *Parser {
	if concurrency < 1 {
		concurrency = runtime.NumCPU()
	}
	if n == nil {
		n = dates.NewDefault()
	}
	return &Parser{
		concurrency: concurrency,
		dates:       n,
		transformer: transformer.New(n),
		cache:       cache.NewMemoryCache[Result](),
	}
}

// ProcessContent runs the full pipeline over one file's text: clean,
// tokenize, classify, transform each row and assemble the dataset.
func (p *Parser) ProcessContent(name, content string) Result {
	result := Result{File: name}

	cleaned := cleaner.Inspect(content)
	result.Repair = cleaned.Repair
	if cleaned.Repair != cleaner.RepairNone {
		util.LogDebugf("Applied %s repair to %s", cleaned.Repair, name)
	}

	kind := model.MetricUnknown
	classified := false
	schemaReported := false

	table, err := tokenizer.Parse(cleaned.Text, func(row model.RawRow, index int, columns []string) *model.NormalizedRow {
		result.RowsTotal++
		if !classified {
			kind = classifier.Classify(columns)
			classified = true
			util.LogDebugf("Classified %s as %s", name, kind)
		}

		if kind == model.MetricUnknown {
			if !schemaReported {
				result.Diagnostics = append(result.Diagnostics, model.Diagnostic{
					File:    name,
					Row:     -1,
					Kind:    model.DiagUnrecognizedSchema,
					Metric:  kind,
					Message: fmt.Sprintf("unrecognized columns %q", columns),
				})
				schemaReported = true
			}
			return nil
		}

		normalized, diag := p.transformer.TransformWithKind(kind, row, columns)
		if diag != nil {
			if diag.Kind == model.DiagUnrecognizedSchema {
				// Every row of the table fails the same way.
				if !schemaReported {
					diag.File = name
					result.Diagnostics = append(result.Diagnostics, *diag)
					schemaReported = true
				}
				return nil
			}
			diag.File = name
			diag.Row = index
			result.Diagnostics = append(result.Diagnostics, *diag)
			return nil
		}

		result.RowsAccepted++
		return normalized
	})
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", name, err)
		result.Diagnostics = append(result.Diagnostics, model.Diagnostic{
			File:    name,
			Row:     -1,
			Kind:    model.DiagStructuralCSV,
			Message: err.Error(),
		})
		return result
	}

	if !classified {
		kind = classifier.Classify(table.Columns)
	}
	result.Metric = kind

	unrecognized := len(table.Columns) > 0 && kind == model.MetricUnknown
	if unrecognized || (schemaReported && result.RowsAccepted == 0) {
		result.Err = fmt.Errorf("%s: columns %q: %w", name, table.Columns, model.ErrUnrecognizedSchema)
		return result
	}

	dataset, err := upload.Assemble(tokenizer.Materialize(table), filepath.Base(name), p.dates.Location())
	if err != nil {
		result.Err = err
		if errors.Is(err, model.ErrEmptyDataset) {
			result.Diagnostics = append(result.Diagnostics, model.Diagnostic{
				File:    name,
				Row:     -1,
				Kind:    model.DiagEmptyDataset,
				Metric:  kind,
				Message: "no rows could be normalized",
			})
		}
		return result
	}
	result.Dataset = dataset

	return result
}

// ProcessFile reads and processes the file at path. Unchanged files are
// served from the in-memory cache.
func (p *Parser) ProcessFile(path string) Result {
	fp, err := cache.Stat(path)
	if err != nil {
		util.LogDebugf("Failed to stat file: %s - %v", path, err)
		return Result{File: path, Err: fmt.Errorf("stat %s: %w", path, err)}
	}

	cached, reason := p.cache.Get(path, fp)
	if reason == cache.MissReasonNone {
		cached.Cached = true
		return cached
	}

	util.LogDebugf("Start processing file: %s", path)

	content, err := os.ReadFile(path)
	if err != nil {
		util.LogDebugf("Failed to read file: %s - %v", path, err)
		return Result{File: path, Err: fmt.Errorf("read %s: %w", path, err), MissReason: reason}
	}

	result := p.ProcessContent(path, string(content))
	result.MissReason = reason
	p.cache.Set(path, fp, result)

	return result
}

// ProcessFiles processes files concurrently. Results arrive in completion
// order; the channel closes once every file is done or ctx is cancelled.
func (p *Parser) ProcessFiles(ctx context.Context, files []string) <-chan Result {
	start := time.Now()
	results := make(chan Result, len(files))

	util.LogDebugf("Start concurrent processing of %d files, concurrency: %d", len(files), p.concurrency)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	go func() {
		defer close(results)

		for _, file := range files {
			f := file
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				fileCtx := util.ContextWithFile(ctx, f)
				fileStart := time.Now()
				result := p.ProcessFile(f)
				if result.Err != nil {
					util.LogDebugContext(fileCtx, fmt.Sprintf("File processing failed, duration %v - %v", time.Since(fileStart), result.Err))
				}

				results <- result
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			util.LogDebugf("Concurrent processing stopped: %v", err)
		}
		util.LogDebugf("Concurrent processing finished, total duration: %v", time.Since(start))
	}()

	return results
}

// CacheLen returns the number of cached file results.
func (p *Parser) CacheLen() int {
	return p.cache.Len()
}
