package analyzer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/penwyp/go-garmin-csv/internal/data/watcher"
	"github.com/penwyp/go-garmin-csv/internal/presentation/display"
	"github.com/penwyp/go-garmin-csv/internal/util"
)

// settleDelay is how long a file must stay quiet before it is imported.
var settleDelay = 300 * time.Millisecond

// Watch imports the CSV files already under the configured directories,
// then keeps importing files as they are added or rewritten, re-rendering
// the output after each one. It returns when ctx is cancelled.
func (a *Analyzer) Watch(ctx context.Context) error {
	fw, err := watcher.NewFileWatcher(a.config.Paths)
	if err != nil {
		return fmt.Errorf("failed to watch %v: %w", a.config.Paths, err)
	}
	defer fw.Close()

	// Human-readable output to stdout gets a status header per frame
	var screen *display.Screen
	if a.config.OutputFile == "" && (a.config.OutputFormat == "table" || a.config.OutputFormat == "summary") {
		screen = display.NewScreen(a.stdout)
	}
	refresh := func() error {
		if screen != nil {
			screen.Begin(fmt.Sprintf("Watching %d directories, %d files imported, updated %s",
				len(fw.Paths()), a.uploads.Len(), util.GetTimeProvider().FormatNow("15:04:05")))
		}
		return a.render(a.uploads.Entries())
	}

	files, err := a.scanner.Scan()
	if err != nil {
		return fmt.Errorf("failed to scan files: %w", err)
	}
	if len(files) > 0 {
		a.process(ctx, files)
		if err := refresh(); err != nil {
			return err
		}
	}

	util.LogInfof("Watching %d directories for new exports", len(fw.Paths()))

	ready := make(chan string, 100)
	var (
		mu     sync.Mutex
		timers = make(map[string]*time.Timer)
	)
	defer func() {
		mu.Lock()
		for _, t := range timers {
			t.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events():
			if !ok {
				return nil
			}
			util.LogDebugf("File event: %s %s", ev.Operation, ev.Path)

			path := ev.Path
			mu.Lock()
			if t, exists := timers[path]; exists {
				t.Reset(settleDelay)
			} else {
				timers[path] = time.AfterFunc(settleDelay, func() {
					mu.Lock()
					delete(timers, path)
					mu.Unlock()
					select {
					case ready <- path:
					case <-ctx.Done():
					}
				})
			}
			mu.Unlock()

		case path := <-ready:
			result := a.parser.ProcessFile(path)
			if result.Cached {
				util.LogDebug("Unchanged, skipping " + path)
				continue
			}
			a.rerecord(result)
			if err := refresh(); err != nil {
				util.LogErrorf("Failed to render output: %v", err)
			}
		}
	}
}
