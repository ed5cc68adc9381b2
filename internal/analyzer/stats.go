package analyzer

import (
	"sync"
	"sync/atomic"

	"github.com/penwyp/go-garmin-csv/internal/data/cache"
	"github.com/penwyp/go-garmin-csv/internal/data/parser"
	"github.com/penwyp/go-garmin-csv/internal/util"
)

// ImportStats counts what happened to the files of one run.
type ImportStats struct {
	totalFiles   int64
	succeeded    int64
	failed       int64
	cacheHits    int64
	rowsTotal    int64
	rowsAccepted int64

	mu       sync.Mutex
	failures []FailureDetail
	misses   map[cache.CacheMissReason]int
}

// FailureDetail records a file that produced no dataset.
type FailureDetail struct {
	FilePath string
	Err      error
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	Files        int64
	Succeeded    int64
	Failed       int64
	CacheHits    int64
	RowsTotal    int64
	RowsAccepted int64
}

// RowsRejected is the number of rows dropped with a diagnostic.
func (s StatsSnapshot) RowsRejected() int64 {
	return s.RowsTotal - s.RowsAccepted
}

func NewImportStats() *ImportStats {
	return &ImportStats{
		failures: make([]FailureDetail, 0),
		misses:   make(map[cache.CacheMissReason]int),
	}
}

// Record adds one processed file.
func (s *ImportStats) Record(r parser.Result) {
	atomic.AddInt64(&s.totalFiles, 1)
	atomic.AddInt64(&s.rowsTotal, int64(r.RowsTotal))
	atomic.AddInt64(&s.rowsAccepted, int64(r.RowsAccepted))

	if r.Cached {
		atomic.AddInt64(&s.cacheHits, 1)
	} else {
		s.mu.Lock()
		s.misses[r.MissReason]++
		s.mu.Unlock()
	}

	if r.Err != nil || r.Dataset == nil {
		atomic.AddInt64(&s.failed, 1)
		s.mu.Lock()
		s.failures = append(s.failures, FailureDetail{FilePath: r.File, Err: r.Err})
		s.mu.Unlock()
		return
	}
	atomic.AddInt64(&s.succeeded, 1)
}

func (s *ImportStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Files:        atomic.LoadInt64(&s.totalFiles),
		Succeeded:    atomic.LoadInt64(&s.succeeded),
		Failed:       atomic.LoadInt64(&s.failed),
		CacheHits:    atomic.LoadInt64(&s.cacheHits),
		RowsTotal:    atomic.LoadInt64(&s.rowsTotal),
		RowsAccepted: atomic.LoadInt64(&s.rowsAccepted),
	}
}

// Failures returns a copy of the failed files.
func (s *ImportStats) Failures() []FailureDetail {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]FailureDetail, len(s.failures))
	copy(out, s.failures)
	return out
}

// PrintProgress logs how many files have been processed so far
func (s *ImportStats) PrintProgress(total int) {
	snap := s.Snapshot()
	util.LogDebugf("Import progress: processed %d/%d files (%d ok/%d failed)",
		snap.Files, total, snap.Succeeded, snap.Failed)
}

// PrintFinalStats logs the totals and every failed file
func (s *ImportStats) PrintFinalStats() {
	snap := s.Snapshot()

	util.LogInfof("Import complete: %d files, %d imported, %d failed, rows %d/%d accepted, %d cache hits",
		snap.Files, snap.Succeeded, snap.Failed, snap.RowsAccepted, snap.RowsTotal, snap.CacheHits)

	s.mu.Lock()
	defer s.mu.Unlock()

	for reason, count := range s.misses {
		util.LogDebugf("  cache miss (%s): %d files", reason, count)
	}
	for _, f := range s.failures {
		util.LogWarnf("  %s: %v", f.FilePath, f.Err)
	}
}
