package analyzer

import (
	"errors"
	"sync"
	"testing"

	"github.com/penwyp/go-garmin-csv/internal/core/model"
	"github.com/penwyp/go-garmin-csv/internal/data/cache"
	"github.com/penwyp/go-garmin-csv/internal/data/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportStatsRecord(t *testing.T) {
	stats := NewImportStats()

	stats.Record(parser.Result{
		File:         "steps.csv",
		Dataset:      &model.UploadDataset{FileName: "steps.csv"},
		RowsTotal:    10,
		RowsAccepted: 8,
		MissReason:   cache.MissReasonNotFound,
	})
	stats.Record(parser.Result{
		File:      "steps.csv",
		Dataset:   &model.UploadDataset{FileName: "steps.csv"},
		RowsTotal: 10, RowsAccepted: 8,
		Cached: true,
	})
	stats.Record(parser.Result{
		File:      "calories.csv",
		RowsTotal: 3,
		Err:       model.ErrUnrecognizedSchema,
	})

	snap := stats.Snapshot()
	assert.Equal(t, int64(3), snap.Files)
	assert.Equal(t, int64(2), snap.Succeeded)
	assert.Equal(t, int64(1), snap.Failed)
	assert.Equal(t, int64(1), snap.CacheHits)
	assert.Equal(t, int64(23), snap.RowsTotal)
	assert.Equal(t, int64(16), snap.RowsAccepted)
	assert.Equal(t, int64(7), snap.RowsRejected())

	failures := stats.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "calories.csv", failures[0].FilePath)
	assert.True(t, errors.Is(failures[0].Err, model.ErrUnrecognizedSchema))
}

func TestImportStatsConcurrentRecord(t *testing.T) {
	stats := NewImportStats()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := parser.Result{File: "f.csv", RowsTotal: 2, RowsAccepted: 1}
			if i%2 == 0 {
				r.Dataset = &model.UploadDataset{}
			} else {
				r.Err = model.ErrEmptyDataset
			}
			stats.Record(r)
		}(i)
	}
	wg.Wait()

	snap := stats.Snapshot()
	assert.Equal(t, int64(50), snap.Files)
	assert.Equal(t, int64(25), snap.Succeeded)
	assert.Equal(t, int64(25), snap.Failed)
	assert.Equal(t, int64(100), snap.RowsTotal)
	assert.Len(t, stats.Failures(), 25)

	// Logging must not panic on an empty logger
	stats.PrintProgress(50)
	stats.PrintFinalStats()
}
