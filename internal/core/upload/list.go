package upload

import (
	"sync"

	"github.com/google/uuid"
	"github.com/penwyp/go-garmin-csv/internal/core/model"
)

// Entry is one processed file: either a dataset or the error that kept the
// file from producing one.
type Entry struct {
	ID          string               `json:"id"`
	FileName    string               `json:"fileName"`
	Dataset     *model.UploadDataset `json:"dataset,omitempty"`
	Diagnostics []model.Diagnostic   `json:"diagnostics,omitempty"`
	Err         error                `json:"-"`
}

// OK reports whether the entry carries a dataset.
func (e Entry) OK() bool {
	return e.Err == nil && e.Dataset != nil
}

// List accumulates entries in the order files finish processing.
type List struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewList() *List {
	return &List{entries: make([]Entry, 0)}
}

// Append adds an entry, assigning it an ID when it has none.
func (l *List) Append(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()

	return e
}

// Replace swaps the entry with the same FileName for e, keeping its ID and
// position. Without a match e is appended.
func (l *List) Replace(e Entry) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].FileName != e.FileName {
			continue
		}
		if e.ID == "" {
			e.ID = l.entries[i].ID
		}
		l.entries[i] = e
		return e
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	l.entries = append(l.entries, e)
	return e
}

// Entries returns a snapshot of all entries.
func (l *List) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Datasets returns the datasets of successful entries.
func (l *List) Datasets() []*model.UploadDataset {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*model.UploadDataset, 0, len(l.entries))
	for _, e := range l.entries {
		if e.OK() {
			out = append(out, e.Dataset)
		}
	}
	return out
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Reset drops every entry.
func (l *List) Reset() {
	l.mu.Lock()
	l.entries = make([]Entry, 0)
	l.mu.Unlock()
}
