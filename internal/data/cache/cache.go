package cache

import (
	"fmt"
	"sync"

	"github.com/penwyp/go-garmin-csv/internal/util"
)

type CacheMissReason int

const (
	MissReasonNone CacheMissReason = iota
	MissReasonNotFound
	MissReasonInode
	MissReasonSize
	MissReasonModTime
	MissReasonFingerprint
)

func (r CacheMissReason) String() string {
	switch r {
	case MissReasonNone:
		return "none"
	case MissReasonNotFound:
		return "Cache not found"
	case MissReasonInode:
		return "File inode changed"
	case MissReasonSize:
		return "File size changed"
	case MissReasonModTime:
		return "Modification time changed"
	case MissReasonFingerprint:
		return "File fingerprint changed"
	default:
		return "Unknown reason"
	}
}

// Fingerprint identifies one version of a file on disk.
type Fingerprint struct {
	Inode   uint64
	Size    int64
	ModTime int64
	Content string // CRC32 of the file tail
}

// Stat computes the fingerprint of the file at path.
func Stat(path string) (Fingerprint, error) {
	info, err := util.GetFileInfo(path)
	if err != nil {
		return Fingerprint{}, err
	}

	content, err := util.CalculateFileFingerprint(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("fingerprint %s: %w", path, err)
	}

	return Fingerprint{
		Inode:   info.Inode,
		Size:    info.Size,
		ModTime: info.ModTime,
		Content: content,
	}, nil
}

// compare returns why cached no longer describes current.
func (f Fingerprint) compare(current Fingerprint) CacheMissReason {
	switch {
	case f.Inode != current.Inode:
		return MissReasonInode
	case f.Size != current.Size:
		return MissReasonSize
	case f.ModTime != current.ModTime:
		return MissReasonModTime
	case f.Content != current.Content:
		return MissReasonFingerprint
	default:
		return MissReasonNone
	}
}

type entry[V any] struct {
	fp    Fingerprint
	value V
}

// MemoryCache holds per-file results for the life of the process. An entry
// is only returned while the file's fingerprint is unchanged.
type MemoryCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
}

func NewMemoryCache[V any]() *MemoryCache[V] {
	return &MemoryCache[V]{
		entries: make(map[string]entry[V]),
	}
}

// Get returns the value cached for path if it was stored under fp.
func (c *MemoryCache[V]) Get(path string, fp Fingerprint) (V, CacheMissReason) {
	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, MissReasonNotFound
	}

	if reason := e.fp.compare(fp); reason != MissReasonNone {
		util.LogDebugf("Cache invalidated for %s: %s", path, reason)

		c.mu.Lock()
		delete(c.entries, path)
		c.mu.Unlock()

		var zero V
		return zero, reason
	}

	return e.value, MissReasonNone
}

func (c *MemoryCache[V]) Set(path string, fp Fingerprint, value V) {
	c.mu.Lock()
	c.entries[path] = entry[V]{fp: fp, value: value}
	c.mu.Unlock()
}

func (c *MemoryCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCache[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}
