package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForEvent(t *testing.T, fw *FileWatcher, path string) FileEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-fw.Events():
			require.True(t, ok, "event channel closed")
			if ev.Path == path {
				return ev
			}
		case <-timeout:
			t.Fatalf("no event for %s", path)
		}
	}
}

func TestFileWatcherReportsCSV(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWatcher([]string{dir})
	require.NoError(t, err)
	defer fw.Close()

	path := filepath.Join(dir, "steps.csv")
	require.NoError(t, os.WriteFile(path, []byte(",Actual\nNov 15,8123\n"), 0644))

	ev := waitForEvent(t, fw, path)
	assert.NotEmpty(t, ev.Operation)
}

func TestFileWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWatcher([]string{dir})
	require.NoError(t, err)
	defer fw.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	marker := filepath.Join(dir, "marker.csv")
	require.NoError(t, os.WriteFile(marker, []byte(",Sleep\n"), 0644))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-fw.Events():
			assert.NotEqual(t, filepath.Join(dir, "notes.txt"), ev.Path)
			if ev.Path == marker {
				return
			}
		case <-timeout:
			t.Fatal("no event for marker file")
		}
	}
}

func TestFileWatcherNewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWatcher([]string{dir})
	require.NoError(t, err)
	defer fw.Close()

	sub := filepath.Join(dir, "2024")
	require.NoError(t, os.Mkdir(sub, 0755))
	// Give the watcher a moment to register the new directory.
	time.Sleep(200 * time.Millisecond)

	path := filepath.Join(sub, "stress.csv")
	require.NoError(t, os.WriteFile(path, []byte(",Stress\n"), 0644))

	waitForEvent(t, fw, path)
}

func TestFileWatcherClose(t *testing.T) {
	fw, err := NewFileWatcher([]string{t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, fw.Close())
	assert.NoError(t, fw.Close(), "second close is a no-op")

	select {
	case _, ok := <-fw.Events():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestNewFileWatcherMissingDirectory(t *testing.T) {
	_, err := NewFileWatcher([]string{filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}
