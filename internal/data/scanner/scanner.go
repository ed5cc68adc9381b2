package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-garmin-csv/internal/util"
)

const csvExt = ".csv"

// FileScanner finds Garmin Connect CSV exports under a set of paths.
type FileScanner struct {
	paths []string
}

// NewFileScanner creates a new FileScanner instance
func NewFileScanner(paths ...string) *FileScanner {
	return &FileScanner{paths: paths}
}

// IsCSV reports whether path has a .csv extension, ignoring case.
func IsCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), csvExt)
}

// Scan returns every CSV file found. Files named directly are kept whatever
// their extension; directories are walked recursively. Paths that do not
// exist are skipped.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	seen := make(map[string]struct{})
	dirCount := 0
	totalCount := 0

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range s.paths {
		info, err := os.Stat(root)
		if err != nil {
			util.LogDebugf("Skip path (error): %s - %v", root, err)
			continue
		}

		if !info.IsDir() {
			totalCount++
			add(root)
			continue
		}

		util.LogDebugf("Start scanning directory: %s", root)
		err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				util.LogDebugf("Skip file (error): %s - %v", path, err)
				return nil
			}

			if info.IsDir() {
				dirCount++
				return nil
			}

			totalCount++
			if IsCSV(path) {
				add(path)
			}

			return nil
		})
		if err != nil {
			return files, fmt.Errorf("scan %s: %w", root, err)
		}
	}

	util.LogDebugf("File scan completed: duration %v, scanned %d directories, %d files, found %d CSV files",
		time.Since(start), dirCount, totalCount, len(files))

	return files, nil
}
