package util

import (
	"fmt"
	"os"
	"syscall"
)

// FileInfo is the stat data used to tell file versions apart.
type FileInfo struct {
	ModTime int64  // Unix seconds
	Size    int64  // bytes
	Inode   uint64 // changes when an export is replaced rather than rewritten
}

// GetFileInfo stats path. Supported on Linux and macOS.
func GetFileInfo(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	sysStat, ok := stat.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, fmt.Errorf("failed to get file system information: %s", path)
	}

	return &FileInfo{
		ModTime: stat.ModTime().Unix(),
		Size:    stat.Size(),
		Inode:   sysStat.Ino,
	}, nil
}
