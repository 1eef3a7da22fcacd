package ioutils

import (
	"os"
	"path/filepath"
	"strings"
)

// ImageExtensions lists the extensions ImageService can decode.
var ImageExtensions = []string{".jpg", ".jpeg", ".png"}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// IsImage reports whether path has an image extension, ignoring case.
func IsImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
