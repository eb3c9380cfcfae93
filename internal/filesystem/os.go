// Package filesystem adapts operating system file primitives to the interfaces consumed by
// the process executor and the CLI.
package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

// OSFileSystem implements file lookups using the operating system primitives.
type OSFileSystem struct{}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Abs resolves an absolute, cleaned path.
func (OSFileSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}
