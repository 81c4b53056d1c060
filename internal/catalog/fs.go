package catalog

import (
	"os"

	"quickpaths/internal/atomicfile"
)

// FileSystem is the file access the Store needs from its host.
// ReadFile must return an error matching fs.ErrNotExist for a missing file.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	MkdirAll(path string) error
}

// OSFileSystem is the FileSystem backed by the local disk.
type OSFileSystem struct{}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile replaces the whole file atomically.
func (OSFileSystem) WriteFile(path string, data []byte) error {
	return atomicfile.Replace(path, data)
}

func (OSFileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}
