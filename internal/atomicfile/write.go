// Package atomicfile replaces file contents through a temporary file and a
// rename, so readers never observe a half-written catalog.
package atomicfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultPerm is used by [Replace] when the target does not exist yet.
const DefaultPerm os.FileMode = 0o644

// Write atomically writes data to path: it creates a temp file next to path,
// writes and syncs it, applies perm and renames it over path. The temp file
// is removed if any step fails.
func Write(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	f, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := f.Name()
	var success bool
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	success = true
	return nil
}

// Replace overwrites an existing file while keeping its permission bits.
// A symlinked path is resolved first so the link itself survives (catalogs
// kept in a dotfiles repository are commonly symlinked into place).
func Replace(path string, data []byte) error {
	target := path
	perm := DefaultPerm

	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}
	return Write(target, data, perm)
}
