package model

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// PathKind classifies what a catalog path points at on disk.
type PathKind int

const (
	KindUnknown PathKind = iota
	KindMissing
	KindDirectory
	KindFile
	KindSymlink
)

// PathStatus describes the on-disk state of an expanded catalog path
type PathStatus struct {
	Kind     PathKind
	Target   string // Resolved target when Kind is KindSymlink
	ErrorMsg string // Error message if the path couldn't be inspected
}

// Icon returns the status icon for the list view.
func (s PathStatus) Icon() string {
	switch s.Kind {
	case KindMissing:
		return IconMissing
	case KindDirectory:
		return IconDirectory
	case KindFile:
		return IconFile
	case KindSymlink:
		return IconSymlink
	default:
		return IconUnknown
	}
}

// Label is a short human readable description of the status.
func (s PathStatus) Label() string {
	switch s.Kind {
	case KindMissing:
		return "missing"
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	case KindSymlink:
		return "symlink → " + s.Target
	default:
		return "unknown"
	}
}

// Inspect stats path without following a final symlink.
func Inspect(path string) PathStatus {
	if path == "" {
		return PathStatus{Kind: KindMissing}
	}

	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return PathStatus{Kind: KindMissing}
		}
		return PathStatus{Kind: KindUnknown, ErrorMsg: err.Error()}
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := filepath.EvalSymlinks(path)
		if err != nil {
			// Dangling link
			return PathStatus{Kind: KindMissing, ErrorMsg: err.Error()}
		}
		return PathStatus{Kind: KindSymlink, Target: target}
	case info.IsDir():
		return PathStatus{Kind: KindDirectory}
	default:
		return PathStatus{Kind: KindFile}
	}
}
