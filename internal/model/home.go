package model

import (
	"os"
	"path/filepath"
	"strings"
)

// HomeShorthand is the leading marker that stands for the user's home directory.
const HomeShorthand = "~"

// ExpandHome replaces a leading ~ with home. Only "~" on its own or "~"
// followed by a path separator is expanded; "~user" and any ~ further in the
// path are left alone. An empty home leaves the path unchanged.
func ExpandHome(path, home string) string {
	if home == "" || !strings.HasPrefix(path, HomeShorthand) {
		return path
	}
	rest := path[len(HomeShorthand):]
	if rest == "" {
		return home
	}
	if rest[0] != '/' && rest[0] != '\\' {
		return path
	}
	return strings.TrimRight(home, `/\`) + rest
}

// CollapseHome is the inverse of ExpandHome: an absolute path inside home is
// rewritten to start with ~. Paths outside home pass through unchanged.
func CollapseHome(path, home string) string {
	home = strings.TrimRight(home, `/\`)
	if home == "" || path == "" {
		return path
	}
	if path == home {
		return HomeShorthand
	}
	if strings.HasPrefix(path, home) {
		rest := path[len(home):]
		if rest[0] == '/' || rest[0] == filepath.Separator {
			return HomeShorthand + rest
		}
	}
	return path
}

// UserHome resolves the current user's home directory, or "" when it cannot
// be determined.
func UserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
