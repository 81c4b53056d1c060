package model

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IsGlob reports whether term uses glob syntax.
func IsGlob(term string) bool {
	return strings.ContainsAny(term, "*?[{")
}

// Matches reports whether the entry matches a filter term, ignoring case.
// Plain text is a substring match on slug, description or raw path. A glob
// term is matched as a doublestar pattern against slug, raw path and
// expanded path.
func (e PathEntry) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if IsGlob(term) {
		for _, v := range []string{e.Slug, e.RawPath, e.ExpandedPath} {
			if ok, err := doublestar.Match(term, strings.ToLower(v)); err == nil && ok {
				return true
			}
		}
		return false
	}
	return strings.Contains(strings.ToLower(e.Slug), term) ||
		strings.Contains(strings.ToLower(e.Description), term) ||
		strings.Contains(strings.ToLower(e.RawPath), term)
}
