package model

// Version is the current release, overridden at build time with -ldflags.
var Version = "0.3.1"

// PathEntry represents a single row of the path catalog.
type PathEntry struct {
	Slug         string // Short name used for lookup (e.g. docs)
	Description  string // Free-text label
	RawPath      string // Path exactly as stored, may start with ~
	ExpandedPath string // RawPath with the home shorthand resolved; never persisted
}

// NewPathEntry builds an entry and derives ExpandedPath from rawPath.
func NewPathEntry(slug, description, rawPath, home string) PathEntry {
	return PathEntry{
		Slug:         slug,
		Description:  description,
		RawPath:      rawPath,
		ExpandedPath: ExpandHome(rawPath, home),
	}
}

// Display returns the form of the path shown to the user.
// keepTilde selects the raw form, otherwise the expanded one.
func (e PathEntry) Display(keepTilde bool) string {
	if keepTilde {
		return e.RawPath
	}
	return e.ExpandedPath
}

// Direction is the way an entry moves when reordered.
type Direction int

const (
	Previous Direction = iota // toward the start of the catalog
	Next                      // toward the end of the catalog
)

func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}
	return "next"
}

// EnterAction selects what the primary (Enter) action does in the TUI.
type EnterAction string

const (
	ActionSearch EnterAction = "search"
	ActionPaste  EnterAction = "paste"
)
