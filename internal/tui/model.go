package tui

import (
	"log/slog"

	"quickpaths/internal/catalog"
	"quickpaths/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Actions are the host capabilities the TUI triggers on an entry.
// Pasting happens after the program exits; see AppModel.PasteRequest.
type Actions interface {
	Copy(text string) error
	Open(path string) error
	Search(query string) error
}

// Mode is the current interaction mode.
type Mode int

const (
	ModeList Mode = iota
	ModeFilter
	ModeForm
	ModeConfirmDelete
	ModeHelp
)

// Options configures InitialModel.
type Options struct {
	Store       *catalog.Store
	Actions     Actions
	KeepTilde   bool              // initial state of the tilde toggle
	EnterAction model.EnterAction // what Enter does
	Changes     <-chan struct{}   // external edits to the catalog file, may be nil
	Logger      *slog.Logger
}

// AppModel holds the TUI state.
type AppModel struct {
	// Collaborators
	store   *catalog.Store
	actions Actions
	changes <-chan struct{}
	logger  *slog.Logger
	keys    KeyMap

	// Data
	Entries  []model.PathEntry
	Statuses []model.PathStatus // parallel to Entries
	Loading  bool
	Err      error

	// Store calls run one at a time; a reload requested meanwhile waits.
	Busy          bool
	ReloadPending bool

	// UI State
	Mode        Mode
	SelectedIdx int // index into FilteredIndices
	WindowSize  tea.WindowSizeMsg
	KeepTilde   bool
	EnterAction model.EnterAction

	// Filter State
	InputBuffer     textinput.Model
	FilteredIndices []int // Indices of Entries to show
	FilterActive    bool

	// Add / edit form
	Form entryForm

	// Slug awaiting delete confirmation
	PendingDelete string

	// Toast line
	Toast      string
	ToastIsErr bool
	toastSeq   int

	// Help
	HelpViewport viewport.Model
	helpRendered string

	// Set when the user chose paste; the caller pastes after the TUI exits.
	pasteText string
}

// InitialModel returns the initial state. The catalog load started by Init
// counts as the first Store call, so the model starts Busy.
func InitialModel(opts Options) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Search paths by slug..."
	ti.CharLimit = 120
	ti.Width = 40
	ti.Prompt = "/ "

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	enter := opts.EnterAction
	if enter == "" {
		enter = model.ActionSearch
	}

	return AppModel{
		store:        opts.Store,
		actions:      opts.Actions,
		changes:      opts.Changes,
		logger:       logger,
		keys:         DefaultKeyMap(),
		Loading:      true,
		Busy:         true,
		KeepTilde:    opts.KeepTilde,
		EnterAction:  enter,
		InputBuffer:  ti,
		Form:         newEntryForm(),
		HelpViewport: viewport.New(80, 20),
	}
}

// PasteRequest returns the text the user asked to paste, or "" if the
// program ended any other way.
func (m AppModel) PasteRequest() string {
	return m.pasteText
}

// selected returns the entry under the cursor.
func (m AppModel) selected() (model.PathEntry, bool) {
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.FilteredIndices) {
		return model.PathEntry{}, false
	}
	return m.Entries[m.FilteredIndices[m.SelectedIdx]], true
}

func (m AppModel) status(idx int) model.PathStatus {
	if idx < len(m.Statuses) {
		return m.Statuses[idx]
	}
	return model.PathStatus{}
}
