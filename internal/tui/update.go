package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"quickpaths/internal/catalog"
	"quickpaths/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const toastDuration = 3 * time.Second

// MsgCatalogReady carries the catalog after a load or a mutation.
type MsgCatalogReady struct {
	Entries  []model.PathEntry
	Statuses []model.PathStatus
	Created  bool   // the backing file did not exist and was created
	Toast    string // success message for a mutation
	Focus    string // slug to put the cursor on
}

// MsgError indicates a Store operation failed.
type MsgError struct {
	Title  string
	Err    error
	Reload bool // reload the catalog before continuing
}

// MsgFileChanged is sent when another program changed the catalog file.
type MsgFileChanged struct{}

// MsgToastExpired clears the toast it belongs to.
type MsgToastExpired struct{ seq int }

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.HelpViewport.Width = msg.Width * 80 / 100
		m.HelpViewport.Height = msg.Height - 8
		m.helpRendered = ""
		return m, nil

	case MsgCatalogReady:
		return m.applyCatalog(msg)

	case MsgError:
		m.Busy = false
		m.Loading = false
		cmd := m.setToast(fmt.Sprintf("%s: %v", msg.Title, msg.Err), true)
		if msg.Reload || m.ReloadPending {
			load := m.startLoad()
			return m, tea.Batch(cmd, load)
		}
		return m, cmd

	case MsgFileChanged:
		cmds := []tea.Cmd{m.waitForChange()}
		if m.Busy {
			m.ReloadPending = true
		} else {
			cmds = append(cmds, m.startLoad())
		}
		return m, tea.Batch(cmds...)

	case MsgToastExpired:
		if msg.seq == m.toastSeq {
			m.Toast = ""
			m.ToastIsErr = false
		}
		return m, nil

	case tea.KeyMsg:
		switch m.Mode {
		case ModeFilter:
			return m.updateFilter(msg)
		case ModeForm:
			return m.updateForm(msg)
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		case ModeHelp:
			return m.updateHelp(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m AppModel) applyCatalog(msg MsgCatalogReady) (tea.Model, tea.Cmd) {
	focus := msg.Focus
	if focus == "" {
		if e, ok := m.selected(); ok {
			focus = e.Slug
		}
	}

	m.Loading = false
	m.Busy = false
	m.Err = nil
	m.Entries = msg.Entries
	m.Statuses = msg.Statuses
	m.applyFilter()
	m.focusSlug(focus)

	var cmds []tea.Cmd
	switch {
	case msg.Created:
		cmds = append(cmds, m.setToast("Created empty catalog file "+m.store.Path(), false))
	case msg.Toast != "":
		cmds = append(cmds, m.setToast(msg.Toast, false))
	}
	if m.ReloadPending {
		cmds = append(cmds, m.startLoad())
	}
	return m, tea.Batch(cmds...)
}

func (m AppModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case msg.Type == tea.KeyEsc:
		if m.FilterActive {
			m.clearFilter()
		}
		return m, nil
	case key.Matches(msg, k.Up):
		if m.SelectedIdx > 0 {
			m.SelectedIdx--
		}
	case key.Matches(msg, k.Down):
		if m.SelectedIdx < len(m.FilteredIndices)-1 {
			m.SelectedIdx++
		}
	case key.Matches(msg, k.Top):
		m.SelectedIdx = 0
	case key.Matches(msg, k.Bottom):
		m.SelectedIdx = max(len(m.FilteredIndices)-1, 0)
	case key.Matches(msg, k.Filter):
		m.Mode = ModeFilter
		m.InputBuffer.Focus()
		return m, textinput.Blink
	case key.Matches(msg, k.Help):
		m.Mode = ModeHelp
		m.renderHelp()
		return m, nil
	case key.Matches(msg, k.ToggleTilde):
		m.KeepTilde = !m.KeepTilde
	case key.Matches(msg, k.Reload):
		if m.Busy {
			m.ReloadPending = true
			return m, nil
		}
		cmd := m.startLoad()
		return m, cmd
	case key.Matches(msg, k.Add):
		if m.Busy {
			return m, nil
		}
		m.Mode = ModeForm
		cmd := m.Form.open(nil)
		return m, cmd
	}

	entry, ok := m.selected()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Primary):
		if m.EnterAction == model.ActionPaste {
			return m.paste(entry)
		}
		cmd := m.search(entry)
		return m, cmd
	case key.Matches(msg, k.Paste):
		return m.paste(entry)
	case key.Matches(msg, k.Search):
		cmd := m.search(entry)
		return m, cmd
	case key.Matches(msg, k.Open):
		if err := m.actions.Open(entry.ExpandedPath); err != nil {
			cmd := m.setToast("Failed to open: "+err.Error(), true)
			return m, cmd
		}
		cmd := m.setToast("Opened "+entry.ExpandedPath, false)
		return m, cmd
	case key.Matches(msg, k.Copy):
		cmd := m.copy(entry.Display(m.KeepTilde), "Path copied to clipboard")
		return m, cmd
	case key.Matches(msg, k.CopyOther):
		title := "Path copied (with ~)"
		if m.KeepTilde {
			title = "Path copied (expanded)"
		}
		cmd := m.copy(entry.Display(!m.KeepTilde), title)
		return m, cmd
	}

	if m.Busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Edit):
		m.Mode = ModeForm
		cmd := m.Form.open(&entry)
		return m, cmd
	case key.Matches(msg, k.Delete):
		m.Mode = ModeConfirmDelete
		m.PendingDelete = entry.Slug
	case key.Matches(msg, k.MoveUp):
		return m.move(entry.Slug, model.Previous)
	case key.Matches(msg, k.MoveDown):
		return m.move(entry.Slug, model.Next)
	}
	return m, nil
}

func (m AppModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		// Keep the filter, go back to the list.
		m.Mode = ModeList
		m.InputBuffer.Blur()
		return m, nil
	case tea.KeyEsc:
		m.Mode = ModeList
		m.clearFilter()
		return m, nil
	case tea.KeyUp, tea.KeyDown:
		m.Mode = ModeList
		m.InputBuffer.Blur()
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.InputBuffer, cmd = m.InputBuffer.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m AppModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		return m, nil
	case "tab", "down":
		cmd := m.Form.setFocus(m.Form.focus + 1)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.Form.setFocus(m.Form.focus - 1)
		return m, cmd
	case "enter":
		if m.Form.focus < fieldPath {
			cmd := m.Form.setFocus(m.Form.focus + 1)
			return m, cmd
		}
		return m.submitForm()
	case "ctrl+s":
		return m.submitForm()
	}
	cmd := m.Form.update(msg)
	return m, cmd
}

func (m AppModel) submitForm() (tea.Model, tea.Cmd) {
	if !m.Form.validate() {
		return m, nil
	}
	slug, description, rawPath := m.Form.values()
	original := m.Form.originalSlug
	store := m.store
	op := func() error { return store.AddOrUpdate(slug, description, rawPath, "") }
	toast := "Entry added"
	if m.Form.editing() {
		op = func() error { return store.Update(original, slug, description, rawPath) }
		toast = "Entry updated"
	}

	m.Mode = ModeList
	m.Busy = true
	return m, runStoreOp(store, op, "Failed to save entry", toast, slug)
}

func (m AppModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		slug := m.PendingDelete
		m.PendingDelete = ""
		m.Mode = ModeList
		m.Busy = true
		store := m.store
		return m, runStoreOp(store, func() error {
			return store.Delete(slug)
		}, "Failed to delete entry", "Entry deleted", "")
	case "n", "N", "esc", "q":
		m.PendingDelete = ""
		m.Mode = ModeList
	}
	return m, nil
}

func (m AppModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.Mode = ModeList
		return m, nil
	}
	var cmd tea.Cmd
	m.HelpViewport, cmd = m.HelpViewport.Update(msg)
	return m, cmd
}

func (m AppModel) move(slug string, dir model.Direction) (tea.Model, tea.Cmd) {
	m.Busy = true
	store := m.store
	return m, runStoreOp(store, func() error {
		return store.Move(slug, dir)
	}, "Failed to move entry", "", slug)
}

func (m AppModel) paste(entry model.PathEntry) (tea.Model, tea.Cmd) {
	m.pasteText = entry.Display(m.KeepTilde)
	return m, tea.Quit
}

func (m *AppModel) search(entry model.PathEntry) tea.Cmd {
	if err := m.actions.Search(entry.ExpandedPath); err != nil {
		return m.setToast("Failed to start search: "+err.Error(), true)
	}
	return m.setToast("Searching in "+entry.Display(m.KeepTilde), false)
}

func (m *AppModel) copy(text, title string) tea.Cmd {
	if err := m.actions.Copy(text); err != nil {
		return m.setToast(err.Error(), true)
	}
	return m.setToast(title, false)
}

func (m *AppModel) setToast(text string, isErr bool) tea.Cmd {
	m.toastSeq++
	m.Toast = text
	m.ToastIsErr = isErr
	if isErr {
		m.logger.Warn("toast", "message", text)
	}
	seq := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return MsgToastExpired{seq: seq}
	})
}

// startLoad marks the model busy and reads the catalog in the background.
func (m *AppModel) startLoad() tea.Cmd {
	m.Busy = true
	m.ReloadPending = false
	return LoadCatalogCmd(m.store)
}

func (m AppModel) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return MsgFileChanged{}
	}
}

// ///////////////////////////////////////////////
// Filtering
// ///////////////////////////////////////////////

func (m *AppModel) clearFilter() {
	m.InputBuffer.Blur()
	m.InputBuffer.SetValue("")
	m.applyFilter()
}

// applyFilter recomputes FilteredIndices from the filter text.
func (m *AppModel) applyFilter() {
	term := strings.ToLower(strings.TrimSpace(m.InputBuffer.Value()))
	m.FilterActive = term != ""

	m.FilteredIndices = make([]int, 0, len(m.Entries))
	for i, e := range m.Entries {
		if e.Matches(term) {
			m.FilteredIndices = append(m.FilteredIndices, i)
		}
	}

	// Bounds check
	if m.SelectedIdx >= len(m.FilteredIndices) {
		m.SelectedIdx = max(len(m.FilteredIndices)-1, 0)
	}
}

func (m *AppModel) focusSlug(slug string) {
	if slug == "" {
		return
	}
	for i, idx := range m.FilteredIndices {
		if m.Entries[idx].Slug == slug {
			m.SelectedIdx = i
			return
		}
	}
}

// ///////////////////////////////////////////////
// Commands
// ///////////////////////////////////////////////

// LoadCatalogCmd reads the catalog file in the background.
func LoadCatalogCmd(store *catalog.Store) tea.Cmd {
	return func() tea.Msg {
		created, err := store.Load()
		if err != nil {
			return MsgError{Title: "Failed to load CSV/TSV", Err: err}
		}
		entries := store.Entries()
		return MsgCatalogReady{Entries: entries, Statuses: inspectAll(entries), Created: created}
	}
}

// runStoreOp runs one Store mutation in the background. An entry that
// vanished underneath an edit triggers a reload so the list catches up.
func runStoreOp(store *catalog.Store, op func() error, failTitle, toast, focus string) tea.Cmd {
	return func() tea.Msg {
		if err := op(); err != nil {
			return MsgError{Title: failTitle, Err: err, Reload: errors.Is(err, catalog.ErrEntryNotFound)}
		}
		entries := store.Entries()
		return MsgCatalogReady{Entries: entries, Statuses: inspectAll(entries), Toast: toast, Focus: focus}
	}
}

func inspectAll(entries []model.PathEntry) []model.PathStatus {
	out := make([]model.PathStatus, len(entries))
	for i, e := range entries {
		out[i] = model.Inspect(e.ExpandedPath)
	}
	return out
}
