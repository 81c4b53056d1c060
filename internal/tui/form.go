package tui

import (
	"strings"

	"quickpaths/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldSlug = iota
	fieldDescription
	fieldPath
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Description", "Path"}

// entryForm is the add / edit form.
type entryForm struct {
	inputs       [fieldCount]textinput.Model
	focus        int
	edit         bool
	originalSlug string
	err          string
}

func newEntryForm() entryForm {
	var f entryForm
	placeholders := [fieldCount]string{"docs", "Documentation folder", "~/Documents/"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 1024
		ti.Width = 50
		ti.Prompt = ""
		f.inputs[i] = ti
	}
	return f
}

// open resets the form for a new entry, or for editing entry when given.
func (f *entryForm) open(entry *model.PathEntry) tea.Cmd {
	*f = newEntryForm()
	if entry != nil {
		f.edit = true
		f.originalSlug = entry.Slug
		f.inputs[fieldSlug].SetValue(entry.Slug)
		f.inputs[fieldDescription].SetValue(entry.Description)
		f.inputs[fieldPath].SetValue(entry.RawPath)
	}
	return f.setFocus(fieldSlug)
}

func (f *entryForm) editing() bool { return f.edit }

func (f *entryForm) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f.inputs[f.focus].Focus()
}

func (f *entryForm) values() (slug, description, path string) {
	return strings.TrimSpace(f.inputs[fieldSlug].Value()),
		strings.TrimSpace(f.inputs[fieldDescription].Value()),
		strings.TrimSpace(f.inputs[fieldPath].Value())
}

// validate requires a name; the other fields may be empty.
func (f *entryForm) validate() bool {
	slug, _, _ := f.values()
	if slug == "" {
		f.err = "Name is required"
		return false
	}
	f.err = ""
	return true
}

func (f *entryForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}
