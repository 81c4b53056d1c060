package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the list-mode key bindings.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Primary     key.Binding
	Paste       key.Binding
	Search      key.Binding
	Open        key.Binding
	ToggleTilde key.Binding
	Copy        key.Binding
	CopyOther   key.Binding
	Add         key.Binding
	Edit        key.Binding
	Delete      key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Filter      key.Binding
	Reload      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		Bottom:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		Primary:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "primary action")),
		Paste:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
		Search:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search files")),
		Open:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		ToggleTilde: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toggle ~")),
		Copy:        key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c", "copy")),
		CopyOther:   key.NewBinding(key.WithKeys("C", "Y"), key.WithHelp("C", "copy other form")),
		Add:         key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n", "new")),
		Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:      key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "delete")),
		MoveUp:      key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown:    key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// footerBindings is the short list shown in the footer.
func (k KeyMap) footerBindings() []key.Binding {
	return []key.Binding{k.Primary, k.Copy, k.ToggleTilde, k.Add, k.Edit, k.Delete, k.Filter, k.Help, k.Quit}
}
