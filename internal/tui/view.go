package tui

import (
	_ "embed"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"quickpaths/internal/model"
)

//go:embed help.md
var helpMD string

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	slugStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	missingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	pathHighlightStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
				Bold(true)

	okToastStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	errToastStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	borderColor   = lipgloss.Color("63")
)

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Loading catalog... please wait.\n"
	}
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.Err)
	}

	switch m.Mode {
	case ModeHelp:
		return m.renderHelpDialog()
	case ModeForm:
		return m.renderForm()
	case ModeConfirmDelete:
		return m.renderConfirm()
	}

	width, height := m.WindowSize.Width, m.WindowSize.Height
	if width < 40 {
		width = 80
	}
	if height < 10 {
		height = 24
	}

	netWidth := width - 4
	leftWidth := netWidth * 55 / 100
	rightWidth := netWidth - leftWidth

	// Title + filter + blank + footer(2) + borders(2)
	interiorHeight := height - 7
	if interiorHeight < 3 {
		interiorHeight = 3
	}

	header := titleStyle.Render("Paths") + " " + dimStyle.Render(m.store.Path())
	filterLine := m.renderFilterLine()

	var left string
	if len(m.Entries) == 0 {
		left = m.renderEmpty(leftWidth, interiorHeight)
	} else {
		left = m.renderList(leftWidth, interiorHeight)
	}
	leftBox := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(left)

	rightBox := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.renderDetails(rightWidth - 2))

	main := lipgloss.JoinHorizontal(lipgloss.Top, leftBox, rightBox)
	return lipgloss.JoinVertical(lipgloss.Left, header, filterLine, main, m.renderFooter())
}

func (m AppModel) renderFilterLine() string {
	if m.Mode == ModeFilter || m.FilterActive {
		count := dimStyle.Render(fmt.Sprintf("  %d/%d", len(m.FilteredIndices), len(m.Entries)))
		return m.InputBuffer.View() + count
	}
	return dimStyle.Render("/ to filter")
}

func (m AppModel) renderEmpty(width, height int) string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		labelStyle.Render("No paths yet"),
		dimStyle.Render("Press n to add your first path"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

func (m AppModel) renderList(width, height int) string {
	if len(m.FilteredIndices) == 0 {
		return dimStyle.Render("  No entries match the filter")
	}

	// Windowing: keep the cursor roughly centred.
	visible := height
	startIdx := 0
	endIdx := len(m.FilteredIndices)
	if len(m.FilteredIndices) > visible {
		if m.SelectedIdx >= visible/2 {
			startIdx = m.SelectedIdx - visible/2
		}
		if startIdx+visible > len(m.FilteredIndices) {
			startIdx = len(m.FilteredIndices) - visible
		}
		endIdx = startIdx + visible
	}

	var b strings.Builder
	for i := startIdx; i < endIdx; i++ {
		idx := m.FilteredIndices[i]
		entry := m.Entries[idx]
		status := m.status(idx)

		cursor := " "
		if i == m.SelectedIdx {
			cursor = model.IconSelected
		}
		line := fmt.Sprintf("%s%2d. %s %s  %s", cursor, idx+1, status.Icon(), entry.Slug, entry.Description)
		line = truncate(line, width-1)

		switch {
		case i == m.SelectedIdx:
			line = selectedStyle.Width(width).Render(line)
		case status.Kind == model.KindMissing:
			line = missingStyle.Render(line)
		default:
			line = strings.Replace(line, entry.Slug, slugStyle.Render(entry.Slug), 1)
		}
		b.WriteString(line)
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m AppModel) renderDetails(width int) string {
	entry, ok := m.selected()
	if !ok {
		return dimStyle.Render("Nothing selected")
	}
	idx := m.FilteredIndices[m.SelectedIdx]
	status := m.status(idx)

	position := fmt.Sprintf("%d of %d", idx+1, len(m.Entries))
	if idx == 0 {
		position += " (first " + model.IconFirst + ")"
	} else if idx == len(m.Entries)-1 {
		position += " (last " + model.IconLast + ")"
	}

	shown := entry.Display(m.KeepTilde)
	mode := "expanded"
	if m.KeepTilde {
		mode = "with ~"
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(entry.Slug) + "\n")
	if entry.Description != "" {
		b.WriteString(entry.Description + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Path ("+mode+")") + "\n")
	b.WriteString(pathHighlightStyle.Render(wrap(shown, width)) + "\n\n")
	if entry.RawPath != entry.ExpandedPath {
		other := entry.Display(!m.KeepTilde)
		b.WriteString(dimStyle.Render("Other form") + "\n")
		b.WriteString(wrap(other, width) + "\n\n")
	}
	b.WriteString(dimStyle.Render("Status  ") + status.Icon() + " " + status.Label() + "\n")
	if status.ErrorMsg != "" {
		b.WriteString(missingStyle.Render(wrap(status.ErrorMsg, width)) + "\n")
	}
	b.WriteString(dimStyle.Render("Entry   ") + position + "\n")
	b.WriteString(dimStyle.Render("Enter   ") + string(m.EnterAction) + "\n")
	return b.String()
}

func (m AppModel) renderFooter() string {
	var toast string
	if m.Toast != "" {
		if m.ToastIsErr {
			toast = errToastStyle.Render("✗ " + m.Toast)
		} else {
			toast = okToastStyle.Render("✓ " + m.Toast)
		}
	}

	var hints []string
	for _, b := range m.keys.footerBindings() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return toast + "\n" + dimStyle.Render(strings.Join(hints, " • "))
}

func (m AppModel) renderForm() string {
	title := "Add Entry"
	if m.Form.editing() {
		title = "Edit Entry"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")
	for i, in := range m.Form.inputs {
		label := fmt.Sprintf("%-12s", fieldLabels[i])
		if i == m.Form.focus {
			label = labelStyle.Render(label)
		} else {
			label = dimStyle.Render(label)
		}
		b.WriteString(label + " " + in.View() + "\n")
	}
	if m.Form.err != "" {
		b.WriteString("\n" + errToastStyle.Render(m.Form.err) + "\n")
	}
	action := "Add Entry"
	if m.Form.editing() {
		action = "Save Changes"
	}
	b.WriteString("\n" + dimStyle.Render("tab next field • ctrl+s "+action+" • esc cancel"))

	return m.dialog(b.String(), borderColor, 70)
}

func (m AppModel) renderConfirm() string {
	body := labelStyle.Render("Delete entry?") + "\n\n" +
		fmt.Sprintf("Delete %q?", m.PendingDelete) + "\n\n" +
		dimStyle.Render("y delete • n cancel")
	return m.dialog(body, lipgloss.Color("208"), 50)
}

func (m AppModel) dialog(body string, border lipgloss.Color, maxWidth int) string {
	w, h := m.WindowSize.Width, m.WindowSize.Height
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2)
	if w > 0 && maxWidth > w-4 {
		maxWidth = w - 4
	}
	box = box.Width(maxWidth)
	if w < 20 || h < 8 {
		return box.Render(body)
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box.Render(body))
}

// renderHelp fills the help viewport, rendering the markdown once per size.
func (m *AppModel) renderHelp() {
	if m.helpRendered != "" {
		return
	}
	width := m.HelpViewport.Width
	if width <= 0 {
		width = 80
		m.HelpViewport.Width = width
	}
	if m.HelpViewport.Height <= 0 {
		m.HelpViewport.Height = 20
	}

	text := strings.NewReplacer(
		"{{VERSION}}", model.Version,
		"{{CATALOG}}", m.store.Path(),
		"{{ENTER}}", string(m.EnterAction),
	).Replace(helpMD)

	rendered := text
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width-4),
	)
	if err == nil {
		if out, err := r.Render(text); err == nil {
			rendered = out
		}
	}
	m.helpRendered = rendered
	m.HelpViewport.SetContent(rendered)
	m.HelpViewport.GotoTop()
}

func (m AppModel) renderHelpDialog() string {
	footer := dimStyle.Render("↑/↓ scroll • ? or esc close")
	body := m.HelpViewport.View() + "\n" + footer
	w, h := m.WindowSize.Width, m.WindowSize.Height
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(body)
	if w < 20 || h < 10 {
		return box
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(LoadCatalogCmd(m.store), m.waitForChange())
}

func truncate(s string, width int) string {
	if width <= 3 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-3 {
		runes = runes[:width-3]
	}
	return string(runes) + "..."
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
