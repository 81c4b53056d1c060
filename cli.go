package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quickpaths/internal/catalog"
	"quickpaths/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	missingStyle = cellStyle.Foreground(lipgloss.Color("203"))
)

// cli runs the non-interactive modes against one Store.
type cli struct {
	store     *catalog.Store
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
	keepTilde bool
	yes       bool
}

// jsonEntry is the --json representation of an entry.
type jsonEntry struct {
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Path         string `json:"path"`
	ExpandedPath string `json:"expanded_path"`
	Status       string `json:"status"`
}

// load reads the catalog, reporting a freshly created file.
func (c *cli) load() error {
	created, err := c.store.Load()
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(c.errOut, "Created empty catalog file %s\n", c.store.Path())
	}
	return nil
}

func (c *cli) list(args []string) error {
	if err := c.load(); err != nil {
		return err
	}
	term := strings.Join(args, " ")

	entries := c.store.Entries()
	var rows [][]string
	var missing []bool
	for i, e := range entries {
		if !e.Matches(term) {
			continue
		}
		st := model.Inspect(e.ExpandedPath)
		rows = append(rows, []string{strconv.Itoa(i + 1), st.Icon(), e.Slug, e.Description, e.Display(c.keepTilde)})
		missing = append(missing, st.Kind == model.KindMissing)
	}
	if len(rows) == 0 {
		if c.store.Len() == 0 {
			fmt.Fprintln(c.errOut, "No paths yet. Add one with --add SLUG DESCRIPTION PATH")
		} else {
			fmt.Fprintf(c.errOut, "No entries match %q\n", term)
		}
		return nil
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("63"))).
		Headers("#", "", "NAME", "DESCRIPTION", "PATH").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(missing) && missing[row]:
				return missingStyle
			}
			return cellStyle
		})
	fmt.Fprintln(c.out, t)
	return nil
}

func (c *cli) json() error {
	if err := c.load(); err != nil {
		return err
	}
	entries := c.store.Entries()
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, jsonEntry{
			Slug:         e.Slug,
			Description:  e.Description,
			Path:         e.RawPath,
			ExpandedPath: e.ExpandedPath,
			Status:       model.Inspect(e.ExpandedPath).Label(),
		})
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (c *cli) get(slug string) error {
	if err := c.load(); err != nil {
		return err
	}
	e, ok := c.store.Find(slug)
	if !ok {
		return fmt.Errorf("get %q: %w", slug, catalog.ErrEntryNotFound)
	}
	fmt.Fprintln(c.out, e.Display(c.keepTilde))
	return nil
}

func (c *cli) add(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("--add needs SLUG DESCRIPTION PATH, got %d argument(s)", len(args))
	}
	if err := c.load(); err != nil {
		return err
	}
	slug, desc, path := args[0], args[1], c.storedPath(args[2])
	if err := c.store.AddOrUpdate(slug, desc, path, ""); err != nil {
		return err
	}
	fmt.Fprintf(c.errOut, "Entry added: %s → %s\n", slug, path)
	return nil
}

func (c *cli) edit(original string, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("--edit needs ORIGINAL SLUG DESCRIPTION PATH, got %d argument(s) after ORIGINAL", len(args))
	}
	if err := c.load(); err != nil {
		return err
	}
	slug, desc, path := args[0], args[1], c.storedPath(args[2])
	if err := c.store.Update(original, slug, desc, path); err != nil {
		return err
	}
	fmt.Fprintf(c.errOut, "Entry updated: %s → %s\n", slug, path)
	return nil
}

func (c *cli) remove(slug string) error {
	if err := c.load(); err != nil {
		return err
	}
	if _, ok := c.store.Find(slug); !ok {
		fmt.Fprintf(c.errOut, "No entry named %q\n", slug)
		return nil
	}
	if !c.yes && !c.confirm(fmt.Sprintf("Delete %q?", slug)) {
		fmt.Fprintln(c.errOut, "Cancelled")
		return nil
	}
	if err := c.store.Delete(slug); err != nil {
		return err
	}
	fmt.Fprintln(c.errOut, "Entry deleted")
	return nil
}

func (c *cli) move(slug string, dir model.Direction) error {
	if err := c.load(); err != nil {
		return err
	}
	if _, ok := c.store.Find(slug); !ok {
		fmt.Fprintf(c.errOut, "No entry named %q\n", slug)
		return nil
	}
	return c.store.Move(slug, dir)
}

// confirm asks a yes/no question on c.in; anything but y/yes is a no.
func (c *cli) confirm(question string) bool {
	fmt.Fprintf(c.errOut, "%s [y/N] ", question)
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// storedPath collapses a shell-expanded home prefix back to ~.
func (c *cli) storedPath(path string) string {
	return model.CollapseHome(path, c.store.Home())
}
