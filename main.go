package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"quickpaths/internal/catalog"
	"quickpaths/internal/config"
	"quickpaths/internal/launcher"
	"quickpaths/internal/logger"
	"quickpaths/internal/model"
	"quickpaths/internal/paths"
	"quickpaths/internal/tui"
	"quickpaths/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

const (
	releaseOwner = "quickpaths"
	releaseRepo  = "quickpaths"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      releaseOwner,
		Repository: releaseRepo,
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not check for updates: %v\n", err)
		return
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Printf("👉 Download it from https://github.com/%s/%s/releases\n", releaseOwner, releaseRepo)
	} else {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: quickpaths [options] [args]\n\n")
		fmt.Fprintf(os.Stderr, "quickpaths keeps a catalog of named filesystem paths in a CSV/TSV file\n")
		fmt.Fprintf(os.Stderr, "and lets you copy, paste, open or search them.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  quickpaths                               # Start the TUI\n")
		fmt.Fprintf(os.Stderr, "  quickpaths --list 'proj*'                # List entries matching a pattern\n")
		fmt.Fprintf(os.Stderr, "  quickpaths -g docs                       # Print the path named docs\n")
		fmt.Fprintf(os.Stderr, "  quickpaths -a docs \"My docs\" ~/Documents  # Add an entry\n")
		fmt.Fprintf(os.Stderr, "  quickpaths -e docs docs \"Docs\" ~/docs     # Edit the entry named docs\n")
		fmt.Fprintf(os.Stderr, "  quickpaths -d docs --yes                 # Delete without asking\n")
	}

	listFlag := pflag.BoolP("list", "l", false, "List entries, optionally filtered by a text or glob argument")
	jsonFlag := pflag.BoolP("json", "j", false, "Print entries as JSON")
	getFlag := pflag.StringP("get", "g", "", "Print the path of the named entry")
	addFlag := pflag.BoolP("add", "a", false, "Add an entry: SLUG DESCRIPTION PATH")
	editFlag := pflag.StringP("edit", "e", "", "Replace the named entry: ORIGINAL SLUG DESCRIPTION PATH")
	deleteFlag := pflag.StringP("delete", "d", "", "Delete the named entry")
	upFlag := pflag.String("up", "", "Move the named entry one place up")
	downFlag := pflag.String("down", "", "Move the named entry one place down")
	yesFlag := pflag.BoolP("yes", "y", false, "Do not ask for confirmation")
	fileFlag := pflag.StringP("file", "f", "", "Catalog file to use (overrides the config)")
	tildeFlag := pflag.BoolP("tilde", "t", false, "Show and copy paths with ~ instead of expanded")
	configFlag := pflag.String("config", "", "Config directory (default $QUICKPATHS_DIR or ~/.config/quickpaths)")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for a newer release")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("quickpaths version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	dir := paths.Default()
	if *configFlag != "" {
		dir = paths.DataDir{Root: *configFlag}
	}
	cfg, created, err := config.LoadOrCreate(dir)
	if err != nil {
		if cfg == nil {
			fail(err)
		}
		fmt.Fprintf(os.Stderr, "Warning: could not write default config: %v\n", err)
	}
	if created {
		fmt.Fprintf(os.Stderr, "Created default config %s\n", dir.Config())
	}
	if *fileFlag != "" {
		cfg.CatalogPath = *fileFlag
	}
	if pflag.Lookup("tilde").Changed {
		cfg.DefaultExpandTilde = *tildeFlag
	}

	log, closer, err := logger.New(dir.Log(), logger.ParseLevel(cfg.Log.Level), cfg.Log.MaxSizeMB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		log, closer = slog.New(slog.DiscardHandler), io.NopCloser(nil)
	}
	defer closer.Close()
	log.Info("starting", "version", model.Version, "catalog", cfg.CatalogPath)

	store := catalog.NewStore(cfg.CatalogPath, catalog.WithLogger(log))
	c := &cli{
		store:     store,
		in:        os.Stdin,
		out:       os.Stdout,
		errOut:    os.Stderr,
		keepTilde: cfg.DefaultExpandTilde,
		yes:       *yesFlag,
	}
	args := pflag.Args()

	switch {
	case *listFlag:
		err = c.list(args)
	case *jsonFlag:
		err = c.json()
	case *getFlag != "":
		err = c.get(*getFlag)
	case *addFlag:
		err = c.add(args)
	case *editFlag != "":
		err = c.edit(*editFlag, args)
	case *deleteFlag != "":
		err = c.remove(*deleteFlag)
	case *upFlag != "":
		err = c.move(*upFlag, model.Previous)
	case *downFlag != "":
		err = c.move(*downFlag, model.Next)
	default:
		err = runTuiMode(cfg, store, log)
	}
	if err != nil {
		log.Error("command failed", "error", err)
		closer.Close()
		fail(err)
	}
}

func runTuiMode(cfg *config.Config, store *catalog.Store, log *slog.Logger) error {
	l := launcher.New(
		launcher.WithSearchCommand(cfg.SearchCommand),
		launcher.WithLogger(log),
	)
	log.Debug("launcher ready", "platform", l.Platform().Name(), "search_command", cfg.SearchCommand)

	var changes <-chan struct{}
	w, err := watch.New(store.Path(), watch.WithLogger(log))
	if err != nil {
		log.Warn("file watching disabled", "error", err)
	} else {
		defer w.Close()
		changes = w.Events()
	}

	m := tui.InitialModel(tui.Options{
		Store:       store,
		Actions:     l,
		KeepTilde:   cfg.DefaultExpandTilde,
		EnterAction: cfg.EnterAction,
		Changes:     changes,
		Logger:      log,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	if fm, ok := final.(tui.AppModel); ok {
		if text := fm.PasteRequest(); text != "" {
			if err := l.Paste(text); err != nil {
				return fmt.Errorf("paste: %w", err)
			}
			fmt.Fprintln(os.Stderr, "Path pasted")
		}
	}
	return nil
}

func fail(err error) {
	if errors.Is(err, catalog.ErrEntryNotFound) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
