// Package launcher performs the actions that leave quickpaths: copying to
// the clipboard, pasting into the frontmost application, opening a path and
// starting an external file search.
package launcher

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	"quickpaths/internal/logger"

	"github.com/atotto/clipboard"
)

// Runner executes external commands.
type Runner interface {
	// Run executes the command and waits for it.
	Run(name string, args ...string) error
	// Start executes the command without waiting for it.
	Start(name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil && len(out) > 0 {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
	}
	return err
}

func (execRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Detached: the opened program outlives us.
	return cmd.Process.Release()
}

// Launcher binds a Platform to a clipboard and a command runner.
type Launcher struct {
	platform       Platform
	runner         Runner
	writeClipboard func(string) error
	searchTemplate string
	logger         *slog.Logger
}

// Option customizes a Launcher.
type Option func(*Launcher)

// WithPlatform overrides platform detection.
func WithPlatform(p Platform) Option {
	return func(l *Launcher) { l.platform = p }
}

// WithRunner replaces command execution, mainly for tests.
func WithRunner(r Runner) Option {
	return func(l *Launcher) { l.runner = r }
}

// WithClipboard replaces the system clipboard, mainly for tests.
func WithClipboard(write func(string) error) Option {
	return func(l *Launcher) { l.writeClipboard = write }
}

// WithSearchCommand sets a search command template; see ExpandTemplate.
func WithSearchCommand(template string) Option {
	return func(l *Launcher) { l.searchTemplate = strings.TrimSpace(template) }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Launcher) { l.logger = logger }
}

// New returns a Launcher for the running OS.
func New(opts ...Option) *Launcher {
	l := &Launcher{
		platform:       DetectPlatform(runtime.GOOS),
		runner:         execRunner{},
		writeClipboard: clipboard.WriteAll,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Platform returns the platform in use.
func (l *Launcher) Platform() Platform { return l.platform }

// Copy puts text on the system clipboard.
func (l *Launcher) Copy(text string) error {
	if err := l.writeClipboard(text); err != nil {
		l.logger.Warn("clipboard write failed", "error", err)
		return fmt.Errorf("clipboard unavailable: %w", err)
	}
	return nil
}

// Paste copies text and then sends the paste keystroke to whatever
// application is frontmost.
func (l *Launcher) Paste(text string) error {
	if err := l.Copy(text); err != nil {
		return err
	}
	return l.run(l.platform.PasteCommand(), true)
}

// Open opens path with the default handler for its type.
func (l *Launcher) Open(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	return l.run(l.platform.OpenCommand(path), false)
}

// Search starts the file search tool pre-filled with query.
func (l *Launcher) Search(query string) error {
	return l.run(l.SearchArgs(query), false)
}

// SearchArgs returns the command Search would run.
func (l *Launcher) SearchArgs(query string) []string {
	if l.searchTemplate != "" {
		return ExpandTemplate(l.searchTemplate, query)
	}
	return l.platform.SearchCommand(query)
}

func (l *Launcher) run(argv []string, wait bool) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}
	logger.Trace(l.logger, "launching", "platform", l.platform.Name(), "argv", strings.Join(argv, " "), "wait", wait)

	var err error
	if wait {
		err = l.runner.Run(argv[0], argv[1:]...)
	} else {
		err = l.runner.Start(argv[0], argv[1:]...)
	}
	if err != nil {
		l.logger.Warn("launch failed", "command", argv[0], "error", err)
		return fmt.Errorf("run %s: %w", argv[0], err)
	}
	return nil
}
