package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"quickpaths/internal/model"
)

// Store owns the ordered entry list of one catalog file.
//
// Every mutation is a full cycle: read the file, decode, change the list,
// encode, write the whole file, then read it back. The list held in memory
// is therefore always what the file on disk says, including edits made by
// other programs between operations. A Store is not safe for concurrent use.
type Store struct {
	path    string
	fs      FileSystem
	home    string
	logger  *slog.Logger
	entries []model.PathEntry
	rawText string
}

// Option customizes a Store.
type Option func(*Store)

// WithFileSystem replaces the local disk, mainly for tests.
func WithFileSystem(fsys FileSystem) Option {
	return func(s *Store) { s.fs = fsys }
}

// WithHome sets the directory ~ expands to.
func WithHome(home string) Option {
	return func(s *Store) { s.home = home }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore returns a Store for the catalog at path. A leading ~ in path is
// expanded and the result made absolute. Nothing is read until Load.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		fs:      OSFileSystem{},
		home:    model.UserHome(),
		logger:  slog.New(slog.DiscardHandler),
		entries: []model.PathEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.path = model.ExpandHome(path, s.home)
	if abs, err := filepath.Abs(s.path); err == nil {
		s.path = abs
	}
	return s
}

// Path returns the resolved location of the backing file.
func (s *Store) Path() string { return s.path }

// Home returns the directory ~ expands to.
func (s *Store) Home() string { return s.home }

// Entries returns a copy of the current entries.
func (s *Store) Entries() []model.PathEntry {
	return slices.Clone(s.entries)
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// Delimiter returns the delimiter the next Save will use.
func (s *Store) Delimiter() rune { return DetectDelimiter(s.rawText) }

// Find returns the first entry whose slug matches.
func (s *Store) Find(slug string) (model.PathEntry, bool) {
	i := s.indexOf(slug)
	if i < 0 {
		return model.PathEntry{}, false
	}
	return s.entries[i], true
}

// Load reads and decodes the backing file. A missing file is created empty,
// along with its parent directories, and created is reported as true. Any
// other failure, including a file that cannot be parsed safely, wraps ErrIO
// and leaves the current entries untouched.
func (s *Store) Load() (created bool, err error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("%w: read %s: %w", ErrIO, s.path, err)
		}
		if err := s.bootstrap(); err != nil {
			return false, err
		}
		data, created = nil, true
	}

	text := string(data)
	entries, err := Decode(text, s.home)
	if err != nil {
		return false, fmt.Errorf("%w: parse %s: %w", ErrIO, s.path, err)
	}
	s.entries = entries
	s.rawText = text
	s.logger.Debug("catalog loaded", "path", s.path, "entries", len(s.entries), "created", created)
	return created, nil
}

func (s *Store) bootstrap() error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("%w: create directory for %s: %w", ErrIO, s.path, err)
	}
	if err := s.fs.WriteFile(s.path, nil); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, s.path, err)
	}
	s.logger.Info("created empty catalog file", "path", s.path)
	return nil
}

// Save encodes the current entries with the delimiter of the last text read
// or written and overwrites the backing file.
func (s *Store) Save() error {
	text, err := Encode(s.entries, s.Delimiter())
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := s.fs.WriteFile(s.path, []byte(text)); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, s.path, err)
	}
	s.rawText = text
	s.logger.Debug("catalog saved", "path", s.path, "entries", len(s.entries))
	return nil
}

// AddOrUpdate appends a new entry when originalSlug is empty, otherwise it
// behaves like Update.
func (s *Store) AddOrUpdate(slug, description, rawPath, originalSlug string) error {
	if originalSlug == "" {
		return s.mutate(func(entries []model.PathEntry) ([]model.PathEntry, error) {
			return append(entries, s.newEntry(slug, description, rawPath)), nil
		})
	}
	return s.Update(originalSlug, slug, description, rawPath)
}

// Update replaces the first entry named originalSlug in place, or returns
// ErrEntryNotFound without writing if there is none. An empty originalSlug
// names an entry whose name column is empty.
func (s *Store) Update(originalSlug, slug, description, rawPath string) error {
	return s.mutate(func(entries []model.PathEntry) ([]model.PathEntry, error) {
		i := indexOf(entries, originalSlug)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrEntryNotFound, originalSlug)
		}
		entries[i] = s.newEntry(slug, description, rawPath)
		return entries, nil
	})
}

func (s *Store) newEntry(slug, description, rawPath string) model.PathEntry {
	return model.NewPathEntry(cleanField(slug), cleanField(description), cleanField(rawPath), s.home)
}

// Delete removes the first entry named slug. An unknown slug leaves the
// catalog as it is.
func (s *Store) Delete(slug string) error {
	return s.mutate(func(entries []model.PathEntry) ([]model.PathEntry, error) {
		if i := indexOf(entries, slug); i >= 0 {
			entries = slices.Delete(entries, i, i+1)
		}
		return entries, nil
	})
}

// Move swaps the first entry named slug with its neighbour in direction.
// Moving past either end, or an unknown slug, changes nothing.
func (s *Store) Move(slug string, direction model.Direction) error {
	return s.mutate(func(entries []model.PathEntry) ([]model.PathEntry, error) {
		i := indexOf(entries, slug)
		if i < 0 {
			return entries, nil
		}
		j := i - 1
		if direction == model.Next {
			j = i + 1
		}
		if j < 0 || j >= len(entries) {
			return entries, nil
		}
		entries[i], entries[j] = entries[j], entries[i]
		return entries, nil
	})
}

// mutate runs one read-modify-write-reread cycle. On any failure the entries
// from the last successful Load are kept.
func (s *Store) mutate(fn func([]model.PathEntry) ([]model.PathEntry, error)) error {
	if _, err := s.Load(); err != nil {
		return err
	}

	next, err := fn(slices.Clone(s.entries))
	if err != nil {
		return err
	}

	prev := s.entries
	s.entries = next
	if err := s.Save(); err != nil {
		s.entries = prev
		return err
	}

	_, err = s.Load()
	return err
}

func (s *Store) indexOf(slug string) int { return indexOf(s.entries, slug) }

func indexOf(entries []model.PathEntry, slug string) int {
	return slices.IndexFunc(entries, func(e model.PathEntry) bool { return e.Slug == slug })
}

// cleanField trims a user supplied value the way Decode trims stored ones,
// and turns tabs into spaces: a tab written into a comma file would make the
// next read treat the whole file as tab separated.
func cleanField(v string) string {
	return strings.TrimSpace(strings.ReplaceAll(v, "\t", " "))
}
