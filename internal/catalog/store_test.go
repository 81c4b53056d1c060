package catalog

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickpaths/internal/model"
)

// memFS is an in-memory FileSystem with failure injection.
type memFS struct {
	files    map[string]string
	dirs     map[string]bool
	readErr  error
	writeErr error
	writes   int
}

func newMemFS() *memFS {
	return &memFS{files: map[string]string{}, dirs: map[string]bool{}}
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return []byte(data), nil
}

func (m *memFS) WriteFile(path string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.files[path] = string(data)
	return nil
}

func (m *memFS) MkdirAll(path string) error {
	m.dirs[path] = true
	return nil
}

const catalogPath = "/cfg/quickpaths/paths.csv"

func newTestStore(t *testing.T, content string) (*Store, *memFS) {
	t.Helper()
	mem := newMemFS()
	if content != "" {
		mem.files[catalogPath] = content
	}
	s := NewStore(catalogPath, WithFileSystem(mem), WithHome(testHome))
	_, err := s.Load()
	require.NoError(t, err)
	return s, mem
}

func slugs(s *Store) []string {
	var out []string
	for _, e := range s.Entries() {
		out = append(out, e.Slug)
	}
	return out
}

const threeEntries = "a,First,/a\nb,Second,/b\nc,Third,/c\n"

func TestNewStoreExpandsPath(t *testing.T) {
	s := NewStore("~/.config/quickpaths/paths.csv", WithFileSystem(newMemFS()), WithHome(testHome))
	assert.Equal(t, filepath.Join(testHome, ".config", "quickpaths", "paths.csv"), s.Path())
}

func TestLoadBootstrapsMissingFile(t *testing.T) {
	mem := newMemFS()
	s := NewStore(catalogPath, WithFileSystem(mem), WithHome(testHome))

	created, err := s.Load()
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, mem.dirs["/cfg/quickpaths"])
	assert.Equal(t, "", mem.files[catalogPath])
	assert.Zero(t, s.Len())

	created, err = s.Load()
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, s.Entries())
}

func TestLoadBootstrapsOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "paths.csv")
	s := NewStore(path, WithHome(testHome))

	created, err := s.Load()
	require.NoError(t, err)
	assert.True(t, created)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	created, err = NewStore(path, WithHome(testHome)).Load()
	require.NoError(t, err)
	assert.False(t, created)
}

func TestLoadReadFailureKeepsState(t *testing.T) {
	s, mem := newTestStore(t, threeEntries)
	mem.readErr = errors.New("permission denied")

	_, err := s.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.Equal(t, []string{"a", "b", "c"}, slugs(s))
	assert.Equal(t, 0, mem.writes, "no bootstrap on a non-missing error")
}

func TestAddAppends(t *testing.T) {
	s, mem := newTestStore(t, threeEntries)

	require.NoError(t, s.AddOrUpdate("d", "Fourth", "~/d", ""))

	assert.Equal(t, []string{"a", "b", "c", "d"}, slugs(s))
	e, ok := s.Find("d")
	require.True(t, ok)
	assert.Equal(t, "/home/ann/d", e.ExpandedPath)
	assert.Equal(t, threeEntries+"d,Fourth,~/d\n", mem.files[catalogPath])
}

func TestAddToEmptyCatalogUsesComma(t *testing.T) {
	s, mem := newTestStore(t, "")

	require.NoError(t, s.AddOrUpdate("docs", "Documents", "~/Documents", ""))

	assert.Equal(t, "docs,Documents,~/Documents\n", mem.files[catalogPath])
}

func TestUpdateReplacesInPlace(t *testing.T) {
	s, _ := newTestStore(t, threeEntries)

	require.NoError(t, s.AddOrUpdate("B", "Renamed", "~/b2", "b"))

	entries := s.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"a", "B", "c"}, slugs(s))
	assert.Equal(t, "Renamed", entries[1].Description)
	assert.Equal(t, "/home/ann/b2", entries[1].ExpandedPath)
	assert.Equal(t, "/a", entries[0].RawPath)
	assert.Equal(t, "/c", entries[2].RawPath)
}

func TestUpdateUnknownSlugReportsNotFound(t *testing.T) {
	s, mem := newTestStore(t, threeEntries)
	writes := mem.writes

	err := s.AddOrUpdate("x", "X", "/x", "gone")

	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.Equal(t, writes, mem.writes, "nothing written")
	assert.Equal(t, threeEntries, mem.files[catalogPath])
}

func TestUpdateSeesExternalEdit(t *testing.T) {
	s, mem := newTestStore(t, threeEntries)
	// Another program removes b after our load.
	mem.files[catalogPath] = "a,First,/a\nc,Third,/c\n"

	err := s.AddOrUpdate("b", "Second", "/b2", "b")

	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.Equal(t, []string{"a", "c"}, slugs(s))
}

func TestUpdateDuplicateSlugHitsFirst(t *testing.T) {
	s, _ := newTestStore(t, "a,One,/1\na,Two,/2\n")

	require.NoError(t, s.AddOrUpdate("a", "Changed", "/x", "a"))

	entries := s.Entries()
	assert.Equal(t, "Changed", entries[0].Description)
	assert.Equal(t, "Two", entries[1].Description)
}

func TestUpdateEntryWithEmptyName(t *testing.T) {
	s, mem := newTestStore(t, ",Nameless,/p\nb,B,/b\n")

	require.NoError(t, s.Update("", "named", "Nameless", "/p"))

	assert.Equal(t, []string{"named", "b"}, slugs(s))
	assert.Equal(t, "named,Nameless,/p\nb,B,/b\n", mem.files[catalogPath])
	assert.ErrorIs(t, s.Update("", "x", "X", "/x"), ErrEntryNotFound)
}

func TestBlanksNextToQuotesKeepEveryRow(t *testing.T) {
	s, mem := newTestStore(t, "a,\"x, y\" ,/p\nb,B,/q\nc,C,/r\n")
	require.Equal(t, []string{"a", "b", "c"}, slugs(s))

	require.NoError(t, s.AddOrUpdate("d", "D", "/s", ""))

	assert.Equal(t, "a,\"x, y\",/p\nb,B,/q\nc,C,/r\nd,D,/s\n", mem.files[catalogPath])
}

func TestUnterminatedQuoteBlocksWrites(t *testing.T) {
	const broken = "a,A,/a\nb,\"open,/b\nc,C,/c\n"
	s, mem := newTestStore(t, threeEntries)
	mem.files[catalogPath] = broken
	writes := mem.writes

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, ErrUnterminatedQuote)
	assert.Equal(t, []string{"a", "b", "c"}, slugs(s), "previous entries kept")

	assert.ErrorIs(t, s.AddOrUpdate("d", "D", "/d", ""), ErrIO)
	assert.ErrorIs(t, s.Delete("a"), ErrIO)
	assert.Equal(t, writes, mem.writes)
	assert.Equal(t, broken, mem.files[catalogPath])
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t, threeEntries)

	require.NoError(t, s.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, slugs(s))
}

func TestDeleteUnknownSlugIsNoop(t *testing.T) {
	s, mem := newTestStore(t, threeEntries)
	before := s.Entries()

	require.NoError(t, s.Delete("zzz"))

	assert.Equal(t, before, s.Entries())
	assert.Equal(t, threeEntries, mem.files[catalogPath])
}

func TestDeleteDuplicateRemovesFirstOnly(t *testing.T) {
	s, _ := newTestStore(t, "a,One,/1\na,Two,/2\n")

	require.NoError(t, s.Delete("a"))

	entries := s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Two", entries[0].Description)
}

func TestMove(t *testing.T) {
	tests := []struct {
		name      string
		slug      string
		direction model.Direction
		want      []string
	}{
		{"previous on first is noop", "a", model.Previous, []string{"a", "b", "c"}},
		{"next on last is noop", "c", model.Next, []string{"a", "b", "c"}},
		{"next swaps with following", "a", model.Next, []string{"b", "a", "c"}},
		{"next from middle", "b", model.Next, []string{"a", "c", "b"}},
		{"previous swaps with preceding", "c", model.Previous, []string{"a", "c", "b"}},
		{"unknown slug is noop", "zzz", model.Next, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t, threeEntries)
			require.NoError(t, s.Move(tt.slug, tt.direction))
			assert.Equal(t, tt.want, slugs(s))
		})
	}
}

func TestMoveKeepsOtherEntriesIntact(t *testing.T) {
	s, _ := newTestStore(t, "a,A,/a\nb,B,/b\nc,C,/c\nd,D,/d\n")
	before := s.Entries()

	require.NoError(t, s.Move("b", model.Next))

	after := s.Entries()
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[1], after[2])
	assert.Equal(t, before[2], after[1])
	assert.Equal(t, before[3], after[3])
}

func TestSavePreservesTabDelimiter(t *testing.T) {
	s, mem := newTestStore(t, "a\tFirst\t/a\n")

	require.NoError(t, s.AddOrUpdate("b", "Second, with comma", "/b", ""))

	assert.Equal(t, "a\tFirst\t/a\nb\tSecond, with comma\t/b\n", mem.files[catalogPath])
	assert.Equal(t, Tab, s.Delimiter())
}

func TestAddSanitizesTabsInCommaFile(t *testing.T) {
	s, mem := newTestStore(t, threeEntries)

	require.NoError(t, s.AddOrUpdate(" d ", "has\ttab", " /d ", ""))

	assert.Equal(t, Comma, DetectDelimiter(mem.files[catalogPath]))
	e, ok := s.Find("d")
	require.True(t, ok)
	assert.Equal(t, "has tab", e.Description)
	assert.Equal(t, "/d", e.RawPath)
}

func TestWriteFailureKeepsLoadedState(t *testing.T) {
	s, mem := newTestStore(t, threeEntries)
	mem.writeErr = errors.New("disk full")

	err := s.Delete("a")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.Equal(t, []string{"a", "b", "c"}, slugs(s))
}

func TestMutationsReloadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paths.csv")
	require.NoError(t, os.WriteFile(path, []byte(threeEntries), 0o644))

	s := NewStore(path, WithHome(testHome))
	_, err := s.Load()
	require.NoError(t, err)

	require.NoError(t, s.Move("c", model.Previous))
	require.NoError(t, s.AddOrUpdate("z", "Zed", "~/z", ""))
	require.NoError(t, s.Delete("a"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "c,Third,/c\nb,Second,/b\nz,Zed,~/z\n", string(data))

	fresh := NewStore(path, WithHome(testHome))
	_, err = fresh.Load()
	require.NoError(t, err)
	assert.Equal(t, s.Entries(), fresh.Entries())
}
