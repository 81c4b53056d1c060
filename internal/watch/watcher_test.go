package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"quickpaths/internal/atomicfile"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitEvent(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case <-w.Events():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcherSeesAtomicReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paths.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,A,/a\n"), 0o644))

	w, err := New(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, atomicfile.Replace(path, []byte("b,B,/b\n")))
	waitEvent(t, w)

	// A second replace must still be seen after the first rename.
	require.NoError(t, atomicfile.Replace(path, []byte("c,C,/c\n")))
	waitEvent(t, w)
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paths.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := New(path)
	require.NoError(t, err)
	defer w.Close()
	if w.Polling() {
		t.Skip("fsnotify unavailable")
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case <-w.Events():
		t.Fatal("unexpected event for a sibling file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherPollingFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paths.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,A,/a\n"), 0o644))

	w, err := New(path, ForcePolling(), WithPollInterval(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()
	assert.True(t, w.Polling())

	require.NoError(t, os.WriteFile(path, []byte("a,A,/a\nb,B,/b\n"), 0o644))
	waitEvent(t, w)

	require.NoError(t, os.Remove(path))
	waitEvent(t, w)
}

func TestCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paths.csv")
	w, err := New(path)
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
