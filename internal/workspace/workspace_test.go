package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "nested", "root"), "")
}

func TestNewDefaults(t *testing.T) {
	w := New("", "")
	assert.Equal(t, os.TempDir(), w.Root)
	assert.Equal(t, DefaultMarker, w.Marker)
	assert.Equal(t, DefaultMarker, filepath.Base(w.Dir()))
}

func TestWriteFileCreatesDirAndReplaces(t *testing.T) {
	w := newTestWorkspace(t)

	path, err := w.WriteFile("note.md", []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Dir(), "note.md"), path)

	path2, err := w.WriteFile("note.md", []byte("second"))
	require.NoError(t, err)
	assert.Equal(t, path, path2)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	des, err := os.ReadDir(w.Dir())
	require.NoError(t, err)
	assert.Len(t, des, 1, "temporary files must not linger")
}

func TestWriteFileRejectsTraversal(t *testing.T) {
	w := newTestWorkspace(t)
	for _, name := range []string{"", ".", "..", "../x.md", `a\b.md`} {
		_, err := w.WriteFile(name, []byte("x"))
		require.Error(t, err, "name %q", name)
		assert.True(t, errors.Is(err, ErrInvalidName), "name %q: %v", name, err)
	}
}

func TestWriteFileSurfacesOSError(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	w := New(blocker, "")
	_, err := w.WriteFile("a.md", []byte("x"))
	require.Error(t, err)

	var oe *OpError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "mkdir", oe.Op)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestCleanupOutsideMarkerIsNoop(t *testing.T) {
	w := newTestWorkspace(t)
	outside := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o600))

	require.NoError(t, w.Cleanup(outside))
	require.NoError(t, w.Cleanup("/etc/passwd"))

	_, err := os.Stat(outside)
	assert.NoError(t, err, "file outside workspace must survive")
}

func TestCleanupInsideWorkspace(t *testing.T) {
	w := newTestWorkspace(t)
	path, err := w.WriteFile("card.html", []byte("<html></html>"))
	require.NoError(t, err)

	require.NoError(t, w.Cleanup(path))
	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	// Already gone is still fine.
	require.NoError(t, w.Cleanup(path))
}

func TestListAndPurge(t *testing.T) {
	w := newTestWorkspace(t)

	entries, err := w.List()
	require.NoError(t, err)
	assert.Empty(t, entries, "missing workspace lists as empty")

	_, err = w.WriteFile("b.webloc", []byte("bookmark"))
	require.NoError(t, err)
	_, err = w.WriteFile("a.md", []byte("note"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(w.Dir(), ".tmp-123"), []byte("partial"), 0o600))

	entries, err = w.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.md", entries[0].Name)
	assert.Equal(t, "note", entries[0].Kind)
	assert.Equal(t, int64(4), entries[0].Size)
	assert.Equal(t, Digest([]byte("note")), entries[0].Digest)
	assert.Equal(t, "bookmark", entries[1].Kind)

	n, err := w.Purge()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	entries, err = w.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestKindOf(t *testing.T) {
	tests := map[string]string{
		"x.webloc":  "bookmark",
		"x.url":     "bookmark",
		"x.desktop": "bookmark",
		"x.HTML":    "snapshot",
		"x.md":      "note",
		"drag.png":  "marker",
		"x.bin":     "other",
	}
	for name, want := range tests {
		assert.Equal(t, want, KindOf(name), name)
	}
}

func TestDigest(t *testing.T) {
	d := Digest([]byte("hello"))
	assert.Len(t, d, 64)
	assert.Equal(t, d, Digest([]byte("hello")))
	assert.NotEqual(t, d, Digest([]byte("hello!")))
}
