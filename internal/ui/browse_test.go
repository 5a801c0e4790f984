package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/dragkit/internal/workspace"
)

func sampleEntries() []workspace.Entry {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []workspace.Entry{
		{Name: "a.md", Kind: "note", Size: 10, ModTime: now},
		{Name: "b.webloc", Kind: "bookmark", Size: 2048, ModTime: now},
	}
}

func press(m tea.Model, key string) tea.Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return next
}

func TestBrowserDeleteRemovesRow(t *testing.T) {
	var deleted []string
	m := newBrowser(sampleEntries(), func(e workspace.Entry) error {
		deleted = append(deleted, e.Name)
		return nil
	})

	next := press(m, "d").(browser)
	require.Equal(t, []string{"a.md"}, deleted)
	require.Len(t, next.entries, 1)
	assert.Equal(t, "b.webloc", next.entries[0].Name)
	assert.Contains(t, next.View(), "removed a.md")
}

func TestBrowserDeleteFailureKeepsRow(t *testing.T) {
	m := newBrowser(sampleEntries(), func(workspace.Entry) error { return errors.New("busy") })
	next := press(m, "d").(browser)
	assert.Len(t, next.entries, 2)
	assert.Contains(t, next.View(), "delete failed: busy")
}

func TestBrowserEmptyView(t *testing.T) {
	m := newBrowser(nil, nil)
	assert.Equal(t, "(no artifacts)\n", m.View())
	next := press(m, "d").(browser)
	assert.Empty(t, next.entries)
}

func TestHumanSizeAndTruncate(t *testing.T) {
	assert.Equal(t, "10B", humanSize(10))
	assert.Equal(t, "2.0K", humanSize(2048))
	assert.Equal(t, "1.5M", humanSize(3<<19))
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestFormatEntry(t *testing.T) {
	out := FormatEntry(workspace.Entry{Name: "x.png", Kind: "marker", Size: 67, Digest: "ff", Path: "/tmp/x.png"})
	assert.True(t, strings.HasPrefix(out, "Name: x.png\nKind: marker\nSize: 67\n"))
	assert.Contains(t, out, "Digest: ff\n")
}
