package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/dragkit/internal/workspace"
)

func entries() []workspace.Entry {
	ts := time.UnixMilli(1714564800000).UTC()
	return []workspace.Entry{
		{Name: "a\tb.md", Path: "/w/a\tb.md", Kind: "note", Size: 3, ModTime: ts, Digest: "ab"},
		{Name: "c.png", Path: "/w/c.png", Kind: "marker", Size: 67, ModTime: ts, Digest: "cd"},
	}
}

func TestWritePlainEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlainEntries(&buf, entries(), true))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "name"))
	assert.Contains(t, lines[1], `a\tb.md`)
	assert.Contains(t, lines[1], "1714564800000")
	assert.Contains(t, lines[2], "marker")
}

func TestWriteJSONEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONEntries(&buf, nil, false))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteJSONEntries(&buf, entries(), true))
	var got []workspace.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got, 2)
	assert.Equal(t, "c.png", got[1].Name)
}

func TestWriteNDJSONEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNDJSONEntries(&buf, entries()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var e workspace.Entry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &e))
	assert.Equal(t, "note", e.Kind)
}

func TestWritePaths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePaths(&buf, entries()[1:]))
	assert.Equal(t, "/w/c.png\n", buf.String())
}

func TestWritePrettyMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePrettyMarkdown(&buf, "# Title\n\nsome **bold** text", "notty", 60))
	out := buf.String()
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, "light", StyleFor("light"))
	assert.Equal(t, "dracula", StyleFor("dark"))
}
