package present

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/dragkit/internal/workspace"
)

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{"": ModePlain, "plain": ModePlain, "paths": ModePaths, "json": ModeJSON, "ndjson": ModeNDJSON, "tui": ModeTUI}
	for in, want := range cases {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("xml")
	assert.Error(t, err)
}

func TestRenderEntriesPaths(t *testing.T) {
	var buf bytes.Buffer
	es := []workspace.Entry{{Name: "a.md", Path: "/w/a.md"}, {Name: "b.md", Path: "/w/b.md"}}
	require.NoError(t, RenderEntries(context.Background(), &buf, es, Options{Mode: ModePaths}))
	assert.Equal(t, "/w/a.md\n/w/b.md\n", buf.String())
}
