package artifact

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/dragkit/internal/convert"
	"github.com/mithrel/dragkit/internal/workspace"
)

func newTestMaterializer(t *testing.T, opts ...Option) *Materializer {
	t.Helper()
	ws := workspace.New(filepath.Join(t.TempDir(), "tmp"), "")
	return New(ws, opts...)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestCreateNoteFileFromHTML(t *testing.T) {
	m := newTestMaterializer(t)
	res, err := m.CreateNoteFile("My Title: v2", "<p>Hello <strong>World</strong></p>")
	require.NoError(t, err)

	assert.Equal(t, "My Title_ v2.md", filepath.Base(res.Path))
	assert.Equal(t, KindNote, res.Kind)
	body := readFile(t, res.Path)
	assert.Equal(t, "# My Title: v2\n\nHello **World**", body)
	assert.Equal(t, len(body), res.Size)
	assert.Equal(t, workspace.Digest([]byte(body)), res.Digest)
}

func TestCreateNoteFileFromStructured(t *testing.T) {
	m := newTestMaterializer(t)
	res, err := m.CreateNoteFile("Card", `[{"type":"h2","children":[{"text":"Sub"}]},{"type":"action_item","checked":true,"children":[{"text":"ship"}]}]`)
	require.NoError(t, err)
	assert.Equal(t, "# Card\n\n## Sub\n- [x] ship", readFile(t, res.Path))
}

func TestCreateNoteFileMalformedStructuredFallsBack(t *testing.T) {
	m := newTestMaterializer(t)
	res, err := m.CreateNoteFile("Broken", `[{"type":"p",]`)
	require.NoError(t, err)
	assert.Equal(t, "# Broken\n\n"+`[{"type":"p",]`, readFile(t, res.Path))
}

func TestCreateNoteFileConvertMode(t *testing.T) {
	m := newTestMaterializer(t, WithConverter(convert.New(convert.ModeConvert)))
	res, err := m.CreateNoteFile("Links", `<p>see <a href="https://e.test">this</a></p>`)
	require.NoError(t, err)
	assert.Equal(t, "# Links\n\nsee [this](https://e.test)", readFile(t, res.Path))
}

func TestCreateNoteFileReplacesExisting(t *testing.T) {
	m := newTestMaterializer(t)
	first, err := m.CreateNoteFile("Same", "one")
	require.NoError(t, err)
	second, err := m.CreateNoteFile("Same", "two")
	require.NoError(t, err)
	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, "# Same\n\ntwo", readFile(t, second.Path))
}

func TestCreateNoteFileEmptyTitle(t *testing.T) {
	m := newTestMaterializer(t)
	res, err := m.CreateNoteFile("  ", "x")
	require.NoError(t, err)
	assert.Equal(t, "untitled.md", filepath.Base(res.Path))
}

func TestCreateBookmarkFile(t *testing.T) {
	m := newTestMaterializer(t)
	res, err := m.CreateBookmarkFile("https://e.test/?a=1&b=<2>", "Search: results")
	require.NoError(t, err)

	assert.Equal(t, "Search_ results.webloc", filepath.Base(res.Path))
	body := readFile(t, res.Path)
	assert.Contains(t, body, "<key>URL</key>")
	assert.Contains(t, body, "<string>https://e.test/?a=1&amp;b=&lt;2&gt;</string>")
	assert.True(t, strings.HasPrefix(body, `<?xml version="1.0" encoding="UTF-8"?>`))
}

func TestBookmarkFormats(t *testing.T) {
	m := newTestMaterializer(t, WithBookmarkFormat(FormatURL))
	res, err := m.CreateBookmarkFile("https://e.test/a&b", "Win")
	require.NoError(t, err)
	assert.Equal(t, "Win.url", filepath.Base(res.Path))
	assert.Equal(t, "[InternetShortcut]\r\nURL=https://e.test/a&b\r\n", readFile(t, res.Path))

	body := string(BookmarkBody(FormatDesktop, "https://e.test", "Line\nbreak"))
	assert.Contains(t, body, "Type=Link\n")
	assert.Contains(t, body, "Name=Line break\n")
	assert.Contains(t, body, "URL=https://e.test\n")

	f, err := ParseBookmarkFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatWebloc, f)
	_, err = ParseBookmarkFormat("lnk")
	assert.Error(t, err)
}

func TestCreateSnapshotFile(t *testing.T) {
	m := newTestMaterializer(t)
	res, err := m.CreateSnapshotFile(Snapshot{
		URL:         "https://e.test/p?x=1&y=2",
		Title:       `Tom & "Jerry" <3`,
		Description: "it's <b>bold</b>",
		ImageURL:    "https://e.test/cover.png",
		ContentHTML: "<p>trusted <em>html</em></p>",
		Notes:       "remember <this>",
	})
	require.NoError(t, err)
	assert.Equal(t, `Tom & _Jerry_ _3.html`, filepath.Base(res.Path))

	body := readFile(t, res.Path)
	assert.Contains(t, body, `<meta http-equiv="refresh" content="0; url=https://e.test/p?x=1&amp;y=2">`)
	assert.Contains(t, body, "<title>Tom &amp; &#34;Jerry&#34; &lt;3</title>")
	assert.Contains(t, body, "it&#39;s &lt;b&gt;bold&lt;/b&gt;")
	assert.Contains(t, body, "<p>trusted <em>html</em></p>")
	assert.Contains(t, body, "remember &lt;this&gt;")
	assert.Contains(t, body, `<img class="cover" src="https://e.test/cover.png" alt="">`)
	assert.Contains(t, body, "<style>")
}

func TestSnapshotOmitsEmptyOptionals(t *testing.T) {
	m := newTestMaterializer(t, WithTheme(ThemeDark))
	body, err := m.SnapshotBody(Snapshot{URL: "https://e.test", Title: "Bare"})
	require.NoError(t, err)
	s := string(body)
	assert.NotContains(t, s, `class="cover"`)
	assert.NotContains(t, s, `class="description"`)
	assert.NotContains(t, s, `class="content"`)
	assert.NotContains(t, s, `class="notes"`)
	assert.Contains(t, s, "#141416", "dark palette")
}

func TestSnapshotRendersMarkdownContent(t *testing.T) {
	m := newTestMaterializer(t)
	body, err := m.SnapshotBody(Snapshot{URL: "u", Title: "t", ContentMarkdown: "# Head\n\n- [x] done"})
	require.NoError(t, err)
	s := string(body)
	assert.Contains(t, s, "<h1>Head</h1>")
	assert.Contains(t, s, `type="checkbox"`)

	// HTML content wins over markdown.
	body, err = m.SnapshotBody(Snapshot{URL: "u", Title: "t", ContentHTML: "<i>x</i>", ContentMarkdown: "# ignored"})
	require.NoError(t, err)
	assert.Contains(t, string(body), "<i>x</i>")
	assert.NotContains(t, string(body), "ignored")
}

func TestCreateMarkerFileOnce(t *testing.T) {
	m := newTestMaterializer(t)
	res, err := m.CreateMarkerFile()
	require.NoError(t, err)
	assert.Equal(t, MarkerName, filepath.Base(res.Path))

	img, err := png.Decode(bytes.NewReader([]byte(readFile(t, res.Path))))
	require.NoError(t, err)
	assert.Equal(t, 1, img.Bounds().Dx())
	assert.Equal(t, 1, img.Bounds().Dy())

	// A second call must not rewrite the file.
	require.NoError(t, os.WriteFile(res.Path, []byte("sentinel"), 0o644))
	again, err := m.CreateMarkerFile()
	require.NoError(t, err)
	assert.Equal(t, res.Path, again.Path)
	assert.Equal(t, "sentinel", readFile(t, res.Path))
}

func TestCleanupFile(t *testing.T) {
	m := newTestMaterializer(t)
	res, err := m.CreateNoteFile("Gone", "bye")
	require.NoError(t, err)
	require.NoError(t, m.CleanupFile(res.Path))
	_, err = os.Stat(res.Path)
	assert.True(t, os.IsNotExist(err))

	before, err := os.Stat("/etc/passwd")
	if err == nil {
		require.NoError(t, m.CleanupFile("/etc/passwd"))
		after, err := os.Stat("/etc/passwd")
		require.NoError(t, err)
		assert.Equal(t, before.Size(), after.Size())
	}
}

func TestWriteFailureSurfaces(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o600))
	m := New(workspace.New(root, ""))

	_, err := m.CreateBookmarkFile("https://e.test", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mkdir")
}

func TestConcurrentDistinctNotes(t *testing.T) {
	m := newTestMaterializer(t)
	var wg sync.WaitGroup
	titles := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	errs := make([]error, len(titles))
	for i, title := range titles {
		wg.Add(1)
		go func(i int, title string) {
			defer wg.Done()
			_, errs[i] = m.CreateNoteFile(title, "<p>"+title+"</p>")
		}(i, title)
	}
	wg.Wait()
	for i, title := range titles {
		require.NoError(t, errs[i])
		assert.Equal(t, "# "+title+"\n\n"+title, readFile(t, filepath.Join(m.Workspace().Dir(), title+".md")))
	}
}
