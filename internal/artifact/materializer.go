// Package artifact writes drag-and-drop artifacts (bookmarks, HTML
// snapshots, Markdown notes and the marker image) into a workspace.
package artifact

import (
	"io"
	"log"

	"github.com/yuin/goldmark"

	"github.com/mithrel/dragkit/internal/convert"
	"github.com/mithrel/dragkit/internal/workspace"
)

// Kind names an artifact format.
type Kind string

const (
	KindBookmark Kind = "bookmark"
	KindSnapshot Kind = "snapshot"
	KindNote     Kind = "note"
	KindMarker   Kind = "marker"
)

// Result describes a written artifact.
type Result struct {
	Path   string `json:"path"`
	Kind   Kind   `json:"kind"`
	Size   int    `json:"size"`
	Digest string `json:"digest"`
}

// Materializer creates artifacts. It holds no mutable state after
// construction and is safe for concurrent use; two calls that sanitize to the
// same file name race and the last rename wins.
type Materializer struct {
	ws        *workspace.Workspace
	conv      *convert.Converter
	bookmarks BookmarkFormat
	theme     Theme
	md        goldmark.Markdown
	log       *log.Logger
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithConverter sets the content converter used for notes.
func WithConverter(c *convert.Converter) Option {
	return func(m *Materializer) { m.conv = c }
}

// WithBookmarkFormat selects the bookmark file flavour.
func WithBookmarkFormat(f BookmarkFormat) Option {
	return func(m *Materializer) { m.bookmarks = f }
}

// WithTheme selects the snapshot stylesheet.
func WithTheme(t Theme) Option {
	return func(m *Materializer) { m.theme = t }
}

// WithLogger sets the operation logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Materializer) { m.log = l }
}

// New returns a Materializer writing into ws.
func New(ws *workspace.Workspace, opts ...Option) *Materializer {
	m := &Materializer{
		ws:        ws,
		conv:      convert.New(convert.ModeStrip),
		bookmarks: FormatWebloc,
		theme:     ThemeLight,
		md:        newMarkdown(),
		log:       log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Workspace returns the workspace artifacts are written to.
func (m *Materializer) Workspace() *workspace.Workspace { return m.ws }

// CleanupFile deletes an artifact, subject to the workspace marker check.
func (m *Materializer) CleanupFile(path string) error {
	return m.ws.Cleanup(path)
}

func (m *Materializer) write(kind Kind, name string, data []byte) (Result, error) {
	path, err := m.ws.WriteFile(name, data)
	if err != nil {
		m.log.Printf("create %s artifact name=%q failed: %v", kind, name, err)
		return Result{}, err
	}
	res := Result{Path: path, Kind: kind, Size: len(data), Digest: workspace.Digest(data)}
	m.log.Printf("created %s artifact path=%s size=%d", kind, path, res.Size)
	return res, nil
}
