package artifact

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/mithrel/dragkit/internal/filename"
)

// Snapshot holds the inputs of an HTML snapshot. Only URL and Title are
// required; empty optional fields are omitted from the page.
type Snapshot struct {
	URL             string `json:"url"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
	ContentHTML     string `json:"contentHtml,omitempty"`
	ContentMarkdown string `json:"contentMarkdown,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// Theme selects the embedded stylesheet.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a configured theme. Empty means light.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case "", ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("unknown snapshot theme %q (want light or dark)", s)
	}
}

var palettes = map[Theme]struct{ bg, fg, muted, card, accent string }{
	ThemeLight: {"#f6f5f2", "#1d1d1f", "#6e6e73", "#ffffff", "#7c3aed"},
	ThemeDark:  {"#141416", "#f2f2f5", "#a1a1aa", "#1f1f23", "#a78bfa"},
}

func (t Theme) stylesheet() string {
	p, ok := palettes[t]
	if !ok {
		p = palettes[ThemeLight]
	}
	return fmt.Sprintf(`body{margin:0;padding:2rem;background:%s;color:%s;font:16px/1.6 -apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,sans-serif}
.card{max-width:720px;margin:0 auto;background:%s;border-radius:12px;padding:2rem;box-shadow:0 2px 12px rgba(0,0,0,.08)}
.cover{display:block;width:100%%;max-height:320px;object-fit:cover;border-radius:8px;margin-bottom:1.5rem}
h1{margin:0 0 .5rem;font-size:1.6rem;line-height:1.3}
a{color:%s;text-decoration:none}
.description{color:%s;margin:0 0 1.5rem}
.content{border-top:1px solid rgba(127,127,127,.2);padding-top:1.5rem}
.content img{max-width:100%%}
.content pre{overflow:auto;padding:1rem;border-radius:6px;background:rgba(127,127,127,.1)}
.notes{margin-top:1.5rem;padding:1rem;border-left:3px solid %s;white-space:pre-wrap}
.notes h2{margin:0 0 .5rem;font-size:1rem}
.source{margin-top:2rem;font-size:.85rem;color:%s;word-break:break-all}`,
		p.bg, p.fg, p.card, p.accent, p.muted, p.accent, p.muted)
}

var snapshotTemplate = template.Must(template.New("snapshot").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="0; url={{.URL}}">
<title>{{.Title}}</title>
<style>
{{.Style}}
</style>
</head>
<body>
<main class="card">
{{- if .ImageURL}}
<img class="cover" src="{{.ImageURL}}" alt="">
{{- end}}
<h1><a href="{{.URL}}">{{.Title}}</a></h1>
{{- if .Description}}
<p class="description">{{.Description}}</p>
{{- end}}
{{- if .Content}}
<article class="content">
{{.Content}}
</article>
{{- end}}
{{- if .Notes}}
<section class="notes"><h2>Notes</h2>{{.Notes}}</section>
{{- end}}
<p class="source"><a href="{{.URL}}">{{.URL}}</a></p>
</main>
</body>
</html>
`))

// snapshotView carries already escaped values; text/template inserts them as is.
type snapshotView struct {
	URL, Title, Description, ImageURL, Content, Notes, Style string
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
}

// SnapshotBody renders the snapshot page. Title, description, notes and the
// URLs are HTML escaped; ContentHTML is trusted and inserted verbatim. When
// ContentHTML is empty, ContentMarkdown is rendered to HTML instead.
func (m *Materializer) SnapshotBody(s Snapshot) ([]byte, error) {
	content := s.ContentHTML
	if strings.TrimSpace(content) == "" && strings.TrimSpace(s.ContentMarkdown) != "" {
		var buf bytes.Buffer
		if err := m.md.Convert([]byte(s.ContentMarkdown), &buf); err != nil {
			return nil, fmt.Errorf("render snapshot markdown: %w", err)
		}
		content = buf.String()
	}
	view := snapshotView{
		URL:         html.EscapeString(s.URL),
		Title:       html.EscapeString(s.Title),
		Description: html.EscapeString(s.Description),
		ImageURL:    html.EscapeString(s.ImageURL),
		Content:     strings.TrimSpace(content),
		Notes:       html.EscapeString(s.Notes),
		Style:       m.theme.stylesheet(),
	}
	var out bytes.Buffer
	if err := snapshotTemplate.Execute(&out, view); err != nil {
		return nil, fmt.Errorf("render snapshot: %w", err)
	}
	return out.Bytes(), nil
}

// CreateSnapshotFile writes a standalone HTML snapshot named after s.Title.
func (m *Materializer) CreateSnapshotFile(s Snapshot) (Result, error) {
	body, err := m.SnapshotBody(s)
	if err != nil {
		return Result{}, err
	}
	return m.write(KindSnapshot, filename.For(s.Title, "html"), body)
}
