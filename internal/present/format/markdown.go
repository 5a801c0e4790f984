package format

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// StyleFor maps a snapshot theme name onto a glamour standard style.
func StyleFor(theme string) string {
	if theme == "light" {
		return "light"
	}
	return "dracula"
}

// WritePrettyMarkdown renders Markdown for a terminal using glamour.
func WritePrettyMarkdown(w io.Writer, md, style string, width int) error {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
