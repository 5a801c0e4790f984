// Package convert decides how card content is turned into Markdown.
//
// Content that looks like a JSON array is parsed as a structured document
// and rendered by package doc. Anything else, including an array that fails
// to parse, goes down the HTML path.
package convert

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/mithrel/dragkit/internal/doc"
	"github.com/mithrel/dragkit/internal/htmlstrip"
)

// HTMLMode selects the converter used for non-structured content.
type HTMLMode string

const (
	// ModeStrip uses the substitution based stripper.
	ModeStrip HTMLMode = "strip"
	// ModeConvert uses a full HTML to Markdown converter and falls back to
	// ModeStrip when it fails.
	ModeConvert HTMLMode = "convert"
)

// ParseHTMLMode validates a configured mode. Empty means ModeStrip.
func ParseHTMLMode(s string) (HTMLMode, error) {
	switch m := HTMLMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ModeStrip:
		return ModeStrip, nil
	case ModeConvert:
		return ModeConvert, nil
	default:
		return "", fmt.Errorf("unknown html mode %q (want strip or convert)", s)
	}
}

// Path records which renderer produced the output.
type Path string

const (
	PathStructured Path = "structured"
	PathHTML       Path = "html"
)

// IsStructured reports whether content has the shape of a JSON array. It is
// a heuristic; callers must still handle a failed parse.
func IsStructured(content string) bool {
	s := strings.TrimSpace(content)
	return strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}

// Converter turns card content into Markdown. The zero value strips HTML.
type Converter struct {
	Mode HTMLMode
}

// New returns a Converter using mode for HTML input.
func New(mode HTMLMode) *Converter {
	return &Converter{Mode: mode}
}

// ToMarkdown converts content and never fails.
func (c *Converter) ToMarkdown(content string) string {
	out, _ := c.Convert(content)
	return out
}

// Convert converts content and reports which path produced it.
func (c *Converter) Convert(content string) (string, Path) {
	if IsStructured(content) {
		if d, err := doc.ParseString(content); err == nil {
			return doc.Render(d), PathStructured
		}
	}
	return c.fromHTML(content), PathHTML
}

func (c *Converter) fromHTML(content string) string {
	if c != nil && c.Mode == ModeConvert {
		md, err := htmltomarkdown.ConvertString(content)
		if err == nil {
			return strings.TrimSpace(md)
		}
	}
	return htmlstrip.Strip(content)
}

// ToMarkdown converts content with the default stripper.
func ToMarkdown(content string) string {
	var c Converter
	return c.ToMarkdown(content)
}
