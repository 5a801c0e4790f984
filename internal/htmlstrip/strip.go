// Package htmlstrip reduces an HTML fragment to Markdown-ish plain text with
// a fixed sequence of substitutions. It is not an HTML parser.
package htmlstrip

import (
	"regexp"
	"strings"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

// rules run in order. Entities are unescaped before anyTag runs.
var rules = []rule{
	{regexp.MustCompile(`(?i)<br\s*/?>`), "\n"},
	{regexp.MustCompile(`(?i)</p\s*>`), "\n\n"},
	{regexp.MustCompile(`(?i)<p(\s[^>]*)?>`), ""},
	{regexp.MustCompile(`(?i)<div(\s[^>]*)?>`), ""},
	{regexp.MustCompile(`(?i)</div\s*>`), "\n"},
	{regexp.MustCompile(`(?i)</?(strong|b)(\s[^>]*)?>`), "**"},
	{regexp.MustCompile(`(?i)</?(em|i)(\s[^>]*)?>`), "_"},
}

// entityOrder is applied one entity at a time so "&amp;lt;" becomes "<".
var entityOrder = [][2]string{
	{"&nbsp;", " "},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
}

var (
	anyTag     = regexp.MustCompile(`<[^>]*>`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// Strip converts html to text. It never fails.
func Strip(html string) string {
	s := html
	for _, r := range rules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	for _, e := range entityOrder {
		s = strings.ReplaceAll(s, e[0], e[1])
	}
	s = anyTag.ReplaceAllString(s, "")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
