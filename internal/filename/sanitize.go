// Package filename turns user supplied titles into names that are safe to
// create inside the drag workspace.
package filename

import (
	"strings"
	"unicode"
)

// MaxRunes bounds the length of a sanitized name, counted in runes.
const MaxRunes = 100

// Fallback is used by For when a title sanitizes to nothing.
const Fallback = "untitled"

// forbidden are the characters no mainstream filesystem accepts in a name.
const forbidden = `/\:*?"<>|`

// Sanitize replaces path separators and reserved characters with '_',
// truncates to MaxRunes runes and trims surrounding whitespace.
// Sanitize(Sanitize(s)) == Sanitize(s) for every s.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	n := 0
	for _, r := range name {
		if n == MaxRunes {
			break
		}
		if strings.ContainsRune(forbidden, r) {
			r = '_'
		}
		b.WriteRune(r)
		n++
	}
	return strings.TrimFunc(b.String(), unicode.IsSpace)
}

// For returns the sanitized file name for title with the given extension.
// ext may be given with or without the leading dot.
func For(title, ext string) string {
	base := Sanitize(title)
	if base == "" {
		base = Fallback
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return base
	}
	return base + "." + ext
}
