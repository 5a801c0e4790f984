package util

import (
	"github.com/sahilm/fuzzy"

	"github.com/mithrel/dragkit/internal/workspace"
)

// ScoreCompletions returns the top N matches for the input string from the candidates list.
func ScoreCompletions(input string, candidates []string, n int) []string {
	if input == "" {
		return candidates
	}
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return nil
	}

	limit := n
	if n <= 0 || len(matches) < limit {
		limit = len(matches)
	}

	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = matches[i].Str
	}
	return out
}

type entryNames []workspace.Entry

func (e entryNames) String(i int) string { return e[i].Name }
func (e entryNames) Len() int            { return len(e) }

// FilterEntries keeps the workspace entries whose names fuzzy-match query,
// best match first. An empty query keeps everything in listing order.
func FilterEntries(query string, entries []workspace.Entry) []workspace.Entry {
	if query == "" {
		return entries
	}
	matches := fuzzy.FindFrom(query, entryNames(entries))
	out := make([]workspace.Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
	}
	return out
}
