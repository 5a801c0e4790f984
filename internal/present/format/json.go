package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/dragkit/internal/workspace"
)

func WriteJSONEntries(w io.Writer, entries []workspace.Entry, indent bool) error {
	if entries == nil {
		entries = []workspace.Entry{}
	}
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(entries)
}

// WriteJSON encodes any value, used for single artifact results.
func WriteJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
