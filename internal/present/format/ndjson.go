package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/dragkit/internal/workspace"
)

// WriteNDJSONEntries writes entries as newline-delimited JSON objects.
func WriteNDJSONEntries(w io.Writer, entries []workspace.Entry) error {
	enc := json.NewEncoder(w)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}
