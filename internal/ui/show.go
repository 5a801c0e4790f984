package ui

import (
	"fmt"
	"time"

	"github.com/mithrel/dragkit/internal/workspace"
)

// FormatEntry returns a human-readable detail view of an artifact.
func FormatEntry(e workspace.Entry) string {
	return fmt.Sprintf(
		"Name: %s\nKind: %s\nSize: %d\nModified: %s\nDigest: %s\nPath: %s\n",
		e.Name,
		e.Kind,
		e.Size,
		e.ModTime.Local().Format(time.RFC3339),
		e.Digest,
		e.Path,
	)
}
