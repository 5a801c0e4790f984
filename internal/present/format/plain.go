package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mithrel/dragkit/internal/workspace"
)

// TSV columns: name, kind, size, modified_unix_ms, digest
var headerLine = "name\tkind\tsize\tmodified_unix_ms\tdigest\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

func plainLine(e workspace.Entry) string {
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%s\n",
		esc(e.Name), esc(e.Kind), e.Size, e.ModTime.UnixMilli(), e.Digest)
}

func WritePlainEntries(w io.Writer, entries []workspace.Entry, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, e := range entries {
		_, _ = io.WriteString(tw, plainLine(e))
	}
	return tw.Flush()
}

// WritePaths writes one absolute artifact path per line.
func WritePaths(w io.Writer, entries []workspace.Entry) error {
	for _, e := range entries {
		if _, err := io.WriteString(w, e.Path+"\n"); err != nil {
			return err
		}
	}
	return nil
}
