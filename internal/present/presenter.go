package present

import (
	"context"
	"fmt"
	"io"

	"github.com/mithrel/dragkit/internal/present/format"
	"github.com/mithrel/dragkit/internal/ui"
	"github.com/mithrel/dragkit/internal/workspace"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePaths
	ModeJSON
	ModeNDJSON
	ModeTUI
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	// OnDelete is invoked by the TUI when the user removes an artifact.
	OnDelete ui.DeleteFunc
}

// ParseMode parses "plain", "paths", "json", "ndjson" or "tui".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "plain", "":
		return ModePlain, nil
	case "paths":
		return ModePaths, nil
	case "json":
		return ModeJSON, nil
	case "ndjson":
		return ModeNDJSON, nil
	case "tui":
		return ModeTUI, nil
	default:
		return ModePlain, fmt.Errorf("unknown output mode %q (want plain, paths, json, ndjson or tui)", s)
	}
}

// RenderEntries renders a workspace listing according to options.
func RenderEntries(ctx context.Context, w io.Writer, entries []workspace.Entry, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONEntries(w, entries, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONEntries(w, entries)
	case ModePaths:
		return format.WritePaths(w, entries)
	case ModeTUI:
		return ui.BrowseArtifacts(ctx, entries, opts.OnDelete)
	default:
		return format.WritePlainEntries(w, entries, opts.Headers)
	}
}
