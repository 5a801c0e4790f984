package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseEditedNote(t *testing.T) {
	input := `# comment line
Title: My Title
---
# Heading kept in body
Body line 2
`
	title, body := ParseEditedNote(input)
	if title != "My Title" {
		t.Fatalf("title=%q", title)
	}
	if body != "# Heading kept in body\nBody line 2" {
		t.Fatalf("body=%q", body)
	}
}

func TestParseEditedNoteWithoutSeparator(t *testing.T) {
	title, body := ParseEditedNote("just text\n")
	if title != "" || body != "just text" {
		t.Fatalf("title=%q body=%q", title, body)
	}
	title, body = ParseEditedNote("Title: Only\n---")
	if title != "Only" || body != "" {
		t.Fatalf("title=%q body=%q", title, body)
	}
}

func TestParseEditedNoteSeparatorRemoved(t *testing.T) {
	edited := strings.Replace(ComposeContent("Kept", "# Heading\nbody"), "\n---\n", "\n", 1)
	title, body := ParseEditedNote(edited)
	if title != "Kept" {
		t.Fatalf("title=%q", title)
	}
	if body != "# Heading\nbody" {
		t.Fatalf("body=%q", body)
	}
}

func TestComposeRoundTrip(t *testing.T) {
	content := ComposeContent("Card: one", "<p>hi</p>")
	if !strings.Contains(content, "Title: Card: one\n---\n<p>hi</p>\n") {
		t.Fatalf("unexpected compose output %q", content)
	}
	title, body := ParseEditedNote(content)
	if title != "Card: one" || body != "<p>hi</p>" {
		t.Fatalf("round trip title=%q body=%q", title, body)
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("  hello   there\nworld\n"); got != "hello there" {
		t.Fatalf("FirstLine=%q", got)
	}
	long := strings.Repeat("y", 130)
	if fl := FirstLine(long); len(fl) != 120 {
		t.Fatalf("FirstLine length=%d want 120", len(fl))
	}
}

func TestPathFor(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	path, err := PathFor("a/b: c")
	if err != nil {
		t.Fatalf("PathFor error: %v", err)
	}
	if path != filepath.Join(dir, "dragkit", "a_b_ c.dragkit.md") {
		t.Fatalf("PathFor=%q", path)
	}
}

func TestOpenAtWithEditorCommand(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-editor.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho 'appended' >> \"$1\"\n"), 0o700); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VISUAL", script)

	path := filepath.Join(dir, "scratch", "note.dragkit.md")
	out, changed, err := OpenAt(path, []byte("start\n"))
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	if !changed || string(out) != "start\nappended\n" {
		t.Fatalf("changed=%v out=%q", changed, out)
	}
}
