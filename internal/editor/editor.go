package editor

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mithrel/dragkit/internal/filename"
)

const TitlePrefix = "Title: "

// headerLines are the comment lines ComposeContent writes above the title.
var headerLines = []string{
	"# DragKit Note",
	"# Lines starting with '#' above '---' are ignored.",
	"# Set the Title, then write the note body (Markdown, HTML or card JSON) after '---'.",
}

// ComposeContent creates the text presented to the editor.
func ComposeContent(title, body string) string {
	var b bytes.Buffer
	for _, l := range headerLines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString(TitlePrefix)
	b.WriteString(title)
	b.WriteString("\n---\n")
	if body != "" {
		if !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
		b.WriteString(body)
	}
	return b.String()
}

// PreferredEditor finds a suitable editor from env or common defaults.
func PreferredEditor() (string, error) {
	if v := os.Getenv("VISUAL"); v != "" {
		return v, nil
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e, nil
	}
	for _, cand := range []string{"nvim", "vim", "vi", "nano"} {
		if p, err := exec.LookPath(cand); err == nil {
			return p, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR or $VISUAL")
}

// PathFor returns the scratch file used while composing a note titled title.
func PathFor(title string) (string, error) {
	name := filename.For(title, "dragkit.md")
	if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" {
		return filepath.Join(xdg, "dragkit", name), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "dragkit", "edit", name), nil
}

func writeFile0600(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, fs.FileMode(0o600))
}

// OpenAt opens the editor at path with initial content and returns final bytes and whether it changed.
func OpenAt(path string, initial []byte) (final []byte, changed bool, err error) {
	if err := writeFile0600(path, initial); err != nil {
		return nil, false, err
	}
	// Honor VISUAL/EDITOR including flags by running via a shell wrapper.
	ed := os.Getenv("VISUAL")
	if ed == "" {
		ed = os.Getenv("EDITOR")
	}
	var cmd *exec.Cmd
	if strings.TrimSpace(ed) != "" {
		cmd = exec.Command("sh", "-c", "$EDITORCMD \"$FILEPATH\"")
		cmd.Env = append(os.Environ(), "EDITORCMD="+ed, "FILEPATH="+path)
	} else {
		prog, err := PreferredEditor()
		if err != nil {
			return nil, false, err
		}
		cmd = exec.Command(prog, path)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, false, err
	}
	out, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return out, !bytes.Equal(out, initial), nil
}

// ParseEditedNote extracts the title and body from the editor output.
// Header comments are dropped; everything after the first '---' is body.
// Without a separator the generated header lines and the first Title line
// are removed and the rest is body.
func ParseEditedNote(s string) (title, body string) {
	head, rest, found := strings.Cut(s, "\n---\n")
	if !found && strings.HasSuffix(s, "\n---") {
		head, rest, found = strings.TrimSuffix(s, "\n---"), "", true
	}
	if found {
		for _, line := range strings.Split(head, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "#") {
				continue
			}
			if t, ok := titleFrom(line); ok {
				title = t
			}
		}
		return title, strings.TrimSpace(rest)
	}

	var kept []string
	titled := false
	for _, line := range strings.Split(s, "\n") {
		if isHeaderLine(line) {
			continue
		}
		if t, ok := titleFrom(line); ok && !titled {
			title, titled = t, true
			continue
		}
		kept = append(kept, line)
	}
	return title, strings.TrimSpace(strings.Join(kept, "\n"))
}

func titleFrom(line string) (string, bool) {
	p := strings.TrimSpace(TitlePrefix)
	if !strings.HasPrefix(line, p) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(line, p)), true
}

func isHeaderLine(line string) bool {
	line = strings.TrimSpace(line)
	for _, h := range headerLines {
		if line == h {
			return true
		}
	}
	return false
}

// FirstLine returns the first trimmed line, squashed and truncated.
func FirstLine(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > 120 {
		s = string(r[:120])
	}
	return s
}
