// Package workspace owns the ephemeral directory that drag artifacts are
// written to and the policy for deleting them again.
package workspace

import (
	"encoding/hex"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

// DefaultMarker names the workspace directory and is the substring Cleanup
// requires before it deletes anything.
const DefaultMarker = "dragkit-drag"

const tmpPattern = ".tmp-*"

// Workspace is a flat directory of artifacts, Root/Marker.
type Workspace struct {
	Root   string
	Marker string
	Log    *log.Logger
}

// New returns a workspace under root. An empty root means os.TempDir and an
// empty marker means DefaultMarker.
func New(root, marker string) *Workspace {
	if strings.TrimSpace(root) == "" {
		root = os.TempDir()
	}
	if strings.TrimSpace(marker) == "" {
		marker = DefaultMarker
	}
	return &Workspace{Root: root, Marker: marker}
}

// Dir is the absolute workspace directory.
func (w *Workspace) Dir() string {
	dir := filepath.Join(w.Root, w.Marker)
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// Ensure creates the workspace directory and its parents.
func (w *Workspace) Ensure() (string, error) {
	dir := w.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &OpError{Op: "mkdir", Path: dir, Err: err}
	}
	return dir, nil
}

// PathFor returns the absolute path name would have inside the workspace.
func (w *Workspace) PathFor(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", &OpError{Op: "path", Path: name, Err: ErrInvalidName}
	}
	return filepath.Join(w.Dir(), name), nil
}

// WriteFile writes data to name inside the workspace and returns the path.
// The bytes go to a temporary sibling first and are renamed into place, so a
// failed write never leaves a truncated file under name.
func (w *Workspace) WriteFile(name string, data []byte) (string, error) {
	dir, err := w.Ensure()
	if err != nil {
		return "", err
	}
	path, err := w.PathFor(name)
	if err != nil {
		return "", err
	}
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return "", &OpError{Op: "create", Path: path, Err: err}
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", &OpError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", &OpError{Op: "write", Path: path, Err: err}
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return "", &OpError{Op: "chmod", Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &OpError{Op: "rename", Path: path, Err: err}
	}
	return path, nil
}

// Contains reports whether path passes the cleanup check: its text includes
// the workspace marker. This is a substring test, not a containment proof.
func (w *Workspace) Contains(path string) bool {
	return w.Marker != "" && strings.Contains(path, w.Marker)
}

// Cleanup deletes path when it carries the workspace marker. Paths without
// the marker are left alone and reported as success. A file that is already
// gone counts as cleaned up.
func (w *Workspace) Cleanup(path string) error {
	if !w.Contains(path) {
		w.logf("cleanup skipped path=%s outside workspace", path)
		return nil
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &OpError{Op: "remove", Path: path, Err: err}
	}
	w.logf("cleaned up path=%s", path)
	return nil
}

// Entry describes one artifact in the workspace.
type Entry struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Kind    string    `json:"kind"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
	Digest  string    `json:"digest"`
}

// List returns the artifacts in the workspace sorted by name. A missing
// workspace lists as empty.
func (w *Workspace) List() ([]Entry, error) {
	dir := w.Dir()
	des, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &OpError{Op: "list", Path: dir, Err: err}
	}
	out := make([]Entry, 0, len(des))
	for _, de := range des {
		if !de.Type().IsRegular() || isTemp(de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(dir, de.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &OpError{Op: "read", Path: path, Err: err}
		}
		out = append(out, Entry{
			Name:    de.Name(),
			Path:    path,
			Kind:    KindOf(de.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Digest:  Digest(data),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Purge removes every regular file in the workspace and returns how many
// were deleted.
func (w *Workspace) Purge() (int, error) {
	entries, err := w.List()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if err := w.Cleanup(e.Path); err != nil {
			return n, err
		}
		n++
	}
	w.logf("purged %d artifacts dir=%s", n, w.Dir())
	return n, nil
}

// Digest is the hex BLAKE3 sum of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// KindOf classifies an artifact by extension.
func KindOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".webloc", ".url", ".desktop":
		return "bookmark"
	case ".html":
		return "snapshot"
	case ".md":
		return "note"
	case ".png":
		return "marker"
	default:
		return "other"
	}
}

func isTemp(name string) bool {
	return strings.HasPrefix(name, ".tmp-")
}

func (w *Workspace) logf(format string, args ...any) {
	if w.Log != nil {
		w.Log.Printf(format, args...)
	}
}
