package artifact

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"

	"github.com/mithrel/dragkit/internal/workspace"
)

// MarkerName is the fixed file name of the drag marker image.
const MarkerName = "drag-icon.png"

// MarkerPNG is the marker image: one transparent pixel.
func MarkerPNG() []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{})
	var buf bytes.Buffer
	// Encoding an in-memory 1x1 image cannot fail.
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// CreateMarkerFile writes the marker image once. Later calls return the
// existing file without rewriting it.
func (m *Materializer) CreateMarkerFile() (Result, error) {
	path, err := m.ws.PathFor(MarkerName)
	if err != nil {
		return Result{}, err
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return Result{Path: path, Kind: KindMarker, Size: len(data), Digest: workspace.Digest(data)}, nil
	case !errors.Is(err, fs.ErrNotExist):
		return Result{}, &workspace.OpError{Op: "read", Path: path, Err: err}
	}
	return m.write(KindMarker, MarkerName, MarkerPNG())
}
