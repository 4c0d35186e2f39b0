package texplore

import (
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/texplore/internal/encode"
)

// DefaultFileName is the file written by Save when no path is given.
const DefaultFileName = "texture.png"

// Grid8 is a row-major grid of 8-bit RGB triples with row 0 at the top, the
// layout image files expect.
type Grid8 struct {
	Width, Height int
	Pix           []uint8 // 3 bytes per pixel
}

// Snapshot repackages a rendered surface for export. It evaluates no
// formula; the bottom-up rows of the surface are flipped so the top row of
// the grid is the YMax edge, as displayed. Calling it twice on an unchanged
// surface returns identical grids.
func Snapshot(pm *Pixmap) *Grid8 {
	w, h := pm.Width(), pm.Height()
	g := &Grid8{Width: w, Height: h, Pix: make([]uint8, w*h*3)}
	stride := w * 3
	src := pm.Data()
	for row := range h {
		dst := (h - 1 - row) * stride
		copy(g.Pix[dst:dst+stride], src[row*stride:(row+1)*stride])
	}
	return g
}

// Image converts the grid to an opaque *image.NRGBA.
func (g *Grid8) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for i, j := 0, 0; i+2 < len(g.Pix) && j+3 < len(img.Pix); i, j = i+3, j+4 {
		img.Pix[j+0] = g.Pix[i+0]
		img.Pix[j+1] = g.Pix[i+1]
		img.Pix[j+2] = g.Pix[i+2]
		img.Pix[j+3] = 255
	}
	return img
}

// ExportOptions tunes Export and Encode.
type ExportOptions struct {
	// Scale enlarges the image by an integer factor (nearest neighbour).
	Scale int
}

// Encode writes g to w. The format is taken from name's extension ("" means
// PNG).
func Encode(w io.Writer, g *Grid8, name string, opts ExportOptions) error {
	f, err := encode.FormatFromPath(name)
	if err != nil {
		return &ExportError{Op: "encode", Path: name, Err: err}
	}
	return encodeGrid(w, g, f, opts)
}

func encodeGrid(w io.Writer, g *Grid8, f encode.Format, opts ExportOptions) error {
	if g == nil || g.Width <= 0 || g.Height <= 0 || len(g.Pix) < g.Width*g.Height*3 {
		return &ExportError{Op: "snapshot", Err: encode.ErrEmptyImage}
	}
	img := encode.Scale(g.Image(), opts.Scale)
	if err := encode.Encode(w, img, f); err != nil {
		return &ExportError{Op: "encode", Err: err}
	}
	return nil
}

// Export writes g to a lossless image file at path. Failures are returned
// as *ExportError and leave no partial file behind.
func Export(g *Grid8, path string, opts ExportOptions) error {
	f, err := encode.FormatFromPath(path)
	if err != nil {
		return &ExportError{Op: "create", Path: path, Err: err}
	}

	path = filepath.Clean(path)
	file, err := os.Create(path)
	if err != nil {
		return &ExportError{Op: "create", Path: path, Err: err}
	}

	if err := encodeGrid(file, g, f, opts); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		var ee *ExportError
		if errors.As(err, &ee) {
			ee.Path = path
		}
		return err
	}

	if err := file.Close(); err != nil {
		return &ExportError{Op: "close", Path: path, Err: err}
	}
	Logger().Debug("texplore: exported frame", "path", path, "width", g.Width, "height", g.Height)
	return nil
}
