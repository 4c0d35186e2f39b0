package texplore

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/bmp"
)

// testPixmap renders a small frame with distinct colours per cell.
func testPixmap(t *testing.T) *Pixmap {
	t.Helper()
	pm := NewPixmap(3, 2)
	for row := range 2 {
		for col := range 3 {
			pm.Plot(Pixel{Col: col, Row: row, Color: RGB{
				R: float32(col) / 2,
				G: float32(row),
				B: 0.2,
			}})
		}
	}
	return pm
}

func TestSnapshotFlipsRows(t *testing.T) {
	pm := testPixmap(t)
	g := Snapshot(pm)
	if g.Width != 3 || g.Height != 2 || len(g.Pix) != 18 {
		t.Fatalf("Snapshot() = %dx%d with %d bytes, want 3x2 with 18", g.Width, g.Height, len(g.Pix))
	}
	// Grid row 0 is framebuffer row 1 (G = 1).
	want := []uint8{
		0, 255, 51, 128, 255, 51, 255, 255, 51,
		0, 0, 51, 128, 0, 51, 255, 0, 51,
	}
	if diff := cmp.Diff(want, g.Pix); diff != "" {
		t.Errorf("Snapshot().Pix mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotIdempotent(t *testing.T) {
	pm := testPixmap(t)
	a, b := Snapshot(pm), Snapshot(pm)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("two snapshots of the same surface differ")
	}
	a.Pix[0] = 99
	if b.Pix[0] == 99 {
		t.Error("snapshots share their pixel buffer")
	}
}

func TestGrid8Image(t *testing.T) {
	g := Snapshot(testPixmap(t))
	img := g.Image()
	c := img.NRGBAAt(2, 1)
	if c.R != 255 || c.G != 0 || c.B != 51 || c.A != 255 {
		t.Errorf("Image().At(2, 1) = %v, want {255 0 51 255}", c)
	}
}

func TestExportPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	g := Snapshot(testPixmap(t))
	if err := Export(g, path, ExportOptions{}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	assertImageMatches(t, img, g, 1)
}

func TestExportBMPScaled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bmp")
	g := Snapshot(testPixmap(t))
	if err := Export(g, path, ExportOptions{Scale: 2}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("bmp.Decode() error = %v", err)
	}
	assertImageMatches(t, img, g, 2)
}

func assertImageMatches(t *testing.T, img image.Image, g *Grid8, scale int) {
	t.Helper()
	b := img.Bounds()
	if b.Dx() != g.Width*scale || b.Dy() != g.Height*scale {
		t.Fatalf("decoded size %dx%d, want %dx%d", b.Dx(), b.Dy(), g.Width*scale, g.Height*scale)
	}
	for y := range b.Dy() {
		for x := range b.Dx() {
			r, gg, bb, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := ((y/scale)*g.Width + x/scale) * 3
			if uint8(r>>8) != g.Pix[i] || uint8(gg>>8) != g.Pix[i+1] || uint8(bb>>8) != g.Pix[i+2] {
				t.Fatalf("pixel (%d, %d) = (%d, %d, %d), want %v", x, y, r>>8, gg>>8, bb>>8, g.Pix[i:i+3])
			}
		}
	}
}

func TestExportErrors(t *testing.T) {
	dir := t.TempDir()
	g := Snapshot(testPixmap(t))

	t.Run("unsupported extension", func(t *testing.T) {
		err := Export(g, filepath.Join(dir, "out.jpg"), ExportOptions{})
		if !errors.Is(err, ErrExport) {
			t.Errorf("Export(.jpg) error = %v, want ErrExport", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		err := Export(g, filepath.Join(dir, "nope", "out.png"), ExportOptions{})
		if !errors.Is(err, ErrExport) || !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Export() error = %v, want ErrExport wrapping fs.ErrNotExist", err)
		}
		var ee *ExportError
		if !errors.As(err, &ee) || ee.Op != "create" {
			t.Errorf("Export() error = %#v, want *ExportError with Op create", err)
		}
	})

	t.Run("empty grid", func(t *testing.T) {
		path := filepath.Join(dir, "empty.png")
		err := Export(&Grid8{}, path, ExportOptions{})
		if !errors.Is(err, ErrExport) {
			t.Errorf("Export(empty) error = %v, want ErrExport", err)
		}
		if _, statErr := os.Stat(path); !errors.Is(statErr, fs.ErrNotExist) {
			t.Errorf("failed export left %s behind", path)
		}
	})
}

func TestEncodeToWriter(t *testing.T) {
	var buf bytes.Buffer
	g := Snapshot(testPixmap(t))
	if err := Encode(&buf, g, "", ExportOptions{}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("Encode(\"\") did not produce a PNG")
	}
}
