package texplore

import (
	"image/color"
	"testing"
)

func TestPixmapPlot(t *testing.T) {
	pm := NewPixmap(4, 3)
	pm.Plot(Pixel{Col: 1, Row: 2, Color: RGB{1, 0.5, 0}})

	r, g, b := pm.RGB8At(1, 2)
	if r != 255 || g != 128 || b != 0 {
		t.Errorf("RGB8At(1, 2) = (%d, %d, %d), want (255, 128, 0)", r, g, b)
	}

	// Framebuffer row 2 is the top row of the image.
	if got, want := pm.At(1, 0), (color.NRGBA{R: 255, G: 128, B: 0, A: 255}); got != want {
		t.Errorf("At(1, 0) = %v, want %v", got, want)
	}
}

func TestPixmapPlotOutOfBounds(t *testing.T) {
	pm := NewPixmap(2, 2)
	for _, p := range []Pixel{{Col: -1}, {Col: 2}, {Row: -1}, {Row: 2}} {
		p.Color = RGB{1, 1, 1}
		pm.Plot(p)
	}
	for i, v := range pm.Data() {
		if v != 0 {
			t.Fatalf("Data()[%d] = %d after out-of-bounds plots, want 0", i, v)
		}
	}
}

func TestPixmapClear(t *testing.T) {
	pm := NewPixmap(3, 3)
	pm.Clear(RGB{0, 1, 0})
	for row := range 3 {
		for col := range 3 {
			if r, g, b := pm.RGB8At(col, row); r != 0 || g != 255 || b != 0 {
				t.Fatalf("RGB8At(%d, %d) = (%d, %d, %d), want (0, 255, 0)", col, row, r, g, b)
			}
		}
	}
}

func TestPixmapImage(t *testing.T) {
	pm := NewPixmap(5, 7)
	if b := pm.Bounds(); b.Dx() != 5 || b.Dy() != 7 {
		t.Errorf("Bounds() = %v, want 5x7", b)
	}
	if pm.ColorModel() != color.NRGBAModel {
		t.Error("ColorModel() is not NRGBAModel")
	}
}
