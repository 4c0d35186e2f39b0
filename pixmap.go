package texplore

import (
	"image"
	"image/color"
)

// Pixmap is an RGB8 display surface. Rows are stored bottom-up like a
// framebuffer: row 0 holds the YMin edge of the domain.
//
// Pixmap implements Sink, performing the clamp to 8 bits, and image.Image,
// presenting the surface top-down as it is displayed.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGB, 3 bytes per pixel
}

// NewPixmap creates a new pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	width, height = max(width, 0), max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*3),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data, bottom row first.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// Plot stores p.Color at (p.Col, p.Row). Cells outside the surface are
// ignored.
func (p *Pixmap) Plot(px Pixel) {
	if px.Col < 0 || px.Col >= p.width || px.Row < 0 || px.Row >= p.height {
		return
	}
	i := (px.Row*p.width + px.Col) * 3
	p.data[i+0], p.data[i+1], p.data[i+2] = px.Color.RGB8()
}

// RGB8At returns the stored colour of cell (col, row).
func (p *Pixmap) RGB8At(col, row int) (r, g, b uint8) {
	if col < 0 || col >= p.width || row < 0 || row >= p.height {
		return 0, 0, 0
	}
	i := (row*p.width + col) * 3
	return p.data[i+0], p.data[i+1], p.data[i+2]
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGB) {
	r, g, b := c.RGB8()
	for i := 0; i < len(p.data); i += 3 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
	}
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	r, g, b := p.RGB8At(x, p.height-1-y)
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
