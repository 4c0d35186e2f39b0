package texplore

import (
	"image/color"

	"github.com/chewxy/math32"
)

// RGB is a colour as produced by the channel formulas. Components are
// nominally in [0, 1] but formulas routinely leave that range; clamping is
// left to the sink.
type RGB struct {
	R, G, B float32
}

// Black is the colour of a pixel with every channel off.
var Black = RGB{}

// Finite returns c with NaN and infinite components replaced by 0.
func (c RGB) Finite() RGB {
	return RGB{R: finite(c.R), G: finite(c.G), B: finite(c.B)}
}

// RGB8 converts c to 8-bit components, clamping each to [0, 1] and rounding
// to the nearest step.
func (c RGB) RGB8() (r, g, b uint8) {
	return to8(c.R), to8(c.G), to8(c.B)
}

// Color converts c to an opaque color.NRGBA.
func (c RGB) Color() color.Color {
	r, g, b := c.RGB8()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func to8(v float32) uint8 {
	if math32.IsNaN(v) {
		return 0
	}
	return uint8(clamp255(v*255 + 0.5))
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}
