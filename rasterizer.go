package texplore

import "iter"

// Pixel is one evaluated grid cell.
type Pixel struct {
	Col, Row int     // grid position
	X, Y     float32 // sampled point of the domain
	Color    RGB
}

// Sink consumes pixels in traversal order.
type Sink interface {
	Plot(p Pixel)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(p Pixel)

// Plot calls f(p).
func (f SinkFunc) Plot(p Pixel) { f(p) }

// Frame is an immutable snapshot of everything a rasterization pass reads.
// Its output is a pure function of the grid position.
type Frame struct {
	Selection Selection
	Mapper    Mapper
}

// NewFrame returns a frame over grid g and domain d.
func NewFrame(s Selection, d Domain, g Grid) Frame {
	return Frame{Selection: s, Mapper: Mapper{Domain: d, Grid: g}}
}

// Grid returns the frame's pixel grid.
func (f Frame) Grid() Grid {
	return f.Mapper.Grid
}

// At evaluates cell (col, row).
func (f Frame) At(col, row int) Pixel {
	x, y := f.Mapper.Map(col, row)
	ind := f.Selection.indices
	return Pixel{
		Col: col,
		Row: row,
		X:   x,
		Y:   y,
		Color: RGB{
			R: EvaluateRed(ind[Red], x, y),
			G: EvaluateGreen(ind[Green], x, y),
			B: EvaluateBlue(ind[Blue], x, y),
		},
	}
}

// Pixels returns the frame's pixels, column by column: the outer loop runs
// over columns and the inner loop over rows. The sequence is lazy and can be
// iterated any number of times.
func (f Frame) Pixels() iter.Seq[Pixel] {
	return func(yield func(Pixel) bool) {
		g := f.Mapper.Grid
		for col := 0; col < g.Width; col++ {
			for row := 0; row < g.Height; row++ {
				if !yield(f.At(col, row)) {
					return
				}
			}
		}
	}
}

// Columns returns the pixels of columns [from, to) in traversal order.
func (f Frame) Columns(from, to int) iter.Seq[Pixel] {
	return func(yield func(Pixel) bool) {
		g := f.Mapper.Grid
		lo, hi := max(from, 0), min(to, g.Width)
		for col := lo; col < hi; col++ {
			for row := 0; row < g.Height; row++ {
				if !yield(f.At(col, row)) {
					return
				}
			}
		}
	}
}

// Render plots every pixel of the frame into sink.
func (f Frame) Render(sink Sink) {
	for p := range f.Pixels() {
		sink.Plot(p)
	}
}
