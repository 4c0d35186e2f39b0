package texplore

import (
	"fmt"

	"github.com/chewxy/math32"
)

// MaxBound is the largest magnitude accepted for a domain bound.
const MaxBound = 1e9

// Domain is the rectangle of the plane sampled by the pixel grid.
type Domain struct {
	XMin, XMax float32
	YMin, YMax float32
}

// DefaultDomain returns [-100, 100] x [-100, 100].
func DefaultDomain() Domain {
	return Domain{XMin: -100, XMax: 100, YMin: -100, YMax: 100}
}

// Validate reports ErrInvalidDomain unless every bound is a number within
// ±MaxBound and both minimums are strictly below their maximums.
func (d Domain) Validate() error {
	bounds := [...]struct {
		name string
		v    float32
	}{{"x min", d.XMin}, {"x max", d.XMax}, {"y min", d.YMin}, {"y max", d.YMax}}
	for _, b := range bounds {
		if math32.IsNaN(b.v) || b.v < -MaxBound || b.v > MaxBound {
			return fmt.Errorf("texplore: %s %g outside [-%g, %g]: %w", b.name, b.v, float32(MaxBound), float32(MaxBound), ErrInvalidDomain)
		}
	}
	if d.XMin >= d.XMax {
		return fmt.Errorf("texplore: x min %g not below x max %g: %w", d.XMin, d.XMax, ErrInvalidDomain)
	}
	if d.YMin >= d.YMax {
		return fmt.Errorf("texplore: y min %g not below y max %g: %w", d.YMin, d.YMax, ErrInvalidDomain)
	}
	return nil
}

func (d Domain) String() string {
	return fmt.Sprintf("[%g, %g] x [%g, %g]", d.XMin, d.XMax, d.YMin, d.YMax)
}

// Grid is the size of the pixel grid in pixels.
type Grid struct {
	Width, Height int
}

// DefaultGrid returns a 500x500 grid.
func DefaultGrid() Grid {
	return Grid{Width: 500, Height: 500}
}

// Validate reports ErrInvalidArgument for a non-positive dimension.
func (g Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("texplore: grid %dx%d: %w", g.Width, g.Height, ErrInvalidArgument)
	}
	return nil
}

// Pixels returns Width*Height.
func (g Grid) Pixels() int {
	return g.Width * g.Height
}

// Mapper converts grid cells to points of the domain.
type Mapper struct {
	Domain Domain
	Grid   Grid
}

// Map returns the point sampled by cell (col, row). Cell (0, 0) maps to
// (XMin, YMin); the intervals are half-open so (XMax, YMax) is never reached,
// even when the domain is only a few float32 steps wide.
func (m Mapper) Map(col, row int) (x, y float32) {
	d := m.Domain
	x = lerpBelow(d.XMin, d.XMax, col, m.Grid.Width)
	y = lerpBelow(d.YMin, d.YMax, row, m.Grid.Height)
	return x, y
}

// lerpBelow returns lo + i*(hi-lo)/n computed in float64 and narrowed to
// float32, kept strictly below hi.
func lerpBelow(lo, hi float32, i, n int) float32 {
	v := float32(float64(lo) + float64(i)*(float64(hi)-float64(lo))/float64(n))
	if v >= hi {
		return math32.Nextafter(hi, lo)
	}
	return v
}
