package texplore

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// Index selects a channel formula. Values 0-9 pick one of the ten formulas of
// a channel; Off disables the channel.
type Index uint8

const (
	// Off is the sentinel index of a disabled channel. It always evaluates to 0.
	Off Index = 10

	// NumFormulas is the number of selectable (non-off) formulas per channel.
	NumFormulas = 10
)

// Valid reports whether i is in [0, Off].
func (i Index) Valid() bool {
	return i <= Off
}

// IsPreset reports whether i can be used as a whole-texture preset, i.e. it
// is a formula and not Off.
func (i Index) IsPreset() bool {
	return i < NumFormulas
}

func (i Index) String() string {
	if i == Off {
		return "off"
	}
	return strconv.Itoa(int(i))
}

// ParseIndex parses "0" through "10" or "off".
func ParseIndex(s string) (Index, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "off") {
		return Off, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > int(Off) {
		return 0, fmt.Errorf("texplore: formula index %q out of range [0, %d]: %w", s, Off, ErrInvalidArgument)
	}
	return Index(n), nil
}

// formula is one closed-form channel function.
type formula func(x, y float32) float32

func off(_, _ float32) float32 { return 0 }

// tan21 is the constant divisor of green formula 3. That formula divides in
// float64 and narrows the result.
var tan21 = math.Tan(21)

// Guard placement is deliberate and differs between formulas; rendered
// output depends on it.
var redFormulas = [Off + 1]formula{
	func(x, y float32) float32 {
		if y == 0 {
			return 0
		}
		return x * 7 / y
	},
	func(x, y float32) float32 {
		if math32.Cos(y) == 0 {
			return 0
		}
		return math32.Sin(x) / math32.Cos(y)
	},
	func(x, y float32) float32 {
		if math32.Cos(y*x) == 0 {
			return 0
		}
		return y - x/math32.Cos(y*x)
	},
	func(x, y float32) float32 {
		x, y = math32.Abs(x), math32.Abs(y)
		return math32.Sqrt(x) * math32.Cos(math32.Sqrt(y))
	},
	func(x, y float32) float32 {
		return math32.Pow(y, 2) * math32.Cos(x)
	},
	func(x, y float32) float32 {
		return math32.Tan(math32.Pow(x, y))
	},
	func(x, y float32) float32 {
		y = math32.Abs(y)
		t := math32.Tan(math32.Sqrt(y))
		if t == 0 {
			return 0
		}
		return x * y / t
	},
	func(x, y float32) float32 {
		return math32.Cos(x*math32.Cos(y)) * math32.Tan(x)
	},
	func(x, y float32) float32 {
		return math32.Sin(math32.Sin(x*y)*math32.Sin(x)*math32.Sin(y)) * 2
	},
	func(x, y float32) float32 {
		if y == 0 {
			return 0
		}
		return math32.Sin(x) * math32.Cos(x) * math32.Tan(x) / y
	},
	off,
}

var greenFormulas = [Off + 1]formula{
	func(x, y float32) float32 {
		return math32.Tan(x) * math32.Cos(y)
	},
	func(x, y float32) float32 {
		return math32.Sin(math32.Tan(x * y))
	},
	func(x, y float32) float32 {
		return 37*x + y
	},
	func(x, y float32) float32 {
		if y == 0 {
			return 0
		}
		return float32(float64(x) / tan21 / float64(y))
	},
	func(x, y float32) float32 {
		x, y = math32.Abs(x), math32.Abs(y)
		t := math32.Tan(x * y)
		if t == 0 {
			return 0
		}
		return math32.Sqrt(x*y) / t
	},
	func(x, y float32) float32 {
		return math32.Tan(x) * math32.Cos(y) * math32.Sin(x*y)
	},
	func(x, y float32) float32 {
		if math32.Tan(x*y) < 0 {
			x = -x
		}
		return math32.Sin(math32.Cos(math32.Sqrt(math32.Tan(x * y))))
	},
	func(x, y float32) float32 {
		if math32.Cos(x) == 0 {
			return 0
		}
		return y / math32.Cos(x)
	},
	func(x, y float32) float32 {
		return math32.Sin(math32.Tan(math32.Pow(x, y)))
	},
	func(x, y float32) float32 {
		x, y = math32.Abs(x), math32.Abs(y)
		if math32.Sin(x) == 0 {
			return 0
		}
		return math32.Sqrt(x) * math32.Sqrt(y) / math32.Sin(x)
	},
	off,
}

var blueFormulas = [Off + 1]formula{
	func(x, y float32) float32 {
		// x == 0 yields full intensity, not 0.
		if x == 0 {
			return 1
		}
		return math32.Sin(y) / x
	},
	func(x, y float32) float32 {
		if x == 0 {
			return 0
		}
		return y - x/x
	},
	func(x, y float32) float32 {
		return math32.Tan(x * math32.Sin(y) * y)
	},
	func(x, y float32) float32 {
		if y == 0 {
			return 0
		}
		return math32.Cos(x) / y
	},
	func(x, y float32) float32 {
		if y == 0 {
			return 0
		}
		s := math32.Sin(x / y)
		if s == 0 {
			return 0
		}
		return x * math32.Tan(x) * math32.Cos(y) / s
	},
	func(x, y float32) float32 {
		return math32.Cos(math32.Sin(y)) * math32.Cos(math32.Sin(x))
	},
	func(x, y float32) float32 {
		// Only the sqrt argument is guarded.
		if math32.Sin(x) < 0 {
			x = -x
		}
		return math32.Sqrt(math32.Sin(x)) * y
	},
	func(x, y float32) float32 {
		if x == 0 {
			return 0
		}
		return math32.Pow(math32.Sin(x), y) / x
	},
	func(x, y float32) float32 {
		return 0.215 * math32.Sin(x+y)
	},
	func(x, y float32) float32 {
		return x + math32.Tan(1.1265*y)
	},
	off,
}

var catalogue = [...]*[Off + 1]formula{
	Red:   &redFormulas,
	Green: &greenFormulas,
	Blue:  &blueFormulas,
}

// finite maps NaN and ±Inf to 0. Some formulas (pow of a negative base,
// overflowing quotients) leave the finite range despite their guards.
func finite(v float32) float32 {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return 0
	}
	return v
}

// Evaluate returns the contribution of formula i of channel ch at (x, y).
// It is total: an invalid channel or index yields 0, as does Off, and the
// result is always finite.
func Evaluate(ch Channel, i Index, x, y float32) float32 {
	if !ch.Valid() || !i.Valid() {
		return 0
	}
	return finite(catalogue[ch][i](x, y))
}

// EvaluateRed returns red formula i at (x, y).
func EvaluateRed(i Index, x, y float32) float32 { return Evaluate(Red, i, x, y) }

// EvaluateGreen returns green formula i at (x, y).
func EvaluateGreen(i Index, x, y float32) float32 { return Evaluate(Green, i, x, y) }

// EvaluateBlue returns blue formula i at (x, y).
func EvaluateBlue(i Index, x, y float32) float32 { return Evaluate(Blue, i, x, y) }
