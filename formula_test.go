package texplore

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/chewxy/math32"
)

// samplePoints covers zero crossings, the domain limits and values around
// the poles of tan and 1/x.
var samplePoints = []float32{
	0, -0, 1, -1, 0.5, -0.5, 2, -2, 21, -21,
	float32(math.Pi) / 2, -float32(math.Pi) / 2, float32(math.Pi), -float32(math.Pi),
	1e-30, -1e-30, 1e-45, -1e-45,
	100, -100, 99.6, -99.6, 1e5, -1e5, 1e9, -1e9,
	math.MaxFloat32, -math.MaxFloat32,
}

func TestEvaluateOff(t *testing.T) {
	for _, ch := range Channels {
		for _, x := range samplePoints {
			for _, y := range samplePoints {
				if v := Evaluate(ch, Off, x, y); v != 0 {
					t.Fatalf("Evaluate(%s, off, %g, %g) = %g, want 0", ch, x, y, v)
				}
			}
		}
	}
	if v := EvaluateRed(Off, 3, 4); v != 0 {
		t.Errorf("EvaluateRed(off) = %g, want 0", v)
	}
	if v := EvaluateGreen(Off, 3, 4); v != 0 {
		t.Errorf("EvaluateGreen(off) = %g, want 0", v)
	}
	if v := EvaluateBlue(Off, 3, 4); v != 0 {
		t.Errorf("EvaluateBlue(off) = %g, want 0", v)
	}
}

func TestEvaluateFiniteOnSamples(t *testing.T) {
	for _, ch := range Channels {
		for i := range Off + 1 {
			for _, x := range samplePoints {
				for _, y := range samplePoints {
					v := Evaluate(ch, i, x, y)
					if math32.IsNaN(v) || math32.IsInf(v, 0) {
						t.Fatalf("Evaluate(%s, %s, %g, %g) = %g, want finite", ch, i, x, y, v)
					}
				}
			}
		}
	}
}

func TestEvaluateFiniteRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for n := 0; n < 20000; n++ {
		// Log-uniform magnitudes so tiny and huge values are both hit.
		x := randomCoord(rng)
		y := randomCoord(rng)
		for _, ch := range Channels {
			for i := range Off + 1 {
				v := Evaluate(ch, i, x, y)
				if math32.IsNaN(v) || math32.IsInf(v, 0) {
					t.Fatalf("Evaluate(%s, %s, %g, %g) = %g, want finite", ch, i, x, y, v)
				}
			}
		}
	}
}

func randomCoord(rng *rand.Rand) float32 {
	v := float32(math.Pow(10, rng.Float64()*18-9))
	if rng.IntN(2) == 0 {
		v = -v
	}
	return v
}

func FuzzEvaluate(f *testing.F) {
	f.Add(float32(0), float32(0))
	f.Add(float32(-1), float32(0.5))
	f.Add(float32(1e9), float32(-1e-30))
	f.Fuzz(func(t *testing.T, x, y float32) {
		for _, ch := range Channels {
			for i := range Off + 1 {
				v := Evaluate(ch, i, x, y)
				if math32.IsNaN(v) || math32.IsInf(v, 0) {
					t.Fatalf("Evaluate(%s, %s, %g, %g) = %g, want finite", ch, i, x, y, v)
				}
			}
		}
	})
}

func TestEvaluateKnownValues(t *testing.T) {
	tests := []struct {
		name string
		ch   Channel
		i    Index
		x, y float32
		want float32
	}{
		{"red 0", Red, 0, 1, 2, 3.5},
		{"red 0 y=0", Red, 0, 1, 0, 0},
		{"red 2 at origin", Red, 2, 0, 0, 0},
		{"red 3 abs", Red, 3, -4, 0, 2},
		{"red 4", Red, 4, 0, 3, 9},
		{"red 5 negative base", Red, 5, -2, 0.5, 0},
		{"red 6 y=0", Red, 6, 5, 0, 0},
		{"red 8 origin", Red, 8, 0, 0, 0},
		{"red 9 y=0", Red, 9, 1, 0, 0},
		{"green 1 origin", Green, 1, 0, 0, 0},
		{"green 2", Green, 2, 1, 2, 39},
		{"green 3 y=0", Green, 3, 4, 0, 0},
		{"green 4 tan zero", Green, 4, 0, 7, 0},
		{"green 7", Green, 7, 0, 5, 5},
		{"green 9 sin zero", Green, 9, 0, 3, 0},
		{"blue 0 x=0", Blue, 0, 0, 3, 1},
		{"blue 1", Blue, 1, 3, 5, 4},
		{"blue 1 x=0", Blue, 1, 0, 5, 0},
		{"blue 3", Blue, 3, 0, 2, 0.5},
		{"blue 4 y=0", Blue, 4, 1, 0, 0},
		{"blue 5 origin", Blue, 5, 0, 0, 1},
		{"blue 6 origin", Blue, 6, 0, 9, 0},
		{"blue 7 x=0", Blue, 7, 0, 2, 0},
		{"blue 8 origin", Blue, 8, 0, 0, 0},
		{"blue 9", Blue, 9, 2, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.ch, tt.i, tt.x, tt.y)
			if math32.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Evaluate(%s, %s, %g, %g) = %g, want %g", tt.ch, tt.i, tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestEvaluateGuardedSqrtArgument(t *testing.T) {
	// sin(-1) < 0: blue 6 negates x before the sqrt.
	got := EvaluateBlue(6, -1, 2)
	want := math32.Sqrt(math32.Sin(1)) * 2
	if got != want {
		t.Errorf("EvaluateBlue(6, -1, 2) = %g, want %g", got, want)
	}
	// tan(-1) < 0: green 6 negates x before the sqrt.
	got = EvaluateGreen(6, -1, 1)
	want = math32.Sin(math32.Cos(math32.Sqrt(math32.Tan(1))))
	if got != want {
		t.Errorf("EvaluateGreen(6, -1, 1) = %g, want %g", got, want)
	}
}

func TestGreenTan21DividesInFloat64(t *testing.T) {
	for _, p := range [][2]float32{{1, 1}, {2, 3}, {-7.25, 0.1}, {99.6, -13}} {
		want := float32(float64(p[0]) / math.Tan(21) / float64(p[1]))
		if got := EvaluateGreen(3, p[0], p[1]); got != want {
			t.Errorf("EvaluateGreen(3, %g, %g) = %g, want %g", p[0], p[1], got, want)
		}
	}
}

func TestEvaluateOutOfRange(t *testing.T) {
	if v := Evaluate(Red, Off+1, 1, 1); v != 0 {
		t.Errorf("Evaluate(index 11) = %g, want 0", v)
	}
	if v := Evaluate(Channel(3), 0, 1, 2); v != 0 {
		t.Errorf("Evaluate(channel 3) = %g, want 0", v)
	}
}

func TestFormulasDistinct(t *testing.T) {
	// Each channel's ten formulas must disagree somewhere on a small sample set.
	samples := [][2]float32{{0.3, 0.7}, {-1.3, 2.1}, {5.5, -3.25}, {12, 0.1}}
	for _, ch := range Channels {
		for a := range Index(NumFormulas) {
			for b := a + 1; b < NumFormulas; b++ {
				same := true
				for _, p := range samples {
					if Evaluate(ch, a, p[0], p[1]) != Evaluate(ch, b, p[0], p[1]) {
						same = false
						break
					}
				}
				if same {
					t.Errorf("%s formulas %d and %d agree on every sample point", ch, a, b)
				}
			}
		}
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		in      string
		want    Index
		wantErr bool
	}{
		{"0", 0, false},
		{"9", 9, false},
		{"10", Off, false},
		{"off", Off, false},
		{" OFF ", Off, false},
		{"11", 0, true},
		{"-1", 0, true},
		{"x", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseIndex(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("ParseIndex(%q) error = %v, want ErrInvalidArgument", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseIndex(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestIndexString(t *testing.T) {
	if got := Index(4).String(); got != "4" {
		t.Errorf("Index(4).String() = %q, want %q", got, "4")
	}
	if got := Off.String(); got != "off" {
		t.Errorf("Off.String() = %q, want %q", got, "off")
	}
}
