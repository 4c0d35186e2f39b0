package parallel

import "testing"

func TestBands(t *testing.T) {
	tests := []struct {
		width, n int
		want     []Band
	}{
		{0, 4, nil},
		{5, 4, []Band{{0, 5}}},
		{16, 4, []Band{{0, 8}, {8, 16}}},
		{30, 3, []Band{{0, 10}, {10, 20}, {20, 30}}},
		{34, 4, []Band{{0, 9}, {9, 18}, {18, 26}, {26, 34}}},
		{100, 0, []Band{{0, 100}}},
	}
	for _, tt := range tests {
		got := Bands(tt.width, tt.n)
		if len(got) != len(tt.want) {
			t.Errorf("Bands(%d, %d) = %v, want %v", tt.width, tt.n, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Bands(%d, %d) = %v, want %v", tt.width, tt.n, got, tt.want)
				break
			}
		}
	}
}

func TestBandsCoverWidth(t *testing.T) {
	for width := 1; width < 300; width += 7 {
		for n := 1; n <= 16; n++ {
			bands := Bands(width, n)
			next := 0
			for _, b := range bands {
				if b.From != next || b.Width() <= 0 {
					t.Fatalf("Bands(%d, %d) = %v: gap or empty band", width, n, bands)
				}
				next = b.To
			}
			if next != width {
				t.Fatalf("Bands(%d, %d) ends at %d", width, n, next)
			}
		}
	}
}
