package parallel

// MinBandWidth is the narrowest band Bands produces unless the grid itself
// is narrower.
const MinBandWidth = 8

// Band is the half-open column range [From, To).
type Band struct {
	From, To int
}

// Width returns the number of columns in the band.
func (b Band) Width() int {
	return b.To - b.From
}

// Bands splits width columns into at most n contiguous bands of nearly equal
// width, none narrower than MinBandWidth. The bands cover [0, width) in
// order.
func Bands(width, n int) []Band {
	if width <= 0 {
		return nil
	}
	n = max(1, min(n, width/MinBandWidth))
	bands := make([]Band, 0, n)
	base, extra := width/n, width%n
	from := 0
	for i := range n {
		w := base
		if i < extra {
			w++
		}
		bands = append(bands, Band{From: from, To: from + w})
		from += w
	}
	return bands
}
