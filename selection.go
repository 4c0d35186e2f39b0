package texplore

import "fmt"

// Source is the random number source used by Randomize. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// Selection holds the formula index of each channel. The zero value selects
// formula 0 on every channel.
type Selection struct {
	indices [3]Index
}

// NewSelection returns a selection with the given per-channel indices.
func NewSelection(r, g, b Index) (Selection, error) {
	var s Selection
	for ch, i := range [3]Index{r, g, b} {
		if err := s.SetChannel(Channel(ch), i); err != nil {
			return Selection{}, err
		}
	}
	return s, nil
}

// Get returns the index selected for ch, or Off for an invalid channel.
func (s Selection) Get(ch Channel) Index {
	if !ch.Valid() {
		return Off
	}
	return s.indices[ch]
}

// Indices returns the red, green and blue indices.
func (s Selection) Indices() [3]Index {
	return s.indices
}

func (s Selection) String() string {
	return fmt.Sprintf("r=%s g=%s b=%s", s.indices[Red], s.indices[Green], s.indices[Blue])
}

// SetChannel selects formula i for channel ch. i may be Off.
// On error s is unchanged.
func (s *Selection) SetChannel(ch Channel, i Index) error {
	if !ch.Valid() {
		return fmt.Errorf("texplore: set channel %d: %w", uint8(ch), ErrInvalidArgument)
	}
	if !i.Valid() {
		return fmt.Errorf("texplore: set %s to index %d: %w", ch, uint8(i), ErrInvalidArgument)
	}
	s.indices[ch] = i
	return nil
}

// SetAll selects the same formula for all three channels. Off is rejected:
// a channel can only be switched off individually.
func (s *Selection) SetAll(i Index) error {
	if !i.IsPreset() {
		return fmt.Errorf("texplore: texture preset %d: %w", uint8(i), ErrInvalidArgument)
	}
	s.indices = [3]Index{i, i, i}
	return nil
}

// Randomize draws red, green and blue independently and uniformly from the
// ten formulas. It never selects Off.
func (s *Selection) Randomize(src Source) {
	for _, ch := range Channels {
		s.indices[ch] = Index(src.IntN(NumFormulas))
	}
}
