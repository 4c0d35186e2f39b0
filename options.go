package texplore

import "math/rand/v2"

// Option configures an Explorer during creation.
//
// Example:
//
//	e, err := texplore.New(
//	    texplore.WithGrid(texplore.Grid{Width: 800, Height: 600}),
//	    texplore.WithDomain(texplore.Domain{XMin: -10, XMax: 10, YMin: -10, YMax: 10}),
//	    texplore.WithSeed(42),
//	)
type Option func(*options)

type options struct {
	grid      Grid
	domain    Domain
	selection Selection
	source    Source
	workers   int
	pool      *Pool
}

func defaultOptions() options {
	return options{
		grid:   DefaultGrid(),
		domain: DefaultDomain(),
	}
}

// WithGrid sets the pixel grid. It is validated by New.
func WithGrid(g Grid) Option {
	return func(o *options) {
		o.grid = g
	}
}

// WithDomain sets the initial coordinate domain. It is validated by New.
func WithDomain(d Domain) Option {
	return func(o *options) {
		o.domain = d
	}
}

// WithSelection sets the initial channel formulas.
func WithSelection(s Selection) Option {
	return func(o *options) {
		o.selection = s
	}
}

// WithSource sets the random source used by Randomize. The source is only
// used under the explorer's lock, so it need not be safe for concurrent use.
func WithSource(src Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithSeed uses a PCG source seeded with seed, making Randomize
// reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.source = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithWorkers sets the number of goroutines used by RenderPixmap.
// Zero or negative means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithPool renders on a shared pool instead of starting one per explorer.
// Explorer.Close leaves a shared pool running; its owner closes it.
// WithPool takes precedence over WithWorkers.
func WithPool(p *Pool) Option {
	return func(o *options) {
		o.pool = p
	}
}
