package texplore

import "github.com/gogpu/texplore/internal/parallel"

// Pool is a set of render goroutines that several explorers can share via
// WithPool. A server rendering one explorer per request uses a single Pool
// instead of starting workers for every request.
//
// Pool is safe for concurrent use.
type Pool struct {
	wp *parallel.WorkerPool
}

// NewPool starts a pool of workers goroutines. Zero or negative means
// GOMAXPROCS.
func NewPool(workers int) *Pool {
	return &Pool{wp: parallel.NewWorkerPool(workers)}
}

// Workers returns the number of goroutines in the pool.
func (p *Pool) Workers() int {
	return p.wp.Workers()
}

// Running reports whether the pool still accepts work.
func (p *Pool) Running() bool {
	return p.wp.IsRunning()
}

// Close stops the workers. Explorers sharing a closed pool keep working and
// render on the calling goroutine.
func (p *Pool) Close() {
	p.wp.Close()
}
