// Package parallel runs rasterization work on a fixed set of goroutines.
//
// A frame is cut into vertical bands of whole columns (see Bands). Bands
// write disjoint columns of the target surface, so they can be evaluated in
// any order without synchronisation beyond waiting for completion.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines pulling work from a shared queue.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queue   chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// mu is held for reading while work is submitted and for writing while
	// closing, so nothing is queued after the workers have drained.
	mu sync.RWMutex
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), max(workers*4, 8)),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			p.drain()
			return
		case work := <-p.queue:
			work()
		}
	}
}

// drain executes whatever is still queued when the pool closes.
func (p *WorkerPool) drain() {
	for {
		select {
		case work := <-p.queue:
			work()
		default:
			return
		}
	}
}

// ExecuteAll runs every item and waits for all of them to finish.
// Items not yet queued when ctx is cancelled are skipped and ctx.Err() is
// returned; items already queued still run to completion. A closed pool
// runs the items on the calling goroutine.
func (p *WorkerPool) ExecuteAll(ctx context.Context, work []func()) error {
	if len(work) == 0 {
		return ctx.Err()
	}
	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		for _, fn := range work {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn()
		}
		return nil
	}

	var wg sync.WaitGroup
	var err error
submit:
	for _, fn := range work {
		if err = ctx.Err(); err != nil {
			break
		}
		wg.Add(1)
		wrapped := func() {
			defer wg.Done()
			fn()
		}
		select {
		case p.queue <- wrapped:
		case <-ctx.Done():
			wg.Done()
			err = ctx.Err()
			break submit
		}
	}
	p.mu.RUnlock()
	wg.Wait()
	return err
}

// Close stops the workers after the queued work has run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
