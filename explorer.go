package texplore

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/gogpu/texplore/internal/parallel"
)

// Explorer owns the mutable state of a texture session: the channel
// selection, the coordinate domain and the pixel grid.
//
// Explorer is safe for concurrent use. Every rasterization pass works on a
// Frame snapshot taken under the lock, so a pass never observes a mutation
// made while it runs.
type Explorer struct {
	mu        sync.RWMutex
	grid      Grid
	domain    Domain
	selection Selection
	source    Source

	poolOnce   sync.Once
	pool       *parallel.WorkerPool
	sharedPool bool
	workers    int
}

// New creates an Explorer. The defaults are a 500x500 grid, the domain
// [-100, 100] x [-100, 100] and formula 0 on every channel.
func New(opts ...Option) (*Explorer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.grid.Validate(); err != nil {
		return nil, err
	}
	if err := o.domain.Validate(); err != nil {
		return nil, err
	}
	if o.source == nil {
		o.source = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e := &Explorer{
		grid:      o.grid,
		domain:    o.domain,
		selection: o.selection,
		source:    o.source,
		workers:   o.workers,
	}
	if o.pool != nil {
		e.poolOnce.Do(func() {
			e.pool = o.pool.wp
			e.sharedPool = true
		})
	}
	return e, nil
}

// Grid returns the pixel grid.
func (e *Explorer) Grid() Grid {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid
}

// Domain returns the current coordinate domain.
func (e *Explorer) Domain() Domain {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.domain
}

// Selection returns the current channel selection.
func (e *Explorer) Selection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selection
}

// Frame returns a snapshot of the current state.
func (e *Explorer) Frame() Frame {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return NewFrame(e.selection, e.domain, e.grid)
}

// SetChannel selects formula i (0-9, or Off) for channel ch.
func (e *Explorer) SetChannel(ch Channel, i Index) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.selection.SetChannel(ch, i); err != nil {
		Logger().Warn("texplore: channel selection rejected", "channel", ch.String(), "index", int(i), "err", err)
		return err
	}
	Logger().Debug("texplore: channel selected", "channel", ch.String(), "index", i.String())
	return nil
}

// SetTexture selects formula i (0-9) for all three channels.
func (e *Explorer) SetTexture(i Index) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.selection.SetAll(i); err != nil {
		Logger().Warn("texplore: texture preset rejected", "index", int(i), "err", err)
		return err
	}
	Logger().Debug("texplore: texture selected", "index", i.String())
	return nil
}

// Randomize picks a random formula for each channel. It never selects Off.
func (e *Explorer) Randomize() Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection.Randomize(e.source)
	Logger().Debug("texplore: random texture", "selection", e.selection.String())
	return e.selection
}

// SetDomain replaces the coordinate domain. An invalid domain is rejected
// and the previous one kept.
func (e *Explorer) SetDomain(d Domain) error {
	if err := d.Validate(); err != nil {
		Logger().Warn("texplore: domain rejected", "domain", d.String(), "err", err)
		return err
	}
	e.mu.Lock()
	e.domain = d
	e.mu.Unlock()
	Logger().Debug("texplore: domain changed", "domain", d.String())
	return nil
}

// Render runs one rasterization pass into sink on the calling goroutine.
func (e *Explorer) Render(sink Sink) Frame {
	f := e.Frame()
	f.Render(sink)
	return f
}

// RenderPixmap renders one frame into a new Pixmap, evaluating column bands
// in parallel. The result is identical to a serial pass. If ctx is cancelled
// the partial pixmap is discarded and ctx.Err() returned.
func (e *Explorer) RenderPixmap(ctx context.Context) (*Pixmap, Frame, error) {
	f := e.Frame()
	g := f.Grid()
	pm := NewPixmap(g.Width, g.Height)

	pool := e.workerPool()
	bands := parallel.Bands(g.Width, pool.Workers()*2)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() {
			for p := range f.Columns(b.From, b.To) {
				pm.Plot(p)
			}
		}
	}
	if err := pool.ExecuteAll(ctx, work); err != nil {
		return nil, f, err
	}
	Logger().Debug("texplore: frame rendered", "width", g.Width, "height", g.Height,
		"selection", f.Selection.String(), "bands", len(bands))
	return pm, f, nil
}

// Save exports a rendered surface to path (DefaultFileName when empty).
// Failures are reported, never fatal, and leave the explorer unchanged.
func (e *Explorer) Save(pm *Pixmap, path string, opts ExportOptions) error {
	if path == "" {
		path = DefaultFileName
	}
	if pm == nil {
		err := &ExportError{Op: "snapshot", Path: path, Err: fmt.Errorf("no frame has been rendered")}
		Logger().Warn("texplore: export failed", "path", path, "err", err)
		return err
	}
	if err := Export(Snapshot(pm), path, opts); err != nil {
		Logger().Warn("texplore: export failed", "path", path, "err", err)
		return err
	}
	return nil
}

// Close releases the render workers. The explorer stays usable; a later
// RenderPixmap runs on the calling goroutine. A pool passed with WithPool is
// left running.
func (e *Explorer) Close() {
	e.poolOnce.Do(func() {})
	if e.pool != nil && !e.sharedPool {
		e.pool.Close()
	}
}

func (e *Explorer) workerPool() *parallel.WorkerPool {
	e.poolOnce.Do(func() {
		e.pool = parallel.NewWorkerPool(e.workers)
	})
	if e.pool == nil {
		// Closed before first use.
		return closedPool
	}
	return e.pool
}

var closedPool = func() *parallel.WorkerPool {
	p := parallel.NewWorkerPool(1)
	p.Close()
	return p
}()
