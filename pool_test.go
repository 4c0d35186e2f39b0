package texplore

import (
	"bytes"
	"context"
	"testing"
)

func serialPixmap(f Frame) *Pixmap {
	g := f.Grid()
	pm := NewPixmap(g.Width, g.Height)
	f.Render(pm)
	return pm
}

func TestSharedPoolOutlivesExplorers(t *testing.T) {
	p := NewPool(2)
	defer p.Close()
	if p.Workers() != 2 {
		t.Errorf("Workers() = %d, want 2", p.Workers())
	}

	grid := WithGrid(Grid{Width: 40, Height: 12})
	e1 := newTestExplorer(t, grid, WithPool(p))
	e2 := newTestExplorer(t, grid, WithPool(p), WithSelection(mustSelection(t, 4, Off, 9)))

	if _, _, err := e1.RenderPixmap(context.Background()); err != nil {
		t.Fatalf("e1.RenderPixmap() error = %v", err)
	}
	e1.Close()
	if !p.Running() {
		t.Fatal("closing an explorer stopped the shared pool")
	}

	pm, f, err := e2.RenderPixmap(context.Background())
	if err != nil {
		t.Fatalf("e2.RenderPixmap() error = %v", err)
	}
	if !bytes.Equal(pm.Data(), serialPixmap(f).Data()) {
		t.Error("shared-pool render differs from serial render")
	}
}

func TestSharedPoolClosedRendersInline(t *testing.T) {
	p := NewPool(1)
	e := newTestExplorer(t, WithGrid(Grid{Width: 9, Height: 5}), WithPool(p))
	p.Close()
	if p.Running() {
		t.Fatal("Running() = true after Close")
	}
	pm, f, err := e.RenderPixmap(context.Background())
	if err != nil {
		t.Fatalf("RenderPixmap() on closed shared pool error = %v", err)
	}
	if !bytes.Equal(pm.Data(), serialPixmap(f).Data()) {
		t.Error("inline render differs from serial render")
	}
}
