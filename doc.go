// Package texplore generates procedural 2D textures.
//
// # Overview
//
// Every pixel of a W×H grid is mapped to a point (x, y) of a rectangular
// coordinate domain. Three formulas, one per colour channel, turn that point
// into red, green and blue intensities. Each channel has ten formulas to pick
// from plus Off, which contributes zero.
//
// # Quick Start
//
//	e, err := texplore.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Close()
//
//	_ = e.SetTexture(3)              // formula 3 on all channels
//	_ = e.SetChannel(texplore.Blue, texplore.Off)
//
//	pm, _, err := e.RenderPixmap(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = e.Save(pm, "texture.png", texplore.ExportOptions{})
//
// # Coordinate System
//
// Cell (col, row) samples
//
//	x = XMin + col*(XMax-XMin)/W
//	y = YMin + row*(YMax-YMin)/H
//
// so row 0 is the YMin edge. A Pixmap stores rows bottom-up, like a
// framebuffer; Snapshot flips them for image files, whose first row is the
// top of the picture.
//
// # Numerics
//
// Formulas are evaluated in float32. They are total: guarded divisions
// return 0, and any NaN or infinity that escapes the guards is replaced by 0.
// Values outside [0, 1] are passed through; sinks clamp.
package texplore
