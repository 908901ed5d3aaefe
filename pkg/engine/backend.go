package engine

import (
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/input"
	"github.com/go-drift/tide/pkg/render"
)

// Backend is the surface an [App] draws to and reads input from. The
// terminal backend is the production implementation; [Headless] serves
// tests and embedding.
type Backend interface {
	// Size returns the current surface size in cells. The runtime
	// polls it every tick; it must not block.
	Size() geometry.Size

	// Events delivers decoded input events. The runtime never reads
	// the channel itself; hosts drain it (App.Run does) and hand
	// batches to App.Tick. Closing the channel ends App.Run.
	Events() <-chan input.Event

	// Flush applies a frame's paint operations to the surface. The
	// runtime advances its previous-frame buffer even when Flush
	// fails, so a failed frame is not re-diffed against stale state.
	Flush(ops []render.PaintOp) error

	// MeasureString returns the cells a string occupies when drawn.
	// Installed as the layout pipeline's text measurer.
	MeasureString(s string) geometry.Size
}
