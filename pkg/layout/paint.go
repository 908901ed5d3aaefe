package layout

import (
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/render"
)

// CursorRequest is a render object's claim on the hardware cursor,
// recorded in absolute surface coordinates. At most one survives per
// frame; the last painted claim wins.
type CursorRequest struct {
	Pos     geometry.Point
	Visible bool
}

// PaintContext carries the canvas a render object draws on plus the
// frame-wide cursor request.
type PaintContext struct {
	Canvas render.Canvas

	cursor *CursorRequest
}

// PaintChild paints a child at the given offset in the current
// canvas's coordinates. The child receives a canvas clipped to its
// own bounds, so it cannot draw outside the rectangle its parent
// granted it.
func (p *PaintContext) PaintChild(child RenderBox, offset geometry.Point) {
	if child == nil {
		return
	}
	saved := p.Canvas
	p.Canvas = saved.WithRegion(geometry.RectOf(offset, child.Size()))
	child.Paint(p)
	if clearer, ok := child.(interface{ ClearNeedsPaint() }); ok {
		clearer.ClearNeedsPaint()
	}
	p.Canvas = saved
}

// SetCursor requests the hardware cursor at a position local to the
// current canvas. Later requests in the same frame override earlier
// ones.
func (p *PaintContext) SetCursor(local geometry.Point, visible bool) {
	origin := p.Canvas.Origin()
	p.cursor = &CursorRequest{
		Pos:     geometry.Point{X: origin.X + local.X, Y: origin.Y + local.Y},
		Visible: visible,
	}
}

// Cursor returns the cursor request recorded during this frame, or
// nil if no render object asked for the cursor.
func (p *PaintContext) Cursor() *CursorRequest {
	return p.cursor
}
