package widgets

import (
	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/layout"
)

// partial block runes from one to seven eighths of a cell.
var progressEighths = [...]rune{'▏', '▎', '▍', '▌', '▋', '▊', '▉'}

// Progress paints a horizontal bar filled to Value.
//
// The bar fills the width it was granted and is one row tall. The
// filled portion uses full block runes with a partial eighth block at
// the boundary, so motion is visible at sub-cell resolution. Values
// outside [0, 1] are clamped.
type Progress struct {
	core.RenderObjectBase
	Value float64
	// Style paints the filled portion, TrackStyle the remainder.
	Style      cells.Style
	TrackStyle cells.Style
}

func (p Progress) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	bar := &renderProgress{value: clamp01(p.Value), style: p.Style, track: p.TrackStyle}
	bar.SetSelf(bar)
	return bar
}

func (p Progress) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if bar, ok := renderObject.(*renderProgress); ok {
		value := clamp01(p.Value)
		if bar.value != value || bar.style != p.Style || bar.track != p.TrackStyle {
			bar.value = value
			bar.style = p.Style
			bar.track = p.TrackStyle
			bar.MarkNeedsPaint()
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

type renderProgress struct {
	layout.RenderBoxBase
	value float64
	style cells.Style
	track cells.Style
}

func (r *renderProgress) PerformLayout() {
	constraints := r.Constraints()
	width := constraints.MaxWidth
	if !constraints.HasBoundedWidth() {
		width = constraints.MinWidth
	}
	r.SetSize(constraints.Constrain(geometry.Size{Width: width, Height: 1}))
}

func (r *renderProgress) Paint(ctx *layout.PaintContext) {
	size := r.Size()
	if size.IsEmpty() {
		return
	}
	w := size.Width

	eighths := int(r.value*float64(w*8) + 0.5)
	full := eighths / 8
	rem := eighths % 8

	for y := 0; y < size.Height; y++ {
		for x := 0; x < full; x++ {
			ctx.Canvas.SetRune(x, y, '█', r.style)
		}
		next := full
		if rem > 0 && full < w {
			ctx.Canvas.SetRune(full, y, progressEighths[rem-1], r.style)
			next = full + 1
		}
		for x := next; x < w; x++ {
			ctx.Canvas.SetCell(x, y, cells.Blank(r.track))
		}
	}
}
