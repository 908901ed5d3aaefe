package widgets

import (
	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/layout"
)

// Background fills its area with a style before painting the child.
//
// The fill covers the whole granted rectangle, so a stretched
// Background makes selection bars and status lines that color past
// the end of their text.
type Background struct {
	core.RenderObjectBase
	Style       cells.Style
	ChildWidget core.Widget
}

func (b Background) Child() core.Widget {
	return b.ChildWidget
}

func (b Background) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	bg := &renderBackground{style: b.Style}
	bg.SetSelf(bg)
	return bg
}

func (b Background) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if bg, ok := renderObject.(*renderBackground); ok {
		if bg.style != b.Style {
			bg.style = b.Style
			bg.MarkNeedsPaint()
		}
	}
}

type renderBackground struct {
	layout.RenderBoxBase
	child layout.RenderBox
	style cells.Style
}

func (r *renderBackground) SetChild(child layout.RenderObject) {
	layout.SetParentOnChild(r.child, nil)
	r.child = layout.AsRenderBox(child)
	layout.SetParentOnChild(r.child, r)
}

func (r *renderBackground) VisitChildren(visitor func(layout.RenderObject)) {
	if r.child != nil {
		visitor(r.child)
	}
}

func (r *renderBackground) PerformLayout() {
	constraints := r.Constraints()
	if r.child == nil {
		r.SetSize(constraints.Constrain(boundedMax(constraints)))
		return
	}
	r.child.Layout(constraints, true)
	r.child.SetParentData(&layout.BoxParentData{})
	r.SetSize(constraints.Constrain(r.child.Size()))
}

func (r *renderBackground) Paint(ctx *layout.PaintContext) {
	ctx.Canvas.Fill(r.style)
	if r.child != nil {
		ctx.PaintChild(r.child, geometry.Point{})
	}
}
