package widgets

import (
	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/layout"
)

// Align positions its child inside the area it was granted.
//
// Align fills every bounded axis and shrink-wraps unbounded ones, then
// places the child per Alignment in whatever free cells remain. The
// zero Alignment anchors top-left.
type Align struct {
	core.RenderObjectBase
	Alignment   layout.Alignment
	ChildWidget core.Widget
}

// Center aligns the child in the middle of the granted area.
func Center(child core.Widget) Align {
	return Align{Alignment: layout.AlignmentCenter, ChildWidget: child}
}

func (a Align) Child() core.Widget {
	return a.ChildWidget
}

func (a Align) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	align := &renderAlign{alignment: a.Alignment}
	align.SetSelf(align)
	return align
}

func (a Align) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if align, ok := renderObject.(*renderAlign); ok {
		align.alignment = a.Alignment
		align.MarkNeedsLayout()
	}
}

type renderAlign struct {
	layout.RenderBoxBase
	child     layout.RenderBox
	alignment layout.Alignment
}

func (r *renderAlign) SetChild(child layout.RenderObject) {
	layout.SetParentOnChild(r.child, nil)
	r.child = layout.AsRenderBox(child)
	layout.SetParentOnChild(r.child, r)
}

func (r *renderAlign) VisitChildren(visitor func(layout.RenderObject)) {
	if r.child != nil {
		visitor(r.child)
	}
}

func (r *renderAlign) PerformLayout() {
	constraints := r.Constraints()

	if r.child == nil {
		r.SetSize(constraints.Constrain(boundedMax(constraints)))
		return
	}

	r.child.Layout(layout.Loose(constraints.MaxSize()), true)
	childSize := r.child.Size()

	size := boundedMax(constraints)
	if !constraints.HasBoundedWidth() {
		size.Width = childSize.Width
	}
	if !constraints.HasBoundedHeight() {
		size.Height = childSize.Height
	}
	size = constraints.Constrain(size)
	r.SetSize(size)

	r.child.SetParentData(&layout.BoxParentData{
		Offset: r.alignment.WithinSize(size, childSize),
	})
}

func (r *renderAlign) Paint(ctx *layout.PaintContext) {
	if r.child != nil {
		ctx.PaintChild(r.child, layout.ChildOffset(r.child))
	}
}

// boundedMax returns the constraint maximum with unbounded axes
// zeroed, so callers can substitute a shrink-wrapped extent.
func boundedMax(c layout.Constraints) geometry.Size {
	size := c.MaxSize()
	if !c.HasBoundedWidth() {
		size.Width = 0
	}
	if !c.HasBoundedHeight() {
		size.Height = 0
	}
	return size
}
