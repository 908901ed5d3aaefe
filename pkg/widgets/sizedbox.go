package widgets

import (
	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/layout"
)

// SizedBox constrains its child to a specific width and/or height in
// cells.
//
// A zero dimension is unset: the child keeps its own extent on that
// axis. Set dimensions are forced on the child, clamped to what the
// parent allows.
//
// Common uses:
//
//	// Fixed-size box
//	SizedBox{Width: 20, Height: 5, ChildWidget: child}
//
//	// Two blank columns between Row children
//	SizedBox{Width: 2}
//
//	// One blank row between Column children
//	SizedBox{Height: 1}
//
// [HSpace] and [VSpace] shorten the spacer forms.
type SizedBox struct {
	core.RenderObjectBase
	Width       int
	Height      int
	ChildWidget core.Widget
}

// HSpace is a horizontal spacer of the given number of columns.
func HSpace(columns int) SizedBox {
	return SizedBox{Width: columns}
}

// VSpace is a vertical spacer of the given number of rows.
func VSpace(rows int) SizedBox {
	return SizedBox{Height: rows}
}

func (s SizedBox) Child() core.Widget {
	return s.ChildWidget
}

func (s SizedBox) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	box := &renderSizedBox{width: s.Width, height: s.Height}
	box.SetSelf(box)
	return box
}

func (s SizedBox) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if box, ok := renderObject.(*renderSizedBox); ok {
		box.width = s.Width
		box.height = s.Height
		box.MarkNeedsLayout()
	}
}

type renderSizedBox struct {
	layout.RenderBoxBase
	child  layout.RenderBox
	width  int
	height int
}

func (r *renderSizedBox) SetChild(child layout.RenderObject) {
	layout.SetParentOnChild(r.child, nil)
	r.child = layout.AsRenderBox(child)
	layout.SetParentOnChild(r.child, r)
}

func (r *renderSizedBox) VisitChildren(visitor func(layout.RenderObject)) {
	if r.child != nil {
		visitor(r.child)
	}
}

func (r *renderSizedBox) PerformLayout() {
	constraints := r.Constraints()
	desired := constraints.Constrain(geometry.Size{Width: r.width, Height: r.height})

	if r.child == nil {
		r.SetSize(desired)
		return
	}

	// Tighten only the explicit dimensions; the other axis passes the
	// parent's range through.
	childConstraints := constraints
	if r.width > 0 {
		childConstraints.MinWidth = desired.Width
		childConstraints.MaxWidth = desired.Width
	}
	if r.height > 0 {
		childConstraints.MinHeight = desired.Height
		childConstraints.MaxHeight = desired.Height
	}
	r.child.Layout(childConstraints, true)
	r.child.SetParentData(&layout.BoxParentData{})

	size := r.child.Size()
	if r.width > 0 {
		size.Width = desired.Width
	}
	if r.height > 0 {
		size.Height = desired.Height
	}
	r.SetSize(constraints.Constrain(size))
}

func (r *renderSizedBox) Paint(ctx *layout.PaintContext) {
	if r.child != nil {
		ctx.PaintChild(r.child, geometry.Point{})
	}
}
