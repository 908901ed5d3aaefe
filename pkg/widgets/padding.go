package widgets

import (
	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/layout"
)

// Padding insets its child by blank cells on each side.
//
// The child's constraints shrink by the insets and its origin shifts
// by the left and top inset. When the granted area is smaller than
// the insets the child collapses to zero before the padding does.
type Padding struct {
	core.RenderObjectBase
	Insets      layout.EdgeInsets
	ChildWidget core.Widget
}

// PaddingAll pads the child by n cells on every side.
func PaddingAll(n int, child core.Widget) Padding {
	return Padding{Insets: layout.EdgeInsetsAll(n), ChildWidget: child}
}

// PaddingSymmetric pads the child by the given horizontal and vertical
// insets.
func PaddingSymmetric(horizontal, vertical int, child core.Widget) Padding {
	return Padding{Insets: layout.EdgeInsetsSymmetric(horizontal, vertical), ChildWidget: child}
}

func (p Padding) Child() core.Widget {
	return p.ChildWidget
}

func (p Padding) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	pad := &renderPadding{insets: p.Insets}
	pad.SetSelf(pad)
	return pad
}

func (p Padding) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if pad, ok := renderObject.(*renderPadding); ok {
		pad.insets = p.Insets
		pad.MarkNeedsLayout()
	}
}

type renderPadding struct {
	layout.RenderBoxBase
	child  layout.RenderBox
	insets layout.EdgeInsets
}

func (r *renderPadding) SetChild(child layout.RenderObject) {
	layout.SetParentOnChild(r.child, nil)
	r.child = layout.AsRenderBox(child)
	layout.SetParentOnChild(r.child, r)
}

func (r *renderPadding) VisitChildren(visitor func(layout.RenderObject)) {
	if r.child != nil {
		visitor(r.child)
	}
}

func (r *renderPadding) PerformLayout() {
	constraints := r.Constraints()
	if r.child == nil {
		r.SetSize(constraints.Constrain(geometry.Size{
			Width:  r.insets.Horizontal(),
			Height: r.insets.Vertical(),
		}))
		return
	}

	r.child.Layout(constraints.Deflate(r.insets), true)
	r.child.SetParentData(&layout.BoxParentData{
		Offset: geometry.Point{X: r.insets.Left, Y: r.insets.Top},
	})

	childSize := r.child.Size()
	r.SetSize(constraints.Constrain(geometry.Size{
		Width:  childSize.Width + r.insets.Horizontal(),
		Height: childSize.Height + r.insets.Vertical(),
	}))
}

func (r *renderPadding) Paint(ctx *layout.PaintContext) {
	if r.child != nil {
		ctx.PaintChild(r.child, layout.ChildOffset(r.child))
	}
}
