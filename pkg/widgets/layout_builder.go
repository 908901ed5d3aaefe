package widgets

import (
	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/layout"
)

// LayoutBuilder defers building its child until layout, when the
// constraints granted by the parent are known.
//
// The builder runs again whenever the constraints change, so the
// subtree can pick a different shape for different extents:
//
//	LayoutBuilder{Builder: func(ctx core.BuildContext, c layout.Constraints) core.Widget {
//	    if c.MaxWidth < 60 {
//	        return compact
//	    }
//	    return wide
//	}}
type LayoutBuilder struct {
	Builder func(ctx core.BuildContext, constraints layout.Constraints) core.Widget
}

func (l LayoutBuilder) CreateElement() core.Element {
	return core.NewLayoutBuilderElement(l, nil)
}

func (l LayoutBuilder) Key() any {
	return nil
}

func (l LayoutBuilder) LayoutBuilder() func(ctx core.BuildContext, constraints layout.Constraints) core.Widget {
	return l.Builder
}

func (l LayoutBuilder) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	builder := &renderLayoutBuilder{}
	builder.SetSelf(builder)
	return builder
}

func (l LayoutBuilder) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	// The element re-registers the builder callback; the render object
	// itself has no properties to update.
}

type renderLayoutBuilder struct {
	layout.RenderBoxBase
	child          layout.RenderBox
	layoutCallback func(layout.Constraints)
}

func (r *renderLayoutBuilder) SetLayoutCallback(callback func(layout.Constraints)) {
	r.layoutCallback = callback
}

func (r *renderLayoutBuilder) SetChild(child layout.RenderObject) {
	layout.SetParentOnChild(r.child, nil)
	r.child = layout.AsRenderBox(child)
	layout.SetParentOnChild(r.child, r)
}

func (r *renderLayoutBuilder) VisitChildren(visitor func(layout.RenderObject)) {
	if r.child != nil {
		visitor(r.child)
	}
}

// PerformLayout first invokes the element's callback, which builds or
// reconciles the child subtree against the current constraints, then
// lays the resulting child out.
func (r *renderLayoutBuilder) PerformLayout() {
	constraints := r.Constraints()
	if r.layoutCallback != nil {
		r.layoutCallback(constraints)
	}
	if r.child == nil {
		r.SetSize(constraints.Constrain(geometry.Size{}))
		return
	}
	r.child.Layout(constraints, true)
	r.child.SetParentData(&layout.BoxParentData{})
	r.SetSize(constraints.Constrain(r.child.Size()))
}

func (r *renderLayoutBuilder) Paint(ctx *layout.PaintContext) {
	if r.child != nil {
		ctx.PaintChild(r.child, geometry.Point{})
	}
}
