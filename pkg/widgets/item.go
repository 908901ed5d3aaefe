package widgets

import (
	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/layout"
)

// Item wraps a direct child of a [Row] or [Column] with an explicit
// main-axis size request.
//
// The container resolves Fixed, Percent and Content requests in
// declaration order, each clamped to the cells still unclaimed, then
// splits the remainder across Fill items by weight. Bare children
// behave like Item with Content sizing.
//
// Example:
//
//	Column{Items: []core.Widget{
//	    Item{Sizing: layout.Fixed(1), ChildWidget: titleBar},
//	    Item{Sizing: layout.Fill(1), ChildWidget: body},
//	    Item{Sizing: layout.Fixed(1), ChildWidget: statusLine},
//	}}
//
// WidgetKey carries the reconciliation key for list children. Keys
// must sit on the container's direct children to steer the keyed
// diff, so they live here rather than on the wrapped widget.
type Item struct {
	Sizing      layout.Sizing
	ChildWidget core.Widget
	WidgetKey   any
}

// Keyed wraps a child with a reconciliation key and Content sizing.
func Keyed(key any, child core.Widget) Item {
	return Item{WidgetKey: key, ChildWidget: child}
}

// Sized wraps a child with the given main-axis size request.
func Sized(sizing layout.Sizing, child core.Widget) Item {
	return Item{Sizing: sizing, ChildWidget: child}
}

func (i Item) CreateElement() core.Element {
	return core.NewRenderObjectElement(i, nil)
}

func (i Item) Key() any {
	return i.WidgetKey
}

func (i Item) Child() core.Widget {
	return i.ChildWidget
}

func (i Item) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	item := &renderItem{sizing: i.Sizing}
	item.SetSelf(item)
	return item
}

func (i Item) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if item, ok := renderObject.(*renderItem); ok {
		item.sizing = i.Sizing
		item.MarkNeedsLayout()
	}
}

// Spacer is an empty Fill item. Drop it between children to push them
// apart; several spacers share the leftover by weight.
func Spacer(weight int) Item {
	if weight <= 0 {
		weight = 1
	}
	return Item{Sizing: layout.Fill(weight)}
}

// renderItem passes constraints through to its child and reports the
// sizing request to the enclosing flex container.
type renderItem struct {
	layout.RenderBoxBase
	child  layout.RenderBox
	sizing layout.Sizing
}

func (r *renderItem) ItemSizing() layout.Sizing {
	return r.sizing
}

func (r *renderItem) SetChild(child layout.RenderObject) {
	layout.SetParentOnChild(r.child, nil)
	if child == nil {
		r.child = nil
		return
	}
	if box, ok := child.(layout.RenderBox); ok {
		r.child = box
		layout.SetParentOnChild(r.child, r)
	}
}

func (r *renderItem) VisitChildren(visitor func(layout.RenderObject)) {
	if r.child != nil {
		visitor(r.child)
	}
}

// PerformLayout passes the constraints straight through. The parent
// flex already pinned the main axis to the resolved extent and set the
// cross axis per its alignment.
func (r *renderItem) PerformLayout() {
	constraints := r.Constraints()
	if r.child == nil {
		r.SetSize(constraints.Constrain(geometry.Size{}))
		return
	}
	r.child.Layout(constraints, true)
	r.child.SetParentData(&layout.BoxParentData{})
	r.SetSize(constraints.Constrain(r.child.Size()))
}

func (r *renderItem) Paint(ctx *layout.PaintContext) {
	if r.child != nil {
		ctx.PaintChild(r.child, geometry.Point{})
	}
}
