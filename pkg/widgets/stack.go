package widgets

import (
	"fmt"

	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/layout"
)

// StackFit determines how non-positioned children are sized within a
// Stack.
type StackFit int

const (
	// StackFitLoose allows children to size themselves.
	StackFitLoose StackFit = iota
	// StackFitExpand forces children to fill the stack.
	StackFitExpand
)

// String returns a human-readable representation of the stack fit.
func (f StackFit) String() string {
	switch f {
	case StackFitLoose:
		return "loose"
	case StackFitExpand:
		return "expand"
	default:
		return fmt.Sprintf("StackFit(%d)", int(f))
	}
}

// Stack overlays children on top of each other.
//
// Children paint in order, the first at the bottom and the last on
// top. Later cells simply overwrite earlier ones in the buffer.
//
// # Sizing Behavior
//
// Non-positioned children size the stack: with StackFitLoose (the
// default) the stack wraps the largest of them, with StackFitExpand it
// fills the granted area. [Positioned] children never contribute to
// the stack's size; they are placed against it after it is known.
//
// # Positioning Children
//
// Non-positioned children are placed per Alignment. For pinning to
// edges, wrap children with [Positioned]:
//
//	Stack{Items: []core.Widget{
//	    editor,
//	    Positioned(statusBadge).Top(0).Right(1),
//	}}
type Stack struct {
	// Items are the widgets to overlay, bottom first.
	Items []core.Widget
	// Alignment places non-positioned children within the stack.
	Alignment layout.Alignment
	// Fit controls how non-positioned children are sized.
	Fit StackFit
}

// StackOf creates a stack with the given children, bottom first.
func StackOf(items ...core.Widget) Stack {
	return Stack{Items: items}
}

func (s Stack) CreateElement() core.Element {
	return core.NewRenderObjectElement(s, nil)
}

func (s Stack) Key() any {
	return nil
}

func (s Stack) Children() []core.Widget {
	return s.Items
}

func (s Stack) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	stack := &renderStack{alignment: s.Alignment, fit: s.Fit}
	stack.SetSelf(stack)
	return stack
}

func (s Stack) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if stack, ok := renderObject.(*renderStack); ok {
		stack.alignment = s.Alignment
		stack.fit = s.Fit
		stack.MarkNeedsLayout()
	}
}

type renderStack struct {
	layout.RenderBoxBase
	children  []layout.RenderBox
	alignment layout.Alignment
	fit       StackFit
}

func (r *renderStack) SetChildren(children []layout.RenderObject) {
	for _, child := range r.children {
		layout.SetParentOnChild(child, nil)
	}
	r.children = r.children[:0]
	for _, child := range children {
		if box, ok := child.(layout.RenderBox); ok {
			r.children = append(r.children, box)
			layout.SetParentOnChild(box, r)
		}
	}
}

func (r *renderStack) VisitChildren(visitor func(layout.RenderObject)) {
	for _, child := range r.children {
		visitor(child)
	}
}

// PerformLayout sizes the stack from its non-positioned children, then
// resolves positioned children against the final extent.
func (r *renderStack) PerformLayout() {
	constraints := r.Constraints()

	width, height := 0, 0
	if r.fit == StackFitExpand {
		bounded := boundedMax(constraints)
		width, height = bounded.Width, bounded.Height
	}

	for _, child := range r.children {
		if _, ok := child.(*renderPositioned); ok {
			continue
		}
		if r.fit == StackFitExpand {
			child.Layout(layout.Tight(geometry.Size{Width: width, Height: height}), true)
		} else {
			child.Layout(layout.Loose(constraints.MaxSize()), true)
		}
		childSize := child.Size()
		if childSize.Width > width {
			width = childSize.Width
		}
		if childSize.Height > height {
			height = childSize.Height
		}
	}

	size := constraints.Constrain(geometry.Size{Width: width, Height: height})
	r.SetSize(size)

	for _, child := range r.children {
		if pos, ok := child.(*renderPositioned); ok {
			pos.Layout(positionedConstraints(pos, size), true)
			pos.SetParentData(&layout.BoxParentData{
				Offset: positionedOffset(pos, size, pos.Size(), r.alignment),
			})
			continue
		}
		child.SetParentData(&layout.BoxParentData{
			Offset: r.alignment.WithinSize(size, child.Size()),
		})
	}
}

func (r *renderStack) Paint(ctx *layout.PaintContext) {
	for _, child := range r.children {
		ctx.PaintChild(child, layout.ChildOffset(child))
	}
}

// positionedConstraints derives a positioned child's constraints from
// its pinned edges. An explicit dimension is tight; a pair of opposite
// edges stretches the child between them; a single edge only reduces
// the room left over.
func positionedConstraints(pos *renderPositioned, stackSize geometry.Size) layout.Constraints {
	c := layout.Loose(stackSize)

	switch {
	case pos.width != nil:
		c.MinWidth, c.MaxWidth = *pos.width, *pos.width
	case pos.left != nil && pos.right != nil:
		w := max(stackSize.Width-*pos.left-*pos.right, 0)
		c.MinWidth, c.MaxWidth = w, w
	case pos.left != nil:
		c.MaxWidth = max(stackSize.Width-*pos.left, 0)
	case pos.right != nil:
		c.MaxWidth = max(stackSize.Width-*pos.right, 0)
	}

	switch {
	case pos.height != nil:
		c.MinHeight, c.MaxHeight = *pos.height, *pos.height
	case pos.top != nil && pos.bottom != nil:
		h := max(stackSize.Height-*pos.top-*pos.bottom, 0)
		c.MinHeight, c.MaxHeight = h, h
	case pos.top != nil:
		c.MaxHeight = max(stackSize.Height-*pos.top, 0)
	case pos.bottom != nil:
		c.MaxHeight = max(stackSize.Height-*pos.bottom, 0)
	}

	return c
}

// positionedOffset places a positioned child: a leading edge wins, a
// trailing edge measures back from the far side, and an unpinned axis
// falls back to the stack's alignment.
func positionedOffset(pos *renderPositioned, stackSize, childSize geometry.Size, alignment layout.Alignment) geometry.Point {
	aligned := alignment.WithinSize(stackSize, childSize)
	var offset geometry.Point

	switch {
	case pos.left != nil:
		offset.X = *pos.left
	case pos.right != nil:
		offset.X = stackSize.Width - *pos.right - childSize.Width
	default:
		offset.X = aligned.X
	}

	switch {
	case pos.top != nil:
		offset.Y = *pos.top
	case pos.bottom != nil:
		offset.Y = stackSize.Height - *pos.bottom - childSize.Height
	default:
		offset.Y = aligned.Y
	}

	return offset
}

// positioned pins a child to edges of its enclosing [Stack].
//
// Create with the [Positioned] constructor and configure with builder
// methods:
//
//	// One cell in from the top-right corner
//	widgets.Positioned(badge).Top(1).Right(1)
//
//	// Stretch across the bottom row
//	widgets.Positioned(statusLine).Left(0).Right(0).Bottom(0)
//
//	// Fixed-size box at a specific cell
//	widgets.Positioned(popup).At(10, 4).Size(30, 8)
//
// Setting both opposite edges stretches the child between them unless
// an explicit dimension overrides it. Axes with no pin fall back to
// the stack's Alignment.
type positioned struct {
	child  core.Widget
	left   *int
	top    *int
	right  *int
	bottom *int
	width  *int
	height *int
}

// Positioned creates a pinned child for use within a [Stack].
func Positioned(child core.Widget) positioned {
	return positioned{child: child}
}

// Left pins the child the given number of cells from the left edge.
func (p positioned) Left(v int) positioned {
	p.left = &v
	return p
}

// Top pins the child the given number of cells from the top edge.
func (p positioned) Top(v int) positioned {
	p.top = &v
	return p
}

// Right pins the child the given number of cells from the right edge.
func (p positioned) Right(v int) positioned {
	p.right = &v
	return p
}

// Bottom pins the child the given number of cells from the bottom edge.
func (p positioned) Bottom(v int) positioned {
	p.bottom = &v
	return p
}

// Width overrides the child's width.
func (p positioned) Width(v int) positioned {
	p.width = &v
	return p
}

// Height overrides the child's height.
func (p positioned) Height(v int) positioned {
	p.height = &v
	return p
}

// Size sets both width and height.
func (p positioned) Size(w, h int) positioned {
	p.width = &w
	p.height = &h
	return p
}

// At sets both Left and Top, placing the child at a specific cell.
func (p positioned) At(left, top int) positioned {
	p.left = &left
	p.top = &top
	return p
}

// Fill pins all four edges at the given inset, stretching the child
// over the stack with a uniform margin.
func (p positioned) Fill(inset int) positioned {
	l, t, r, b := inset, inset, inset, inset
	p.left = &l
	p.top = &t
	p.right = &r
	p.bottom = &b
	return p
}

func (p positioned) CreateElement() core.Element {
	return core.NewRenderObjectElement(p, nil)
}

func (p positioned) Key() any {
	return nil
}

func (p positioned) Child() core.Widget {
	return p.child
}

func (p positioned) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	pos := &renderPositioned{
		left:   p.left,
		top:    p.top,
		right:  p.right,
		bottom: p.bottom,
		width:  p.width,
		height: p.height,
	}
	pos.SetSelf(pos)
	return pos
}

func (p positioned) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if pos, ok := renderObject.(*renderPositioned); ok {
		pos.left = p.left
		pos.top = p.top
		pos.right = p.right
		pos.bottom = p.bottom
		pos.width = p.width
		pos.height = p.height
		pos.MarkNeedsLayout()
	}
}

// renderPositioned passes the constraints its Stack computed straight
// through to the child. The edge values live here so the stack can read
// them during layout.
type renderPositioned struct {
	layout.RenderBoxBase
	child  layout.RenderBox
	left   *int
	top    *int
	right  *int
	bottom *int
	width  *int
	height *int
}

func (r *renderPositioned) SetChild(child layout.RenderObject) {
	layout.SetParentOnChild(r.child, nil)
	r.child = layout.AsRenderBox(child)
	layout.SetParentOnChild(r.child, r)
}

func (r *renderPositioned) VisitChildren(visitor func(layout.RenderObject)) {
	if r.child != nil {
		visitor(r.child)
	}
}

func (r *renderPositioned) PerformLayout() {
	constraints := r.Constraints()
	if r.child == nil {
		r.SetSize(constraints.Constrain(geometry.Size{}))
		return
	}
	r.child.Layout(constraints, true)
	r.child.SetParentData(&layout.BoxParentData{})
	r.SetSize(constraints.Constrain(r.child.Size()))
}

func (r *renderPositioned) Paint(ctx *layout.PaintContext) {
	if r.child != nil {
		ctx.PaintChild(r.child, geometry.Point{})
	}
}
