package widgets

import (
	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/layout"
)

// BorderSet holds the eight frame runes used to draw a [Border].
type BorderSet struct {
	TopLeft     rune
	Top         rune
	TopRight    rune
	Left        rune
	Right       rune
	BottomLeft  rune
	Bottom      rune
	BottomRight rune
}

// Frame rune presets.
var (
	BorderLight  = BorderSet{'┌', '─', '┐', '│', '│', '└', '─', '┘'}
	BorderRound  = BorderSet{'╭', '─', '╮', '│', '│', '╰', '─', '╯'}
	BorderDouble = BorderSet{'╔', '═', '╗', '║', '║', '╚', '═', '╝'}
	BorderThick  = BorderSet{'┏', '━', '┓', '┃', '┃', '┗', '━', '┛'}
)

// Border draws a one-cell frame around its child.
//
// The child is inset by one cell on every side, like [Padding] with
// uniform insets. The zero Set draws light box-drawing runes. A Title
// paints into the top edge, truncated when the frame is narrow.
type Border struct {
	core.RenderObjectBase
	Set         BorderSet
	Style       cells.Style
	Title       string
	ChildWidget core.Widget
}

func (b Border) Child() core.Widget {
	return b.ChildWidget
}

func (b Border) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	border := &renderBorder{set: b.effectiveSet(), style: b.Style, title: b.Title}
	border.SetSelf(border)
	return border
}

func (b Border) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if border, ok := renderObject.(*renderBorder); ok {
		border.set = b.effectiveSet()
		border.style = b.Style
		border.title = b.Title
		border.MarkNeedsLayout()
	}
}

func (b Border) effectiveSet() BorderSet {
	if b.Set == (BorderSet{}) {
		return BorderLight
	}
	return b.Set
}

type renderBorder struct {
	layout.RenderBoxBase
	child layout.RenderBox
	set   BorderSet
	style cells.Style
	title string
}

func (r *renderBorder) SetChild(child layout.RenderObject) {
	layout.SetParentOnChild(r.child, nil)
	r.child = layout.AsRenderBox(child)
	layout.SetParentOnChild(r.child, r)
}

func (r *renderBorder) VisitChildren(visitor func(layout.RenderObject)) {
	if r.child != nil {
		visitor(r.child)
	}
}

func (r *renderBorder) PerformLayout() {
	constraints := r.Constraints()
	frame := layout.EdgeInsetsAll(1)

	if r.child == nil {
		r.SetSize(constraints.Constrain(geometry.Size{Width: 2, Height: 2}))
		return
	}

	r.child.Layout(constraints.Deflate(frame), true)
	r.child.SetParentData(&layout.BoxParentData{Offset: geometry.Point{X: 1, Y: 1}})

	childSize := r.child.Size()
	r.SetSize(constraints.Constrain(geometry.Size{
		Width:  childSize.Width + 2,
		Height: childSize.Height + 2,
	}))
}

func (r *renderBorder) Paint(ctx *layout.PaintContext) {
	size := r.Size()
	if size.IsEmpty() {
		return
	}
	w, h := size.Width, size.Height

	for x := 1; x < w-1; x++ {
		ctx.Canvas.SetRune(x, 0, r.set.Top, r.style)
		ctx.Canvas.SetRune(x, h-1, r.set.Bottom, r.style)
	}
	for y := 1; y < h-1; y++ {
		ctx.Canvas.SetRune(0, y, r.set.Left, r.style)
		ctx.Canvas.SetRune(w-1, y, r.set.Right, r.style)
	}
	ctx.Canvas.SetRune(0, 0, r.set.TopLeft, r.style)
	ctx.Canvas.SetRune(w-1, 0, r.set.TopRight, r.style)
	ctx.Canvas.SetRune(0, h-1, r.set.BottomLeft, r.style)
	ctx.Canvas.SetRune(w-1, h-1, r.set.BottomRight, r.style)

	if r.title != "" && w > 4 {
		title := cells.Truncate(r.title, w-4, "…")
		ctx.Canvas.WriteString(2, 0, title, r.style)
	}

	if r.child != nil {
		ctx.PaintChild(r.child, layout.ChildOffset(r.child))
	}
}
