package layout

import (
	"testing"

	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/render"
)

type testRenderBox struct {
	RenderBoxBase
	children    []RenderObject
	childSize   geometry.Size
	layoutCalls int
	paintRune   rune
}

func newTestBox(r rune) *testRenderBox {
	b := &testRenderBox{paintRune: r, childSize: geometry.Size{Width: 4, Height: 2}}
	b.SetSelf(b)
	return b
}

func (r *testRenderBox) PerformLayout() {
	r.layoutCalls++
	r.SetSize(r.Constraints().Constrain(geometry.Size{Width: 10, Height: 6}))
	for i, child := range r.children {
		child.Layout(Tight(r.childSize), false)
		child.SetParentData(&BoxParentData{Offset: geometry.Point{X: i * r.childSize.Width, Y: 1}})
	}
}

func (r *testRenderBox) Paint(ctx *PaintContext) {
	if r.paintRune != 0 {
		ctx.Canvas.SetRune(0, 0, r.paintRune, cells.Style{})
	}
	for _, child := range r.children {
		ctx.PaintChild(child, ChildOffset(child))
	}
}

func (r *testRenderBox) VisitChildren(visit func(RenderObject)) {
	for _, child := range r.children {
		visit(child)
	}
}

func TestLayoutSkipsCleanSubtree(t *testing.T) {
	owner := &PipelineOwner{}
	box := newTestBox('x')
	box.SetOwner(owner)
	owner.ScheduleLayout(box)

	c := Tight(geometry.Size{Width: 10, Height: 6})
	owner.FlushLayoutForRoot(box, c)
	if box.layoutCalls != 1 {
		t.Fatalf("layoutCalls = %d, want 1", box.layoutCalls)
	}

	// Clean node with unchanged constraints does not re-layout.
	box.Layout(c, false)
	if box.layoutCalls != 1 {
		t.Errorf("clean re-layout ran PerformLayout, calls = %d", box.layoutCalls)
	}

	// Changed constraints force a pass even when clean.
	box.Layout(Tight(geometry.Size{Width: 8, Height: 6}), false)
	if box.layoutCalls != 2 {
		t.Errorf("changed constraints skipped layout, calls = %d", box.layoutCalls)
	}
}

func TestMarkNeedsLayoutReachesBoundary(t *testing.T) {
	owner := &PipelineOwner{}
	parent := newTestBox('p')
	child := newTestBox('c')
	parent.children = []RenderObject{child}
	parent.SetOwner(owner)
	child.SetOwner(owner)
	SetParentOnChild(child, parent)

	owner.ScheduleLayout(parent)
	owner.FlushLayoutForRoot(parent, Tight(geometry.Size{Width: 10, Height: 6}))
	if owner.NeedsLayout() {
		t.Fatal("flush should clear the layout flag")
	}

	// The child got tight constraints, so it is its own boundary;
	// dirtying it schedules it without dirtying the parent.
	child.MarkNeedsLayout()
	if !owner.NeedsLayout() {
		t.Fatal("MarkNeedsLayout did not reach the pipeline owner")
	}
	if parent.NeedsLayout() {
		t.Error("tight child should not dirty its parent")
	}

	parentCalls := parent.layoutCalls
	owner.FlushLayoutForRoot(parent, Tight(geometry.Size{Width: 10, Height: 6}))
	if child.NeedsLayout() {
		t.Error("flush left the child dirty")
	}
	if parent.layoutCalls != parentCalls {
		t.Error("boundary flush re-laid-out the clean parent")
	}
}

func TestPaintChildClipsAndRestores(t *testing.T) {
	buf := cells.NewBuffer(geometry.Size{Width: 10, Height: 6})
	ctx := &PaintContext{Canvas: render.NewCanvas(buf)}

	child := newTestBox('c')
	child.Layout(Tight(geometry.Size{Width: 3, Height: 1}), false)

	ctx.PaintChild(child, geometry.Point{X: 2, Y: 1})

	if buf.At(2, 1).Rune != 'c' {
		t.Errorf("child painted %q, want 'c' at (2,1)", buf.At(2, 1).Rune)
	}
	if got := ctx.Canvas.Size(); got != (geometry.Size{Width: 10, Height: 6}) {
		t.Errorf("canvas not restored after PaintChild: %+v", got)
	}
	if child.NeedsPaint() {
		t.Error("PaintChild should clear the child's paint flag")
	}
}

type cursorBox struct {
	RenderBoxBase
}

func (c *cursorBox) PerformLayout() {
	c.SetSize(c.Constraints().MaxSize())
}

func (c *cursorBox) Paint(ctx *PaintContext) {
	ctx.SetCursor(geometry.Point{X: 1, Y: 1}, true)
}

func TestSetCursorUsesAbsoluteCoordinates(t *testing.T) {
	buf := cells.NewBuffer(geometry.Size{Width: 10, Height: 6})
	ctx := &PaintContext{Canvas: render.NewCanvas(buf)}

	cursorChild := &cursorBox{}
	cursorChild.SetSelf(cursorChild)
	cursorChild.Layout(Tight(geometry.Size{Width: 2, Height: 2}), false)
	ctx.PaintChild(cursorChild, geometry.Point{X: 3, Y: 2})

	req := ctx.Cursor()
	if req == nil {
		t.Fatal("no cursor request recorded")
	}
	if req.Pos != (geometry.Point{X: 4, Y: 3}) {
		t.Errorf("cursor at %+v, want {4 3}", req.Pos)
	}
	if !req.Visible {
		t.Error("cursor should be visible")
	}
}

func TestCollectRectsAndPaintOrder(t *testing.T) {
	owner := &PipelineOwner{}
	root := newTestBox('r')
	a := newTestBox('a')
	b := newTestBox('b')
	root.children = []RenderObject{a, b}
	root.SetOwner(owner)
	SetParentOnChild(a, root)
	SetParentOnChild(b, root)

	owner.ScheduleLayout(root)
	owner.FlushLayoutForRoot(root, Tight(geometry.Size{Width: 10, Height: 6}))

	rects := CollectRects(root)
	if got := rects[root]; got != (geometry.Rect{Width: 10, Height: 6}) {
		t.Errorf("root rect = %+v", got)
	}
	if got := rects[a]; got != (geometry.Rect{X: 0, Y: 1, Width: 4, Height: 2}) {
		t.Errorf("first child rect = %+v", got)
	}
	if got := rects[b]; got != (geometry.Rect{X: 4, Y: 1, Width: 4, Height: 2}) {
		t.Errorf("second child rect = %+v", got)
	}

	order := PaintOrder(root)
	if len(order) != 3 || order[0] != RenderObject(root) || order[1] != RenderObject(a) || order[2] != RenderObject(b) {
		t.Errorf("paint order = %v", order)
	}
}
