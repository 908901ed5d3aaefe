package layout

import (
	"slices"

	"github.com/go-drift/tide/pkg/geometry"
)

// TextMeasurer reports how many cells a string occupies on the
// backend's surface. The engine installs the backend's measurer here
// before the first layout so text render objects can size themselves.
type TextMeasurer interface {
	MeasureString(s string) geometry.Size
}

// PipelineOwner tracks render objects that need layout or paint.
//
// Layout scheduling works with relayout boundaries: when a node needs
// layout, MarkNeedsLayout walks up to the nearest boundary, marking
// each node along the way. The boundary gets scheduled here. During
// FlushLayoutForRoot, layout propagates from the root (or scheduled
// boundaries) down through all marked nodes.
type PipelineOwner struct {
	dirtyLayout    []RenderObject        // boundaries needing layout, processed depth-first
	dirtyLayoutSet map[RenderObject]bool // O(1) dedup check
	needsLayout    bool
	needsPaint     bool
	measurer       TextMeasurer
}

// SetMeasurer installs the backend's text measurer.
func (p *PipelineOwner) SetMeasurer(m TextMeasurer) {
	p.measurer = m
}

// Measurer returns the installed text measurer, or nil before a
// backend is attached.
func (p *PipelineOwner) Measurer() TextMeasurer {
	return p.measurer
}

// ScheduleLayout marks a relayout boundary as needing layout.
// Only relayout boundaries should be scheduled here. Intermediate
// nodes are marked via MarkNeedsLayout but not scheduled directly.
func (p *PipelineOwner) ScheduleLayout(object RenderObject) {
	if p.dirtyLayoutSet == nil {
		p.dirtyLayoutSet = make(map[RenderObject]bool)
	}
	if p.dirtyLayoutSet[object] {
		return
	}
	p.dirtyLayoutSet[object] = true
	p.dirtyLayout = append(p.dirtyLayout, object)
	p.needsLayout = true
	p.needsPaint = true
}

// SchedulePaint records that at least one node needs repainting.
func (p *PipelineOwner) SchedulePaint() {
	p.needsPaint = true
}

// NeedsLayout reports if any render objects need layout.
func (p *PipelineOwner) NeedsLayout() bool {
	return p.needsLayout
}

// NeedsPaint reports if any render objects need paint.
func (p *PipelineOwner) NeedsPaint() bool {
	return p.needsPaint
}

// ClearPaint resets the paint flag after a frame has been painted.
func (p *PipelineOwner) ClearPaint() {
	p.needsPaint = false
}

// FlushLayoutForRoot runs layout starting from the root.
//
// The typical frame sequence is:
//  1. FlushBuild - rebuilds dirty elements, updates render object properties
//  2. FlushLayoutForRoot - lays out from root, propagating to dirty subtrees
//  3. Paint - renders the tree into the back buffer
//
// Layout starts at the root with tight constraints (the root is
// always a boundary). Nodes with needsLayout=true run PerformLayout;
// clean nodes with unchanged constraints skip layout entirely.
func (p *PipelineOwner) FlushLayoutForRoot(root RenderObject, constraints Constraints) {
	if !p.needsLayout || root == nil {
		return
	}

	root.Layout(constraints, false)

	// Process boundaries scheduled during the layout pass. Handles
	// MarkNeedsLayout calls made from inside PerformLayout.
	p.flushDirtyBoundaries()

	p.dirtyLayout = nil
	p.dirtyLayoutSet = nil
	p.needsLayout = false
}

// flushDirtyBoundaries processes scheduled boundaries parent-first.
//
// If a parent and child are both scheduled, the parent lays out first
// and may clear the child's dirty flag as a side effect, since the
// child is laid out as part of the parent's PerformLayout. That
// avoids redundant layout work.
func (p *PipelineOwner) flushDirtyBoundaries() {
	for len(p.dirtyLayout) > 0 {
		slices.SortFunc(p.dirtyLayout, func(a, b RenderObject) int {
			return getDepth(a) - getDepth(b)
		})

		dirty := p.dirtyLayout
		p.dirtyLayout = nil
		p.dirtyLayoutSet = nil

		for _, node := range dirty {
			if layouter, ok := node.(interface {
				NeedsLayout() bool
				Constraints() Constraints
				Layout(Constraints, bool)
			}); ok {
				if layouter.NeedsLayout() {
					// Re-layout the boundary with its cached
					// constraints. parentUsesSize is false because
					// boundaries don't propagate size changes upward.
					layouter.Layout(layouter.Constraints(), false)
				}
			}
		}
	}
}

// getDepth returns the tree depth of a render object.
func getDepth(obj RenderObject) int {
	if getter, ok := obj.(interface{ Depth() int }); ok {
		return getter.Depth()
	}
	return 0
}

// CollectRects returns the absolute bounds of every node reachable
// from root, with root anchored at the origin. Offsets come from the
// BoxParentData each parent assigned during its last layout, so this
// reflects the tree as most recently laid out.
func CollectRects(root RenderObject) map[RenderObject]geometry.Rect {
	rects := make(map[RenderObject]geometry.Rect)
	var walk func(node RenderObject, origin geometry.Point)
	walk = func(node RenderObject, origin geometry.Point) {
		rects[node] = geometry.RectOf(origin, node.Size())
		if visitor, ok := node.(ChildVisitor); ok {
			visitor.VisitChildren(func(child RenderObject) {
				off := ChildOffset(child)
				walk(child, origin.Add(off))
			})
		}
	}
	if root != nil {
		walk(root, geometry.Point{})
	}
	return rects
}

// PaintOrder returns every node reachable from root in the order it
// paints: parents before children, siblings in visit order. Later
// entries draw over earlier ones.
func PaintOrder(root RenderObject) []RenderObject {
	var order []RenderObject
	var walk func(node RenderObject)
	walk = func(node RenderObject) {
		order = append(order, node)
		if visitor, ok := node.(ChildVisitor); ok {
			visitor.VisitChildren(walk)
		}
	}
	if root != nil {
		walk(root)
	}
	return order
}
