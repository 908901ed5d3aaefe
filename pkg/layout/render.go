package layout

import "github.com/go-drift/tide/pkg/geometry"

// RenderObject handles layout and painting for one node of the
// render tree.
type RenderObject interface {
	Layout(constraints Constraints, parentUsesSize bool)
	Size() geometry.Size
	Paint(ctx *PaintContext)
	ParentData() any
	SetParentData(data any)
	MarkNeedsLayout()
	MarkNeedsPaint()
	SetOwner(owner *PipelineOwner)
}

// RenderBox is a RenderObject with box layout.
type RenderBox interface {
	RenderObject
}

// ChildVisitor is implemented by render objects that have children.
type ChildVisitor interface {
	// VisitChildren calls the visitor for each child in paint order.
	VisitChildren(visitor func(RenderObject))
}

// BoxParentData stores the offset a parent assigned to a child, in
// the parent's coordinates.
type BoxParentData struct {
	Offset geometry.Point
}

// RenderBoxBase provides base behavior for render boxes.
type RenderBoxBase struct {
	size             geometry.Size
	parentData       any
	owner            *PipelineOwner
	self             RenderObject
	parent           RenderObject // parent reference for tree walking
	depth            int          // tree depth (root = 0)
	relayoutBoundary RenderObject // cached nearest relayout boundary
	needsLayout      bool         // local dirty flag
	constraints      Constraints  // last received constraints
	needsPaint       bool         // local dirty flag for paint
}

// Size returns the current size of the render box.
func (r *RenderBoxBase) Size() geometry.Size {
	return r.size
}

// SetSize updates the render box size. A size change dirties paint
// since the content no longer fits its old footprint.
func (r *RenderBoxBase) SetSize(size geometry.Size) {
	if r.size == size {
		return
	}
	r.size = size
	r.MarkNeedsPaint()
}

// ParentData returns the parent-assigned data for this render box.
func (r *RenderBoxBase) ParentData() any {
	return r.parentData
}

// SetParentData assigns parent-controlled data to this render box.
// A changed offset dirties paint: the node now draws somewhere else.
func (r *RenderBoxBase) SetParentData(data any) {
	if newData, ok := data.(*BoxParentData); ok {
		oldData, hadOldData := r.parentData.(*BoxParentData)
		if !hadOldData || oldData.Offset != newData.Offset {
			r.MarkNeedsPaint()
		}
	}
	r.parentData = data
}

// MarkNeedsLayout marks this render box as needing layout.
//
// Follows the relayout boundary pattern: the dirty flag propagates up
// the tree until it reaches a relayout boundary, which schedules
// itself with the pipeline owner. During the flush, layout then
// propagates from the boundary down through all marked nodes.
func (r *RenderBoxBase) MarkNeedsLayout() {
	if r.needsLayout {
		return
	}
	r.needsLayout = true

	if r.owner == nil || r.self == nil {
		return
	}

	if r.relayoutBoundary == r.self {
		r.owner.ScheduleLayout(r.self)
		return
	}

	if r.parent != nil {
		r.parent.MarkNeedsLayout()
		return
	}

	// No parent and not a boundary: tree is still being assembled.
	// Schedule self so the node is laid out on the next flush.
	r.owner.ScheduleLayout(r.self)
}

// MarkNeedsPaint marks this render box as needing paint.
//
// Painting always re-records the whole tree into the back buffer and
// the frame differ keeps terminal output minimal, so there is no
// boundary walk here. The owner just needs to know a repaint is due.
func (r *RenderBoxBase) MarkNeedsPaint() {
	r.needsPaint = true
	if r.owner != nil {
		r.owner.SchedulePaint()
	}
}

// ClearNeedsPaint marks this render object as painted.
func (r *RenderBoxBase) ClearNeedsPaint() {
	r.needsPaint = false
}

// NeedsPaint returns true if this render box needs painting.
func (r *RenderBoxBase) NeedsPaint() bool {
	return r.needsPaint
}

// SetOwner assigns the pipeline owner for scheduling layout and paint.
func (r *RenderBoxBase) SetOwner(owner *PipelineOwner) {
	r.owner = owner
}

// Owner returns the pipeline owner, or nil if detached.
func (r *RenderBoxBase) Owner() *PipelineOwner {
	return r.owner
}

// SetSelf registers the concrete render object for scheduling.
func (r *RenderBoxBase) SetSelf(self RenderObject) {
	r.self = self
	r.needsLayout = true // new render objects always need initial layout
	r.needsPaint = true
}

// Self returns the concrete render object registered via SetSelf.
func (r *RenderBoxBase) Self() RenderObject {
	return r.self
}

// Parent returns the parent render object.
func (r *RenderBoxBase) Parent() RenderObject {
	return r.parent
}

// SetParent sets the parent render object and computes depth.
// Clears the relayout boundary and cached constraints so a reparented
// node cannot act on state from its old subtree.
func (r *RenderBoxBase) SetParent(parent RenderObject) {
	if r.parent == parent {
		return
	}
	r.parent = parent
	if parent == nil {
		r.depth = 0
	} else if getter, ok := parent.(interface{ Depth() int }); ok {
		r.depth = getter.Depth() + 1
	} else {
		r.depth = 1
	}
	r.relayoutBoundary = nil
	r.constraints = Constraints{}
	r.needsLayout = true
	r.needsPaint = true
}

// Depth returns the tree depth (root = 0).
func (r *RenderBoxBase) Depth() int {
	return r.depth
}

// RelayoutBoundary returns the cached nearest relayout boundary.
func (r *RenderBoxBase) RelayoutBoundary() RenderObject {
	return r.relayoutBoundary
}

// NeedsLayout returns true if this render box needs layout.
func (r *RenderBoxBase) NeedsLayout() bool {
	return r.needsLayout
}

// Constraints returns the last received constraints.
func (r *RenderBoxBase) Constraints() Constraints {
	return r.constraints
}

// Layout handles boundary determination and delegates to PerformLayout.
//
// A node becomes a relayout boundary when it receives tight
// constraints, has no parent, or its parent does not use its size.
// Boundaries contain layout changes: when a descendant is marked
// dirty, the walk up stops at the boundary instead of invalidating
// the whole tree.
//
// Concrete render objects implement PerformLayout for their layout
// logic. The base Layout handles the boundary bookkeeping, skips work
// when the node is clean with unchanged constraints, and clears the
// dirty flag.
func (r *RenderBoxBase) Layout(constraints Constraints, parentUsesSize bool) {
	shouldBeBoundary := constraints.IsTight() || r.parent == nil || !parentUsesSize

	if shouldBeBoundary {
		r.relayoutBoundary = r.self
	} else if r.parent != nil {
		if getter, ok := r.parent.(interface{ RelayoutBoundary() RenderObject }); ok {
			r.relayoutBoundary = getter.RelayoutBoundary()
		}
	}

	// Unchanged subtrees don't re-layout.
	if !r.needsLayout && r.constraints == constraints {
		return
	}

	// Store constraints and clear the dirty flag before performing
	// layout so a node re-marked during PerformLayout is caught on
	// the next frame rather than lost.
	r.constraints = constraints
	r.needsLayout = false

	if performer, ok := r.self.(interface{ PerformLayout() }); ok {
		performer.PerformLayout()
	}
}

// SetParentOnChild sets the parent reference on a child render
// object and marks both old and new parent as needing layout.
func SetParentOnChild(child, parent RenderObject) {
	if child == nil {
		return
	}
	getter, _ := child.(interface{ Parent() RenderObject })
	setter, ok := child.(interface{ SetParent(RenderObject) })
	if !ok {
		return
	}
	currentParent := RenderObject(nil)
	if getter != nil {
		currentParent = getter.Parent()
	}
	if currentParent == parent {
		return
	}
	setter.SetParent(parent)
	if currentParent != nil {
		currentParent.MarkNeedsLayout()
	}
	if parent != nil {
		parent.MarkNeedsLayout()
	}
}

// AsRenderBox converts a RenderObject to a RenderBox.
// Returns nil if the child is nil or not a RenderBox.
func AsRenderBox(child RenderObject) RenderBox {
	box, _ := child.(RenderBox)
	return box
}

// ChildOffset returns the offset the parent assigned to a child, or
// the zero point when none was set.
func ChildOffset(child RenderObject) geometry.Point {
	if child == nil {
		return geometry.Point{}
	}
	if pd, ok := child.ParentData().(*BoxParentData); ok && pd != nil {
		return pd.Offset
	}
	return geometry.Point{}
}
