package core

import (
	"reflect"
	"time"

	"github.com/go-drift/tide/pkg/errors"
	"github.com/go-drift/tide/pkg/layout"
)

// renderObjectHost is implemented by elements that own a render
// object and accept render object children from descendants.
type renderObjectHost interface {
	Element
	insertRenderObjectChild(child layout.RenderObject, slot any)
	removeRenderObjectChild(child layout.RenderObject, slot any)
	moveRenderObjectChild(child layout.RenderObject, oldSlot, newSlot any)
}

type elementBase struct {
	widget       Widget
	parent       Element
	depth        int
	slot         any
	buildOwner   *BuildOwner
	dirty        bool
	self         Element
	mounted      bool
	renderParent renderObjectHost // nearest ancestor that owns a render object
}

func (e *elementBase) Widget() Widget {
	return e.widget
}

func (e *elementBase) Depth() int {
	return e.depth
}

func (e *elementBase) Slot() any {
	return e.slot
}

// UpdateSlot records a new position among siblings. Elements that own
// render objects override this to notify their render parent.
func (e *elementBase) UpdateSlot(newSlot any) {
	e.slot = newSlot
}

func (e *elementBase) MarkNeedsBuild() {
	if e.dirty {
		return
	}
	e.dirty = true
	if e.buildOwner != nil && e.self != nil {
		e.buildOwner.ScheduleBuild(e.self)
	}
}

// Parent returns the parent element, or nil at the root.
func (e *elementBase) Parent() Element {
	return e.parent
}

func (e *elementBase) parentElement() Element {
	return e.parent
}

func (e *elementBase) setSelf(self Element) {
	e.self = self
}

func (e *elementBase) setBuildOwner(owner *BuildOwner) {
	e.buildOwner = owner
}

func (e *elementBase) setWidget(widget Widget) {
	e.widget = widget
}

func (e *elementBase) isMounted() bool {
	return e.mounted
}

func (e *elementBase) notifyMounted() {
	if e.buildOwner != nil && e.buildOwner.Observer != nil {
		e.buildOwner.Observer.ElementMounted(e.self)
	}
}

func (e *elementBase) notifyUpdated() {
	if e.buildOwner != nil && e.buildOwner.Observer != nil {
		e.buildOwner.Observer.ElementUpdated(e.self)
	}
}

func (e *elementBase) notifyUnmounted() {
	if e.buildOwner != nil && e.buildOwner.Observer != nil {
		e.buildOwner.Observer.ElementUnmounted(e.self)
	}
}

func (e *elementBase) FindAncestor(predicate func(Element) bool) Element {
	current := e.parent
	for current != nil {
		if predicate(current) {
			return current
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

func (e *elementBase) DependOnInherited(inheritedType reflect.Type) any {
	return dependOnInheritedImpl(e.self, inheritedType)
}

// findRenderParent walks up the element tree to the nearest element
// that hosts a render object.
func (e *elementBase) findRenderParent() renderObjectHost {
	current := e.parent
	for current != nil {
		if host, ok := current.(renderObjectHost); ok {
			return host
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

// safeBuild executes a build function with panic recovery. On panic
// the error is reported to the global handler, collected on the build
// owner so the engine can surface it after the tick, and offered to
// the nearest error boundary. The returned error is non-nil when the
// build failed; callers keep their previous subtree in that case.
func (e *elementBase) safeBuild(phase string, buildFn func() Widget) (Widget, *errors.BuildError) {
	var built Widget
	var buildErr *errors.BuildError

	func() {
		defer func() {
			if r := recover(); r != nil {
				buildErr = &errors.BuildError{
					Widget:     reflect.TypeOf(e.widget).String(),
					Element:    reflect.TypeOf(e.self).String(),
					Phase:      phase,
					Recovered:  r,
					StackTrace: errors.CaptureStack(),
					Timestamp:  time.Now(),
				}
			}
		}()
		built = buildFn()
	}()

	if buildErr == nil {
		return built, nil
	}

	errors.ReportBuildError(buildErr)
	// A captured error is the boundary's problem now; only uncaptured
	// failures surface as the tick error.
	if !e.offerToBoundary(buildErr) && e.buildOwner != nil {
		e.buildOwner.noteBuildError(buildErr)
	}
	return nil, buildErr
}

// offerToBoundary walks ancestors looking for an error boundary
// willing to capture the error. A boundary may decline (for example
// when it is already showing its fallback), in which case the walk
// continues to the next boundary up. Reports whether any boundary
// accepted the error.
func (e *elementBase) offerToBoundary(err *errors.BuildError) bool {
	current := e.parent
	for current != nil {
		if capture, ok := boundaryCapture(current); ok && capture.CaptureError(err) {
			return true
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return false
}

// boundaryCapture extracts an ErrorBoundaryCapture from an element.
// Elements may implement it directly; for stateful elements the state
// object is consulted too, so a boundary can be written as an ordinary
// StatefulWidget whose State captures errors.
func boundaryCapture(element Element) (ErrorBoundaryCapture, bool) {
	if capture, ok := element.(ErrorBoundaryCapture); ok {
		return capture, true
	}
	if stateful, ok := element.(*StatefulElement); ok {
		if capture, ok := stateful.State().(ErrorBoundaryCapture); ok {
			return capture, true
		}
	}
	return nil, false
}

// errorFallbackWidget returns the widget to mount when a build fails
// and there is no previous subtree to keep showing.
func errorFallbackWidget(err *errors.BuildError) Widget {
	if builder := GetErrorWidgetBuilder(); builder != nil {
		if w := builder(err); w != nil {
			return w
		}
	}
	return errorPlaceholder{err: err}
}

// errorPlaceholder is a minimal fallback widget mounted when a build
// fails before anything was ever built. It renders nothing.
type errorPlaceholder struct {
	err *errors.BuildError
}

func (p errorPlaceholder) CreateElement() Element {
	return NewStatelessElement(p, nil)
}

func (p errorPlaceholder) Key() any {
	return nil
}

func (p errorPlaceholder) Build(ctx BuildContext) Widget {
	// The error has already been reported; show nothing.
	return nil
}

// StatelessElement hosts a StatelessWidget.
type StatelessElement struct {
	elementBase
	child Element
}

func NewStatelessElement(widget StatelessWidget, owner *BuildOwner) *StatelessElement {
	element := &StatelessElement{}
	element.widget = widget
	element.buildOwner = owner
	element.setSelf(element)
	return element
}

func (e *StatelessElement) Mount(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.renderParent = e.findRenderParent()
	e.mounted = true
	e.notifyMounted()
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *StatelessElement) Update(newWidget Widget) {
	e.widget = newWidget
	e.notifyUpdated()
	e.MarkNeedsBuild()
}

func (e *StatelessElement) Unmount() {
	e.mounted = false
	e.notifyUnmounted()
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
}

func (e *StatelessElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	widget := e.widget.(StatelessWidget)
	built, err := e.safeBuild("build", func() Widget {
		return widget.Build(e)
	})
	if err != nil {
		// A failed rebuild keeps the previous subtree on screen. Only
		// a first build with nothing to keep mounts the fallback.
		if e.child == nil {
			e.child = updateChild(nil, errorFallbackWidget(err), e, e.buildOwner, nil)
		}
		return
	}
	e.child = updateChild(e.child, built, e, e.buildOwner, nil)
}

func (e *StatelessElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// RenderObject returns the render object from the first render-object child.
func (e *StatelessElement) RenderObject() layout.RenderObject {
	if e.child == nil {
		return nil
	}
	if child, ok := e.child.(interface{ RenderObject() layout.RenderObject }); ok {
		return child.RenderObject()
	}
	return nil
}

// StatefulElement hosts a StatefulWidget and its State.
type StatefulElement struct {
	elementBase
	child Element
	state State
}

func NewStatefulElement(widget StatefulWidget, owner *BuildOwner) *StatefulElement {
	element := &StatefulElement{}
	element.widget = widget
	element.buildOwner = owner
	element.setSelf(element)
	return element
}

func (e *StatefulElement) Mount(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.renderParent = e.findRenderParent()
	e.mounted = true
	e.notifyMounted()
	widget := e.widget.(StatefulWidget)
	e.state = widget.CreateState()
	if setter, ok := e.state.(interface{ SetElement(*StatefulElement) }); ok {
		setter.SetElement(e)
	} else if setter, ok := e.state.(interface{ setElement(*StatefulElement) }); ok {
		setter.setElement(e)
	}
	e.state.InitState()
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *StatefulElement) Update(newWidget Widget) {
	oldWidget := e.widget.(StatefulWidget)
	e.widget = newWidget
	e.notifyUpdated()
	e.state.DidUpdateWidget(oldWidget)
	e.MarkNeedsBuild()
}

func (e *StatefulElement) Unmount() {
	e.mounted = false
	e.notifyUnmounted()
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	if e.state != nil {
		e.state.Dispose()
	}
}

func (e *StatefulElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	built, err := e.safeBuild("build", func() Widget {
		return e.state.Build(e)
	})
	if err != nil {
		if e.child == nil {
			e.child = updateChild(nil, errorFallbackWidget(err), e, e.buildOwner, nil)
		}
		return
	}
	e.child = updateChild(e.child, built, e, e.buildOwner, nil)
}

// State returns the state object owned by this element.
func (e *StatefulElement) State() State {
	return e.state
}

func (e *StatefulElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// RenderObject returns the render object from the first render-object child.
func (e *StatefulElement) RenderObject() layout.RenderObject {
	if e.child == nil {
		return nil
	}
	if child, ok := e.child.(interface{ RenderObject() layout.RenderObject }); ok {
		return child.RenderObject()
	}
	return nil
}

// RenderObjectElement hosts a RenderObject and optional children.
type RenderObjectElement struct {
	elementBase
	renderObject layout.RenderObject
	children     []Element
}

func NewRenderObjectElement(widget RenderObjectWidget, owner *BuildOwner) *RenderObjectElement {
	element := &RenderObjectElement{}
	element.widget = widget
	element.buildOwner = owner
	element.setSelf(element)
	return element
}

func (e *RenderObjectElement) Mount(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.mounted = true
	e.notifyMounted()

	widget := e.widget.(RenderObjectWidget)
	e.renderObject = widget.CreateRenderObject(e)
	if e.buildOwner != nil {
		e.renderObject.SetOwner(e.buildOwner.Pipeline())
	}

	// Attach to the render tree before building children so descendants
	// find this node as their render parent.
	e.attachRenderObject(slot)

	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *RenderObjectElement) Update(newWidget Widget) {
	e.widget = newWidget
	e.notifyUpdated()
	e.MarkNeedsBuild()
}

func (e *RenderObjectElement) Unmount() {
	e.mounted = false
	e.notifyUnmounted()

	// Children first; they detach their own render objects.
	for _, child := range e.children {
		child.Unmount()
	}
	e.children = nil

	e.detachRenderObject()
}

func (e *RenderObjectElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false

	widget := e.widget.(RenderObjectWidget)
	widget.UpdateRenderObject(e, e.renderObject)

	switch typed := e.widget.(type) {
	case interface{ Child() Widget }:
		childWidget := typed.Child()
		var child Element
		if len(e.children) > 0 {
			child = e.children[0]
		}
		child = updateChild(child, childWidget, e, e.buildOwner, nil)
		if child != nil {
			e.children = []Element{child}
		} else {
			e.children = nil
		}

	case interface{ Children() []Widget }:
		e.children = updateChildren(e, e.children, typed.Children(), e.buildOwner)
		// Rebuild the render children list now that e.children is fully
		// populated. insertRenderObjectChild only sets parent references
		// for multi-child render objects since the element list isn't
		// ready while children are still mounting.
		e.rebuildChildrenRenderList()
	}
}

func (e *RenderObjectElement) VisitChildren(visitor func(Element) bool) {
	for _, child := range e.children {
		if !visitor(child) {
			return
		}
	}
}

// RenderObject exposes the backing render object for the element.
func (e *RenderObjectElement) RenderObject() layout.RenderObject {
	return e.renderObject
}

// UpdateSlot records the new position and notifies the render parent
// so multi-child render objects can reorder their children.
func (e *RenderObjectElement) UpdateSlot(newSlot any) {
	oldSlot := e.slot
	e.slot = newSlot
	if e.renderParent != nil {
		e.renderParent.moveRenderObjectChild(e.renderObject, oldSlot, newSlot)
	}
}

// attachRenderObject attaches this element's render object to the render tree.
// Called from Mount after the render object is created.
func (e *RenderObjectElement) attachRenderObject(slot any) {
	e.renderParent = e.findRenderParent()
	if e.renderParent != nil {
		e.renderParent.insertRenderObjectChild(e.renderObject, slot)
	}
}

// detachRenderObject removes this element's render object from the render tree.
// Called from Unmount.
func (e *RenderObjectElement) detachRenderObject() {
	if e.renderParent != nil {
		e.renderParent.removeRenderObjectChild(e.renderObject, e.slot)
		e.renderParent = nil
	}
	if e.renderObject != nil {
		if disposer, ok := e.renderObject.(Disposable); ok {
			disposer.Dispose()
		}
	}
}

// insertRenderObjectChild adds a child render object at the given slot.
func (e *RenderObjectElement) insertRenderObjectChild(child layout.RenderObject, slot any) {
	if child == nil {
		return
	}
	layout.SetParentOnChild(child, e.renderObject)
	// Single-child render objects take the child directly. Multi-child
	// render objects get their list rebuilt by RebuildIfNeeded once all
	// children are mounted.
	if single, ok := e.renderObject.(interface{ SetChild(layout.RenderObject) }); ok {
		single.SetChild(child)
	}
}

// removeRenderObjectChild removes a child render object.
func (e *RenderObjectElement) removeRenderObjectChild(child layout.RenderObject, slot any) {
	if child == nil {
		return
	}
	layout.SetParentOnChild(child, nil)
	if single, ok := e.renderObject.(interface{ SetChild(layout.RenderObject) }); ok {
		single.SetChild(nil)
		return
	}
	e.rebuildChildrenRenderList()
}

// moveRenderObjectChild reorders a child render object. The render
// children list is derived from element order, so a rebuild suffices.
func (e *RenderObjectElement) moveRenderObjectChild(child layout.RenderObject, oldSlot, newSlot any) {
	if child == nil {
		return
	}
	if _, ok := e.renderObject.(interface{ SetChildren([]layout.RenderObject) }); ok {
		e.rebuildChildrenRenderList()
	}
}

// rebuildChildrenRenderList rebuilds render object children from element children.
func (e *RenderObjectElement) rebuildChildrenRenderList() {
	multi, ok := e.renderObject.(interface{ SetChildren([]layout.RenderObject) })
	if !ok {
		return
	}
	objects := make([]layout.RenderObject, 0, len(e.children))
	for _, child := range e.children {
		if provider, ok := child.(interface{ RenderObject() layout.RenderObject }); ok {
			if ro := provider.RenderObject(); ro != nil {
				objects = append(objects, ro)
			}
		}
	}
	multi.SetChildren(objects)
}

// IndexedSlot records a child's position among its siblings.
type IndexedSlot struct {
	Index           int
	PreviousSibling Element
}

// MountRoot inflates a widget as the root of a new element tree.
func MountRoot(widget Widget, owner *BuildOwner) Element {
	element := inflateWidget(widget, owner)
	if element == nil {
		return nil
	}
	element.Mount(nil, nil)
	return element
}

// UpdateRoot reconciles the root element against a new widget. The
// existing root absorbs the widget when type and key match; otherwise
// it unmounts and a fresh tree mounts in its place. A nil root mounts
// from scratch, a nil widget unmounts everything.
func UpdateRoot(root Element, widget Widget, owner *BuildOwner) Element {
	return updateChild(root, widget, nil, owner, nil)
}

// updateChild reconciles a single child element against a new widget.
// When the widget is nil the child unmounts. When the existing element
// can absorb the new widget (same type, equal key) it is updated in
// place and its slot refreshed. Otherwise the old child unmounts and a
// fresh element is inflated and mounted at the slot.
func updateChild(existing Element, widget Widget, parent Element, owner *BuildOwner, slot any) Element {
	if widget == nil {
		if existing != nil {
			existing.Unmount()
		}
		return nil
	}
	if existing != nil && canUpdateWidget(existing.Widget(), widget) {
		existing.Update(widget)
		if existing.Slot() != slot {
			existing.UpdateSlot(slot)
		}
		return existing
	}
	if existing != nil {
		existing.Unmount()
	}
	element := inflateWidget(widget, owner)
	element.Mount(parent, slot)
	return element
}

// updateChildren reconciles an old child list against a new widget
// list.
//
// Matching runs in three phases: a prefix scan reuses children whose
// type and key line up from the top, a suffix scan does the same from
// the bottom, and the remaining middle is matched by key so keyed
// children move instead of remounting. Old children without a usable
// key are reused positionally, in order. Anything left unmatched
// unmounts. Keys that are not comparable cannot go in the key table
// and fall back to positional matching.
func updateChildren(parent Element, oldChildren []Element, newWidgets []Widget, owner *BuildOwner) []Element {
	oldTop, newTop := 0, 0
	oldBottom, newBottom := len(oldChildren)-1, len(newWidgets)-1

	matches := make([]Element, len(newWidgets))

	// Sync from the top.
	for oldTop <= oldBottom && newTop <= newBottom &&
		canUpdateWidget(oldChildren[oldTop].Widget(), newWidgets[newTop]) {
		matches[newTop] = oldChildren[oldTop]
		oldTop++
		newTop++
	}

	// Sync from the bottom.
	for oldBottom >= oldTop && newBottom >= newTop &&
		canUpdateWidget(oldChildren[oldBottom].Widget(), newWidgets[newBottom]) {
		matches[newBottom] = oldChildren[oldBottom]
		oldBottom--
		newBottom--
	}

	// Index the old middle: keyed children by key, the rest in order.
	var keyed map[any]Element
	var positional []Element
	for i := oldTop; i <= oldBottom; i++ {
		child := oldChildren[i]
		key := child.Widget().Key()
		if key != nil && isComparable(key) {
			if keyed == nil {
				keyed = make(map[any]Element)
			}
			keyed[key] = child
		} else {
			positional = append(positional, child)
		}
	}

	// Match the new middle.
	for i := newTop; i <= newBottom; i++ {
		widget := newWidgets[i]
		key := widget.Key()
		if key != nil && isComparable(key) {
			if child, ok := keyed[key]; ok && canUpdateWidget(child.Widget(), widget) {
				matches[i] = child
				delete(keyed, key)
			}
			continue
		}
		if len(positional) > 0 {
			matches[i] = positional[0]
			positional = positional[1:]
		}
	}

	// Unmount old children that found no match.
	for _, child := range keyed {
		child.Unmount()
	}
	for _, child := range positional {
		child.Unmount()
	}

	// Apply matches in order, threading slots through updateChild so
	// every child ends up with its final index and previous sibling.
	newChildren := make([]Element, len(newWidgets))
	var previous Element
	for i, widget := range newWidgets {
		slot := IndexedSlot{Index: i, PreviousSibling: previous}
		newChildren[i] = updateChild(matches[i], widget, parent, owner, slot)
		previous = newChildren[i]
	}
	return newChildren
}

// canUpdateWidget reports whether an existing element's widget can be
// replaced by next without losing identity. DeepEqual tolerates
// non-comparable key types.
func canUpdateWidget(existing Widget, next Widget) bool {
	if existing == nil || next == nil {
		return false
	}
	if reflect.TypeOf(existing) != reflect.TypeOf(next) {
		return false
	}
	return reflect.DeepEqual(existing.Key(), next.Key())
}

// isComparable reports whether a value can be used as a map key.
func isComparable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}

func inflateWidget(widget Widget, owner *BuildOwner) Element {
	if widget == nil {
		return nil
	}
	element := widget.CreateElement()
	if setter, ok := element.(interface{ setWidget(Widget) }); ok {
		setter.setWidget(widget)
	}
	if setter, ok := element.(interface{ setBuildOwner(*BuildOwner) }); ok {
		setter.setBuildOwner(owner)
	}
	if setter, ok := element.(interface{ setSelf(Element) }); ok {
		setter.setSelf(element)
	}
	return element
}
