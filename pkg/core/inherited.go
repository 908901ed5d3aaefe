package core

import (
	"reflect"

	"github.com/go-drift/tide/pkg/layout"
)

// InheritedWidget propagates a value down the tree. Descendants that
// call [BuildContext.DependOnInherited] with the widget's type get
// the nearest instance and rebuild when it changes.
type InheritedWidget interface {
	Widget

	// ChildWidget returns the subtree below this widget.
	ChildWidget() Widget

	// UpdateShouldNotify reports whether dependents must rebuild
	// after the widget was replaced by a new configuration.
	UpdateShouldNotify(oldWidget InheritedWidget) bool
}

// InheritedElement hosts an [InheritedWidget] and tracks the
// descendant elements that depend on it.
//
// When a descendant calls [BuildContext.DependOnInherited], it
// registers as a dependent of this element. When the widget is
// updated and [InheritedWidget.UpdateShouldNotify] returns true, all
// registered dependents are scheduled for rebuild.
//
// Dependents are never unregistered; an unmounted dependent is
// skipped by the build owner when its rebuild comes up. This
// over-notifies but never under-notifies.
type InheritedElement struct {
	elementBase
	child      Element
	dependents map[Element]struct{}
}

// NewInheritedElement creates an InheritedElement. The widget and
// build owner are set by the framework during inflation.
func NewInheritedElement() *InheritedElement {
	return &InheritedElement{
		dependents: make(map[Element]struct{}),
	}
}

func (e *InheritedElement) Mount(parent Element, slot any) {
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

func (e *InheritedElement) Update(newWidget Widget) {
	oldWidget := e.widget.(InheritedWidget)
	e.widget = newWidget
	e.notifyUpdated()

	if newWidget.(InheritedWidget).UpdateShouldNotify(oldWidget) {
		for dependent := range e.dependents {
			notifyDependent(dependent)
		}
	}
	e.MarkNeedsBuild()
}

func (e *InheritedElement) Unmount() {
	e.mounted = false
	e.notifyUnmounted()
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	e.dependents = nil
}

func (e *InheritedElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	inherited := e.widget.(InheritedWidget)
	e.child = updateChild(e.child, inherited.ChildWidget(), e, e.buildOwner, nil)
}

func (e *InheritedElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// RenderObject returns the render object from the child element.
func (e *InheritedElement) RenderObject() layout.RenderObject {
	if e.child == nil {
		return nil
	}
	if child, ok := e.child.(interface{ RenderObject() layout.RenderObject }); ok {
		return child.RenderObject()
	}
	return nil
}

// AddDependent registers an element as depending on this inherited
// widget.
func (e *InheritedElement) AddDependent(dependent Element) {
	if e.dependents == nil {
		e.dependents = make(map[Element]struct{})
	}
	e.dependents[dependent] = struct{}{}
}

// notifyDependent triggers DidChangeDependencies on the dependent element.
func notifyDependent(element Element) {
	// States get their dependency callback before the rebuild.
	if stateful, ok := element.(*StatefulElement); ok {
		if stateful.state != nil {
			stateful.state.DidChangeDependencies()
		}
		stateful.MarkNeedsBuild()
		return
	}
	element.MarkNeedsBuild()
}

// dependOnInheritedImpl walks up the element tree to the nearest
// InheritedElement whose widget has the requested type, registers the
// caller as a dependent, and returns the widget.
func dependOnInheritedImpl(element Element, inheritedType reflect.Type) any {
	var current Element
	if base, ok := element.(interface{ parentElement() Element }); ok {
		current = base.parentElement()
	}

	for current != nil {
		if inherited, ok := current.(*InheritedElement); ok {
			widgetType := reflect.TypeOf(inherited.widget)
			if widgetType == inheritedType || (widgetType.Kind() == reflect.Pointer && widgetType.Elem() == inheritedType) {
				inherited.AddDependent(element)
				return inherited.widget
			}
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

// InheritedProvider provides a value to descendants without defining
// a custom inherited widget type:
//
//	core.InheritedProvider[*Session]{
//	    Value: session,
//	    Child: AppRoot{},
//	}
//
// Descendants read it with [ProviderOf].
type InheritedProvider[T comparable] struct {
	InheritedBase
	Value T
	Child Widget
}

func (p InheritedProvider[T]) ChildWidget() Widget { return p.Child }

func (p InheritedProvider[T]) UpdateShouldNotify(old InheritedWidget) bool {
	previous, ok := old.(InheritedProvider[T])
	if !ok {
		return true
	}
	return p.Value != previous.Value
}

// ProviderOf returns the value from the nearest InheritedProvider[T]
// ancestor, registering a dependency so the caller rebuilds when the
// value changes. The second result is false when no provider exists.
func ProviderOf[T comparable](ctx BuildContext) (T, bool) {
	var zero T
	result := ctx.DependOnInherited(reflect.TypeOf((*InheritedProvider[T])(nil)).Elem())
	if result == nil {
		return zero, false
	}
	provider, ok := result.(InheritedProvider[T])
	if !ok {
		return zero, false
	}
	return provider.Value, true
}
