package core

import "reflect"

// Widget is an immutable description of one piece of the interface.
// Widgets are cheap configuration values; the framework turns them
// into elements which carry identity and state across frames.
type Widget interface {
	// CreateElement instantiates the element that will manage this
	// widget's position in the tree.
	CreateElement() Element

	// Key distinguishes widgets of the same type from their siblings.
	// Reconciliation matches a widget to an existing element when the
	// types match and the keys are equal, so a keyed child keeps its
	// element and state when the list around it reorders. A nil key
	// means positional identity.
	Key() any
}

// StatelessWidget composes other widgets from its own immutable
// configuration.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// StatefulWidget owns mutable state that survives rebuilds. The
// widget itself stays immutable; CreateState is called once when the
// element mounts and the State persists until unmount.
type StatefulWidget interface {
	Widget
	CreateState() State
}

// State is the mutable companion of a StatefulWidget. Embed
// [StateBase] to get SetState and lifecycle defaults.
type State interface {
	// InitState runs once after the state is attached to its element,
	// before the first Build.
	InitState()

	// Build returns the widget subtree for the current state.
	Build(ctx BuildContext) Widget

	// DidChangeDependencies runs when an inherited widget this state
	// depends on changes.
	DidChangeDependencies()

	// DidUpdateWidget runs when the element receives a new widget of
	// the same type. The previous widget is passed for comparison.
	DidUpdateWidget(oldWidget StatefulWidget)

	// Dispose releases resources. Called when the element unmounts.
	Dispose()
}

// BuildContext gives build methods access to the element tree at the
// position of the widget being built. Elements implement it.
type BuildContext interface {
	// Widget returns the widget this context is building.
	Widget() Widget

	// FindAncestor walks toward the root and returns the first
	// ancestor element the predicate accepts, or nil.
	FindAncestor(predicate func(Element) bool) Element

	// DependOnInherited registers a dependency on the nearest
	// inherited widget of the given type and returns that widget, or
	// nil when no ancestor of the type exists. The depending element
	// rebuilds when the inherited widget changes.
	DependOnInherited(inheritedType reflect.Type) any
}

// Element is the instantiation of a Widget at a particular location
// in the tree. Elements own the lifecycle: they mount, receive
// updated widgets, rebuild their children, and unmount.
type Element interface {
	Widget() Widget
	Mount(parent Element, slot any)
	Update(newWidget Widget)
	Unmount()
	RebuildIfNeeded()
	MarkNeedsBuild()
	Depth() int
	Slot() any
	UpdateSlot(newSlot any)
	VisitChildren(visitor func(Element) bool)
}

// Disposable is anything holding resources that must be released
// explicitly.
type Disposable interface {
	Dispose()
}
