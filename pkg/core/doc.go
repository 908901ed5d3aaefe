// Package core provides the widget and element framework interfaces and lifecycle.
//
// This package defines the foundational types for building declarative
// terminal interfaces: Widget, Element, State, and BuildContext. Widgets
// describe what the screen should look like; the framework reconciles the
// description against the live element tree and updates only what changed.
//
// # Core Types
//
// Widget is an immutable description of part of the UI. Widgets are
// lightweight configuration values that can be rebuilt every frame without
// performance concerns.
//
// Element is the instantiation of a Widget at a particular location in the
// tree. Elements carry identity: a child matched by type and key across
// rebuilds keeps its element, and with it any state, focus, and render
// objects.
//
// # Stateful Widgets
//
// For widgets that need mutable state, embed StateBase in your state struct:
//
//	type counterState struct {
//	    core.StateBase
//	    count int
//	}
//
//	func (s *counterState) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.Text{Content: fmt.Sprintf("Count: %d", s.count)}
//	}
//
// Call SetState to mutate and schedule a rebuild:
//
//	s.SetState(func() { s.count++ })
//
// # State Management
//
// Managed holds a value owned by one state and rebuilds on change:
//
//	s.count = core.NewManaged(s, 0)
//	s.count.Set(s.count.Value() + 1)
//
// Observable provides thread-safe reactive values that can be shared
// between widgets and updated from background goroutines:
//
//	counter := core.NewObservable(0)
//	core.UseObservable(s, counter)
//
// # Hooks
//
// UseController, UseListenable, and UseObservable manage resources and
// subscriptions with automatic cleanup on disposal.
//
// # Constructor Conventions
//
// Controllers and services use NewX() constructors returning pointers:
//
//	ctrl := widgets.NewTextInputController("")
//
// This distinguishes long-lived, mutable objects (controllers) from
// immutable configuration values (widgets, which use struct literals).
package core
