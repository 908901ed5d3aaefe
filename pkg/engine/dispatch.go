package engine

import (
	"time"

	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/input"
)

// Tickable is implemented by widget states that want periodic time.
// OnTick is polled on every tick while the element is mounted;
// returning true requests a redraw. App.Run ticks at the configured
// tick interval even without input, so an animation advances at that
// cadence at most.
type Tickable interface {
	OnTick(now time.Time) bool
}

// keymapPath assembles the keymaps a key event is offered to, in
// priority order. With a focused node, the path is the focused
// element's subtree innermost first, then its ancestors up to the
// root, so the deepest widget under focus sees the key first and
// unhandled keys bubble out. Without focus the whole tree
// participates, innermost first.
func (a *App) keymapPath() []*input.Keymap {
	var path []*input.Keymap
	if node := a.focus.Primary(); node != nil {
		if element, ok := node.Owner.(core.Element); ok {
			collectKeymaps(element, &path)
			for parent := parentOf(element); parent != nil; parent = parentOf(parent) {
				appendKeymap(parent, &path)
			}
			return path
		}
	}
	if a.root != nil {
		collectKeymaps(a.root, &path)
	}
	return path
}

// collectKeymaps walks a subtree post-order, so children contribute
// before their parents.
func collectKeymaps(element core.Element, path *[]*input.Keymap) {
	element.VisitChildren(func(child core.Element) bool {
		collectKeymaps(child, path)
		return true
	})
	appendKeymap(element, path)
}

func appendKeymap(element core.Element, path *[]*input.Keymap) {
	provider, ok := keymapProviderOf(element)
	if !ok {
		return
	}
	// Providers gate their keymap on focus or mode by returning nil.
	if keymap := provider.Keymap(); keymap != nil && !keymap.IsEmpty() {
		*path = append(*path, keymap)
	}
}

// keymapProviderOf finds a keymap on the element or, for stateful
// elements, on the state.
func keymapProviderOf(element core.Element) (input.KeymapProvider, bool) {
	if provider, ok := element.(input.KeymapProvider); ok {
		return provider, true
	}
	if stateful, ok := element.(*core.StatefulElement); ok {
		if provider, ok := stateful.State().(input.KeymapProvider); ok {
			return provider, true
		}
	}
	return nil, false
}

func parentOf(element core.Element) core.Element {
	if based, ok := element.(interface{ Parent() core.Element }); ok {
		return based.Parent()
	}
	return nil
}

// pollTickables offers the current time to every mounted Tickable
// state and reports whether any of them wants a redraw.
func (a *App) pollTickables(now time.Time) input.ShouldRender {
	if a.root == nil {
		return false
	}
	redraw := input.ShouldRender(false)
	var walk func(element core.Element)
	walk = func(element core.Element) {
		if stateful, ok := element.(*core.StatefulElement); ok {
			if tickable, ok := stateful.State().(Tickable); ok {
				redraw = redraw.Or(input.ShouldRender(tickable.OnTick(now)))
			}
		}
		element.VisitChildren(func(child core.Element) bool {
			walk(child)
			return true
		})
	}
	walk(a.root)
	return redraw
}
