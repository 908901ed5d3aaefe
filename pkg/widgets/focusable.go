package widgets

import (
	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/focus"
	"github.com/go-drift/tide/pkg/geometry"
)

// Focusable registers its subtree as a focus target and rebuilds with
// the current focus state. The Builder receives true while the node
// holds primary focus, so focus-aware widgets plug in directly:
//
//	widgets.Focusable{Builder: func(ctx core.BuildContext, focused bool) core.Widget {
//		return widgets.TextInput{Focused: focused}
//	}}
//
// The node registers with the [focus.Manager] provided by the runtime
// through the element tree. Outside a running app (no manager in
// scope) the Builder always sees false.
type Focusable struct {
	core.StatefulBase

	// Builder produces the subtree for the current focus state.
	Builder func(ctx core.BuildContext, focused bool) core.Widget

	// Autofocus claims primary focus when the node registers.
	Autofocus bool

	// SkipTraversal keeps the node out of tab and arrow traversal.
	// It can still be focused programmatically.
	SkipTraversal bool

	// OnFocusChange is called after focus moves onto or off the node.
	OnFocusChange func(focused bool)
}

func (f Focusable) CreateState() core.State {
	return &focusableState{}
}

type focusableState struct {
	core.StateBase
	manager *focus.Manager
	node    *focus.Node
	focused bool
}

func (s *focusableState) widget() Focusable {
	return s.Element().Widget().(Focusable)
}

// Registration happens on first build rather than InitState because
// the provider lookup needs a BuildContext.
func (s *focusableState) register(ctx core.BuildContext) {
	if s.node != nil {
		return
	}
	manager, ok := core.ProviderOf[*focus.Manager](ctx)
	if !ok {
		return
	}
	s.manager = manager
	s.node = &focus.Node{
		CanRequestFocus: true,
		SkipTraversal:   s.widget().SkipTraversal,
		Rect:            s,
		Owner:           s.Element(),
		OnFocusChange: func(hasFocus bool) {
			s.SetState(func() { s.focused = hasFocus })
			if fn := s.widget().OnFocusChange; fn != nil {
				fn(hasFocus)
			}
		},
	}
	manager.Register(s.node)
	s.OnDispose(func() {
		manager.Unregister(s.node)
	})
	if s.widget().Autofocus {
		manager.RequestFocus(s.node)
	}
}

// Node exposes the registered focus node, or nil before first build.
func (s *focusableState) Node() *focus.Node {
	return s.node
}

// FocusRect reports the subtree's screen rectangle for directional
// traversal. Valid after layout; empty before.
func (s *focusableState) FocusRect() geometry.Rect {
	element := s.Element()
	if element == nil {
		return geometry.Rect{}
	}
	renderObject := element.RenderObject()
	if renderObject == nil {
		return geometry.Rect{}
	}
	return geometry.RectOf(core.GlobalOffsetOf(element), renderObject.Size())
}

func (s *focusableState) DidUpdateWidget(oldWidget core.StatefulWidget) {
	if s.node == nil {
		return
	}
	old, ok := oldWidget.(Focusable)
	if !ok {
		return
	}
	w := s.widget()
	s.node.SkipTraversal = w.SkipTraversal
	if w.Autofocus && !old.Autofocus {
		s.manager.RequestFocus(s.node)
	}
}

func (s *focusableState) Build(ctx core.BuildContext) core.Widget {
	s.register(ctx)
	w := s.widget()
	if w.Builder == nil {
		return SizedBox{}
	}
	return w.Builder(ctx, s.focused)
}
