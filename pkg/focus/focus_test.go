package focus

import (
	"testing"

	"github.com/go-drift/tide/pkg/geometry"
)

func focusableNode() *Node {
	return &Node{CanRequestFocus: true}
}

type staticRect geometry.Rect

func (r staticRect) FocusRect() geometry.Rect { return geometry.Rect(r) }

func nodeAt(x, y, w, h int) *Node {
	return &Node{
		CanRequestFocus: true,
		Rect:            staticRect{X: x, Y: y, Width: w, Height: h},
	}
}

func TestManager_RequestFocus(t *testing.T) {
	m := NewManager()
	a := focusableNode()
	b := focusableNode()
	m.Register(a)
	m.Register(b)

	m.RequestFocus(a)
	if m.Primary() != a || !a.HasFocus() {
		t.Error("a should hold focus")
	}

	m.RequestFocus(b)
	if m.Primary() != b {
		t.Error("b should hold focus")
	}
	if a.HasFocus() {
		t.Error("a should have lost focus")
	}
}

func TestManager_RequestFocus_RefusesNonFocusable(t *testing.T) {
	m := NewManager()
	disabled := &Node{}
	m.Register(disabled)

	m.RequestFocus(disabled)
	if m.Primary() != nil {
		t.Error("a node without CanRequestFocus must not take focus")
	}
}

func TestManager_FocusChangeCallbacks(t *testing.T) {
	m := NewManager()
	var events []string
	a := focusableNode()
	a.OnFocusChange = func(hasFocus bool) {
		if hasFocus {
			events = append(events, "a+")
		} else {
			events = append(events, "a-")
		}
	}
	b := focusableNode()
	b.OnFocusChange = func(hasFocus bool) {
		if hasFocus {
			events = append(events, "b+")
		}
	}
	m.Register(a)
	m.Register(b)

	m.RequestFocus(a)
	m.RequestFocus(b)

	// The old node is notified of the loss before the new node gains.
	want := []string{"a+", "a-", "b+"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
}

func TestManager_MoveFocus_WrapsAndSkips(t *testing.T) {
	m := NewManager()
	a := focusableNode()
	skipped := &Node{CanRequestFocus: true, SkipTraversal: true}
	disabled := &Node{}
	b := focusableNode()
	m.Register(a)
	m.Register(skipped)
	m.Register(disabled)
	m.Register(b)

	if !m.MoveFocus(1) {
		t.Fatal("MoveFocus should succeed")
	}
	if m.Primary() != a {
		t.Error("first move should land on a")
	}

	m.MoveFocus(1)
	if m.Primary() != b {
		t.Error("second move should skip to b")
	}

	m.MoveFocus(1)
	if m.Primary() != a {
		t.Error("third move should wrap to a")
	}

	m.MoveFocus(-1)
	if m.Primary() != b {
		t.Error("backward move should wrap to b")
	}
}

func TestManager_MoveFocus_BackwardFromNothing(t *testing.T) {
	m := NewManager()
	a := focusableNode()
	b := focusableNode()
	m.Register(a)
	m.Register(b)

	m.MoveFocus(-1)
	if m.Primary() != b {
		t.Error("backward move with nothing focused should land on the last node")
	}
}

func TestManager_MoveFocus_NoCandidates(t *testing.T) {
	m := NewManager()
	m.Register(&Node{})

	if m.MoveFocus(1) {
		t.Error("MoveFocus should fail with no traversable nodes")
	}
	if m.MoveFocus(0) {
		t.Error("MoveFocus(0) should be a no-op")
	}
}

func TestManager_Unregister_ClearsFocus(t *testing.T) {
	m := NewManager()
	a := focusableNode()
	m.Register(a)
	m.RequestFocus(a)

	m.Unregister(a)
	if m.Primary() != nil {
		t.Error("unregistering the focused node should clear focus")
	}
	if a.HasFocus() {
		t.Error("the node should be notified of the loss")
	}
	if m.MoveFocus(1) {
		t.Error("no nodes should remain")
	}
}

func TestManager_FocusInDirection_Grid(t *testing.T) {
	// 2x2 grid of 10x5 panes:
	//   a b
	//   c d
	m := NewManager()
	a := nodeAt(0, 0, 10, 5)
	b := nodeAt(10, 0, 10, 5)
	c := nodeAt(0, 5, 10, 5)
	d := nodeAt(10, 5, 10, 5)
	for _, n := range []*Node{a, b, c, d} {
		m.Register(n)
	}

	m.RequestFocus(a)

	m.FocusInDirection(DirectionRight)
	if m.Primary() != b {
		t.Fatalf("right from a should reach b, got %+v", m.Primary())
	}

	m.FocusInDirection(DirectionDown)
	if m.Primary() != d {
		t.Fatalf("down from b should reach d, got %+v", m.Primary())
	}

	m.FocusInDirection(DirectionLeft)
	if m.Primary() != c {
		t.Fatalf("left from d should reach c, got %+v", m.Primary())
	}

	m.FocusInDirection(DirectionUp)
	if m.Primary() != a {
		t.Fatalf("up from c should reach a, got %+v", m.Primary())
	}
}

func TestManager_FocusInDirection_PrefersAligned(t *testing.T) {
	m := NewManager()
	source := nodeAt(0, 0, 10, 3)
	aligned := nodeAt(0, 10, 10, 3)  // straight down, further away
	diagonal := nodeAt(20, 4, 10, 3) // nearer but far off axis
	m.Register(source)
	m.Register(aligned)
	m.Register(diagonal)

	m.RequestFocus(source)
	m.FocusInDirection(DirectionDown)

	if m.Primary() != aligned {
		t.Error("the aligned node should beat the nearer diagonal one")
	}
}

func TestManager_FocusInDirection_FallsBackToLinear(t *testing.T) {
	m := NewManager()
	a := focusableNode() // no geometry
	b := focusableNode()
	m.Register(a)
	m.Register(b)

	m.RequestFocus(a)
	if !m.FocusInDirection(DirectionDown) {
		t.Fatal("should fall back to linear traversal")
	}
	if m.Primary() != b {
		t.Error("linear fallback should reach b")
	}
}

func TestManager_FocusInDirection_NothingFocused(t *testing.T) {
	m := NewManager()
	a := nodeAt(0, 0, 5, 1)
	m.Register(a)

	m.FocusInDirection(DirectionDown)
	if m.Primary() != a {
		t.Error("with nothing focused, direction moves should focus the first node")
	}
}

func TestManager_Scopes(t *testing.T) {
	m := NewManager()
	outer := focusableNode()
	m.Register(outer)
	m.RequestFocus(outer)

	m.PushScope()
	if m.Primary() != nil {
		t.Fatal("pushing a scope should clear focus")
	}

	inner := focusableNode()
	m.Register(inner)

	// Traversal is confined to the new scope.
	m.MoveFocus(1)
	if m.Primary() != inner {
		t.Fatalf("traversal should stay inside the scope, got %+v", m.Primary())
	}

	m.PopScope()
	if m.Primary() != outer {
		t.Error("popping the scope should restore the previous focus")
	}
	if inner.HasFocus() {
		t.Error("the scoped node should have lost focus")
	}
}

func TestManager_PopRootScope(t *testing.T) {
	m := NewManager()
	a := focusableNode()
	m.Register(a)
	m.RequestFocus(a)

	m.PopScope()
	if m.Primary() != a {
		t.Error("popping the root scope should be a no-op")
	}
}

func TestNode_OwnerRoundTrip(t *testing.T) {
	type owner struct{ id int }
	n := &Node{CanRequestFocus: true, Owner: &owner{id: 7}}

	got, ok := n.Owner.(*owner)
	if !ok || got.id != 7 {
		t.Error("Owner should carry the registered value")
	}
}
