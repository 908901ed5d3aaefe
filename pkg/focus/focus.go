// Package focus tracks which node receives key input and implements
// linear and directional focus traversal over the cell grid.
package focus

import (
	"math"

	"github.com/go-drift/tide/pkg/geometry"
)

// RectProvider is implemented by render objects that can report their
// on-screen rectangle for directional traversal.
type RectProvider interface {
	FocusRect() geometry.Rect
}

// Direction is a traversal direction on the cell grid.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

// Node is a focusable participant registered with a Manager.
type Node struct {
	// CanRequestFocus gates whether the node may receive focus at all.
	CanRequestFocus bool

	// SkipTraversal removes the node from Tab-style and directional
	// traversal; it can still be focused explicitly.
	SkipTraversal bool

	// OnFocusChange is called when the node gains or loses focus.
	OnFocusChange func(hasFocus bool)

	// Rect provides geometry for directional traversal. Nodes without
	// geometry fall back to linear traversal order.
	Rect RectProvider

	// Owner is an opaque back reference to whatever registered the
	// node. The runtime stores the element here to find the keymap
	// bubble path for the focused node.
	Owner any

	hasFocus bool
}

// HasFocus reports whether this node holds the primary focus.
func (n *Node) HasFocus() bool {
	return n.hasFocus
}

func (n *Node) focusable() bool {
	return n != nil && n.CanRequestFocus
}

func (n *Node) traversable() bool {
	return n.focusable() && !n.SkipTraversal
}

func (n *Node) setFocus(hasFocus bool) {
	if n.hasFocus == hasFocus {
		return
	}
	n.hasFocus = hasFocus
	if n.OnFocusChange != nil {
		n.OnFocusChange(hasFocus)
	}
}

// scope groups the nodes registered while it is on top of the stack.
// Pushing a scope (e.g. opening a modal) confines traversal to nodes
// registered inside it; popping restores the focus that was active
// when the scope was pushed.
type scope struct {
	nodes    []*Node
	restore  *Node
}

func (s *scope) remove(node *Node) {
	for i, candidate := range s.nodes {
		if candidate == node {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			return
		}
	}
}

// Manager owns the focus state for one runtime instance. It is not
// safe for concurrent use; all calls happen on the UI goroutine.
type Manager struct {
	scopes  []*scope
	primary *Node
}

// NewManager returns a manager with a single root scope and nothing
// focused.
func NewManager() *Manager {
	return &Manager{scopes: []*scope{{}}}
}

func (m *Manager) top() *scope {
	return m.scopes[len(m.scopes)-1]
}

// Register adds a node to the current scope in traversal order.
// Nodes register on mount, so traversal order follows tree order.
func (m *Manager) Register(node *Node) {
	m.top().nodes = append(m.top().nodes, node)
}

// Unregister removes a node from whichever scope holds it and drops
// focus if the node was focused.
func (m *Manager) Unregister(node *Node) {
	for _, s := range m.scopes {
		s.remove(node)
		if s.restore == node {
			s.restore = nil
		}
	}
	if m.primary == node {
		m.setPrimary(nil)
	}
}

// Primary returns the currently focused node, or nil.
func (m *Manager) Primary() *Node {
	return m.primary
}

// RequestFocus gives the node primary focus if it accepts focus.
func (m *Manager) RequestFocus(node *Node) {
	if !node.focusable() {
		return
	}
	m.setPrimary(node)
}

// Unfocus clears focus if the node currently holds it.
func (m *Manager) Unfocus(node *Node) {
	if m.primary == node {
		m.setPrimary(nil)
	}
}

// PushScope opens a new focus scope. Until the scope is popped,
// registration and traversal are confined to it. The focus active at
// push time is remembered and restored on pop.
func (m *Manager) PushScope() {
	m.top().restore = m.primary
	m.scopes = append(m.scopes, &scope{})
	m.setPrimary(nil)
}

// PopScope closes the top scope. Popping the root scope is a no-op.
func (m *Manager) PopScope() {
	if len(m.scopes) == 1 {
		return
	}
	closing := m.top()
	m.scopes = m.scopes[:len(m.scopes)-1]
	for _, node := range closing.nodes {
		if m.primary == node {
			m.setPrimary(nil)
		}
	}
	if restore := m.top().restore; restore.focusable() {
		m.setPrimary(restore)
	}
	m.top().restore = nil
}

// FocusFirst focuses the first traversable node in the current scope.
func (m *Manager) FocusFirst() bool {
	for _, node := range m.top().nodes {
		if node.traversable() {
			m.setPrimary(node)
			return true
		}
	}
	return false
}

// MoveFocus moves focus by delta positions in traversal order,
// wrapping at the ends and skipping untraversable nodes. With nothing
// focused it behaves like FocusFirst for positive delta and focuses
// the last traversable node for negative delta.
func (m *Manager) MoveFocus(delta int) bool {
	nodes := m.top().nodes
	if len(nodes) == 0 || delta == 0 {
		return false
	}

	current := -1
	for i, node := range nodes {
		if node == m.primary {
			current = i
			break
		}
	}
	if current == -1 && delta < 0 {
		current = 0
	}

	count := len(nodes)
	for step := 1; step <= count; step++ {
		candidate := nodes[wrapIndex(current+delta*step, count)]
		if candidate.traversable() {
			m.setPrimary(candidate)
			return true
		}
	}
	return false
}

// FocusInDirection moves focus to the nearest node in the given
// direction, judged by cell geometry. Nodes without geometry, and
// directions with no candidate, fall back to linear traversal.
func (m *Manager) FocusInDirection(direction Direction) bool {
	current := m.primary
	if current == nil {
		return m.FocusFirst()
	}

	currentRect, ok := nodeRect(current)
	if !ok {
		return m.MoveFocus(linearDelta(direction))
	}

	var best *Node
	bestScore := math.MaxInt
	for _, node := range m.top().nodes {
		if node == current || !node.traversable() {
			continue
		}
		rect, ok := nodeRect(node)
		if !ok {
			continue
		}
		if !inDirection(currentRect, rect, direction) {
			continue
		}
		if score := directionalScore(currentRect, rect, direction); score < bestScore {
			bestScore = score
			best = node
		}
	}

	if best != nil {
		m.setPrimary(best)
		return true
	}
	return m.MoveFocus(linearDelta(direction))
}

func (m *Manager) setPrimary(node *Node) {
	if m.primary == node {
		return
	}
	if m.primary != nil {
		m.primary.setFocus(false)
	}
	m.primary = node
	if node != nil {
		node.setFocus(true)
	}
}

func nodeRect(node *Node) (geometry.Rect, bool) {
	if node.Rect == nil {
		return geometry.Rect{}, false
	}
	rect := node.Rect.FocusRect()
	return rect, !rect.IsEmpty()
}

func linearDelta(direction Direction) int {
	if direction == DirectionUp || direction == DirectionLeft {
		return -1
	}
	return 1
}

func wrapIndex(index, count int) int {
	index %= count
	if index < 0 {
		index += count
	}
	return index
}

func center(r geometry.Rect) (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

func inDirection(source, target geometry.Rect, direction Direction) bool {
	sx, sy := center(source)
	tx, ty := center(target)
	switch direction {
	case DirectionUp:
		return ty < sy
	case DirectionDown:
		return ty > sy
	case DirectionLeft:
		return tx < sx
	case DirectionRight:
		return tx > sx
	}
	return false
}

// directionalScore ranks a candidate: main-axis distance plus a
// doubled cross-axis penalty, so aligned nodes beat nearer diagonal
// ones. Lower is better.
func directionalScore(source, target geometry.Rect, direction Direction) int {
	sx, sy := center(source)
	tx, ty := center(target)

	var primary, cross int
	switch direction {
	case DirectionUp, DirectionDown:
		primary = abs(ty - sy)
		cross = abs(tx - sx)
	case DirectionLeft, DirectionRight:
		primary = abs(tx - sx)
		cross = abs(ty - sy)
	}
	return primary + cross*2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
