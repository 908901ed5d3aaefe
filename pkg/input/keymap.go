package input

import "fmt"

// ShouldRender reports whether handled input requires a redraw.
// Merging two flags is logical OR: any handler requesting a repaint
// forces one.
type ShouldRender bool

// Or merges two redraw flags.
func (s ShouldRender) Or(other ShouldRender) ShouldRender {
	return s || other
}

// Handler runs when a binding's full sequence has been entered. It
// receives the matched sequence (useful for any-rune bindings) and
// returns whether the UI should redraw.
type Handler func(keys []Chord) ShouldRender

// Binding associates a key sequence with a handler. A nil Sequence
// marks the any-rune fallback binding.
type Binding struct {
	Name     string
	Sequence []Chord
	Handler  Handler
}

// Query is the result of looking up a pending sequence in a keymap.
type Query struct {
	// Binding is the exact match for the sequence, or nil.
	Binding *Binding
	// Prefix lists the bindings the sequence is a proper prefix of.
	Prefix []*Binding
}

// IsMatch reports whether the sequence exactly matched a binding.
func (q Query) IsMatch() bool { return q.Binding != nil }

// IsPrefix reports whether the sequence can still extend to a binding.
func (q Query) IsPrefix() bool { return len(q.Prefix) > 0 }

type keymapNode struct {
	children map[Chord]*keymapNode
	match    *Binding
	prefixOf []*Binding
}

// Keymap stores key bindings as a prefix tree. Every proper prefix of
// a registered sequence is tracked so the dispatcher can tell a live
// multi-chord prefix from a dead one. Registering a sequence that
// overlaps an existing binding panics: ambiguous maps are programmer
// errors, caught at registration time.
//
// Keymaps are built on the UI goroutine and queried during dispatch;
// they are not safe for concurrent mutation.
type Keymap struct {
	root     keymapNode
	anyRune  *Binding
	bindings []*Binding
}

// NewKeymap returns an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{}
}

// Bind registers a handler for a key pattern such as "C-x C-f", "g g"
// or "RET" (ParseSequence notation). The binding is named after the
// pattern. Bind panics on a malformed pattern or an overlapping
// binding.
func (k *Keymap) Bind(pattern string, handler Handler) *Binding {
	return k.BindNamed(pattern, pattern, handler)
}

// BindNamed is Bind with an explicit binding name, shown in overlap
// panics and binding listings.
func (k *Keymap) BindNamed(name, pattern string, handler Handler) *Binding {
	seq, err := ParseSequence(pattern)
	if err != nil {
		panic(err.Error())
	}
	return k.BindChords(name, seq, handler)
}

// BindChords registers a handler for an already-parsed sequence.
func (k *Keymap) BindChords(name string, seq []Chord, handler Handler) *Binding {
	if len(seq) == 0 {
		panic("input: cannot bind an empty key sequence")
	}
	binding := &Binding{Name: name, Sequence: seq, Handler: handler}

	// Mark every proper prefix, panicking when a prefix lands on an
	// existing complete binding.
	node := &k.root
	for _, chord := range seq {
		if node.match != nil {
			panicOverlap(binding, node.match)
		}
		node.prefixOf = append(node.prefixOf, binding)
		if node.children == nil {
			node.children = make(map[Chord]*keymapNode)
		}
		child, ok := node.children[chord]
		if !ok {
			child = &keymapNode{}
			node.children[chord] = child
		}
		node = child
	}
	if node.match != nil {
		panicOverlap(binding, node.match)
	}
	if len(node.prefixOf) > 0 {
		panicOverlap(binding, node.prefixOf[0])
	}
	node.match = binding

	k.bindings = append(k.bindings, binding)
	return binding
}

// BindAny registers the fallback handler for any single rune chord
// without modifiers. Complete single-rune bindings and live prefixes
// take priority over the fallback. Panics if a fallback is already
// registered.
func (k *Keymap) BindAny(name string, handler Handler) *Binding {
	if k.anyRune != nil {
		panic(fmt.Sprintf("input: any-rune binding %q overlaps existing %q", name, k.anyRune.Name))
	}
	binding := &Binding{Name: name, Handler: handler}
	k.anyRune = binding
	k.bindings = append(k.bindings, binding)
	return binding
}

// CheckSequence looks up a pending chord sequence. The result is an
// exact match, a live prefix, or empty. A bare rune that matches
// nothing else falls back to the any-rune binding.
func (k *Keymap) CheckSequence(seq []Chord) Query {
	node := &k.root
	for _, chord := range seq {
		child, ok := node.children[chord]
		if !ok {
			node = nil
			break
		}
		node = child
	}
	if node != nil {
		if node.match != nil {
			return Query{Binding: node.match}
		}
		if len(node.prefixOf) > 0 {
			return Query{Prefix: node.prefixOf}
		}
	}
	if k.anyRune != nil && len(seq) == 1 && seq[0].Key == KeyRune && seq[0].Mod == ModNone {
		return Query{Binding: k.anyRune}
	}
	return Query{}
}

// IsEmpty reports whether no bindings are registered.
func (k *Keymap) IsEmpty() bool {
	return len(k.bindings) == 0
}

// Bindings returns all bindings in registration order.
func (k *Keymap) Bindings() []*Binding {
	return k.bindings
}

func panicOverlap(next, existing *Binding) {
	panic(fmt.Sprintf(
		"input: binding %q (%s) is ambiguous: it overlaps binding %q (%s)",
		next.Name, FormatSequence(next.Sequence),
		existing.Name, FormatSequence(existing.Sequence),
	))
}

// KeymapProvider is implemented by widget states (or widgets) that
// register key bindings. The runtime collects keymaps along the focus
// path before dispatching each key event.
type KeymapProvider interface {
	Keymap() *Keymap
}
