package input

import "github.com/go-drift/tide/pkg/geometry"

// Event is an input event delivered by a backend. The concrete types
// are KeyEvent and ResizeEvent.
type Event interface {
	isEvent()
}

// KeyEvent carries one decoded keystroke.
type KeyEvent struct {
	Chord Chord
}

func (KeyEvent) isEvent() {}

// ResizeEvent reports that the surface changed size. The runtime also
// polls the backend's size each tick; the event exists to force an
// immediate full repaint.
type ResizeEvent struct {
	Size geometry.Size
}

func (ResizeEvent) isEvent() {}
