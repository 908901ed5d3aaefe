package input

import "time"

// DefaultChordTimeout bounds how long a pending multi-chord prefix is
// held before it is silently discarded.
const DefaultChordTimeout = 500 * time.Millisecond

// Dispatcher matches incoming chords against the keymaps along the
// focus path. Matching starts at the focused leaf and bubbles toward
// the root; the first match wins and stops bubbling. Chords accumulate
// across calls while any keymap on the path reports a live prefix;
// an expired or dead prefix is discarded without error.
//
// Dispatcher is not safe for concurrent use; the runtime calls it from
// the UI goroutine only.
type Dispatcher struct {
	pending  []Chord
	deadline time.Time
	timeout  time.Duration
	now      func() time.Time
}

// NewDispatcher returns a dispatcher with the default chord timeout.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		timeout: DefaultChordTimeout,
		now:     time.Now,
	}
}

// SetTimeout replaces the pending-chord timeout.
func (d *Dispatcher) SetTimeout(timeout time.Duration) {
	d.timeout = timeout
}

// SetClock replaces the time source. Tests inject a fake clock here.
func (d *Dispatcher) SetClock(now func() time.Time) {
	d.now = now
}

// Pending returns the chords accumulated toward a multi-chord binding.
func (d *Dispatcher) Pending() []Chord {
	return d.pending
}

// Reset discards any pending chords.
func (d *Dispatcher) Reset() {
	d.pending = d.pending[:0]
}

// Dispatch appends the chord to the pending sequence and tries each
// keymap on the focus path in order, leaf first. An exact match runs
// its handler with the full sequence and clears the pending state. If
// no keymap matches but at least one reports a live prefix, the
// sequence is held until the timeout. Otherwise the sequence is
// discarded.
func (d *Dispatcher) Dispatch(chord Chord, path []*Keymap) ShouldRender {
	now := d.now()
	if len(d.pending) > 0 && now.After(d.deadline) {
		d.pending = d.pending[:0]
	}
	d.pending = append(d.pending, chord)

	livePrefix := false
	for _, keymap := range path {
		if keymap == nil || keymap.IsEmpty() {
			continue
		}
		query := keymap.CheckSequence(d.pending)
		if query.IsMatch() {
			keys := make([]Chord, len(d.pending))
			copy(keys, d.pending)
			d.pending = d.pending[:0]
			if query.Binding.Handler == nil {
				return false
			}
			return query.Binding.Handler(keys)
		}
		if query.IsPrefix() {
			livePrefix = true
		}
	}

	if livePrefix {
		d.deadline = now.Add(d.timeout)
	} else {
		d.pending = d.pending[:0]
	}
	return false
}
