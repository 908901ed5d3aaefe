// Package testbed provides small widgets used by the testing
// framework's own tests.
package testbed

import (
	"strconv"
	"time"

	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/input"
	"github.com/go-drift/tide/pkg/widgets"
)

// Counter shows a number and adjusts it with the + and - keys.
type Counter struct {
	core.StatefulBase
	Initial  int
	OnChange func(count int)
}

func (Counter) CreateState() core.State { return &counterState{} }

type counterState struct {
	core.StateBase
	keymap *input.Keymap
	count  int
}

func (s *counterState) widget() Counter {
	return s.Element().Widget().(Counter)
}

func (s *counterState) InitState() {
	s.count = s.widget().Initial
	s.keymap = input.NewKeymap()
	s.keymap.Bind("+", s.add(1))
	s.keymap.Bind("-", s.add(-1))
}

func (s *counterState) add(delta int) input.Handler {
	return func([]input.Chord) input.ShouldRender {
		s.SetState(func() { s.count += delta })
		if fn := s.widget().OnChange; fn != nil {
			fn(s.count)
		}
		return true
	}
}

func (s *counterState) Keymap() *input.Keymap { return s.keymap }

func (s *counterState) Build(ctx core.BuildContext) core.Widget {
	return widgets.Text{Content: strconv.Itoa(s.count)}
}

// Ticker advances one frame per tick until it has shown Frames frames.
// A negative Frames keeps it running forever, for timeout tests.
type Ticker struct {
	core.StatefulBase
	Frames int
}

func (Ticker) CreateState() core.State { return &tickerState{} }

type tickerState struct {
	core.StateBase
	frame int
}

func (s *tickerState) widget() Ticker {
	return s.Element().Widget().(Ticker)
}

func (s *tickerState) OnTick(now time.Time) bool {
	w := s.widget()
	if w.Frames >= 0 && s.frame >= w.Frames {
		return false
	}
	s.SetState(func() { s.frame++ })
	return true
}

func (s *tickerState) Build(ctx core.BuildContext) core.Widget {
	return widgets.Text{Content: "frame " + strconv.Itoa(s.frame)}
}

// Keyed gives its child an explicit reconciliation key.
type Keyed struct {
	core.StatelessBase
	K     any
	Child core.Widget
}

func (k Keyed) Key() any { return k.K }

func (k Keyed) Build(ctx core.BuildContext) core.Widget { return k.Child }
