package testing

import (
	"testing"
	"time"

	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/input"
	"github.com/go-drift/tide/pkg/widgets"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)

	if elapsed := clk.Now().Sub(start); elapsed != 100*time.Millisecond {
		t.Errorf("elapsed = %v, want 100ms", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)

	if !clk.Now().Equal(target) {
		t.Errorf("now = %v, want %v", clk.Now(), target)
	}
}

// prefixCatcher binds a two-chord sequence and counts completions.
type prefixCatcher struct {
	core.StatefulBase
	Hits *int
}

func (prefixCatcher) CreateState() core.State { return &prefixCatcherState{} }

type prefixCatcherState struct {
	core.StateBase
	keymap *input.Keymap
}

func (s *prefixCatcherState) InitState() {
	s.keymap = input.NewKeymap()
	s.keymap.Bind("g g", func([]input.Chord) input.ShouldRender {
		if hits := s.Element().Widget().(prefixCatcher).Hits; hits != nil {
			*hits++
		}
		return true
	})
}

func (s *prefixCatcherState) Keymap() *input.Keymap { return s.keymap }

func (s *prefixCatcherState) Build(ctx core.BuildContext) core.Widget {
	return widgets.Text{Content: "catcher"}
}

// TestClock_DrivesChordTimeout verifies the tester's clock is the one
// the dispatcher uses: advancing it past the chord timeout discards a
// pending prefix.
func TestClock_DrivesChordTimeout(t *testing.T) {
	tester := NewTesterWithT(t)
	var hits int
	tester.PumpWidget(prefixCatcher{Hits: &hits})

	tester.Press("g")
	tester.Pump()
	tester.Clock().Advance(time.Second)
	tester.Pump()

	// The first g expired, so this one starts a fresh prefix rather
	// than completing the sequence.
	tester.Press("g")
	tester.Pump()
	if hits != 0 {
		t.Fatalf("hits = %d after expired prefix, want 0", hits)
	}

	tester.Press("g")
	tester.Pump()
	if hits != 1 {
		t.Errorf("hits = %d after completing the sequence, want 1", hits)
	}
}
