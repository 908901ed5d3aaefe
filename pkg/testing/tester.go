package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/engine"
	"github.com/go-drift/tide/pkg/focus"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/input"
	"github.com/go-drift/tide/pkg/render"
)

const (
	// DefaultWidth is the default surface width in cells.
	DefaultWidth = 80
	// DefaultHeight is the default surface height in cells.
	DefaultHeight = 24
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: runtime did not settle")

// Tester drives an app against the headless backend, one explicit tick
// at a time. Keys are queued with Press, SendKey or SendText and
// consumed by the next Pump; the rendered screen is read back with
// Screen and the assertion helpers.
//
// The tester installs a fake clock on the app, so time-dependent
// behavior (chord timeouts, tickable polling) only moves when the test
// advances Clock().
type Tester struct {
	backend *engine.Headless
	app     *engine.App
	clock   *FakeClock
}

// NewTester creates a tester with an 80x24 surface. Call Cleanup when
// done, or use NewTesterWithT instead.
func NewTester() *Tester {
	return &Tester{
		backend: engine.NewHeadless(geometry.Size{Width: DefaultWidth, Height: DefaultHeight}),
		clock:   NewFakeClock(),
	}
}

// NewTesterWithT creates a tester that cleans up via t.Cleanup. This is
// the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree so states dispose and focus nodes
// unregister. The tester must not be used afterwards.
func (t *Tester) Cleanup() {
	if t.app != nil && t.app.Root() != nil {
		t.app.Root().Unmount()
	}
	t.app = nil
}

// Clock returns the fake clock for advancing time in tests.
func (t *Tester) Clock() *FakeClock {
	return t.clock
}

// App returns the app under test, nil before the first PumpWidget.
func (t *Tester) App() *engine.App {
	return t.app
}

// Backend returns the headless backend the app renders to.
func (t *Tester) Backend() *engine.Headless {
	return t.backend
}

// FocusManager returns the focus manager of the app under test.
func (t *Tester) FocusManager() *focus.Manager {
	return t.app.FocusManager()
}

// PumpWidget makes widget the root of the tree and runs one tick. The
// first call creates the app; later calls reconcile the existing tree
// against the new widget.
func (t *Tester) PumpWidget(widget core.Widget) error {
	if t.app == nil {
		t.app = engine.New(t.backend, widget)
		t.app.SetClock(t.clock.Now)
	} else {
		t.app.SetRoot(widget)
	}
	return t.Pump()
}

// Pump runs one tick, feeding it whatever input has been queued since
// the previous tick.
func (t *Tester) Pump() error {
	if t.app == nil {
		panic("testing: Pump called before PumpWidget")
	}
	return t.app.Tick(t.drainEvents())
}

// PumpAndSettle pumps until a tick produces no new frame, advancing the
// fake clock by the tick interval between pumps so tickables run to
// completion. Returns ErrSettleTimeout when the tree is still animating
// after timeout of fake time.
func (t *Tester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed <= timeout {
		frames := t.app.Stats().Frames
		if err := t.Pump(); err != nil {
			return err
		}
		if t.app.Stats().Frames == frames {
			return nil
		}
		t.clock.Advance(engine.DefaultTickInterval)
		elapsed += engine.DefaultTickInterval
	}
	return ErrSettleTimeout
}

// Press queues the chords of a key pattern such as "C-x C-s", "g g" or
// "RET" (ParseSequence notation). Panics on a malformed pattern; the
// pattern is part of the test, not input under test.
func (t *Tester) Press(pattern string) {
	seq, err := input.ParseSequence(pattern)
	if err != nil {
		panic(err.Error())
	}
	for _, chord := range seq {
		t.backend.SendKey(chord)
	}
}

// SendKey queues one keystroke.
func (t *Tester) SendKey(chord input.Chord) {
	t.backend.SendKey(chord)
}

// SendText queues a key event per rune, as if the text were typed.
func (t *Tester) SendText(text string) {
	t.backend.SendText(text)
}

// Resize changes the surface size. The next Pump repaints at the new
// size.
func (t *Tester) Resize(size geometry.Size) {
	t.backend.Resize(size)
}

// Screen returns a copy of the rendered screen.
func (t *Tester) Screen() *cells.Buffer {
	return t.backend.Screen()
}

// Cursor returns the most recent cursor operation flushed.
func (t *Tester) Cursor() render.MoveCursor {
	return t.backend.Cursor()
}

// RootElement returns the root element of the mounted tree.
func (t *Tester) RootElement() core.Element {
	if t.app == nil {
		return nil
	}
	return t.app.Root()
}

// Find evaluates a finder against the current element tree.
func (t *Tester) Find(finder Finder) FinderResult {
	root := t.RootElement()
	if root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(root),
		finder:   finder,
	}
}

// drainEvents empties the backend's event queue without blocking.
func (t *Tester) drainEvents() []input.Event {
	var events []input.Event
	for {
		select {
		case event := <-t.backend.Events():
			events = append(events, event)
		default:
			return events
		}
	}
}
