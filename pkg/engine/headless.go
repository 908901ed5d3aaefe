package engine

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/input"
	"github.com/go-drift/tide/pkg/render"
)

// Headless is an in-memory [Backend]. Flushed operations are recorded
// and replayed onto a shadow buffer, so tests can assert both the op
// stream and the resulting screen. Input is injected with SendKey,
// SendText and Resize.
type Headless struct {
	mu      sync.Mutex
	size    geometry.Size
	shadow  *cells.Buffer
	events  chan input.Event
	flushes int
	lastOps []render.PaintOp
	cursor  render.MoveCursor
	failErr error
}

// NewHeadless returns a headless backend with the given surface size.
func NewHeadless(size geometry.Size) *Headless {
	return &Headless{
		size:   size,
		shadow: cells.NewBuffer(size),
		events: make(chan input.Event, 64),
	}
}

func (h *Headless) Size() geometry.Size {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

func (h *Headless) Events() <-chan input.Event {
	return h.events
}

func (h *Headless) Flush(ops []render.PaintOp) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.flushes++
	h.lastOps = ops
	if h.failErr != nil {
		err := h.failErr
		h.failErr = nil
		return err
	}
	if h.shadow.Size() != h.size {
		h.shadow = cells.NewBuffer(h.size)
	}
	render.Apply(h.shadow, ops)
	for _, op := range ops {
		if mc, ok := op.(render.MoveCursor); ok {
			h.cursor = mc
		}
	}
	return nil
}

func (h *Headless) MeasureString(s string) geometry.Size {
	lines := strings.Split(s, "\n")
	width := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}
	return geometry.Size{Width: width, Height: len(lines)}
}

// Resize changes the surface size and queues a resize event.
func (h *Headless) Resize(size geometry.Size) {
	h.mu.Lock()
	h.size = size
	h.mu.Unlock()
	h.events <- input.ResizeEvent{Size: size}
}

// SendKey queues one keystroke.
func (h *Headless) SendKey(chord input.Chord) {
	h.events <- input.KeyEvent{Chord: chord}
}

// SendText queues a key event per rune, as if the text were typed.
func (h *Headless) SendText(text string) {
	for _, r := range text {
		h.events <- input.KeyEvent{Chord: input.Rune(r)}
	}
}

// Close closes the event channel. A running App.Run loop returns.
func (h *Headless) Close() {
	close(h.events)
}

// FailNextFlush makes the next Flush call return err without applying
// its operations.
func (h *Headless) FailNextFlush(err error) {
	h.mu.Lock()
	h.failErr = err
	h.mu.Unlock()
}

// Screen returns a copy of the shadow buffer.
func (h *Headless) Screen() *cells.Buffer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.shadow.Clone()
}

// Flushes returns how many times Flush has been called.
func (h *Headless) Flushes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.flushes
}

// LastOps returns the operations from the most recent flush.
func (h *Headless) LastOps() []render.PaintOp {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastOps
}

// Cursor returns the most recent cursor operation applied.
func (h *Headless) Cursor() render.MoveCursor {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}
