package raster

import (
	"image"
	"strings"
	"sync"

	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/input"
	"github.com/go-drift/tide/pkg/render"
)

// Surface is an in-memory backend that keeps the latest frame as a
// cell buffer and rasterizes it on demand. It delivers no input; a
// host drives the app and asks for images.
type Surface struct {
	mu  sync.Mutex
	buf *cells.Buffer

	events    chan input.Event
	closeOnce sync.Once
}

// NewSurface returns a surface of the given size.
func NewSurface(size geometry.Size) *Surface {
	return &Surface{
		buf:    cells.NewBuffer(size),
		events: make(chan input.Event),
	}
}

// Size returns the surface dimensions.
func (s *Surface) Size() geometry.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Size()
}

// Events returns a channel that never delivers. It closes on Close,
// which ends App.Run.
func (s *Surface) Events() <-chan input.Event {
	return s.events
}

// Flush replays a frame's ops onto the kept buffer.
func (s *Surface) Flush(ops []render.PaintOp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	render.Apply(s.buf, ops)
	return nil
}

// MeasureString reports the cell footprint of a string.
func (s *Surface) MeasureString(str string) geometry.Size {
	lines := strings.Split(str, "\n")
	width := 0
	for _, line := range lines {
		if w := cells.StringWidth(line); w > width {
			width = w
		}
	}
	return geometry.Size{Width: width, Height: len(lines)}
}

// Image rasterizes the current frame.
func (s *Surface) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Render(s.buf)
}

// Close ends the event stream.
func (s *Surface) Close() {
	s.closeOnce.Do(func() { close(s.events) })
}
