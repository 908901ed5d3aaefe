package engine

import (
	"context"
	"time"

	"github.com/go-drift/tide/pkg/errors"
	"github.com/go-drift/tide/pkg/input"
)

const (
	// DefaultTickInterval is how often Run ticks when no input
	// arrives, which bounds the latency of Tickable animations.
	DefaultTickInterval = 100 * time.Millisecond

	// batchLatency is how long Run waits after an input event for
	// more to arrive before ticking, so paste bursts and key repeat
	// coalesce into single frames.
	batchLatency = 10 * time.Millisecond

	// sustainedLatency bounds how long a batch can grow under a
	// steady input stream before a frame is forced.
	sustainedLatency = 100 * time.Millisecond
)

// Run owns the UI goroutine: it paints the first frame, then drains
// backend events into Tick until ctx is cancelled or the backend
// closes its event channel.
//
// Build failures keep the loop going; the tree shows its fallback or
// previous frame and the error has already reached the error handler.
// Backend, paint and panic failures end the loop.
func (a *App) Run(ctx context.Context) error {
	if err := a.Tick(nil); fatalTickError(err) {
		return err
	}

	ticker := time.NewTicker(a.tickInterval)
	defer ticker.Stop()

	var batch []input.Event
	var flushC, deadlineC <-chan time.Time

	tickBatch := func() error {
		events := batch
		batch = nil
		flushC, deadlineC = nil, nil
		return a.Tick(events)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-a.backend.Events():
			if !ok {
				// Backend is gone. Process what already arrived, then
				// shut down cleanly.
				if len(batch) > 0 {
					if err := tickBatch(); fatalTickError(err) {
						return err
					}
				}
				return nil
			}
			batch = append(batch, event)
			if deadlineC == nil {
				deadlineC = time.After(sustainedLatency)
			}
			flushC = time.After(batchLatency)

		case <-flushC:
			if err := tickBatch(); fatalTickError(err) {
				return err
			}

		case <-deadlineC:
			if err := tickBatch(); fatalTickError(err) {
				return err
			}

		case <-a.wake:
			if err := a.Tick(nil); fatalTickError(err) {
				return err
			}

		case <-ticker.C:
			if err := a.Tick(nil); fatalTickError(err) {
				return err
			}
		}
	}
}

// fatalTickError reports whether a Tick error should end the loop.
func fatalTickError(err error) bool {
	if err == nil {
		return false
	}
	if terr, ok := err.(*errors.TideError); ok {
		switch terr.Kind {
		case errors.KindPaint, errors.KindBackend, errors.KindPanic:
			return true
		}
		return false
	}
	return true
}
