package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/errors"
	"github.com/go-drift/tide/pkg/focus"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/input"
	"github.com/go-drift/tide/pkg/layout"
	"github.com/go-drift/tide/pkg/render"
)

// FrameStats counts work the runtime has done since the app was
// created. Read it on the UI goroutine.
type FrameStats struct {
	// Frames is the number of flushes sent to the backend. Ticks that
	// produce no visible change do not flush.
	Frames int
	// Ops is the total number of paint operations emitted.
	Ops int
	// Mounted, Updated and Unmounted count element lifecycle events.
	Mounted   int
	Updated   int
	Unmounted int
}

// App drives the widget tree against a backend. The pipeline is pull
// based: the owning goroutine calls Tick with whatever input arrived,
// and Tick runs build, layout, paint and diff only when something
// changed. Run wraps Tick in a select loop for hosts that want the
// runtime to own the goroutine.
//
// All methods except Post and RequestFrame must be called from the UI
// goroutine.
type App struct {
	backend    Backend
	owner      *core.BuildOwner
	focus      *focus.Manager
	dispatcher *input.Dispatcher

	rootWidget core.Widget
	root       core.Element
	rootRender layout.RenderObject

	size       geometry.Size
	prev       *cells.Buffer
	lastCursor render.MoveCursor
	cursorSent bool

	postMu       sync.Mutex
	posted       []func()
	framePending atomic.Bool
	wake         chan struct{}

	tickInterval time.Duration
	now          func() time.Time
	stats        FrameStats
}

// New creates an app that renders root on backend. The first Tick
// mounts the tree and paints the first frame.
func New(backend Backend, root core.Widget) *App {
	a := &App{
		backend:      backend,
		owner:        core.NewBuildOwner(),
		focus:        focus.NewManager(),
		dispatcher:   input.NewDispatcher(),
		rootWidget:   root,
		wake:         make(chan struct{}, 1),
		tickInterval: DefaultTickInterval,
		now:          time.Now,
	}
	a.owner.OnNeedsFrame = a.RequestFrame
	a.owner.Observer = statsObserver{stats: &a.stats}
	a.owner.Pipeline().SetMeasurer(backend)
	return a
}

// FocusManager returns the focus manager provided to the tree.
func (a *App) FocusManager() *focus.Manager {
	return a.focus
}

// Root returns the mounted root element, nil before the first Tick.
func (a *App) Root() core.Element {
	return a.root
}

// Stats returns a snapshot of the frame counters.
func (a *App) Stats() FrameStats {
	return a.stats
}

// SetRoot replaces the root widget. The existing tree reconciles
// against the new widget on the next Tick.
func (a *App) SetRoot(root core.Widget) {
	a.rootWidget = root
	if a.root != nil {
		a.root = core.UpdateRoot(a.root, a.shellWidget(), a.owner)
	}
	a.RequestFrame()
}

// SetChordTimeout bounds how long a pending multi-chord prefix is held.
func (a *App) SetChordTimeout(timeout time.Duration) {
	a.dispatcher.SetTimeout(timeout)
}

// SetTickInterval sets how often Run ticks without input, which is
// also the polling cadence for Tickable states.
func (a *App) SetTickInterval(interval time.Duration) {
	if interval > 0 {
		a.tickInterval = interval
	}
}

// SetClock replaces the time source used for tick polling and chord
// timeouts. Tests inject a fake clock here.
func (a *App) SetClock(now func() time.Time) {
	a.now = now
	a.dispatcher.SetClock(now)
}

// Post schedules a callback on the UI goroutine at the start of the
// next tick. It is the one safe way for background goroutines to
// reach UI state. Safe to call from any goroutine.
func (a *App) Post(fn func()) {
	if fn == nil {
		return
	}
	a.postMu.Lock()
	a.posted = append(a.posted, fn)
	a.postMu.Unlock()
	a.RequestFrame()
}

// RequestFrame asks for a redraw on the next tick. Requests coalesce;
// any number of calls between ticks produce one frame. Safe to call
// from any goroutine.
func (a *App) RequestFrame() {
	a.framePending.Store(true)
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

func (a *App) drainPosted() []func() {
	a.postMu.Lock()
	posted := a.posted
	a.posted = nil
	a.postMu.Unlock()
	return posted
}

// shellWidget wraps the user's root so the tree can reach the focus
// manager through the provider mechanism.
func (a *App) shellWidget() core.Widget {
	return core.InheritedProvider[*focus.Manager]{
		Value: a.focus,
		Child: a.rootWidget,
	}
}

// Tick runs one pipeline pass: posted callbacks, then input dispatch,
// then tickable polling, and, when any of those asked for a redraw,
// build, layout, paint and flush. It never blocks on I/O and returns
// at most one error per pass.
//
// A nil or empty events slice is an idle tick; it still runs posted
// callbacks and polls tickables.
func (a *App) Tick(events []input.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			perr := &errors.PanicError{
				Op:         "engine.Tick",
				Value:      r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			}
			errors.ReportPanic(perr)
			err = &errors.TideError{
				Op:        "engine.Tick",
				Kind:      errors.KindPanic,
				Err:       perr,
				Timestamp: perr.Timestamp,
			}
		}
	}()

	for _, fn := range a.drainPosted() {
		fn()
	}

	redraw := input.ShouldRender(false)
	for _, event := range events {
		switch event := event.(type) {
		case input.KeyEvent:
			redraw = redraw.Or(a.dispatcher.Dispatch(event.Chord, a.keymapPath()))
		case input.ResizeEvent:
			// The new size is read from the backend below; the event
			// just forces the frame.
			a.prev = nil
			redraw = true
		}
	}

	redraw = redraw.Or(a.pollTickables(a.now()))

	if a.framePending.Swap(false) {
		redraw = true
	}
	if a.root == nil || a.owner.NeedsWork() {
		redraw = true
	}
	size := a.backend.Size()
	if size != a.size {
		redraw = true
	}

	if !bool(redraw) {
		return nil
	}
	return a.renderFrame(size)
}

// renderFrame runs build, layout, paint plus diff and sends the result
// to the backend.
func (a *App) renderFrame(size geometry.Size) error {
	if size != a.size {
		a.size = size
		a.prev = nil
		if a.rootRender != nil {
			a.rootRender.MarkNeedsLayout()
		}
	}

	if a.root == nil {
		a.root = core.MountRoot(a.shellWidget(), a.owner)
	}
	a.owner.FlushBuild()

	var tickErr error
	if errs := a.owner.TakeBuildErrors(); len(errs) > 0 {
		tickErr = &errors.TideError{
			Op:        "engine.Tick",
			Kind:      errors.KindRender,
			Err:       errs[0],
			Timestamp: time.Now(),
		}
	}

	// The render root can change identity when SetRoot swaps in an
	// incompatible widget, so re-resolve it after every build.
	if ro := elementRenderObject(a.root); ro != a.rootRender {
		a.rootRender = ro
		if ro != nil {
			a.owner.Pipeline().ScheduleLayout(ro)
		}
	}
	if a.rootRender == nil || size.Width <= 0 || size.Height <= 0 {
		return tickErr
	}

	pipeline := a.owner.Pipeline()
	pipeline.FlushLayoutForRoot(a.rootRender, layout.Tight(size))

	cur := cells.NewBuffer(size)
	ctx := &layout.PaintContext{Canvas: render.NewCanvas(cur)}
	ctx.PaintChild(a.rootRender, geometry.Point{})
	pipeline.ClearPaint()

	ops := render.Diff(a.prev, cur)
	cursor := cursorOp(ctx.Cursor())
	if len(ops) > 0 || cursor != a.lastCursor || !a.cursorSent {
		ops = append(ops, cursor)
		a.lastCursor = cursor
		a.cursorSent = true
		a.stats.Frames++
		a.stats.Ops += len(ops)
		if err := a.backend.Flush(ops); err != nil {
			ferr := &errors.TideError{
				Op:        "backend.Flush",
				Kind:      errors.KindPaint,
				Err:       err,
				Timestamp: time.Now(),
			}
			if tickErr == nil {
				tickErr = ferr
			} else {
				errors.Report(ferr)
			}
		}
	}
	// The attempted frame becomes the previous frame even when the
	// flush failed; re-diffing against stale state would emit garbage.
	a.prev = cur
	return tickErr
}

func cursorOp(req *layout.CursorRequest) render.MoveCursor {
	if req == nil {
		return render.MoveCursor{}
	}
	return render.MoveCursor{Pos: req.Pos, Visible: req.Visible}
}

func elementRenderObject(element core.Element) layout.RenderObject {
	if element == nil {
		return nil
	}
	if provider, ok := element.(interface{ RenderObject() layout.RenderObject }); ok {
		return provider.RenderObject()
	}
	return nil
}

// statsObserver feeds element lifecycle counts into FrameStats.
type statsObserver struct {
	stats *FrameStats
}

func (o statsObserver) ElementMounted(core.Element) { o.stats.Mounted++ }

func (o statsObserver) ElementUpdated(core.Element) { o.stats.Updated++ }

func (o statsObserver) ElementUnmounted(core.Element) { o.stats.Unmounted++ }
