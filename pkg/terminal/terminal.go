// Package terminal is the ANSI backend. It owns the tty for the life
// of the program: raw mode and the alternate screen on entry, resize
// events from SIGWINCH, key decoding on a reader goroutine, and frame
// encoding that emits the fewest escape bytes that reproduce a diff.
// Close puts the terminal back the way New found it.
package terminal

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/input"
	"github.com/go-drift/tide/pkg/render"
)

// ErrNotTerminal is returned by New when the output is not a tty.
var ErrNotTerminal = errors.New("terminal: output is not a terminal")

const (
	// enterScreen switches to the alternate screen, clears it, homes
	// the cursor and hides it.
	enterScreen = "\x1b[?1049h\x1b[2J\x1b[H\x1b[?25l"
	// exitScreen undoes enterScreen: reset colors, clear, show the
	// cursor, back to the primary screen.
	exitScreen = "\x1b[0m\x1b[2J\x1b[?25h\x1b[?1049l"
)

// Terminal drives a real tty. It implements the runtime's Backend
// contract: sizes are polled, keys arrive on Events, frames leave
// through Flush.
type Terminal struct {
	in  *os.File
	out *os.File

	events  chan input.Event
	bytec   chan byte
	stop    chan struct{}
	sigDone chan struct{}
	decDone chan struct{}
	signals chan os.Signal

	stopOnce  sync.Once
	suspended atomic.Bool

	mu    sync.Mutex
	size  geometry.Size
	saved *unix.Termios
	enc   encoder
}

// New opens the backend on stdin and stdout. The terminal switches to
// raw mode and the alternate screen immediately; call Close to restore
// it.
func New() (*Terminal, error) {
	return NewWithFiles(os.Stdin, os.Stdout)
}

// NewWithFiles opens the backend on an explicit tty pair. Tests run it
// against the slave side of a pty.
func NewWithFiles(in, out *os.File) (*Terminal, error) {
	fd := out.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil, ErrNotTerminal
	}
	t := &Terminal{
		in:      in,
		out:     out,
		events:  make(chan input.Event, 64),
		bytec:   make(chan byte, 256),
		stop:    make(chan struct{}),
		sigDone: make(chan struct{}),
		decDone: make(chan struct{}),
		signals: make(chan os.Signal, 1),
	}
	if err := t.enterRaw(); err != nil {
		return nil, fmt.Errorf("terminal: raw mode: %w", err)
	}
	t.size = t.initialSize()
	if _, err := out.WriteString(enterScreen); err != nil {
		t.mu.Lock()
		t.restoreLocked()
		t.mu.Unlock()
		return nil, fmt.Errorf("terminal: enter screen: %w", err)
	}
	signal.Notify(t.signals, syscall.SIGWINCH, syscall.SIGCONT)
	go t.watchSignals()
	go t.pump()
	go t.decodeLoop()
	return t, nil
}

func (t *Terminal) initialSize() geometry.Size {
	if w, h, err := term.GetSize(int(t.out.Fd())); err == nil && w > 0 && h > 0 {
		return geometry.Size{Width: w, Height: h}
	}
	return geometry.Size{Width: 80, Height: 24}
}

// Size returns the last known surface size. SIGWINCH keeps it current.
func (t *Terminal) Size() geometry.Size {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size
}

// Events delivers decoded input. The channel closes when input reaches
// end of file or the terminal is closed.
func (t *Terminal) Events() <-chan input.Event {
	return t.events
}

// Flush encodes one frame of paint ops and writes it in a single
// syscall, bracketed with synchronized-output markers so the terminal
// presents the frame atomically.
func (t *Terminal) Flush(ops []render.PaintOp) error {
	if t.suspended.Load() {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.out.Write(t.enc.encode(ops, t.size)); err != nil {
		return fmt.Errorf("terminal: write frame: %w", err)
	}
	return nil
}

// MeasureString reports the cell footprint of a string, one row per
// line with the widest line as the width.
func (t *Terminal) MeasureString(s string) geometry.Size {
	lines := strings.Split(s, "\n")
	width := 0
	for _, line := range lines {
		if w := cells.StringWidth(line); w > width {
			width = w
		}
	}
	return geometry.Size{Width: width, Height: len(lines)}
}

// Suspend restores the terminal and stops the process with SIGTSTP,
// the way a shell job-control binding would. When the process
// continues, the SIGCONT handler re-enters raw mode and forces a full
// repaint.
func (t *Terminal) Suspend() error {
	if !t.suspended.CompareAndSwap(false, true) {
		return nil
	}
	t.mu.Lock()
	err := t.restoreLocked()
	t.mu.Unlock()
	if err != nil {
		t.suspended.Store(false)
		return err
	}
	return syscall.Kill(0, syscall.SIGTSTP)
}

// Close restores the terminal and releases the input goroutines. Call
// it after App.Run returns; it does not interrupt a running app.
func (t *Terminal) Close() error {
	t.signalStop()
	signal.Stop(t.signals)
	// Best effort: wake a pump blocked in Read. Not every tty fd
	// supports deadlines, so the pump may outlive Close; it never
	// touches the event channel, only the byte channel.
	_ = t.in.SetReadDeadline(time.Now())
	<-t.decDone
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.restoreLocked()
}

func (t *Terminal) signalStop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

// pump moves raw bytes from the tty to the decoder. It blocks in Read
// and holds no locks.
func (t *Terminal) pump() {
	defer close(t.bytec)
	buf := make([]byte, 256)
	for {
		n, err := t.in.Read(buf)
		for i := 0; i < n; i++ {
			select {
			case t.bytec <- buf[i]:
			case <-t.stop:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func (t *Terminal) decodeLoop() {
	defer close(t.decDone)
	d := &decoder{bytec: t.bytec, stop: t.stop, timeout: escTimeout}
	d.run(func(c input.Chord) bool {
		select {
		case t.events <- input.KeyEvent{Chord: c}:
			return true
		case <-t.stop:
			return false
		}
	})
	// Input ended or the terminal is closing. Stop the signal
	// goroutine before closing the event channel; it is the only
	// other sender.
	t.signalStop()
	<-t.sigDone
	close(t.events)
}

func (t *Terminal) watchSignals() {
	defer close(t.sigDone)
	for {
		select {
		case sig := <-t.signals:
			switch sig {
			case syscall.SIGWINCH:
				t.postEvent(input.ResizeEvent{Size: t.winSize()})
			case syscall.SIGCONT:
				t.resume()
			}
		case <-t.stop:
			return
		}
	}
}

// postEvent delivers an event without blocking the signal goroutine. A
// full channel drops the event; the runtime polls Size every tick, so
// a dropped resize is recovered on the next frame.
func (t *Terminal) postEvent(ev input.Event) {
	select {
	case t.events <- ev:
	case <-t.stop:
	default:
	}
}

// winSize reads the tty size, updating the cache. On failure the last
// known size is kept.
func (t *Terminal) winSize() geometry.Size {
	t.mu.Lock()
	defer t.mu.Unlock()
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err == nil && ws.Col > 0 && ws.Row > 0 {
		t.size = geometry.Size{Width: int(ws.Col), Height: int(ws.Row)}
	}
	return t.size
}

// resume re-arms the terminal after SIGCONT. It also runs when the
// process was stopped externally, where re-entering raw mode matters
// because the shell reset the tty on stop.
func (t *Terminal) resume() {
	t.mu.Lock()
	if err := t.enterRawLocked(); err == nil {
		t.out.WriteString(enterScreen)
	}
	t.mu.Unlock()
	t.suspended.Store(false)
	t.postEvent(input.ResizeEvent{Size: t.winSize()})
}

func (t *Terminal) enterRaw() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enterRawLocked()
}

func (t *Terminal) enterRawLocked() error {
	fd := int(t.in.Fd())
	tio, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	if t.saved == nil {
		saved := *tio
		t.saved = &saved
	}
	tio.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	tio.Oflag &^= unix.OPOST
	tio.Cflag |= unix.CS8
	tio.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	tio.Cc[unix.VMIN] = 1
	tio.Cc[unix.VTIME] = 0
	return unix.IoctlSetTermios(fd, ioctlSetTermios, tio)
}

// restoreLocked leaves the alternate screen and puts the tty back in
// the mode New found it in.
func (t *Terminal) restoreLocked() error {
	if t.saved == nil {
		return nil
	}
	_, werr := t.out.WriteString(exitScreen)
	serr := unix.IoctlSetTermios(int(t.in.Fd()), ioctlSetTermios, t.saved)
	if werr != nil {
		return werr
	}
	return serr
}
