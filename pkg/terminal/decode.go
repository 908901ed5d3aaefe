package terminal

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/go-drift/tide/pkg/input"
)

// escTimeout bounds how long a lone ESC waits for sequence bytes
// before it is reported as the Escape key. Terminals deliver the bytes
// of one escape sequence together, so the window only opens on a real
// Escape press.
const escTimeout = 10 * time.Millisecond

var (
	errTimeout = errors.New("terminal: byte wait timed out")
	errClosed  = errors.New("terminal: input closed")
)

// decoder turns the byte stream of a tty in raw mode into chords. It
// reads from a channel fed by the pump goroutine, which makes the ESC
// disambiguation timeout a select instead of a descriptor poll.
type decoder struct {
	bytec   <-chan byte
	stop    <-chan struct{}
	timeout time.Duration
}

// next returns the following byte. A negative timeout blocks.
// errTimeout reports an expired wait and errClosed the end of input.
func (d *decoder) next(timeout time.Duration) (byte, error) {
	if timeout < 0 {
		select {
		case b, ok := <-d.bytec:
			if !ok {
				return 0, errClosed
			}
			return b, nil
		case <-d.stop:
			return 0, errClosed
		}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case b, ok := <-d.bytec:
		if !ok {
			return 0, errClosed
		}
		return b, nil
	case <-timer.C:
		return 0, errTimeout
	case <-d.stop:
		return 0, errClosed
	}
}

// run decodes until input ends or emit returns false.
func (d *decoder) run(emit func(input.Chord) bool) {
	for {
		b, err := d.next(-1)
		if err != nil {
			return
		}
		if chord, ok := d.decode(b); ok {
			if !emit(chord) {
				return
			}
		}
	}
}

// decode reads one key starting from its first byte. The second return
// is false for input that decodes to nothing, such as unknown CSI
// finals and mouse reports.
func (d *decoder) decode(b byte) (input.Chord, bool) {
	switch {
	case b == 0x1b:
		return d.decodeEscape(false)
	case b >= 0x80:
		return d.decodeRune(b)
	default:
		return chordForByte(b), true
	}
}

// chordForByte maps a single raw byte outside an escape sequence.
// Enter and Tab fold into their rune forms; the rest of the control
// range becomes Ctrl chords on the letter the terminal derived them
// from.
func chordForByte(b byte) input.Chord {
	switch b {
	case 0x00:
		return input.Ctrl(' ')
	case '\t':
		return input.Tab
	case '\r', '\n':
		return input.Enter
	case 0x7f:
		return input.Chord{Key: input.KeyBackspace}
	case 0x1c:
		return input.Ctrl('\\')
	case 0x1d:
		return input.Ctrl(']')
	case 0x1e:
		return input.Ctrl('^')
	case 0x1f:
		return input.Ctrl('_')
	}
	if b < 0x1b {
		return input.Ctrl(rune('a' + b - 1))
	}
	return input.Rune(rune(b))
}

// decodeRune assembles a UTF-8 sequence whose first byte was already
// read. Malformed input is dropped rather than surfaced as U+FFFD.
func (d *decoder) decodeRune(b byte) (input.Chord, bool) {
	var seq [utf8.UTFMax]byte
	seq[0] = b
	n := 1
	for !utf8.FullRune(seq[:n]) && n < len(seq) {
		nb, err := d.next(d.timeout)
		if err != nil {
			return input.Chord{}, false
		}
		seq[n] = nb
		n++
	}
	r, size := utf8.DecodeRune(seq[:n])
	if r == utf8.RuneError && size <= 1 {
		return input.Chord{}, false
	}
	return input.Rune(r), true
}

func (d *decoder) decodeEscape(alt bool) (input.Chord, bool) {
	b, err := d.next(d.timeout)
	if err != nil {
		return input.Chord{Key: input.KeyEsc, Mod: altMod(alt)}, true
	}
	switch b {
	case 0x1b:
		if alt {
			return input.Chord{Key: input.KeyEsc, Mod: input.ModAlt}, true
		}
		return d.decodeEscape(true)
	case '[':
		return d.decodeCSI(alt)
	case 'O':
		return d.decodeG3(alt)
	default:
		var c input.Chord
		if b >= 0x80 {
			var ok bool
			c, ok = d.decodeRune(b)
			if !ok {
				return input.Chord{}, false
			}
		} else {
			c = chordForByte(b)
		}
		c.Mod |= input.ModAlt
		return c, true
	}
}

// decodeG3 handles SS3 sequences, ESC O x, sent by application-mode
// cursor keys and F1 through F4.
func (d *decoder) decodeG3(alt bool) (input.Chord, bool) {
	b, err := d.next(d.timeout)
	if err != nil {
		return input.Alt('O'), true
	}
	c, ok := g3Chord(b)
	if !ok {
		return input.Chord{}, false
	}
	c.Mod |= altMod(alt)
	return c, true
}

// decodeCSI parses ESC [ sequences: numeric parameters separated by
// semicolons, then a final byte that names the key. Mouse reports are
// consumed and discarded; the event model is keyboard only.
func (d *decoder) decodeCSI(alt bool) (input.Chord, bool) {
	b, err := d.next(d.timeout)
	if err != nil {
		return input.Alt('['), true
	}
	if b == '<' {
		// SGR mouse report, ESC [ < p ; x ; y (M|m).
		for {
			mb, merr := d.next(d.timeout)
			if merr != nil || mb == 'M' || mb == 'm' {
				return input.Chord{}, false
			}
		}
	}
	if b == 'M' {
		// Legacy X10 mouse report, three payload bytes.
		for i := 0; i < 3; i++ {
			if _, merr := d.next(d.timeout); merr != nil {
				break
			}
		}
		return input.Chord{}, false
	}
	var params []int
	num := 0
	haveNum := false
	for {
		if b >= '0' && b <= '9' {
			num = num*10 + int(b-'0')
			haveNum = true
		} else if b == ';' {
			params = append(params, num)
			num = 0
			haveNum = false
		} else {
			if haveNum || len(params) > 0 {
				params = append(params, num)
			}
			break
		}
		var nerr error
		b, nerr = d.next(d.timeout)
		if nerr != nil {
			return input.Chord{}, false
		}
	}
	return csiChord(params, b, alt)
}

func csiChord(params []int, final byte, alt bool) (input.Chord, bool) {
	mod := altMod(alt)
	if len(params) >= 2 {
		mod |= modFromParam(params[1])
	}
	var c input.Chord
	switch final {
	case 'A', 'a':
		c = input.Chord{Key: input.KeyUp}
	case 'B', 'b':
		c = input.Chord{Key: input.KeyDown}
	case 'C', 'c':
		c = input.Chord{Key: input.KeyRight}
	case 'D', 'd':
		c = input.Chord{Key: input.KeyLeft}
	case 'H':
		c = input.Chord{Key: input.KeyHome}
	case 'F':
		c = input.Chord{Key: input.KeyEnd}
	case 'Z':
		c = input.Chord{Key: input.KeyBackTab}
	case '~':
		if len(params) == 0 {
			return input.Chord{}, false
		}
		key, ok := tildeKeys[params[0]]
		if !ok {
			return input.Chord{}, false
		}
		c = input.Chord{Key: key}
	default:
		return input.Chord{}, false
	}
	c.Mod |= mod
	return c, true
}

func g3Chord(b byte) (input.Chord, bool) {
	switch b {
	case 'A':
		return input.Chord{Key: input.KeyUp}, true
	case 'B':
		return input.Chord{Key: input.KeyDown}, true
	case 'C':
		return input.Chord{Key: input.KeyRight}, true
	case 'D':
		return input.Chord{Key: input.KeyLeft}, true
	case 'H':
		return input.Chord{Key: input.KeyHome}, true
	case 'F':
		return input.Chord{Key: input.KeyEnd}, true
	case 'M':
		return input.Chord{Key: input.KeyInsert}, true
	case 'a':
		return input.Chord{Key: input.KeyUp, Mod: input.ModCtrl}, true
	case 'b':
		return input.Chord{Key: input.KeyDown, Mod: input.ModCtrl}, true
	case 'c':
		return input.Chord{Key: input.KeyRight, Mod: input.ModCtrl}, true
	case 'd':
		return input.Chord{Key: input.KeyLeft, Mod: input.ModCtrl}, true
	case 'P':
		return input.F(1), true
	case 'Q':
		return input.F(2), true
	case 'R':
		return input.F(3), true
	case 'S':
		return input.F(4), true
	}
	return input.Chord{}, false
}

// tildeKeys maps the first parameter of CSI ~ sequences. The function
// key numbering skips 16 and 22, inherited from VT220 keyboards.
var tildeKeys = map[int]input.Key{
	1:  input.KeyHome,
	2:  input.KeyInsert,
	3:  input.KeyDelete,
	4:  input.KeyEnd,
	5:  input.KeyPageUp,
	6:  input.KeyPageDown,
	7:  input.KeyHome,
	8:  input.KeyEnd,
	11: input.KeyF1,
	12: input.KeyF2,
	13: input.KeyF3,
	14: input.KeyF4,
	15: input.KeyF5,
	17: input.KeyF6,
	18: input.KeyF7,
	19: input.KeyF8,
	20: input.KeyF9,
	21: input.KeyF10,
	23: input.KeyF11,
	24: input.KeyF12,
}

// modFromParam decodes the xterm modifier parameter: the value minus
// one is a bit set of Shift(1), Alt(2), Ctrl(4) and Meta(8). Shift is
// dropped; the chord model carries case in the rune instead.
func modFromParam(p int) input.Mod {
	if p <= 0 {
		return 0
	}
	bits := p - 1
	var m input.Mod
	if bits&2 != 0 {
		m |= input.ModAlt
	}
	if bits&4 != 0 {
		m |= input.ModCtrl
	}
	if bits&8 != 0 {
		m |= input.ModAlt
	}
	return m
}

func altMod(alt bool) input.Mod {
	if alt {
		return input.ModAlt
	}
	return 0
}
