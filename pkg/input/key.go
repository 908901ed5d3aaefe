package input

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Key identifies a key that does not produce a rune. Printable input
// is KeyRune with the rune carried in Chord.Rune; Enter and Tab are
// normalized to KeyRune with '\n' and '\t' so text components can
// treat them as ordinary characters.
type Key uint8

const (
	KeyRune Key = iota
	KeyEsc
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyBackTab
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Mod is a bit set of key modifiers held with a chord.
type Mod uint8

const (
	ModNone Mod = 0
	ModCtrl Mod = 1 << 0
	ModAlt  Mod = 1 << 1
)

// Chord is one keystroke: a key (or rune) plus modifiers. Chords are
// comparable and usable as map keys.
type Chord struct {
	Key  Key
	Rune rune
	Mod  Mod
}

// Common chords after normalization.
var (
	Enter = Chord{Key: KeyRune, Rune: '\n'}
	Tab   = Chord{Key: KeyRune, Rune: '\t'}
	Space = Chord{Key: KeyRune, Rune: ' '}
	Esc   = Chord{Key: KeyEsc}
)

// Rune returns the chord for a bare printable rune.
func Rune(r rune) Chord {
	return Chord{Key: KeyRune, Rune: r}
}

// Ctrl returns the chord for a rune held with Control.
func Ctrl(r rune) Chord {
	return Chord{Key: KeyRune, Rune: r, Mod: ModCtrl}
}

// Alt returns the chord for a rune held with Alt.
func Alt(r rune) Chord {
	return Chord{Key: KeyRune, Rune: r, Mod: ModAlt}
}

// F returns the chord for a function key, n in [1, 12].
func F(n int) Chord {
	if n < 1 || n > 12 {
		panic(fmt.Sprintf("input: no such function key F%d", n))
	}
	return Chord{Key: KeyF1 + Key(n-1)}
}

var keyNames = map[Key]string{
	KeyEsc:       "ESC",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyBackTab:   "backtab",
}

// String renders the chord in the notation ParseChord accepts:
// "C-x", "A-x", "RET", "TAB", "SPC", "ESC", "F5", "up", "q".
func (c Chord) String() string {
	var b strings.Builder
	if c.Mod&ModCtrl != 0 {
		b.WriteString("C-")
	}
	if c.Mod&ModAlt != 0 {
		b.WriteString("A-")
	}
	switch {
	case c.Key == KeyRune:
		switch c.Rune {
		case '\n':
			b.WriteString("RET")
		case '\t':
			b.WriteString("TAB")
		case ' ':
			b.WriteString("SPC")
		default:
			b.WriteRune(c.Rune)
		}
	case c.Key >= KeyF1 && c.Key <= KeyF12:
		fmt.Fprintf(&b, "F%d", int(c.Key-KeyF1)+1)
	default:
		if name, ok := keyNames[c.Key]; ok {
			b.WriteString(name)
		} else {
			fmt.Fprintf(&b, "key(%d)", int(c.Key))
		}
	}
	return b.String()
}

// ParseChord parses a single chord token. Modifier prefixes "C-" and
// "A-" may precede a base token: a single rune, one of RET, TAB, SPC,
// ESC, F1..F12, or a named key such as "up" or "backspace".
func ParseChord(token string) (Chord, error) {
	rest := token
	var mod Mod
	for {
		switch {
		case strings.HasPrefix(rest, "C-") && len(rest) > 2:
			mod |= ModCtrl
			rest = rest[2:]
			continue
		case strings.HasPrefix(rest, "A-") && len(rest) > 2:
			mod |= ModAlt
			rest = rest[2:]
			continue
		}
		break
	}
	if rest == "" {
		return Chord{}, fmt.Errorf("input: empty chord %q", token)
	}

	switch rest {
	case "RET":
		return Chord{Key: KeyRune, Rune: '\n', Mod: mod}, nil
	case "TAB":
		return Chord{Key: KeyRune, Rune: '\t', Mod: mod}, nil
	case "SPC":
		return Chord{Key: KeyRune, Rune: ' ', Mod: mod}, nil
	case "ESC":
		return Chord{Key: KeyEsc, Mod: mod}, nil
	}
	for key, name := range keyNames {
		if rest == name {
			return Chord{Key: key, Mod: mod}, nil
		}
	}
	if len(rest) >= 2 && rest[0] == 'F' {
		var n int
		if _, err := fmt.Sscanf(rest, "F%d", &n); err == nil && n >= 1 && n <= 12 {
			return Chord{Key: KeyF1 + Key(n-1), Mod: mod}, nil
		}
	}
	if r, size := utf8.DecodeRuneInString(rest); size == len(rest) && r != utf8.RuneError {
		return Chord{Key: KeyRune, Rune: r, Mod: mod}, nil
	}
	return Chord{}, fmt.Errorf("input: cannot parse chord %q", token)
}

// ParseSequence parses a space-separated sequence of chord tokens,
// e.g. "C-x C-f" or "g g".
func ParseSequence(pattern string) ([]Chord, error) {
	tokens := strings.Fields(pattern)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("input: empty key sequence %q", pattern)
	}
	seq := make([]Chord, 0, len(tokens))
	for _, token := range tokens {
		chord, err := ParseChord(token)
		if err != nil {
			return nil, err
		}
		seq = append(seq, chord)
	}
	return seq, nil
}

// FormatSequence renders a chord sequence in ParseSequence notation.
func FormatSequence(seq []Chord) string {
	parts := make([]string, len(seq))
	for i, c := range seq {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
