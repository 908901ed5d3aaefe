package terminal

import (
	"bytes"

	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/render"
)

const (
	syncBegin = "\x1b[?2026h"
	syncEnd   = "\x1b[?2026l"
)

// encoder turns paint ops into the shortest ANSI byte stream that
// reproduces them. It tracks the style and cursor position across ops,
// so runs sharing a style cost one SGR sequence and consecutive writes
// on a row cost no cursor moves.
type encoder struct {
	buf       bytes.Buffer
	lastStyle cells.Style
	styleSet  bool
	cursor    geometry.Point
	cursorSet bool
}

// encode renders one frame. The returned slice is valid until the next
// call.
func (e *encoder) encode(ops []render.PaintOp, surface geometry.Size) []byte {
	e.buf.Reset()
	e.styleSet = false
	e.cursorSet = false
	e.buf.WriteString(syncBegin)
	for _, op := range ops {
		switch o := op.(type) {
		case render.WriteRun:
			e.writeRun(o)
		case render.ClearRegion:
			e.clearRegion(o, surface)
		case render.MoveCursor:
			e.moveCursor(o)
		}
	}
	e.buf.WriteString(syncEnd)
	return e.buf.Bytes()
}

func (e *encoder) writeRun(op render.WriteRun) {
	for i, c := range op.Cells {
		// Continuation cells are implied: writing the wide head
		// already advanced the terminal cursor over them.
		if c.IsContinuation() {
			continue
		}
		w := c.Width()
		if w == 0 {
			continue
		}
		e.moveTo(op.Pos.X+i, op.Pos.Y)
		e.setStyle(c.Style)
		e.buf.WriteRune(c.Rune)
		e.cursor.X += w
	}
}

func (e *encoder) clearRegion(op render.ClearRegion, surface geometry.Size) {
	e.setStyle(op.Style)
	full := op.Region.X == 0 && op.Region.Y == 0 &&
		op.Region.Width == surface.Width && op.Region.Height == surface.Height
	if full {
		e.buf.WriteString("\x1b[2J")
		e.cursorSet = false
		return
	}
	for row := 0; row < op.Region.Height; row++ {
		e.moveTo(op.Region.X, op.Region.Y+row)
		for col := 0; col < op.Region.Width; col++ {
			e.buf.WriteByte(' ')
		}
		e.cursor.X += op.Region.Width
	}
}

func (e *encoder) moveCursor(op render.MoveCursor) {
	if !op.Visible {
		e.buf.WriteString("\x1b[?25l")
		return
	}
	e.moveTo(op.Pos.X, op.Pos.Y)
	e.buf.WriteString("\x1b[?25h")
}

func (e *encoder) moveTo(x, y int) {
	if e.cursorSet && e.cursor.X == x && e.cursor.Y == y {
		return
	}
	e.buf.WriteString("\x1b[")
	e.writeInt(y + 1)
	e.buf.WriteByte(';')
	e.writeInt(x + 1)
	e.buf.WriteByte('H')
	e.cursor = geometry.Point{X: x, Y: y}
	e.cursorSet = true
}

// setStyle emits an SGR sequence when the style differs from the one
// in effect. Sequences are built reset-first, so every emitted style
// is self-contained and nothing leaks from the previous one.
func (e *encoder) setStyle(s cells.Style) {
	if e.styleSet && s == e.lastStyle {
		return
	}
	e.buf.WriteString("\x1b[0")
	if s.Attr.Has(cells.AttrBold) {
		e.buf.WriteString(";1")
	}
	if s.Attr.Has(cells.AttrDim) {
		e.buf.WriteString(";2")
	}
	if s.Attr.Has(cells.AttrItalic) {
		e.buf.WriteString(";3")
	}
	if s.Attr.Has(cells.AttrUnderline) {
		e.buf.WriteString(";4")
	}
	if s.Attr.Has(cells.AttrReverse) {
		e.buf.WriteString(";7")
	}
	if s.Attr.Has(cells.AttrStrike) {
		e.buf.WriteString(";9")
	}
	e.writeColor(s.FG, false)
	e.writeColor(s.BG, true)
	e.buf.WriteByte('m')
	e.lastStyle = s
	e.styleSet = true
}

func (e *encoder) writeColor(c cells.Color, background bool) {
	switch c.Mode {
	case cells.ColorModeDefault:
		// The leading reset already selected the default colors.
	case cells.ColorModeANSI:
		base := 30
		if background {
			base = 40
		}
		index := int(c.Index)
		if index >= 8 {
			base += 60
			index -= 8
		}
		e.buf.WriteByte(';')
		e.writeInt(base + index)
	case cells.ColorMode256:
		if background {
			e.buf.WriteString(";48;5;")
		} else {
			e.buf.WriteString(";38;5;")
		}
		e.writeInt(int(c.Index))
	case cells.ColorModeRGB:
		if background {
			e.buf.WriteString(";48;2;")
		} else {
			e.buf.WriteString(";38;2;")
		}
		e.writeInt(int(c.R))
		e.buf.WriteByte(';')
		e.writeInt(int(c.G))
		e.buf.WriteByte(';')
		e.writeInt(int(c.B))
	}
}

// writeInt appends a small non-negative decimal without allocating.
func (e *encoder) writeInt(n int) {
	if n <= 0 {
		e.buf.WriteByte('0')
		return
	}
	var scratch [10]byte
	i := len(scratch)
	for n > 0 {
		i--
		scratch[i] = '0' + byte(n%10)
		n /= 10
	}
	e.buf.Write(scratch[i:])
}
