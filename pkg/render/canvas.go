// Package render provides the drawing surface handed to render
// objects and the frame differ that turns two cell buffers into a
// minimal sequence of paint operations for a backend.
package render

import (
	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/geometry"
)

// Canvas is a clipped, translated view into a cell buffer. Render
// objects draw in their own local coordinates; the canvas maps those
// to buffer cells and silently discards anything outside the clip.
//
// Canvases are values. WithRegion derives a child canvas without
// affecting the parent.
type Canvas struct {
	buf    *cells.Buffer
	origin geometry.Point
	clip   geometry.Rect
	size   geometry.Size
}

// NewCanvas returns a canvas covering the whole buffer.
func NewCanvas(buf *cells.Buffer) Canvas {
	return Canvas{
		buf:  buf,
		clip: buf.Bounds(),
		size: buf.Size(),
	}
}

// WithRegion returns a canvas for the given region of this canvas.
// The region is expressed in this canvas's coordinates; the child's
// clip is the intersection with the parent clip, so children can
// never paint outside the rectangle their parent granted them.
func (c Canvas) WithRegion(region geometry.Rect) Canvas {
	abs := region.Shift(c.origin.X, c.origin.Y)
	return Canvas{
		buf:    c.buf,
		origin: abs.Origin(),
		clip:   c.clip.Intersect(abs),
		size:   region.Size(),
	}
}

// Size returns the extent granted to this canvas. Drawing beyond it
// is clipped.
func (c Canvas) Size() geometry.Size {
	return c.size
}

// Origin returns the canvas origin in buffer coordinates.
func (c Canvas) Origin() geometry.Point {
	return c.origin
}

func (c Canvas) set(x, y int, cell cells.Cell) {
	p := geometry.Point{X: c.origin.X + x, Y: c.origin.Y + y}
	if !c.clip.Contains(p) {
		return
	}
	c.buf.Set(p.X, p.Y, cell)
}

// SetCell stores a cell at local (x, y).
func (c Canvas) SetCell(x, y int, cell cells.Cell) {
	c.set(x, y, cell)
}

// SetRune writes a rune at local (x, y) and returns the columns
// advanced. Wide runes that would cross the clip edge degrade to a
// blank, matching buffer behavior at the surface edge.
func (c Canvas) SetRune(x, y int, r rune, style cells.Style) int {
	w := cells.RuneWidth(r)
	if w == 0 {
		return 0
	}
	if w == 2 {
		head := geometry.Point{X: c.origin.X + x, Y: c.origin.Y + y}
		cont := geometry.Point{X: head.X + 1, Y: head.Y}
		if c.clip.Contains(head) && !c.clip.Contains(cont) {
			c.set(x, y, cells.Blank(style))
			return 1
		}
		c.set(x, y, cells.Cell{Rune: r, Style: style})
		c.set(x+1, y, cells.Cell{Rune: 0, Style: style})
		return 2
	}
	c.set(x, y, cells.Cell{Rune: r, Style: style})
	return 1
}

// WriteString writes a string starting at local (x, y) and returns
// the columns written. Output past the canvas extent is clipped.
func (c Canvas) WriteString(x, y int, s string, style cells.Style) int {
	col := x
	for _, r := range s {
		if col >= c.size.Width {
			break
		}
		col += c.SetRune(col, y, r, style)
	}
	return col - x
}

// FillRect fills a local rectangle with the given cell.
func (c Canvas) FillRect(region geometry.Rect, cell cells.Cell) {
	for y := region.Y; y < region.Bottom(); y++ {
		for x := region.X; x < region.Right(); x++ {
			c.set(x, y, cell)
		}
	}
}

// Fill covers the whole canvas extent with blank cells of the given
// style.
func (c Canvas) Fill(style cells.Style) {
	c.FillRect(geometry.Rect{Width: c.size.Width, Height: c.size.Height}, cells.Blank(style))
}
