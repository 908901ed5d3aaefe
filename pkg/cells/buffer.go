// Package cells models the terminal surface as a grid of styled cells.
//
// A Buffer is the in-memory image of one full surface. Render code
// writes into a buffer, the frame differ compares two buffers and the
// backend replays the difference onto the real terminal. Wide runes
// (CJK, many emoji) occupy a head cell followed by one continuation
// cell with a zero Rune; writes that would split such a pair repair
// the neighbor cell to a blank.
package cells

import (
	"strings"

	"github.com/go-drift/tide/pkg/geometry"
)

// Cell is a single screen cell. A zero Rune marks the continuation
// cell of a wide rune to its left.
type Cell struct {
	Rune  rune
	Style Style
}

// Blank returns the empty cell with the given style.
func Blank(style Style) Cell {
	return Cell{Rune: ' ', Style: style}
}

// IsContinuation returns true if the cell is the trailing half of a
// wide rune.
func (c Cell) IsContinuation() bool {
	return c.Rune == 0
}

// Width returns how many columns the cell's rune spans.
// Continuation cells report zero.
func (c Cell) Width() int {
	if c.Rune == 0 {
		return 0
	}
	return RuneWidth(c.Rune)
}

// Buffer is a rectangular grid of cells.
type Buffer struct {
	size  geometry.Size
	cells []Cell
}

// NewBuffer returns a buffer of the given size filled with blank
// cells. Negative dimensions are clamped to zero.
func NewBuffer(size geometry.Size) *Buffer {
	if size.Width < 0 {
		size.Width = 0
	}
	if size.Height < 0 {
		size.Height = 0
	}
	b := &Buffer{size: size}
	b.cells = make([]Cell, size.Width*size.Height)
	b.Clear(Style{})
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() geometry.Size {
	return b.size
}

// Bounds returns the buffer extent as a rectangle at the origin.
func (b *Buffer) Bounds() geometry.Rect {
	return geometry.Rect{Width: b.size.Width, Height: b.size.Height}
}

// At returns the cell at (x, y), or a blank cell when out of bounds.
func (b *Buffer) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= b.size.Width || y >= b.size.Height {
		return Blank(Style{})
	}
	return b.cells[y*b.size.Width+x]
}

// Set stores a cell at (x, y). Writes outside the buffer are ignored.
// Overwriting either half of a wide rune blanks the orphaned half.
func (b *Buffer) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= b.size.Width || y >= b.size.Height {
		return
	}
	i := y*b.size.Width + x
	old := b.cells[i]
	if old.IsContinuation() && x > 0 {
		head := &b.cells[i-1]
		if head.Width() == 2 {
			*head = Blank(head.Style)
		}
	}
	if old.Width() == 2 && x+1 < b.size.Width {
		cont := &b.cells[i+1]
		if cont.IsContinuation() {
			*cont = Blank(cont.Style)
		}
	}
	b.cells[i] = c
}

// SetRune writes a rune at (x, y) and returns the number of columns
// it advanced. Zero-width runes are dropped. A wide rune that would
// overflow the right edge is replaced with a blank.
func (b *Buffer) SetRune(x, y int, r rune, style Style) int {
	w := RuneWidth(r)
	if w == 0 {
		return 0
	}
	if w == 2 {
		if x+1 >= b.size.Width {
			b.Set(x, y, Blank(style))
			return 1
		}
		b.Set(x, y, Cell{Rune: r, Style: style})
		b.Set(x+1, y, Cell{Rune: 0, Style: style})
		return 2
	}
	b.Set(x, y, Cell{Rune: r, Style: style})
	return 1
}

// WriteString writes a string starting at (x, y) and returns the
// number of columns written. Output past the right edge is clipped.
func (b *Buffer) WriteString(x, y int, s string, style Style) int {
	col := x
	for _, r := range s {
		if col >= b.size.Width {
			break
		}
		col += b.SetRune(col, y, r, style)
	}
	return col - x
}

// Fill sets every cell in the region to c. The region is clipped to
// the buffer.
func (b *Buffer) Fill(region geometry.Rect, c Cell) {
	region = region.Intersect(b.Bounds())
	for y := region.Y; y < region.Bottom(); y++ {
		for x := region.X; x < region.Right(); x++ {
			b.Set(x, y, c)
		}
	}
}

// Clear fills the whole buffer with blank cells of the given style.
func (b *Buffer) Clear(style Style) {
	blank := Blank(style)
	for i := range b.cells {
		b.cells[i] = blank
	}
}

// Resize replaces the buffer contents with a blank grid of the new
// size. Previous contents are discarded; callers repaint after a
// resize anyway.
func (b *Buffer) Resize(size geometry.Size) {
	if size.Width < 0 {
		size.Width = 0
	}
	if size.Height < 0 {
		size.Height = 0
	}
	if size == b.size {
		return
	}
	b.size = size
	b.cells = make([]Cell, size.Width*size.Height)
	b.Clear(Style{})
}

// Row returns the cells of row y. The slice aliases the buffer's
// storage and must not be mutated; it is valid until the next Resize.
func (b *Buffer) Row(y int) []Cell {
	if y < 0 || y >= b.size.Height {
		return nil
	}
	return b.cells[y*b.size.Width : (y+1)*b.size.Width]
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{size: b.size}
	c.cells = make([]Cell, len(b.cells))
	copy(c.cells, b.cells)
	return c
}

// Equal reports whether two buffers have identical size and contents.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the buffer as text, one line per row with trailing
// blanks trimmed. Styling is discarded. Intended for tests and debug
// output.
func (b *Buffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.size.Height; y++ {
		line := make([]rune, 0, b.size.Width)
		for x := 0; x < b.size.Width; x++ {
			c := b.At(x, y)
			if c.IsContinuation() {
				continue
			}
			line = append(line, c.Rune)
		}
		for len(line) > 0 && line[len(line)-1] == ' ' {
			line = line[:len(line)-1]
		}
		sb.WriteString(string(line))
		if y < b.size.Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
