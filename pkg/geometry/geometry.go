// Package geometry provides integer points, sizes and rectangles in
// cell coordinates. The origin is the top-left corner of the surface;
// X grows rightward and Y grows downward, one unit per terminal cell.
package geometry

// Point represents a position in cell coordinates.
type Point struct {
	X int
	Y int
}

// Add returns the point translated by the other point.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the point translated by the negation of the other point.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Size represents width and height in cells.
type Size struct {
	Width  int
	Height int
}

// IsEmpty returns true if the size has no area.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Area returns the number of cells covered by the size.
// Empty sizes have zero area.
func (s Size) Area() int {
	if s.IsEmpty() {
		return 0
	}
	return s.Width * s.Height
}

// Rect represents a rectangle anchored at (X, Y) with the given
// extent. Width and Height are never meaningfully negative; rects with
// non-positive extent are treated as empty.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// RectOf constructs a Rect from an origin point and a size.
func RectOf(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

// Origin returns the top-left corner of the rectangle.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the extent of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// IsEmpty returns true if the rectangle covers no cells.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Shift returns the rectangle translated by (dx, dy).
func (r Rect) Shift(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Intersect returns the overlap of two rectangles.
// Returns the zero Rect if they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())
	if right <= x || bottom <= y {
		return Rect{}
	}
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Union returns the smallest rectangle containing both rectangles.
// An empty rectangle contributes nothing to the union.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	right := max(r.Right(), other.Right())
	bottom := max(r.Bottom(), other.Bottom())
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Inset returns the rectangle shrunk by n cells on every side.
// Shrinking past the center yields an empty rectangle at the center.
func (r Rect) Inset(n int) Rect {
	w := r.Width - 2*n
	h := r.Height - 2*n
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X + n, Y: r.Y + n, Width: w, Height: h}
}
