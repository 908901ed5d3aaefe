package layout

import "github.com/go-drift/tide/pkg/geometry"

// Unbounded marks a constraint axis with no maximum. It is large
// enough that no real surface approaches it while leaving headroom
// for arithmetic on constraint values.
const Unbounded = int(1) << 30

// Constraints describe the size range a parent grants a child, in
// cells. A child must pick a size within [Min, Max] on both axes.
// The zero value is fully loose: any size from zero up.
type Constraints struct {
	MinWidth  int
	MaxWidth  int
	MinHeight int
	MaxHeight int
}

// Tight returns constraints that force exactly the given size.
func Tight(size geometry.Size) Constraints {
	return Constraints{
		MinWidth:  size.Width,
		MaxWidth:  size.Width,
		MinHeight: size.Height,
		MaxHeight: size.Height,
	}
}

// Loose returns constraints allowing any size up to the given one.
func Loose(size geometry.Size) Constraints {
	return Constraints{MaxWidth: size.Width, MaxHeight: size.Height}
}

// Unconstrained returns constraints with no maximum on either axis.
func Unconstrained() Constraints {
	return Constraints{MaxWidth: Unbounded, MaxHeight: Unbounded}
}

// IsTight returns true if the constraints admit exactly one size.
func (c Constraints) IsTight() bool {
	return c.MinWidth == c.MaxWidth && c.MinHeight == c.MaxHeight
}

// HasBoundedWidth returns true if the width has a finite maximum.
func (c Constraints) HasBoundedWidth() bool {
	return c.MaxWidth < Unbounded
}

// HasBoundedHeight returns true if the height has a finite maximum.
func (c Constraints) HasBoundedHeight() bool {
	return c.MaxHeight < Unbounded
}

// Constrain clamps a size into the constraint range.
func (c Constraints) Constrain(size geometry.Size) geometry.Size {
	return geometry.Size{
		Width:  clampInt(size.Width, c.MinWidth, c.MaxWidth),
		Height: clampInt(size.Height, c.MinHeight, c.MaxHeight),
	}
}

// MaxSize returns the largest size the constraints allow.
func (c Constraints) MaxSize() geometry.Size {
	return geometry.Size{Width: c.MaxWidth, Height: c.MaxHeight}
}

// MinSize returns the smallest size the constraints allow.
func (c Constraints) MinSize() geometry.Size {
	return geometry.Size{Width: c.MinWidth, Height: c.MinHeight}
}

// Deflate shrinks the constraint range by the given insets, clamping
// at zero. Used by decorating containers that reserve edge cells.
func (c Constraints) Deflate(insets EdgeInsets) Constraints {
	h := insets.Horizontal()
	v := insets.Vertical()
	out := Constraints{
		MinWidth:  maxInt(0, c.MinWidth-h),
		MinHeight: maxInt(0, c.MinHeight-v),
		MaxWidth:  c.MaxWidth,
		MaxHeight: c.MaxHeight,
	}
	if c.HasBoundedWidth() {
		out.MaxWidth = maxInt(0, c.MaxWidth-h)
	}
	if c.HasBoundedHeight() {
		out.MaxHeight = maxInt(0, c.MaxHeight-v)
	}
	return out
}

// LoosenHeight returns a copy with the height minimum removed and the
// height maximum unbounded. Used when measuring natural heights.
func (c Constraints) LoosenHeight() Constraints {
	c.MinHeight = 0
	c.MaxHeight = Unbounded
	return c
}

// LoosenWidth returns a copy with the width minimum removed and the
// width maximum unbounded. Used when measuring natural widths.
func (c Constraints) LoosenWidth() Constraints {
	c.MinWidth = 0
	c.MaxWidth = Unbounded
	return c
}

// EdgeInsets describe per-side spacing in cells.
type EdgeInsets struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// EdgeInsetsAll returns uniform insets on every side.
func EdgeInsetsAll(n int) EdgeInsets {
	return EdgeInsets{Left: n, Top: n, Right: n, Bottom: n}
}

// EdgeInsetsSymmetric returns insets with the given horizontal and
// vertical components.
func EdgeInsetsSymmetric(horizontal, vertical int) EdgeInsets {
	return EdgeInsets{Left: horizontal, Top: vertical, Right: horizontal, Bottom: vertical}
}

// Horizontal returns the combined left and right insets.
func (e EdgeInsets) Horizontal() int {
	return e.Left + e.Right
}

// Vertical returns the combined top and bottom insets.
func (e EdgeInsets) Vertical() int {
	return e.Top + e.Bottom
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
