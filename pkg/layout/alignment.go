package layout

import "github.com/go-drift/tide/pkg/geometry"

// AxisAlign selects where a child sits along one axis of the free
// space its parent granted. The zero value is the start edge.
type AxisAlign uint8

const (
	AxisStart AxisAlign = iota
	AxisCenter
	AxisEnd
)

// lead returns the free space placed before the child. Center rounds
// toward the start so a one-cell remainder lands after the child.
func (a AxisAlign) lead(free int) int {
	if free <= 0 {
		return 0
	}
	switch a {
	case AxisCenter:
		return free / 2
	case AxisEnd:
		return free
	default:
		return 0
	}
}

// Alignment positions a child rectangle within a larger area, one
// AxisAlign per axis. The zero value is top-left.
type Alignment struct {
	X AxisAlign
	Y AxisAlign
}

// Named alignments for the nine anchor positions.
var (
	AlignmentTopLeft      = Alignment{AxisStart, AxisStart}
	AlignmentTopCenter    = Alignment{AxisCenter, AxisStart}
	AlignmentTopRight     = Alignment{AxisEnd, AxisStart}
	AlignmentCenterLeft   = Alignment{AxisStart, AxisCenter}
	AlignmentCenter       = Alignment{AxisCenter, AxisCenter}
	AlignmentCenterRight  = Alignment{AxisEnd, AxisCenter}
	AlignmentBottomLeft   = Alignment{AxisStart, AxisEnd}
	AlignmentBottomCenter = Alignment{AxisCenter, AxisEnd}
	AlignmentBottomRight  = Alignment{AxisEnd, AxisEnd}
)

// WithinRect returns the origin for a child of the given size aligned
// inside rect. A child larger than rect pins to the start edge on the
// overflowing axis.
func (a Alignment) WithinRect(rect geometry.Rect, size geometry.Size) geometry.Point {
	return geometry.Point{
		X: rect.X + a.X.lead(rect.Width-size.Width),
		Y: rect.Y + a.Y.lead(rect.Height-size.Height),
	}
}

// WithinSize is WithinRect anchored at the origin.
func (a Alignment) WithinSize(area, size geometry.Size) geometry.Point {
	return a.WithinRect(geometry.Rect{Width: area.Width, Height: area.Height}, size)
}
