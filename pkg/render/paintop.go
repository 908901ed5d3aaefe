package render

import (
	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/geometry"
)

// PaintOp is one instruction for a backend to apply to its surface.
// The concrete types are WriteRun, ClearRegion and MoveCursor.
type PaintOp interface {
	paintOp()
}

// WriteRun writes a horizontal run of cells starting at Pos. Runs
// carry continuation cells explicitly, so replaying a run reproduces
// wide runes byte for byte.
type WriteRun struct {
	Pos   geometry.Point
	Cells []cells.Cell
}

func (WriteRun) paintOp() {}

// ClearRegion fills a rectangle with blank cells of the given style.
type ClearRegion struct {
	Region geometry.Rect
	Style  cells.Style
}

func (ClearRegion) paintOp() {}

// MoveCursor positions the hardware cursor and toggles its
// visibility. Emitted at most once per frame, after all drawing ops.
type MoveCursor struct {
	Pos     geometry.Point
	Visible bool
}

func (MoveCursor) paintOp() {}

// Apply replays ops onto a buffer. MoveCursor ops are ignored; the
// buffer has no cursor. The buffer must already have the size the ops
// were produced for, surface sizing is the backend's business.
func Apply(dst *cells.Buffer, ops []PaintOp) {
	for _, op := range ops {
		switch o := op.(type) {
		case ClearRegion:
			dst.Fill(o.Region, cells.Blank(o.Style))
		case WriteRun:
			for i, c := range o.Cells {
				dst.Set(o.Pos.X+i, o.Pos.Y, c)
			}
		}
	}
}
