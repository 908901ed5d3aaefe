package render

import (
	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/geometry"
)

// mergeGap is the number of unchanged cells the differ will rewrite
// rather than split one run into two. Re-sending a handful of cells
// is cheaper than the cursor move a separate run would cost.
const mergeGap = 4

// Diff computes the paint operations that transform prev into cur.
// Changed cells on a row are coalesced into horizontal WriteRuns,
// absorbing short unchanged gaps. When sizes differ, or prev is nil,
// the whole surface is repainted.
//
// Replaying the result with Apply onto prev yields a buffer equal to
// cur.
func Diff(prev, cur *cells.Buffer) []PaintOp {
	if prev == nil || prev.Size() != cur.Size() {
		return FullRepaint(cur)
	}

	size := cur.Size()
	var ops []PaintOp
	for y := 0; y < size.Height; y++ {
		prow := prev.Row(y)
		crow := cur.Row(y)
		x := 0
		for x < size.Width {
			if prow[x] == crow[x] {
				x++
				continue
			}
			start, end := runBounds(prow, crow, x)
			run := alignRun(crow, start, end)
			ops = append(ops, WriteRun{
				Pos:   geometry.Point{X: run.X, Y: y},
				Cells: append([]cells.Cell(nil), crow[run.X:run.Right()]...),
			})
			x = run.Right()
		}
	}
	return ops
}

// runBounds extends a run of differing cells starting at x, skipping
// over gaps of up to mergeGap unchanged cells when more changes
// follow.
func runBounds(prow, crow []cells.Cell, x int) (start, end int) {
	start = x
	end = x
	for end < len(crow) {
		if prow[end] != crow[end] {
			end++
			continue
		}
		gap := 0
		for end+gap < len(crow) && prow[end+gap] == crow[end+gap] {
			gap++
		}
		if gap > mergeGap || end+gap >= len(crow) {
			break
		}
		end += gap
	}
	return start, end
}

// alignRun widens [start, end) so it never begins on a continuation
// cell or ends on a wide head, keeping wide-rune pairs intact in the
// emitted run.
func alignRun(crow []cells.Cell, start, end int) geometry.Rect {
	for start > 0 && crow[start].IsContinuation() {
		start--
	}
	for end < len(crow) && crow[end].IsContinuation() {
		end++
	}
	return geometry.Rect{X: start, Width: end - start, Height: 1}
}

// FullRepaint emits a full redraw of the buffer: a clear of the whole
// surface followed by runs for every non-blank stretch of each row.
func FullRepaint(cur *cells.Buffer) []PaintOp {
	size := cur.Size()
	ops := []PaintOp{ClearRegion{Region: cur.Bounds()}}
	blank := cells.Blank(cells.Style{})
	for y := 0; y < size.Height; y++ {
		crow := cur.Row(y)
		x := 0
		for x < size.Width {
			if crow[x] == blank {
				x++
				continue
			}
			start := x
			end := x
			for end < size.Width {
				if crow[end] != blank {
					end++
					continue
				}
				gap := 0
				for end+gap < size.Width && crow[end+gap] == blank {
					gap++
				}
				if gap > mergeGap || end+gap >= size.Width {
					break
				}
				end += gap
			}
			run := alignRun(crow, start, end)
			ops = append(ops, WriteRun{
				Pos:   geometry.Point{X: run.X, Y: y},
				Cells: append([]cells.Cell(nil), crow[run.X:run.Right()]...),
			})
			x = run.Right()
		}
	}
	return ops
}
