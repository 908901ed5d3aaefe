package testing

import (
	"testing"

	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/render"
)

func TestFormatOps(t *testing.T) {
	bold := cells.Style{Attr: cells.AttrBold}
	ops := []render.PaintOp{
		render.WriteRun{
			Pos:   geometry.Point{X: 2, Y: 1},
			Cells: []cells.Cell{{Rune: 'h', Style: bold}, {Rune: 'i', Style: bold}},
		},
		render.ClearRegion{
			Region: geometry.Rect{X: 0, Y: 0, Width: 4, Height: 2},
			Style:  cells.Style{BG: cells.Blue},
		},
		render.MoveCursor{Pos: geometry.Point{X: 3, Y: 1}, Visible: true},
		render.MoveCursor{},
	}

	want := "write (2,1) \"hi\" [bold]\n" +
		"clear (0,0 4x2) [bg=ansi(4)]\n" +
		"cursor (3,1)\n" +
		"cursor hidden"
	if got := FormatOps(ops); got != want {
		t.Errorf("FormatOps =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatOp_WideRuneAndMixedStyles(t *testing.T) {
	wide := render.WriteRun{
		Pos:   geometry.Point{X: 0, Y: 0},
		Cells: []cells.Cell{{Rune: '世'}, {}, {Rune: 'x'}},
	}
	if got := FormatOp(wide); got != "write (0,0) \"世x\" [default]" {
		t.Errorf("wide run = %q", got)
	}

	mixed := render.WriteRun{
		Pos: geometry.Point{X: 0, Y: 0},
		Cells: []cells.Cell{
			{Rune: 'a', Style: cells.Style{FG: cells.Red}},
			{Rune: 'b', Style: cells.Style{FG: cells.Green}},
		},
	}
	if got := FormatOp(mixed); got != "write (0,0) \"ab\" [mixed]" {
		t.Errorf("mixed run = %q", got)
	}
}

func TestFormatStyle(t *testing.T) {
	tests := []struct {
		style cells.Style
		want  string
	}{
		{cells.Style{}, "[default]"},
		{cells.Style{FG: cells.BrightRed, Attr: cells.AttrBold}, "[fg=ansi(9) bold]"},
		{cells.Style{FG: cells.Indexed(135)}, "[fg=256(135)]"},
		{cells.Style{BG: cells.RGB(0x5f, 0xd7, 0xaf)}, "[bg=#5fd7af]"},
		{cells.Style{Attr: cells.AttrDim | cells.AttrReverse}, "[dim reverse]"},
	}
	for _, tt := range tests {
		if got := formatStyle(tt.style); got != tt.want {
			t.Errorf("formatStyle(%+v) = %q, want %q", tt.style, got, tt.want)
		}
	}
}
