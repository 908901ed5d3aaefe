package raster

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/render"
)

func inkPixels(img *image.RGBA, x0, y0, x1, y1 int, bg color.RGBA) int {
	n := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if img.RGBAAt(x, y) != bg {
				n++
			}
		}
	}
	return n
}

func TestRender_Dimensions(t *testing.T) {
	buf := cells.NewBuffer(geometry.Size{Width: 10, Height: 2})
	img := Render(buf)
	b := img.Bounds()
	if b.Dx() != 10*CellWidth || b.Dy() != 2*CellHeight {
		t.Errorf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), 10*CellWidth, 2*CellHeight)
	}
}

func TestRender_BlankBufferIsBackground(t *testing.T) {
	buf := cells.NewBuffer(geometry.Size{Width: 4, Height: 2})
	img := Render(buf)
	for _, p := range []geometry.Point{{}, {X: 13, Y: 7}, {X: 27, Y: 25}} {
		if got := img.RGBAAt(p.X, p.Y); got != defaultBG {
			t.Errorf("pixel at %+v = %v, want background %v", p, got, defaultBG)
		}
	}
}

func TestRender_GlyphInk(t *testing.T) {
	buf := cells.NewBuffer(geometry.Size{Width: 2, Height: 1})
	buf.SetRune(0, 0, 'X', cells.Style{})
	img := Render(buf)

	if n := inkPixels(img, 0, 0, CellWidth, CellHeight, defaultBG); n == 0 {
		t.Error("glyph cell has no ink")
	}
	if n := inkPixels(img, CellWidth, 0, 2*CellWidth, CellHeight, defaultBG); n != 0 {
		t.Errorf("blank cell has %d ink pixels", n)
	}
}

func TestRender_ColorMapping(t *testing.T) {
	tests := []struct {
		name  string
		color cells.Color
		want  color.RGBA
	}{
		{"ansi red", cells.Red, color.RGBA{0xcd, 0x00, 0x00, 0xff}},
		{"bright white", cells.BrightWhite, color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"cube red", cells.Indexed(196), color.RGBA{0xff, 0x00, 0x00, 0xff}},
		{"grayscale", cells.Indexed(240), color.RGBA{88, 88, 88, 0xff}},
		{"truecolor", cells.RGB(1, 2, 3), color.RGBA{1, 2, 3, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := cells.NewBuffer(geometry.Size{Width: 1, Height: 1})
			buf.Set(0, 0, cells.Blank(cells.Style{BG: tt.color}))
			img := Render(buf)
			if got := img.RGBAAt(3, 6); got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRender_ReverseSwapsColors(t *testing.T) {
	buf := cells.NewBuffer(geometry.Size{Width: 1, Height: 1})
	buf.Set(0, 0, cells.Blank(cells.Style{Attr: cells.AttrReverse}))
	img := Render(buf)
	if got := img.RGBAAt(3, 6); got != defaultFG {
		t.Errorf("reversed blank pixel = %v, want foreground %v", got, defaultFG)
	}
}

func TestRender_UnderlineRow(t *testing.T) {
	buf := cells.NewBuffer(geometry.Size{Width: 1, Height: 1})
	buf.Set(0, 0, cells.Blank(cells.Style{Attr: cells.AttrUnderline}))
	img := Render(buf)
	for x := 0; x < CellWidth; x++ {
		if got := img.RGBAAt(x, 12); got != defaultFG {
			t.Fatalf("underline pixel %d = %v, want %v", x, got, defaultFG)
		}
	}
}

// TestRender_WideRuneSpansTwoCells verifies that a wide rune's
// background claims both of its columns even though the face has no
// glyph for it.
func TestRender_WideRuneSpansTwoCells(t *testing.T) {
	buf := cells.NewBuffer(geometry.Size{Width: 3, Height: 1})
	buf.SetRune(0, 0, '世', cells.Style{BG: cells.Red})
	img := Render(buf)

	red := color.RGBA{0xcd, 0x00, 0x00, 0xff}
	if got := img.RGBAAt(3, 6); got != red {
		t.Errorf("head cell pixel = %v, want %v", got, red)
	}
	if got := img.RGBAAt(CellWidth+3, 6); got != red {
		t.Errorf("continuation cell pixel = %v, want %v", got, red)
	}
	if got := img.RGBAAt(2*CellWidth+3, 6); got != defaultBG {
		t.Errorf("cell after the pair = %v, want background", got)
	}
}

func TestRender_Deterministic(t *testing.T) {
	buf := cells.NewBuffer(geometry.Size{Width: 5, Height: 2})
	buf.SetRune(0, 0, 'a', cells.Style{FG: cells.Green})
	buf.SetRune(1, 1, 'b', cells.Style{Attr: cells.AttrBold})
	a := Render(buf)
	b := Render(buf)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("two renders of the same buffer differ")
	}
}

func TestSurface_FlushAndImage(t *testing.T) {
	s := NewSurface(geometry.Size{Width: 4, Height: 1})
	ops := []render.PaintOp{
		render.WriteRun{Pos: geometry.Point{}, Cells: []cells.Cell{
			{Rune: 'h'}, {Rune: 'i'},
		}},
	}
	if err := s.Flush(ops); err != nil {
		t.Fatalf("flush: %v", err)
	}
	img := s.Image()
	if n := inkPixels(img, 0, 0, 2*CellWidth, CellHeight, defaultBG); n == 0 {
		t.Error("flushed text left no ink")
	}

	s.Close()
	select {
	case _, ok := <-s.Events():
		if ok {
			t.Error("expected closed event channel")
		}
	default:
		t.Error("event channel still open after Close")
	}
}
