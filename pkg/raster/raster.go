// Package raster renders a cell buffer into an RGBA image using a
// fixed bitmap face. It backs image snapshots in tests and anything
// else that wants a picture of a frame.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/tide/pkg/cells"
)

// Pixel footprint of one cell under basicfont.Face7x13.
const (
	CellWidth  = 7
	CellHeight = 13
)

var (
	defaultFG = color.RGBA{0xe5, 0xe5, 0xe5, 0xff}
	defaultBG = color.RGBA{0x0c, 0x0c, 0x0c, 0xff}
)

// Render draws a buffer into a fresh image, CellWidth by CellHeight
// pixels per cell. Runes outside the face's coverage leave their
// background-filled cells blank; wide runes claim both their columns.
func Render(buf *cells.Buffer) *image.RGBA {
	size := buf.Size()
	img := image.NewRGBA(image.Rect(0, 0, size.Width*CellWidth, size.Height*CellHeight))
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			c := buf.At(x, y)
			if c.IsContinuation() {
				continue
			}
			drawCell(img, x, y, c)
		}
	}
	return img
}

func drawCell(img *image.RGBA, x, y int, c cells.Cell) {
	face := basicfont.Face7x13
	fg := Color(c.Style.FG, defaultFG)
	bg := Color(c.Style.BG, defaultBG)
	if c.Style.Attr.Has(cells.AttrBold) && c.Style.FG.Mode == cells.ColorModeANSI && c.Style.FG.Index < 8 {
		fg = ansiPalette[c.Style.FG.Index+8]
	}
	if c.Style.Attr.Has(cells.AttrDim) {
		fg = color.RGBA{fg.R / 2, fg.G / 2, fg.B / 2, 0xff}
	}
	if c.Style.Attr.Has(cells.AttrReverse) {
		fg, bg = bg, fg
	}

	span := 1
	if c.Width() == 2 {
		span = 2
	}
	rect := image.Rect(x*CellWidth, y*CellHeight, (x+span)*CellWidth, (y+1)*CellHeight)
	draw.Draw(img, rect, image.NewUniform(bg), image.Point{}, draw.Src)

	if c.Rune != ' ' {
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(fg),
			Face: face,
			Dot:  fixed.P(x*CellWidth, y*CellHeight+face.Ascent),
		}
		d.DrawString(string(c.Rune))
	}
	if c.Style.Attr.Has(cells.AttrUnderline) {
		lineY := y*CellHeight + face.Ascent + 1
		for px := rect.Min.X; px < rect.Max.X; px++ {
			img.SetRGBA(px, lineY, fg)
		}
	}
	if c.Style.Attr.Has(cells.AttrStrike) {
		lineY := y*CellHeight + CellHeight/2
		for px := rect.Min.X; px < rect.Max.X; px++ {
			img.SetRGBA(px, lineY, fg)
		}
	}
}

// Color resolves a cell color to a concrete pixel color, substituting
// def for the terminal-default sentinel.
func Color(c cells.Color, def color.RGBA) color.RGBA {
	switch c.Mode {
	case cells.ColorModeANSI:
		return ansiPalette[c.Index&0x0f]
	case cells.ColorMode256:
		return xterm256(c.Index)
	case cells.ColorModeRGB:
		return color.RGBA{c.R, c.G, c.B, 0xff}
	default:
		return def
	}
}

// ansiPalette is the xterm rendition of the 16 basic colors.
var ansiPalette = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xff},
	{0xcd, 0x00, 0x00, 0xff},
	{0x00, 0xcd, 0x00, 0xff},
	{0xcd, 0xcd, 0x00, 0xff},
	{0x00, 0x00, 0xee, 0xff},
	{0xcd, 0x00, 0xcd, 0xff},
	{0x00, 0xcd, 0xcd, 0xff},
	{0xe5, 0xe5, 0xe5, 0xff},
	{0x7f, 0x7f, 0x7f, 0xff},
	{0xff, 0x00, 0x00, 0xff},
	{0x00, 0xff, 0x00, 0xff},
	{0xff, 0xff, 0x00, 0xff},
	{0x5c, 0x5c, 0xff, 0xff},
	{0xff, 0x00, 0xff, 0xff},
	{0x00, 0xff, 0xff, 0xff},
	{0xff, 0xff, 0xff, 0xff},
}

// colorCube holds the six levels of the xterm 6x6x6 color cube.
var colorCube = [6]uint8{0x00, 0x5f, 0x87, 0xaf, 0xd7, 0xff}

func xterm256(index uint8) color.RGBA {
	if index < 16 {
		return ansiPalette[index]
	}
	if index < 232 {
		n := int(index) - 16
		return color.RGBA{colorCube[n/36], colorCube[n/6%6], colorCube[n%6], 0xff}
	}
	v := uint8(8 + 10*(int(index)-232))
	return color.RGBA{v, v, v, 0xff}
}
