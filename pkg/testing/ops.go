package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/render"
)

// FormatOps renders a paint op stream one op per line, for asserting
// on exactly what a frame redrew.
func FormatOps(ops []render.PaintOp) string {
	var b strings.Builder
	for i, op := range ops {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(FormatOp(op))
	}
	return b.String()
}

// FormatOp renders a single paint op.
func FormatOp(op render.PaintOp) string {
	switch op := op.(type) {
	case render.WriteRun:
		return fmt.Sprintf("write (%d,%d) %q %s", op.Pos.X, op.Pos.Y, runText(op.Cells), runStyle(op.Cells))
	case render.ClearRegion:
		r := op.Region
		return fmt.Sprintf("clear (%d,%d %dx%d) %s", r.X, r.Y, r.Width, r.Height, formatStyle(op.Style))
	case render.MoveCursor:
		if !op.Visible {
			return "cursor hidden"
		}
		return fmt.Sprintf("cursor (%d,%d)", op.Pos.X, op.Pos.Y)
	default:
		return fmt.Sprintf("%T", op)
	}
}

func runText(run []cells.Cell) string {
	var b strings.Builder
	for _, c := range run {
		if c.IsContinuation() {
			continue
		}
		b.WriteRune(c.Rune)
	}
	return b.String()
}

// runStyle formats the run's style, or "mixed" when the cells differ.
func runStyle(run []cells.Cell) string {
	if len(run) == 0 {
		return formatStyle(cells.Style{})
	}
	style := run[0].Style
	for _, c := range run[1:] {
		if c.Style != style {
			return "[mixed]"
		}
	}
	return formatStyle(style)
}

var attrNames = []struct {
	attr cells.Attr
	name string
}{
	{cells.AttrBold, "bold"},
	{cells.AttrDim, "dim"},
	{cells.AttrItalic, "italic"},
	{cells.AttrUnderline, "underline"},
	{cells.AttrReverse, "reverse"},
	{cells.AttrStrike, "strike"},
}

func formatStyle(s cells.Style) string {
	if s == (cells.Style{}) {
		return "[default]"
	}
	var parts []string
	if !s.FG.IsDefault() {
		parts = append(parts, "fg="+formatColor(s.FG))
	}
	if !s.BG.IsDefault() {
		parts = append(parts, "bg="+formatColor(s.BG))
	}
	for _, a := range attrNames {
		if s.Attr.Has(a.attr) {
			parts = append(parts, a.name)
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatColor(c cells.Color) string {
	switch c.Mode {
	case cells.ColorModeANSI:
		return fmt.Sprintf("ansi(%d)", c.Index)
	case cells.ColorMode256:
		return fmt.Sprintf("256(%d)", c.Index)
	case cells.ColorModeRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	default:
		return "default"
	}
}
