package widgets

import (
	"fmt"
	"strings"

	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/layout"
)

// TextAlign controls horizontal placement of each line within the
// widget's width.
type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// String returns a human-readable representation of the alignment.
func (a TextAlign) String() string {
	switch a {
	case TextAlignLeft:
		return "left"
	case TextAlignCenter:
		return "center"
	case TextAlignRight:
		return "right"
	default:
		return fmt.Sprintf("TextAlign(%d)", int(a))
	}
}

// Text paints a string of styled cells.
//
// Newlines split the content into lines, one row each. Lines wider
// than the granted width are clipped at the edge; a wide rune cut in
// half degrades to a blank cell. Text never wraps.
type Text struct {
	Content string
	Style   cells.Style
	Align   TextAlign
}

func (t Text) CreateElement() core.Element {
	return core.NewRenderObjectElement(t, nil)
}

func (t Text) Key() any {
	return nil
}

func (t Text) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	text := &renderText{style: t.Style, align: t.Align}
	text.setContent(t.Content)
	text.SetSelf(text)
	return text
}

func (t Text) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	text, ok := renderObject.(*renderText)
	if !ok {
		return
	}
	if text.content != t.Content || text.align != t.Align {
		text.setContent(t.Content)
		text.align = t.Align
		text.MarkNeedsLayout()
	}
	if text.style != t.Style {
		text.style = t.Style
		text.MarkNeedsPaint()
	}
}

type renderText struct {
	layout.RenderBoxBase
	content string
	lines   []string
	style   cells.Style
	align   TextAlign
}

func (r *renderText) setContent(content string) {
	r.content = content
	r.lines = strings.Split(content, "\n")
}

// measure returns the cell width of one line. The backend's measurer
// is authoritative when attached; detached render objects fall back
// to the shared width tables.
func (r *renderText) measure(line string) int {
	if owner := r.Owner(); owner != nil {
		if m := owner.Measurer(); m != nil {
			return m.MeasureString(line).Width
		}
	}
	return cells.StringWidth(line)
}

func (r *renderText) PerformLayout() {
	width := 0
	for _, line := range r.lines {
		if w := r.measure(line); w > width {
			width = w
		}
	}
	r.SetSize(r.Constraints().Constrain(geometry.Size{
		Width:  width,
		Height: len(r.lines),
	}))
}

func (r *renderText) Paint(ctx *layout.PaintContext) {
	size := r.Size()
	for y, line := range r.lines {
		if y >= size.Height {
			break
		}
		x := 0
		switch r.align {
		case TextAlignCenter:
			x = (size.Width - r.measure(line)) / 2
		case TextAlignRight:
			x = size.Width - r.measure(line)
		}
		if x < 0 {
			x = 0
		}
		ctx.Canvas.WriteString(x, y, line, r.style)
	}
}
