package widgets

import (
	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/input"
	"github.com/go-drift/tide/pkg/layout"
)

// Select is a keyboard-driven list with one highlighted entry.
//
// Selection is controlled: the widget shows Selected and reports
// requested moves through OnChange without changing anything itself.
// The owner stores the index and rebuilds, which keeps the selection
// available to the rest of the application. The only state Select
// keeps for itself is its scroll offset, which follows the selection
// so it stays in view.
//
// While Focused, Select binds list navigation:
//
//	C-n, down        next entry
//	C-p, up          previous entry
//	C-v, pagedown    one page forward
//	A-v, pageup      one page back
//	A-<              first entry
//	A->              last entry
//
// Example:
//
//	Select{
//	    Items:    names,
//	    Selected: s.index,
//	    Focused:  true,
//	    OnChange: func(i int) { s.SetState(func() { s.index = i }) },
//	}
type Select struct {
	core.StatefulBase
	Items    []string
	Selected int
	OnChange func(index int)

	// Focused enables the navigation bindings. Wrap Select in a
	// [Focusable] and pass its focus through to drive this from the
	// focus system.
	Focused bool

	ItemStyle     cells.Style
	SelectedStyle cells.Style
}

func (s Select) CreateState() core.State {
	return &selectState{}
}

type selectState struct {
	core.StateBase
	keymap  *input.Keymap
	offset  int // first visible entry
	visible int // rows in view at last layout
}

func (s *selectState) widget() Select {
	return s.Element().Widget().(Select)
}

func (s *selectState) InitState() {
	k := input.NewKeymap()
	k.BindNamed("select-next", "C-n", s.move(1))
	k.BindNamed("select-next", "down", s.move(1))
	k.BindNamed("select-prev", "C-p", s.move(-1))
	k.BindNamed("select-prev", "up", s.move(-1))
	k.BindNamed("select-page-down", "C-v", s.page(1))
	k.BindNamed("select-page-down", "pagedown", s.page(1))
	k.BindNamed("select-page-up", "A-v", s.page(-1))
	k.BindNamed("select-page-up", "pageup", s.page(-1))
	k.BindNamed("select-first", "A-<", func([]input.Chord) input.ShouldRender {
		return s.changeTo(0)
	})
	k.BindNamed("select-last", "A->", func([]input.Chord) input.ShouldRender {
		return s.changeTo(len(s.widget().Items) - 1)
	})
	s.keymap = k
}

// Keymap participates in key dispatch only while focused.
func (s *selectState) Keymap() *input.Keymap {
	if !s.widget().Focused {
		return nil
	}
	return s.keymap
}

func (s *selectState) move(delta int) input.Handler {
	return func([]input.Chord) input.ShouldRender {
		return s.changeTo(s.widget().Selected + delta)
	}
}

func (s *selectState) page(direction int) input.Handler {
	return func([]input.Chord) input.ShouldRender {
		step := s.visible
		if step < 1 {
			step = 1
		}
		return s.changeTo(s.widget().Selected + direction*step)
	}
}

// changeTo asks the owner to select the given entry. The state itself
// never moves the selection; it renders whatever comes back.
func (s *selectState) changeTo(index int) input.ShouldRender {
	w := s.widget()
	if len(w.Items) == 0 {
		return false
	}
	index = clamp(index, 0, len(w.Items)-1)
	if index == w.Selected {
		return false
	}
	if w.OnChange != nil {
		w.OnChange(index)
	}
	return true
}

// ensureInView slides the window start so the selection is visible,
// moving as little as possible.
func ensureInView(offset, selected, visible int) int {
	if selected < offset {
		return selected
	}
	if visible > 0 && selected-offset >= visible {
		return selected - visible + 1
	}
	return offset
}

func (s *selectState) Build(ctx core.BuildContext) core.Widget {
	return LayoutBuilder{Builder: func(ctx core.BuildContext, constraints layout.Constraints) core.Widget {
		w := s.widget()

		rows := constraints.MaxHeight
		if !constraints.HasBoundedHeight() {
			rows = len(w.Items)
		}
		s.visible = rows
		s.offset = clamp(s.offset, 0, max(len(w.Items)-rows, 0))
		s.offset = ensureInView(s.offset, clamp(w.Selected, 0, max(len(w.Items)-1, 0)), rows)

		end := min(s.offset+rows, len(w.Items))
		items := make([]core.Widget, 0, end-s.offset)
		for i := s.offset; i < end; i++ {
			style := w.ItemStyle
			if i == w.Selected {
				style = w.SelectedStyle
			}
			items = append(items, Item{
				WidgetKey: i,
				Sizing:    layout.Fixed(1),
				ChildWidget: Background{
					Style:       style,
					ChildWidget: Text{Content: w.Items[i], Style: style},
				},
			})
		}
		return Column{Items: items}
	}}
}
