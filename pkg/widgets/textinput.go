package widgets

import (
	"slices"

	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/input"
	"github.com/go-drift/tide/pkg/layout"
)

// TextInputController holds a line of text and a cursor position in
// rune index terms. Every mutation notifies listeners, so a widget
// showing the controller repaints and application code can edit the
// text from outside the widget tree.
//
// The controller is not safe for concurrent use; edit it from the UI
// goroutine only.
type TextInputController struct {
	core.ControllerBase
	text   []rune
	cursor int
}

// NewTextInputController returns a controller holding the given text
// with the cursor after the last rune.
func NewTextInputController(text string) *TextInputController {
	c := &TextInputController{text: []rune(text)}
	c.cursor = len(c.text)
	return c
}

// Text returns the current content.
func (c *TextInputController) Text() string {
	return string(c.text)
}

// Cursor returns the cursor position as a rune index, 0 to len(text).
func (c *TextInputController) Cursor() int {
	return c.cursor
}

// SetText replaces the content, clamping the cursor to the new end.
func (c *TextInputController) SetText(text string) {
	c.text = []rune(text)
	if c.cursor > len(c.text) {
		c.cursor = len(c.text)
	}
	c.NotifyListeners()
}

// SetCursor moves the cursor to a rune index, clamped to the text.
func (c *TextInputController) SetCursor(pos int) {
	pos = clamp(pos, 0, len(c.text))
	if pos == c.cursor {
		return
	}
	c.cursor = pos
	c.NotifyListeners()
}

// Insert places a rune at the cursor and advances past it.
func (c *TextInputController) Insert(r rune) {
	c.text = slices.Insert(c.text, c.cursor, r)
	c.cursor++
	c.NotifyListeners()
}

// InsertString places a string at the cursor and advances past it.
func (c *TextInputController) InsertString(s string) {
	runes := []rune(s)
	if len(runes) == 0 {
		return
	}
	c.text = slices.Insert(c.text, c.cursor, runes...)
	c.cursor += len(runes)
	c.NotifyListeners()
}

// Backspace removes the rune before the cursor. Reports whether
// anything changed.
func (c *TextInputController) Backspace() bool {
	if c.cursor == 0 {
		return false
	}
	c.text = slices.Delete(c.text, c.cursor-1, c.cursor)
	c.cursor--
	c.NotifyListeners()
	return true
}

// Delete removes the rune under the cursor. Reports whether anything
// changed.
func (c *TextInputController) Delete() bool {
	if c.cursor >= len(c.text) {
		return false
	}
	c.text = slices.Delete(c.text, c.cursor, c.cursor+1)
	c.NotifyListeners()
	return true
}

// MoveLeft steps the cursor one rune back.
func (c *TextInputController) MoveLeft() bool {
	if c.cursor == 0 {
		return false
	}
	c.cursor--
	c.NotifyListeners()
	return true
}

// MoveRight steps the cursor one rune forward.
func (c *TextInputController) MoveRight() bool {
	if c.cursor >= len(c.text) {
		return false
	}
	c.cursor++
	c.NotifyListeners()
	return true
}

// Home moves the cursor to the start of the line.
func (c *TextInputController) Home() bool {
	if c.cursor == 0 {
		return false
	}
	c.cursor = 0
	c.NotifyListeners()
	return true
}

// End moves the cursor past the last rune.
func (c *TextInputController) End() bool {
	if c.cursor == len(c.text) {
		return false
	}
	c.cursor = len(c.text)
	c.NotifyListeners()
	return true
}

// KillToEnd removes everything from the cursor to the end of the line.
func (c *TextInputController) KillToEnd() bool {
	if c.cursor >= len(c.text) {
		return false
	}
	c.text = c.text[:c.cursor]
	c.NotifyListeners()
	return true
}

// KillToStart removes everything before the cursor.
func (c *TextInputController) KillToStart() bool {
	if c.cursor == 0 {
		return false
	}
	c.text = slices.Delete(c.text, 0, c.cursor)
	c.cursor = 0
	c.NotifyListeners()
	return true
}

// TextInput is a single-line text editor.
//
// Pass a [TextInputController] to own the text from outside; without
// one the widget keeps a private controller for its lifetime. While
// Focused the widget binds Emacs-style editing keys and requests the
// hardware cursor at its insertion point:
//
//	printable runes   insert at the cursor
//	backspace, C-h    delete backward
//	delete, C-d       delete forward
//	C-b, left         cursor left
//	C-f, right        cursor right
//	C-a, home         line start
//	C-e, end          line end
//	C-k               kill to end of line
//	C-u               kill to start of line
//	RET               submit via OnSubmit
//
// OnChange fires for edits made through the keymap, not for
// programmatic controller calls.
type TextInput struct {
	core.StatefulBase
	Controller  *TextInputController
	Placeholder string
	Focused     bool
	OnChange    func(text string)
	OnSubmit    func(text string)

	Style            cells.Style
	PlaceholderStyle cells.Style
}

func (t TextInput) CreateState() core.State {
	return &textInputState{}
}

type textInputState struct {
	core.StateBase
	keymap   *input.Keymap
	owned    *TextInputController
	unlisten func()
}

func (s *textInputState) widget() TextInput {
	return s.Element().Widget().(TextInput)
}

func (s *textInputState) controller() *TextInputController {
	if c := s.widget().Controller; c != nil {
		return c
	}
	return s.owned
}

func (s *textInputState) InitState() {
	if s.widget().Controller == nil {
		s.owned = NewTextInputController("")
	}
	s.listen()
	s.OnDispose(func() {
		if s.unlisten != nil {
			s.unlisten()
		}
		if s.owned != nil {
			s.owned.Dispose()
		}
	})

	k := input.NewKeymap()
	k.BindAny("input-insert", func(keys []input.Chord) input.ShouldRender {
		chord := keys[len(keys)-1]
		s.controller().Insert(chord.Rune)
		s.changed()
		return true
	})
	k.BindNamed("input-backspace", "backspace", s.edit((*TextInputController).Backspace))
	k.BindNamed("input-backspace", "C-h", s.edit((*TextInputController).Backspace))
	k.BindNamed("input-delete", "delete", s.edit((*TextInputController).Delete))
	k.BindNamed("input-delete", "C-d", s.edit((*TextInputController).Delete))
	k.BindNamed("input-kill-to-end", "C-k", s.edit((*TextInputController).KillToEnd))
	k.BindNamed("input-kill-to-start", "C-u", s.edit((*TextInputController).KillToStart))
	k.BindNamed("input-left", "C-b", s.motion((*TextInputController).MoveLeft))
	k.BindNamed("input-left", "left", s.motion((*TextInputController).MoveLeft))
	k.BindNamed("input-right", "C-f", s.motion((*TextInputController).MoveRight))
	k.BindNamed("input-right", "right", s.motion((*TextInputController).MoveRight))
	k.BindNamed("input-home", "C-a", s.motion((*TextInputController).Home))
	k.BindNamed("input-home", "home", s.motion((*TextInputController).Home))
	k.BindNamed("input-end", "C-e", s.motion((*TextInputController).End))
	k.BindNamed("input-end", "end", s.motion((*TextInputController).End))
	k.BindNamed("input-submit", "RET", func([]input.Chord) input.ShouldRender {
		w := s.widget()
		if w.OnSubmit != nil {
			w.OnSubmit(s.controller().Text())
		}
		return true
	})
	s.keymap = k
}

func (s *textInputState) listen() {
	if s.unlisten != nil {
		s.unlisten()
	}
	s.unlisten = s.controller().AddListener(func() {
		s.SetState(nil)
	})
}

func (s *textInputState) DidUpdateWidget(oldWidget core.StatefulWidget) {
	if old, ok := oldWidget.(TextInput); ok && old.Controller != s.widget().Controller {
		s.listen()
	}
}

// edit runs a text mutation and reports the change through OnChange.
func (s *textInputState) edit(op func(*TextInputController) bool) input.Handler {
	return func([]input.Chord) input.ShouldRender {
		if !op(s.controller()) {
			return false
		}
		s.changed()
		return true
	}
}

// motion runs a cursor move; no OnChange since the text is untouched.
func (s *textInputState) motion(op func(*TextInputController) bool) input.Handler {
	return func([]input.Chord) input.ShouldRender {
		return input.ShouldRender(op(s.controller()))
	}
}

func (s *textInputState) changed() {
	if w := s.widget(); w.OnChange != nil {
		w.OnChange(s.controller().Text())
	}
}

// Keymap participates in key dispatch only while focused.
func (s *textInputState) Keymap() *input.Keymap {
	if !s.widget().Focused {
		return nil
	}
	return s.keymap
}

func (s *textInputState) Build(ctx core.BuildContext) core.Widget {
	w := s.widget()
	c := s.controller()
	return textInputView{
		text:             c.Text(),
		cursor:           c.Cursor(),
		focused:          w.Focused,
		placeholder:      w.Placeholder,
		style:            w.Style,
		placeholderStyle: w.PlaceholderStyle,
	}
}

type textInputView struct {
	core.RenderObjectBase
	text             string
	cursor           int
	focused          bool
	placeholder      string
	style            cells.Style
	placeholderStyle cells.Style
}

func (v textInputView) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	field := &renderTextInput{}
	field.apply(v)
	field.SetSelf(field)
	return field
}

func (v textInputView) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if field, ok := renderObject.(*renderTextInput); ok {
		field.apply(v)
		field.MarkNeedsLayout()
	}
}

type renderTextInput struct {
	layout.RenderBoxBase
	text             string
	cursor           int
	focused          bool
	placeholder      string
	style            cells.Style
	placeholderStyle cells.Style
}

func (r *renderTextInput) apply(v textInputView) {
	r.text = v.text
	r.cursor = v.cursor
	r.focused = v.focused
	r.placeholder = v.placeholder
	r.style = v.style
	r.placeholderStyle = v.placeholderStyle
}

func (r *renderTextInput) PerformLayout() {
	constraints := r.Constraints()
	width := constraints.MaxWidth
	if !constraints.HasBoundedWidth() {
		// Shrink-wrap with one spare column so the cursor can sit
		// past the last rune.
		width = cells.StringWidth(r.text) + 1
	}
	r.SetSize(constraints.Constrain(geometry.Size{Width: width, Height: 1}))
}

// Paint renders the line scrolled so the cursor is always inside the
// field, and claims the hardware cursor at the insertion point. The
// scroll offset is derived from the cursor column alone, so the view
// needs no state of its own.
func (r *renderTextInput) Paint(ctx *layout.PaintContext) {
	size := r.Size()
	if size.IsEmpty() {
		return
	}
	ctx.Canvas.Fill(r.style)
	w := size.Width

	if r.text == "" && r.placeholder != "" {
		ctx.Canvas.WriteString(0, 0, cells.Truncate(r.placeholder, w, ""), r.placeholderStyle)
		ctx.SetCursor(geometry.Point{}, r.focused)
		return
	}

	runes := []rune(r.text)
	cursorCol := 0
	for _, ru := range runes[:clamp(r.cursor, 0, len(runes))] {
		cursorCol += cells.RuneWidth(ru)
	}
	startCol := 0
	if cursorCol >= w {
		startCol = cursorCol - w + 1
	}

	x := -startCol
	for _, ru := range runes {
		rw := cells.RuneWidth(ru)
		if x >= 0 {
			ctx.Canvas.SetRune(x, 0, ru, r.style)
		}
		x += rw
		if x >= w {
			break
		}
	}

	ctx.SetCursor(geometry.Point{X: cursorCol - startCol}, r.focused)
}
