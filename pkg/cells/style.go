package cells

// Attr is a bitmask of text attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
	AttrStrike
)

// Has returns true if every attribute in mask is set.
func (a Attr) Has(mask Attr) bool {
	return a&mask == mask
}

// Style is the visual treatment of a cell. The zero value renders with
// the terminal's default colors and no attributes.
type Style struct {
	FG   Color
	BG   Color
	Attr Attr
}

// WithFG returns a copy of the style with the given foreground color.
func (s Style) WithFG(c Color) Style {
	s.FG = c
	return s
}

// WithBG returns a copy of the style with the given background color.
func (s Style) WithBG(c Color) Style {
	s.BG = c
	return s
}

// Bold returns a copy of the style with the bold attribute set.
func (s Style) Bold() Style {
	s.Attr |= AttrBold
	return s
}

// Dim returns a copy of the style with the dim attribute set.
func (s Style) Dim() Style {
	s.Attr |= AttrDim
	return s
}

// Italic returns a copy of the style with the italic attribute set.
func (s Style) Italic() Style {
	s.Attr |= AttrItalic
	return s
}

// Underline returns a copy of the style with the underline attribute set.
func (s Style) Underline() Style {
	s.Attr |= AttrUnderline
	return s
}

// Reverse returns a copy of the style with the reverse-video attribute set.
func (s Style) Reverse() Style {
	s.Attr |= AttrReverse
	return s
}

// Strike returns a copy of the style with the strikethrough attribute set.
func (s Style) Strike() Style {
	s.Attr |= AttrStrike
	return s
}

// Merge overlays the other style on top of this one. Non-default
// colors of the overlay win and attributes are combined.
func (s Style) Merge(over Style) Style {
	if !over.FG.IsDefault() {
		s.FG = over.FG
	}
	if !over.BG.IsDefault() {
		s.BG = over.BG
	}
	s.Attr |= over.Attr
	return s
}
