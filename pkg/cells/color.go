package cells

// ColorMode selects how a Color value is interpreted.
type ColorMode uint8

const (
	// ColorModeDefault leaves the terminal's default color in place.
	ColorModeDefault ColorMode = iota
	// ColorModeANSI selects one of the 16 basic terminal colors.
	ColorModeANSI
	// ColorMode256 selects an entry in the xterm 256-color palette.
	ColorMode256
	// ColorModeRGB selects a 24-bit truecolor value.
	ColorModeRGB
)

// Color is a terminal color. The zero value is the terminal default.
type Color struct {
	Mode  ColorMode
	Index uint8
	R     uint8
	G     uint8
	B     uint8
}

// ANSI returns one of the 16 basic terminal colors (0-15).
func ANSI(index uint8) Color {
	return Color{Mode: ColorModeANSI, Index: index & 0x0F}
}

// Indexed returns an entry from the xterm 256-color palette.
func Indexed(index uint8) Color {
	return Color{Mode: ColorMode256, Index: index}
}

// RGB returns a 24-bit truecolor value.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorModeRGB, R: r, G: g, B: b}
}

// IsDefault returns true if the color is the terminal default.
func (c Color) IsDefault() bool {
	return c.Mode == ColorModeDefault
}

// Basic terminal colors.
var (
	Black         = ANSI(0)
	Red           = ANSI(1)
	Green         = ANSI(2)
	Yellow        = ANSI(3)
	Blue          = ANSI(4)
	Magenta       = ANSI(5)
	Cyan          = ANSI(6)
	White         = ANSI(7)
	BrightBlack   = ANSI(8)
	BrightRed     = ANSI(9)
	BrightGreen   = ANSI(10)
	BrightYellow  = ANSI(11)
	BrightBlue    = ANSI(12)
	BrightMagenta = ANSI(13)
	BrightCyan    = ANSI(14)
	BrightWhite   = ANSI(15)
)
