package cells

import "github.com/mattn/go-runewidth"

// RuneWidth returns the number of columns a rune occupies: 0 for
// combining and control characters, 2 for East Asian wide runes,
// otherwise 1.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// StringWidth returns the number of columns a string occupies.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens a string to at most width columns, appending the
// tail (often "…") when anything was cut. The result never exceeds
// width columns.
func Truncate(s string, width int, tail string) string {
	return runewidth.Truncate(s, width, tail)
}
