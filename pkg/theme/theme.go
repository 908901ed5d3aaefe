// Package theme loads named styles from an optional YAML file. A
// theme is a flat name to style map: applications look styles up by
// convention ("title", "selection", "error") and users override them
// without touching code.
package theme

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/tide/pkg/cells"
)

// StyleDef is the YAML shape of one named style.
type StyleDef struct {
	FG        string `yaml:"fg,omitempty"`
	BG        string `yaml:"bg,omitempty"`
	Bold      bool   `yaml:"bold,omitempty"`
	Dim       bool   `yaml:"dim,omitempty"`
	Italic    bool   `yaml:"italic,omitempty"`
	Underline bool   `yaml:"underline,omitempty"`
	Reverse   bool   `yaml:"reverse,omitempty"`
	Strike    bool   `yaml:"strike,omitempty"`
}

// File is the YAML shape of a theme file.
type File struct {
	Styles map[string]StyleDef `yaml:"styles"`
}

// Theme is a set of named styles.
type Theme struct {
	styles map[string]cells.Style
}

// Default returns the built-in styles. Loaded files overlay onto
// these, so a partial theme file leaves the rest intact.
func Default() *Theme {
	return &Theme{styles: map[string]cells.Style{
		"title":       {Attr: cells.AttrBold},
		"border":      {FG: cells.BrightBlack},
		"selection":   {Attr: cells.AttrReverse},
		"placeholder": {FG: cells.BrightBlack},
		"error":       {FG: cells.BrightRed, Attr: cells.AttrBold},
		"accent":      {FG: cells.Cyan},
	}}
}

// Parse builds a theme from YAML, overlaying the defaults.
func Parse(data []byte) (*Theme, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("theme: parse: %w", err)
	}
	t := Default()
	for name, def := range file.Styles {
		style, err := def.Style()
		if err != nil {
			return nil, fmt.Errorf("theme: style %q: %w", name, err)
		}
		t.styles[name] = style
	}
	return t, nil
}

// Load reads and parses a theme file.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme: read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOptional reads a theme file if present. A missing file is not
// an error and yields the defaults.
func LoadOptional(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("theme: read %s: %w", path, err)
	}
	return Parse(data)
}

// Style returns the named style, or the zero style when the theme
// does not define it.
func (t *Theme) Style(name string) cells.Style {
	return t.styles[name]
}

// Define adds or replaces a named style.
func (t *Theme) Define(name string, style cells.Style) {
	t.styles[name] = style
}

// Style resolves the definition to a concrete style.
func (d StyleDef) Style() (cells.Style, error) {
	fg, err := parseColor(d.FG)
	if err != nil {
		return cells.Style{}, err
	}
	bg, err := parseColor(d.BG)
	if err != nil {
		return cells.Style{}, err
	}
	s := cells.Style{FG: fg, BG: bg}
	if d.Bold {
		s = s.Bold()
	}
	if d.Dim {
		s = s.Dim()
	}
	if d.Italic {
		s = s.Italic()
	}
	if d.Underline {
		s = s.Underline()
	}
	if d.Reverse {
		s = s.Reverse()
	}
	if d.Strike {
		s = s.Strike()
	}
	return s, nil
}

// parseColor reads one color term: a name ("red", "bright-cyan"), a
// palette index ("135"), a hex triplet ("#5fd7af"), or "default".
func parseColor(s string) (cells.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "default" {
		return cells.Color{}, nil
	}
	if c, ok := colorNames[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		v, err := strconv.ParseUint(hex, 16, 32)
		if len(hex) != 6 || err != nil {
			return cells.Color{}, fmt.Errorf("bad hex color %q", s)
		}
		return cells.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return cells.Color{}, fmt.Errorf("palette index %d out of range", n)
		}
		return cells.Indexed(uint8(n)), nil
	}
	return cells.Color{}, fmt.Errorf("unknown color %q", s)
}

var colorNames = map[string]cells.Color{
	"black":          cells.Black,
	"red":            cells.Red,
	"green":          cells.Green,
	"yellow":         cells.Yellow,
	"blue":           cells.Blue,
	"magenta":        cells.Magenta,
	"cyan":           cells.Cyan,
	"white":          cells.White,
	"bright-black":   cells.BrightBlack,
	"gray":           cells.BrightBlack,
	"bright-red":     cells.BrightRed,
	"bright-green":   cells.BrightGreen,
	"bright-yellow":  cells.BrightYellow,
	"bright-blue":    cells.BrightBlue,
	"bright-magenta": cells.BrightMagenta,
	"bright-cyan":    cells.BrightCyan,
	"bright-white":   cells.BrightWhite,
}
