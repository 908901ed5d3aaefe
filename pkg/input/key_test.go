package input

import "testing"

func TestParseChord(t *testing.T) {
	tests := []struct {
		token string
		want  Chord
	}{
		{"q", Rune('q')},
		{"Q", Rune('Q')},
		{"ф", Rune('ф')},
		{"C-x", Ctrl('x')},
		{"A-x", Alt('x')},
		{"C-A-x", Chord{Key: KeyRune, Rune: 'x', Mod: ModCtrl | ModAlt}},
		{"RET", Enter},
		{"TAB", Tab},
		{"SPC", Space},
		{"ESC", Esc},
		{"C-SPC", Chord{Key: KeyRune, Rune: ' ', Mod: ModCtrl}},
		{"F1", F(1)},
		{"F12", F(12)},
		{"up", Chord{Key: KeyUp}},
		{"pagedown", Chord{Key: KeyPageDown}},
		{"backspace", Chord{Key: KeyBackspace}},
		{"backtab", Chord{Key: KeyBackTab}},
		{"A-delete", Chord{Key: KeyDelete, Mod: ModAlt}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseChord(tt.token)
			if err != nil {
				t.Fatalf("ParseChord(%q) error: %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("ParseChord(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseChord_Invalid(t *testing.T) {
	for _, token := range []string{"", "C-", "F13", "F0", "notakey", "xy"} {
		t.Run(token, func(t *testing.T) {
			if _, err := ParseChord(token); err == nil {
				t.Errorf("ParseChord(%q) should fail", token)
			}
		})
	}
}

func TestChordString_RoundTrip(t *testing.T) {
	chords := []Chord{
		Rune('g'),
		Ctrl('x'),
		Alt('q'),
		Chord{Key: KeyRune, Rune: 'x', Mod: ModCtrl | ModAlt},
		Enter,
		Tab,
		Space,
		Esc,
		F(5),
		{Key: KeyUp},
		{Key: KeyHome, Mod: ModCtrl},
	}

	for _, chord := range chords {
		t.Run(chord.String(), func(t *testing.T) {
			parsed, err := ParseChord(chord.String())
			if err != nil {
				t.Fatalf("reparsing %q: %v", chord.String(), err)
			}
			if parsed != chord {
				t.Errorf("round trip %q = %+v, want %+v", chord.String(), parsed, chord)
			}
		})
	}
}

func TestParseSequence(t *testing.T) {
	seq, err := ParseSequence("C-x C-f")
	if err != nil {
		t.Fatal(err)
	}
	if len(seq) != 2 || seq[0] != Ctrl('x') || seq[1] != Ctrl('f') {
		t.Errorf("unexpected sequence %+v", seq)
	}

	if _, err := ParseSequence("  "); err == nil {
		t.Error("blank sequence should fail")
	}
	if _, err := ParseSequence("g bogus-key"); err == nil {
		t.Error("sequence with a bad token should fail")
	}
}

func TestFormatSequence(t *testing.T) {
	got := FormatSequence([]Chord{Ctrl('x'), Ctrl('f')})
	if got != "C-x C-f" {
		t.Errorf("FormatSequence = %q, want %q", got, "C-x C-f")
	}
	if FormatSequence(nil) != "" {
		t.Errorf("empty sequence should format to an empty string")
	}
}

func TestEnterTabNormalization(t *testing.T) {
	// Enter and Tab are plain runes so text components can treat them
	// as ordinary characters.
	if Enter != Rune('\n') {
		t.Errorf("Enter should be the newline rune, got %+v", Enter)
	}
	if Tab != Rune('\t') {
		t.Errorf("Tab should be the tab rune, got %+v", Tab)
	}
}

func TestF_PanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("F(13) should panic")
		}
	}()
	F(13)
}
