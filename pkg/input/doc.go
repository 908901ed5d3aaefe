// Package input models keystrokes and key bindings.
//
// A Chord is one keystroke. Widgets register bindings in a Keymap,
// naming sequences in a compact notation ("C-x C-f", "g g", "RET"):
//
//	km := input.NewKeymap()
//	km.Bind("C-x C-s", func([]input.Chord) input.ShouldRender {
//	    save()
//	    return true
//	})
//	km.BindAny("insert", func(keys []input.Chord) input.ShouldRender {
//	    insert(keys[0].Rune)
//	    return true
//	})
//
// The Dispatcher owns the pending multi-chord state and walks the
// keymaps along the focus path, leaf first, on every keystroke.
// Registering overlapping sequences in one keymap panics: no sequence
// may be both a complete binding and the prefix of another.
package input
