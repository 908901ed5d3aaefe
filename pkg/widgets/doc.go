// Package widgets provides the UI components for building widget trees.
//
// This package contains the concrete widgets that applications compose
// into interfaces: layout widgets (Row, Column, Stack), display widgets
// (Text, Border, Progress, Background), and input widgets (Select,
// TextInput, Focusable).
//
// # Widget Construction
//
// The canonical way to create a widget is a struct literal; every field
// is accessible and zero values are sensible defaults:
//
//	widgets.Column{
//	    Items: []core.Widget{
//	        widgets.Text{Content: "status"},
//	        widgets.Spacer(1),
//	        widgets.Progress{Value: 0.4},
//	    },
//	}
//
// Helper functions exist for the common layout shapes: RowOf, ColumnOf,
// StackOf, Center, PaddingAll, HSpace, VSpace.
//
// # Sizing
//
// Children of Row and Column declare how they claim main-axis space
// with a layout.Sizing, attached by wrapping them in an Item:
//
//	widgets.RowOf(
//	    widgets.Sized(layout.Fixed(20), sidebar),
//	    widgets.Sized(layout.Fill(1), content),
//	)
//
// Fixed rows claim first, then Percent of the container, then Fill
// children split whatever remains by weight. Bare children without an
// Item wrapper size to their content.
//
// # Keys
//
// Reconciliation matches children by type and key. Wrap a child in
// Keyed to give it a stable identity across reorders so its state
// moves with it:
//
//	widgets.Keyed(todo.ID, TodoRow{Todo: todo})
//
// # Focus and Keys
//
// Focusable registers its subtree with the runtime's focus manager and
// rebuilds with the current focus state. Widgets that expose a Keymap
// (Select, TextInput) only bind their keys while their Focused field is
// set, so key dispatch follows focus:
//
//	widgets.Focusable{Builder: func(ctx core.BuildContext, focused bool) core.Widget {
//	    return widgets.Select{Items: names, Selected: sel, Focused: focused, OnChange: pick}
//	}}
//
// # Failure Containment
//
// ErrorBoundary latches a descendant build failure and swaps in a
// fallback subtree; InstallErrorDisplay routes root-level failures
// through the same bordered display.
package widgets
