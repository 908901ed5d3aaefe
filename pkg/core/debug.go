package core

// DebugMode controls whether error boundaries display debug detail.
// When true, boundary fallbacks show the error message and stack
// trace. When false, they show minimal information.
var DebugMode = true

// SetDebugMode enables or disables debug mode for the framework.
func SetDebugMode(debug bool) {
	DebugMode = debug
}
