package theme

import (
	"reflect"

	"github.com/go-drift/tide/pkg/core"
)

// Provider makes a theme available to the subtree below it.
// Descendants read it with [Of] and rebuild when the theme changes.
type Provider struct {
	core.InheritedBase
	Theme *Theme
	Child core.Widget
}

func (p Provider) ChildWidget() core.Widget { return p.Child }

func (p Provider) UpdateShouldNotify(old core.InheritedWidget) bool {
	prev, ok := old.(Provider)
	return !ok || prev.Theme != p.Theme
}

var providerType = reflect.TypeOf(Provider{})

// Cached so lookups outside any Provider do not allocate a fresh
// default theme per build.
var defaultTheme = Default()

// Of returns the nearest provided theme, or the defaults when the
// tree has none.
func Of(ctx core.BuildContext) *Theme {
	if w := ctx.DependOnInherited(providerType); w != nil {
		if p, ok := w.(Provider); ok && p.Theme != nil {
			return p.Theme
		}
	}
	return defaultTheme
}
