package core

import (
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/layout"
)

// ScrollOffsetProvider reports a paint-time scroll offset applied to
// descendants, e.g. by a list that clips to a viewport.
type ScrollOffsetProvider interface {
	ScrollOffset() geometry.Point
}

// GlobalOffsetOf returns the accumulated cell offset for an element
// in the render tree, in screen coordinates.
func GlobalOffsetOf(element Element) geometry.Point {
	var offset geometry.Point
	var lastRenderObject layout.RenderObject
	current := element
	for current != nil {
		if renderElement, ok := current.(interface{ RenderObject() layout.RenderObject }); ok {
			renderObject := renderElement.RenderObject()
			if renderObject != nil && renderObject != lastRenderObject {
				if data, ok := renderObject.ParentData().(*layout.BoxParentData); ok && data != nil {
					offset.X += data.Offset.X
					offset.Y += data.Offset.Y
				}
				if provider, ok := renderObject.(ScrollOffsetProvider); ok {
					scroll := provider.ScrollOffset()
					offset.X -= scroll.X
					offset.Y -= scroll.Y
				}
				lastRenderObject = renderObject
			}
		}

		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}

	return offset
}
