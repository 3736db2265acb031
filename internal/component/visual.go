package component

import "image/color"

// Renderable entities are stroked once per tick by the render system.
type Renderable struct {
	Visible bool
	Color   color.RGBA
	Width   float64
}
