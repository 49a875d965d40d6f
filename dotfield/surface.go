package dotfield

import "image/color"

// Surface is anything the field can be drawn onto.
type Surface interface {
	// Clear erases the whole surface.
	Clear()
	// FillCircle draws a filled circle of radius r centred on (x, y).
	FillCircle(x, y, r float64, c color.Color)
}
