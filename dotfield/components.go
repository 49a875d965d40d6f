package dotfield

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Origin is a particle's resting point. It is set when the grid is built
// and never changes afterwards.
type Origin r2.Vec

// Position is where a particle is drawn this frame.
type Position r2.Vec

// Pointer is the last reported pointer location.
type Pointer r2.Vec

// PointerSentinel is the pointer location before any pointer event. It lies
// far enough outside any viewport that no particle is influenced.
var PointerSentinel = r2.Vec{X: -9999, Y: -9999}

// Viewport is the size of the area the grid tiles.
type Viewport struct {
	Width, Height float64
}

// Canvas is the surface and fill bound for the duration of one render.
type Canvas struct {
	Surface Surface
	Fill    color.Color
}

// Particle is a read-only copy of one grid point.
type Particle struct {
	Origin   r2.Vec
	Position r2.Vec
}
