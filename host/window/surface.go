package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// screenSurface draws onto whatever screen image ebiten handed to the
// current Draw call.
type screenSurface struct {
	img  *ebiten.Image
	page func() color.Color
}

func (s *screenSurface) Clear() {
	if s.img == nil {
		return
	}
	s.img.Fill(s.page())
}

func (s *screenSurface) FillCircle(x, y, r float64, c color.Color) {
	if s.img == nil {
		return
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), c, true)
}
