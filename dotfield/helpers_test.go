package dotfield_test

import (
	"image/color"

	"github.com/plus3/dotfield/dotfield"
)

type circle struct {
	X, Y, R float64
	C       color.Color
}

type recordingSurface struct {
	clears  int
	circles []circle
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.circles = s.circles[:0]
}

func (s *recordingSurface) FillCircle(x, y, r float64, c color.Color) {
	s.circles = append(s.circles, circle{X: x, Y: y, R: r, C: c})
}

type fakeHost struct {
	surface   dotfield.Surface
	w, h      float64
	frames    dotfield.FrameQueue
	listeners dotfield.Listeners
}

func (h *fakeHost) Surface() (dotfield.Surface, bool) {
	return h.surface, h.surface != nil
}

func (h *fakeHost) Size() (float64, float64) {
	return h.w, h.h
}

func (h *fakeHost) Frames() *dotfield.FrameQueue {
	return &h.frames
}

func (h *fakeHost) Listen(l dotfield.Listener) func() {
	return h.listeners.Add(l)
}
