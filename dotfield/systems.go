package dotfield

import (
	"math"

	"github.com/plus3/dotfield/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Simulation constants.
const (
	Spacing         = 24.0
	DotRadius       = 1.0
	InfluenceRadius = 120.0
	Strength        = 25.0
	Relaxation      = 0.08
)

// LayoutSystem replaces every particle with a fresh grid tiling the
// viewport. It only runs from Field.RebuildGrid.
type LayoutSystem struct {
	Viewport  ecs.Singleton[Viewport]
	Particles ecs.Query[struct {
		ecs.EntityId
		*Origin
	}]
}

func (s *LayoutSystem) Execute(frame *ecs.UpdateFrame) {
	for p := range s.Particles.Values() {
		frame.Commands.Delete(p.EntityId)
	}

	vp := s.Viewport.Get()
	for x := 0.0; x < vp.Width; x += Spacing {
		for y := 0.0; y < vp.Height; y += Spacing {
			frame.Commands.Spawn(Origin{X: x, Y: y}, Position{X: x, Y: y})
		}
	}

	frame.Commands.Defer(frame.Storage.Compact)
}

// DisplaceSystem moves every particle one frame.
type DisplaceSystem struct {
	Pointer   ecs.Singleton[Pointer]
	Particles ecs.Query[struct {
		*Origin
		*Position
	}]
}

func (s *DisplaceSystem) Execute(frame *ecs.UpdateFrame) {
	pointer := r2.Vec(*s.Pointer.Get())
	for p := range s.Particles.Values() {
		*p.Position = Position(displace(pointer, r2.Vec(*p.Origin), r2.Vec(*p.Position)))
	}
}

// displace returns a particle's next position. Distance to the pointer is
// taken from the current position; a pushed particle is placed relative to
// its origin, never relative to where it already is, so pushes do not
// accumulate.
func displace(pointer, origin, pos r2.Vec) r2.Vec {
	d := r2.Sub(pointer, pos)
	dist := r2.Norm(d)

	if dist < InfluenceRadius {
		force := (InfluenceRadius - dist) / InfluenceRadius
		angle := math.Atan2(d.Y, d.X)
		push := r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
		return r2.Sub(origin, r2.Scale(force*Strength, push))
	}

	return r2.Add(pos, r2.Scale(Relaxation, r2.Sub(origin, pos)))
}

// RenderSystem clears the bound canvas and draws every particle.
type RenderSystem struct {
	Canvas    ecs.Singleton[Canvas]
	Particles ecs.Query[struct{ *Position }]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	canvas := s.Canvas.Get()
	if canvas.Surface == nil {
		return
	}

	canvas.Surface.Clear()
	for p := range s.Particles.Values() {
		canvas.Surface.FillCircle(p.Position.X, p.Position.Y, DotRadius, canvas.Fill)
	}
}
