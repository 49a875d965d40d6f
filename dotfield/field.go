// Package dotfield is a decorative dot-grid background. Particles sit on a
// fixed grid, get pushed away from the pointer, and ease back to rest when
// it leaves, redrawn every frame onto a Surface.
//
// Field is the simulation itself. Background ties a Field to a Host's
// surface, events and frame queue and handles mount and unmount.
package dotfield

import (
	"cmp"
	"image/color"
	"math"
	"slices"

	"github.com/plus3/dotfield/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

const frameDelta = 1.0 / 60.0

// Field owns one particle grid and the pointer that disturbs it. A Field is
// not safe for concurrent use; hosts drive it from a single goroutine.
type Field struct {
	storage *ecs.Storage

	layout *ecs.Scheduler
	update *ecs.Scheduler
	draw   *ecs.Scheduler

	viewport  *ecs.Singleton[Viewport]
	pointer   *ecs.Singleton[Pointer]
	canvas    *ecs.Singleton[Canvas]
	particles *ecs.Query[struct {
		*Origin
		*Position
	}]
}

// NewField returns an empty field with the pointer at PointerSentinel.
func NewField() *Field {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Origin](registry)
	ecs.RegisterComponent[Position](registry)
	storage := ecs.NewStorage(registry)

	f := &Field{
		storage:  storage,
		layout:   ecs.NewScheduler(storage),
		update:   ecs.NewScheduler(storage),
		draw:     ecs.NewScheduler(storage),
		viewport: ecs.NewSingleton[Viewport](storage),
		pointer:  ecs.NewSingleton(storage, Pointer(PointerSentinel)),
		canvas:   ecs.NewSingleton[Canvas](storage),
		particles: ecs.NewQuery[struct {
			*Origin
			*Position
		}](storage),
	}

	f.layout.Register(&LayoutSystem{})
	f.update.Register(&DisplaceSystem{})
	f.draw.Register(&RenderSystem{})
	return f
}

// RebuildGrid discards every particle and tiles [0,w) x [0,h) from the
// origin at Spacing intervals, each new particle at rest. Sizes that are
// not positive and finite give an empty grid.
func (f *Field) RebuildGrid(w, h float64) {
	*f.viewport.Get() = Viewport{Width: finite(w), Height: finite(h)}
	f.layout.Once(0)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// OnPointerMove records the pointer location. The latest call wins.
func (f *Field) OnPointerMove(x, y float64) {
	*f.pointer.Get() = Pointer{X: x, Y: y}
}

// AdvanceFrame moves every particle one frame.
func (f *Field) AdvanceFrame() {
	f.update.Once(frameDelta)
}

// Render clears s and draws every particle in t's colour.
func (f *Field) Render(s Surface, t Theme) {
	f.RenderFill(s, t.Color())
}

// RenderFill clears s and draws every particle in c. A nil surface is
// ignored.
func (f *Field) RenderFill(s Surface, c color.Color) {
	if s == nil {
		return
	}
	canvas := f.canvas.Get()
	*canvas = Canvas{Surface: s, Fill: c}
	f.draw.Once(frameDelta)
	*canvas = Canvas{}
}

// Step advances one frame and renders it.
func (f *Field) Step(s Surface, t Theme) {
	f.AdvanceFrame()
	f.Render(s, t)
}

// Particles returns a copy of every particle ordered by origin, x first.
func (f *Field) Particles() []Particle {
	f.particles.Execute()
	out := make([]Particle, 0, f.particles.Len())
	for p := range f.particles.Values() {
		out = append(out, Particle{
			Origin:   r2.Vec(*p.Origin),
			Position: r2.Vec(*p.Position),
		})
	}
	slices.SortFunc(out, func(a, b Particle) int {
		if c := cmp.Compare(a.Origin.X, b.Origin.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Origin.Y, b.Origin.Y)
	})
	return out
}

// Len returns the number of particles.
func (f *Field) Len() int {
	return f.storage.EntityCount()
}

// PointerPosition returns the last recorded pointer location.
func (f *Field) PointerPosition() r2.Vec {
	return r2.Vec(*f.pointer.Get())
}

// Viewport returns the size the grid was last built for.
func (f *Field) Viewport() Viewport {
	return *f.viewport.Get()
}

// Storage exposes the backing ECS world for inspection.
func (f *Field) Storage() *ecs.Storage {
	return f.storage
}

// Stats returns timing for the layout, update and draw stages.
func (f *Field) Stats() []*ecs.SchedulerStats {
	return []*ecs.SchedulerStats{
		f.layout.GetStats(),
		f.update.GetStats(),
		f.draw.GetStats(),
	}
}
