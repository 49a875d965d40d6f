package window

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/dotfield/dotfield"
	"github.com/plus3/dotfield/ecs"
	"github.com/plus3/dotfield/ecs/debugui"
	debugui_ebiten "github.com/plus3/dotfield/ecs/debugui/ebiten"
)

// DebugOverlay shows Dear ImGui windows describing the running field. It
// keeps its own ECS world for the UI entities.
type DebugOverlay struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	backend   *ecs.Singleton[debugui_ebiten.ImguiBackend]
	input     *ecs.Singleton[debugui.ImguiInputState]
	bg        *dotfield.Background
	toggle    func()
}

// NewDebugOverlay creates the ImGui backend and the overlay's windows.
func NewDebugOverlay(title string, width, height int) *DebugOverlay {
	registry := ecs.NewComponentRegistry()
	debugui.Register(registry)
	storage := ecs.NewStorage(registry)

	ecs.NewSingleton(storage, debugui_ebiten.NewImguiBackend(title, width, height))
	imgui.CurrentIO().SetIniFilename("")

	scheduler := ecs.NewScheduler(storage)
	debugui.Install(storage, scheduler)

	o := &DebugOverlay{
		storage:   storage,
		scheduler: scheduler,
		backend:   ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage),
		input:     ecs.NewSingleton[debugui.ImguiInputState](storage),
	}

	debugui.SpawnPerformanceWindow(storage, func() (*ecs.Storage, []*ecs.SchedulerStats) {
		if o.bg == nil || o.bg.Field() == nil {
			return nil, nil
		}
		field := o.bg.Field()
		return field.Storage(), field.Stats()
	})
	storage.Spawn(debugui.ImguiItem{Render: o.renderField})
	return o
}

func (o *DebugOverlay) renderField() {
	if o.bg == nil {
		return
	}
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	if imgui.BeginV("Field", nil, imgui.WindowFlagsNone) {
		imgui.Text(fmt.Sprintf("State: %s", o.bg.State()))
		imgui.Text(fmt.Sprintf("Theme: %s", o.bg.Theme()))
		imgui.Text(fmt.Sprintf("Session: %s", o.bg.SessionID()))
		if field := o.bg.Field(); field != nil {
			vp := field.Viewport()
			p := field.PointerPosition()
			imgui.Separator()
			imgui.Text(fmt.Sprintf("Viewport: %.0fx%.0f", vp.Width, vp.Height))
			imgui.Text(fmt.Sprintf("Particles: %d", field.Len()))
			imgui.Text(fmt.Sprintf("Pointer: %.0f, %.0f", p.X, p.Y))
		}
		if imgui.Button("Toggle theme") && o.toggle != nil {
			o.toggle()
		}
	}
	imgui.End()
}

func (o *DebugOverlay) Update(bg *dotfield.Background, toggle func()) {
	o.bg = bg
	o.toggle = toggle
	backend := o.backend.Get()
	backend.BeginFrame()
	o.scheduler.Once(1.0 / 60.0)
	backend.EndFrame()
}

func (o *DebugOverlay) Draw(screen *ebiten.Image) {
	o.backend.Get().Draw(screen)
}

func (o *DebugOverlay) Layout(w, h int) {
	o.backend.Get().Layout(w, h)
}

func (o *DebugOverlay) WantsPointer() bool {
	return o.input.Get().WantCaptureMouse
}
