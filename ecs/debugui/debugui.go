// Package debugui renders Dear ImGui overlay windows from ECS entities.
// Each window is an entity carrying an ImguiItem; ImguiSystem collects them
// every frame and defers their render funcs until the frame's commands
// flush, which the host brackets with the backend's BeginFrame/EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/dotfield/ecs"
)

// ImguiItem is a component holding one window's render func.
type ImguiItem struct {
	Render func()
}

// ImguiInputState records whether ImGui wants the mouse or keyboard this
// frame. Hosts consult it before forwarding input to the scene.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes ImguiInputState and queues every ImguiItem.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		if item.ImguiItem.Render != nil {
			frame.Commands.Defer(item.ImguiItem.Render)
		}
	}
}

// Register adds the package's components to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// Install creates the ImguiInputState singleton and registers ImguiSystem
// on scheduler.
func Install(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	ecs.NewSingleton[ImguiInputState](storage)
	scheduler.Register(&ImguiSystem{})
}
