// Package debugui provides immediate-mode GUI tooling for worlds using Dear ImGui.
// Windows are ordinary objects carrying an ImguiItem property; ImguiSystem runs
// their render functions once per frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stencil/ecs"
)

const (
	// PropItem is the property holding an object's ImguiItem.
	PropItem = "imgui"
	// ResourceInput is the world resource holding ImguiInputState.
	ResourceInput = "imgui.input"
)

// ImguiItem holds a Dear ImGui render function.
// Objects registered with ImguiSystem render their item every frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a world resource.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render function of every member to the end of the frame.
// It also updates the ImguiInputState resource with current input capture state.
type ImguiSystem struct {
	ecs.BaseSystem
	InputState *ecs.Singleton[ImguiInputState]
}

// NewImguiSystem creates the system and the input state resource in w.
func NewImguiSystem(w *ecs.World) *ImguiSystem {
	return &ImguiSystem{
		BaseSystem: ecs.NewBaseSystem("imgui"),
		InputState: ecs.NewSingleton[ImguiInputState](w, ResourceInput),
	}
}

func (i *ImguiSystem) AddProperties(store *ecs.PropertyStore) {
	ecs.Ensure(store, PropItem, ImguiItem{})
}

// Draw updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Draw(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for o := range i.Members().Each() {
		if item := ecs.Get[ImguiItem](o.Props(), PropItem); item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

// AddWindow creates an object rendering fn every frame.
func AddWindow(w *ecs.World, sys *ImguiSystem, name string, fn func()) *ecs.Object {
	o := w.NewObject(name)
	o.AddSystem(sys)
	ecs.Set(o.Props(), PropItem, ImguiItem{Render: fn})
	return o
}
