package debugui

import "github.com/plus3/stencil/ecs"

// DebugUI bundles the tooling windows. Selection in the object browser drives
// the property inspector; clicking a template filters the browser.
type DebugUI struct {
	System *ImguiSystem

	Browser   ObjectBrowserWindow
	Inspector PropertyInspectorWindow
	Templates TemplateViewerWindow
	Stats     PerformanceStatsWindow
	Systems   SystemViewerWindow

	scheduler *ecs.Scheduler
	timer     *FrameTimer
}

// SpawnDebugUI registers an ImguiSystem with scheduler and creates one object
// that renders every tooling window.
func SpawnDebugUI(scheduler *ecs.Scheduler) *DebugUI {
	w := scheduler.World()
	ui := &DebugUI{
		System:    NewImguiSystem(w),
		Browser:   NewObjectBrowserWindow(100),
		Inspector: NewPropertyInspectorWindow(),
		Templates: NewTemplateViewerWindow(),
		Stats:     NewPerformanceStatsWindow(120),
		Systems:   NewSystemViewerWindow(),
		scheduler: scheduler,
		timer:     NewFrameTimer(),
	}
	scheduler.Register(ui.System)
	AddWindow(w, ui.System, "debugui", ui.render)
	return ui
}

func (ui *DebugUI) render() {
	w := ui.scheduler.World()
	ui.Browser.Render(w)
	ui.Inspector.Render(w, ui.Browser.GetSelectedObject())
	if name := ui.Templates.Render(w); name != "" {
		ui.Browser.FilterTemplate(name)
	}
	ui.Stats.Render(ui.scheduler, ui.timer.GetDeltaTime())
	ui.Systems.Render(w)
}
