package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stencil/ecs"
)

func NewSystemViewerWindow() SystemViewerWindow {
	return SystemViewerWindow{
		selectedSystems: make(map[string]bool),
	}
}

// Render lets the user pick systems and lists the objects that are members of
// every picked system.
func (sv *SystemViewerWindow) Render(w *ecs.World) {
	if !imgui.BeginV("System Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Systems:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		sv.selectedSystems = make(map[string]bool)
	}

	for _, ms := range w.CollectStats().SystemBreakdown {
		selected := sv.selectedSystems[ms.Name]
		label := fmt.Sprintf("%s (%d, %d pending)", ms.Name, ms.Members, ms.Pending)
		if imgui.Checkbox(label, &selected) {
			if selected {
				sv.selectedSystems[ms.Name] = true
			} else {
				delete(sv.selectedSystems, ms.Name)
			}
		}
	}

	imgui.Separator()

	if len(sv.selectedSystems) == 0 {
		imgui.Text("No systems selected")
		imgui.End()
		return
	}

	names := make([]string, 0, len(sv.selectedSystems))
	for name := range sv.selectedSystems {
		names = append(names, name)
	}
	sort.Strings(names)

	matching := membersOfAll(w, names)
	byTemplate := make(map[string]int)
	for _, o := range matching {
		byTemplate[o.Template()]++
	}

	imgui.Text(fmt.Sprintf("Matching Objects: %d", len(matching)))

	if imgui.TreeNodeStr("Template Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemTemplateTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Template")
			imgui.TableSetupColumn("Object Count")
			imgui.TableHeadersRow()

			templates := make([]string, 0, len(byTemplate))
			for t := range byTemplate {
				templates = append(templates, t)
			}
			sort.Strings(templates)

			for _, t := range templates {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				if t == "" {
					imgui.Text("<none>")
				} else {
					imgui.Text(t)
				}

				imgui.TableSetColumnIndex(1)
				imgui.Text(fmt.Sprintf("%d", byTemplate[t]))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// membersOfAll returns the members of the first named system that are also
// members of every other named system. Unknown names match nothing.
func membersOfAll(w *ecs.World, names []string) []*ecs.Object {
	if len(names) == 0 {
		return nil
	}
	systems := make([]ecs.System, 0, len(names))
	for _, name := range names {
		sys, ok := w.Systems().Get(name)
		if !ok {
			return nil
		}
		systems = append(systems, sys)
	}

	var out []*ecs.Object
	for o := range systems[0].Members().Each() {
		all := true
		for _, sys := range systems[1:] {
			if _, ok := sys.Members().Get(o.ID()); !ok {
				all = false
				break
			}
		}
		if all {
			out = append(out, o)
		}
	}
	return out
}
