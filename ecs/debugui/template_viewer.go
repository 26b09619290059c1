package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stencil/ecs"
)

type TemplateViewerCache struct {
	templates     []ecs.TemplateStats
	sortColumn    int
	sortAscending bool
}

func NewTemplateViewerWindow() TemplateViewerWindow {
	return TemplateViewerWindow{
		cache: &TemplateViewerCache{
			sortColumn:    3,
			sortAscending: false,
		},
		sortColumn:    3,
		sortAscending: false,
	}
}

// Render draws the template table and returns the name of a template the user
// clicked this frame, or "". The Spawn button instantiates the selected template.
func (tv *TemplateViewerWindow) Render(w *ecs.World) string {
	if !imgui.BeginV("Template Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return ""
	}

	tv.cache.templates = w.CollectStats().TemplateBreakdown
	sortTemplates(tv.cache.templates, tv.cache.sortColumn, tv.cache.sortAscending)

	maxLive := 0
	for _, t := range tv.cache.templates {
		maxLive = max(maxLive, t.Live)
	}

	if tv.selectedTemplate != "" {
		if imgui.Button(fmt.Sprintf("Spawn %s", tv.selectedTemplate)) {
			w.Instantiate(tv.selectedTemplate)
		}
	}

	var clicked string

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("TemplateTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Template")
		imgui.TableSetupColumn("Properties")
		imgui.TableSetupColumn("Systems")
		imgui.TableSetupColumn("Live")
		imgui.TableSetupColumn("Created")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			tv.cache.sortColumn = int(spec.ColumnIndex())
			tv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			tv.sortColumn = tv.cache.sortColumn
			tv.sortAscending = tv.cache.sortAscending
			sortTemplates(tv.cache.templates, tv.cache.sortColumn, tv.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, t := range tv.cache.templates {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := tv.selectedTemplate == t.Name
			if imgui.SelectableBoolV(t.Name, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				clicked = t.Name
				tv.selectedTemplate = t.Name
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(t.Properties, ", "))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(t.Systems, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", t.Live))

			if maxLive > 0 {
				barWidth := float32(t.Live) / float32(maxLive) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", t.Created))
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func sortTemplates(templates []ecs.TemplateStats, column int, ascending bool) {
	sort.SliceStable(templates, func(i, j int) bool {
		a, b := templates[i], templates[j]
		if !ascending {
			a, b = b, a
		}

		switch column {
		case 0:
			return a.Name < b.Name
		case 1:
			return len(a.Properties) < len(b.Properties)
		case 2:
			return len(a.Systems) < len(b.Systems)
		case 4:
			return a.Created < b.Created
		default:
			return a.Live < b.Live
		}
	})
}
