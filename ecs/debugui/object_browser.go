package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stencil/ecs"
)

type ObjectInfo struct {
	ID         ecs.ObjectID
	Name       string
	Template   string
	State      ecs.State
	Properties []string
	Systems    []string
}

type ObjectBrowserCache struct {
	objects       []ObjectInfo
	lastCount     int
	lastNewest    ecs.ObjectID
	sortColumn    int
	sortAscending bool
}

func NewObjectBrowserWindow(maxObjectsPerPage int) ObjectBrowserWindow {
	return ObjectBrowserWindow{
		cache: &ObjectBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxObjectsPerPage: maxObjectsPerPage,
	}
}

func (ob *ObjectBrowserWindow) Render(w *ecs.World) {
	if !imgui.BeginV("Object Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ob.rebuildCacheIfNeeded(w)

	imgui.InputTextWithHint("##search", "Search...", &ob.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		ob.filterText = ""
		ob.filterTemplate = ""
	}
	if ob.filterTemplate != "" {
		imgui.Text(fmt.Sprintf("Template: %s", ob.filterTemplate))
	}

	filtered := filterObjects(ob.cache.objects, ob.filterText, ob.filterTemplate)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ObjectTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Template")
		imgui.TableSetupColumn("State")
		imgui.TableSetupColumn("Systems")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			ob.cache.sortColumn = int(spec.ColumnIndex())
			ob.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortObjects(ob.cache.objects, ob.cache.sortColumn, ob.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		startIdx := ob.currentPage * ob.maxObjectsPerPage
		endIdx := min(startIdx+ob.maxObjectsPerPage, len(filtered))

		for i := startIdx; i < endIdx; i++ {
			obj := filtered[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := ob.selectedObjectId == obj.ID
			if imgui.SelectableBoolV(obj.ID.String(), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				ob.selectedObjectId = obj.ID
			}

			imgui.TableNextColumn()
			imgui.Text(obj.Name)

			imgui.TableNextColumn()
			imgui.Text(obj.Template)

			imgui.TableNextColumn()
			imgui.Text(obj.State.String())

			imgui.TableNextColumn()
			imgui.Text(strings.Join(obj.Systems, ", "))
		}

		imgui.EndTable()
	}

	if len(filtered) > ob.maxObjectsPerPage {
		totalPages := (len(filtered) + ob.maxObjectsPerPage - 1) / ob.maxObjectsPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d objects)", ob.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && ob.currentPage > 0 {
			ob.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && ob.currentPage < totalPages-1 {
			ob.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d objects", len(filtered)))
	}

	imgui.End()
}

// FilterTemplate restricts the browser to instances of one template. An empty
// name clears the restriction.
func (ob *ObjectBrowserWindow) FilterTemplate(name string) {
	ob.filterTemplate = name
	ob.currentPage = 0
}

func (ob *ObjectBrowserWindow) GetSelectedObject() ecs.ObjectID {
	return ob.selectedObjectId
}

func (ob *ObjectBrowserWindow) rebuildCacheIfNeeded(w *ecs.World) {
	objects := w.Objects()
	newest := ecs.NoObject
	if len(objects) > 0 {
		newest = objects[len(objects)-1].ID()
	}
	if ob.cache.objects != nil && ob.cache.lastCount == len(objects) && ob.cache.lastNewest == newest {
		return
	}
	ob.cache.lastCount = len(objects)
	ob.cache.lastNewest = newest
	ob.cache.objects = collectObjects(objects)
	sortObjects(ob.cache.objects, ob.cache.sortColumn, ob.cache.sortAscending)
}

func collectObjects(objects []*ecs.Object) []ObjectInfo {
	out := make([]ObjectInfo, 0, len(objects))
	for _, o := range objects {
		systems := o.Systems()
		names := make([]string, len(systems))
		for i, s := range systems {
			names[i] = s.Name()
		}
		out = append(out, ObjectInfo{
			ID:         o.ID(),
			Name:       o.Name(),
			Template:   o.Template(),
			State:      o.State(),
			Properties: o.Props().Names(),
			Systems:    names,
		})
	}
	return out
}

func sortObjects(objects []ObjectInfo, column int, ascending bool) {
	sort.SliceStable(objects, func(i, j int) bool {
		a, b := objects[i], objects[j]
		if !ascending {
			a, b = b, a
		}

		switch column {
		case 1:
			return a.Name < b.Name
		case 2:
			return a.Template < b.Template
		case 3:
			return a.State < b.State
		case 4:
			return len(a.Systems) < len(b.Systems)
		default:
			return a.ID < b.ID
		}
	})
}

func filterObjects(objects []ObjectInfo, text, template string) []ObjectInfo {
	if text == "" && template == "" {
		return objects
	}

	filtered := make([]ObjectInfo, 0, len(objects))
	filterLower := strings.ToLower(text)

	for _, obj := range objects {
		if template != "" && obj.Template != template {
			continue
		}

		if text != "" {
			haystack := strings.ToLower(strings.Join([]string{
				obj.ID.String(),
				obj.Name,
				obj.Template,
				strings.Join(obj.Properties, " "),
				strings.Join(obj.Systems, " "),
			}, " "))
			if !strings.Contains(haystack, filterLower) {
				continue
			}
		}

		filtered = append(filtered, obj)
	}

	return filtered
}
