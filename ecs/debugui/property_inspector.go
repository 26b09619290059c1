package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stencil/ecs"
)

func NewPropertyInspectorWindow() PropertyInspectorWindow {
	return PropertyInspectorWindow{}
}

func (pi *PropertyInspectorWindow) Render(w *ecs.World, selectedObjectId ecs.ObjectID) {
	if !imgui.BeginV("Property Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	pi.selectedObjectId = selectedObjectId

	if pi.selectedObjectId == ecs.NoObject {
		imgui.Text("No object selected")
		imgui.End()
		return
	}

	o, ok := w.Object(pi.selectedObjectId)
	if !ok {
		imgui.Text(fmt.Sprintf("Object %d no longer exists", pi.selectedObjectId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Object: %s", o))
	imgui.Text(fmt.Sprintf("GUID: %s", o.GUID()))
	imgui.Text(fmt.Sprintf("State: %s", o.State()))
	if o.Template() != "" {
		imgui.Text(fmt.Sprintf("Template: %s", o.Template()))
	}
	imgui.Separator()

	for p := range o.Props().Each() {
		if imgui.TreeNodeStr(propertyLabel(p)) {
			renderValue(p.Name(), reflect.ValueOf(p.Addr()).Elem())
			imgui.TreePop()
		}
	}

	imgui.End()
}

func propertyLabel(p ecs.Property) string {
	return fmt.Sprintf("%s (%s)", p.Name(), p.Type())
}

// renderValue draws an editor for val. val comes from Property.Addr, so it is
// addressable and edits write straight into the store.
func renderValue(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, f := range globalReflectionCache.Fields(val.Type()) {
				fv := val.Field(f.Index)
				if f.IsPointer {
					if fv.IsNil() {
						imgui.Text(fmt.Sprintf("%s: nil", f.Name))
						continue
					}
					fv = fv.Elem()
				}
				renderValue(f.Name, fv)
			}
			imgui.TreePop()
		}

	case reflect.Array:
		for i := range val.Len() {
			renderValue(fmt.Sprintf("%s[%d]", name, i), val.Index(i))
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Func:
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil func", name))
		} else {
			imgui.Text(fmt.Sprintf("%s: func", name))
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
