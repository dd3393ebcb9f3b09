package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
)

// EditStruct draws an editable row per exported field of the struct ptr points
// to. Numbers, bools and strings are editable; nested structs become tree
// nodes. It reports whether any field changed this frame.
func EditStruct(label string, ptr any) bool {
	val := reflect.ValueOf(ptr)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		imgui.Text(fmt.Sprintf("%s: not a struct pointer", label))
		return false
	}
	return editFields(label, val.Elem())
}

func editFields(prefix string, val reflect.Value) bool {
	changed := false
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		if editValue(prefix+"."+field.Name, field.Name, val.Field(i)) {
			changed = true
		}
	}
	return changed
}

func editValue(id, name string, val reflect.Value) bool {
	switch val.Kind() {
	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat("##"+id, &v) {
			val.SetFloat(float64(v))
			return true
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt("##"+id, &v) {
			val.SetInt(int64(v))
			return true
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+"##"+id, &v) {
			val.SetBool(v)
			return true
		}

	case reflect.String:
		v := val.String()
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint("##"+id, "", &v, imgui.InputTextFlagsNone, nil) {
			val.SetString(v)
			return true
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name + "##" + id) {
			changed := editFields(id, val)
			imgui.TreePop()
			return changed
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
	return false
}
