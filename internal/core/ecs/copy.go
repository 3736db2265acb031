package ecs

import (
	"fmt"
	"reflect"

	"github.com/huandu/go-clone"
)

// cloneState returns a deep copy of template. Exported and unexported
// fields alike are copied, so no two results share a map, slice or
// pointer target.
func cloneState[T any](template T) *T {
	v, _ := clone.Clone(template).(T)
	return &v
}

// checkTemplate rejects state types holding values that cannot be copied
// per entity: channels, functions and unsafe pointers, at any depth.
// Interface fields are checked when cloned, not here.
func checkTemplate(t reflect.Type) error {
	return walkTemplate(t, t.String(), make(map[reflect.Type]bool))
}

func walkTemplate(t reflect.Type, path string, seen map[reflect.Type]bool) error {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return fmt.Errorf("%w: %s is a %s", ErrUnsafeTemplate, path, t.Kind())
	case reflect.Pointer, reflect.Slice, reflect.Array:
		if seen[t] {
			return nil
		}
		seen[t] = true
		return walkTemplate(t.Elem(), path+"[]", seen)
	case reflect.Map:
		if seen[t] {
			return nil
		}
		seen[t] = true
		if err := walkTemplate(t.Key(), path+"{key}", seen); err != nil {
			return err
		}
		return walkTemplate(t.Elem(), path+"{}", seen)
	case reflect.Struct:
		if seen[t] {
			return nil
		}
		seen[t] = true
		for i := range t.NumField() {
			f := t.Field(i)
			if err := walkTemplate(f.Type, path+"."+f.Name, seen); err != nil {
				return err
			}
		}
	}
	return nil
}
