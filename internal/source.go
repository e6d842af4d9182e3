package internal

import "reflect"

// ValueSource supplies the current value of a named field on an inspected
// object. Returning false skips the field silently; a declaration naming a
// field the object does not have is an authoring issue, not a runtime fault.
type ValueSource interface {
	CurrentValue(object any, field string) (any, bool)
}

// StructSource reads exported struct fields by name through reflection,
// following pointers. It is the default value source.
type StructSource struct{}

func (StructSource) CurrentValue(object any, field string) (any, bool) {
	rv := reflect.ValueOf(object)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return nil, false
	}

	f := rv.FieldByName(field)
	if !f.IsValid() || !f.CanInterface() {
		return nil, false
	}

	return f.Interface(), true
}
