package validator

import (
	"reflect"
	"time"
)

// isNil reports whether value is an untyped nil or a nil pointer, slice,
// map, interface, func or channel.
func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// deref follows pointers. ok is false when a nil is found on the way.
func deref(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}

// stringOf returns the string behind value, dereferencing pointers.
// Named string types are accepted.
func stringOf(rule string, value any) (string, bool) {
	v, ok := deref(value)
	if !ok {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	panic(unsupported(rule, value))
}

// listOf returns the reflected slice or array behind value. ok is false for nil lists.
func listOf(rule string, value any) (reflect.Value, bool) {
	if isNil(value) {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		return rv, true
	case reflect.Array:
		return rv, true
	default:
		panic(unsupported(rule, value))
	}
}

// timeOf returns the time.Time behind value.
func timeOf(rule string, value any) (time.Time, bool) {
	v, ok := deref(value)
	if !ok {
		return time.Time{}, false
	}
	t, ok := v.(time.Time)
	if !ok {
		panic(unsupported(rule, value))
	}
	return t, true
}
