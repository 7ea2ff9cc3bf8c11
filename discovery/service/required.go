package service

import "reflect"

// NilPanic returns v, panicking with panicMessage when v is nil (a nil interface, or a nil pointer, map,
// slice, func or chan behind one).
func NilPanic[T any](v T, panicMessage string) T {
	rv := reflect.ValueOf(&v).Elem()
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			panic(panicMessage)
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if rv.IsNil() {
			panic(panicMessage)
		}
	}
	return v
}

// StrPanic returns s, panicking with panicMessage when s is empty.
func StrPanic(s string, panicMessage string) string {
	if s == "" {
		panic(panicMessage)
	}
	return s
}
