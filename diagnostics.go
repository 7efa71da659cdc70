package tether

import (
	"context"
	"fmt"
	"reflect"

	"github.com/zoobzio/capitan"
)

// warnCheck applies the configured WarnValue predicate to a freshly
// cached result. Development mode only; advisory only — it never alters
// control flow. A match means the result is, or directly contains, a
// live handle that will not stay reactive in the cache (the caller
// likely wants a materialized snapshot instead).
func (b *Binding[T]) warnCheck(ctx context.Context, v any) {
	if !b.dev || b.warnValue == nil {
		return
	}
	if pos, ok := findWarnValue(b.warnValue, v); ok {
		capitan.Emit(ctx, BindingNonReactiveValue,
			KeyPosition.Field(pos),
		)
	}
}

// findWarnValue checks v itself, then one level of direct members:
// slice and array elements, map values, exported struct fields. A
// non-nil pointer is followed to its struct before the field walk.
func findWarnValue(pred func(any) bool, v any) (string, bool) {
	if v == nil {
		return "", false
	}
	if pred(v) {
		return "result", true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			e := rv.Index(i)
			if e.CanInterface() && pred(e.Interface()) {
				return fmt.Sprintf("result[%d]", i), true
			}
		}
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			mv := iter.Value()
			if mv.CanInterface() && pred(mv.Interface()) {
				return fmt.Sprintf("result[%v]", iter.Key().Interface()), true
			}
		}
	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			f := rv.Field(i)
			if f.CanInterface() && pred(f.Interface()) {
				return "result." + rt.Field(i).Name, true
			}
		}
	}
	return "", false
}
