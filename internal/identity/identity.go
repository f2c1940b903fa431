// Package identity derives stable identity keys for the map/slice-kind
// values that make up a decoded OpenAPI document tree.
//
// Go's map[string]any and []any are not comparable with ==, so the registry
// and resolver packages that must tell "the same record" apart from "a
// record that merely looks the same" key on the runtime address of the
// value's backing data instead. This mirrors the visited map[uintptr]bool
// cycle guard pattern used throughout the example corpus for typed struct
// pointers, generalized here to map/slice headers.
package identity

import "reflect"

// Key is an opaque identity for a map or slice value. Two values produce
// the same Key if and only if they are backed by the same runtime data,
// i.e. one was obtained from the other by assignment, not by construction
// of an equal-looking copy.
type Key uintptr

// Of returns the identity key for v, and ok=false if v is not a map or
// slice (and therefore has no stable address to key on — scalars and nil
// are never treated as identity-bearing).
func Of(v any) (Key, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return 0, false
		}
		return Key(rv.Pointer()), true
	default:
		return 0, false
	}
}

// Record is a convenience accessor for the common case of identifying a
// map[string]any node.
func Record(v map[string]any) (Key, bool) {
	if v == nil {
		return 0, false
	}
	return Of(v)
}
