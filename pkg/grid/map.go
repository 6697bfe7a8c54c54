package grid

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
	"unsafe"
)

// Map is a mapping that remembers the order in which keys were first set.
// Keys must be comparable; setting an unhashable key panics just like a
// native Go map would. A Map must not contain itself: grid construction
// reports such cycles, the other methods do not guard against them.
type Map struct {
	keys   []any
	values map[any]any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[any]any)}
}

// Of builds a Map from alternating key/value arguments. It panics when the
// argument count is odd, which keeps literal grids in tests and examples
// short.
func Of(pairs ...any) *Map {
	if len(pairs)%2 != 0 {
		panic("grid: Of requires an even number of arguments")
	}
	m := &Map{
		keys:   make([]any, 0, len(pairs)/2),
		values: make(map[any]any, len(pairs)/2),
	}
	for i := 0; i < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

// Set stores value under key. Overwriting an existing key keeps its original
// position. Set returns the receiver so calls can be chained.
func (m *Map) Set(key, value any) *Map {
	if m.values == nil {
		m.values = make(map[any]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// Get returns the value stored under key.
func (m *Map) Get(key any) (any, bool) {
	if m == nil {
		return nil, false
	}
	value, ok := m.values[key]
	return value, ok
}

// Len reports the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []any {
	if m == nil {
		return nil
	}
	return append([]any(nil), m.keys...)
}

// All iterates key/value pairs in insertion order.
func (m *Map) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		if m == nil {
			return
		}
		for _, key := range m.keys {
			if !yield(key, m.values[key]) {
				return
			}
		}
	}
}

// Lookup follows path from the receiver through nested Maps.
func (m *Map) Lookup(path Path) (any, bool) {
	var current any = m
	for _, key := range path {
		node, ok := current.(*Map)
		if !ok {
			return nil, false
		}
		if current, ok = node.Get(key); !ok {
			return nil, false
		}
	}
	return current, true
}

// Clone copies the mapping structure: nested Maps are cloned, every other
// value is shared with the receiver.
func (m *Map) Clone() *Map {
	if m == nil {
		return NewMap()
	}
	out := &Map{
		keys:   append(make([]any, 0, len(m.keys)), m.keys...),
		values: make(map[any]any, len(m.values)),
	}
	for key, value := range m.values {
		if nested, ok := value.(*Map); ok {
			value = nested.Clone()
		}
		out.values[key] = value
	}
	return out
}

// Equal reports whether both Maps hold the same keys in the same order with
// deeply equal values. Nested Maps are compared with Equal.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i := 0; i < m.Len(); i++ {
		key := m.keys[i]
		if other.keys[i] != key {
			return false
		}
		if !valuesEqual(m.values[key], other.values[key]) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	left, lok := a.(*Map)
	right, rok := b.(*Map)
	if lok || rok {
		return lok && rok && left.Equal(right)
	}
	return reflect.DeepEqual(a, b)
}

// ToNative converts the Map into nested map[string]any values. Keys are
// formatted with fmt.Sprint; ordering information is lost.
func (m *Map) ToNative() map[string]any {
	out := make(map[string]any, m.Len())
	for key, value := range m.All() {
		if nested, ok := value.(*Map); ok {
			value = nested.ToNative()
		}
		out[fmt.Sprint(key)] = value
	}
	return out
}

// String renders the Map in a compact, ordered form such as {a: 1, b: {c: true}}.
func (m *Map) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for key, value := range m.All() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v: %v", key, value)
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the Map as a JSON object preserving key order. Keys are
// formatted with fmt.Sprint.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for key, value := range m.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		name, err := json.Marshal(fmt.Sprint(key))
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		payload, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("grid: marshal key %v: %w", key, err)
		}
		buf.Write(payload)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FromMap converts a native Go map (any key and value types) into a Map.
// Nested native maps are converted recursively. Native maps have no
// declaration order, so keys are sorted: strings and numbers by value, other
// key types by their fmt.Sprint form.
func FromMap(native any) (*Map, error) {
	if native == nil {
		return NewMap(), nil
	}
	if m, ok := native.(*Map); ok {
		return normalise(m)
	}
	rv := reflect.ValueOf(native)
	if rv.Kind() != reflect.Map {
		return nil, &InvalidGridError{Value: native, Reason: reasonNotMapping}
	}
	return fromNative(rv, nil, newNativeGuard())
}

// nativeGuard holds the native maps on the current descent, keyed by their
// runtime pointer.
type nativeGuard map[unsafe.Pointer]struct{}

func newNativeGuard() nativeGuard {
	return make(nativeGuard)
}

func fromNative(rv reflect.Value, path Path, active nativeGuard) (*Map, error) {
	if rv.IsNil() {
		return NewMap(), nil
	}
	ptr := rv.UnsafePointer()
	if _, cycle := active[ptr]; cycle {
		return nil, &InvalidGridError{Path: path, Reason: reasonCycle}
	}
	active[ptr] = struct{}{}
	defer delete(active, ptr)

	keys := rv.MapKeys()
	slices.SortFunc(keys, compareKeys)

	out := &Map{
		keys:   make([]any, 0, len(keys)),
		values: make(map[any]any, len(keys)),
	}
	for _, key := range keys {
		value, err := normaliseValue(rv.MapIndex(key), path.Child(key.Interface()), active)
		if err != nil {
			return nil, err
		}
		out.Set(key.Interface(), value)
	}
	return out, nil
}

func normaliseValue(value reflect.Value, path Path, active nativeGuard) (any, error) {
	for value.Kind() == reflect.Interface && !value.IsNil() {
		value = value.Elem()
	}
	if !value.IsValid() || (value.Kind() == reflect.Interface && value.IsNil()) {
		return nil, nil
	}
	if value.Kind() == reflect.Map && !value.IsNil() {
		return fromNative(value, path, active)
	}
	return value.Interface(), nil
}

func compareKeys(a, b reflect.Value) int {
	for a.Kind() == reflect.Interface && !a.IsNil() {
		a = a.Elem()
	}
	for b.Kind() == reflect.Interface && !b.IsNil() {
		b = b.Elem()
	}
	if a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.String:
			return cmp.Compare(a.String(), b.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		}
	}
	return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}
