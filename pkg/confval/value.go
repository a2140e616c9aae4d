// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package confval defines the format-agnostic document tree that bridges the
// JSON, YAML, and TOML converters. A Value is a closed tagged union with six
// cases: null, bool, number (kept as either int64 or float64 so `3` and `3.0`
// stay distinct), string, list, and string-keyed mapping. Mappings preserve
// insertion order, which Go maps cannot do, so they are stored as field slices.
//
// Values are built once by a decoder, read by an encoder, and discarded. They
// hold no references to shared state and are safe to use from multiple
// goroutines.
package confval

import "fmt"

// Kind identifies which case of the union a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
)

// String returns a lowercase name for the kind, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Field is one key/value entry of a mapping. A mapping is an ordered slice of
// fields; duplicate keys are the decoder's responsibility to reject or merge.
type Field struct {
	Key   string
	Value Value
}

// Value is one node of a document tree. The zero Value is null.
type Value struct {
	kind   Kind
	b      bool
	i      int64
	f      float64
	s      string
	items  []Value
	fields []Field
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value. Integers ride int64; source numbers outside
// the int64 range are decoded as floats instead, with documented precision
// loss above 2^53.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// List returns a list value holding items in order.
func List(items ...Value) Value {
	return Value{kind: KindList, items: items}
}

// Map returns a mapping value holding fields in order.
func Map(fields ...Field) Value {
	return Value{kind: KindMap, fields: fields}
}

// Kind reports which case the value holds.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload. Valid only for KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload. Valid only for KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. Valid only for KindFloat.
func (v Value) Float() float64 { return v.f }

// Str returns the string payload. Valid only for KindString.
func (v Value) Str() string { return v.s }

// Items returns the list elements in order. Valid only for KindList.
func (v Value) Items() []Value { return v.items }

// Fields returns the mapping entries in insertion order. Valid only for KindMap.
func (v Value) Fields() []Field { return v.fields }

// Get looks up a key in a mapping value. It reports false for missing keys
// and for non-mapping values.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Equal reports structural equality: same kind, same scalar payload, and for
// lists and mappings the same elements in the same order. An integer never
// equals a float, even when numerically identical, because the converters
// must keep the two kinds apart.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == w.b
	case KindInt:
		return v.i == w.i
	case KindFloat:
		return v.f == w.f
	case KindString:
		return v.s == w.s
	case KindList:
		if len(v.items) != len(w.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(w.items[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.fields) != len(w.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Key != w.fields[i].Key {
				return false
			}
			if !v.fields[i].Value.Equal(w.fields[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
