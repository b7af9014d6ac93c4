// Package codec implements the message encoder: a generic runtime
// that walks a MessageProps's field table, applies the field
// classifier and emptiness policy, and emits protobuf wire bytes for
// any value that implements the Value interface below, not only
// values produced by this repository's own Go target generator.
package codec

import (
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/ir"
)

// Value is the structured-value contract the message encoder reads
// from. It stands in for a generated struct's field access as a small
// interface instead of runtime reflection, so a generated struct, a
// hand-built test fixture, or a dynamic map-backed value can all
// satisfy it.
type Value interface {
	// Field returns the value of a non-oneof field by its
	// target-language name, and whether it is present. "Present" for
	// a scalar/enum field still leaves the final say on whether it is
	// encoded to the emptiness policy; absence here always means
	// "treat as unset".
	Field(name string) (value any, present bool)

	// Oneof returns the active branch of the oneof group named
	// groupName, or ok=false if the group is unset.
	Oneof(groupName string) (branch OneofValue, ok bool)

	// Extensions returns the proto2 extension values attached to this
	// value, each already resolved to the FieldProps describing how
	// to encode it.
	Extensions() []Extension
}

// OneofValue pairs an active oneof branch's member field name with
// its payload.
type OneofValue struct {
	Field   string
	Payload any
}

// Extension pairs a proto2 extension's compiled FieldProps with the
// value stored for it.
type Extension struct {
	Field *ir.FieldProps
	Value any
}

// MapEntry is one (key, value) pair of a map field, encoded as a
// synthetic {key:1, value:2} submessage. Key must be one of the Go
// types EncodeScalar accepts for the field's MapKey kind; Value
// follows MapValue's kind the same way an ordinary field's value does
// (including being a Value for a message-typed map value).
type MapEntry struct {
	Key   any
	Value any
}

// StaticValue is a map-backed Value implementation, convenient for
// tests and for any caller that already has field values in a map
// rather than a generated struct.
type StaticValue struct {
	Fields    map[string]any
	OneofsBy  map[string]OneofValue
	ExtValues []Extension
}

func (s *StaticValue) Field(name string) (any, bool) {
	v, ok := s.Fields[name]
	return v, ok
}

func (s *StaticValue) Oneof(groupName string) (OneofValue, bool) {
	v, ok := s.OneofsBy[groupName]
	return v, ok
}

func (s *StaticValue) Extensions() []Extension {
	return s.ExtValues
}
