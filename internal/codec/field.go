package codec

import (
	"fmt"

	"github.com/protoc-gen-wire/protoc-gen-wire/internal/ir"
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/wire"
)

// encodeField dispatches on the field classifier and appends one
// field's complete wire representation (tag plus payload, or for
// unpacked repeated fields, one tag+payload pair per element) to b.
// A singular enum value given as a symbol string is resolved to its
// number through reg; repeated enum elements must already be numbers.
func encodeField(b []byte, f *ir.FieldProps, value any, props *ir.MessageProps, reg *Registry) ([]byte, error) {
	switch f.Classify() {
	case ir.ClassPacked:
		return encodePacked(b, f, value)
	case ir.ClassEmbedded:
		if f.Map {
			return encodeMap(b, f, value, reg)
		}
		if f.Repeated {
			return encodeRepeatedEmbedded(b, f, value, reg)
		}
		return encodeSingularEmbedded(b, f, value, reg)
	default:
		if f.Repeated {
			return encodeRepeatedScalar(b, f, value)
		}
		if sym, ok := value.(string); ok && f.Kind == wire.KindEnum {
			n, ok := enumNumber(f, sym, reg)
			if !ok {
				return nil, &wire.TypeEncodeError{Kind: f.Kind, Value: value, Cause: fmt.Errorf("no integer for enum symbol in %q", f.EnumType)}
			}
			value = n
		}
		b = append(b, f.EncodedTag...)
		return wire.EncodeScalar(b, f.Kind, value)
	}
}

func encodeRepeatedScalar(b []byte, f *ir.FieldProps, value any) ([]byte, error) {
	elems, err := asElements(value)
	if err != nil {
		return nil, err
	}
	var encErr error
	for _, elem := range elems {
		b = append(b, f.EncodedTag...)
		b, encErr = wire.EncodeScalar(b, f.Kind, elem)
		if encErr != nil {
			return nil, encErr
		}
	}
	return b, nil
}

// encodePacked writes a packed repeated field: one tag (with
// TypeBytes, not the scalar's own wire type), one varint length, then
// every element's bare value concatenated with no per-element tag.
func encodePacked(b []byte, f *ir.FieldProps, value any) ([]byte, error) {
	elems, err := asElements(value)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return b, nil
	}
	var payload []byte
	for _, elem := range elems {
		payload, err = wire.EncodeScalar(payload, f.Kind, elem)
		if err != nil {
			return nil, err
		}
	}
	b = wire.EncodeTag(b, f.Number, wire.TypeBytes)
	b = wire.AppendVarint(b, uint64(len(payload)))
	return append(b, payload...), nil
}

func encodeSingularEmbedded(b []byte, f *ir.FieldProps, value any, reg *Registry) ([]byte, error) {
	payload, err := encodeEmbeddedPayload(f, value, reg)
	if err != nil {
		return nil, err
	}
	b = wire.EncodeTag(b, f.Number, wire.TypeBytes)
	b = wire.AppendVarint(b, uint64(len(payload)))
	return append(b, payload...), nil
}

func encodeRepeatedEmbedded(b []byte, f *ir.FieldProps, value any, reg *Registry) ([]byte, error) {
	elems, err := asElements(value)
	if err != nil {
		return nil, err
	}
	for _, elem := range elems {
		payload, err := encodeEmbeddedPayload(f, elem, reg)
		if err != nil {
			return nil, err
		}
		b = wire.EncodeTag(b, f.Number, wire.TypeBytes)
		b = wire.AppendVarint(b, uint64(len(payload)))
		b = append(b, payload...)
	}
	return b, nil
}

// encodeEmbeddedPayload produces the bytes inside a submessage's
// length prefix. If the field's message type is a scalar-wrapping
// wrapper and the caller supplied the bare scalar directly instead of
// a Value, it synthesizes the one-field {1: value} submessage the
// wrapper would otherwise have required a nested struct for.
func encodeEmbeddedPayload(f *ir.FieldProps, value any, reg *Registry) ([]byte, error) {
	if inner, ok := value.(Value); ok {
		msgProps, ok := reg.Messages[f.MessageType]
		if !ok {
			return nil, fmt.Errorf("codec: unknown message type %q for field %q", f.MessageType, f.ProtoName)
		}
		return Encode(inner, msgProps, reg)
	}

	msgProps, ok := reg.Messages[f.MessageType]
	if ok && msgProps.Wrapper && len(msgProps.Fields) > 0 {
		return encodeWrapped(msgProps.Fields[0], value)
	}
	return nil, fmt.Errorf("codec: field %q value does not implement Value and its type is not a scalar wrapper", f.ProtoName)
}

func encodeWrapped(wrapped *ir.FieldProps, value any) ([]byte, error) {
	b := append([]byte{}, wrapped.EncodedTag...)
	return wire.EncodeScalar(b, wrapped.Kind, value)
}

// encodeMap writes a map field: each MapEntry becomes its own
// {1:key, 2:value} submessage, tagged and length-prefixed like any
// other repeated embedded element. A map field whose MapValue is
// KindMessage reuses FieldProps.MessageType to name the value's
// message type, since a map field has no message type of its own.
func encodeMap(b []byte, f *ir.FieldProps, value any, reg *Registry) ([]byte, error) {
	entries := asMapEntries(value)
	keyField := ir.NewFieldProps(1, f.MapKey)
	valueField := ir.NewFieldProps(2, f.MapValue)
	valueField.MessageType = f.MessageType
	valueField.Embedded = f.MapValue == wire.KindMessage

	for _, entry := range entries {
		var payload []byte
		var err error
		payload = append(payload, keyField.EncodedTag...)
		payload, err = wire.EncodeScalar(payload, keyField.Kind, entry.Key)
		if err != nil {
			return nil, fmt.Errorf("map key: %w", err)
		}
		if valueField.Embedded {
			payload, err = encodeSingularEmbedded(payload, valueField, entry.Value, reg)
		} else {
			payload = append(payload, valueField.EncodedTag...)
			payload, err = wire.EncodeScalar(payload, valueField.Kind, entry.Value)
		}
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}
		b = wire.EncodeTag(b, f.Number, wire.TypeBytes)
		b = wire.AppendVarint(b, uint64(len(payload)))
		b = append(b, payload...)
	}
	return b, nil
}

// asElements turns a repeated field's value into a generic slice
// without reflection, matching the concrete slice types a generated
// struct or StaticValue is expected to use.
func asElements(value any) ([]any, error) {
	switch s := value.(type) {
	case nil:
		return nil, nil
	case []any:
		return s, nil
	case []int32:
		return intSliceToAny(s), nil
	case []int64:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, nil
	case []uint32:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, nil
	case []uint64:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, nil
	case []float32:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, nil
	case []float64:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, nil
	case []bool:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, nil
	case []string:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, nil
	case [][]byte:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, nil
	case []Value:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("codec: unsupported repeated field value type %T", value)
	}
}

func intSliceToAny(s []int32) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
