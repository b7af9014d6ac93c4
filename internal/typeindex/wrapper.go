package typeindex

import (
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// detectWrapper reports whether a message is a value-wrapper: it has
// exactly one field named "value" and the message's name, with its
// "Value" suffix removed and lowercased, equals the wrapped type's own
// name lowercased. google.protobuf.{Int32,String,...}Value and any
// user-declared XxxValue message satisfy this symmetrically.
func detectWrapper(msg protoreflect.MessageDescriptor) (wrapped protoreflect.FieldDescriptor, ok bool) {
	if msg.Fields().Len() != 1 {
		return nil, false
	}
	field := msg.Fields().Get(0)
	if string(field.Name()) != "value" {
		return nil, false
	}
	msgName := string(msg.Name())
	base, hasSuffix := strings.CutSuffix(msgName, "Value")
	if !hasSuffix || base == "" {
		return nil, false
	}

	wrappedTypeName := wrappedTypeDisplayName(field)
	if wrappedTypeName == "" {
		return nil, false
	}
	if !strings.EqualFold(base, wrappedTypeName) {
		return nil, false
	}
	return field, true
}

// wrappedTypeDisplayName names the field's type the way its wrapper
// message name would echo it: the bare type name for scalars/enums,
// the message's own short name for message-typed fields.
func wrappedTypeDisplayName(field protoreflect.FieldDescriptor) string {
	switch field.Kind() {
	case protoreflect.MessageKind:
		return string(field.Message().Name())
	case protoreflect.EnumKind:
		return string(field.Enum().Name())
	default:
		return field.Kind().String()
	}
}
