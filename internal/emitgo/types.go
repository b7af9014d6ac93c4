package emitgo

import (
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/ir"
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/wire"
)

// kindConstName names the wire.Kind constant a generated field's
// NewFieldProps call should reference.
func kindConstName(k wire.Kind) string {
	switch k {
	case wire.KindBool:
		return "KindBool"
	case wire.KindInt32:
		return "KindInt32"
	case wire.KindInt64:
		return "KindInt64"
	case wire.KindUint32:
		return "KindUint32"
	case wire.KindUint64:
		return "KindUint64"
	case wire.KindSint32:
		return "KindSint32"
	case wire.KindSint64:
		return "KindSint64"
	case wire.KindFixed32:
		return "KindFixed32"
	case wire.KindFixed64:
		return "KindFixed64"
	case wire.KindSfixed32:
		return "KindSfixed32"
	case wire.KindSfixed64:
		return "KindSfixed64"
	case wire.KindFloat:
		return "KindFloat"
	case wire.KindDouble:
		return "KindDouble"
	case wire.KindString:
		return "KindString"
	case wire.KindBytes:
		return "KindBytes"
	case wire.KindEnum:
		return "KindEnum"
	case wire.KindMessage:
		return "KindMessage"
	default:
		return "KindInvalid"
	}
}

// goFieldType names the Go struct field type for a scalar/enum kind.
// Message-typed and repeated fields are rendered as `any` since the
// struct itself only needs to carry a value the generic encoder can
// read back out by name; a fuller generator would emit the nested
// struct's own pointer/slice type here.
func goFieldType(f *ir.FieldProps) string {
	if f.Repeated || f.Map {
		return "any"
	}
	switch f.Kind {
	case wire.KindBool:
		return "bool"
	case wire.KindInt32, wire.KindSint32, wire.KindSfixed32, wire.KindEnum:
		return "int32"
	case wire.KindInt64, wire.KindSint64, wire.KindSfixed64:
		return "int64"
	case wire.KindUint32, wire.KindFixed32:
		return "uint32"
	case wire.KindUint64, wire.KindFixed64:
		return "uint64"
	case wire.KindFloat:
		return "float32"
	case wire.KindDouble:
		return "float64"
	case wire.KindString:
		return "string"
	case wire.KindBytes:
		return "[]byte"
	case wire.KindMessage:
		return "any"
	default:
		return "any"
	}
}
