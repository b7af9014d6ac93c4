// Package wire implements the low-level Protocol Buffers wire format:
// varints, zig-zag integers, fixed-width and floating point scalars, and
// the length-delimited framing used by strings, bytes, packed repeated
// fields, and embedded messages.
package wire

// Type is the 3-bit wire type carried in every field tag.
type Type int8

const (
	TypeVarint Type = 0
	Type64Bit  Type = 1
	TypeBytes  Type = 2 // length-delimited: string, bytes, embedded message, packed repeated
	Type32Bit  Type = 5
)

// Kind identifies a scalar, enum, or message field type for the purposes
// of the codec. It intentionally mirrors the proto field kinds rather
// than any target language's runtime type.
type Kind int8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt32
	KindInt64
	KindUint32
	KindUint64
	KindSint32
	KindSint64
	KindFixed32
	KindFixed64
	KindSfixed32
	KindSfixed64
	KindFloat
	KindDouble
	KindString
	KindBytes
	KindEnum
	KindMessage
)

// WireType returns the on-wire type for a scalar/enum/message kind.
// Embedded messages and packed repeated fields are also TypeBytes; the
// field classifier (see the codec package) decides when that applies.
func WireType(k Kind) Type {
	switch k {
	case KindInt32, KindInt64, KindUint32, KindUint64, KindSint32, KindSint64, KindBool, KindEnum:
		return TypeVarint
	case KindFixed64, KindSfixed64, KindDouble:
		return Type64Bit
	case KindString, KindBytes, KindMessage:
		return TypeBytes
	case KindFixed32, KindSfixed32, KindFloat:
		return Type32Bit
	default:
		return TypeVarint
	}
}

// Packable reports whether a repeated field of this kind may use the
// packed length-delimited encoding. Length-delimited kinds (string,
// bytes, message) are never packable.
func Packable(k Kind) bool {
	switch k {
	case KindString, KindBytes, KindMessage:
		return false
	default:
		return true
	}
}

// EncodeTag returns the varint-encoded field tag: (tag<<3 | wireType).
func EncodeTag(b []byte, fieldNumber int32, wt Type) []byte {
	return AppendVarint(b, uint64(fieldNumber)<<3|uint64(wt))
}

// DecodeTag reads a field tag, returning the field number, wire type,
// and remaining buffer.
func DecodeTag(b []byte) (rest []byte, fieldNumber int32, wt Type, err error) {
	v, n, err := ConsumeVarint(b)
	if err != nil {
		return nil, 0, 0, err
	}
	return b[n:], int32(v >> 3), Type(v & 0x7), nil
}
