package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	minInt32  = -1 << 31
	maxInt32  = 1<<31 - 1
	maxUint32 = 1<<32 - 1
)

// canonical IEEE-754 bit patterns for the three special values, chosen
// to match the byte sequences existing consumers of this wire format
// expect.
const (
	float32PosInfBits uint32 = 0x7F80_0000
	float32NegInfBits uint32 = 0xFF80_0000
	float32NaNBits    uint32 = 0x7FC0_0000

	float64PosInfBits uint64 = 0x7FF0_0000_0000_0000
	float64NegInfBits uint64 = 0xFFF0_0000_0000_0000
	float64NaNBits    uint64 = 0x7FF8_0000_0000_0001
)

// EncodeScalar appends the wire representation of v (a bool, int32,
// int64, uint32, uint64, float32, float64, string, or []byte) as the
// given scalar Kind, applying the appropriate range checks and
// special-value handling. KindEnum expects v already resolved to its
// associated int32 by the caller (see the ir package's enum symbol
// table).
func EncodeScalar(b []byte, kind Kind, v any) ([]byte, error) {
	switch kind {
	case KindBool:
		bv, ok := v.(bool)
		if !ok {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: fmt.Errorf("not a bool")}
		}
		if bv {
			return AppendVarint(b, 1), nil
		}
		return AppendVarint(b, 0), nil

	case KindInt32, KindEnum:
		n, err := toInt64(v)
		if err != nil {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: err}
		}
		if n < minInt32 || n > maxInt32 {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: fmt.Errorf("out of int32 range")}
		}
		return AppendVarintSigned(b, n), nil

	case KindInt64:
		n, err := toInt64(v)
		if err != nil {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: err}
		}
		return AppendVarintSigned(b, n), nil

	case KindUint32:
		n, err := toUint64(v)
		if err != nil {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: err}
		}
		if n > maxUint32 {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: fmt.Errorf("out of uint32 range")}
		}
		return AppendVarint(b, n), nil

	case KindUint64:
		n, err := toUint64(v)
		if err != nil {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: err}
		}
		return AppendVarint(b, n), nil

	case KindSint32:
		n, err := toInt64(v)
		if err != nil {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: err}
		}
		if n < minInt32 || n > maxInt32 {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: fmt.Errorf("out of int32 range")}
		}
		return AppendZigZag(b, n), nil

	case KindSint64:
		n, err := toInt64(v)
		if err != nil {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: err}
		}
		return AppendZigZag(b, n), nil

	case KindFixed32:
		n, err := toUint64(v)
		if err != nil {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: err}
		}
		if n > maxUint32 {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: fmt.Errorf("out of uint32 range")}
		}
		return appendFixed32(b, uint32(n)), nil

	case KindFixed64:
		n, err := toUint64(v)
		if err != nil {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: err}
		}
		return appendFixed64(b, n), nil

	case KindSfixed32:
		n, err := toInt64(v)
		if err != nil {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: err}
		}
		if n < minInt32 || n > maxInt32 {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: fmt.Errorf("out of int32 range")}
		}
		return appendFixed32(b, uint32(int32(n))), nil

	case KindSfixed64:
		n, err := toInt64(v)
		if err != nil {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: err}
		}
		return appendFixed64(b, uint64(n)), nil

	case KindFloat:
		f, err := toFloat32(v)
		if err != nil {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: err}
		}
		return appendFixed32(b, float32Bits(f)), nil

	case KindDouble:
		f, err := toFloat64(v)
		if err != nil {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: err}
		}
		return appendFixed64(b, float64Bits(f)), nil

	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: fmt.Errorf("not a string")}
		}
		b = AppendVarint(b, uint64(len(s)))
		return append(b, s...), nil

	case KindBytes:
		bs, ok := v.([]byte)
		if !ok {
			return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: fmt.Errorf("not []byte")}
		}
		b = AppendVarint(b, uint64(len(bs)))
		return append(b, bs...), nil

	default:
		return nil, &TypeEncodeError{Kind: kind, Value: v, Cause: fmt.Errorf("unsupported scalar kind")}
	}
}

func appendFixed32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendFixed64(b []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(b, tmp[:]...)
}

// float32Bits returns the IEEE-754 bit pattern for f, substituting
// canonical special-value patterns for +Inf, -Inf, and NaN so encoder
// output is independent of which NaN payload the caller happened to
// construct.
func float32Bits(f float32) uint32 {
	switch {
	case math.IsNaN(float64(f)):
		return float32NaNBits
	case math.IsInf(float64(f), 1):
		return float32PosInfBits
	case math.IsInf(float64(f), -1):
		return float32NegInfBits
	default:
		return math.Float32bits(f)
	}
}

// float64Bits is float32Bits's double-precision counterpart.
func float64Bits(f float64) uint64 {
	switch {
	case math.IsNaN(f):
		return float64NaNBits
	case math.IsInf(f, 1):
		return float64PosInfBits
	case math.IsInf(f, -1):
		return float64NegInfBits
	default:
		return math.Float64bits(f)
	}
}

// ConsumeFixed32 / ConsumeFixed64 read little-endian fixed-width
// scalars from the front of b.
func ConsumeFixed32(b []byte) (v uint32, n int, err error) {
	if len(b) < 4 {
		return 0, 0, ErrTruncated
	}
	return binary.LittleEndian.Uint32(b), 4, nil
}

func ConsumeFixed64(b []byte) (v uint64, n int, err error) {
	if len(b) < 8 {
		return 0, 0, ErrTruncated
	}
	return binary.LittleEndian.Uint64(b), 8, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("value overflows int64")
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("not an integer: %T", v)
	}
}

func toUint64(v any) (uint64, error) {
	switch n := v.(type) {
	case int:
		if n < 0 {
			return 0, fmt.Errorf("negative value for unsigned field")
		}
		return uint64(n), nil
	case int32:
		if n < 0 {
			return 0, fmt.Errorf("negative value for unsigned field")
		}
		return uint64(n), nil
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("negative value for unsigned field")
		}
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	default:
		return 0, fmt.Errorf("not an integer: %T", v)
	}
}

func toFloat32(v any) (float32, error) {
	switch f := v.(type) {
	case float32:
		return f, nil
	case float64:
		return float32(f), nil
	default:
		return 0, fmt.Errorf("not a float: %T", v)
	}
}

func toFloat64(v any) (float64, error) {
	switch f := v.(type) {
	case float32:
		return float64(f), nil
	case float64:
		return f, nil
	default:
		return 0, fmt.Errorf("not a float: %T", v)
	}
}
