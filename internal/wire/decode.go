package wire

import (
	"fmt"
	"math"
)

// DecodeScalar is the decoder counterpart to EncodeScalar: given the
// scalar Kind and the field's payload bytes (the part after the tag),
// it returns the decoded Go value and the number of bytes consumed
// from b.
//
// For KindString/KindBytes, b must begin at the varint length prefix;
// for every other supported kind b begins at the raw payload.
// KindMessage is not decoded here and returns an error.
func DecodeScalar(b []byte, kind Kind) (v any, n int, err error) {
	switch kind {
	case KindBool:
		u, n, err := ConsumeVarint(b)
		if err != nil {
			return nil, 0, err
		}
		return u != 0, n, nil

	case KindInt32, KindEnum:
		u, n, err := ConsumeVarint(b)
		if err != nil {
			return nil, 0, err
		}
		return int32(int64(u)), n, nil

	case KindInt64:
		u, n, err := ConsumeVarint(b)
		if err != nil {
			return nil, 0, err
		}
		return int64(u), n, nil

	case KindUint32:
		u, n, err := ConsumeVarint(b)
		if err != nil {
			return nil, 0, err
		}
		return uint32(u), n, nil

	case KindUint64:
		u, n, err := ConsumeVarint(b)
		if err != nil {
			return nil, 0, err
		}
		return u, n, nil

	case KindSint32:
		s, n, err := ConsumeZigZag(b)
		if err != nil {
			return nil, 0, err
		}
		return int32(s), n, nil

	case KindSint64:
		s, n, err := ConsumeZigZag(b)
		if err != nil {
			return nil, 0, err
		}
		return s, n, nil

	case KindFixed32:
		u, n, err := ConsumeFixed32(b)
		if err != nil {
			return nil, 0, err
		}
		return u, n, nil

	case KindFixed64:
		u, n, err := ConsumeFixed64(b)
		if err != nil {
			return nil, 0, err
		}
		return u, n, nil

	case KindSfixed32:
		u, n, err := ConsumeFixed32(b)
		if err != nil {
			return nil, 0, err
		}
		return int32(u), n, nil

	case KindSfixed64:
		u, n, err := ConsumeFixed64(b)
		if err != nil {
			return nil, 0, err
		}
		return int64(u), n, nil

	case KindFloat:
		u, n, err := ConsumeFixed32(b)
		if err != nil {
			return nil, 0, err
		}
		return math.Float32frombits(u), n, nil

	case KindDouble:
		u, n, err := ConsumeFixed64(b)
		if err != nil {
			return nil, 0, err
		}
		return math.Float64frombits(u), n, nil

	case KindString:
		length, ln, err := ConsumeVarint(b)
		if err != nil {
			return nil, 0, err
		}
		total := ln + int(length)
		if total > len(b) {
			return nil, 0, ErrTruncated
		}
		return string(b[ln:total]), total, nil

	case KindBytes:
		length, ln, err := ConsumeVarint(b)
		if err != nil {
			return nil, 0, err
		}
		total := ln + int(length)
		if total > len(b) {
			return nil, 0, ErrTruncated
		}
		out := make([]byte, length)
		copy(out, b[ln:total])
		return out, total, nil

	default:
		return nil, 0, fmt.Errorf("wire: unsupported decode kind %s", kind)
	}
}
