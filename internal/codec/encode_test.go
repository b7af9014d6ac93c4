package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/protoc-gen-wire/protoc-gen-wire/internal/ir"
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/wire"
)

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	var out []byte
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			continue
		}
		var hi, lo byte
		hi = fromHexDigit(t, s[i])
		i++
		lo = fromHexDigit(t, s[i])
		out = append(out, hi<<4|lo)
	}
	return out
}

func fromHexDigit(t *testing.T, c byte) byte {
	t.Helper()
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		t.Fatalf("bad hex digit %q", c)
		return 0
	}
}

func newScalarMessage(syntax ir.Syntax, fields ...*ir.FieldProps) *ir.MessageProps {
	m := &ir.MessageProps{Name: "M", FullName: "pkg.M", Syntax: syntax, Fields: fields}
	for i := range fields {
		fields[i].OneofIndex = -1
	}
	m.Index()
	return m
}

func TestEncodeProto3SkipsDefault(t *testing.T) {
	a := ir.NewFieldProps(1, wire.KindInt32)
	a.Name, a.ProtoName = "A", "a"
	b := ir.NewFieldProps(2, wire.KindString)
	b.Name, b.ProtoName = "B", "b"
	props := newScalarMessage(ir.Proto3, a, b)

	v := &StaticValue{Fields: map[string]any{"A": int32(150), "B": ""}}
	got, err := Encode(v, props, NewRegistry())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := hexBytes(t, "08 96 01")
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = % X, want % X", got, want)
	}
}

func TestEncodeProto2OptionalNegative(t *testing.T) {
	x := ir.NewFieldProps(1, wire.KindInt64)
	x.Name, x.ProtoName, x.Optional = "X", "x", true
	props := newScalarMessage(ir.Proto2, x)

	v := &StaticValue{Fields: map[string]any{"X": int64(-1)}}
	got, err := Encode(v, props, NewRegistry())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := hexBytes(t, "08 FF FF FF FF FF FF FF FF FF 01")
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = % X, want % X", got, want)
	}
}

func TestEncodePackedRepeatedInt32(t *testing.T) {
	r := ir.NewFieldProps(5, wire.KindInt32)
	r.Name, r.ProtoName, r.Repeated, r.Packed = "R", "r", true, true
	props := newScalarMessage(ir.Proto3, r)

	v := &StaticValue{Fields: map[string]any{"R": []int32{1, 2, 3}}}
	got, err := Encode(v, props, NewRegistry())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := hexBytes(t, "2A 03 01 02 03")
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = % X, want % X", got, want)
	}
}

func TestEncodeZigZag(t *testing.T) {
	tests := []struct {
		v    int32
		want string
	}{
		{-1, "01"},
		{2147483647, "FE FF FF FF 0F"},
	}
	for _, tc := range tests {
		got, err := wire.EncodeScalar(nil, wire.KindSint32, tc.v)
		if err != nil {
			t.Fatalf("EncodeScalar(%d): %v", tc.v, err)
		}
		want := hexBytes(t, tc.want)
		if !bytes.Equal(got, want) {
			t.Fatalf("EncodeScalar(%d) = % X, want % X", tc.v, got, want)
		}
	}
}

func TestEncodeFloatSpecials(t *testing.T) {
	gotF, err := wire.EncodeScalar(nil, wire.KindFloat, float32(nan()))
	if err != nil {
		t.Fatalf("EncodeScalar float nan: %v", err)
	}
	if want := hexBytes(t, "00 00 C0 7F"); !bytes.Equal(gotF, want) {
		t.Fatalf("float nan = % X, want % X", gotF, want)
	}

	gotD, err := wire.EncodeScalar(nil, wire.KindDouble, negInf())
	if err != nil {
		t.Fatalf("EncodeScalar double -inf: %v", err)
	}
	if want := hexBytes(t, "00 00 00 00 00 00 F0 FF"); !bytes.Equal(gotD, want) {
		t.Fatalf("double -inf = % X, want % X", gotD, want)
	}
}

func nan() float64       { return zeroFloat() / zeroFloat() }
func negInf() float64    { v := 1.0; return -v / zeroFloat() }
func zeroFloat() float64 { return 0 }

func TestEncodeValueWrapperInlining(t *testing.T) {
	monthValueField := ir.NewFieldProps(1, wire.KindEnum)
	monthValueField.Name, monthValueField.ProtoName = "Value", "value"
	monthValue := &ir.MessageProps{
		Name: "MonthValue", FullName: "pkg.MonthValue",
		Syntax: ir.Proto3, Fields: []*ir.FieldProps{monthValueField}, Wrapper: true, WrapperIsScalar: true,
	}
	monthValue.Index()

	monthField := ir.NewFieldProps(2, wire.KindMessage)
	monthField.Name, monthField.ProtoName = "Month", "month"
	monthField.Embedded = true
	monthField.MessageType = "pkg.MonthValue"

	foo := newScalarMessage(ir.Proto3, monthField)

	reg := NewRegistry()
	reg.AddMessage(monthValue)

	v := &StaticValue{Fields: map[string]any{"Month": int32(2)}}
	got, err := Encode(v, foo, reg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := hexBytes(t, "12 02 08 02")
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = % X, want % X", got, want)
	}
}

func TestEncodeInt32OverflowFails(t *testing.T) {
	a := ir.NewFieldProps(1, wire.KindInt32)
	a.Name, a.ProtoName = "A", "a"
	props := newScalarMessage(ir.Proto3, a)

	v := &StaticValue{Fields: map[string]any{"A": int64(1) << 31}}
	_, err := Encode(v, props, NewRegistry())
	if err == nil {
		t.Fatalf("expected error")
	}
	var typeErr *wire.TypeEncodeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected TypeEncodeError, got %T: %v", err, err)
	}
}

func TestEncodeOneofWrongBranchFails(t *testing.T) {
	x := ir.NewFieldProps(1, wire.KindInt32)
	x.Name, x.ProtoName, x.OneofIndex, x.IsOneofMember = "X", "x", 0, true
	other := ir.NewFieldProps(9, wire.KindString)
	other.Name, other.ProtoName = "Other", "other"

	props := &ir.MessageProps{
		Name: "M", FullName: "pkg.M", Syntax: ir.Proto3,
		Fields: []*ir.FieldProps{x, other},
		Oneofs: []ir.Oneof{{Name: "choice", Members: []int{0}}},
	}
	props.Index()

	v := &StaticValue{
		Fields:   map[string]any{},
		OneofsBy: map[string]OneofValue{"choice": {Field: "Other", Payload: "hi"}},
	}
	_, err := Encode(v, props, NewRegistry())
	if err == nil {
		t.Fatalf("expected error")
	}
	var encErr *EncodeError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected EncodeError, got %T: %v", err, err)
	}
	if encErr.Branch != "Other" || encErr.Group != "choice" {
		t.Fatalf("unexpected EncodeError detail: %+v", encErr)
	}
}

func TestEncodeMapField(t *testing.T) {
	m := ir.NewFieldProps(7, wire.KindInt32)
	m.Name, m.ProtoName, m.Map, m.Embedded = "Scores", "scores", true, true
	m.MapKey, m.MapValue = wire.KindString, wire.KindInt32
	props := newScalarMessage(ir.Proto3, m)

	v := &StaticValue{Fields: map[string]any{
		"Scores": []MapEntry{{Key: "a", Value: int32(1)}},
	}}
	got, err := Encode(v, props, NewRegistry())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// tag(7,bytes)=0x3A, len=5, entry: key is a string so tag(1,bytes)
	// =0x0A, len=1, 'a', then tag(2,varint)=0x10, value 1.
	want := hexBytes(t, "3A 05 0A 01 61 10 01")
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = % X, want % X", got, want)
	}
}

func TestEncodeEmptyMapFieldSkipped(t *testing.T) {
	m := ir.NewFieldProps(7, wire.KindInt32)
	m.Name, m.ProtoName, m.Map, m.Embedded = "Scores", "scores", true, true
	m.MapKey, m.MapValue = wire.KindString, wire.KindInt32
	props := newScalarMessage(ir.Proto3, m)

	v := &StaticValue{Fields: map[string]any{"Scores": []MapEntry{}}}
	got, err := Encode(v, props, NewRegistry())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty map field to produce no bytes, got % X", got)
	}
}
