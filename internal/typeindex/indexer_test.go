package typeindex

import (
	"testing"

	"github.com/protoc-gen-wire/protoc-gen-wire/internal/ir"
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/testprotos"
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/wire"
)

const sampleProto = `
syntax = "proto3";
package sample;

message Outer {
  message Inner {
    int32 count = 1;
  }
  Inner inner = 1;
  repeated int32 tags = 2 [packed = true];
  oneof choice {
    string text = 3;
    int32 number = 4;
  }
}

enum Status {
  UNKNOWN = 0;
  ACTIVE = 1;
}
`

func TestIndexFileBasic(t *testing.T) {
	file, err := testprotos.CompileOne("sample.proto", sampleProto)
	if err != nil {
		t.Fatalf("CompileOne: %v", err)
	}

	ctx := ir.NewContext()
	messages, enums, err := IndexFile(ctx, file)
	if err != nil {
		t.Fatalf("IndexFile: %v", err)
	}

	byFullName := map[string]*ir.MessageProps{}
	for _, m := range messages {
		byFullName[m.FullName] = m
	}

	outer, ok := byFullName["sample.Outer"]
	if !ok {
		t.Fatalf("expected sample.Outer, got %v", byFullName)
	}
	inner, ok := byFullName["sample.Outer.Inner"]
	if !ok {
		t.Fatalf("expected nested sample.Outer.Inner, got %v", byFullName)
	}
	if inner.Name != "Inner" {
		t.Fatalf("inner.Name = %q, want Inner", inner.Name)
	}

	tagsField, ok := outer.FieldByNumber(2)
	if !ok || !tagsField.Repeated || !tagsField.Packed {
		t.Fatalf("tags field not indexed as packed repeated: %+v", tagsField)
	}

	if len(outer.Oneofs) != 1 || outer.Oneofs[0].Name != "choice" {
		t.Fatalf("expected one oneof group 'choice', got %+v", outer.Oneofs)
	}
	textField, ok := outer.FieldByNumber(3)
	if !ok || !textField.IsOneofMember || textField.OneofIndex != 0 {
		t.Fatalf("text field not indexed as oneof member: %+v", textField)
	}

	if len(enums) != 1 || enums[0].FullName != "sample.Status" {
		t.Fatalf("expected enum sample.Status, got %+v", enums)
	}
	if n, ok := enums[0].Number("ACTIVE"); !ok || n != 1 {
		t.Fatalf("expected ACTIVE=1, got %d, %v", n, ok)
	}

	fileTypes := ctx.GlobalTypeMapping["sample.proto"]
	if _, ok := fileTypes["sample.Outer"]; !ok {
		t.Fatalf("expected global type mapping entry for sample.Outer")
	}
	if _, ok := fileTypes["sample.Outer.Inner"]; !ok {
		t.Fatalf("expected global type mapping entry for sample.Outer.Inner")
	}
}

func TestIndexFileModulePrefixComposition(t *testing.T) {
	file, err := testprotos.CompileOne("prefixed.proto", `
syntax = "proto3";
package sample.v1;
message Widget { int32 id = 1; }
`)
	if err != nil {
		t.Fatalf("CompileOne: %v", err)
	}

	ctx := ir.NewContext()
	_, _, err = IndexFile(ctx, file)
	if err != nil {
		t.Fatalf("IndexFile: %v", err)
	}
	meta := ctx.GlobalTypeMapping["prefixed.proto"]["sample.v1.Widget"]
	if meta == nil {
		t.Fatalf("expected meta for sample.v1.Widget")
	}
	if meta.ModuleName != "Sample_V1_Widget" {
		t.Fatalf("ModuleName = %q, want Sample_V1_Widget", meta.ModuleName)
	}
}

func TestDetectWrapperRequiresMatchingName(t *testing.T) {
	file, err := testprotos.CompileOne("wrapper.proto", `
syntax = "proto3";
package sample;
message Int32Value { int32 value = 1; }
message BoolValue { string value = 1; }
`)
	if err != nil {
		t.Fatalf("CompileOne: %v", err)
	}

	ctx := ir.NewContext()
	ctx.UsingValueWrappers = true
	messages, _, err := IndexFile(ctx, file)
	if err != nil {
		t.Fatalf("IndexFile: %v", err)
	}

	var wrapperMsg, mismatchMsg *ir.MessageProps
	for _, m := range messages {
		switch m.FullName {
		case "sample.Int32Value":
			wrapperMsg = m
		case "sample.BoolValue":
			mismatchMsg = m
		}
	}
	if wrapperMsg == nil || !wrapperMsg.Wrapper || !wrapperMsg.WrapperIsScalar {
		t.Fatalf("expected Int32Value to be detected as a scalar wrapper: %+v", wrapperMsg)
	}
	if mismatchMsg == nil || mismatchMsg.Wrapper {
		t.Fatalf("BoolValue's field type does not match its name, should not be a wrapper: %+v", mismatchMsg)
	}
}

func TestKindFromFieldRoundTrip(t *testing.T) {
	file, err := testprotos.CompileOne("kinds.proto", `
syntax = "proto3";
package sample;
message Kinds {
  double d = 1;
  float f = 2;
  bytes b = 3;
}
`)
	if err != nil {
		t.Fatalf("CompileOne: %v", err)
	}
	ctx := ir.NewContext()
	messages, _, err := IndexFile(ctx, file)
	if err != nil {
		t.Fatalf("IndexFile: %v", err)
	}
	var kinds *ir.MessageProps
	for _, m := range messages {
		if m.FullName == "sample.Kinds" {
			kinds = m
		}
	}
	if kinds == nil {
		t.Fatalf("expected sample.Kinds")
	}
	checks := []struct {
		number int32
		kind   wire.Kind
	}{
		{1, wire.KindDouble},
		{2, wire.KindFloat},
		{3, wire.KindBytes},
	}
	for _, c := range checks {
		f, ok := kinds.FieldByNumber(c.number)
		if !ok || f.Kind != c.kind {
			t.Fatalf("field %d kind = %v, want %v", c.number, f, c.kind)
		}
	}
}
