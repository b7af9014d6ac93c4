package plugin

import (
	"bytes"
	"strings"
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/protoc-gen-wire/protoc-gen-wire/internal/testprotos"
)

const greetingProto = `
syntax = "proto3";
package greet;

message Greeting {
  string name = 1;
  int32 count = 2;
}
`

func TestRunGeneratesFile(t *testing.T) {
	file, err := testprotos.CompileOne("greet.proto", greetingProto)
	if err != nil {
		t.Fatalf("CompileOne: %v", err)
	}
	fdProto := protodesc.ToFileDescriptorProto(file)

	req := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: []string{"greet.proto"},
		ProtoFile:      []*descriptorpb.FileDescriptorProto{fdProto},
	}
	reqBytes, err := proto.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	var out bytes.Buffer
	if err := Run(bytes.NewReader(reqBytes), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var resp pluginpb.CodeGeneratorResponse
	if err := proto.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.GetError() != "" {
		t.Fatalf("plugin reported error: %s", resp.GetError())
	}
	if len(resp.File) != 1 {
		t.Fatalf("expected 1 generated file, got %d", len(resp.File))
	}
	content := resp.File[0].GetContent()
	if !strings.Contains(content, "type Greeting struct") {
		t.Fatalf("generated content missing Greeting struct:\n%s", content)
	}
	if !strings.Contains(content, "func (m *Greeting) Encode(") {
		t.Fatalf("generated content missing Encode method:\n%s", content)
	}
}

func TestRunUnknownFileToGenerateFails(t *testing.T) {
	req := &pluginpb.CodeGeneratorRequest{FileToGenerate: []string{"missing.proto"}}
	reqBytes, err := proto.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	var out bytes.Buffer
	if err := Run(bytes.NewReader(reqBytes), &out); err != nil {
		t.Fatalf("Run should report errors via the response, not a Go error: %v", err)
	}

	var resp pluginpb.CodeGeneratorResponse
	if err := proto.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.GetError() == "" {
		t.Fatalf("expected response Error to be set")
	}
}
