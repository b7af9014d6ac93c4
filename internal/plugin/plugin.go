// Package plugin implements the protoc plugin transport: decoding a
// CodeGeneratorRequest from stdin, indexing every file it names,
// running the Go target generator over file_to_generate, and encoding
// a CodeGeneratorResponse to stdout.
package plugin

import (
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/protoc-gen-wire/protoc-gen-wire/internal/codec"
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/emitgo"
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/genopts"
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/ir"
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/typeindex"
)

// supportedFeatures advertises proto3-optional support, since the
// emptiness policy and indexer both already distinguish explicit
// presence from the proto3 zero-value default.
var supportedFeatures = uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)

// Run reads a CodeGeneratorRequest from r, generates Go sources for
// every file named in file_to_generate, and writes the resulting
// CodeGeneratorResponse to w.
func Run(r io.Reader, w io.Writer) error {
	req, err := ReadRequest(r)
	if err != nil {
		return err
	}
	resp := Generate(req)
	return WriteResponse(w, resp)
}

// ReadRequest decodes a binary CodeGeneratorRequest from r.
func ReadRequest(r io.Reader) (*pluginpb.CodeGeneratorRequest, error) {
	reqBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("plugin: read request: %w", err)
	}
	var req pluginpb.CodeGeneratorRequest
	if err := proto.Unmarshal(reqBytes, &req); err != nil {
		return nil, fmt.Errorf("plugin: unmarshal request: %w", err)
	}
	return &req, nil
}

// WriteResponse encodes resp as a binary CodeGeneratorResponse to w.
func WriteResponse(w io.Writer, resp *pluginpb.CodeGeneratorResponse) error {
	respBytes, err := proto.Marshal(resp)
	if err != nil {
		return fmt.Errorf("plugin: marshal response: %w", err)
	}
	if _, err := w.Write(respBytes); err != nil {
		return fmt.Errorf("plugin: write response: %w", err)
	}
	return nil
}

// Generate runs the full driver over req, returning a response that
// carries a populated Error field instead of a Go error so the
// caller can always marshal and emit it per the plugin protocol.
func Generate(req *pluginpb.CodeGeneratorRequest) *pluginpb.CodeGeneratorResponse {
	resp, err := handleRequest(req)
	if err != nil {
		msg := err.Error()
		return &pluginpb.CodeGeneratorResponse{Error: &msg}
	}
	return resp
}

func handleRequest(req *pluginpb.CodeGeneratorRequest) (*pluginpb.CodeGeneratorResponse, error) {
	files, err := protodesc.NewFiles(&descriptorpb.FileDescriptorSet{File: req.GetProtoFile()})
	if err != nil {
		return nil, fmt.Errorf("build descriptor registry: %w", err)
	}

	opts := genopts.Parse(req.GetParameter())
	ctx := ir.NewContext()
	ctx.Plugins = opts.Plugins
	ctx.GenDescriptors = opts.GenDescriptors
	ctx.UsingValueWrappers = opts.UsingValueWrappers

	reg := codec.NewRegistry()

	// Index every file in the request (not only file_to_generate) so
	// cross-file type references resolve regardless of import order.
	indexed := make(map[string]protoreflect.FileDescriptor, len(req.GetProtoFile()))
	for _, fd := range req.GetProtoFile() {
		file, err := files.FindFileByPath(fd.GetName())
		if err != nil {
			return nil, fmt.Errorf("find file %s: %w", fd.GetName(), err)
		}
		indexed[fd.GetName()] = file

		messages, enums, err := typeindex.IndexFile(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("index %s: %w", fd.GetName(), err)
		}
		for _, m := range messages {
			reg.AddMessage(m)
		}
		for _, e := range enums {
			reg.AddEnum(e)
		}
	}

	resp := &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: &supportedFeatures,
	}
	usedPaths := map[string]bool{}
	for _, name := range req.GetFileToGenerate() {
		file, ok := indexed[name]
		if !ok {
			return nil, fmt.Errorf("file_to_generate %q not present in proto_file", name)
		}
		content, err := emitgo.GenerateFile(ctx, file, reg)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", name, err)
		}
		if content == "" {
			continue
		}
		outName := emitgo.OutputPath(name)
		if usedPaths[outName] {
			outName = emitgo.DisambiguatedOutputPath(name)
		}
		usedPaths[outName] = true
		resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(outName),
			Content: proto.String(content),
		})
	}
	return resp, nil
}
