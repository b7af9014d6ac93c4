// Package typeindex walks the descriptors in a CodeGeneratorRequest
// and builds the global type map the driver consults when composing
// qualified type names and resolving field/message/enum metadata.
package typeindex

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/runtime/protoimpl"
	"google.golang.org/protobuf/types/descriptorpb"
)

const optionsProtoPath = "protoc-gen-wire/options.proto"

const optionsProtoSource = `
syntax = "proto3";

package protocgenwire;

import "google/protobuf/descriptor.proto";

extend google.protobuf.FileOptions {
  string module_prefix = 50000;
}

extend google.protobuf.MessageOptions {
  string typespec = 50020;
}
`

var E_ModulePrefix = &protoimpl.ExtensionInfo{
	ExtendedType:  (*descriptorpb.FileOptions)(nil),
	ExtensionType: (*string)(nil),
	Field:         50000,
	Name:          "protocgenwire.module_prefix",
	Tag:           "bytes,50000,opt,name=module_prefix",
	Filename:      optionsProtoPath,
}

var E_Typespec = &protoimpl.ExtensionInfo{
	ExtendedType:  (*descriptorpb.MessageOptions)(nil),
	ExtensionType: (*string)(nil),
	Field:         50020,
	Name:          "protocgenwire.typespec",
	Tag:           "bytes,50020,opt,name=typespec",
	Filename:      optionsProtoPath,
}

// modulePrefixFromOptions reads the `module_prefix` FileOptions
// extension, falling back to "" (meaning: use the proto package) when
// unset.
func modulePrefixFromOptions(file protoreflect.FileDescriptor) string {
	opts, ok := file.Options().(*descriptorpb.FileOptions)
	if !ok || opts == nil {
		return ""
	}
	val := proto.GetExtension(opts, E_ModulePrefix)
	s, _ := val.(string)
	return s
}

// typespecFromOptions reads the `typespec` MessageOptions extension
// verbatim.
func typespecFromOptions(msg protoreflect.MessageDescriptor) string {
	opts, ok := msg.Options().(*descriptorpb.MessageOptions)
	if !ok || opts == nil {
		return ""
	}
	val := proto.GetExtension(opts, E_Typespec)
	s, _ := val.(string)
	return s
}
