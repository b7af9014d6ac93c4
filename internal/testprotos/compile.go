// Package testprotos compiles in-memory .proto source into descriptors
// for tests: a protocompile.SourceResolver backed by an in-memory
// accessor instead of os.Open.
package testprotos

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bufbuild/protocompile"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// Compile builds protoreflect.FileDescriptors for the named entries
// of sources (path -> .proto source text). Every path in sources is
// resolvable as an import target of every other, so fixtures can
// cross-reference each other's messages the way a real protoc
// invocation's file set does.
func Compile(sources map[string]string, filePaths ...string) (linker protoreflect.FileDescriptor, others []protoreflect.FileDescriptor, err error) {
	resolver := &protocompile.SourceResolver{
		Accessor: func(path string) (io.ReadCloser, error) {
			src, ok := sources[path]
			if !ok {
				return nil, fmt.Errorf("testprotos: unknown import %q", path)
			}
			return io.NopCloser(strings.NewReader(src)), nil
		},
	}
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(resolver),
	}
	files, err := compiler.Compile(context.Background(), filePaths...)
	if err != nil {
		return nil, nil, fmt.Errorf("testprotos: compile: %w", err)
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("testprotos: no files compiled")
	}
	others = make([]protoreflect.FileDescriptor, len(files)-1)
	for i, f := range files[1:] {
		others[i] = f
	}
	return files[0], others, nil
}

// CompileOne is the common case of Compile: a single .proto source
// with no cross-file imports beyond the standard descriptor.proto.
func CompileOne(path, source string) (protoreflect.FileDescriptor, error) {
	file, _, err := Compile(map[string]string{path: source}, path)
	return file, err
}
