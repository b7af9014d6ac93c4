// Package emitgo renders Go source for the messages declared in a
// single proto file: one struct plus a compiled ir.MessageProps
// literal and an Encode method per message, wired to internal/codec
// and internal/wire at the call site. Template rendering fidelity
// (naming conventions, comments, nested-type layout) is intentionally
// minimal; this package exists to exercise the wire codec and type
// indexer end to end, not to be a complete code generator in its own
// right.
package emitgo

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/google/uuid"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/protoc-gen-wire/protoc-gen-wire/internal/codec"
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/ir"
)

// OutputPath derives the generated file's name from the .proto
// file's path, the way protoc plugins conventionally do (".proto"
// replaced with ".pb.wire.go"). A short uuid-derived suffix is mixed
// in only when a collision is detected by the caller across a single
// response, disambiguating two files that would otherwise map to the
// identical output path.
func OutputPath(protoPath string) string {
	base := strings.TrimSuffix(protoPath, path.Ext(protoPath))
	return base + ".pb.wire.go"
}

// DisambiguatedOutputPath appends a short random suffix to avoid
// overwriting a previously emitted file of the same computed path
// within one CodeGeneratorResponse.
func DisambiguatedOutputPath(protoPath string) string {
	base := strings.TrimSuffix(protoPath, path.Ext(protoPath))
	return fmt.Sprintf("%s.%s.pb.wire.go", base, uuid.New().String()[:8])
}

// GenerateFile renders the Go source for every top-level and nested
// message declared directly in file, in declaration order, looking up
// each one's compiled ir.MessageProps from reg by its proto-qualified
// name (already populated by typeindex.IndexFile for this file).
func GenerateFile(ctx *ir.Context, file protoreflect.FileDescriptor, reg *codec.Registry) (string, error) {
	names := fileTypes(ctx, file)
	if len(names) == 0 {
		return "", nil
	}

	pkgName := goPackageName(file)
	var messages []*messageView
	for _, fqName := range names {
		props, ok := reg.Messages[fqName]
		if !ok {
			continue
		}
		messages = append(messages, newMessageView(props))
	}
	if len(messages) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	data := struct {
		Package  string
		Messages []*messageView
	}{Package: pkgName, Messages: messages}
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("emitgo: render %s: %w", file.Path(), err)
	}
	return buf.String(), nil
}

// fileTypes names, in declaration order, every message this file
// contributed to the global type map, by walking the descriptor tree
// the same way the indexer did.
func fileTypes(ctx *ir.Context, file protoreflect.FileDescriptor) []string {
	var names []string
	var walk func(msgs protoreflect.MessageDescriptors, namespace []string)
	walk = func(msgs protoreflect.MessageDescriptors, namespace []string) {
		for i := 0; i < msgs.Len(); i++ {
			m := msgs.Get(i)
			if m.IsMapEntry() {
				continue
			}
			fq := ir.ComposeQualifiedName(string(file.Package()), strings.Join(namespace, "."), string(m.Name()))
			names = append(names, fq)
			walk(m.Messages(), append(append([]string{}, namespace...), string(m.Name())))
		}
	}
	walk(file.Messages(), nil)
	return names
}

func goPackageName(file protoreflect.FileDescriptor) string {
	pkg := string(file.Package())
	if pkg == "" {
		return "wiregen"
	}
	parts := strings.Split(pkg, ".")
	return strings.ToLower(parts[len(parts)-1])
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by protoc-gen-wire. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/codec"
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/ir"
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/wire"
)

{{range .Messages}}
type {{.GoName}} struct {
{{range .Fields}}	{{.GoName}} {{.GoType}}
{{end}}}

var {{.PropsVar}} = func() *ir.MessageProps {
{{range .Fields}}	{{.VarName}} := ir.NewFieldProps({{.Number}}, wire.{{.KindConst}})
	{{.VarName}}.Name, {{.VarName}}.ProtoName = {{.GoName | printf "%q"}}, {{.ProtoName | printf "%q"}}
{{if .Repeated}}	{{.VarName}}.Repeated = true
{{end}}{{if .Packed}}	{{.VarName}}.Packed = true
{{end}}{{if .Optional}}	{{.VarName}}.Optional = true
{{end}}{{if .Required}}	{{.VarName}}.Required = true
{{end}}{{if .Embedded}}	{{.VarName}}.Embedded = true
{{end}}{{if .MessageType}}	{{.VarName}}.MessageType = {{.MessageType | printf "%q"}}
{{end}}{{if .EnumType}}	{{.VarName}}.EnumType = {{.EnumType | printf "%q"}}
{{end}}{{end}}	m := &ir.MessageProps{
		Name:     {{.GoName | printf "%q"}},
		FullName: {{.FullName | printf "%q"}},
		Syntax:   ir.{{.SyntaxConst}},
		Fields:   []*ir.FieldProps{ {{range .Fields}}{{.VarName}}, {{end}} },
	}
	m.Index()
	return m
}()

// wireValue builds the generic codec.Value this struct's fields are
// read through by the message encoder.
func (m *{{.GoName}}) wireValue() codec.Value {
	return &codec.StaticValue{Fields: map[string]any{
{{range .Fields}}		{{.GoName | printf "%q"}}: m.{{.GoName}},
{{end}}	}}
}

// Encode renders m's wire bytes using the compiled field table above.
func (m *{{.GoName}}) Encode(reg *codec.Registry) ([]byte, error) {
	return codec.Encode(m.wireValue(), {{.PropsVar}}, reg)
}
{{end}}
`))

type messageView struct {
	GoName      string
	FullName    string
	PropsVar    string
	SyntaxConst string
	Fields      []*fieldView
}

type fieldView struct {
	GoName      string
	ProtoName   string
	VarName     string
	Number      int32
	KindConst   string
	GoType      string
	Repeated    bool
	Packed      bool
	Optional    bool
	Required    bool
	Embedded    bool
	MessageType string
	EnumType    string
}

func newMessageView(props *ir.MessageProps) *messageView {
	mv := &messageView{
		GoName:      props.Name,
		FullName:    props.FullName,
		PropsVar:    "props" + props.Name,
		SyntaxConst: syntaxConstName(props.Syntax),
	}
	for i, f := range props.Fields {
		mv.Fields = append(mv.Fields, &fieldView{
			GoName:      f.Name,
			ProtoName:   f.ProtoName,
			VarName:     fmt.Sprintf("f%d", i),
			Number:      f.Number,
			KindConst:   kindConstName(f.Kind),
			GoType:      goFieldType(f),
			Repeated:    f.Repeated,
			Packed:      f.Packed,
			Optional:    f.Optional,
			Required:    f.Required,
			Embedded:    f.Embedded,
			MessageType: f.MessageType,
			EnumType:    f.EnumType,
		})
	}
	return mv
}

func syntaxConstName(s ir.Syntax) string {
	if s == ir.Proto2 {
		return "Proto2"
	}
	return "Proto3"
}
