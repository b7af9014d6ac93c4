package typeindex

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/protoc-gen-wire/protoc-gen-wire/internal/ir"
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/wire"
)

// IndexFile derives a file-local Context, walks the file's messages
// and enums depth-first, and records every type's TypeMetadata under
// the file's contribution to ctx's global type map. It returns every
// message's and enum's compiled properties so the caller can register
// them with a codec.Registry.
func IndexFile(ctx *ir.Context, file protoreflect.FileDescriptor) ([]*ir.MessageProps, []*ir.EnumProps, error) {
	fileCtx := ctx.ForFile(string(file.Package()), modulePrefixFromOptions(file))

	var messages []*ir.MessageProps
	var enums []*ir.EnumProps

	if err := walkMessages(fileCtx, file.Path(), file.Messages(), &messages, &enums); err != nil {
		return nil, nil, err
	}
	if err := walkEnums(fileCtx, file.Path(), file.Enums(), &enums); err != nil {
		return nil, nil, err
	}
	return messages, enums, nil
}

func walkMessages(ctx *ir.Context, filePath string, descs protoreflect.MessageDescriptors, messages *[]*ir.MessageProps, enums *[]*ir.EnumProps) error {
	for i := 0; i < descs.Len(); i++ {
		msg := descs.Get(i)
		if msg.IsMapEntry() {
			continue
		}

		fqName := protoQualifiedName(ctx.Package, ctx.Namespace, string(msg.Name()))
		meta := &ir.TypeMetadata{
			ProtoName:  fqName,
			ModuleName: moduleQualifiedName(ctx.ModulePrefix, ctx.Package, ctx.Namespace, string(msg.Name())),
			Typespec:   typespecFromOptions(msg),
		}
		meta.TypeName = meta.ModuleName

		wrapperField, isWrapper := (protoreflect.FieldDescriptor)(nil), false
		if ctx.UsingValueWrappers {
			wrapperField, isWrapper = detectWrapper(msg)
		}
		if isWrapper {
			meta.Wrapper = true
			meta.TypeName, meta.WrapperTargetScalar = wrapperTypeName(ctx, wrapperField)
		}
		ctx.PutType(filePath, meta)

		props, err := buildMessageProps(msg, meta)
		if err != nil {
			return err
		}
		*messages = append(*messages, props)

		childNS := ctx.WithNamespace(string(msg.Name()))
		if err := walkEnums(childNS, filePath, msg.Enums(), enums); err != nil {
			return err
		}
		if err := walkMessages(childNS, filePath, msg.Messages(), messages, enums); err != nil {
			return err
		}
	}
	return nil
}

func walkEnums(ctx *ir.Context, filePath string, descs protoreflect.EnumDescriptors, enums *[]*ir.EnumProps) error {
	for i := 0; i < descs.Len(); i++ {
		enum := descs.Get(i)
		fqName := protoQualifiedName(ctx.Package, ctx.Namespace, string(enum.Name()))
		meta := &ir.TypeMetadata{
			ProtoName:  fqName,
			ModuleName: moduleQualifiedName(ctx.ModulePrefix, ctx.Package, ctx.Namespace, string(enum.Name())),
		}
		meta.TypeName = meta.ModuleName
		ctx.PutType(filePath, meta)

		values := make([]ir.EnumValue, enum.Values().Len())
		for i := 0; i < enum.Values().Len(); i++ {
			v := enum.Values().Get(i)
			values[i] = ir.EnumValue{Symbol: string(v.Name()), Number: int32(v.Number())}
		}
		*enums = append(*enums, ir.NewEnumProps(fqName, values))
	}
	return nil
}

// wrapperTypeName names the wrapped type a detected wrapper message
// collapses to: the scalar's wire-kind tag name, or the wrapped
// message/enum's own composed module name.
func wrapperTypeName(ctx *ir.Context, field protoreflect.FieldDescriptor) (string, bool) {
	var target protoreflect.Descriptor
	switch field.Kind() {
	case protoreflect.MessageKind:
		target = field.Message()
	case protoreflect.EnumKind:
		target = field.Enum()
	default:
		k, err := kindFromField(field)
		if err != nil {
			return "", true
		}
		return k.String(), true
	}
	file := target.ParentFile()
	pkg := string(file.Package())
	name := string(target.FullName())
	if pkg != "" {
		name = strings.TrimPrefix(name, pkg+".")
	}
	return moduleQualifiedName(modulePrefixFromOptions(file), pkg, nil, name), false
}

func buildMessageProps(msg protoreflect.MessageDescriptor, meta *ir.TypeMetadata) (*ir.MessageProps, error) {
	props := &ir.MessageProps{
		Name:            ir.GoName(string(msg.Name())),
		FullName:        meta.ProtoName,
		Wrapper:         meta.Wrapper,
		WrapperIsScalar: meta.WrapperTargetScalar,
	}
	switch msg.Syntax() {
	case protoreflect.Proto2:
		props.Syntax = ir.Proto2
	default:
		props.Syntax = ir.Proto3
	}

	oneofIndexByDesc := map[protoreflect.Name]int{}
	fields := msg.Fields()
	for i := 0; i < fields.Len(); i++ {
		field := fields.Get(i)
		f, err := buildFieldProps(field)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", msg.FullName(), err)
		}

		if oneof := field.ContainingOneof(); oneof != nil && !oneof.IsSynthetic() {
			idx, ok := oneofIndexByDesc[oneof.Name()]
			if !ok {
				idx = len(props.Oneofs)
				props.Oneofs = append(props.Oneofs, ir.Oneof{Name: string(oneof.Name())})
				oneofIndexByDesc[oneof.Name()] = idx
			}
			f.OneofIndex = idx
			f.IsOneofMember = true
			props.Oneofs[idx].Members = append(props.Oneofs[idx].Members, len(props.Fields))
		}

		props.Fields = append(props.Fields, f)
	}
	props.Index()
	return props, nil
}

func buildFieldProps(field protoreflect.FieldDescriptor) (*ir.FieldProps, error) {
	if field.IsMap() {
		keyKind, err := kindFromField(field.MapKey())
		if err != nil {
			return nil, err
		}
		valKind, err := kindFromField(field.MapValue())
		if err != nil {
			return nil, err
		}
		f := ir.NewFieldProps(int32(field.Number()), valKind)
		f.Name, f.ProtoName = ir.GoFieldName(string(field.Name())), string(field.Name())
		f.Map, f.Embedded = true, true
		f.MapKey, f.MapValue = keyKind, valKind
		if valKind == wire.KindMessage {
			f.MessageType = string(field.MapValue().Message().FullName())
		}
		return f, nil
	}

	kind, err := kindFromField(field)
	if err != nil {
		return nil, err
	}
	f := ir.NewFieldProps(int32(field.Number()), kind)
	f.Name, f.ProtoName = ir.GoFieldName(string(field.Name())), string(field.Name())
	f.Repeated = field.IsList()
	f.Packed = field.IsPacked()
	f.Required = field.Cardinality() == protoreflect.Required
	f.Optional = field.HasPresence() && !f.Repeated && kind != wire.KindMessage

	switch kind {
	case wire.KindMessage:
		f.MessageType = string(field.Message().FullName())
		f.Embedded = true
	case wire.KindEnum:
		f.EnumType = string(field.Enum().FullName())
	}
	return f, nil
}

func kindFromField(field protoreflect.FieldDescriptor) (wire.Kind, error) {
	switch field.Kind() {
	case protoreflect.BoolKind:
		return wire.KindBool, nil
	case protoreflect.Int32Kind:
		return wire.KindInt32, nil
	case protoreflect.Int64Kind:
		return wire.KindInt64, nil
	case protoreflect.Uint32Kind:
		return wire.KindUint32, nil
	case protoreflect.Uint64Kind:
		return wire.KindUint64, nil
	case protoreflect.Sint32Kind:
		return wire.KindSint32, nil
	case protoreflect.Sint64Kind:
		return wire.KindSint64, nil
	case protoreflect.Fixed32Kind:
		return wire.KindFixed32, nil
	case protoreflect.Fixed64Kind:
		return wire.KindFixed64, nil
	case protoreflect.Sfixed32Kind:
		return wire.KindSfixed32, nil
	case protoreflect.Sfixed64Kind:
		return wire.KindSfixed64, nil
	case protoreflect.FloatKind:
		return wire.KindFloat, nil
	case protoreflect.DoubleKind:
		return wire.KindDouble, nil
	case protoreflect.StringKind:
		return wire.KindString, nil
	case protoreflect.BytesKind:
		return wire.KindBytes, nil
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return wire.KindMessage, nil
	case protoreflect.EnumKind:
		return wire.KindEnum, nil
	default:
		return wire.KindInvalid, fmt.Errorf("unsupported field kind: %s", field.Kind())
	}
}
