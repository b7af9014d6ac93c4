// Package ir holds the compiled, read-only descriptions the codec and
// generator driver operate on: FieldProps/MessageProps (the wire
// layout of a message), EnumProps (a symbol<->number table), and
// TypeMetadata (the per-proto-type record the indexer produces).
package ir

import "github.com/protoc-gen-wire/protoc-gen-wire/internal/wire"

// Syntax distinguishes proto2 from proto3 emptiness/default rules.
type Syntax int8

const (
	Proto2 Syntax = iota
	Proto3
)

// FieldProps is the compiled, per-field description the message
// encoder consults: tag number, wire kind, and the flags that drive
// the field classifier and emptiness policy.
type FieldProps struct {
	Name      string // target-language field identifier
	ProtoName string // original proto field name
	Number    int32
	Kind      wire.Kind

	Repeated bool
	Optional bool // non-repeated, non-message field with explicit presence (proto2 optional/required, proto3 optional, oneof member)
	Required bool // proto2 `required`
	Packed   bool
	Embedded bool // length-delimited AND the payload is itself a message
	Map      bool

	OneofIndex    int // index into MessageProps.Oneofs; -1 if not part of a oneof
	IsOneofMember bool

	// EncodedTag is the precomputed tag<<3|wireType varint, ready to
	// be appended directly ahead of the field's payload.
	EncodedTag []byte

	// MessageType/EnumType name the referenced type for KindMessage/
	// KindEnum fields, as the fully-qualified proto name (with leading
	// dot stripped). Populated by the type indexer.
	MessageType string
	EnumType    string

	// MapKey/MapValue describe a synthetic map entry submessage: key is
	// always a scalar kind, value may be scalar, enum, or message.
	MapKey   wire.Kind
	MapValue wire.Kind
}

// Classification is the field classifier's verdict.
type Classification int8

const (
	ClassNormal Classification = iota
	ClassPacked
	ClassEmbedded
)

// Classify decides normal vs packed vs embedded encoding for a field:
// length-delimited and Embedded wins first, then packed, else normal.
// Map fields are always embedded.
func (f *FieldProps) Classify() Classification {
	if f.Map {
		return ClassEmbedded
	}
	if f.Kind == wire.KindMessage && f.Embedded {
		return ClassEmbedded
	}
	if f.Repeated && f.Packed {
		return ClassPacked
	}
	return ClassNormal
}

// NewFieldProps precomputes EncodedTag from number and kind.
func NewFieldProps(number int32, kind wire.Kind) *FieldProps {
	f := &FieldProps{Number: number, Kind: kind, OneofIndex: -1}
	f.EncodedTag = wire.EncodeTag(nil, number, wire.WireType(kind))
	return f
}

// Oneof names one declared oneof group and its member field indexes
// (positions into MessageProps.Fields).
type Oneof struct {
	Name    string
	Members []int
}

// MessageProps is the compiled description of a message type: its
// syntax, ordered fields, a tag->field index, and its oneof groups.
type MessageProps struct {
	Name     string // target-language type identifier
	FullName string // fully-qualified proto name

	Syntax Syntax
	Fields []*FieldProps
	Oneofs []Oneof

	ByNumber map[int32]*FieldProps

	// Wrapper records whether this message is a value-wrapper; the
	// encoder consults it when embedding a raw payload in place of
	// this message type.
	Wrapper         bool
	WrapperIsScalar bool
}

// Index builds ByNumber. Called once after Fields is fully populated.
func (m *MessageProps) Index() {
	m.ByNumber = make(map[int32]*FieldProps, len(m.Fields))
	for _, f := range m.Fields {
		m.ByNumber[f.Number] = f
	}
}

// FieldByNumber looks up a compiled field by its proto tag number.
func (m *MessageProps) FieldByNumber(n int32) (*FieldProps, bool) {
	f, ok := m.ByNumber[n]
	return f, ok
}

// FieldByName looks up a compiled field by its target-language field
// identifier, used by the message encoder to read oneof members out
// of the active-branch mapping by the name the branch symbol names.
func (m *MessageProps) FieldByName(name string) (*FieldProps, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// EnumProps is a per-enum symbol<->number table: scalar encoding and
// enum-default suppression turn an enum symbol into its wire integer,
// and Symbol gives the inverse lookup.
type EnumProps struct {
	FullName string
	Values   []EnumValue

	bySymbol map[string]int32
	byNumber map[int32]string
}

type EnumValue struct {
	Symbol string
	Number int32
}

// NewEnumProps builds the symbol<->number maps from an ordered value
// list. The first declared value is proto3's implicit zero/default.
func NewEnumProps(fullName string, values []EnumValue) *EnumProps {
	e := &EnumProps{FullName: fullName, Values: values}
	e.bySymbol = make(map[string]int32, len(values))
	e.byNumber = make(map[int32]string, len(values))
	for _, v := range values {
		e.bySymbol[v.Symbol] = v.Number
		if _, exists := e.byNumber[v.Number]; !exists {
			e.byNumber[v.Number] = v.Symbol
		}
	}
	return e
}

// Number resolves a symbol to its wire integer.
func (e *EnumProps) Number(symbol string) (int32, bool) {
	n, ok := e.bySymbol[symbol]
	return n, ok
}

// Symbol resolves a wire integer back to its symbol.
func (e *EnumProps) Symbol(number int32) (string, bool) {
	s, ok := e.byNumber[number]
	return s, ok
}

// IsDefault reports whether number is the enum's zero value, which is
// always the first declared value by protobuf rule.
func (e *EnumProps) IsDefault(number int32) bool {
	if len(e.Values) == 0 {
		return number == 0
	}
	return number == e.Values[0].Number
}

// TypeMetadata is the per-proto-qualified-name record the type
// indexer produces: the target module identifier, its (possibly
// wrapper-aliased) type name, and any attached typespec.
type TypeMetadata struct {
	ProtoName string

	ModuleName string
	TypeName   string

	Wrapper             bool
	WrapperTargetScalar bool

	Typespec string // verbatim MessageOptions extension value
}

// Context is the generator-wide, per-file accumulator the type
// indexer mutates while walking a file's message/enum tree.
type Context struct {
	Package      string
	Namespace    []string
	ModulePrefix string

	GenDescriptors     bool
	UsingValueWrappers bool
	Plugins            map[string]bool

	// GlobalTypeMapping accumulates file.name -> (proto-qualified name
	// -> TypeMetadata) across every file processed by the driver.
	GlobalTypeMapping map[string]map[string]*TypeMetadata
}

// NewContext returns a Context with an initialized GlobalTypeMapping,
// ready for the driver to reuse across every file in a request.
func NewContext() *Context {
	return &Context{
		Plugins:           map[string]bool{},
		GlobalTypeMapping: map[string]map[string]*TypeMetadata{},
	}
}

// ForFile derives a file-local Context: same global accumulator and
// feature flags, fresh package/namespace/module prefix.
func (c *Context) ForFile(pkg, modulePrefix string) *Context {
	return &Context{
		Package:            pkg,
		ModulePrefix:       modulePrefix,
		GenDescriptors:     c.GenDescriptors,
		UsingValueWrappers: c.UsingValueWrappers,
		Plugins:            c.Plugins,
		GlobalTypeMapping:  c.GlobalTypeMapping,
	}
}

// WithNamespace returns a Context descended one level, appending name
// to the current namespace path.
func (c *Context) WithNamespace(name string) *Context {
	next := *c
	next.Namespace = append(append([]string{}, c.Namespace...), name)
	return &next
}

// PutType records a file's contribution to the global type mapping.
func (c *Context) PutType(fileName string, meta *TypeMetadata) {
	m, ok := c.GlobalTypeMapping[fileName]
	if !ok {
		m = map[string]*TypeMetadata{}
		c.GlobalTypeMapping[fileName] = m
	}
	m[meta.ProtoName] = meta
}
