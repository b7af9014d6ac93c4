package codec

import (
	"fmt"

	"github.com/protoc-gen-wire/protoc-gen-wire/internal/ir"
	"github.com/protoc-gen-wire/protoc-gen-wire/internal/wire"
)

// EncodeError reports a oneof structural violation: a branch whose
// tuple shape or group membership does not match the message's
// declared oneof groups.
type EncodeError struct {
	Struct string
	Group  string
	Branch string
	Reason string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("codec: %s: oneof %q branch %q: %s", e.Struct, e.Group, e.Branch, e.Reason)
}

// Registry resolves the MessageProps/EnumProps a message's fields
// reference by name, so the encoder can recurse into embedded
// messages and resolve enum symbol tables without a global variable.
type Registry struct {
	Messages map[string]*ir.MessageProps
	Enums    map[string]*ir.EnumProps
}

func NewRegistry() *Registry {
	return &Registry{Messages: map[string]*ir.MessageProps{}, Enums: map[string]*ir.EnumProps{}}
}

func (r *Registry) AddMessage(m *ir.MessageProps) { r.Messages[m.FullName] = m }
func (r *Registry) AddEnum(e *ir.EnumProps)       { r.Enums[e.FullName] = e }

// Encode walks v's fields against its compiled MessageProps and
// produces the canonical, declaration-order wire bytes.
func Encode(v Value, props *ir.MessageProps, reg *Registry) ([]byte, error) {
	active, err := resolveOneofs(v, props)
	if err != nil {
		return nil, err
	}

	var b []byte
	for _, f := range props.Fields {
		var (
			value   any
			present bool
		)
		if f.IsOneofMember {
			branch, ok := active[f.OneofIndex]
			if !ok || branch.Field != f.Name {
				continue
			}
			value, present = branch.Payload, true
		} else {
			value, present = v.Field(f.Name)
		}

		if !present {
			continue
		}
		if skipField(f, props, value, reg) {
			continue
		}

		b, err = encodeField(b, f, value, props, reg)
		if err != nil {
			return nil, fmt.Errorf("codec: %s.%s: %w", props.Name, f.ProtoName, err)
		}
	}

	for _, ext := range v.Extensions() {
		if skipField(ext.Field, props, ext.Value, reg) {
			continue
		}
		var encErr error
		b, encErr = encodeField(b, ext.Field, ext.Value, props, reg)
		if encErr != nil {
			return nil, fmt.Errorf("codec: %s extension %s: %w", props.Name, ext.Field.ProtoName, encErr)
		}
	}

	return b, nil
}

// resolveOneofs reads the active branch of each declared oneof group
// from v, verifies the branch's field really belongs to that group,
// and collects the results keyed by oneof group index.
func resolveOneofs(v Value, props *ir.MessageProps) (map[int]OneofValue, error) {
	active := map[int]OneofValue{}
	for i, group := range props.Oneofs {
		branch, ok := v.Oneof(group.Name)
		if !ok {
			continue
		}
		f, ok := props.FieldByName(branch.Field)
		if !ok {
			return nil, &EncodeError{Struct: props.Name, Group: group.Name, Branch: branch.Field, Reason: "not a declared field"}
		}
		if f.OneofIndex != i {
			return nil, &EncodeError{Struct: props.Name, Group: group.Name, Branch: branch.Field, Reason: "does not belong to this oneof group"}
		}
		active[i] = branch
	}
	return active, nil
}

// skipField decides whether a field's value is empty enough to leave
// off the wire, honoring proto2/proto3 default and presence rules.
func skipField(f *ir.FieldProps, props *ir.MessageProps, value any, reg *Registry) bool {
	if f.Repeated && !f.Map {
		if isEmptySlice(value) {
			return true
		}
		// A repeated field with elements is never suppressed past this
		// point; repeated fields have no scalar default beyond "no
		// elements".
		return false
	}
	if f.Map {
		return len(asMapEntries(value)) == 0
	}

	if f.IsOneofMember || f.Required {
		return false
	}

	switch props.Syntax {
	case ir.Proto2:
		if f.Optional && isAbsent(value) {
			return true
		}
		if f.Kind == wire.KindEnum {
			if n, ok := enumNumber(f, value, reg); ok {
				return n == 0
			}
		}
		return false
	case ir.Proto3:
		if isAbsent(value) {
			return true
		}
		if f.Optional {
			return false
		}
		if f.Kind == wire.KindEnum {
			if n, ok := enumNumber(f, value, reg); ok {
				return n == 0
			}
		}
		return isScalarDefault(f.Kind, value)
	}
	return false
}

func isAbsent(value any) bool {
	return value == nil
}

func isEmptySlice(value any) bool {
	switch s := value.(type) {
	case nil:
		return true
	case []any:
		return len(s) == 0
	case []int32:
		return len(s) == 0
	case []int64:
		return len(s) == 0
	case []uint32:
		return len(s) == 0
	case []uint64:
		return len(s) == 0
	case []float32:
		return len(s) == 0
	case []float64:
		return len(s) == 0
	case []bool:
		return len(s) == 0
	case []string:
		return len(s) == 0
	case [][]byte:
		return len(s) == 0
	case []Value:
		return len(s) == 0
	default:
		return false
	}
}

func asMapEntries(value any) []MapEntry {
	entries, _ := value.([]MapEntry)
	return entries
}

func isScalarDefault(kind wire.Kind, value any) bool {
	switch kind {
	case wire.KindBool:
		b, _ := value.(bool)
		return !b
	case wire.KindString:
		s, _ := value.(string)
		return s == ""
	case wire.KindBytes:
		bs, _ := value.([]byte)
		return len(bs) == 0
	case wire.KindFloat, wire.KindDouble:
		f, ok := toFloat(value)
		return ok && f == 0
	case wire.KindMessage:
		return value == nil
	default:
		n, ok := toInt(value)
		return ok && n == 0
	}
}

func toInt(value any) (int64, bool) {
	switch n := value.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

func toFloat(value any) (float64, bool) {
	switch f := value.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	default:
		return 0, false
	}
}

// enumNumber resolves an enum field's value (already an int32, or a
// symbol string to be looked up via the registry's EnumProps table)
// to its wire integer.
func enumNumber(f *ir.FieldProps, value any, reg *Registry) (int32, bool) {
	switch n := value.(type) {
	case int32:
		return n, true
	case int:
		return int32(n), true
	case string:
		if reg == nil {
			return 0, false
		}
		enum, ok := reg.Enums[f.EnumType]
		if !ok {
			return 0, false
		}
		number, ok := enum.Number(n)
		return number, ok
	default:
		return 0, false
	}
}
