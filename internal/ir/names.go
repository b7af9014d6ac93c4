package ir

import (
	"strings"
	"unicode"
)

// GoName normalizes a single proto identifier segment (snake_case,
// lowerCamel, or a bare word) into exported upper-camel-case Go form,
// with the well-known "Id"->"ID" initialism exception applied to a
// trailing id segment.
func GoName(protoName string) string {
	parts := splitParts(protoName)
	if len(parts) == 0 {
		return ""
	}
	for i := range parts {
		if i == len(parts)-1 && parts[i] == "id" {
			parts[i] = "ID"
			continue
		}
		parts[i] = title(parts[i])
	}
	return strings.Join(parts, "")
}

// GoFieldName normalizes a proto field name into the identifier the
// message encoder uses to look up that field's value by name.
func GoFieldName(protoName string) string {
	return GoName(protoName)
}

// ComposeQualifiedName joins non-empty components with ".", dropping
// empty entries before joining. Callers pass module prefix (or
// package), namespace, and name, in that order.
func ComposeQualifiedName(components ...string) string {
	var kept []string
	for _, c := range components {
		if c != "" {
			kept = append(kept, c)
		}
	}
	return strings.Join(kept, ".")
}

// NormalizeQualifiedPath applies GoName to every dot-separated segment
// of a qualified proto path, producing the target-language identifier
// path.
func NormalizeQualifiedPath(qualified string) string {
	if qualified == "" {
		return ""
	}
	segments := strings.Split(qualified, ".")
	for i, s := range segments {
		segments[i] = GoName(s)
	}
	return strings.Join(segments, "_")
}

func splitParts(name string) []string {
	if name == "" {
		return nil
	}
	if strings.ContainsAny(name, "_-") {
		parts := strings.FieldsFunc(name, func(r rune) bool {
			return r == '_' || r == '-'
		})
		for i := range parts {
			parts[i] = strings.ToLower(parts[i])
		}
		return parts
	}
	return []string{name}
}

func title(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
