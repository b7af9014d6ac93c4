package typeindex

import (
	"strings"

	"github.com/protoc-gen-wire/protoc-gen-wire/internal/ir"
)

// protoQualifiedName composes the proto-qualified key used in the
// global type map: package, namespace, name, joined with dots, no
// module-prefix substitution, no normalization.
func protoQualifiedName(pkg string, namespace []string, name string) string {
	return ir.ComposeQualifiedName(pkg, strings.Join(namespace, "."), name)
}

// moduleQualifiedName composes the target-language identifier for a
// type: module_prefix (falling back to package), namespace, name,
// joined with dots, then normalized into idiomatic Go identifier
// segments joined with underscores.
func moduleQualifiedName(modulePrefix, pkg string, namespace []string, name string) string {
	first := modulePrefix
	if first == "" {
		first = pkg
	}
	qualified := ir.ComposeQualifiedName(first, strings.Join(namespace, "."), name)
	return ir.NormalizeQualifiedPath(qualified)
}
