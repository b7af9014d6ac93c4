// Package genopts parses the comma-separated `protoc` plugin
// parameter string into an immutable configuration record.
package genopts

import "strings"

// Options is the configuration record produced by Parse. Unknown keys
// are ignored for forward compatibility rather than rejected.
type Options struct {
	Plugins            map[string]bool
	GenDescriptors     bool
	UsingValueWrappers bool
}

// Parse splits a protoc parameter string on commas, then each
// key[=value] pair on the first `=`. Recognized tokens:
//
//	plugins=A+B+…          -> Plugins = {A, B, …}
//	gen_descriptors=true   -> GenDescriptors = true
//	using_value_wrappers=true -> UsingValueWrappers = true
//
// Any other key is silently ignored.
func Parse(parameter string) Options {
	opts := Options{Plugins: map[string]bool{}}
	if parameter == "" {
		return opts
	}
	for _, tok := range strings.Split(parameter, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		key, value, _ := strings.Cut(tok, "=")
		switch key {
		case "plugins":
			for _, name := range strings.Split(value, "+") {
				if name = strings.TrimSpace(name); name != "" {
					opts.Plugins[name] = true
				}
			}
		case "gen_descriptors":
			opts.GenDescriptors = isTrue(value)
		case "using_value_wrappers":
			opts.UsingValueWrappers = isTrue(value)
		}
	}
	return opts
}

func isTrue(v string) bool {
	return strings.EqualFold(v, "true")
}

// HasPlugin reports whether the named plugin (e.g. "grpc") was
// requested via `plugins=`.
func (o Options) HasPlugin(name string) bool {
	return o.Plugins[name]
}
