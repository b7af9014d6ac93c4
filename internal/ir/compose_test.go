package ir

import "testing"

func TestComposeQualifiedName(t *testing.T) {
	tests := []struct {
		components []string
		want       string
	}{
		{[]string{"pkg", "", "Outer.Inner"}, "pkg.Outer.Inner"},
		{[]string{"", "ns", "Name"}, "ns.Name"},
		{[]string{"prefix", "a.b", "Name"}, "prefix.a.b.Name"},
	}
	for _, tc := range tests {
		got := ComposeQualifiedName(tc.components...)
		if got != tc.want {
			t.Fatalf("ComposeQualifiedName(%v) = %q, want %q", tc.components, got, tc.want)
		}
	}
}

func TestNormalizeQualifiedPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pkg.outer.inner_msg", "Pkg_Outer_InnerMsg"},
		{"", ""},
	}
	for _, tc := range tests {
		got := NormalizeQualifiedPath(tc.in)
		if got != tc.want {
			t.Fatalf("NormalizeQualifiedPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
