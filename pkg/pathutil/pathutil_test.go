package pathutil

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"dot", ".", ""},
		{"leading dot slash", "./a/b.txt", "a/b.txt"},
		{"leading slash", "/a/b", "a/b"},
		{"multiple leading slashes", "///a", "a"},
		{"backslashes", `a\b\c.txt`, "a/b/c.txt"},
		{"leading backslash", `\a\b`, "a/b"},
		{"already normalized", "a/b/c", "a/b/c"},
		{"dotdot preserved", "a/../b", "a/../b"},
		{"doubled separator preserved", "a//b", "a//b"},
		{"trailing slash preserved", "a/b/", "a/b/"},
		{"inner dot preserved", "a/./b", "a/./b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSegments(t *testing.T) {
	if got := Segments("/a/b/c.txt"); !reflect.DeepEqual(got, []string{"a", "b", "c.txt"}) {
		t.Errorf("Segments(/a/b/c.txt) = %v", got)
	}
	if got := Segments("."); got != nil {
		t.Errorf("Segments(.) = %v, want nil", got)
	}
}

func TestParent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a/b/c", "a/b"},
		{"a/b", "a"},
		{"a", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Parent(tt.in); got != tt.want {
			t.Errorf("Parent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRelativeTo(t *testing.T) {
	if got := RelativeTo("a/b/c.txt", "a/b"); got != "c.txt" {
		t.Errorf("RelativeTo = %q, want c.txt", got)
	}
	if got := RelativeTo("a/b/c.txt", ""); got != "a/b/c.txt" {
		t.Errorf("RelativeTo root = %q", got)
	}
}

func TestJoin(t *testing.T) {
	if got := Join("a", "", "b/c"); got != "a/b/c" {
		t.Errorf("Join = %q, want a/b/c", got)
	}
}
