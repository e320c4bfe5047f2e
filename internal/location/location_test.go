package location

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestNewNormalizes(t *testing.T) {
	loc, err := New("/tmp/../tmp/projects/")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	want := filepath.Clean("/tmp/projects")
	if loc.Path() != want {
		t.Errorf("Path() = %q, want %q", loc.Path(), want)
	}
}

func TestNewEmptyPath(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("New(\"\") should fail")
	}
}

func TestExpandUser(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare tilde", "~", "/home/tester"},
		{"tilde with path", "~/projects", filepath.Join("/home/tester", "projects")},
		{"no tilde", "/var/log", "/var/log"},
		{"tilde mid-path untouched", "/a/~b", "/a/~b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandUser(tt.input)
			if err != nil {
				t.Fatalf("ExpandUser(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ExpandUser(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPopPushRoundTrip(t *testing.T) {
	paths := []string{"/a", "/a/b", "/a/b/c", "/home/user/projects/demo"}

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			loc, err := New(p)
			if err != nil {
				t.Fatalf("New(%q) failed: %v", p, err)
			}
			if loc.AtTop() {
				t.Fatalf("Location %q unexpectedly at top", p)
			}
			before := loc.Clone()

			name, ok := loc.Pop()
			if !ok {
				t.Fatalf("Pop() failed below top")
			}
			loc.Push(name)

			if !loc.Equal(before) {
				t.Errorf("pop/push round trip: got %q, want %q", loc.Path(), before.Path())
			}
		})
	}
}

func TestPopAtRoot(t *testing.T) {
	loc, err := New("/")
	if err != nil {
		t.Fatalf("New(\"/\") failed: %v", err)
	}
	if !loc.AtTop() {
		t.Fatal("root Location should be at top")
	}

	// Repeated pops at the boundary stay a no-op.
	for i := 0; i < 3; i++ {
		name, ok := loc.Pop()
		if ok {
			t.Fatalf("Pop() #%d at root returned %q, want failure", i+1, name)
		}
		if loc.Path() != "/" {
			t.Fatalf("Pop() #%d changed root Location to %q", i+1, loc.Path())
		}
	}
}

func TestAppendIsPure(t *testing.T) {
	loc, _ := New("/a/b")
	child := loc.Append("c")

	if loc.Path() != filepath.Clean("/a/b") {
		t.Errorf("Append mutated receiver: %q", loc.Path())
	}
	if child.Path() != filepath.Clean("/a/b/c") {
		t.Errorf("Append result = %q, want /a/b/c", child.Path())
	}
}

func TestAppendIgnoresTrailingSeparators(t *testing.T) {
	loc, _ := New("/a")
	plain := loc.Append("sub")
	trailing := loc.Append("sub/")

	if !plain.Equal(trailing) {
		t.Errorf("Append(\"sub\") = %q, Append(\"sub/\") = %q, want equal", plain.Path(), trailing.Path())
	}
}

func TestCloneIndependence(t *testing.T) {
	loc, _ := New("/a/b")
	clone := loc.Clone()
	clone.Push("c")

	if loc.Path() != filepath.Clean("/a/b") {
		t.Errorf("mutating clone changed original to %q", loc.Path())
	}
}

func TestLeaf(t *testing.T) {
	loc, _ := New("/a/b")
	if leaf, ok := loc.Leaf(); !ok || leaf != "b" {
		t.Errorf("Leaf() = %q, %v, want \"b\", true", leaf, ok)
	}

	root, _ := New("/")
	if leaf, ok := root.Leaf(); ok {
		t.Errorf("Leaf() at root = %q, want absent", leaf)
	}
}

func TestRelativeTo(t *testing.T) {
	base, _ := New("/home/user/work")

	tests := []struct {
		name   string
		target string
		want   string
		wantOK bool
	}{
		{"direct child", "/home/user/work/demo", "demo", true},
		{"nested", "/home/user/work/demo/src", "demo/src", true},
		{"equal", "/home/user/work", "", true},
		{"outside", "/home/user/other", "", false},
		{"above", "/home/user", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, _ := New(tt.target)
			got, ok := target.RelativeTo(base)
			if ok != tt.wantOK {
				t.Fatalf("RelativeTo ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("RelativeTo = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRelativeToIsPortable(t *testing.T) {
	base, _ := New("/w")
	target, _ := New("/w/a/b")
	rel, ok := target.RelativeTo(base)
	if !ok {
		t.Fatal("RelativeTo failed")
	}
	if strings.Contains(rel, "\\") {
		t.Errorf("relative path %q is not portable", rel)
	}
}

func TestDisplay(t *testing.T) {
	workspace, _ := New("/home/user/work")
	inside, _ := New("/home/user/work/demo")
	outside, _ := New("/etc")

	if got := inside.Display(workspace); got != "demo" {
		t.Errorf("Display inside workspace = %q, want \"demo\"", got)
	}
	if got := outside.Display(workspace); got != filepath.Clean("/etc") {
		t.Errorf("Display outside workspace = %q, want absolute", got)
	}
	if got := workspace.Display(workspace); got != "." {
		t.Errorf("Display of workspace itself = %q, want \".\"", got)
	}
	if got := inside.Display(nil); got != filepath.Clean("/home/user/work/demo") {
		t.Errorf("Display with nil workspace = %q, want absolute", got)
	}
}

func TestClassifyInput(t *testing.T) {
	tests := []struct {
		input    string
		wantKind InputKind
		wantPath string
	}{
		{"", InputFilter, ""},
		{"foo", InputFilter, "foo"},
		{"foo/", InputDescend, "foo"},
		{"..", InputParent, ""},
		{"../", InputParent, ""},
		{"~", InputHome, ""},
		{"~/", InputHome, ""},
		{"a/b/", InputDescend, "a/b"},
		{"/", InputDescend, ""},
		{".gitignore", InputFilter, ".gitignore"},
	}

	for _, tt := range tests {
		name := tt.input
		if name == "" {
			name = "(empty)"
		}
		t.Run(name, func(t *testing.T) {
			got := ClassifyInput(tt.input)
			if got.Kind != tt.wantKind {
				t.Errorf("ClassifyInput(%q).Kind = %d, want %d", tt.input, got.Kind, tt.wantKind)
			}
			if got.Path != tt.wantPath {
				t.Errorf("ClassifyInput(%q).Path = %q, want %q", tt.input, got.Path, tt.wantPath)
			}
		})
	}
}
