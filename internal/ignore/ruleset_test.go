package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LFroesch/pathfinder/internal/entry"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestResolveFindsAncestorFile(t *testing.T) {
	// Ignore file only at the grandparent; Resolve from the leaf must find
	// it instead of returning an empty set.
	root := t.TempDir()
	leaf := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(leaf, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	writeFile(t, filepath.Join(root, ".gitignore"), "*.log\n")

	rs := Resolve(leaf, []string{".gitignore"})

	if rs.IsEmpty() {
		t.Fatal("Resolve() returned an empty set, want the ancestor's rules")
	}
	if rs.Dir != root {
		t.Errorf("rs.Dir = %q, want %q", rs.Dir, root)
	}
	if !rs.Test(leaf, "debug.log", false) {
		t.Error("ancestor rules should apply at the leaf")
	}
}

func TestResolveNamePriority(t *testing.T) {
	// Both candidates exist at the same level; the earlier name in the
	// priority list wins exclusively.
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gitignore"), "*.log\n")
	writeFile(t, filepath.Join(dir, ".ignore"), "*.txt\n")

	rs := Resolve(dir, []string{".gitignore", ".ignore"})

	if rs.Source != ".gitignore" {
		t.Fatalf("rs.Source = %q, want .gitignore", rs.Source)
	}
	if !rs.Test(dir, "a.log", false) {
		t.Error("winning file's rules should apply")
	}
	if rs.Test(dir, "a.txt", false) {
		t.Error("losing file's rules must not merge in")
	}
}

func TestResolveNearestLevelWins(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	writeFile(t, filepath.Join(root, ".gitignore"), "*.root\n")
	writeFile(t, filepath.Join(sub, ".gitignore"), "*.sub\n")

	rs := Resolve(sub, []string{".gitignore"})

	if rs.Dir != sub {
		t.Fatalf("rs.Dir = %q, want nearest %q", rs.Dir, sub)
	}
	if rs.Test(sub, "x.root", false) {
		t.Error("rules must not merge across directory levels")
	}
	if !rs.Test(sub, "x.sub", false) {
		t.Error("nearest level's rules should apply")
	}
}

func TestResolveNoIgnoreFile(t *testing.T) {
	rs := Resolve(t.TempDir(), []string{".gitignore", ".ignore"})
	if !rs.IsEmpty() {
		t.Error("Resolve() with no ignore file anywhere should be empty")
	}
}

func TestTestUsesPathRelativeToRuleSetDir(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	writeFile(t, filepath.Join(root, ".gitignore"), "sub/secret.txt\n")

	rs := Resolve(sub, []string{".gitignore"})

	if !rs.Test(sub, "secret.txt", false) {
		t.Error("anchored rule should match relative to the rule set's directory")
	}
	if rs.Test(root, "secret.txt", false) {
		t.Error("same name directly under the rule set's directory should not match")
	}
}

func filterNames(items []entry.Entry) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}

func TestFilterHideIgnored(t *testing.T) {
	rs := FromText("/base", "*.log\n")
	items := []entry.Entry{
		entry.New("app.go", entry.File),
		entry.New("debug.log", entry.File),
	}

	got := rs.Filter("/base", items, Options{HideIgnored: true})

	if len(got) != 1 || got[0].Name != "app.go" {
		t.Errorf("Filter() = %v, want [app.go]", filterNames(got))
	}
}

func TestFilterLabelIgnored(t *testing.T) {
	rs := FromText("/base", "*.log\n")
	items := []entry.Entry{
		entry.New("app.go", entry.File),
		entry.New("debug.log", entry.File),
	}

	got := rs.Filter("/base", items, Options{LabelIgnored: true})

	if len(got) != 2 {
		t.Fatalf("labeling should retain entries, got %v", filterNames(got))
	}
	if got[0].Ignored {
		t.Error("app.go should not be marked ignored")
	}
	if !got[1].Ignored {
		t.Error("debug.log should be marked ignored")
	}
	// The input entries stay untouched.
	if items[1].Ignored {
		t.Error("Filter() mutated its input slice")
	}
}

func TestFilterAlwaysShowSurvivesHiding(t *testing.T) {
	rs := FromText("/base", "*.log\n")
	kept := entry.New("debug.log", entry.File)
	kept.AlwaysShow = true
	items := []entry.Entry{kept}

	if got := rs.Filter("/base", items, Options{HideIgnored: true}); len(got) != 1 {
		t.Error("AlwaysShow entry dropped under the hide policy")
	}
	// Removal is stronger: real entries go even when flagged
	if got := rs.Filter("/base", items, Options{RemoveIgnored: true}); len(got) != 0 {
		t.Error("remove policy should drop ignored filesystem entries unconditionally")
	}
}

func TestFilterRemoveDropsSyntheticWithoutAlwaysShow(t *testing.T) {
	rs := FromText("/base", "*.log\n")
	candidate := entry.NewFileCandidate("crash.log")
	candidate.AlwaysShow = false
	items := []entry.Entry{candidate}

	if got := rs.Filter("/base", items, Options{HideIgnored: true}); len(got) != 1 {
		t.Error("hide policy should spare synthetic entries")
	}
	if got := rs.Filter("/base", items, Options{RemoveIgnored: true}); len(got) != 0 {
		t.Error("remove policy should drop unflagged synthetic entries")
	}
}

func TestFilterHideDotfiles(t *testing.T) {
	rs := Empty()
	pinned := entry.New(".env", entry.File)
	pinned.AlwaysShow = true
	items := []entry.Entry{
		entry.NewParent(),
		entry.New(".hidden", entry.File),
		entry.New("visible.txt", entry.File),
		pinned,
	}

	got := rs.Filter("/base", items, Options{HideDotfiles: true})

	want := []string{"..", "visible.txt", ".env"}
	if len(got) != len(want) {
		t.Fatalf("Filter() = %v, want %v", filterNames(got), want)
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestFilterEmptyRuleSetKeepsEverything(t *testing.T) {
	items := []entry.Entry{
		entry.New("a.log", entry.File),
		entry.New("b.txt", entry.File),
	}

	got := Empty().Filter("/anywhere", items, Options{HideIgnored: true, RemoveIgnored: true})

	if len(got) != 2 {
		t.Errorf("empty rule set dropped entries: %v", filterNames(got))
	}
}
