package entry

import "testing"

func TestSortDirsBeforeFiles(t *testing.T) {
	items := []Entry{
		New("b.txt", File),
		New("a.txt", File),
		New("sub", Dir),
	}

	Sort(items)

	want := []string{"sub", "a.txt", "b.txt"}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("items[%d] = %q, want %q", i, items[i].Name, name)
		}
	}
}

func TestSortAlphabeticalWithinType(t *testing.T) {
	items := []Entry{
		New("zebra", Dir),
		New("Apple", Dir),
		New("z.txt", File),
		New("A.txt", File),
	}

	Sort(items)

	want := []string{"Apple", "zebra", "A.txt", "z.txt"}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("items[%d] = %q, want %q", i, items[i].Name, name)
		}
	}
}

func TestSortPinsParentFirst(t *testing.T) {
	items := []Entry{
		New("aaa", Dir),
		NewParent(),
		New("a.txt", File),
	}

	Sort(items)

	if items[0].Kind != KindParent {
		t.Errorf("items[0] = %q, want parent row", items[0].Name)
	}
}

func TestSortSymlinkToDirSortsWithDirs(t *testing.T) {
	items := []Entry{
		New("plain.txt", File),
		New("link", Symlink|Dir),
		New("adir", Dir),
	}

	Sort(items)

	if !items[0].Type.IsDir() || !items[1].Type.IsDir() {
		t.Errorf("directories not grouped first: %q, %q", items[0].Name, items[1].Name)
	}
	if items[2].Name != "plain.txt" {
		t.Errorf("items[2] = %q, want plain.txt", items[2].Name)
	}
}

func TestTypeBitmask(t *testing.T) {
	link := Symlink | Dir
	if !link.IsSymlink() || !link.IsDir() {
		t.Error("Symlink|Dir should report both bits")
	}
	if Unknown.IsDir() || Unknown.IsFile() || Unknown.IsSymlink() {
		t.Error("Unknown should report no bits")
	}
}

func TestNewFileCandidateLabel(t *testing.T) {
	e := NewFileCandidate("notes.md")
	if e.Kind != KindNewFile {
		t.Errorf("Kind = %d, want KindNewFile", e.Kind)
	}
	if e.Label() != "create \"notes.md\" as new file" {
		t.Errorf("Label() = %q", e.Label())
	}
	if e.Name != "notes.md" {
		t.Errorf("Name = %q, want the typed candidate", e.Name)
	}
}

func TestLabelFallsBackToName(t *testing.T) {
	e := New("data.bin", File)
	if e.Label() != "data.bin" {
		t.Errorf("Label() = %q, want name", e.Label())
	}
}

func TestIndexOf(t *testing.T) {
	items := []Entry{New("a", File), New("b", Dir)}

	if got := IndexOf(items, "b"); got != 1 {
		t.Errorf("IndexOf(b) = %d, want 1", got)
	}
	if got := IndexOf(items, "missing"); got != -1 {
		t.Errorf("IndexOf(missing) = %d, want -1", got)
	}
}

func TestRowsHighlightRange(t *testing.T) {
	items := []Entry{New("a", File), New("b", File), New("c", File), New("d", File)}

	rows := Rows(items, 1, 2)

	wantHL := []bool{false, true, true, false}
	for i, hl := range wantHL {
		if rows[i].Highlighted != hl {
			t.Errorf("rows[%d].Highlighted = %v, want %v", i, rows[i].Highlighted, hl)
		}
	}
}

func TestRowsNegativeRangeHighlightsNothing(t *testing.T) {
	items := []Entry{New("a", File), New("b", File)}

	for _, row := range Rows(items, -1, -1) {
		if row.Highlighted {
			t.Errorf("row %q highlighted with empty range", row.Entry.Name)
		}
	}
}

func TestRowsDoNotMutateEntries(t *testing.T) {
	items := []Entry{New("a", File)}
	rows := Rows(items, 0, 0)

	rows[0].Entry.Name = "changed"

	if items[0].Name != "a" {
		t.Error("projecting rows mutated the source entry")
	}
}
