package entry

import (
	"sort"
	"strings"
)

// Type is a bitmask of filesystem kinds. A symlink resolving to a
// directory carries Symlink|Dir.
type Type uint8

const (
	Unknown Type = 0
	File    Type = 1
	Dir     Type = 2
	Symlink Type = 4
)

// IsDir reports whether the directory bit is set.
func (t Type) IsDir() bool { return t&Dir != 0 }

// IsFile reports whether the file bit is set.
func (t Type) IsFile() bool { return t&File != 0 }

// IsSymlink reports whether the symlink bit is set.
func (t Type) IsSymlink() bool { return t&Symlink != 0 }

// Kind separates real directory entries from the synthetic rows the
// session mixes into the listing.
type Kind int

const (
	// KindFS is a real filesystem entry.
	KindFS Kind = iota
	// KindAction is a synthetic row representing an available operation.
	KindAction
	// KindNewFile is the synthetic "create as new file" suggestion,
	// carrying only the user-typed candidate name.
	KindNewFile
	// KindParent is the ".." row above the listing.
	KindParent
)

// Entry is one selectable row in the listing. Equality for selection and
// history purposes is by Name.
type Entry struct {
	Name string
	Type Type
	Kind Kind
	// AlwaysShow lets an entry survive ignore and dotfile filtering,
	// e.g. when it is the current rename target or matched a search.
	AlwaysShow bool
	// Ignored marks an entry retained by the "label ignored" policy.
	Ignored bool

	label string
}

// New wraps a raw directory entry.
func New(name string, t Type) Entry {
	return Entry{Name: name, Type: t, Kind: KindFS}
}

// NewAction builds a synthetic action row. Action entries carry no
// filesystem type.
func NewAction(name, label string) Entry {
	return Entry{Name: name, Kind: KindAction, AlwaysShow: true, label: label}
}

// NewFileCandidate builds the synthetic "create as new file" row for the
// typed name.
func NewFileCandidate(name string) Entry {
	return Entry{Name: name, Kind: KindNewFile, AlwaysShow: true, label: "create \"" + name + "\" as new file"}
}

// NewParent builds the ".." row.
func NewParent() Entry {
	return Entry{Name: "..", Type: Dir, Kind: KindParent, AlwaysShow: true}
}

// Label returns the display label, falling back to the name.
func (e Entry) Label() string {
	if e.label != "" {
		return e.label
	}
	return e.Name
}

// Selectable reports whether the cursor may rest on this entry.
func (e Entry) Selectable() bool {
	return e.Name != "" || e.Kind != KindFS
}

// Sort orders a listing in place: the parent row first, then directories,
// then everything else, alphabetically within each group.
func Sort(items []Entry) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if (a.Kind == KindParent) != (b.Kind == KindParent) {
			return a.Kind == KindParent
		}
		if a.Type.IsDir() != b.Type.IsDir() {
			return a.Type.IsDir()
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

// IndexOf returns the position of the entry with the given name, or -1.
func IndexOf(items []Entry, name string) int {
	for i, it := range items {
		if it.Name == name {
			return i
		}
	}
	return -1
}

// Row pairs an entry with its computed highlight state for display. Rows
// are rebuilt on every render; entries are never mutated to show
// selection.
type Row struct {
	Entry       Entry
	Highlighted bool
}

// Rows projects a listing into display rows, highlighting the inclusive
// index range [from, to]. A negative range highlights nothing.
func Rows(items []Entry, from, to int) []Row {
	rows := make([]Row, len(items))
	for i, it := range items {
		rows[i] = Row{Entry: it, Highlighted: from >= 0 && from <= i && i <= to}
	}
	return rows
}
