package location

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Location is an absolute filesystem path held as an ordered list of
// segments. The first segment is always the root ("/" on Unix, the volume
// root on Windows), so a Location is never empty.
type Location struct {
	segments []string
}

// New builds a Location from a path string. Relative paths are resolved
// against the working directory, "~" against the user's home.
func New(path string) (*Location, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}
	expanded, err := ExpandUser(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, err
	}
	return &Location{segments: split(filepath.Clean(abs))}, nil
}

// Home returns the user's home directory as a Location.
func Home() (*Location, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return New(home)
}

// ExpandUser replaces a leading "~" with the user's home directory.
func ExpandUser(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

func split(abs string) []string {
	root := filepath.VolumeName(abs) + string(filepath.Separator)
	segs := []string{root}
	rest := strings.TrimPrefix(abs, root)
	if rest != "" {
		segs = append(segs, strings.Split(rest, string(filepath.Separator))...)
	}
	return segs
}

// trimName strips path separators so a pushed segment is always one level.
func trimName(name string) string {
	return strings.Trim(strings.Trim(name, "/"), string(filepath.Separator))
}

// Clone returns an independent copy. Locations handed to code that may
// mutate them independently must be cloned, never aliased.
func (l *Location) Clone() *Location {
	segs := make([]string, len(l.segments))
	copy(segs, l.segments)
	return &Location{segments: segs}
}

// Push descends one level in place.
func (l *Location) Push(name string) {
	name = trimName(name)
	if name == "" {
		return
	}
	segs := make([]string, len(l.segments), len(l.segments)+1)
	copy(segs, l.segments)
	l.segments = append(segs, name)
}

// Pop ascends one level in place and returns the popped leaf name.
// At the root boundary it returns ("", false) and changes nothing.
func (l *Location) Pop() (string, bool) {
	if l.AtTop() {
		return "", false
	}
	leaf := l.segments[len(l.segments)-1]
	l.segments = l.segments[:len(l.segments)-1]
	return leaf, true
}

// Append returns a new Location one level below, leaving the receiver
// untouched. Trailing separators on name are ignored.
func (l *Location) Append(name string) *Location {
	next := l.Clone()
	next.Push(name)
	return next
}

// AtTop reports whether Pop would fail.
func (l *Location) AtTop() bool {
	return len(l.segments) <= 1
}

// Leaf returns the last path component, or false at the root.
func (l *Location) Leaf() (string, bool) {
	if l.AtTop() {
		return "", false
	}
	return l.segments[len(l.segments)-1], true
}

// Path renders the OS-correct absolute path.
func (l *Location) Path() string {
	if len(l.segments) == 1 {
		return l.segments[0]
	}
	return filepath.Join(l.segments...)
}

// ID is the canonical string form used as a history key. Two Locations
// reaching the same place through different spellings may have different
// IDs; ID is a lookup key, not an equality oracle.
func (l *Location) ID() string {
	return l.Path()
}

// Equal reports segment-wise equality.
func (l *Location) Equal(other *Location) bool {
	if other == nil || len(l.segments) != len(other.segments) {
		return false
	}
	for i, s := range l.segments {
		if other.segments[i] != s {
			return false
		}
	}
	return true
}

// RelativeTo returns a portable (forward-slash) path from base to l when l
// is at or under base, else false.
func (l *Location) RelativeTo(base *Location) (string, bool) {
	if base == nil || len(base.segments) > len(l.segments) {
		return "", false
	}
	for i, s := range base.segments {
		if l.segments[i] != s {
			return "", false
		}
	}
	return strings.Join(l.segments[len(base.segments):], "/"), true
}

// Display renders the path relative to the workspace root when the
// Location is under it, absolute otherwise. A nil workspace always
// renders absolute.
func (l *Location) Display(workspace *Location) string {
	if workspace != nil {
		if rel, ok := l.RelativeTo(workspace); ok {
			if rel == "" {
				return "."
			}
			return rel
		}
	}
	return l.Path()
}
