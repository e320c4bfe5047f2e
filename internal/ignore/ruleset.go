package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/LFroesch/pathfinder/internal/entry"
	"github.com/LFroesch/pathfinder/internal/logger"
)

// RuleSet is the compiled ignore matcher owning one directory subtree. It
// is recomputed on every directory change because the nearest ignore file
// can differ per directory.
type RuleSet struct {
	// Dir is the directory containing the winning ignore file; empty for
	// the empty rule set.
	Dir string
	// Source is the filename that won the priority search.
	Source  string
	matcher *Matcher
}

// Empty returns a rule set that ignores nothing.
func Empty() *RuleSet {
	return &RuleSet{}
}

// FromText compiles ignore-file text owned by dir. Used by Resolve and by
// tests that build rule sets directly.
func FromText(dir, text string) *RuleSet {
	m, err := Compile(text)
	if err != nil {
		logger.Warn("ignore: compile failed for %s: %v", dir, err)
		return Empty()
	}
	return &RuleSet{Dir: dir, matcher: m}
}

// Resolve walks from startDir upward to the filesystem root looking for
// an ignore file. At each level the candidate names are checked in
// priority order; the first directory level containing any one of them
// wins and only that single file's rules are loaded. Rules never merge
// across directories or across multiple candidates at the same level.
func Resolve(startDir string, names []string) *RuleSet {
	dir := filepath.Clean(startDir)
	for {
		for _, name := range names {
			p := filepath.Join(dir, name)
			fi, err := os.Stat(p)
			if err != nil || fi.IsDir() {
				continue
			}
			text, err := os.ReadFile(p)
			if err != nil {
				logger.Warn("ignore: unreadable %s: %v", p, err)
				return Empty()
			}
			rs := FromText(dir, string(text))
			rs.Source = name
			return rs
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Empty()
		}
		dir = parent
	}
}

// IsEmpty reports whether the rule set can never ignore anything.
func (rs *RuleSet) IsEmpty() bool {
	return rs == nil || rs.matcher == nil || len(rs.matcher.rules) == 0
}

// Test reports whether the named child of baseDir is ignored.
func (rs *RuleSet) Test(baseDir, name string, isDir bool) bool {
	if rs.IsEmpty() {
		return false
	}
	rel := name
	if prefix := rs.relBase(baseDir); prefix != "" {
		rel = prefix + "/" + name
	}
	return rs.matcher.Test(rel, isDir)
}

// relBase renders baseDir relative to the rule set's own directory,
// slash-separated; empty when baseDir is the rule set directory itself
// or outside it.
func (rs *RuleSet) relBase(baseDir string) string {
	if rs.Dir == "" {
		return ""
	}
	rel, err := filepath.Rel(rs.Dir, baseDir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}

// Options selects the filtering policy applied to a listing.
type Options struct {
	HideDotfiles  bool
	HideIgnored   bool
	LabelIgnored  bool
	RemoveIgnored bool
}

// Filter classifies every entry against the rule set and applies the
// policy. Dotfile hiding is an independent name-prefix filter composing
// with the ignore rules under the same AlwaysShow escape hatch. The input
// slice is not modified; retained ignored entries are marked on the
// returned copies when labeling is enabled.
func (rs *RuleSet) Filter(baseDir string, items []entry.Entry, opts Options) []entry.Entry {
	out := make([]entry.Entry, 0, len(items))
	prefix := rs.relBase(baseDir)

	for _, it := range items {
		if opts.HideDotfiles && it.Kind == entry.KindFS &&
			strings.HasPrefix(it.Name, ".") && !it.AlwaysShow {
			continue
		}

		ignored := false
		if it.Kind == entry.KindFS || it.Kind == entry.KindNewFile {
			rel := it.Name
			if prefix != "" {
				rel = prefix + "/" + it.Name
			}
			ignored = rs.matcher.Test(rel, it.Type.IsDir())
		}
		if !ignored {
			out = append(out, it)
			continue
		}

		if opts.RemoveIgnored {
			// Removal is unconditional for real entries and also claims
			// synthetic ones unless they are flagged to stay.
			if it.Kind == entry.KindFS || !it.AlwaysShow {
				continue
			}
		} else if opts.HideIgnored && !it.AlwaysShow && it.Kind == entry.KindFS {
			continue
		}
		if opts.LabelIgnored {
			it.Ignored = true
		}
		out = append(out, it)
	}
	return out
}
