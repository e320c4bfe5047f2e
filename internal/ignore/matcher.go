package ignore

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher holds the compiled rules of one ignore file. Rules are tested
// in file order and the last matching rule wins, so negated ("!") lines
// can re-include earlier exclusions.
type Matcher struct {
	rules []rule
}

type rule struct {
	pattern glob.Glob
	negate  bool
	dirOnly bool
	// anchored rules contain a slash and match against the path relative
	// to the ignore file's directory; plain rules match any single
	// path segment.
	anchored bool
}

// Compile parses ignore-file text into a Matcher. Blank lines and "#"
// comments are skipped; lines that fail to compile as a pattern are
// dropped rather than failing the whole file.
func Compile(text string) (*Matcher, error) {
	m := &Matcher{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		r := rule{}
		if strings.HasPrefix(line, "!") {
			r.negate = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			r.dirOnly = true
			line = strings.TrimRight(line, "/")
		}
		line = strings.TrimPrefix(line, "/")
		if line == "" {
			continue
		}
		r.anchored = strings.Contains(line, "/")

		var g glob.Glob
		var err error
		if r.anchored {
			g, err = glob.Compile(line, '/')
		} else {
			g, err = glob.Compile(line)
		}
		if err != nil {
			continue
		}
		r.pattern = g
		m.rules = append(m.rules, r)
	}
	return m, nil
}

// Test reports whether the path (relative to the ignore file's directory,
// slash-separated) is ignored.
func (m *Matcher) Test(rel string, isDir bool) bool {
	if m == nil || len(m.rules) == 0 {
		return false
	}
	rel = path.Clean(filepath.ToSlash(rel))
	if rel == "." || rel == "/" || rel == "" {
		return false
	}
	segs := strings.Split(strings.TrimPrefix(rel, "/"), "/")

	ignored := false
	for _, r := range m.rules {
		if r.matches(rel, segs, isDir) {
			ignored = !r.negate
		}
	}
	return ignored
}

func (r rule) matches(rel string, segs []string, isDir bool) bool {
	if r.anchored {
		if r.pattern.Match(rel) && (!r.dirOnly || isDir) {
			return true
		}
		// A match on an ancestor directory ignores everything below it.
		prefix := ""
		for _, s := range segs[:len(segs)-1] {
			if prefix == "" {
				prefix = s
			} else {
				prefix += "/" + s
			}
			if r.pattern.Match(prefix) {
				return true
			}
		}
		return false
	}

	leaf := segs[len(segs)-1]
	if r.pattern.Match(leaf) && (!r.dirOnly || isDir) {
		return true
	}
	for _, s := range segs[:len(segs)-1] {
		if r.pattern.Match(s) {
			return true
		}
	}
	return false
}
