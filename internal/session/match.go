package session

import "strings"

// matchSubstring reports whether query occurs in name, case-insensitive,
// along with the byte positions of the first occurrence for highlight
// rendering. An empty query matches everything with no positions.
func matchSubstring(query, name string) ([]int, bool) {
	if query == "" {
		return nil, true
	}
	idx := strings.Index(strings.ToLower(name), strings.ToLower(query))
	if idx < 0 {
		return nil, false
	}
	positions := make([]int, 0, len(query))
	for i := idx; i < idx+len(query); i++ {
		positions = append(positions, i)
	}
	return positions, true
}
