package location

import (
	"path/filepath"
	"strings"
)

// InputKind classifies free text typed into the picker's value field.
type InputKind int

const (
	// InputFilter means the text is a plain filter string.
	InputFilter InputKind = iota
	// InputDescend means the text ends in a path separator and names a
	// folder to step into.
	InputDescend
	// InputHome means the text asks to jump to the home directory.
	InputHome
	// InputParent means the text asks to step out one level.
	InputParent
)

// Input is the result of classifying typed text.
type Input struct {
	Kind InputKind
	// Path carries the filter string for InputFilter, or the folder path
	// (without its trailing separator) for InputDescend.
	Path string
}

// ClassifyInput decides whether typed text is a filter or a navigation
// request. Pure; the caller performs the actual jump.
func ClassifyInput(text string) Input {
	trimmed := strings.TrimRight(text, "/"+string(filepath.Separator))
	switch trimmed {
	case "~":
		return Input{Kind: InputHome}
	case "..":
		return Input{Kind: InputParent}
	}
	if text != trimmed {
		// Had a trailing separator: a step-into request.
		return Input{Kind: InputDescend, Path: trimmed}
	}
	return Input{Kind: InputFilter, Path: text}
}
