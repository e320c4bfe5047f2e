package session

import (
	"github.com/LFroesch/pathfinder/internal/entry"
	"github.com/LFroesch/pathfinder/internal/ignore"
)

// Picker is the single-line picker widget the session drives: an editable
// text field above a list of selectable rows. The session pushes state in;
// the widget reports back only through the event methods on Session
// (OnValueChanged, Accept, OnButton, OnHidden).
type Picker interface {
	// SetItems replaces the displayed rows. The active index is kept when
	// it is still in range, otherwise it is clamped.
	SetItems(rows []entry.Row)
	// SetActive moves the active selection; -1 clears it.
	SetActive(index int)
	// Active returns the active row index, -1 when nothing is active.
	Active() int
	SetValue(text string)
	Value() string
	// SetCursor places the text caret, used to leave a rename suggestion's
	// extension outside the initial edit position.
	SetCursor(pos int)
	// SetBusy marks a mutating operation in flight; the widget shows it
	// and ignores input until cleared.
	SetBusy(busy bool)
	SetEnabled(enabled bool)
	// SetButtons installs up to three side buttons.
	SetButtons(buttons []Button)
	// SetInterceptEscape tells the widget the session wants the next
	// escape key for a sub-mode exit instead of dismissal.
	SetInterceptEscape(on bool)
	// Hide removes the picker; keepAlive hides keep the session alive for
	// a nested operation and are followed by Show.
	Hide(keepAlive bool)
	Show()
}

// Button is one of the picker's side buttons.
type Button struct {
	ID    string
	Label string
	// Key is the key hint the widget renders next to the label.
	Key string
}

// Side button identifiers.
const (
	ButtonNewFile   = "new-file"
	ButtonNewFolder = "new-folder"
	ButtonActions   = "actions"
)

// FileSystem is the filesystem surface the session mutates and lists
// through. Every call is independently failable; failures are reported,
// never retried.
type FileSystem interface {
	Stat(path string) (entry.Type, error)
	ReadDirectory(path string) ([]entry.Entry, error)
	CreateDirectory(path string) error
	Rename(oldPath, newPath string) error
	Delete(path string, recursive bool) error
}

// Host opens documents and workspaces in the surrounding editor
// environment.
type Host interface {
	// OpenDocument opens the document at path, creating an unsaved buffer
	// when the file does not exist yet.
	OpenDocument(path string) error
	// OpenDocumentBeside opens the document in a split beside the active
	// one.
	OpenDocumentBeside(path string) error
	OpenWorkspace(path string, newWindow bool) error
	// OpenExternal hands the path to the operating system's default
	// application.
	OpenExternal(path string) error
	CopyPath(path string) error
}

// Notifier surfaces transient user-visible messages.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// ResolveFunc locates and compiles the nearest ignore file for a
// directory. Injected so tests can substitute a fixed rule set.
type ResolveFunc func(dir string, names []string) *ignore.RuleSet

// Config is the read-only configuration surface the session consumes.
type Config struct {
	HideDotfiles       bool
	HideIgnoredFiles   bool
	LabelIgnoredFiles  bool
	RemoveIgnoredFiles bool
	// IgnoreFileTypes is the ordered list of candidate ignore filenames,
	// highest priority first.
	IgnoreFileTypes []string
}

// Deps bundles the collaborators a session is constructed over.
type Deps struct {
	Picker  Picker
	FS      FileSystem
	Host    Host
	Notify  Notifier
	Resolve ResolveFunc
}
