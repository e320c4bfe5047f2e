package session

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/LFroesch/pathfinder/internal/entry"
	"github.com/LFroesch/pathfinder/internal/ignore"
	"github.com/LFroesch/pathfinder/internal/location"
	"github.com/LFroesch/pathfinder/internal/logger"
)

// Mode is the mutually-exclusive interaction state governing how input is
// interpreted. Exactly one mode is active at a time; the Actions menu is
// an orthogonal flag that forces Normal while it is open.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeVisual
	ModeRename
	ModeCreate
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "SEARCH"
	case ModeVisual:
		return "VISUAL"
	case ModeRename:
		return "RENAME"
	case ModeCreate:
		return "CREATE"
	default:
		return "NORMAL"
	}
}

// Session is the navigation state machine behind one picker invocation.
// It owns the current location, the unfiltered listing, the active mode,
// visual-selection bounds, the autocompletion cursor, and the per-directory
// focus history. All collaborators are driven through the contracts in
// this package; the session never reaches around them.
type Session struct {
	picker  Picker
	fs      FileSystem
	host    Host
	notify  Notifier
	resolve ResolveFunc
	cfg     Config

	workspace *location.Location
	loc       *location.Location
	rules     *ignore.RuleSet

	// all is the unfiltered listing of loc, recomputed on every directory
	// change; items is what is currently displayed.
	all     []entry.Entry
	items   []entry.Entry
	missing bool

	mode Mode

	actionsOpen  bool
	actionTarget entry.Entry
	actionOnDir  bool

	renameOriginal string
	createFolder   bool

	// history maps Location identity to the last-focused entry name in
	// that directory, updated whenever the session leaves it.
	history   map[string]string
	preselect string

	visualAnchor int

	completions []string
	completIdx  int
	completing  bool

	// transientNew is the "create as new file" suggestion shown when
	// typing is rejected outside the input modes.
	transientNew string

	confirm  *confirmState
	matchPos map[string][]int

	busy      bool
	keepAlive bool
	dismissed bool
}

// New builds a session rooted at start. A non-empty reveal preselects
// that leaf in the first listing; workspace, when non-nil, is the root
// paths render relative to.
func New(start, workspace *location.Location, reveal string, cfg Config, deps Deps) *Session {
	s := &Session{
		picker:       deps.Picker,
		fs:           deps.FS,
		host:         deps.Host,
		notify:       deps.Notify,
		resolve:      deps.Resolve,
		cfg:          cfg,
		workspace:    workspace,
		loc:          start.Clone(),
		history:      make(map[string]string),
		preselect:    reveal,
		visualAnchor: -1,
	}
	if s.resolve == nil {
		s.resolve = ignore.Resolve
	}
	return s
}

// Start installs the side buttons and pushes the first listing.
func (s *Session) Start() {
	s.picker.SetButtons([]Button{
		{ID: ButtonNewFile, Label: "new file", Key: "ctrl+n"},
		{ID: ButtonNewFolder, Label: "new folder", Key: "ctrl+d"},
		{ID: ButtonActions, Label: "actions", Key: "ctrl+a"},
	})
	s.rebuild()
}

// blocked reports whether commands should be ignored right now: a
// mutating operation in flight, a pending confirmation, or a dismissed
// session (commands after dismissal are normal no-ops, not errors).
func (s *Session) blocked() bool {
	return s.busy || s.dismissed || s.confirm != nil
}

// --- accessors ---

// Mode returns the active mode.
func (s *Session) Mode() Mode { return s.mode }

// ActionsOpen reports whether the actions menu replaces the listing.
func (s *Session) ActionsOpen() bool { return s.actionsOpen }

// Path is the absolute path of the current location.
func (s *Session) Path() string { return s.loc.Path() }

// DisplayPath renders the current location relative to the workspace
// root when inside it.
func (s *Session) DisplayPath() string { return s.loc.Display(s.workspace) }

// AtTop reports whether the current location is the traversal root.
func (s *Session) AtTop() bool { return s.loc.AtTop() }

// Busy reports whether a mutating operation is in flight.
func (s *Session) Busy() bool { return s.busy }

// Dismissed reports whether the session has been torn down.
func (s *Session) Dismissed() bool { return s.dismissed }

// CreatingFolder reports whether Create mode is prompting for a folder
// rather than a file.
func (s *Session) CreatingFolder() bool { return s.createFolder }

// HidingDotfiles reports the current dotfile filter state.
func (s *Session) HidingDotfiles() bool { return s.cfg.HideDotfiles }

// RuleSource names the ignore file in effect, when any.
func (s *Session) RuleSource() (string, bool) {
	if s.rules == nil || s.rules.IsEmpty() {
		return "", false
	}
	return s.rules.Source, true
}

// MatchPositions returns the matched character positions for an entry
// name under the current filter, for highlight rendering.
func (s *Session) MatchPositions(name string) []int {
	return s.matchPos[name]
}

// PendingConfirm returns the confirmation prompt awaiting an answer.
func (s *Session) PendingConfirm() (string, bool) {
	if s.confirm == nil {
		return "", false
	}
	return s.confirm.message, true
}

// VisualRange returns the inclusive selected index span, or (-1, -1)
// outside Visual mode. The range always contains the anchor.
func (s *Session) VisualRange() (int, int) {
	if s.mode != ModeVisual || s.visualAnchor < 0 {
		return -1, -1
	}
	cur := s.picker.Active()
	if cur < 0 {
		cur = s.visualAnchor
	}
	return min(s.visualAnchor, cur), max(s.visualAnchor, cur)
}

func (s *Session) activeEntry() (entry.Entry, bool) {
	i := s.picker.Active()
	if i < 0 || i >= len(s.items) {
		return entry.Entry{}, false
	}
	return s.items[i], true
}

// --- listing pipeline ---

// rebuild recomputes the rule set and the unfiltered listing for the
// current location, then refreshes the displayed items. A listing that
// cannot be read collapses to a "create this folder" affordance instead
// of failing.
func (s *Session) rebuild() {
	s.transientNew = ""
	s.resetCompletion()
	s.rules = s.resolve(s.loc.Path(), s.cfg.IgnoreFileTypes)

	raw, err := s.fs.ReadDirectory(s.loc.Path())
	if err != nil {
		s.missing = true
		s.all = nil
		logger.Info("listing %s: %v", s.loc.Path(), err)
	} else {
		s.missing = false
		entry.Sort(raw)
		s.all = raw
	}

	s.refreshItems(s.preselect)
	s.preselect = ""
}

// Refresh reloads the listing from disk, keeping mode, filter, and the
// active entry where possible. Driven by the directory watcher.
func (s *Session) Refresh() {
	if s.blocked() || s.actionsOpen {
		return
	}
	s.rebuild()
}

// refreshItems recomputes the displayed items and active selection.
// preselect names the entry to focus; empty keeps the current focus by
// name when it survives.
func (s *Session) refreshItems(preselect string) {
	if preselect == "" {
		if e, ok := s.activeEntry(); ok {
			preselect = e.Name
		}
	}
	s.items = s.displayItems()

	idx := -1
	if preselect != "" {
		idx = entry.IndexOf(s.items, preselect)
	}
	if idx == -1 && len(s.items) > 0 {
		idx = 0
	}
	s.pushRows()
	s.picker.SetActive(idx)
	s.syncEscape()
}

func (s *Session) displayItems() []entry.Entry {
	if s.actionsOpen {
		return s.actionMenu()
	}
	if s.missing {
		return []entry.Entry{entry.NewAction(actionCreateThisFolder, "create this folder")}
	}
	switch s.mode {
	case ModeSearch, ModeRename, ModeCreate:
		return s.filterItems(s.picker.Value())
	}

	items := make([]entry.Entry, 0, len(s.all)+2)
	if s.transientNew != "" {
		items = append(items, entry.NewFileCandidate(s.transientNew))
	}
	if !s.loc.AtTop() {
		items = append(items, entry.NewParent())
	}
	items = append(items, s.rules.Filter(s.loc.Path(), s.all, s.policy())...)
	return items
}

// filterItems narrows the unfiltered listing by case-insensitive
// substring match. Entries named exactly like the typed text, and the
// rename target, are flagged to survive the ignore policy. Zero
// matches substitute a single "create as new file" entry. A trailing
// separator left behind by autocompletion is not part of the match
// text.
func (s *Session) filterItems(text string) []entry.Entry {
	needle := strings.TrimRight(text, "/"+string(filepath.Separator))

	cands := make([]entry.Entry, 0, len(s.all))
	for _, it := range s.all {
		if needle != "" && strings.EqualFold(it.Name, needle) {
			it.AlwaysShow = true
		}
		if s.mode == ModeRename && it.Name == s.renameOriginal {
			it.AlwaysShow = true
		}
		cands = append(cands, it)
	}
	cands = s.rules.Filter(s.loc.Path(), cands, s.policy())

	s.matchPos = make(map[string][]int)
	if needle == "" {
		return cands
	}
	matched := make([]entry.Entry, 0, len(cands))
	for _, it := range cands {
		pos, ok := matchSubstring(needle, it.Name)
		if !ok {
			continue
		}
		s.matchPos[it.Name] = pos
		matched = append(matched, it)
	}
	if len(matched) == 0 {
		return []entry.Entry{entry.NewFileCandidate(needle)}
	}
	return matched
}

func (s *Session) policy() ignore.Options {
	return ignore.Options{
		HideDotfiles:  s.cfg.HideDotfiles,
		HideIgnored:   s.cfg.HideIgnoredFiles,
		LabelIgnored:  s.cfg.LabelIgnoredFiles,
		RemoveIgnored: s.cfg.RemoveIgnoredFiles,
	}
}

func (s *Session) pushRows() {
	lo, hi := s.VisualRange()
	s.picker.SetItems(entry.Rows(s.items, lo, hi))
}

func (s *Session) syncEscape() {
	s.picker.SetInterceptEscape(
		s.mode != ModeNormal || s.actionsOpen || s.confirm != nil || s.transientNew != "")
}

// --- movement ---

// MoveUp moves the active selection up one row, wrapping at the top.
func (s *Session) MoveUp() { s.move(-1) }

// MoveDown moves the active selection down one row, wrapping at the
// bottom.
func (s *Session) MoveDown() { s.move(1) }

// move is cyclic over the currently displayed list. It is a no-op while
// the actions menu or Search is active: the widget's own cursor handles
// those, and Search navigates by re-filtering.
func (s *Session) move(delta int) {
	if s.blocked() || s.actionsOpen || s.mode == ModeSearch {
		return
	}
	n := len(s.items)
	if n == 0 {
		return
	}
	i := s.picker.Active()
	if i < 0 {
		i = 0
	} else {
		i = (i + delta + n) % n
	}
	s.picker.SetActive(i)
	if s.mode == ModeVisual {
		// Movement stretches the inclusive range between anchor and cursor
		s.pushRows()
	}
}

// --- navigation ---

// StepIn descends into the active directory, runs the active action
// entry, or opens the actions menu for a file (a file behaves as a
// pseudo-directory of its actions).
func (s *Session) StepIn() {
	if s.blocked() {
		return
	}
	e, ok := s.activeEntry()
	if !ok {
		return
	}
	switch e.Kind {
	case entry.KindAction:
		s.runAction(e.Name)
	case entry.KindParent:
		s.StepOut()
	case entry.KindNewFile:
		s.createNewFile(e.Name)
	default:
		if e.Type.IsDir() {
			s.descend(e.Name)
		} else {
			s.enterActions(e, false)
		}
	}
}

// StepOut closes the actions menu if open; otherwise it records the
// focused entry for the directory being left, ascends one level, and
// preselects the directory just left. Repeated invocations at the root
// are no-ops.
func (s *Session) StepOut() {
	if s.blocked() {
		return
	}
	if s.actionsOpen {
		s.exitActions()
		return
	}
	if s.loc.AtTop() {
		return
	}
	s.rememberFocus()
	s.leaveModes()
	name, ok := s.loc.Pop()
	if !ok {
		return
	}
	s.preselect = name
	s.rebuild()
}

func (s *Session) descend(name string) {
	s.rememberFocus()
	s.leaveModes()
	s.loc.Push(name)
	s.preselect = s.history[s.loc.ID()]
	s.rebuild()
}

// JumpTo moves the session to an arbitrary location.
func (s *Session) JumpTo(target *location.Location) {
	if s.blocked() {
		return
	}
	s.rememberFocus()
	s.leaveModes()
	s.loc = target.Clone()
	s.preselect = s.history[s.loc.ID()]
	s.rebuild()
}

// rememberFocus records the active entry's name for the current
// directory so it can be restored when the directory is revisited.
func (s *Session) rememberFocus() {
	if e, ok := s.activeEntry(); ok && e.Kind == entry.KindFS {
		s.history[s.loc.ID()] = e.Name
	}
}

// leaveModes returns to Normal and closes the actions menu without
// refreshing; callers refresh or rebuild afterwards.
func (s *Session) leaveModes() {
	s.actionsOpen = false
	s.actionTarget = entry.Entry{}
	s.actionOnDir = false
	s.setMode(ModeNormal)
	s.picker.SetValue("")
}

func (s *Session) setMode(m Mode) {
	s.mode = m
	if m != ModeVisual {
		s.visualAnchor = -1
	}
	if m != ModeRename {
		s.renameOriginal = ""
	}
	if m != ModeCreate {
		s.createFolder = false
	}
	s.transientNew = ""
	s.resetCompletion()
	s.syncEscape()
}

// --- mode toggles ---

// ToggleSearch switches between Normal/Visual and Search. Entering
// clears any visual selection; leaving restores the full unfiltered list
// and clears the text field.
func (s *Session) ToggleSearch() {
	if s.blocked() || s.actionsOpen {
		return
	}
	switch s.mode {
	case ModeSearch:
		s.exitSearch()
	case ModeNormal, ModeVisual:
		s.setMode(ModeSearch)
		s.picker.SetValue("")
		s.refreshItems("")
	}
}

func (s *Session) exitSearch() {
	s.setMode(ModeNormal)
	s.picker.SetValue("")
	s.refreshItems("")
}

// ToggleVisual switches between Normal and Visual. Entering requires an
// active item and anchors the selection range there.
func (s *Session) ToggleVisual() {
	if s.blocked() || s.actionsOpen {
		return
	}
	switch s.mode {
	case ModeVisual:
		s.exitVisual()
	case ModeNormal:
		if _, ok := s.activeEntry(); !ok {
			return
		}
		s.setMode(ModeVisual)
		s.visualAnchor = s.picker.Active()
		s.pushRows()
	}
}

func (s *Session) exitVisual() {
	s.setMode(ModeNormal)
	s.pushRows()
}

// ToggleDotfiles flips dotfile hiding for this session.
func (s *Session) ToggleDotfiles() {
	if s.blocked() {
		return
	}
	s.cfg.HideDotfiles = !s.cfg.HideDotfiles
	s.refreshItems("")
	if s.cfg.HideDotfiles {
		s.notify.Info("Hiding dotfiles")
	} else {
		s.notify.Info("Showing dotfiles")
	}
}

// --- text input ---

// OnValueChanged handles a user edit of the text field. Trailing-
// separator values, "~", and ".." navigate instead of filtering; in the
// input modes the listing is re-filtered; elsewhere typing is rejected
// but still offers creating the typed name.
func (s *Session) OnValueChanged(text string) {
	if s.busy || s.dismissed || s.confirm != nil {
		return
	}
	if s.actionsOpen {
		if text != "" {
			s.picker.SetValue("")
		}
		return
	}
	s.resetCompletion()

	// Rename and Create treat the field as a plain name, never as
	// navigation
	if s.mode == ModeRename || s.mode == ModeCreate {
		s.refreshItems("")
		return
	}

	in := location.ClassifyInput(text)
	switch in.Kind {
	case location.InputHome:
		s.picker.SetValue("")
		home, err := location.Home()
		if err != nil {
			s.notify.Error(fmt.Sprintf("Cannot resolve home directory: %v", err))
			return
		}
		s.JumpTo(home)
	case location.InputParent:
		s.picker.SetValue("")
		s.StepOut()
	case location.InputDescend:
		s.picker.SetValue("")
		s.jumpDescend(in.Path)
	default:
		if s.mode == ModeSearch {
			s.transientNew = ""
			s.refreshItems("")
			return
		}
		if text == "" {
			if s.transientNew != "" {
				s.transientNew = ""
				s.refreshItems("")
			}
			return
		}
		// Rejected: force the field empty but keep a transient
		// suggestion to create the typed name
		s.picker.SetValue("")
		s.transientNew = text
		s.refreshItems(text)
	}
}

func (s *Session) jumpDescend(p string) {
	target, err := s.resolveJump(p)
	if err != nil {
		s.notify.Error(fmt.Sprintf("Cannot resolve %q: %v", p, err))
		return
	}
	if t, err := s.fs.Stat(target.Path()); err == nil && !t.IsDir() {
		s.notify.Info(fmt.Sprintf("%s is not a folder", target.Display(s.workspace)))
		return
	}
	// A missing target still jumps; the listing offers to create it
	s.JumpTo(target)
}

func (s *Session) resolveJump(p string) (*location.Location, error) {
	if p == "" {
		return location.New(string(filepath.Separator))
	}
	if strings.HasPrefix(p, "~") {
		expanded, err := location.ExpandUser(p)
		if err != nil {
			return nil, err
		}
		return location.New(expanded)
	}
	if filepath.IsAbs(p) {
		return location.New(p)
	}
	next := s.loc.Clone()
	for _, seg := range strings.Split(filepath.ToSlash(p), "/") {
		switch seg {
		case "", ".":
		case "..":
			next.Pop()
		default:
			next.Push(seg)
		}
	}
	return next, nil
}

// --- accept ---

// Accept resolves the picker's accept event for the current mode: Rename
// performs the rename, Create opens the untitled target, Search and
// Visual first exit, and the active entry is then run, descended into,
// or opened.
func (s *Session) Accept() {
	if s.blocked() {
		return
	}
	switch s.mode {
	case ModeRename:
		s.finishRename()
		return
	case ModeCreate:
		if s.createFolder {
			s.finishCreateFolder(s.picker.Value())
		} else {
			s.createNewFile(s.picker.Value())
		}
		return
	}

	e, ok := s.activeEntry()
	if !ok {
		return
	}
	switch s.mode {
	case ModeSearch:
		s.setMode(ModeNormal)
		s.picker.SetValue("")
		s.refreshItems(e.Name)
	case ModeVisual:
		if lo, _ := s.VisualRange(); lo >= 0 {
			s.exitVisual()
		}
	}

	switch e.Kind {
	case entry.KindAction:
		s.runAction(e.Name)
	case entry.KindParent:
		s.StepOut()
	case entry.KindNewFile:
		s.createNewFile(e.Name)
	default:
		if e.Type.IsDir() {
			s.descend(e.Name)
		} else {
			s.openEntry(e, false)
		}
	}
}

// --- tab completion ---

// TabCompletion rotates a cursor over the entries whose name starts with
// the typed text. The candidate set is fixed when the cursor starts and
// is only recomputed after a non-completion edit. A single directory
// candidate gains a trailing separator to invite a further descend.
func (s *Session) TabCompletion(forward bool) {
	if s.blocked() || s.actionsOpen {
		return
	}
	switch s.mode {
	case ModeSearch, ModeRename, ModeCreate:
	default:
		return
	}

	if !s.completing {
		prefix := strings.ToLower(s.picker.Value())
		var names []string
		for _, it := range s.items {
			if it.Kind != entry.KindFS {
				continue
			}
			if prefix == "" || strings.HasPrefix(strings.ToLower(it.Name), prefix) {
				names = append(names, it.Name)
			}
		}
		if len(names) == 0 {
			return
		}
		s.completions = names
		s.completing = true
		if forward {
			s.completIdx = -1
		} else {
			s.completIdx = len(names)
		}
	}

	n := len(s.completions)
	if forward {
		s.completIdx = (s.completIdx + 1) % n
	} else {
		s.completIdx = (s.completIdx - 1 + n) % n
	}

	value := s.completions[s.completIdx]
	if n == 1 {
		if i := entry.IndexOf(s.items, value); i >= 0 && s.items[i].Type.IsDir() {
			value += "/"
		}
	}
	s.applyCompletion(value)
}

// applyCompletion updates the field without resetting the completion
// cursor; only user edits do that.
func (s *Session) applyCompletion(value string) {
	s.picker.SetValue(value)
	s.picker.SetCursor(len(value))
	s.refreshItems("")
}

func (s *Session) resetCompletion() {
	s.completions = nil
	s.completIdx = 0
	s.completing = false
}

// --- escape ---

// HandleEscape exits whichever sub-state is active: a pending
// confirmation, the actions menu, the transient create suggestion, or
// the active mode. In plain Normal mode it does nothing; the widget then
// treats escape as dismissal.
func (s *Session) HandleEscape() {
	if s.dismissed {
		return
	}
	if s.confirm != nil {
		s.ResolveConfirm(false)
		return
	}
	if s.busy {
		return
	}
	switch {
	case s.actionsOpen:
		s.exitActions()
	case s.transientNew != "":
		s.transientNew = ""
		s.refreshItems("")
		s.syncEscape()
	case s.mode == ModeSearch:
		s.exitSearch()
	case s.mode == ModeVisual:
		s.exitVisual()
	case s.mode == ModeRename, s.mode == ModeCreate:
		restore := s.renameOriginal
		s.setMode(ModeNormal)
		s.picker.SetValue("")
		s.refreshItems(restore)
	}
}

// --- lifecycle ---

// OnButton dispatches a side-button trigger.
func (s *Session) OnButton(id string) {
	if s.blocked() {
		return
	}
	switch id {
	case ButtonNewFile:
		s.StartCreate(false)
	case ButtonNewFolder:
		s.StartCreate(true)
	case ButtonActions:
		s.OpenActions()
	}
}

// OnHidden handles the picker's hidden event. Keep-alive hides (during
// nested operations) leave the session intact; a real hide tears it
// down.
func (s *Session) OnHidden() {
	if s.keepAlive {
		return
	}
	s.dismissed = true
}

// withPickerHidden hides the picker around a nested host operation and
// restores it afterwards, keeping the session alive throughout.
func (s *Session) withPickerHidden(fn func() error) error {
	s.keepAlive = true
	s.picker.Hide(true)
	err := fn()
	s.picker.Show()
	s.keepAlive = false
	return err
}

func (s *Session) beginOp() {
	s.busy = true
	s.picker.SetBusy(true)
	s.picker.SetEnabled(false)
}

func (s *Session) endOp() {
	s.busy = false
	s.picker.SetBusy(false)
	s.picker.SetEnabled(true)
}
