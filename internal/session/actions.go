package session

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/LFroesch/pathfinder/internal/entry"
	"github.com/LFroesch/pathfinder/internal/location"
	"github.com/LFroesch/pathfinder/internal/logger"
)

// Action entry identifiers. Action entries carry the identifier as
// their Name and a human label for display.
const (
	actionOpen             = "open"
	actionOpenBeside       = "open-beside"
	actionRename           = "rename"
	actionDelete           = "delete"
	actionCopyPath         = "copy-path"
	actionOpenExternal     = "open-external"
	actionOpenFolder       = "open-folder"
	actionOpenFolderNewWin = "open-folder-new-window"
	actionNewFile          = "new-file"
	actionNewFolder        = "new-folder"
	actionCreateThisFolder = "create-this-folder"
)

type confirmState struct {
	message string
	targets []entry.Entry
}

// OpenActions opens the actions menu scoped to the active entry, or to
// the current directory when nothing concrete is focused. Invoking it
// while the menu is open closes it.
func (s *Session) OpenActions() {
	if s.blocked() {
		return
	}
	if s.actionsOpen {
		s.exitActions()
		return
	}
	if e, ok := s.activeEntry(); ok && e.Kind == entry.KindFS {
		s.enterActions(e, false)
		return
	}
	s.enterActions(entry.Entry{}, true)
}

// enterActions replaces the listing with the menu. The menu forces
// Normal mode regardless of what was active before.
func (s *Session) enterActions(target entry.Entry, onDir bool) {
	s.setMode(ModeNormal)
	s.picker.SetValue("")
	s.actionsOpen = true
	s.actionTarget = target
	s.actionOnDir = onDir
	s.refreshItems("")
}

// exitActions restores the listing, focusing the entry the menu was
// scoped to.
func (s *Session) exitActions() {
	restore := s.actionTarget.Name
	s.clearActions()
	s.refreshItems(restore)
}

// clearActions drops menu state without refreshing; callers refresh or
// rebuild afterwards.
func (s *Session) clearActions() {
	s.actionsOpen = false
	s.actionTarget = entry.Entry{}
	s.actionOnDir = false
	s.syncEscape()
}

// actionScope resolves the location an action applies to: the menu's
// target entry, or the current directory for directory-scoped menus.
func (s *Session) actionScope() *location.Location {
	if s.actionOnDir || s.actionTarget.Name == "" {
		return s.loc.Clone()
	}
	return s.loc.Append(s.actionTarget.Name)
}

func (s *Session) actionMenu() []entry.Entry {
	if s.actionOnDir {
		return []entry.Entry{
			entry.NewAction(actionOpenFolder, "open this folder as workspace"),
			entry.NewAction(actionOpenFolderNewWin, "open this folder in a new window"),
			entry.NewAction(actionNewFile, "new file"),
			entry.NewAction(actionNewFolder, "new folder"),
			entry.NewAction(actionCopyPath, "copy path"),
			entry.NewAction(actionOpenExternal, "open with default application"),
		}
	}
	if s.actionTarget.Type.IsDir() {
		return []entry.Entry{
			entry.NewAction(actionOpenFolder, "open folder as workspace"),
			entry.NewAction(actionOpenFolderNewWin, "open folder in a new window"),
			entry.NewAction(actionRename, "rename"),
			entry.NewAction(actionDelete, "delete"),
			entry.NewAction(actionCopyPath, "copy path"),
			entry.NewAction(actionOpenExternal, "open with default application"),
		}
	}
	return []entry.Entry{
		entry.NewAction(actionOpen, "open"),
		entry.NewAction(actionOpenBeside, "open to the side"),
		entry.NewAction(actionRename, "rename"),
		entry.NewAction(actionDelete, "delete"),
		entry.NewAction(actionCopyPath, "copy path"),
		entry.NewAction(actionOpenExternal, "open with default application"),
	}
}

// runAction performs one menu action. Completing an action leaves the
// menu; rename and delete continue through their usual prompts.
func (s *Session) runAction(id string) {
	target := s.actionScope()
	focus := s.actionTarget

	switch id {
	case actionOpen:
		s.clearActions()
		s.openTarget(target, false)

	case actionOpenBeside:
		s.clearActions()
		s.openTarget(target, true)

	case actionRename:
		s.clearActions()
		s.refreshItems(focus.Name)
		s.startRenameOf(focus)

	case actionDelete:
		s.clearActions()
		s.refreshItems(focus.Name)
		s.requestDeleteOf([]entry.Entry{focus})

	case actionCopyPath:
		s.exitActions()
		if err := s.host.CopyPath(target.Path()); err != nil {
			s.notify.Error(fmt.Sprintf("Copy failed: %v", err))
		} else {
			s.notify.Info(fmt.Sprintf("Copied: %s", target.Path()))
		}

	case actionOpenExternal:
		s.clearActions()
		if err := s.host.OpenExternal(target.Path()); err != nil {
			s.notify.Error(fmt.Sprintf("Open failed: %v", err))
			logger.Error("open external %s: %v", target.Path(), err)
		}
		s.preselect = focus.Name
		s.rebuild()

	case actionOpenFolder, actionOpenFolderNewWin:
		s.clearActions()
		err := s.withPickerHidden(func() error {
			return s.host.OpenWorkspace(target.Path(), id == actionOpenFolderNewWin)
		})
		if err != nil {
			s.notify.Error(fmt.Sprintf("Open folder failed: %v", err))
			logger.Error("open workspace %s: %v", target.Path(), err)
		}
		s.preselect = focus.Name
		s.rebuild()

	case actionNewFile:
		s.clearActions()
		s.refreshItems("")
		s.StartCreate(false)

	case actionNewFolder:
		s.clearActions()
		s.refreshItems("")
		s.StartCreate(true)

	case actionCreateThisFolder:
		s.beginOp()
		err := s.fs.CreateDirectory(s.loc.Path())
		s.endOp()
		if err != nil {
			s.notify.Error(fmt.Sprintf("Create folder failed: %v", err))
			logger.Error("create %s: %v", s.loc.Path(), err)
		} else {
			s.notify.Info(fmt.Sprintf("Created %s", s.loc.Display(s.workspace)))
		}
		s.rebuild()
	}
}

// --- open ---

// openEntry opens a file entry of the current listing in the editor.
func (s *Session) openEntry(e entry.Entry, beside bool) {
	s.openTarget(s.loc.Append(e.Name), beside)
}

// openTarget hands a document to the editor host with the picker hidden,
// then restores it and rebuilds the listing regardless of the outcome.
func (s *Session) openTarget(target *location.Location, beside bool) {
	s.leaveModes()
	err := s.withPickerHidden(func() error {
		if beside {
			return s.host.OpenDocumentBeside(target.Path())
		}
		return s.host.OpenDocument(target.Path())
	})
	if err != nil {
		s.notify.Error(fmt.Sprintf("Open failed: %v", err))
		logger.Error("open %s: %v", target.Path(), err)
	}
	if leaf, ok := target.Leaf(); ok {
		s.preselect = leaf
	}
	s.rebuild()
}

// CopyActivePath copies the absolute path of the active entry to the
// clipboard, or the current directory's path when nothing concrete is
// focused.
func (s *Session) CopyActivePath() {
	if s.blocked() {
		return
	}
	target := s.loc.Clone()
	if e, ok := s.activeEntry(); ok && e.Kind == entry.KindFS {
		target = s.loc.Append(e.Name)
	}
	if err := s.host.CopyPath(target.Path()); err != nil {
		s.notify.Error(fmt.Sprintf("Copy failed: %v", err))
		logger.Error("copy path %s: %v", target.Path(), err)
		return
	}
	s.notify.Info(fmt.Sprintf("Copied: %s", target.Path()))
}

// --- rename ---

// StartRename enters Rename mode for the active entry. In Visual mode
// the selection must contain exactly one entry; anything else is
// rejected as a no-op.
func (s *Session) StartRename() {
	if s.blocked() || s.actionsOpen {
		return
	}
	var target entry.Entry
	if s.mode == ModeVisual {
		selected := s.visualTargets()
		if len(selected) != 1 {
			s.notify.Info("Rename needs exactly one selected entry")
			return
		}
		target = selected[0]
		s.exitVisual()
		s.refreshItems(target.Name)
	} else {
		e, ok := s.activeEntry()
		if !ok || e.Kind != entry.KindFS {
			return
		}
		target = e
	}
	s.startRenameOf(target)
}

// startRenameOf prefills the field with the entry name and places the
// cursor at the end of the stem, before the extension.
func (s *Session) startRenameOf(e entry.Entry) {
	s.setMode(ModeRename)
	s.renameOriginal = e.Name
	s.picker.SetValue(e.Name)
	stem := len(e.Name)
	if e.Type.IsFile() {
		stem -= len(filepath.Ext(e.Name))
	}
	s.picker.SetCursor(stem)
	s.refreshItems(e.Name)
}

// finishRename applies the typed name. An empty or unchanged name is a
// no-op; failure keeps the original entry focused.
func (s *Session) finishRename() {
	typed := strings.TrimSpace(s.picker.Value())
	original := s.renameOriginal
	s.setMode(ModeNormal)
	s.picker.SetValue("")

	if typed == "" || typed == original {
		s.refreshItems(original)
		return
	}
	if strings.ContainsAny(typed, `/\`) {
		s.notify.Error("Name cannot contain path separators")
		s.refreshItems(original)
		return
	}

	from := s.loc.Append(original)
	to := s.loc.Append(typed)
	s.beginOp()
	err := s.fs.Rename(from.Path(), to.Path())
	s.endOp()
	if err != nil {
		s.notify.Error(fmt.Sprintf("Rename failed: %v", err))
		logger.Error("rename %s to %s: %v", from.Path(), to.Path(), err)
		s.preselect = original
	} else {
		s.notify.Info(fmt.Sprintf("Renamed %s to %s", original, typed))
		s.preselect = typed
	}
	s.rebuild()
}

// --- create ---

// StartCreate enters Create mode, prompting for a file or folder name.
func (s *Session) StartCreate(folder bool) {
	if s.blocked() {
		return
	}
	if s.actionsOpen {
		s.clearActions()
	}
	s.setMode(ModeCreate)
	s.createFolder = folder
	s.picker.SetValue("")
	s.refreshItems("")
}

// createNewFile hands an untitled document at the typed name to the
// editor; the file is not written until the editor saves it.
func (s *Session) createNewFile(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.notify.Error("File name required")
		return
	}
	target := s.loc.Append(name)
	s.leaveModes()
	err := s.withPickerHidden(func() error {
		return s.host.OpenDocument(target.Path())
	})
	if err != nil {
		s.notify.Error(fmt.Sprintf("Open failed: %v", err))
		logger.Error("open new %s: %v", target.Path(), err)
	}
	s.preselect = name
	s.rebuild()
}

// finishCreateFolder creates the typed directory, including missing
// parents.
func (s *Session) finishCreateFolder(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.notify.Error("Folder name required")
		return
	}
	target := s.loc.Append(name)
	s.setMode(ModeNormal)
	s.picker.SetValue("")

	s.beginOp()
	err := s.fs.CreateDirectory(target.Path())
	s.endOp()
	if err != nil {
		s.notify.Error(fmt.Sprintf("Create folder failed: %v", err))
		logger.Error("create %s: %v", target.Path(), err)
	} else {
		s.notify.Info(fmt.Sprintf("Created %s", name))
		s.preselect = name
	}
	s.rebuild()
}

// --- delete ---

// RequestDelete asks for confirmation before deleting the active entry,
// or every selected entry in Visual mode. Synthetic rows are skipped.
func (s *Session) RequestDelete() {
	if s.blocked() {
		return
	}
	var targets []entry.Entry
	switch {
	case s.actionsOpen:
		if s.actionTarget.Kind == entry.KindFS {
			t := s.actionTarget
			s.clearActions()
			s.refreshItems(t.Name)
			targets = []entry.Entry{t}
		}
	case s.mode == ModeVisual:
		targets = s.visualTargets()
	default:
		if e, ok := s.activeEntry(); ok && e.Kind == entry.KindFS {
			targets = []entry.Entry{e}
		}
	}
	if len(targets) == 0 {
		s.notify.Info("Nothing to delete")
		return
	}
	s.requestDeleteOf(targets)
}

func (s *Session) requestDeleteOf(targets []entry.Entry) {
	s.confirm = &confirmState{message: deletePrompt(targets), targets: targets}
	s.syncEscape()
}

// visualTargets returns the real entries inside the visual range.
func (s *Session) visualTargets() []entry.Entry {
	lo, hi := s.VisualRange()
	if lo < 0 {
		return nil
	}
	var targets []entry.Entry
	for _, it := range s.items[lo : hi+1] {
		if it.Kind == entry.KindFS {
			targets = append(targets, it)
		}
	}
	return targets
}

func deletePrompt(targets []entry.Entry) string {
	if len(targets) == 1 {
		t := targets[0]
		if t.Type.IsDir() {
			return fmt.Sprintf("Delete folder %q and its contents? (y/n)", t.Name)
		}
		return fmt.Sprintf("Delete %q? (y/n)", t.Name)
	}
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.Name)
	}
	return fmt.Sprintf("Delete %d entries (%s)? (y/n)", len(targets), strings.Join(names, ", "))
}

// ResolveConfirm answers the pending confirmation. Declining keeps the
// listing untouched.
func (s *Session) ResolveConfirm(accepted bool) {
	if s.confirm == nil {
		return
	}
	c := s.confirm
	s.confirm = nil
	s.syncEscape()
	if !accepted {
		s.notify.Info("Delete cancelled")
		return
	}
	s.deleteTargets(c.targets)
}

// deleteTargets removes each entry independently: one failure is
// reported and does not stop the rest. The listing afterwards reflects
// exactly the removals that succeeded.
func (s *Session) deleteTargets(targets []entry.Entry) {
	if s.mode == ModeVisual {
		s.setMode(ModeNormal)
	}
	s.beginOp()
	deleted := 0
	firstKept := ""
	for _, e := range targets {
		p := s.loc.Append(e.Name)
		if err := s.fs.Delete(p.Path(), e.Type.IsDir()); err != nil {
			s.notify.Error(fmt.Sprintf("Failed to delete %s: %v", e.Name, err))
			logger.Error("delete %s: %v", p.Path(), err)
			if firstKept == "" {
				firstKept = e.Name
			}
			continue
		}
		deleted++
	}
	s.endOp()
	if deleted == 1 {
		s.notify.Info("Deleted 1 entry")
	} else if deleted > 1 {
		s.notify.Info(fmt.Sprintf("Deleted %d entries", deleted))
	}
	s.preselect = firstKept
	s.rebuild()
}
