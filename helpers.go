package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/atotto/clipboard"
	"github.com/skratchdot/open-golang/open"

	"github.com/LFroesch/pathfinder/internal/logger"
)

// editorHost hands files and folders to the surrounding editor or the
// desktop. Editors are launched detached so the browser keeps the
// terminal; terminal editors would fight it for the screen, so the
// fallback chain only carries GUI editors.
type editorHost struct {
	editor string
}

func newEditorHost(editor string) *editorHost {
	return &editorHost{editor: editor}
}

var editorChain = []string{"code", "subl", "zed"}

// resolveEditor returns the launchable editor command: the configured
// one when it exists, otherwise the first chain entry found in PATH.
func (h *editorHost) resolveEditor() (string, bool) {
	if h.editor != "" {
		if path, err := exec.LookPath(h.editor); err == nil {
			return path, true
		}
		logger.Warn("configured editor %q not found in PATH", h.editor)
	}
	for _, editor := range editorChain {
		if path, err := exec.LookPath(editor); err == nil {
			return path, true
		}
	}
	return "", false
}

// OpenDocument opens the document in the editor. A path that does not
// exist yet is handed over as-is; the editor creates the buffer and the
// file only appears on disk once saved there.
func (h *editorHost) OpenDocument(path string) error {
	if editor, ok := h.resolveEditor(); ok {
		if err := exec.Command(editor, path).Start(); err != nil {
			return fmt.Errorf("launch editor: %w", err)
		}
		logger.Info("opened %s", path)
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no editor found to create %s", path)
	}
	// No editor available; the desktop default can still show the file
	return open.Run(path)
}

// OpenDocumentBeside opens the document next to the active one. Only
// editors with a split concept honor it; everything else degrades to a
// plain open.
func (h *editorHost) OpenDocumentBeside(path string) error {
	if codePath, err := exec.LookPath("code"); err == nil {
		if err := exec.Command(codePath, "--reuse-window", path).Start(); err != nil {
			return fmt.Errorf("launch editor: %w", err)
		}
		logger.Info("opened %s beside", path)
		return nil
	}
	return h.OpenDocument(path)
}

// OpenWorkspace opens a folder as an editor workspace, optionally in a
// new window.
func (h *editorHost) OpenWorkspace(path string, newWindow bool) error {
	editor, ok := h.resolveEditor()
	if !ok {
		return fmt.Errorf("no editor found to open workspace %s", path)
	}
	args := []string{path}
	if newWindow {
		args = []string{"-n", path}
	}
	if err := exec.Command(editor, args...).Start(); err != nil {
		return fmt.Errorf("launch editor: %w", err)
	}
	logger.Info("opened workspace %s (new window: %v)", path, newWindow)
	return nil
}

// OpenExternal hands the path to the operating system's default
// application.
func (h *editorHost) OpenExternal(path string) error {
	return open.Run(path)
}

// CopyPath puts the path on the system clipboard.
func (h *editorHost) CopyPath(path string) error {
	return clipboard.WriteAll(path)
}
