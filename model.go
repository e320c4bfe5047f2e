package main

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sahilm/fuzzy"

	"github.com/LFroesch/pathfinder/internal/config"
	"github.com/LFroesch/pathfinder/internal/entry"
	"github.com/LFroesch/pathfinder/internal/fsys"
	"github.com/LFroesch/pathfinder/internal/location"
	"github.com/LFroesch/pathfinder/internal/logger"
	"github.com/LFroesch/pathfinder/internal/session"
)

// refreshMsg arrives from the directory watcher after changes settle.
type refreshMsg struct {
	dir string
}

// UI layout constants
const (
	minTerminalWidth  = 40
	minTerminalHeight = 10
	uiOverhead        = 5 // header + input + buttons + status + spacer
)

const (
	statusTTL          = 3 * time.Second
	configSaveInterval = 10 // persist frecency every N visits of a directory
)

type model struct {
	sess     *session.Session
	registry *session.Registry
	watcher  *fsys.Watcher
	cfg      *config.Config

	input     textinput.Model
	lastValue string // last field value handed to the session
	keys      keyMap

	rows   []entry.Row
	active int
	offset int // first visible row

	width  int
	height int

	interceptEsc bool
	hidden       bool
	enabled      bool
	busy         bool
	buttons      []session.Button

	statusMsg    string
	statusErr    bool
	statusExpiry time.Time

	showHelp bool

	jumpOpen    bool
	jumpChoices []string
	jumpMatches []string
	jumpActive  int

	lastPath string // directory the watcher and frecency currently track
}

// initialModel builds the model, opens the browsing session on startDir
// and points the watcher at it.
func initialModel(cfg *config.Config, startDir string) (*model, error) {
	start, err := location.New(startDir)
	if err != nil {
		return nil, err
	}
	workspace := start.Clone()

	ti := textinput.New()
	ti.Placeholder = "type a name, path/ to jump, .. to go up"
	ti.Prompt = "> "
	ti.CharLimit = 512
	ti.Focus()

	m := &model{
		cfg:      cfg,
		input:    ti,
		keys:     defaultKeyMap(),
		active:   -1,
		enabled:  true,
		registry: session.NewRegistry(),
		lastPath: start.Path(),
	}

	sess, err := m.registry.Open(start, workspace, "", session.Config{
		HideDotfiles:       cfg.HideDotfiles,
		HideIgnoredFiles:   cfg.HideIgnoredFiles,
		LabelIgnoredFiles:  cfg.LabelIgnoredFiles,
		RemoveIgnoredFiles: cfg.RemoveIgnoredFiles,
		IgnoreFileTypes:    cfg.IgnoreFileTypes,
	}, session.Deps{
		Picker: m,
		FS:     fsys.New(),
		Host:   newEditorHost(cfg.Editor),
		Notify: m,
	})
	if err != nil {
		return nil, err
	}
	m.sess = sess

	if w, err := fsys.NewWatcher(); err == nil {
		m.watcher = w
		if err := w.SetDir(start.Path()); err != nil {
			logger.Warn("cannot watch %s: %v", start.Path(), err)
		}
		if err := w.Start(); err != nil {
			logger.Warn("watcher not started: %v", err)
		}
	} else {
		logger.Warn("directory watching unavailable: %v", err)
	}

	sess.Start()
	m.recordVisit(start.Path())
	return m, nil
}

// --- session.Picker ---

func (m *model) SetItems(rows []entry.Row) {
	m.rows = rows
	if m.active >= len(rows) {
		m.active = len(rows) - 1
	}
	m.ensureVisible()
}

func (m *model) SetActive(index int) {
	m.active = index
	m.ensureVisible()
}

func (m *model) Active() int { return m.active }

func (m *model) SetValue(text string) {
	m.input.SetValue(text)
	m.input.CursorEnd()
	m.lastValue = text
}

func (m *model) Value() string { return m.input.Value() }

func (m *model) SetCursor(pos int) { m.input.SetCursor(pos) }

func (m *model) SetBusy(busy bool) { m.busy = busy }

func (m *model) SetEnabled(enabled bool) { m.enabled = enabled }

func (m *model) SetButtons(buttons []session.Button) { m.buttons = buttons }

func (m *model) SetInterceptEscape(on bool) { m.interceptEsc = on }

func (m *model) Hide(keepAlive bool) { m.hidden = true }

func (m *model) Show() { m.hidden = false }

// --- session.Notifier ---

func (m *model) Info(msg string) {
	m.statusMsg = msg
	m.statusErr = false
	m.statusExpiry = time.Now().Add(statusTTL)
}

func (m *model) Error(msg string) {
	m.statusMsg = msg
	m.statusErr = true
	m.statusExpiry = time.Now().Add(statusTTL)
}

// --- list scrolling ---

// listHeight is the number of rows the list area can show.
func (m *model) listHeight() int {
	h := m.height - uiOverhead
	if h < 3 {
		h = 3
	}
	return h
}

// ensureVisible scrolls just enough to keep the active row on screen.
func (m *model) ensureVisible() {
	if m.active < 0 {
		m.offset = 0
		return
	}
	window := m.listHeight()
	if len(m.rows) > window {
		// Scroll indicators take the edge lines
		window -= 2
	}
	if window < 1 {
		window = 1
	}
	if m.active < m.offset {
		m.offset = m.active
	}
	if m.active >= m.offset+window {
		m.offset = m.active - window + 1
	}
}

// moveActive moves the selection widget-side, wrapping around. Used in
// the modes where the session leaves movement to the widget.
func (m *model) moveActive(delta int) {
	n := len(m.rows)
	if n == 0 {
		return
	}
	if m.active < 0 {
		m.active = 0
	} else {
		m.active = (m.active + delta + n) % n
	}
	m.ensureVisible()
}

// widgetMoves reports whether arrow keys move the selection directly
// instead of going through the session.
func (m *model) widgetMoves() bool {
	return m.sess.ActionsOpen() || m.sess.Mode() == session.ModeSearch
}

// --- jump list overlay ---

// openJumpList shows the frecency-ordered list of visited directories.
// Only available from plain Normal mode so the shared text field is
// free for fuzzy filtering.
func (m *model) openJumpList() {
	if m.sess.Mode() != session.ModeNormal || m.sess.ActionsOpen() {
		return
	}
	choices := m.cfg.RecentDirs()
	if len(choices) == 0 {
		m.Info("No recent folders yet")
		return
	}
	m.jumpOpen = true
	m.jumpChoices = choices
	m.jumpMatches = choices
	m.jumpActive = 0
	m.input.SetValue("")
	m.lastValue = ""
}

func (m *model) filterJumpList() {
	query := m.input.Value()
	if query == "" {
		m.jumpMatches = m.jumpChoices
	} else {
		results := fuzzy.Find(query, m.jumpChoices)
		m.jumpMatches = make([]string, 0, len(results))
		for _, r := range results {
			m.jumpMatches = append(m.jumpMatches, r.Str)
		}
	}
	if m.jumpActive >= len(m.jumpMatches) {
		m.jumpActive = 0
	}
}

func (m *model) closeJumpList() {
	m.jumpOpen = false
	m.jumpChoices = nil
	m.jumpMatches = nil
	m.input.SetValue("")
	m.lastValue = ""
}

func (m *model) jumpToSelected() {
	if m.jumpActive < 0 || m.jumpActive >= len(m.jumpMatches) {
		m.closeJumpList()
		return
	}
	dir := m.jumpMatches[m.jumpActive]
	m.closeJumpList()
	target, err := location.New(dir)
	if err != nil {
		m.Error("Cannot jump to " + dir)
		logger.Error("jump to %s: %v", dir, err)
		return
	}
	m.sess.JumpTo(target)
}

// --- bookkeeping ---

// afterCommand runs after every session command: when the directory
// changed, the watcher follows and the visit is recorded.
func (m *model) afterCommand() {
	p := m.sess.Path()
	if p == m.lastPath {
		return
	}
	m.lastPath = p
	m.recordVisit(p)
	if m.watcher != nil {
		if err := m.watcher.SetDir(p); err != nil {
			logger.Warn("cannot watch %s: %v", p, err)
		}
	}
}

// recordVisit bumps frecency and persists the config every few visits
// so the jump list survives a crash without a write per keystroke.
func (m *model) recordVisit(path string) {
	m.cfg.RecordVisit(path)
	if m.cfg.Frecency[path]%configSaveInterval == 0 {
		if err := config.Save(m.cfg); err != nil {
			logger.Warn("save config: %v", err)
		}
	}
}

// teardown releases everything the model holds before the program
// exits.
func (m *model) teardown() {
	if m.watcher != nil {
		m.watcher.Stop()
	}
	m.sess.OnHidden()
	m.registry.Close(m.sess)
	if err := config.Save(m.cfg); err != nil {
		logger.Warn("save config: %v", err)
	}
}
