package main

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/pathfinder/internal/session"
)

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("pathfinder"),
		textinput.Blink,
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForRefresh(m.watcher.Refresh()))
	}
	return tea.Batch(cmds...)
}

// waitForRefresh blocks on the watcher channel and re-enters the event
// loop as a message; Update re-arms it after every delivery.
func waitForRefresh(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		dir, ok := <-ch
		if !ok {
			return nil
		}
		return refreshMsg{dir: dir}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Clear expired status messages
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.width < minTerminalWidth {
			m.width = minTerminalWidth
		}
		if m.height < minTerminalHeight {
			m.height = minTerminalHeight
		}
		m.input.Width = m.width - 12
		m.ensureVisible()
		return m, nil

	case refreshMsg:
		// Apply only when the event is for the directory still showing
		if msg.dir == m.sess.Path() {
			m.sess.Refresh()
		}
		return m, waitForRefresh(m.watcher.Refresh())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.teardown()
		return m, tea.Quit
	}

	if m.showHelp {
		switch msg.String() {
		case "esc", "f1", "enter", "q":
			m.showHelp = false
		}
		return m, nil
	}

	// A pending confirmation swallows every key except its answers
	if _, pending := m.sess.PendingConfirm(); pending {
		switch msg.String() {
		case "y", "Y", "enter":
			m.sess.ResolveConfirm(true)
		case "n", "N", "esc":
			m.sess.ResolveConfirm(false)
		}
		m.afterCommand()
		return m, nil
	}

	if m.jumpOpen {
		return m.handleJumpKey(msg)
	}

	if m.busy {
		return m, nil
	}

	switch {
	case msg.String() == "esc":
		if m.interceptEsc {
			m.sess.HandleEscape()
			m.afterCommand()
			return m, nil
		}
		m.teardown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.widgetMoves() {
			m.moveActive(-1)
		} else {
			m.sess.MoveUp()
		}

	case key.Matches(msg, m.keys.Down):
		if m.widgetMoves() {
			m.moveActive(1)
		} else {
			m.sess.MoveDown()
		}

	case key.Matches(msg, m.keys.StepIn):
		m.sess.StepIn()

	case key.Matches(msg, m.keys.StepOut):
		m.sess.StepOut()

	case key.Matches(msg, m.keys.Accept):
		m.sess.Accept()

	case key.Matches(msg, m.keys.Complete):
		m.sess.TabCompletion(true)

	case key.Matches(msg, m.keys.CompleteBack):
		m.sess.TabCompletion(false)

	case key.Matches(msg, m.keys.Search):
		m.sess.ToggleSearch()

	case key.Matches(msg, m.keys.Visual):
		m.sess.ToggleVisual()

	case key.Matches(msg, m.keys.Rename):
		m.sess.StartRename()

	case key.Matches(msg, m.keys.Delete):
		m.sess.RequestDelete()

	case key.Matches(msg, m.keys.NewFile):
		m.sess.OnButton(session.ButtonNewFile)

	case key.Matches(msg, m.keys.NewFolder):
		m.sess.OnButton(session.ButtonNewFolder)

	case key.Matches(msg, m.keys.Actions):
		m.sess.OnButton(session.ButtonActions)

	case key.Matches(msg, m.keys.JumpList):
		m.openJumpList()
		return m, nil

	case key.Matches(msg, m.keys.Dotfiles):
		m.sess.ToggleDotfiles()

	case key.Matches(msg, m.keys.CopyPath):
		m.sess.CopyActivePath()

	default:
		return m.handleTextKey(msg)
	}

	m.afterCommand()
	return m, nil
}

// handleTextKey feeds the key to the text field and reports the edit to
// the session when the value actually changed.
func (m *model) handleTextKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.enabled {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.lastValue {
		m.lastValue = v
		m.sess.OnValueChanged(v)
		// The session may have rewritten the field
		m.lastValue = m.input.Value()
		m.afterCommand()
	}
	return m, cmd
}

func (m *model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc", key.Matches(msg, m.keys.JumpList):
		m.closeJumpList()
		return m, nil
	case key.Matches(msg, m.keys.Accept):
		m.jumpToSelected()
		m.afterCommand()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.jumpActive > 0 {
			m.jumpActive--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.jumpActive < len(m.jumpMatches)-1 {
			m.jumpActive++
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.lastValue {
		m.lastValue = v
		m.filterJumpList()
	}
	return m, cmd
}
