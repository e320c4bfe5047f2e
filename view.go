package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LFroesch/pathfinder/internal/entry"
	"github.com/LFroesch/pathfinder/internal/session"
)

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.hidden {
		return ""
	}

	header := m.renderHeader()
	input := m.renderInput()

	var body string
	switch {
	case m.showHelp:
		body = m.renderHelp()
	case m.jumpOpen:
		body = m.renderJumpList()
	default:
		body = m.renderList()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		input,
		body,
		m.renderButtons(),
		m.renderStatusBar(),
	)
}

func (m *model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(m.width)

	title := "pathfinder - " + m.sess.DisplayPath()
	switch {
	case m.jumpOpen:
		title = "pathfinder - recent folders"
	case m.showHelp:
		title = "pathfinder - keys"
	}
	return titleStyle.Render(title)
}

func (m *model) renderInput() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.modeBadge(), " ", m.input.View())
}

func (m *model) modeBadge() string {
	badgeStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch {
	case m.jumpOpen:
		return badgeStyle.Background(lipgloss.Color("63")).Foreground(lipgloss.Color("230")).Render("JUMP")
	case m.sess.ActionsOpen():
		return badgeStyle.Background(lipgloss.Color("214")).Foreground(lipgloss.Color("235")).Render("ACTIONS")
	}

	switch m.sess.Mode() {
	case session.ModeSearch:
		return badgeStyle.Background(lipgloss.Color("99")).Foreground(lipgloss.Color("230")).Render("SEARCH")
	case session.ModeVisual:
		return badgeStyle.Background(lipgloss.Color("226")).Foreground(lipgloss.Color("235")).Render("VISUAL")
	case session.ModeRename:
		return badgeStyle.Background(lipgloss.Color("39")).Foreground(lipgloss.Color("235")).Render("RENAME")
	case session.ModeCreate:
		label := "NEW FILE"
		if m.sess.CreatingFolder() {
			label = "NEW FOLDER"
		}
		return badgeStyle.Background(lipgloss.Color("42")).Foreground(lipgloss.Color("235")).Render(label)
	default:
		return badgeStyle.Background(lipgloss.Color("240")).Foreground(lipgloss.Color("252")).Render("NORMAL")
	}
}

func (m *model) renderList() string {
	visible := m.listHeight()
	scrollStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 2)

	lines := make([]string, 0, visible)

	if len(m.rows) == 0 {
		lines = append(lines, emptyStyle.Render("(nothing to show)"))
	} else {
		avail := visible
		if m.offset > 0 {
			avail--
		}
		if m.offset+avail < len(m.rows) {
			avail--
		}
		if avail < 1 {
			avail = 1
		}
		end := m.offset + avail
		if end > len(m.rows) {
			end = len(m.rows)
		}

		if m.offset > 0 {
			lines = append(lines, scrollStyle.Render("  ▲ more above"))
		}
		for i := m.offset; i < end; i++ {
			lines = append(lines, m.renderRow(i))
		}
		if end < len(m.rows) {
			lines = append(lines, scrollStyle.Render(fmt.Sprintf("  ▼ more below (%d)", len(m.rows)-end)))
		}
	}

	for len(lines) < visible {
		lines = append(lines, "")
	}
	return strings.Join(lines[:visible], "\n")
}

func (m *model) renderRow(i int) string {
	activeStyle := lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("230")).Bold(true)
	visualStyle := lipgloss.NewStyle().Background(lipgloss.Color("53")).Foreground(lipgloss.Color("230"))
	normalStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	syntheticStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ignoredStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	row := m.rows[i]
	e := row.Entry

	icon := "  "
	if m.cfg.ShowIcons {
		icon = entryIcon(e) + " "
	}

	label := e.Label()
	if e.Kind == entry.KindFS {
		maxLen := m.width - 16
		if maxLen > 8 && len(label) > maxLen {
			label = label[:maxLen] + "..."
		}
		if pos := m.sess.MatchPositions(e.Name); len(pos) > 0 {
			label = highlightMatches(label, pos)
		}
		if e.Type.IsDir() {
			label += "/"
		}
		if e.Type.IsSymlink() {
			label += "@"
		}
		if e.Ignored {
			label += " (ignored)"
		}
	}

	line := " " + icon + label

	switch {
	case i == m.active:
		return activeStyle.Render(line)
	case row.Highlighted:
		return visualStyle.Render(line)
	case e.Kind == entry.KindAction || e.Kind == entry.KindNewFile:
		return syntheticStyle.Render(line)
	case e.Ignored:
		return ignoredStyle.Render(line)
	default:
		return normalStyle.Render(line)
	}
}

func (m *model) renderJumpList() string {
	visible := m.listHeight()
	activeStyle := lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("230")).Bold(true)
	normalStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 2)

	lines := make([]string, 0, visible)

	if len(m.jumpMatches) == 0 {
		lines = append(lines, emptyStyle.Render("(no matching folders)"))
	} else {
		start := 0
		if m.jumpActive >= visible {
			start = m.jumpActive - visible + 1
		}
		for i := start; i < len(m.jumpMatches) && len(lines) < visible; i++ {
			line := " " + abbreviatePath(m.jumpMatches[i], m.width-4)
			if i == m.jumpActive {
				lines = append(lines, activeStyle.Render(line))
			} else {
				lines = append(lines, normalStyle.Render(line))
			}
		}
	}

	for len(lines) < visible {
		lines = append(lines, "")
	}
	return strings.Join(lines[:visible], "\n")
}

func (m *model) renderHelp() string {
	visible := m.listHeight()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Width(12)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	var lines []string
	for _, section := range m.keys.helpSections() {
		lines = append(lines, " "+titleStyle.Render(section.Title))
		for _, bind := range section.Bindings {
			h := bind.Help()
			lines = append(lines, "   "+keyStyle.Render(h.Key)+descStyle.Render(h.Desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines, " esc closes this view")

	if len(lines) > visible {
		lines = lines[:visible]
	}
	for len(lines) < visible {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderButtons() string {
	chipStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")).Padding(0, 1)

	parts := make([]string, 0, len(m.buttons))
	for _, b := range m.buttons {
		parts = append(parts, chipStyle.Render(b.Key+" "+b.Label))
	}
	return " " + strings.Join(parts, " ")
}

func (m *model) renderStatusBar() string {
	barStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("240")).
		Padding(0, 1).
		Width(m.width)

	if prompt, pending := m.sess.PendingConfirm(); pending {
		confirmStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("124")).
			Padding(0, 1).
			Width(m.width)
		return confirmStyle.Render(prompt)
	}

	if m.statusMsg != "" {
		style := barStyle
		if m.statusErr {
			style = style.Foreground(lipgloss.Color("203")).Bold(true)
		}
		return style.Render(m.statusLine(m.statusMsg))
	}

	var segments []string
	if m.active >= 0 && len(m.rows) > 0 {
		segments = append(segments, fmt.Sprintf("%d/%d", m.active+1, len(m.rows)))
	}
	if src, ok := m.sess.RuleSource(); ok {
		segments = append(segments, src)
	}
	if m.sess.HidingDotfiles() {
		segments = append(segments, "dotfiles hidden")
	}
	if m.busy {
		segments = append(segments, "working...")
	}
	return barStyle.Render(m.statusLine(strings.Join(segments, " | ")))
}

// statusLine right-aligns the help hint after the given content.
func (m *model) statusLine(left string) string {
	right := "f1 help"
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// highlightMatches emphasizes the characters at the given byte offsets.
func highlightMatches(text string, positions []int) string {
	if len(positions) == 0 {
		return text
	}

	matchStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)

	set := make(map[int]bool, len(positions))
	for _, p := range positions {
		set[p] = true
	}

	var result strings.Builder
	for i, r := range text {
		if set[i] {
			result.WriteString(matchStyle.Render(string(r)))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// abbreviatePath shortens a path for single-line display: the home
// prefix becomes ~ and overlong paths keep their tail.
func abbreviatePath(path string, maxLen int) string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		if path == home {
			return "~"
		}
		if strings.HasPrefix(path, home+string(filepath.Separator)) {
			path = "~" + path[len(home):]
		}
	}
	if maxLen > 4 && len(path) > maxLen {
		path = "..." + path[len(path)-maxLen+3:]
	}
	return path
}

// entryIcon picks the emoji for a row.
func entryIcon(e entry.Entry) string {
	switch e.Kind {
	case entry.KindParent:
		return "⬆️"
	case entry.KindAction:
		return "⚡"
	case entry.KindNewFile:
		return "➕"
	}
	if e.Type.IsDir() {
		return "📁"
	}
	return fileIcon(e.Name)
}

// fileIcon returns an emoji icon for a file based on its extension.
func fileIcon(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".go":
		return "🐹"
	case ".js", ".ts", ".jsx", ".tsx":
		return "📜"
	case ".py":
		return "🐍"
	case ".rs":
		return "🦀"
	case ".html", ".htm":
		return "🌐"
	case ".css", ".scss":
		return "🎨"
	case ".json", ".yaml", ".yml", ".toml":
		return "📋"
	case ".md", ".markdown":
		return "📝"
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico":
		return "🖼️"
	case ".zip", ".tar", ".gz", ".rar", ".7z":
		return "📦"
	case ".pdf":
		return "📕"
	case ".sh", ".bash", ".zsh":
		return "🖥️"
	default:
		return "📄"
	}
}
