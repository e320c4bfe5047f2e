package main

import "github.com/charmbracelet/bubbles/key"

// keyMap collects every binding the browser reacts to. Plain characters
// belong to the text field; commands ride on control keys and arrows so
// typing and navigation never collide.
type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	StepIn       key.Binding
	StepOut      key.Binding
	Accept       key.Binding
	Complete     key.Binding
	CompleteBack key.Binding
	Search       key.Binding
	Visual       key.Binding
	Rename       key.Binding
	Delete       key.Binding
	NewFile      key.Binding
	NewFolder    key.Binding
	Actions      key.Binding
	JumpList     key.Binding
	Dotfiles     key.Binding
	CopyPath     key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "move down"),
		),
		StepIn: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "step into folder"),
		),
		StepOut: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "step out to parent"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open / accept"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete name"),
		),
		CompleteBack: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "complete backwards"),
		),
		Search: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "search mode"),
		),
		Visual: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "visual selection"),
		),
		Rename: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "delete"),
		),
		NewFile: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new file"),
		),
		NewFolder: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "new folder"),
		),
		Actions: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "actions menu"),
		),
		JumpList: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "recent folders"),
		),
		Dotfiles: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "toggle dotfiles"),
		),
		CopyPath: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy path"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// helpSections groups the bindings for the help view.
func (k keyMap) helpSections() []struct {
	Title    string
	Bindings []key.Binding
} {
	return []struct {
		Title    string
		Bindings []key.Binding
	}{
		{"Navigate", []key.Binding{k.Up, k.Down, k.StepIn, k.StepOut, k.Accept, k.JumpList}},
		{"Type", []key.Binding{k.Complete, k.CompleteBack, k.Search, k.Visual}},
		{"Change", []key.Binding{k.Rename, k.Delete, k.NewFile, k.NewFolder, k.Actions}},
		{"Other", []key.Binding{k.Dotfiles, k.CopyPath, k.Help, k.Quit}},
	}
}
