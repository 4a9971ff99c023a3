package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Lists
	Refresh  key.Binding
	NextPage key.Binding
	PrevPage key.Binding

	// Browse
	Search     key.Binding
	Skill      key.Binding
	ClearSkill key.Binding
	Apply      key.Binding

	// My projects
	Edit   key.Binding
	Delete key.Binding
	Accept key.Binding
	Reject key.Binding

	// Views
	FirstView  key.Binding
	SecondView key.Binding

	// General
	Logout     key.Binding
	Help       key.Binding
	ThemeCycle key.Binding
	Quit       key.Binding
	Back       key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev page"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Skill: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle skill"),
		),
		ClearSkill: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "all skills"),
		),
		Apply: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a/enter", "apply"),
		),

		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Accept: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "accept"),
		),
		Reject: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reject"),
		),

		FirstView: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "first view"),
		),
		SecondView: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "second view"),
		),

		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "log out"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Refresh, k.NextPage, k.PrevPage},
		{k.Search, k.Skill, k.ClearSkill, k.Apply},
		{k.Edit, k.Delete, k.Accept, k.Reject},
		{k.FirstView, k.SecondView, k.Logout},
		{k.ThemeCycle, k.Help, k.Quit},
	}
}
