package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Home     key.Binding
	End      key.Binding

	// Actions
	Quit       key.Binding
	Help       key.Binding
	Escape     key.Binding
	Search     key.Binding
	Toggle     key.Binding
	Filter     key.Binding
	GotoPage   key.Binding
	GridSize   key.Binding
	DarkMode        key.Binding
	Refresh         key.Binding
	ResetCollection key.Binding
	AdminPanel      key.Binding

	// Admin panel
	CycleRole   key.Binding
	CommitRole  key.Binding
	ResetUser   key.Binding
	Maintenance key.Binding
	Export      key.Binding

	// Confirmations
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[", "previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "pgdown"),
			key.WithHelp("]", "next page"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first page"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last page"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "capture/release"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle filter"),
		),
		GotoPage: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to page"),
		),
		GridSize: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle grid size"),
		),
		DarkMode: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dark mode"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh catalog"),
		),
		ResetCollection: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset collection"),
		),
		AdminPanel: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "admin panel"),
		),

		// Admin panel
		CycleRole: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "stage role"),
		),
		CommitRole: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm role"),
		),
		ResetUser: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset progress"),
		),
		Maintenance: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "maintenance"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),

		// Confirmations
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
