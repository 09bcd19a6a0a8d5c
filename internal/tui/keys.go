package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-level key bindings. Cursor movement lives
// in components.NavKeys.
type KeyMap struct {
	// Actions
	Quit          key.Binding
	Help          key.Binding
	Escape        key.Binding
	Search        key.Binding
	Submit        key.Binding
	SwitchView    key.Binding
	Album         key.Binding
	Sort          key.Binding
	SortPicker    key.Binding
	QuickFilter   key.Binding
	ClearQuick    key.Binding
	Bulk          key.Binding
	Copy          key.Binding
	Open          key.Binding
	OpenThumbnail key.Binding
	Inspector     key.Binding
	Retry         key.Binding
	Refresh       key.Binding
	ClearFilters  key.Binding
	Dismiss       key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
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
			key.WithHelp("esc", "cancel/dismiss"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search now"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab", "v"),
			key.WithHelp("tab", "grid/table"),
		),
		Album: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "album"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle sort"),
		),
		SortPicker: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "sort picker"),
		),
		QuickFilter: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "quick filters"),
		),
		ClearQuick: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "clear quick filters"),
		),
		Bulk: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bulk request"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy table"),
		),
		Open: key.NewBinding(
			key.WithKeys("o", "enter"),
			key.WithHelp("o", "open photo"),
		),
		OpenThumbnail: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "open thumbnail"),
		),
		Inspector: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle inspector"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss error"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
