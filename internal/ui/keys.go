package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PlayPause key.Binding
	Stop      key.Binding
	Next      key.Binding
	Prev      key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Mute      key.Binding
	VolUp     key.Binding
	VolDown   key.Binding
	Browser   key.Binding
	Theme     key.Binding
	Art       key.Binding
	Favorite  key.Binding
	Discover  key.Binding
	Filter    key.Binding
	Compact   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PlayPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Stop:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Next:      key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "next")),
		Prev:      key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "previous")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play selected")),
		Mute:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		VolUp:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
		VolDown:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "volume down")),
		Browser:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "open in browser")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Art:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "next art")),
		Favorite:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Discover:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "discover")),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Compact:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compact")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Next, k.Prev, k.Stop, k.Mute, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Stop, k.Next, k.Prev, k.Select},
		{k.Up, k.Down, k.Filter, k.Favorite, k.Discover},
		{k.Mute, k.VolUp, k.VolDown, k.Browser},
		{k.Theme, k.Art, k.Compact, k.Help, k.Quit},
	}
}
