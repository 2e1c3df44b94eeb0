package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	back      key.Binding
	search    key.Binding
	nextTab   key.Binding
	prevTab   key.Binding
	toggle    key.Binding
	trailer   key.Binding
	watchlist key.Binding
	sort      key.Binding
	remove    key.Binding
	reload    key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		nextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		prevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev section")),
		toggle:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add/remove watchlist")),
		trailer:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "trailer")),
		watchlist: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "watchlist")),
		sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		remove:    key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
		reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.search, k.nextTab, k.prevTab, k.reload},
		{k.toggle, k.trailer, k.watchlist, k.sort, k.remove},
		{k.quit},
	}
}

func (k keyMap) homeHelp() []key.Binding {
	return []key.Binding{k.search, k.nextTab, k.enter, k.toggle, k.watchlist, k.reload, k.quit}
}

func (k keyMap) detailHelp() []key.Binding {
	return []key.Binding{k.toggle, k.trailer, k.up, k.down, k.enter, k.back, k.quit}
}

func (k keyMap) watchlistHelp() []key.Binding {
	return []key.Binding{k.sort, k.remove, k.enter, k.back, k.quit}
}
