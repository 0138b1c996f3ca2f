package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the list/detail view.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	toggle   key.Binding
	edit     key.Binding
	addSound key.Binding
	remove   key.Binding
	create   key.Binding
	reload   key.Binding
	save     key.Binding
	back     key.Binding
	next     key.Binding
	yes      key.Binding
	no       key.Binding
	help     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand")),
		edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename")),
		addSound: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add sound")),
		remove:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		create:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new preset")),
		reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		save:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		yes:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:       key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.edit, k.create, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.toggle},
		{k.edit, k.addSound, k.remove},
		{k.create, k.reload},
		{k.help, k.quit},
	}
}

// modalKeyMap defines the bindings for [AddPresetModal].
type modalKeyMap struct {
	next      key.Binding
	prev      key.Binding
	addRow    key.Binding
	removeRow key.Binding
	save      key.Binding
	cancel    key.Binding
}

func newModalKeyMap() modalKeyMap {
	return modalKeyMap{
		next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next")),
		prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev")),
		addRow:    key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "add sound")),
		removeRow: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove sound")),
		save:      key.NewBinding(key.WithKeys("ctrl+s", "enter"), key.WithHelp("enter", "save")),
		cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k modalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.addRow, k.removeRow, k.save, k.cancel}
}

func (k modalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.next, k.prev}, {k.addRow, k.removeRow}, {k.save, k.cancel}}
}
