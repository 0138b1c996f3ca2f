package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	accent = "#7D56F4"
	green  = "#04B575"
	orange = "#FFA500"
	grey   = "#626262"
	slate  = "#8A8FA3"
)

var styles = NewPalette()

// Palette holds the styles for the preset list and the add-preset modal.
type Palette struct {
	title    lipgloss.Style
	selected lipgloss.Style
	meta     lipgloss.Style // preset type and sound count
	url      lipgloss.Style
	factory  lipgloss.Style
	warn     lipgloss.Style // delete prompts and validation
	help     lipgloss.Style
	modal    lipgloss.Style
}

func NewPalette() *Palette {
	return &Palette{
		title:    NewBold(accent).MarginBottom(1),
		selected: NewBold(accent),
		meta:     NewStyle(grey),
		url:      NewEm(slate),
		factory:  NewBold(green),
		warn:     NewStyle(orange),
		help:     NewEm(grey),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(accent)).
			Padding(1, 2),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
