package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/presetx/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgPresetsUpdated MsgKind = iota
	MsgSubscriptionClosed
	MsgModalClosed
)

// presetsUpdatedMsg is the constructor for [MsgPresetsUpdated]
func presetsUpdatedMsg(presets []models.Preset) Msg {
	return Msg{kind: MsgPresetsUpdated, data: presets}
}

// subscriptionClosedMsg is the constructor for [MsgSubscriptionClosed]
func subscriptionClosedMsg() Msg {
	return Msg{kind: MsgSubscriptionClosed}
}

// modalClosedMsg is the constructor for [MsgModalClosed]
func modalClosedMsg() tea.Msg {
	return Msg{kind: MsgModalClosed}
}
