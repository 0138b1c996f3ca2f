// Package ui implements the interactive preset administration interface using bubbletea's Elm architecture.
//
// The TUI has two units:
//  1. [Model] : the list/detail view. Presets expand to show their sounds, names are edited inline,
//     sounds are added to a preset, and every delete goes through a y/n confirmation.
//  2. [AddPresetModal] : a form for a new preset's name, type and staged sound rows.
//
// [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Preset lists are pushed from the store through a subscription channel; the view re-arms a wait
// command after each update, so it always renders the last list the store published.
//
// Backend calls run as commands off the update loop. Nothing is locked while one is in flight and
// no loading or error state is shown; failures only reach the log file.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
