package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/presetx/internal/models"
	"github.com/desertthunder/presetx/internal/shared"
)

func (m *Model) togglePreset(i int) {
	m.expanded.toggle(i)
	m.clampCursor()
}

func (m *Model) isExpanded(i int) bool {
	return m.expanded.has(i)
}

func (m *Model) isEditing() bool {
	return m.editingPreset != noIndex || m.editingSound != nil
}

// startEditingPresetName puts the preset at i into inline edit mode.
//
// Any sound edit in progress is cancelled first so at most one item is edited.
func (m *Model) startEditingPresetName(i int) tea.Cmd {
	if i < 0 || i >= len(m.presets) {
		return nil
	}
	m.cancelEditingSound()
	m.editingPreset = i
	m.editInput.SetValue(m.presets[i].Name)
	m.editInput.CursorEnd()
	return m.editInput.Focus()
}

// startEditingSoundName puts sound j of preset i into inline edit mode.
func (m *Model) startEditingSoundName(i, j int) tea.Cmd {
	if i < 0 || i >= len(m.presets) || j < 0 || j >= len(m.presets[i].Sounds) {
		return nil
	}
	m.cancelEditingPreset()
	m.editingSound = &soundRef{preset: i, sound: j}
	m.editInput.SetValue(m.presets[i].Sounds[j].Name)
	m.editInput.CursorEnd()
	return m.editInput.Focus()
}

func (m *Model) cancelEditingPreset() {
	if m.editingPreset == noIndex {
		return
	}
	m.editingPreset = noIndex
	m.resetEditInput()
}

func (m *Model) cancelEditingSound() {
	if m.editingSound == nil {
		return
	}
	m.editingSound = nil
	m.resetEditInput()
}

func (m *Model) resetEditInput() {
	m.editInput.Reset()
	m.editInput.Blur()
}

// savePresetName sends the rename and leaves edit mode.
//
// A blank value keeps the preset in edit mode and sends nothing.
func (m *Model) savePresetName() tea.Cmd {
	value := strings.TrimSpace(m.editInput.Value())
	if m.editingPreset == noIndex || shared.IsBlank(value) {
		return nil
	}

	index := m.editingPreset
	m.cancelEditingPreset()
	return func() tea.Msg {
		m.store.RenamePreset(m.ctx, index, value)
		return nil
	}
}

// saveSoundName sends the rename and leaves edit mode.
func (m *Model) saveSoundName() tea.Cmd {
	value := strings.TrimSpace(m.editInput.Value())
	if m.editingSound == nil || shared.IsBlank(value) {
		return nil
	}

	ref := *m.editingSound
	m.cancelEditingSound()
	return func() tea.Msg {
		m.store.RenameSound(m.ctx, ref.preset, ref.sound, value)
		return nil
	}
}

func (m *Model) confirmDeletePreset(i int) {
	m.cancelDeleteSound()
	m.pendingPresetDelete = i
}

func (m *Model) cancelDeletePreset() {
	m.pendingPresetDelete = noIndex
}

// deletePreset removes the preset at i. Expanded presets after it stay expanded
// once the reload shows the preset gone.
func (m *Model) deletePreset(i int) tea.Cmd {
	m.cancelDeletePreset()
	if i < 0 || i >= len(m.presets) {
		return nil
	}

	m.deletedPreset = i
	return func() tea.Msg {
		m.store.DeletePreset(m.ctx, i)
		return nil
	}
}

func (m *Model) confirmDeleteSound(i, j int) {
	m.cancelDeletePreset()
	m.pendingSoundDelete = &soundRef{preset: i, sound: j}
}

func (m *Model) cancelDeleteSound() {
	m.pendingSoundDelete = nil
}

func (m *Model) deleteSound(i, j int) tea.Cmd {
	m.cancelDeleteSound()
	return func() tea.Msg {
		m.store.DeleteSoundFromPreset(m.ctx, i, j)
		return nil
	}
}

// openAddSoundForm shows the inline name/URL form under the preset at i.
func (m *Model) openAddSoundForm(i int) tea.Cmd {
	if i < 0 || i >= len(m.presets) {
		return nil
	}
	m.addSoundFor = i
	m.soundNameInput.Reset()
	m.soundURLInput.Reset()
	m.soundURLInput.Blur()
	return m.soundNameInput.Focus()
}

func (m *Model) cancelAddSound() {
	m.addSoundFor = noIndex
	m.soundNameInput.Reset()
	m.soundURLInput.Reset()
	m.soundNameInput.Blur()
	m.soundURLInput.Blur()
}

// saveSound appends the form's sound to the preset at i in memory only.
//
// Both fields are required; the form stays open otherwise.
func (m *Model) saveSound(i int) {
	name := strings.TrimSpace(m.soundNameInput.Value())
	url := strings.TrimSpace(m.soundURLInput.Value())
	if shared.IsBlank(name) || shared.IsBlank(url) {
		return
	}

	m.store.AddSoundToPreset(i, models.Sound{Name: name, URL: url})
	m.cancelAddSound()
}

func (m *Model) openAddPresetModal() tea.Cmd {
	m.showModal = true
	return m.modal.open()
}

func (m *Model) closeAddPresetModal() {
	m.showModal = false
}
