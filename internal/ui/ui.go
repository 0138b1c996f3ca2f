package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/presetx/internal/models"
	"github.com/desertthunder/presetx/internal/shared"
)

// PresetStore is the part of [store.Store] the UI reads from and writes through.
type PresetStore interface {
	Observe() (<-chan []models.Preset, func())
	Current() []models.Preset
	Load(ctx context.Context)
	RenamePreset(ctx context.Context, index int, newName string)
	RenameSound(ctx context.Context, presetIndex, soundIndex int, newName string)
	AddPreset(ctx context.Context, preset models.Preset)
	DeletePreset(ctx context.Context, index int)
	AddSoundToPreset(presetIndex int, sound models.Sound)
	DeleteSoundFromPreset(ctx context.Context, presetIndex, soundIndex int)
}

// Model represents the list/detail view state.
type Model struct {
	ctx         context.Context
	store       PresetStore
	updates     <-chan []models.Preset
	unsubscribe func()
	presets     []models.Preset
	expanded    expansion
	cursor      int

	editingPreset int
	editingSound  *soundRef
	editInput     textinput.Model

	pendingPresetDelete int
	pendingSoundDelete  *soundRef
	deletedPreset       int // awaiting the reload that confirms it

	addSoundFor    int
	soundNameInput textinput.Model
	soundURLInput  textinput.Model

	showModal bool
	modal     *AddPresetModal

	width  int
	height int
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model reading from and writing through s.
func NewModel(ctx context.Context, s PresetStore) *Model {
	return &Model{
		ctx:                 ctx,
		store:               s,
		presets:             s.Current(),
		expanded:            expansion{},
		editingPreset:       noIndex,
		editInput:           newInput("Name"),
		pendingPresetDelete: noIndex,
		deletedPreset:       noIndex,
		addSoundFor:         noIndex,
		soundNameInput:      newInput("Sound name"),
		soundURLInput:       newInput("https://…"),
		modal:               NewAddPresetModal(ctx, s),
		help:                help.New(),
		keys:                newKeyMap(),
	}
}

func newInput(placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = placeholder
	input.CharLimit = 256
	input.Width = 40
	return input
}

// Init subscribes to the store and triggers the first load.
func (m *Model) Init() tea.Cmd {
	m.updates, m.unsubscribe = m.store.Observe()
	return tea.Batch(m.waitForUpdate(), m.reload())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case Msg:
		switch msg.kind {
		case MsgPresetsUpdated:
			m.setPresets(msg.data.([]models.Preset))
			return m, m.waitForUpdate()
		case MsgSubscriptionClosed:
			return m, nil
		case MsgModalClosed:
			m.closeAddPresetModal()
			return m, nil
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		switch {
		case m.showModal:
			return m, m.modal.Update(msg)
		case m.isEditing():
			return m.handleEditKeys(msg)
		case m.addSoundFor != noIndex:
			return m.handleAddSoundKeys(msg)
		case m.pendingPresetDelete != noIndex || m.pendingSoundDelete != nil:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleListKeys(msg)
		}
	}

	return m.updateInputs(msg)
}

// View renders the list, or the add-preset modal when it is open.
func (m *Model) View() string {
	if m.showModal {
		return m.modal.View()
	}

	var b strings.Builder
	b.WriteString(styles.title.Render("Presets"))
	b.WriteString("\n")

	if len(m.presets) == 0 {
		b.WriteString(styles.help.Render("No presets. Press n to create one, r to reload."))
		b.WriteString("\n")
	}

	rows := m.rows()
	for i, r := range rows {
		b.WriteString(m.renderRow(i, r))
		b.WriteString("\n")

		lastOfPreset := i == len(rows)-1 || rows[i+1].preset != r.preset
		if lastOfPreset && m.addSoundFor == r.preset {
			b.WriteString(m.renderAddSoundForm())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()
	var current *row
	if m.cursor >= 0 && m.cursor < len(rows) {
		current = &rows[m.cursor]
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.create):
		return m, m.openAddPresetModal()
	case key.Matches(msg, m.keys.reload):
		return m, m.reload()
	case current == nil:
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		if current.isPreset() {
			m.togglePreset(current.preset)
		}
	case key.Matches(msg, m.keys.edit):
		if current.isPreset() {
			return m, m.startEditingPresetName(current.preset)
		}
		return m, m.startEditingSoundName(current.preset, current.sound)
	case key.Matches(msg, m.keys.addSound):
		return m, m.openAddSoundForm(current.preset)
	case key.Matches(msg, m.keys.remove):
		if current.isPreset() {
			m.confirmDeletePreset(current.preset)
		} else {
			m.confirmDeleteSound(current.preset, current.sound)
		}
	}
	return m, nil
}

func (m *Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.save):
		if m.editingPreset != noIndex {
			return m, m.savePresetName()
		}
		return m, m.saveSoundName()
	case key.Matches(msg, m.keys.back):
		m.cancelEditingPreset()
		m.cancelEditingSound()
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

func (m *Model) handleAddSoundKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.save):
		m.saveSound(m.addSoundFor)
		return m, nil
	case key.Matches(msg, m.keys.back):
		m.cancelAddSound()
		return m, nil
	case key.Matches(msg, m.keys.next):
		if m.soundNameInput.Focused() {
			m.soundNameInput.Blur()
			return m, m.soundURLInput.Focus()
		}
		m.soundURLInput.Blur()
		return m, m.soundNameInput.Focus()
	}

	var cmd tea.Cmd
	if m.soundNameInput.Focused() {
		m.soundNameInput, cmd = m.soundNameInput.Update(msg)
	} else {
		m.soundURLInput, cmd = m.soundURLInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		if m.pendingPresetDelete != noIndex {
			return m, m.deletePreset(m.pendingPresetDelete)
		}
		ref := *m.pendingSoundDelete
		return m, m.deleteSound(ref.preset, ref.sound)
	case key.Matches(msg, m.keys.no):
		m.cancelDeletePreset()
		m.cancelDeleteSound()
	}
	return m, nil
}

// updateInputs forwards non-key messages (cursor blinks) to whichever input is active.
func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.showModal:
		cmd = m.modal.Update(msg)
	case m.isEditing():
		m.editInput, cmd = m.editInput.Update(msg)
	case m.addSoundFor != noIndex:
		var nameCmd, urlCmd tea.Cmd
		m.soundNameInput, nameCmd = m.soundNameInput.Update(msg)
		m.soundURLInput, urlCmd = m.soundURLInput.Update(msg)
		cmd = tea.Batch(nameCmd, urlCmd)
	}
	return m, cmd
}

func (m *Model) waitForUpdate() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		if updates == nil {
			return subscriptionClosedMsg()
		}
		presets, ok := <-updates
		if !ok {
			return subscriptionClosedMsg()
		}
		return presetsUpdatedMsg(presets)
	}
}

func (m *Model) reload() tea.Cmd {
	return func() tea.Msg {
		m.store.Load(m.ctx)
		return nil
	}
}

func (m *Model) quit() tea.Cmd {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	return tea.Quit
}

// setPresets replaces the rendered list and keeps the cursor on a visible row.
//
// The expansion set is positional. It is only renumbered when a delete is pending
// and the new list is exactly one shorter; any other list leaves it as is.
func (m *Model) setPresets(presets []models.Preset) {
	if m.deletedPreset != noIndex {
		if len(presets) == len(m.presets)-1 {
			m.expanded = m.expanded.without(m.deletedPreset)
		}
		m.deletedPreset = noIndex
	}
	m.presets = presets
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) rows() []row {
	return flatten(m.presets, m.expanded)
}

func (m *Model) renderRow(i int, r row) string {
	cursor := "  "
	if i == m.cursor {
		cursor = styles.selected.Render("> ")
	}

	if r.isPreset() {
		p := m.presets[r.preset]
		marker := "▸"
		if m.isExpanded(r.preset) {
			marker = "▾"
		}

		name := p.Name
		if m.editingPreset == r.preset {
			name = m.editInput.View()
		} else if i == m.cursor {
			name = styles.selected.Render(name)
		}

		meta := styles.meta.Render(fmt.Sprintf("(%s · %s)", p.Type, shared.Pluralize(len(p.Sounds), "sound")))
		if p.Factory {
			meta += " " + styles.factory.Render("factory")
		}
		line := fmt.Sprintf("%s%s %s  %s", cursor, marker, name, meta)
		if m.pendingPresetDelete == r.preset {
			line += "  " + styles.warn.Render(fmt.Sprintf("Delete preset '%s'? (y/n)", p.Name))
		}
		return line
	}

	s := m.presets[r.preset].Sounds[r.sound]
	name := s.Name
	if m.editingSound != nil && *m.editingSound == (soundRef{preset: r.preset, sound: r.sound}) {
		name = m.editInput.View()
	} else if i == m.cursor {
		name = styles.selected.Render(name)
	}

	line := fmt.Sprintf("%s    • %s  %s", cursor, name, styles.url.Render(s.URL))
	if m.pendingSoundDelete != nil && *m.pendingSoundDelete == (soundRef{preset: r.preset, sound: r.sound}) {
		line += "  " + styles.warn.Render(fmt.Sprintf("Delete sound '%s'? (y/n)", s.Name))
	}
	return line
}

func (m *Model) renderAddSoundForm() string {
	return fmt.Sprintf("      %s\n      %s\n", m.soundNameInput.View(), m.soundURLInput.View())
}

func (m *Model) renderHelp() string {
	switch {
	case m.isEditing():
		return m.help.ShortHelpView([]key.Binding{m.keys.save, m.keys.back})
	case m.addSoundFor != noIndex:
		return m.help.ShortHelpView([]key.Binding{m.keys.next, m.keys.save, m.keys.back})
	case m.pendingPresetDelete != noIndex || m.pendingSoundDelete != nil:
		return m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	default:
		return m.help.View(m.keys)
	}
}
