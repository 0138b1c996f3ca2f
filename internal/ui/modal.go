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

// soundRow is one editable name/URL pair in the add-preset form.
type soundRow struct {
	name textinput.Model
	url  textinput.Model
}

func newSoundRow() soundRow {
	return soundRow{name: newInput("Sound name"), url: newInput("https://…")}
}

// AddPresetModal collects a new preset's name, type and optional sounds.
type AddPresetModal struct {
	ctx    context.Context
	store  PresetStore
	name   textinput.Model
	kind   textinput.Model
	sounds []soundRow
	focus  int
	help   help.Model
	keys   modalKeyMap
}

// NewAddPresetModal creates an empty modal. It is shown by [Model] and submits through s.
func NewAddPresetModal(ctx context.Context, s PresetStore) *AddPresetModal {
	return &AddPresetModal{
		ctx:   ctx,
		store: s,
		name:  newInput("Preset name"),
		kind:  newInput("Type, e.g. Drumkit"),
		help:  help.New(),
		keys:  newModalKeyMap(),
	}
}

func (am *AddPresetModal) open() tea.Cmd {
	am.reset()
	return am.setFocus(0)
}

func (am *AddPresetModal) reset() {
	am.name.Reset()
	am.kind.Reset()
	am.sounds = nil
	am.focus = 0
	am.blurAll()
}

// fieldCount is name and type plus two inputs per sound row.
func (am *AddPresetModal) fieldCount() int {
	return 2 + 2*len(am.sounds)
}

func (am *AddPresetModal) field(i int) *textinput.Model {
	switch i {
	case 0:
		return &am.name
	case 1:
		return &am.kind
	}
	r := &am.sounds[(i-2)/2]
	if (i-2)%2 == 0 {
		return &r.name
	}
	return &r.url
}

func (am *AddPresetModal) blurAll() {
	for i := range am.fieldCount() {
		am.field(i).Blur()
	}
}

func (am *AddPresetModal) setFocus(i int) tea.Cmd {
	n := am.fieldCount()
	am.focus = ((i % n) + n) % n
	am.blurAll()
	return am.field(am.focus).Focus()
}

// addSound appends an empty sound row and focuses its name input.
func (am *AddPresetModal) addSound() tea.Cmd {
	am.sounds = append(am.sounds, newSoundRow())
	return am.setFocus(am.fieldCount() - 2)
}

// removeSound drops row i. Out of range indexes are ignored.
func (am *AddPresetModal) removeSound(i int) tea.Cmd {
	if i < 0 || i >= len(am.sounds) {
		return nil
	}
	am.sounds = append(am.sounds[:i], am.sounds[i+1:]...)
	if am.focus >= am.fieldCount() {
		return am.setFocus(am.fieldCount() - 1)
	}
	return am.setFocus(am.focus)
}

// focusedSound is the row holding the focused input, or the last row when the
// focus is on the name or type field.
func (am *AddPresetModal) focusedSound() int {
	if am.focus < 2 {
		return len(am.sounds) - 1
	}
	return (am.focus - 2) / 2
}

// buildPreset returns the preset described by the form.
//
// Name and type are required. Sound rows missing a name or URL are dropped.
func (am *AddPresetModal) buildPreset() (models.Preset, bool) {
	name := strings.TrimSpace(am.name.Value())
	kind := strings.TrimSpace(am.kind.Value())
	if shared.IsBlank(name) || shared.IsBlank(kind) {
		return models.Preset{}, false
	}

	sounds := make([]models.Sound, 0, len(am.sounds))
	for _, r := range am.sounds {
		soundName := strings.TrimSpace(r.name.Value())
		soundURL := strings.TrimSpace(r.url.Value())
		if shared.IsBlank(soundName) || shared.IsBlank(soundURL) {
			continue
		}
		sounds = append(sounds, models.Sound{Name: soundName, URL: soundURL})
	}

	return models.Preset{Name: name, Type: kind, Sounds: sounds}, true
}

// save submits the preset and closes the modal. An incomplete form stays open.
func (am *AddPresetModal) save() tea.Cmd {
	preset, ok := am.buildPreset()
	if !ok {
		return nil
	}

	am.reset()
	ctx, s := am.ctx, am.store
	return tea.Batch(
		func() tea.Msg {
			s.AddPreset(ctx, preset)
			return nil
		},
		modalClosedMsg,
	)
}

func (am *AddPresetModal) cancel() tea.Cmd {
	am.reset()
	return modalClosedMsg
}

// Update handles input while the modal is open.
func (am *AddPresetModal) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, am.keys.cancel):
			return am.cancel()
		case key.Matches(msg, am.keys.save):
			return am.save()
		case key.Matches(msg, am.keys.next):
			return am.setFocus(am.focus + 1)
		case key.Matches(msg, am.keys.prev):
			return am.setFocus(am.focus - 1)
		case key.Matches(msg, am.keys.addRow):
			return am.addSound()
		case key.Matches(msg, am.keys.removeRow):
			return am.removeSound(am.focusedSound())
		}
	}

	var cmd tea.Cmd
	input := am.field(am.focus)
	*input, cmd = input.Update(msg)
	return cmd
}

func (am *AddPresetModal) View() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("New preset"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Name\n%s\n\nType\n%s\n", am.name.View(), am.kind.View())

	if len(am.sounds) > 0 {
		b.WriteString("\nSounds\n")
	}
	for i, r := range am.sounds {
		fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, r.name.View(), r.url.View())
	}

	if _, ok := am.buildPreset(); !ok {
		b.WriteString("\n")
		b.WriteString(styles.warn.Render("Name and type are required."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(am.help.View(am.keys))
	return styles.modal.Render(b.String())
}
