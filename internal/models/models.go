package models

// Preset is a named collection of sounds as seen by the UI.
type Preset struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Factory bool    `json:"factory,omitempty"` // Factory presets ship with the backend
	Sounds  []Sound `json:"sounds"`
}

// Sound references a sample by URL. Names are not unique.
type Sound struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Clone returns a deep copy of the preset.
func (p Preset) Clone() Preset {
	c := p
	c.Sounds = make([]Sound, len(p.Sounds))
	copy(c.Sounds, p.Sounds)
	return c
}

// ClonePresets deep-copies a preset list. A nil list becomes an empty one.
func ClonePresets(presets []Preset) []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		out[i] = p.Clone()
	}
	return out
}
